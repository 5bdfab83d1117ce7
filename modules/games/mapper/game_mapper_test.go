package mapper

import (
	"testing"

	"roundtable-api/modules/games/entity"

	"github.com/lib/pq"
)

func strPtr(s string) *string { return &s }

func TestToGameListItemUserRole(t *testing.T) {
	tests := []struct {
		name       string
		ownerID    string
		viewer     string
		role       *string
		status     *string
		wantRole   string
		wantStatus string
		wantNil    bool
	}{
		{name: "owner wins over stale participant row", ownerID: "v", viewer: "v", role: strPtr("applicant"), status: strPtr("rejected"), wantRole: "owner", wantStatus: "approved"},
		{name: "owner without row", ownerID: "v", viewer: "v", wantRole: "owner", wantStatus: "approved"},
		{name: "participant", ownerID: "o", viewer: "v", role: strPtr("invited"), status: strPtr("pending"), wantRole: "invited", wantStatus: "pending"},
		{name: "no relation", ownerID: "o", viewer: "v", wantNil: true},
		{name: "anonymous", ownerID: "o", viewer: "", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := &entity.GameListRow{ViewerRole: tt.role, ViewerStatus: tt.status}
			row.OwnerID = tt.ownerID

			got := ToGameListItem(row, tt.viewer).UserRole
			if tt.wantNil {
				if got != nil {
					t.Fatalf("want nil role, got %+v", got)
				}
				return
			}
			if got == nil || got.Role != tt.wantRole || got.Status != tt.wantStatus {
				t.Fatalf("want %s/%s, got %+v", tt.wantRole, tt.wantStatus, got)
			}
		})
	}
}

func TestToGameListItemNestsGameSystem(t *testing.T) {
	hero := "https://cdn.example.com/hero.png"
	row := &entity.GameListRow{
		GameSystemName:   "Mothership",
		GameSystemSlug:   strPtr("mothership"),
		SystemHeroURL:    &hero,
		SystemCategories: pq.StringArray{"horror", "sci-fi"},
		ParticipantCount: 3,
	}
	row.GameSystemID = 7

	item := ToGameListItem(row, "")
	gs := item.GameSystem
	if gs.ID != 7 || gs.Name != "Mothership" || *gs.Slug != "mothership" || *gs.HeroURL != hero {
		t.Fatalf("unexpected game system %+v", gs)
	}
	if len(gs.Categories) != 2 || gs.Categories[0] != "horror" {
		t.Fatalf("unexpected categories %v", gs.Categories)
	}
	if item.ParticipantCount != 3 {
		t.Fatalf("want 3 participants, got %d", item.ParticipantCount)
	}
}

func TestToGameListItemEmptyCategories(t *testing.T) {
	item := ToGameListItem(&entity.GameListRow{}, "")
	if item.GameSystem.Categories == nil || len(item.GameSystem.Categories) != 0 {
		t.Fatalf("want empty non-nil categories, got %#v", item.GameSystem.Categories)
	}
}

package predicatetest

import (
	"reflect"
	"testing"

	"roundtable-api/modules/games/predicate"
)

// "o" follows "v"; "b" has blocked "v".
func fixture() ([]Row, *World) {
	game := func(id, owner, vis, status string) Row {
		return Row{predicate.ColID: id, predicate.ColOwnerID: owner, predicate.ColVisibility: vis, predicate.ColStatus: status}
	}
	rows := []Row{
		game("pub", "o", "public", "scheduled"),
		game("priv", "o", "private", "scheduled"),
		game("priv-member", "o", "private", "scheduled"),
		game("prot", "o", "protected", "completed"),
		game("mine", "v", "private", "scheduled"),
		game("blocked-pub", "b", "public", "scheduled"),
	}
	w := &World{
		Participants: []ParticipantFact{
			{GameID: "priv-member", UserID: "v", Role: "invited", Status: "pending"},
			{GameID: "mine", UserID: "v", Role: "invited", Status: "rejected"},
		},
		Follows: [][2]string{{"o", "v"}},
		Blocks:  [][2]string{{"b", "v"}},
	}
	return rows, w
}

func visibleIDs(expr predicate.Expr, rows []Row, w *World) []string {
	var ids []string
	for _, r := range rows {
		if Evaluate(expr, r, w) {
			ids = append(ids, r[predicate.ColID].(string))
		}
	}
	return ids
}

func TestVisibilityRules(t *testing.T) {
	rows, w := fixture()

	tests := []struct {
		name   string
		viewer string
		f      predicate.Filters
		scope  predicate.Scope
		want   []string
	}{
		{"anonymous", "", predicate.Filters{}, predicate.ScopeAll, []string{"pub", "blocked-pub"}},
		{"viewer", "v", predicate.Filters{}, predicate.ScopeAll, []string{"pub", "priv-member", "prot", "mine"}},
		{"viewer public only", "v", predicate.Filters{}, predicate.ScopePublicOnly, []string{"pub"}},
		{"status per branch", "v", predicate.Filters{Status: "completed"}, predicate.ScopeAll, []string{"prot"}},
		{"role owner", "v", predicate.Filters{UserRole: "owner"}, predicate.ScopeAll, []string{"mine"}},
		{"role invited", "v", predicate.Filters{UserRole: "invited"}, predicate.ScopeAll, []string{"priv-member"}},
		{"anonymous role", "", predicate.Filters{UserRole: "player"}, predicate.ScopeAll, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := visibleIDs(predicate.BuildVisibility(tt.viewer, tt.f, tt.scope), rows, w)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestProtectedRequiresConnectionOrTeammate(t *testing.T) {
	rows := []Row{{predicate.ColID: "prot", predicate.ColOwnerID: "o", predicate.ColVisibility: "protected", predicate.ColStatus: "scheduled"}}

	stranger := visibleIDs(predicate.BuildVisibility("v", predicate.Filters{}, predicate.ScopeAll), rows, &World{})
	if len(stranger) != 0 {
		t.Fatalf("stranger should not see protected game, got %v", stranger)
	}

	teammates := &World{Teams: map[string][]string{"t1": {"o", "v"}}}
	if got := visibleIDs(predicate.BuildVisibility("v", predicate.Filters{}, predicate.ScopeAll), rows, teammates); len(got) != 1 {
		t.Fatalf("teammate should see protected game, got %v", got)
	}

	teammates.Blocks = [][2]string{{"v", "o"}}
	if got := visibleIDs(predicate.BuildVisibility("v", predicate.Filters{}, predicate.ScopeAll), rows, teammates); len(got) != 0 {
		t.Fatalf("block must win over teammate, got %v", got)
	}
}

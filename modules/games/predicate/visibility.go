package predicate

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Scope int

const (
	// ScopeAll applies every visibility rule the viewer qualifies for.
	ScopeAll Scope = iota
	// ScopePublicOnly restricts results to public games whoever is asking.
	ScopePublicOnly
)

const (
	visibilityPublic    = "public"
	visibilityProtected = "protected"
	visibilityPrivate   = "private"
	roleOwner           = "owner"
)

// MemberRoles are the participant roles that grant access to a private game.
var MemberRoles = []string{"player", "invited"}

type Filters struct {
	GameID       *uuid.UUID
	GameSystemID *int
	CampaignID   *uuid.UUID
	Status       string
	DateFrom     *time.Time
	DateTo       *time.Time
	SearchTerm   string
	// UserRole is owner, player, invited or applicant.
	UserRole string
}

// BuildVisibility returns the WHERE expression for viewerID ("" when
// anonymous). It holds no state: equal inputs give equal expressions.
func BuildVisibility(viewerID string, f Filters, scope Scope) Expr {
	where := And{}

	if f.GameID != nil {
		where = append(where, Eq{Col: ColID, Val: *f.GameID})
	}
	if f.GameSystemID != nil {
		where = append(where, Eq{Col: ColGameSystemID, Val: *f.GameSystemID})
	}
	if f.CampaignID != nil {
		where = append(where, Eq{Col: ColCampaignID, Val: *f.CampaignID})
	}
	if f.DateFrom != nil {
		where = append(where, Gte{Col: ColDateTime, Val: *f.DateFrom})
	}
	if f.DateTo != nil {
		where = append(where, Lte{Col: ColDateTime, Val: *f.DateTo})
	}
	if term := strings.TrimSpace(f.SearchTerm); term != "" {
		where = append(where, Or{
			ContainsFold{Col: ColName, Term: term},
			ContainsFold{Col: ColDescription, Term: term},
			ContainsFold{Col: ColLanguage, Term: term},
		})
	}
	if f.UserRole != "" {
		where = append(where, roleCondition(viewerID, f.UserRole))
	}
	if viewerID != "" {
		where = append(where, Not{X: Exists{Sub: Blocked{Viewer: viewerID}}})
	}

	branches := visibilityBranches(viewerID, scope)
	if f.Status != "" {
		// status narrows each branch on its own
		for i, b := range branches {
			branches[i] = And{Eq{Col: ColStatus, Val: f.Status}, b}
		}
	}

	return append(where, Or(branches))
}

func visibilityBranches(viewerID string, scope Scope) []Expr {
	public := Eq{Col: ColVisibility, Val: visibilityPublic}
	if viewerID == "" || scope == ScopePublicOnly {
		return []Expr{public}
	}

	return []Expr{
		public,
		And{
			Eq{Col: ColVisibility, Val: visibilityPrivate},
			InSubquery{Col: ColID, Sub: ParticipantGames{Viewer: viewerID, Roles: append([]string(nil), MemberRoles...)}},
		},
		Eq{Col: ColOwnerID, Val: viewerID},
		And{
			Eq{Col: ColVisibility, Val: visibilityProtected},
			Or{
				Exists{Sub: Connection{Viewer: viewerID}},
				Exists{Sub: Teammate{Viewer: viewerID}},
			},
			Not{X: Exists{Sub: Blocked{Viewer: viewerID}}},
		},
	}
}

func roleCondition(viewerID, role string) Expr {
	if viewerID == "" {
		return Bool(false)
	}
	if role == roleOwner {
		return Eq{Col: ColOwnerID, Val: viewerID}
	}
	return Exists{Sub: ViewerParticipant{Viewer: viewerID, Role: role}}
}

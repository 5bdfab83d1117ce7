// Package predicate models the WHERE clause of game listings as plain values
// so visibility rules can be built and inspected without a database.
package predicate

import "time"

// Column is an allow-listed column of the listing query. Aliases follow the
// repository's FROM clause: g = games.
type Column string

const (
	ColID           Column = "g.id"
	ColOwnerID      Column = "g.owner_id"
	ColCampaignID   Column = "g.campaign_id"
	ColGameSystemID Column = "g.game_system_id"
	ColStatus       Column = "g.status"
	ColVisibility   Column = "g.visibility"
	ColDateTime     Column = "g.date_time"
	ColName         Column = "g.name"
	ColDescription  Column = "g.description"
	ColLanguage     Column = "g.language"
)

// Expr is one of And, Or, Not, Eq, Gte, Lte, ContainsFold, Bool, InSubquery, Exists.
type Expr interface {
	isExpr()
}

type (
	And []Expr
	Or  []Expr

	Not struct {
		X Expr
	}

	Eq struct {
		Col Column
		Val any
	}

	Gte struct {
		Col Column
		Val time.Time
	}

	Lte struct {
		Col Column
		Val time.Time
	}

	// ContainsFold matches lower(col) LIKE %lower(term)%.
	ContainsFold struct {
		Col  Column
		Term string
	}

	Bool bool

	InSubquery struct {
		Col Column
		Sub Subquery
	}

	Exists struct {
		Sub Subquery
	}
)

func (And) isExpr()          {}
func (Or) isExpr()           {}
func (Not) isExpr()          {}
func (Eq) isExpr()           {}
func (Gte) isExpr()          {}
func (Lte) isExpr()          {}
func (ContainsFold) isExpr() {}
func (Bool) isExpr()         {}
func (InSubquery) isExpr()   {}
func (Exists) isExpr()       {}

// Subquery is a typed description of a correlated or uncorrelated sub-select.
type Subquery interface {
	isSubquery()
}

type (
	// ParticipantGames selects ids of games where Viewer holds a non-rejected
	// participant row with one of Roles.
	ParticipantGames struct {
		Viewer string
		Roles  []string
	}

	// ViewerParticipant is a row for Viewer on the outer game with Role, not rejected.
	ViewerParticipant struct {
		Viewer string
		Role   string
	}

	// Connection is a follow in either direction between Viewer and the outer game's owner.
	Connection struct {
		Viewer string
	}

	// Teammate is a team where Viewer and the outer game's owner are both active members.
	Teammate struct {
		Viewer string
	}

	// Blocked is a block in either direction between Viewer and the outer game's owner.
	Blocked struct {
		Viewer string
	}
)

func (ParticipantGames) isSubquery()  {}
func (ViewerParticipant) isSubquery() {}
func (Connection) isSubquery()        {}
func (Teammate) isSubquery()          {}
func (Blocked) isSubquery()           {}

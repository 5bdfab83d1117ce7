// Package predicatetest evaluates listing predicates in memory so repository
// fakes apply the same rules the rendered SQL does.
package predicatetest

import (
	"slices"
	"strings"
	"time"

	"roundtable-api/modules/games/predicate"
)

// Row holds column values of one game, keyed the same way expressions are.
type Row map[predicate.Column]any

type ParticipantFact struct {
	GameID any
	UserID string
	Role   string
	Status string
}

// World is the relational state sub-queries are checked against.
type World struct {
	Participants []ParticipantFact
	Follows      [][2]string // follower, following
	Blocks       [][2]string // blocker, blockee
	// Teams maps a team id to its active members.
	Teams map[string][]string
}

func Evaluate(e predicate.Expr, row Row, w *World) bool {
	switch x := e.(type) {
	case predicate.And:
		for _, p := range x {
			if !Evaluate(p, row, w) {
				return false
			}
		}
		return true
	case predicate.Or:
		for _, p := range x {
			if Evaluate(p, row, w) {
				return true
			}
		}
		return false
	case predicate.Not:
		return !Evaluate(x.X, row, w)
	case predicate.Eq:
		return row[x.Col] == x.Val
	case predicate.Gte:
		t, ok := row[x.Col].(time.Time)
		return ok && !t.Before(x.Val)
	case predicate.Lte:
		t, ok := row[x.Col].(time.Time)
		return ok && !t.After(x.Val)
	case predicate.ContainsFold:
		s, _ := row[x.Col].(string)
		return strings.Contains(strings.ToLower(s), strings.ToLower(x.Term))
	case predicate.Bool:
		return bool(x)
	case predicate.InSubquery:
		return w.matches(x.Sub, row, row[x.Col])
	case predicate.Exists:
		return w.matches(x.Sub, row, nil)
	case nil:
		return true
	}
	return false
}

func (w *World) matches(s predicate.Subquery, row Row, col any) bool {
	if w == nil {
		return false
	}
	owner, _ := row[predicate.ColOwnerID].(string)
	gameID := row[predicate.ColID]

	switch x := s.(type) {
	case predicate.ParticipantGames:
		for _, p := range w.Participants {
			if p.GameID == col && p.UserID == x.Viewer && slices.Contains(x.Roles, p.Role) && p.Status != "rejected" {
				return true
			}
		}
	case predicate.ViewerParticipant:
		for _, p := range w.Participants {
			if p.GameID == gameID && p.UserID == x.Viewer && p.Role == x.Role && p.Status != "rejected" {
				return true
			}
		}
	case predicate.Connection:
		return hasPair(w.Follows, x.Viewer, owner) || hasPair(w.Follows, owner, x.Viewer)
	case predicate.Teammate:
		for _, members := range w.Teams {
			if slices.Contains(members, x.Viewer) && slices.Contains(members, owner) {
				return true
			}
		}
	case predicate.Blocked:
		return hasPair(w.Blocks, x.Viewer, owner) || hasPair(w.Blocks, owner, x.Viewer)
	}
	return false
}

func hasPair(pairs [][2]string, a, b string) bool {
	for _, p := range pairs {
		if p[0] == a && p[1] == b {
			return true
		}
	}
	return false
}

package predicate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
)

// Args collects positional parameters while an expression is rendered.
type Args struct {
	values []any
}

func NewArgs(initial ...any) *Args {
	return &Args{values: append([]any(nil), initial...)}
}

// Add appends v and returns its placeholder.
func (a *Args) Add(v any) string {
	a.values = append(a.values, v)
	return "$" + strconv.Itoa(len(a.values))
}

func (a *Args) Values() []any {
	return a.values
}

func (a *Args) Len() int {
	return len(a.values)
}

// Render turns e into Postgres SQL, appending every value to args.
func Render(e Expr, args *Args) string {
	switch x := e.(type) {
	case And:
		return join([]Expr(x), " AND ", "TRUE", args)
	case Or:
		return join([]Expr(x), " OR ", "FALSE", args)
	case Not:
		return "NOT (" + Render(x.X, args) + ")"
	case Eq:
		return fmt.Sprintf("%s = %s", x.Col, args.Add(x.Val))
	case Gte:
		return fmt.Sprintf("%s >= %s", x.Col, args.Add(x.Val))
	case Lte:
		return fmt.Sprintf("%s <= %s", x.Col, args.Add(x.Val))
	case ContainsFold:
		return fmt.Sprintf("lower(%s) LIKE %s", x.Col, args.Add(likePattern(x.Term)))
	case Bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case InSubquery:
		return fmt.Sprintf("%s IN (%s)", x.Col, renderSubquery(x.Sub, args))
	case Exists:
		return "EXISTS (" + renderSubquery(x.Sub, args) + ")"
	case nil:
		return "TRUE"
	default:
		panic(fmt.Sprintf("predicate: unknown expression %T", e))
	}
}

func join(parts []Expr, sep, empty string, args *Args) string {
	switch len(parts) {
	case 0:
		return empty
	case 1:
		return Render(parts[0], args)
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, Render(p, args))
	}
	return "(" + strings.Join(out, sep) + ")"
}

func renderSubquery(s Subquery, args *Args) string {
	switch x := s.(type) {
	case ParticipantGames:
		return fmt.Sprintf(
			"SELECT gp.game_id FROM game_participants gp WHERE gp.user_id = %s AND gp.role = ANY(%s) AND gp.status <> 'rejected'",
			args.Add(x.Viewer), args.Add(pq.Array(x.Roles)))
	case ViewerParticipant:
		return fmt.Sprintf(
			"SELECT 1 FROM game_participants rp WHERE rp.game_id = g.id AND rp.user_id = %s AND rp.role = %s AND rp.status <> 'rejected'",
			args.Add(x.Viewer), args.Add(x.Role))
	case Connection:
		v := args.Add(x.Viewer)
		return fmt.Sprintf(
			"SELECT 1 FROM user_follows uf WHERE (uf.follower_id = %[1]s AND uf.following_id = g.owner_id) OR (uf.follower_id = g.owner_id AND uf.following_id = %[1]s)", v)
	case Teammate:
		return fmt.Sprintf(
			"SELECT 1 FROM team_members tv JOIN team_members tow ON tow.team_id = tv.team_id WHERE tv.user_id = %s AND tv.status = 'active' AND tow.user_id = g.owner_id AND tow.status = 'active'",
			args.Add(x.Viewer))
	case Blocked:
		v := args.Add(x.Viewer)
		return fmt.Sprintf(
			"SELECT 1 FROM user_blocks ub WHERE (ub.blocker_id = %[1]s AND ub.blockee_id = g.owner_id) OR (ub.blocker_id = g.owner_id AND ub.blockee_id = %[1]s)", v)
	default:
		panic(fmt.Sprintf("predicate: unknown subquery %T", s))
	}
}

// likePattern escapes LIKE wildcards in term and wraps it in %...%.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}

package service

import (
	"context"
	"testing"

	"roundtable-api/core/errors"
	"roundtable-api/modules/teams/dto"
	"roundtable-api/modules/teams/entity"

	"github.com/google/uuid"
)

type memberKey struct {
	team uuid.UUID
	user string
}

type fakeRepo struct {
	teams   map[uuid.UUID]*entity.Team
	members map[memberKey]*entity.TeamMember
	slugs   map[string]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		teams:   map[uuid.UUID]*entity.Team{},
		members: map[memberKey]*entity.TeamMember{},
		slugs:   map[string]bool{},
	}
}

func (f *fakeRepo) CreateTeamWithCaptain(_ context.Context, t *entity.Team) (*entity.Team, error) {
	c := *t
	c.ID = uuid.New()
	f.teams[c.ID] = &c
	f.slugs[c.Slug] = true
	f.members[memberKey{c.ID, c.CreatedBy}] = &entity.TeamMember{TeamID: c.ID, UserID: c.CreatedBy, Role: entity.RoleCaptain, Status: entity.MemberActive}
	return &c, nil
}

func (f *fakeRepo) SlugExists(_ context.Context, s string) (bool, error) { return f.slugs[s], nil }

func (f *fakeRepo) FindTeamByID(_ context.Context, id uuid.UUID) (*entity.Team, error) {
	return f.teams[id], nil
}

func (f *fakeRepo) FindTeamByShareCode(_ context.Context, code string) (*entity.Team, error) {
	for _, t := range f.teams {
		if t.ShareCode == code {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) FindMembership(_ context.Context, teamID uuid.UUID, userID string) (*entity.TeamMember, error) {
	return f.members[memberKey{teamID, userID}], nil
}

func (f *fakeRepo) AddMembers(_ context.Context, teamID uuid.UUID, userIDs []string, role, status string) error {
	for _, u := range userIDs {
		k := memberKey{teamID, u}
		m, ok := f.members[k]
		switch {
		case !ok:
			f.members[k] = &entity.TeamMember{TeamID: teamID, UserID: u, Role: role, Status: status}
		case m.Status == entity.MemberPending && status == entity.MemberActive:
			m.Role, m.Status = role, status
		}
	}
	return nil
}

func (f *fakeRepo) RemoveMember(_ context.Context, teamID uuid.UUID, userID string) error {
	delete(f.members, memberKey{teamID, userID})
	return nil
}

func (f *fakeRepo) ListMembers(_ context.Context, teamID uuid.UUID) ([]entity.TeamMemberWithUser, error) {
	var out []entity.TeamMemberWithUser
	for k, m := range f.members {
		if k.team == teamID {
			out = append(out, entity.TeamMemberWithUser{TeamMember: *m})
		}
	}
	return out, nil
}

func (f *fakeRepo) ListTeamsByUser(_ context.Context, userID string) ([]entity.TeamWithRole, error) {
	var out []entity.TeamWithRole
	for k, m := range f.members {
		if k.user == userID && m.Status == entity.MemberActive {
			out = append(out, entity.TeamWithRole{Team: *f.teams[k.team], MemberRole: m.Role})
		}
	}
	return out, nil
}

func (f *fakeRepo) AreTeammates(_ context.Context, a, b string) (bool, error) {
	for k, m := range f.members {
		if k.user != a || m.Status != entity.MemberActive {
			continue
		}
		if o, ok := f.members[memberKey{k.team, b}]; ok && o.Status == entity.MemberActive {
			return true, nil
		}
	}
	return false, nil
}

func code(err *errors.AppError) errors.ErrorCode {
	if err == nil {
		return ""
	}
	return err.Code
}

func TestCreateTeamDedupesSlug(t *testing.T) {
	repo := newFakeRepo()
	svc := NewTeamService(repo)
	ctx := context.Background()

	first, err := svc.CreateTeam(ctx, "u1", &dto.CreateTeamRequest{Name: "Dice Goblins"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.CreateTeam(ctx, "u2", &dto.CreateTeamRequest{Name: "Dice  Goblins!"})
	if err != nil {
		t.Fatal(err)
	}
	if first.Slug != "dice-goblins" || second.Slug != "dice-goblins-2" {
		t.Fatalf("unexpected slugs %q %q", first.Slug, second.Slug)
	}
	if len(first.ShareCode) != 7 || first.ShareCode == second.ShareCode {
		t.Fatalf("unexpected share codes %q %q", first.ShareCode, second.ShareCode)
	}
	if first.MemberRole != entity.RoleCaptain {
		t.Fatalf("creator should be captain, got %q", first.MemberRole)
	}
}

func TestRosterManagement(t *testing.T) {
	repo := newFakeRepo()
	svc := NewTeamService(repo)
	ctx := context.Background()

	team, _ := svc.CreateTeam(ctx, "cap", &dto.CreateTeamRequest{Name: "Crew"})
	id := team.ID.String()

	if err := svc.AddMembers(ctx, "cap", id, &dto.AddMembersRequest{UserIDs: []string{"p1", "p2"}, Role: entity.RolePlayer}); err != nil {
		t.Fatal(err)
	}
	if got := code(svc.AddMembers(ctx, "p1", id, &dto.AddMembersRequest{UserIDs: []string{"p3"}, Role: entity.RolePlayer})); got != errors.ErrForbidden {
		t.Fatalf("player adding members: want FORBIDDEN, got %q", got)
	}
	if got := code(svc.AddMembers(ctx, "stranger", id, &dto.AddMembersRequest{UserIDs: []string{"p3"}})); got != errors.ErrNotFound {
		t.Fatalf("outsider: want NOT_FOUND, got %q", got)
	}

	if got := code(svc.RemoveMember(ctx, "p1", id, "p2")); got != errors.ErrForbidden {
		t.Fatalf("player removing another: want FORBIDDEN, got %q", got)
	}
	if err := svc.RemoveMember(ctx, "p1", id, "p1"); err != nil {
		t.Fatalf("leaving should succeed: %v", err)
	}
	if got := code(svc.RemoveMember(ctx, "cap", id, "cap")); got != errors.ErrForbidden {
		t.Fatalf("captain removal: want FORBIDDEN, got %q", got)
	}

	members, err := svc.ListMembers(ctx, "cap", id)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 2 {
		t.Fatalf("want captain and p2, got %d members", len(members))
	}
}

func TestJoinByShareCodeIsPending(t *testing.T) {
	repo := newFakeRepo()
	svc := NewTeamService(repo)
	ctx := context.Background()

	team, _ := svc.CreateTeam(ctx, "cap", &dto.CreateTeamRequest{Name: "Crew"})
	if _, err := svc.JoinByShareCode(ctx, "newbie", team.ShareCode); err != nil {
		t.Fatal(err)
	}

	ok, _ := svc.AreTeammates(ctx, "cap", "newbie")
	if ok {
		t.Fatal("pending members are not teammates")
	}
	if _, err := svc.JoinByShareCode(ctx, "newbie", "nope"); code(err) != errors.ErrNotFound {
		t.Fatalf("unknown code: want NOT_FOUND, got %q", code(err))
	}
}

func TestAddMembersApprovesPendingJoin(t *testing.T) {
	repo := newFakeRepo()
	svc := NewTeamService(repo)
	ctx := context.Background()

	team, _ := svc.CreateTeam(ctx, "cap", &dto.CreateTeamRequest{Name: "Crew"})
	if _, err := svc.JoinByShareCode(ctx, "newbie", team.ShareCode); err != nil {
		t.Fatal(err)
	}
	if err := svc.AddMembers(ctx, "cap", team.ID.String(), &dto.AddMembersRequest{UserIDs: []string{"newbie"}, Role: entity.RoleCoach}); err != nil {
		t.Fatal(err)
	}

	if ok, _ := svc.AreTeammates(ctx, "cap", "newbie"); !ok {
		t.Fatal("approved member must be a teammate")
	}
	if m := repo.members[memberKey{team.ID, "newbie"}]; m.Role != entity.RoleCoach {
		t.Fatalf("want role from the approval, got %q", m.Role)
	}

	// joining again must not demote an active member
	if _, err := svc.JoinByShareCode(ctx, "newbie", team.ShareCode); err != nil {
		t.Fatal(err)
	}
	if ok, _ := svc.AreTeammates(ctx, "cap", "newbie"); !ok {
		t.Fatal("rejoin must keep the member active")
	}
}

func TestAreTeammates(t *testing.T) {
	repo := newFakeRepo()
	svc := NewTeamService(repo)
	ctx := context.Background()

	team, _ := svc.CreateTeam(ctx, "a", &dto.CreateTeamRequest{Name: "Crew"})
	_ = svc.AddMembers(ctx, "a", team.ID.String(), &dto.AddMembersRequest{UserIDs: []string{"b"}, Role: entity.RolePlayer})

	if ok, _ := svc.AreTeammates(ctx, "a", "b"); !ok {
		t.Fatal("want teammates")
	}
	if ok, _ := svc.AreTeammates(ctx, "a", "a"); ok {
		t.Fatal("a user is not their own teammate")
	}
	if ok, _ := svc.AreTeammates(ctx, "a", "c"); ok {
		t.Fatal("c is not on the team")
	}
}

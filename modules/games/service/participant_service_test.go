package service

import (
	"context"
	"testing"

	"roundtable-api/core/errors"
	"roundtable-api/modules/games/dto"
	"roundtable-api/modules/games/entity"
	socialDto "roundtable-api/modules/social/dto"
)

func TestEnforceApplyEligibility(t *testing.T) {
	tests := []struct {
		name       string
		rel        socialDto.Relationship
		visibility string
		status     string
		want       errors.ErrorCode
	}{
		{"public stranger", socialDto.Relationship{}, entity.VisibilityPublic, entity.StatusScheduled, ""},
		{"blocked", socialDto.Relationship{Blocked: true}, entity.VisibilityPublic, entity.StatusScheduled, errors.ErrForbidden},
		{"blocked by owner", socialDto.Relationship{BlockedBy: true}, entity.VisibilityPublic, entity.StatusScheduled, errors.ErrForbidden},
		{"private", socialDto.Relationship{IsConnection: true}, entity.VisibilityPrivate, entity.StatusScheduled, errors.ErrForbidden},
		{"protected stranger", socialDto.Relationship{}, entity.VisibilityProtected, entity.StatusScheduled, errors.ErrForbidden},
		{"protected connection", socialDto.Relationship{IsConnection: true}, entity.VisibilityProtected, entity.StatusScheduled, ""},
		{"protected teammate", socialDto.Relationship{IsTeammate: true}, entity.VisibilityProtected, entity.StatusScheduled, ""},
		{"canceled", socialDto.Relationship{}, entity.VisibilityPublic, entity.StatusCanceled, errors.ErrAlreadyExists},
		{"completed", socialDto.Relationship{}, entity.VisibilityPublic, entity.StatusCompleted, errors.ErrAlreadyExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rel := tt.rel
			err := EnforceApplyEligibility(&rel, &entity.Game{Visibility: tt.visibility, Status: tt.status})
			switch {
			case tt.want == "" && err != nil:
				t.Fatalf("unexpected error %v", err)
			case tt.want != "" && (err == nil || err.Code != tt.want):
				t.Fatalf("want %s, got %v", tt.want, err)
			}
		})
	}
}

func TestApplyToGame(t *testing.T) {
	repo := newFakeRepo()
	g := repo.addGame("o", entity.VisibilityPublic, "g", base)
	svc, social, q := newTestService(repo)
	ctx := context.Background()

	p, appErr := svc.ApplyToGame(ctx, "v", g.ID.String(), &dto.ApplyToGameRequest{Message: " hi "})
	if appErr != nil {
		t.Fatal(appErr)
	}
	if p.Role != entity.RoleApplicant || p.Status != entity.ParticipantPending {
		t.Fatalf("unexpected application %+v", p)
	}
	if len(q.sent) != 1 || q.sent[0].UserID != "o" || q.sent[0].Type != NotifyGameApplication {
		t.Fatalf("owner must be notified, got %+v", q.sent)
	}

	if _, appErr := svc.ApplyToGame(ctx, "v", g.ID.String(), &dto.ApplyToGameRequest{}); appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Fatalf("duplicate application must conflict, got %v", appErr)
	}

	social.rel = socialDto.Relationship{BlockedBy: true}
	if _, appErr := svc.ApplyToGame(ctx, "w", g.ID.String(), &dto.ApplyToGameRequest{}); appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("blocked user must be forbidden, got %v", appErr)
	}
}

func TestApplyAfterRejectionConflicts(t *testing.T) {
	repo := newFakeRepo()
	g := repo.addGame("o", entity.VisibilityPublic, "g", base)
	repo.addParticipant(g.ID, "v", entity.RoleApplicant, entity.ParticipantRejected)
	svc, _, _ := newTestService(repo)

	if _, appErr := svc.ApplyToGame(context.Background(), "v", g.ID.String(), &dto.ApplyToGameRequest{}); appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Fatalf("want CONFLICT, got %v", appErr)
	}
}

func TestInviteToGame(t *testing.T) {
	repo := newFakeRepo()
	g := repo.addGame("o", entity.VisibilityPrivate, "g", base)
	repo.addUser("v")
	svc, social, q := newTestService(repo)
	ctx := context.Background()

	if _, appErr := svc.InviteToGame(ctx, "x", g.ID.String(), &dto.InviteToGameRequest{UserID: "v"}); appErr == nil || appErr.Code != errors.ErrUnauthorized {
		t.Fatalf("non-owner invite must fail, got %v", appErr)
	}
	if _, appErr := svc.InviteToGame(ctx, "o", g.ID.String(), &dto.InviteToGameRequest{Email: "ghost@example.com"}); appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("unknown email must be NOT_FOUND, got %v", appErr)
	}

	social.canInvite = false
	if _, appErr := svc.InviteToGame(ctx, "o", g.ID.String(), &dto.InviteToGameRequest{UserID: "v"}); appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("privacy setting must forbid the invite, got %v", appErr)
	}
	social.canInvite = true

	p, appErr := svc.InviteToGame(ctx, "o", g.ID.String(), &dto.InviteToGameRequest{Email: "v@example.com"})
	if appErr != nil {
		t.Fatal(appErr)
	}
	if p.UserID != "v" || !(&entity.GameParticipant{Role: p.Role, Status: p.Status}).IsPendingInvitation() {
		t.Fatalf("unexpected invitation %+v", p)
	}
	if len(q.sent) != 1 || q.sent[0].UserID != "v" {
		t.Fatalf("invitee must be notified, got %+v", q.sent)
	}

	if _, appErr := svc.InviteToGame(ctx, "o", g.ID.String(), &dto.InviteToGameRequest{UserID: "v"}); appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Fatalf("second invite must conflict, got %v", appErr)
	}
}

func TestInviteReopensRejectedRow(t *testing.T) {
	repo := newFakeRepo()
	g := repo.addGame("o", entity.VisibilityPublic, "g", base)
	repo.addUser("v")
	old := repo.addParticipant(g.ID, "v", entity.RoleApplicant, entity.ParticipantRejected)
	svc, _, _ := newTestService(repo)

	p, appErr := svc.InviteToGame(context.Background(), "o", g.ID.String(), &dto.InviteToGameRequest{UserID: "v"})
	if appErr != nil {
		t.Fatal(appErr)
	}
	if p.ID != old.ID || p.Role != entity.RoleInvited || p.Status != entity.ParticipantPending {
		t.Fatalf("rejected row must be reopened, got %+v", p)
	}
}

func TestAddParticipantToClosedGame(t *testing.T) {
	repo := newFakeRepo()
	g := repo.addGame("o", entity.VisibilityPublic, "g", base)
	repo.addUser("v")
	_ = repo.UpdateGameStatus(context.Background(), g.ID, entity.StatusCompleted)
	svc, _, _ := newTestService(repo)

	req := &dto.AddParticipantRequest{UserID: "v", Role: entity.RolePlayer, Status: entity.ParticipantApproved}
	if _, appErr := svc.AddParticipant(context.Background(), "o", g.ID.String(), req); appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Fatalf("want CONFLICT, got %v", appErr)
	}
}

func TestRespondToInvitation(t *testing.T) {
	repo := newFakeRepo()
	g := repo.addGame("o", entity.VisibilityPrivate, "g", base)
	inv := repo.addParticipant(g.ID, "v", entity.RoleInvited, entity.ParticipantPending)
	svc, _, q := newTestService(repo)
	ctx := context.Background()

	if _, appErr := svc.RespondToInvitation(ctx, "x", inv.ID.String(), "accept"); appErr == nil || appErr.Code != errors.ErrUnauthorized {
		t.Fatalf("only the invitee may respond, got %v", appErr)
	}
	p, appErr := svc.RespondToInvitation(ctx, "v", inv.ID.String(), "accept")
	if appErr != nil {
		t.Fatal(appErr)
	}
	if p.Role != entity.RolePlayer || p.Status != entity.ParticipantApproved {
		t.Fatalf("accepted invite must become an approved player, got %+v", p)
	}
	if len(q.sent) != 1 || q.sent[0].UserID != "o" {
		t.Fatalf("owner must be notified, got %+v", q.sent)
	}
	if _, appErr := svc.RespondToInvitation(ctx, "v", inv.ID.String(), "reject"); appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Fatalf("answered invite must conflict, got %v", appErr)
	}
}

func TestRespondToApplication(t *testing.T) {
	repo := newFakeRepo()
	g := repo.addGame("o", entity.VisibilityPublic, "g", base)
	app := repo.addParticipant(g.ID, "v", entity.RoleApplicant, entity.ParticipantPending)
	svc, _, _ := newTestService(repo)
	ctx := context.Background()

	pending, appErr := svc.ListApplications(ctx, "o", g.ID.String())
	if appErr != nil || len(pending) != 1 {
		t.Fatalf("want one pending application, got %v %v", pending, appErr)
	}

	p, appErr := svc.RespondToApplication(ctx, "o", app.ID.String(), entity.ParticipantRejected)
	if appErr != nil {
		t.Fatal(appErr)
	}
	if p.Status != entity.ParticipantRejected {
		t.Fatalf("want rejected, got %+v", p)
	}
}

func TestUpdateParticipantSelfCannotPromote(t *testing.T) {
	repo := newFakeRepo()
	g := repo.addGame("o", entity.VisibilityPublic, "g", base)
	p := repo.addParticipant(g.ID, "v", entity.RoleApplicant, entity.ParticipantPending)
	svc, _, _ := newTestService(repo)
	approved := entity.ParticipantApproved
	player := entity.RolePlayer

	if _, appErr := svc.UpdateParticipant(context.Background(), "v", p.ID.String(), &dto.UpdateParticipantRequest{Status: &approved}); appErr == nil {
		t.Fatal("self approval must fail")
	}
	if _, appErr := svc.UpdateParticipant(context.Background(), "v", p.ID.String(), &dto.UpdateParticipantRequest{Role: &player}); appErr == nil {
		t.Fatal("self role change must fail")
	}
	if _, appErr := svc.UpdateParticipant(context.Background(), "o", p.ID.String(), &dto.UpdateParticipantRequest{Role: &player, Status: &approved}); appErr != nil {
		t.Fatalf("owner update failed: %v", appErr)
	}
}

func TestRemoveParticipantAndBan(t *testing.T) {
	repo := newFakeRepo()
	g := repo.addGame("o", entity.VisibilityPublic, "g", base)
	owner := repo.addParticipant(g.ID, "o", entity.RolePlayer, entity.ParticipantApproved)
	kicked := repo.addParticipant(g.ID, "k", entity.RolePlayer, entity.ParticipantApproved)
	leaver := repo.addParticipant(g.ID, "l", entity.RolePlayer, entity.ParticipantApproved)
	svc, _, _ := newTestService(repo)
	ctx := context.Background()

	if appErr := svc.RemoveParticipant(ctx, "o", owner.ID.String()); appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("owner cannot remove own row, got %v", appErr)
	}
	if appErr := svc.RemoveBan(ctx, "o", kicked.ID.String()); appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Fatalf("lifting a non-existent ban must conflict, got %v", appErr)
	}

	if appErr := svc.RemoveParticipant(ctx, "o", kicked.ID.String()); appErr != nil {
		t.Fatal(appErr)
	}
	if p, _ := repo.FindParticipantByID(ctx, kicked.ID); p == nil || p.Status != entity.ParticipantRejected {
		t.Fatalf("owner removal must ban, got %+v", p)
	}

	if appErr := svc.RemoveParticipant(ctx, "l", leaver.ID.String()); appErr != nil {
		t.Fatal(appErr)
	}
	if p, _ := repo.FindParticipantByID(ctx, leaver.ID); p != nil {
		t.Fatal("leaving must delete the row")
	}

	if appErr := svc.RemoveBan(ctx, "o", kicked.ID.String()); appErr != nil {
		t.Fatal(appErr)
	}
	if p, _ := repo.FindParticipantByID(ctx, kicked.ID); p != nil {
		t.Fatal("lifting a ban must delete the row")
	}
}

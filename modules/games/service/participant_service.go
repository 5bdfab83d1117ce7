package service

import (
	"context"
	"strings"

	"roundtable-api/core/constants"
	"roundtable-api/core/errors"
	"roundtable-api/core/logger"
	"roundtable-api/core/queue"
	"roundtable-api/modules/games/dto"
	"roundtable-api/modules/games/entity"
	"roundtable-api/modules/games/mapper"
	socialDto "roundtable-api/modules/social/dto"

	"github.com/google/uuid"
)

// Notification types emitted by participant workflows.
const (
	NotifyGameInvite          = "game_invite"
	NotifyGameApplication     = "game_application"
	NotifyInvitationResponse  = "game_invitation_response"
	NotifyApplicationResponse = "game_application_response"
)

type ParticipantServiceInterface interface {
	AddParticipant(ctx context.Context, viewerID, gameID string, req *dto.AddParticipantRequest) (*dto.ParticipantResponse, *errors.AppError)
	ApplyToGame(ctx context.Context, viewerID, gameID string, req *dto.ApplyToGameRequest) (*dto.ParticipantResponse, *errors.AppError)
	InviteToGame(ctx context.Context, viewerID, gameID string, req *dto.InviteToGameRequest) (*dto.ParticipantResponse, *errors.AppError)
	RespondToInvitation(ctx context.Context, viewerID, participantID, action string) (*dto.ParticipantResponse, *errors.AppError)
	RespondToApplication(ctx context.Context, viewerID, participantID, status string) (*dto.ParticipantResponse, *errors.AppError)
	UpdateParticipant(ctx context.Context, viewerID, participantID string, req *dto.UpdateParticipantRequest) (*dto.ParticipantResponse, *errors.AppError)
	RemoveParticipant(ctx context.Context, viewerID, participantID string) *errors.AppError
	RemoveBan(ctx context.Context, viewerID, participantID string) *errors.AppError
	ListParticipants(ctx context.Context, viewerID, gameID string) ([]dto.ParticipantResponse, *errors.AppError)
	ListApplications(ctx context.Context, viewerID, gameID string) ([]dto.ParticipantResponse, *errors.AppError)
}

func (s *GameService) AddParticipant(ctx context.Context, viewerID, gameID string, req *dto.AddParticipantRequest) (*dto.ParticipantResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	game, appErr := s.loadOwnedGame(ctx, viewerID, gameID, "Not authorized to add participants")
	if appErr != nil {
		return nil, appErr
	}
	if appErr := s.checkInvitable(ctx, viewerID, req.UserID, &game.Game); appErr != nil {
		return nil, appErr
	}

	existing, err := s.repo.FindParticipant(ctx, game.ID, req.UserID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to add participant", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "User is already a participant or has applied", nil)
	}

	created, err := s.repo.InsertParticipant(ctx, &entity.GameParticipant{
		GameID: game.ID,
		UserID: req.UserID,
		Role:   req.Role,
		Status: req.Status,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to add participant", err)
	}
	s.invalidateSearch(ctx)
	return mapper.ToParticipantResponse(created), nil
}

func (s *GameService) ApplyToGame(ctx context.Context, viewerID, gameID string, req *dto.ApplyToGameRequest) (*dto.ParticipantResponse, *errors.AppError) {
	if viewerID == "" {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Not authenticated", nil)
	}
	id, err := uuid.Parse(gameID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid game ID format", err)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	game, err := s.repo.FindGameByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to apply to game", err)
	}
	if game == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Game not found", nil)
	}
	if game.OwnerID == viewerID {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "You already own this game", nil)
	}

	rel, appErr := s.relationship(ctx, viewerID, game.OwnerID)
	if appErr != nil {
		return nil, appErr
	}
	if appErr := EnforceApplyEligibility(rel, &game.Game); appErr != nil {
		return nil, appErr
	}

	existing, err := s.repo.FindParticipant(ctx, id, viewerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to apply to game", err)
	}
	if existing != nil {
		if existing.Status == entity.ParticipantRejected {
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "You cannot apply to this game again", nil)
		}
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "Already a participant or applicant", nil)
	}

	p := &entity.GameParticipant{
		GameID: id,
		UserID: viewerID,
		Role:   entity.RoleApplicant,
		Status: entity.ParticipantPending,
	}
	if msg := strings.TrimSpace(req.Message); msg != "" {
		p.Message = &msg
	}
	created, err := s.repo.InsertParticipant(ctx, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to apply to game", err)
	}
	s.invalidateSearch(ctx)

	s.notify(ctx, queue.NotificationPayload{
		UserID:  game.OwnerID,
		Type:    NotifyGameApplication,
		Title:   "New application",
		Message: "Someone applied to " + game.Name,
		Data:    map[string]any{"gameId": id.String(), "participantId": created.ID.String()},
	})
	return mapper.ToParticipantResponse(created), nil
}

// InviteToGame re-opens a previously rejected row instead of failing.
func (s *GameService) InviteToGame(ctx context.Context, viewerID, gameID string, req *dto.InviteToGameRequest) (*dto.ParticipantResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	game, appErr := s.loadOwnedGame(ctx, viewerID, gameID, "Not authorized to invite participants")
	if appErr != nil {
		return nil, appErr
	}

	inviteeID := req.UserID
	if inviteeID == "" {
		if req.Email == "" {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "User ID or email must be provided", nil)
		}
		user, err := s.repo.FindUserByEmail(ctx, req.Email)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrDatabase, "Failed to invite participant", err)
		}
		if user == nil {
			return nil, errors.NewAppError(errors.ErrNotFound, "User with this email not found", nil)
		}
		inviteeID = user.ID
	}
	if inviteeID == viewerID {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "You cannot invite yourself", nil)
	}

	if appErr := s.checkInvitable(ctx, viewerID, inviteeID, &game.Game); appErr != nil {
		return nil, appErr
	}

	existing, err := s.repo.FindParticipant(ctx, game.ID, inviteeID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to invite participant", err)
	}

	var invited *entity.GameParticipant
	switch {
	case existing == nil:
		invited, err = s.repo.InsertParticipant(ctx, &entity.GameParticipant{
			GameID: game.ID,
			UserID: inviteeID,
			Role:   entity.RoleInvited,
			Status: entity.ParticipantPending,
		})
	case existing.Status == entity.ParticipantRejected:
		existing.Role = entity.RoleInvited
		existing.Status = entity.ParticipantPending
		invited, err = s.repo.UpdateParticipant(ctx, existing)
	default:
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "User is already a participant or has applied", nil)
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to invite participant", err)
	}
	s.invalidateSearch(ctx)

	s.notify(ctx, queue.NotificationPayload{
		UserID:  inviteeID,
		Type:    NotifyGameInvite,
		Title:   "Game invitation",
		Message: "You were invited to " + game.Name,
		Data:    map[string]any{"gameId": game.ID.String(), "participantId": invited.ID.String()},
	})
	return mapper.ToParticipantResponse(invited), nil
}

func (s *GameService) RespondToInvitation(ctx context.Context, viewerID, participantID, action string) (*dto.ParticipantResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	p, appErr := s.loadParticipant(ctx, viewerID, participantID)
	if appErr != nil {
		return nil, appErr
	}
	if p.UserID != viewerID {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Not authorized to respond to this invitation", nil)
	}
	if !p.IsPendingInvitation() {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "Invitation is no longer pending", nil)
	}

	if action == "accept" {
		p.Role = entity.RolePlayer
		p.Status = entity.ParticipantApproved
	} else {
		p.Status = entity.ParticipantRejected
	}
	updated, err := s.repo.UpdateParticipant(ctx, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to respond to invitation", err)
	}
	s.invalidateSearch(ctx)

	if game, err := s.repo.FindGameByID(ctx, p.GameID); err == nil && game != nil {
		s.notify(ctx, queue.NotificationPayload{
			UserID:  game.OwnerID,
			Type:    NotifyInvitationResponse,
			Title:   "Invitation " + action + "ed",
			Message: "Your invitation to " + game.Name + " was " + action + "ed",
			Data:    map[string]any{"gameId": game.ID.String(), "participantId": p.ID.String()},
		})
	}
	return mapper.ToParticipantResponse(updated), nil
}

func (s *GameService) RespondToApplication(ctx context.Context, viewerID, participantID, status string) (*dto.ParticipantResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	p, appErr := s.loadParticipant(ctx, viewerID, participantID)
	if appErr != nil {
		return nil, appErr
	}
	game, appErr := s.loadOwnedGame(ctx, viewerID, p.GameID.String(), "Not authorized to review applications")
	if appErr != nil {
		return nil, appErr
	}
	if !p.IsPendingApplication() {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "Application is no longer pending", nil)
	}

	if status == entity.ParticipantApproved {
		p.Role = entity.RolePlayer
		p.Status = entity.ParticipantApproved
	} else {
		p.Status = entity.ParticipantRejected
	}
	updated, err := s.repo.UpdateParticipant(ctx, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to respond to application", err)
	}
	s.invalidateSearch(ctx)

	s.notify(ctx, queue.NotificationPayload{
		UserID:  p.UserID,
		Type:    NotifyApplicationResponse,
		Title:   "Application " + status,
		Message: "Your application to " + game.Name + " was " + status,
		Data:    map[string]any{"gameId": game.ID.String(), "participantId": p.ID.String()},
	})
	return mapper.ToParticipantResponse(updated), nil
}

// UpdateParticipant lets the owner edit any row. A participant editing their
// own row may only step back, never promote themselves.
func (s *GameService) UpdateParticipant(ctx context.Context, viewerID, participantID string, req *dto.UpdateParticipantRequest) (*dto.ParticipantResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	p, appErr := s.loadParticipant(ctx, viewerID, participantID)
	if appErr != nil {
		return nil, appErr
	}
	game, err := s.repo.FindGameByID(ctx, p.GameID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to update participant", err)
	}
	if game == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Game not found", nil)
	}

	isOwner := game.OwnerID == viewerID
	if !isOwner && p.UserID != viewerID {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Not authorized to update this participant", nil)
	}
	if !isOwner {
		if req.Role != nil && *req.Role != p.Role {
			return nil, errors.NewAppError(errors.ErrUnauthorized, "Only the owner can change roles", nil)
		}
		if req.Status != nil && *req.Status == entity.ParticipantApproved && p.Status != entity.ParticipantApproved {
			return nil, errors.NewAppError(errors.ErrUnauthorized, "Only the owner can approve participants", nil)
		}
	}

	if req.Role != nil {
		p.Role = *req.Role
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	updated, err := s.repo.UpdateParticipant(ctx, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to update participant", err)
	}
	s.invalidateSearch(ctx)
	return mapper.ToParticipantResponse(updated), nil
}

// RemoveParticipant bans when the owner removes someone and deletes the row
// when a participant leaves.
func (s *GameService) RemoveParticipant(ctx context.Context, viewerID, participantID string) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	p, appErr := s.loadParticipant(ctx, viewerID, participantID)
	if appErr != nil {
		return appErr
	}
	game, err := s.repo.FindGameByID(ctx, p.GameID)
	if err != nil {
		return errors.NewAppError(errors.ErrDatabase, "Failed to remove participant", err)
	}
	if game == nil {
		return errors.NewAppError(errors.ErrNotFound, "Game not found", nil)
	}

	switch {
	case game.OwnerID == viewerID:
		if p.UserID == viewerID {
			return errors.NewAppError(errors.ErrInvalidInput, "The owner cannot leave their own game", nil)
		}
		p.Status = entity.ParticipantRejected
		if _, err := s.repo.UpdateParticipant(ctx, p); err != nil {
			return errors.NewAppError(errors.ErrDatabase, "Failed to remove participant", err)
		}
	case p.UserID == viewerID:
		if err := s.repo.DeleteParticipant(ctx, p.ID); err != nil {
			return errors.NewAppError(errors.ErrDatabase, "Failed to remove participant", err)
		}
	default:
		return errors.NewAppError(errors.ErrUnauthorized, "Not authorized to remove this participant", nil)
	}
	s.invalidateSearch(ctx)
	return nil
}

func (s *GameService) RemoveBan(ctx context.Context, viewerID, participantID string) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	p, appErr := s.loadParticipant(ctx, viewerID, participantID)
	if appErr != nil {
		return appErr
	}
	if _, appErr := s.loadOwnedGame(ctx, viewerID, p.GameID.String(), "Not authorized to lift this ban"); appErr != nil {
		return appErr
	}
	if p.Status != entity.ParticipantRejected {
		return errors.NewAppError(errors.ErrAlreadyExists, "Participant is not banned", nil)
	}
	if err := s.repo.DeleteParticipant(ctx, p.ID); err != nil {
		return errors.NewAppError(errors.ErrDatabase, "Failed to remove ban", err)
	}
	s.invalidateSearch(ctx)
	return nil
}

func (s *GameService) ListParticipants(ctx context.Context, viewerID, gameID string) ([]dto.ParticipantResponse, *errors.AppError) {
	id, err := uuid.Parse(gameID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid game ID format", err)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if _, appErr := s.findVisibleGame(ctx, viewerID, id); appErr != nil {
		return nil, appErr
	}
	rows, err := s.repo.ListParticipants(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to fetch game participants", err)
	}
	return mapper.ToParticipantsWithUser(rows), nil
}

func (s *GameService) ListApplications(ctx context.Context, viewerID, gameID string) ([]dto.ParticipantResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	game, appErr := s.loadOwnedGame(ctx, viewerID, gameID, "Not authorized to view applications")
	if appErr != nil {
		return nil, appErr
	}
	rows, err := s.repo.ListPendingApplications(ctx, game.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to fetch applications", err)
	}
	return mapper.ToParticipantsWithUser(rows), nil
}

func (s *GameService) loadParticipant(ctx context.Context, viewerID, participantID string) (*entity.GameParticipant, *errors.AppError) {
	if viewerID == "" {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Not authenticated", nil)
	}
	id, err := uuid.Parse(participantID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid participant ID format", err)
	}
	p, err := s.repo.FindParticipantByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to fetch participant", err)
	}
	if p == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Participant not found", nil)
	}
	return p, nil
}

func (s *GameService) checkInvitable(ctx context.Context, inviterID, inviteeID string, game *entity.Game) *errors.AppError {
	user, err := s.repo.FindUserByID(ctx, inviteeID)
	if err != nil {
		return errors.NewAppError(errors.ErrDatabase, "Failed to fetch user", err)
	}
	if user == nil {
		return errors.NewAppError(errors.ErrNotFound, "User not found", nil)
	}

	rel, appErr := s.relationship(ctx, inviterID, inviteeID)
	if appErr != nil {
		return appErr
	}
	canInvite := true
	if s.social != nil {
		if canInvite, appErr = s.social.CanInvite(ctx, inviterID, inviteeID); appErr != nil {
			return appErr
		}
	}
	return EnforceInviteEligibility(rel, canInvite, game)
}

func (s *GameService) relationship(ctx context.Context, viewerID, otherID string) (*socialDto.Relationship, *errors.AppError) {
	if s.social == nil {
		return &socialDto.Relationship{}, nil
	}
	return s.social.GetRelationship(ctx, viewerID, otherID)
}

// notify never fails the calling operation.
func (s *GameService) notify(ctx context.Context, payload queue.NotificationPayload) {
	if err := s.queue.EnqueueNotification(ctx, payload); err != nil {
		logger.Warn("GameService:notify", err, "type", payload.Type, "user_id", payload.UserID)
	}
}

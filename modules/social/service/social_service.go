package service

import (
	"context"

	"roundtable-api/core/cache"
	"roundtable-api/core/constants"
	coreEntity "roundtable-api/core/entity"
	"roundtable-api/core/errors"
	"roundtable-api/core/logger"
	"roundtable-api/modules/social/dto"
	"roundtable-api/modules/social/entity"
	"roundtable-api/modules/social/mapper"
	"roundtable-api/modules/social/repository"
)

// TeammateChecker reports whether two users share an active team.
type TeammateChecker interface {
	AreTeammates(ctx context.Context, a, b string) (bool, *errors.AppError)
}

type SocialServiceInterface interface {
	Follow(ctx context.Context, viewerID, targetID, userAgent string) *errors.AppError
	Unfollow(ctx context.Context, viewerID, targetID, userAgent string) *errors.AppError
	Block(ctx context.Context, viewerID string, req *dto.BlockRequest, userAgent string) *errors.AppError
	Unblock(ctx context.Context, viewerID, targetID, userAgent string) *errors.AppError
	ListBlocks(ctx context.Context, viewerID string) ([]dto.BlockedUserResponse, *errors.AppError)
	GetRelationship(ctx context.Context, viewerID, otherID string) (*dto.Relationship, *errors.AppError)
	CanInvite(ctx context.Context, inviterID, inviteeID string) (bool, *errors.AppError)
}

type SocialService struct {
	repo  repository.SocialRepositoryInterface
	teams TeammateChecker
	cache cache.Cache
}

func NewSocialService(repo repository.SocialRepositoryInterface, teams TeammateChecker, c cache.Cache) *SocialService {
	if c == nil {
		c = cache.NewNoopCache()
	}
	return &SocialService{repo: repo, teams: teams, cache: c}
}

// invalidateGameSearch drops cached game searches, which filter out games
// owned by blocked users.
func (s *SocialService) invalidateGameSearch(ctx context.Context) {
	if _, err := s.cache.IncrVersion(ctx, constants.RedisKeyGamesVersion); err != nil {
		logger.Warn("SocialService:invalidateGameSearch", err)
	}
}

func audit(actor, target, action, userAgent string, extra map[string]any) *entity.AuditLog {
	meta := coreEntity.JSONB{}
	if userAgent != "" {
		meta["userAgent"] = userAgent
	}
	for k, v := range extra {
		meta[k] = v
	}
	return &entity.AuditLog{ActorUserID: actor, TargetUserID: target, Action: action, Metadata: meta}
}

// Follow is idempotent: following someone twice succeeds.
func (s *SocialService) Follow(ctx context.Context, viewerID, targetID, userAgent string) *errors.AppError {
	if viewerID == "" {
		return errors.NewAppError(errors.ErrUnauthorized, "Not authenticated", nil)
	}
	if viewerID == targetID {
		return errors.NewAppError(errors.ErrInvalidInput, "Cannot follow yourself", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	target, err := s.repo.FindUserPrivacy(ctx, targetID)
	if err != nil {
		return errors.NewAppError(errors.ErrDatabase, "Failed to follow user", err)
	}
	if target == nil {
		return errors.NewAppError(errors.ErrNotFound, "User not found", nil)
	}
	if !target.Settings().FollowsAllowed() {
		return errors.NewAppError(errors.ErrForbidden, "User is not accepting new followers", nil)
	}

	rel, err := s.repo.GetRelationship(ctx, viewerID, targetID)
	if err != nil {
		return errors.NewAppError(errors.ErrDatabase, "Failed to follow user", err)
	}
	if rel.Blocked || rel.BlockedBy {
		return errors.NewAppError(errors.ErrBlocked, "Interaction not allowed", nil)
	}
	if rel.Following {
		return nil
	}

	if err := s.repo.InsertFollow(ctx, viewerID, targetID, audit(viewerID, targetID, entity.AuditFollow, userAgent, nil)); err != nil {
		return errors.NewAppError(errors.ErrDatabase, "Failed to follow user", err)
	}
	return nil
}

func (s *SocialService) Unfollow(ctx context.Context, viewerID, targetID, userAgent string) *errors.AppError {
	if viewerID == "" {
		return errors.NewAppError(errors.ErrUnauthorized, "Not authenticated", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if err := s.repo.DeleteFollow(ctx, viewerID, targetID, audit(viewerID, targetID, entity.AuditUnfollow, userAgent, nil)); err != nil {
		return errors.NewAppError(errors.ErrDatabase, "Failed to unfollow user", err)
	}
	return nil
}

func (s *SocialService) Block(ctx context.Context, viewerID string, req *dto.BlockRequest, userAgent string) *errors.AppError {
	if viewerID == "" {
		return errors.NewAppError(errors.ErrUnauthorized, "Not authenticated", nil)
	}
	if viewerID == req.UserID {
		return errors.NewAppError(errors.ErrInvalidInput, "Cannot block yourself", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var reason *string
	extra := map[string]any{}
	if req.Reason != "" {
		reason = &req.Reason
		extra["reason"] = req.Reason
	}

	if err := s.repo.InsertBlock(ctx, viewerID, req.UserID, reason, audit(viewerID, req.UserID, entity.AuditBlock, userAgent, extra)); err != nil {
		return errors.NewAppError(errors.ErrDatabase, "Failed to block user", err)
	}
	s.invalidateGameSearch(ctx)
	logger.Info("SocialService:Block", "blocker_id", viewerID, "blockee_id", req.UserID)
	return nil
}

func (s *SocialService) Unblock(ctx context.Context, viewerID, targetID, userAgent string) *errors.AppError {
	if viewerID == "" {
		return errors.NewAppError(errors.ErrUnauthorized, "Not authenticated", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if err := s.repo.DeleteBlock(ctx, viewerID, targetID, audit(viewerID, targetID, entity.AuditUnblock, userAgent, nil)); err != nil {
		return errors.NewAppError(errors.ErrDatabase, "Failed to unblock user", err)
	}
	s.invalidateGameSearch(ctx)
	return nil
}

func (s *SocialService) ListBlocks(ctx context.Context, viewerID string) ([]dto.BlockedUserResponse, *errors.AppError) {
	if viewerID == "" {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Not authenticated", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	rows, err := s.repo.ListBlocks(ctx, viewerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to list blocked users", err)
	}
	return mapper.ToBlockedUserResponses(rows), nil
}

// GetRelationship treats a follow in either direction as a connection.
func (s *SocialService) GetRelationship(ctx context.Context, viewerID, otherID string) (*dto.Relationship, *errors.AppError) {
	if viewerID == "" || otherID == "" || viewerID == otherID {
		return &dto.Relationship{}, nil
	}

	row, err := s.repo.GetRelationship(ctx, viewerID, otherID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to load relationship", err)
	}
	rel := mapper.ToRelationship(row)

	if s.teams != nil {
		teammates, appErr := s.teams.AreTeammates(ctx, viewerID, otherID)
		if appErr != nil {
			return nil, appErr
		}
		rel.IsTeammate = teammates
	}
	return rel, nil
}

// CanInvite applies the invitee's allowInvites privacy setting.
func (s *SocialService) CanInvite(ctx context.Context, inviterID, inviteeID string) (bool, *errors.AppError) {
	invitee, err := s.repo.FindUserPrivacy(ctx, inviteeID)
	if err != nil {
		return false, errors.NewAppError(errors.ErrDatabase, "Failed to load privacy settings", err)
	}
	if invitee == nil {
		return false, nil
	}

	switch invitee.Settings().AllowInvites {
	case entity.InvitesNobody:
		return false, nil
	case entity.InvitesConnections:
		rel, appErr := s.GetRelationship(ctx, inviterID, inviteeID)
		if appErr != nil {
			return false, appErr
		}
		return rel.IsConnection || rel.IsTeammate, nil
	default:
		return true, nil
	}
}

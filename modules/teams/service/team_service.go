package service

import (
	"context"
	"fmt"
	"strings"

	"roundtable-api/core/constants"
	"roundtable-api/core/errors"
	"roundtable-api/core/logger"
	"roundtable-api/core/utils"
	"roundtable-api/modules/teams/dto"
	"roundtable-api/modules/teams/entity"
	"roundtable-api/modules/teams/mapper"
	"roundtable-api/modules/teams/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const maxSlugAttempts = 20

type TeamServiceInterface interface {
	CreateTeam(ctx context.Context, viewerID string, req *dto.CreateTeamRequest) (*dto.TeamResponse, *errors.AppError)
	GetTeam(ctx context.Context, viewerID, id string) (*dto.TeamResponse, *errors.AppError)
	JoinByShareCode(ctx context.Context, viewerID, code string) (*dto.TeamResponse, *errors.AppError)
	ListMyTeams(ctx context.Context, viewerID string) ([]dto.TeamResponse, *errors.AppError)
	ListMembers(ctx context.Context, viewerID, teamID string) ([]dto.TeamMemberResponse, *errors.AppError)
	AddMembers(ctx context.Context, viewerID, teamID string, req *dto.AddMembersRequest) *errors.AppError
	RemoveMember(ctx context.Context, viewerID, teamID, userID string) *errors.AppError
	AreTeammates(ctx context.Context, a, b string) (bool, *errors.AppError)
}

type TeamService struct {
	repo repository.TeamRepositoryInterface
}

func NewTeamService(repo repository.TeamRepositoryInterface) *TeamService {
	return &TeamService{repo: repo}
}

// uniqueSlug appends -2, -3, ... until the slug is free.
func (s *TeamService) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = strings.ToLower(utils.GenerateID())
	}

	candidate := base
	for i := 2; i <= maxSlugAttempts+1; i++ {
		exists, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return fmt.Sprintf("%s-%s", base, strings.ToLower(utils.GenerateID())), nil
}

func (s *TeamService) CreateTeam(ctx context.Context, viewerID string, req *dto.CreateTeamRequest) (*dto.TeamResponse, *errors.AppError) {
	if viewerID == "" {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Not authenticated", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	teamSlug, err := s.uniqueSlug(ctx, req.Name)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to create team", err)
	}

	team := &entity.Team{
		Name:        req.Name,
		Slug:        teamSlug,
		Description: utils.StringPtr(req.Description),
		ShareCode:   utils.GenerateID(),
		CreatedBy:   viewerID,
	}

	created, err := s.repo.CreateTeamWithCaptain(ctx, team)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to create team", err)
	}
	logger.Info("TeamService:CreateTeam", "team_id", created.ID, "slug", created.Slug)

	resp := mapper.ToTeamResponse(created)
	resp.MemberRole = entity.RoleCaptain
	resp.MemberCount = 1
	return resp, nil
}

// loadTeam resolves a team the viewer belongs to. Outsiders see NOT_FOUND.
func (s *TeamService) loadTeam(ctx context.Context, viewerID, id string) (*entity.Team, *entity.TeamMember, *errors.AppError) {
	teamID := utils.ToUUID(id)
	if teamID == uuid.Nil {
		return nil, nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid team id", nil)
	}

	team, err := s.repo.FindTeamByID(ctx, teamID)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrDatabase, "Failed to load team", err)
	}
	if team == nil {
		return nil, nil, errors.NewAppError(errors.ErrNotFound, "Team not found", nil)
	}

	member, err := s.repo.FindMembership(ctx, teamID, viewerID)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrDatabase, "Failed to load team", err)
	}
	if member == nil || member.Status != entity.MemberActive {
		return nil, nil, errors.NewAppError(errors.ErrNotFound, "Team not found", nil)
	}
	return team, member, nil
}

func (s *TeamService) GetTeam(ctx context.Context, viewerID, id string) (*dto.TeamResponse, *errors.AppError) {
	if viewerID == "" {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Not authenticated", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	team, member, appErr := s.loadTeam(ctx, viewerID, id)
	if appErr != nil {
		return nil, appErr
	}
	resp := mapper.ToTeamResponse(team)
	resp.MemberRole = member.Role
	return resp, nil
}

// JoinByShareCode adds the viewer as a pending player until a captain confirms.
func (s *TeamService) JoinByShareCode(ctx context.Context, viewerID, code string) (*dto.TeamResponse, *errors.AppError) {
	if viewerID == "" {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Not authenticated", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	team, err := s.repo.FindTeamByShareCode(ctx, code)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to join team", err)
	}
	if team == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Team not found", nil)
	}

	if err := s.repo.AddMembers(ctx, team.ID, []string{viewerID}, entity.RolePlayer, entity.MemberPending); err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to join team", err)
	}
	return mapper.ToTeamResponse(team), nil
}

func (s *TeamService) ListMyTeams(ctx context.Context, viewerID string) ([]dto.TeamResponse, *errors.AppError) {
	if viewerID == "" {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Not authenticated", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	rows, err := s.repo.ListTeamsByUser(ctx, viewerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to list teams", err)
	}
	return mapper.ToTeamResponses(rows), nil
}

func (s *TeamService) ListMembers(ctx context.Context, viewerID, teamID string) ([]dto.TeamMemberResponse, *errors.AppError) {
	if viewerID == "" {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Not authenticated", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	team, _, appErr := s.loadTeam(ctx, viewerID, teamID)
	if appErr != nil {
		return nil, appErr
	}

	rows, err := s.repo.ListMembers(ctx, team.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to list members", err)
	}
	return mapper.ToTeamMemberResponses(rows), nil
}

func (s *TeamService) AddMembers(ctx context.Context, viewerID, teamID string, req *dto.AddMembersRequest) *errors.AppError {
	if viewerID == "" {
		return errors.NewAppError(errors.ErrUnauthorized, "Not authenticated", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	team, member, appErr := s.loadTeam(ctx, viewerID, teamID)
	if appErr != nil {
		return appErr
	}
	if !member.CanManage() {
		return errors.NewAppError(errors.ErrForbidden, "Only a captain or coach can add members", nil)
	}

	if err := s.repo.AddMembers(ctx, team.ID, req.UserIDs, req.Role, entity.MemberActive); err != nil {
		return errors.NewAppError(errors.ErrDatabase, "Failed to add members", err)
	}
	return nil
}

// RemoveMember lets managers remove anyone but the captain, and anyone leave on their own.
func (s *TeamService) RemoveMember(ctx context.Context, viewerID, teamID, userID string) *errors.AppError {
	if viewerID == "" {
		return errors.NewAppError(errors.ErrUnauthorized, "Not authenticated", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	team, member, appErr := s.loadTeam(ctx, viewerID, teamID)
	if appErr != nil {
		return appErr
	}

	if userID != viewerID && !member.CanManage() {
		return errors.NewAppError(errors.ErrForbidden, "Only a captain or coach can remove members", nil)
	}

	target, err := s.repo.FindMembership(ctx, team.ID, userID)
	if err != nil {
		return errors.NewAppError(errors.ErrDatabase, "Failed to remove member", err)
	}
	if target == nil {
		return errors.NewAppError(errors.ErrNotFound, "Member not found", nil)
	}
	if target.Role == entity.RoleCaptain {
		return errors.NewAppError(errors.ErrForbidden, "The captain cannot be removed", nil)
	}

	if err := s.repo.RemoveMember(ctx, team.ID, userID); err != nil {
		return errors.NewAppError(errors.ErrDatabase, "Failed to remove member", err)
	}
	return nil
}

func (s *TeamService) AreTeammates(ctx context.Context, a, b string) (bool, *errors.AppError) {
	if a == "" || b == "" || a == b {
		return false, nil
	}
	ok, err := s.repo.AreTeammates(ctx, a, b)
	if err != nil {
		return false, errors.NewAppError(errors.ErrDatabase, "Failed to check teammates", err)
	}
	return ok, nil
}

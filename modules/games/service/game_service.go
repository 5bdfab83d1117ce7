package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"roundtable-api/core/cache"
	"roundtable-api/core/constants"
	"roundtable-api/core/errors"
	"roundtable-api/core/logger"
	"roundtable-api/core/queue"
	"roundtable-api/modules/games/dto"
	"roundtable-api/modules/games/entity"
	"roundtable-api/modules/games/mapper"
	"roundtable-api/modules/games/predicate"
	"roundtable-api/modules/games/repository"
	"roundtable-api/modules/games/validator"
	socialDto "roundtable-api/modules/social/dto"

	"github.com/google/uuid"
)

// RelationshipChecker answers social questions about two users.
type RelationshipChecker interface {
	GetRelationship(ctx context.Context, viewerID, otherID string) (*socialDto.Relationship, *errors.AppError)
	CanInvite(ctx context.Context, inviterID, inviteeID string) (bool, *errors.AppError)
}

type GameServiceInterface interface {
	ListGames(ctx context.Context, viewerID string, filters predicate.Filters) ([]dto.GameListItem, *errors.AppError)
	ListGamesWithCount(ctx context.Context, viewerID string, filters predicate.Filters, page, pageSize int) (*dto.GameListPage, *errors.AppError)
	SearchGames(ctx context.Context, viewerID, query string) ([]dto.GameListItem, *errors.AppError)
	GetGame(ctx context.Context, viewerID, id string) (*dto.GameDetailResponse, *errors.AppError)
	ListGamesByCampaign(ctx context.Context, viewerID, campaignID, status string) ([]dto.GameListItem, *errors.AppError)
	CreateGame(ctx context.Context, viewerID string, req *dto.CreateGameRequest) (*dto.GameResponse, *errors.AppError)
	UpdateGame(ctx context.Context, viewerID, id string, req *dto.UpdateGameRequest) (*dto.GameResponse, *errors.AppError)
	DeleteGame(ctx context.Context, viewerID, id string) *errors.AppError
	UpdateGameStatus(ctx context.Context, viewerID, id, status string) (*dto.GameResponse, *errors.AppError)
}

type GameService struct {
	repo      repository.GameRepositoryInterface
	social    RelationshipChecker
	cache     cache.Cache
	queue     queue.Enqueuer
	searchTTL time.Duration
}

func NewGameService(repo repository.GameRepositoryInterface, social RelationshipChecker, c cache.Cache, q queue.Enqueuer, searchTTL time.Duration) *GameService {
	if c == nil {
		c = cache.NewNoopCache()
	}
	if q == nil {
		q = queue.NewInlineEnqueuer(nil)
	}
	if searchTTL <= 0 {
		searchTTL = constants.DefaultSearchCacheTTL
	}
	return &GameService{repo: repo, social: social, cache: c, queue: q, searchTTL: searchTTL}
}

func (s *GameService) ListGames(ctx context.Context, viewerID string, filters predicate.Filters) ([]dto.GameListItem, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	rows, err := s.repo.ListGames(ctx, viewerID, filters, predicate.ScopeAll, nil)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to list games", err)
	}
	return mapper.ToGameListItems(rows, viewerID), nil
}

func (s *GameService) ListGamesWithCount(ctx context.Context, viewerID string, filters predicate.Filters, page, pageSize int) (*dto.GameListPage, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	page, pageSize = validator.NormalizePage(page, pageSize)

	rows, err := s.repo.ListGames(ctx, viewerID, filters, predicate.ScopeAll, &repository.Page{
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to list games", err)
	}

	total, err := s.repo.CountGames(ctx, viewerID, filters, predicate.ScopeAll)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to count games", err)
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	return &dto.GameListPage{
		Items:      mapper.ToGameListItems(rows, viewerID),
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// SearchGames only ever returns public games, at most SearchResultLimit of them.
func (s *GameService) SearchGames(ctx context.Context, viewerID, query string) ([]dto.GameListItem, *errors.AppError) {
	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) < constants.SearchMinQueryLength {
		return []dto.GameListItem{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	key := s.searchKey(ctx, viewerID, q)
	var cached []dto.GameListItem
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	rows, err := s.repo.ListGames(ctx, viewerID, predicate.Filters{SearchTerm: q}, predicate.ScopePublicOnly,
		&repository.Page{Limit: constants.SearchResultLimit})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to search games", err)
	}

	items := make([]dto.GameListItem, 0, len(rows))
	for i := range rows {
		if rows[i].Visibility != entity.VisibilityPublic {
			continue
		}
		items = append(items, mapper.ToGameListItem(&rows[i], viewerID))
		if len(items) == constants.SearchResultLimit {
			break
		}
	}

	if err := s.cache.Set(ctx, key, items, s.searchTTL); err != nil {
		logger.Warn("GameService:SearchGames:CacheSet", err)
	}
	return items, nil
}

func (s *GameService) searchKey(ctx context.Context, viewerID, q string) string {
	version, err := s.cache.GetVersion(ctx, constants.RedisKeyGamesVersion)
	if err != nil {
		logger.Warn("GameService:searchKey:GetVersion", err)
	}
	viewer := viewerID
	if viewer == "" {
		viewer = "anon"
	}
	return fmt.Sprintf("%sv%d:%s:%s", constants.RedisKeySearchGames, version, viewer, strings.ToLower(q))
}

// invalidateSearch moves every cached search to a stale namespace.
func (s *GameService) invalidateSearch(ctx context.Context) {
	if _, err := s.cache.IncrVersion(ctx, constants.RedisKeyGamesVersion); err != nil {
		logger.Warn("GameService:invalidateSearch", err)
	}
}

// GetGame hides games the viewer may not see behind NOT_FOUND.
func (s *GameService) GetGame(ctx context.Context, viewerID, id string) (*dto.GameDetailResponse, *errors.AppError) {
	gameID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid game ID format", err)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	game, appErr := s.findVisibleGame(ctx, viewerID, gameID)
	if appErr != nil {
		return nil, appErr
	}

	participants, err := s.repo.ListParticipants(ctx, gameID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to fetch game participants", err)
	}
	return mapper.ToGameDetailResponse(game, participants), nil
}

func (s *GameService) findVisibleGame(ctx context.Context, viewerID string, gameID uuid.UUID) (*entity.GameDetail, *errors.AppError) {
	game, err := s.repo.FindGameByID(ctx, gameID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to fetch game", err)
	}
	if game == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Game not found", nil)
	}
	if game.Visibility == entity.VisibilityPublic && viewerID == "" {
		return game, nil
	}

	visible, err := s.repo.CountGames(ctx, viewerID, predicate.Filters{GameID: &gameID}, predicate.ScopeAll)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to fetch game", err)
	}
	if visible == 0 {
		return nil, errors.NewAppError(errors.ErrNotFound, "Game not found", nil)
	}
	return game, nil
}

func (s *GameService) ListGamesByCampaign(ctx context.Context, viewerID, campaignID, status string) ([]dto.GameListItem, *errors.AppError) {
	id, err := uuid.Parse(campaignID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid campaign ID format", err)
	}
	return s.ListGames(ctx, viewerID, predicate.Filters{CampaignID: &id, Status: status})
}

func (s *GameService) CreateGame(ctx context.Context, viewerID string, req *dto.CreateGameRequest) (*dto.GameResponse, *errors.AppError) {
	if viewerID == "" {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Not authenticated", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	game := &entity.Game{
		OwnerID:             viewerID,
		GameSystemID:        req.GameSystemID,
		Name:                strings.TrimSpace(req.Name),
		DateTime:            req.DateTime,
		Description:         req.Description,
		ExpectedDuration:    req.ExpectedDuration,
		Price:               req.Price,
		Language:            req.Language,
		Location:            req.Location,
		Status:              entity.StatusScheduled,
		MinimumRequirements: req.MinimumRequirements,
		Visibility:          req.Visibility,
		SafetyRules:         req.SafetyRules,
	}
	if game.Visibility == "" {
		game.Visibility = entity.VisibilityPublic
	}
	if req.CampaignID != "" {
		campaignID, err := uuid.Parse(req.CampaignID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid campaign ID format", err)
		}
		game.CampaignID = &campaignID
	}

	created, err := s.repo.CreateGameWithOwner(ctx, game)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to create game", err)
	}
	s.invalidateSearch(ctx)

	logger.Info("GameService:CreateGame", "game_id", created.ID.String(), "owner_id", viewerID)
	return mapper.ToGameResponse(created), nil
}

func (s *GameService) UpdateGame(ctx context.Context, viewerID, id string, req *dto.UpdateGameRequest) (*dto.GameResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	game, appErr := s.loadOwnedGame(ctx, viewerID, id, "Not authorized to update this game")
	if appErr != nil {
		return nil, appErr
	}

	g := game.Game
	if req.GameSystemID != nil {
		g.GameSystemID = *req.GameSystemID
	}
	if req.Name != nil {
		g.Name = strings.TrimSpace(*req.Name)
	}
	if req.DateTime != nil {
		g.DateTime = *req.DateTime
	}
	if req.Description != nil {
		g.Description = *req.Description
	}
	if req.ExpectedDuration != nil {
		g.ExpectedDuration = *req.ExpectedDuration
	}
	if req.Price != nil {
		g.Price = req.Price
	}
	if req.Language != nil {
		g.Language = *req.Language
	}
	if req.Location != nil {
		g.Location = req.Location
	}
	if req.MinimumRequirements != nil {
		g.MinimumRequirements = req.MinimumRequirements
	}
	if req.Visibility != nil {
		g.Visibility = *req.Visibility
	}
	if req.SafetyRules != nil {
		g.SafetyRules = req.SafetyRules
	}
	if req.Status != nil {
		g.Status = *req.Status
	}

	updated, err := s.repo.UpdateGame(ctx, &g)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to update game", err)
	}
	s.invalidateSearch(ctx)
	return mapper.ToGameResponse(updated), nil
}

func (s *GameService) DeleteGame(ctx context.Context, viewerID, id string) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	game, appErr := s.loadOwnedGame(ctx, viewerID, id, "Not authorized to delete this game")
	if appErr != nil {
		return appErr
	}
	if err := s.repo.DeleteGame(ctx, game.ID); err != nil {
		return errors.NewAppError(errors.ErrDatabase, "Failed to delete game", err)
	}
	s.invalidateSearch(ctx)
	return nil
}

func (s *GameService) UpdateGameStatus(ctx context.Context, viewerID, id, status string) (*dto.GameResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	game, appErr := s.loadOwnedGame(ctx, viewerID, id, "Not authorized to update this game")
	if appErr != nil {
		return nil, appErr
	}
	if err := s.repo.UpdateGameStatus(ctx, game.ID, status); err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to update game status", err)
	}
	s.invalidateSearch(ctx)

	game.Status = status
	return mapper.ToGameResponse(&game.Game), nil
}

// loadOwnedGame resolves id and checks that viewerID owns it.
func (s *GameService) loadOwnedGame(ctx context.Context, viewerID, id, forbiddenMsg string) (*entity.GameDetail, *errors.AppError) {
	if viewerID == "" {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Not authenticated", nil)
	}
	gameID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid game ID format", err)
	}
	game, err := s.repo.FindGameByID(ctx, gameID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to fetch game", err)
	}
	if game == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Game not found", nil)
	}
	if game.OwnerID != viewerID {
		return nil, errors.NewAppError(errors.ErrUnauthorized, forbiddenMsg, nil)
	}
	return game, nil
}

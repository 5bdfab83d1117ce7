package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"roundtable-api/core/cache"
	"roundtable-api/core/constants"
	"roundtable-api/core/errors"
	"roundtable-api/core/logger"
	"roundtable-api/core/storage"
	"roundtable-api/modules/gamesystems/dto"
	"roundtable-api/modules/gamesystems/entity"
	"roundtable-api/modules/gamesystems/mapper"
	"roundtable-api/modules/gamesystems/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const maxSlugAttempts = 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type GameSystemServiceInterface interface {
	Search(ctx context.Context, query string) ([]dto.GameSystemSummary, *errors.AppError)
	Get(ctx context.Context, id int) (*dto.GameSystemResponse, *errors.AppError)
	GetBySlug(ctx context.Context, slug string) (*dto.GameSystemResponse, *errors.AppError)
	Create(ctx context.Context, viewerID string, req *dto.CreateGameSystemRequest) (*dto.GameSystemResponse, *errors.AppError)
	UploadHeroImage(ctx context.Context, viewerID string, id int, req *dto.UploadHeroImageRequest) (*dto.MediaAssetResponse, *errors.AppError)
}

type GameSystemService struct {
	repo      repository.GameSystemRepositoryInterface
	cache     cache.Cache
	store     storage.ObjectStore
	searchTTL time.Duration
}

func NewGameSystemService(repo repository.GameSystemRepositoryInterface, c cache.Cache, store storage.ObjectStore, searchTTL time.Duration) *GameSystemService {
	if c == nil {
		c = cache.NewNoopCache()
	}
	if searchTTL <= 0 {
		searchTTL = constants.DefaultSearchCacheTTL
	}
	return &GameSystemService{repo: repo, cache: c, store: store, searchTTL: searchTTL}
}

func (s *GameSystemService) Search(ctx context.Context, query string) ([]dto.GameSystemSummary, *errors.AppError) {
	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) < constants.SearchMinQueryLength {
		return []dto.GameSystemSummary{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	version, err := s.cache.GetVersion(ctx, constants.RedisKeyGameSystemsVersion)
	if err != nil {
		logger.Warn("GameSystemService:Search:GetVersion", err)
	}
	key := fmt.Sprintf("%sv%d:%s", constants.RedisKeySearchGameSystems, version, strings.ToLower(q))

	var cached []dto.GameSystemSummary
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	rows, err := s.repo.Search(ctx, q, constants.GameSystemSearchLimit)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to search game systems", err)
	}
	items := mapper.ToGameSystemSummaries(rows)

	if err := s.cache.Set(ctx, key, items, s.searchTTL); err != nil {
		logger.Warn("GameSystemService:Search:CacheSet", err)
	}
	return items, nil
}

func (s *GameSystemService) Get(ctx context.Context, id int) (*dto.GameSystemResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	gs, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to load game system", err)
	}
	if gs == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Game system not found", nil)
	}
	return mapper.ToGameSystemResponse(gs), nil
}

func (s *GameSystemService) GetBySlug(ctx context.Context, systemSlug string) (*dto.GameSystemResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	gs, err := s.repo.FindBySlug(ctx, strings.ToLower(strings.TrimSpace(systemSlug)))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to load game system", err)
	}
	if gs == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Game system not found", nil)
	}
	return mapper.ToGameSystemResponse(gs), nil
}

func (s *GameSystemService) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "system"
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
	return "", fmt.Errorf("no free slug for %q", base)
}

func (s *GameSystemService) Create(ctx context.Context, viewerID string, req *dto.CreateGameSystemRequest) (*dto.GameSystemResponse, *errors.AppError) {
	if viewerID == "" {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Not authenticated", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	systemSlug, err := s.uniqueSlug(ctx, req.Name)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "Game system already exists", err)
	}

	created, err := s.repo.Create(ctx, &entity.GameSystem{
		Name:            req.Name,
		Slug:            &systemSlug,
		DescriptionCms:  req.Description,
		MinPlayers:      req.MinPlayers,
		MaxPlayers:      req.MaxPlayers,
		AveragePlayTime: req.AveragePlayTime,
		YearReleased:    req.YearReleased,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to create game system", err)
	}
	s.invalidateSearch(ctx)
	logger.Info("GameSystemService:Create", "game_system_id", created.ID, "slug", systemSlug)

	return mapper.ToGameSystemResponse(&entity.GameSystemDetail{GameSystem: *created}), nil
}

// UploadHeroImage stores the object first; a failed DB write leaves an orphaned object, never a dangling id.
func (s *GameSystemService) UploadHeroImage(ctx context.Context, viewerID string, id int, req *dto.UploadHeroImageRequest) (*dto.MediaAssetResponse, *errors.AppError) {
	if viewerID == "" {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Not authenticated", nil)
	}
	if s.store == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Object storage is not configured", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	gs, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to load game system", err)
	}
	if gs == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Game system not found", nil)
	}

	ext, ok := imageExtensions[req.ContentType]
	if !ok {
		ext = path.Ext(req.FileName)
	}
	key := fmt.Sprintf("game-systems/%d/hero/%s%s", id, uuid.NewString(), ext)

	url, err := s.store.Put(ctx, key, req.Body, req.ContentType)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to upload image", err)
	}

	asset, err := s.repo.AttachHeroImage(ctx, &entity.MediaAsset{
		GameSystemID: id,
		Kind:         entity.MediaKindHero,
		URL:          url,
		StorageKey:   key,
		ContentType:  req.ContentType,
		UploadedBy:   viewerID,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to save image", err)
	}
	return mapper.ToMediaAssetResponse(asset), nil
}

func (s *GameSystemService) invalidateSearch(ctx context.Context) {
	if _, err := s.cache.IncrVersion(ctx, constants.RedisKeyGameSystemsVersion); err != nil {
		logger.Warn("GameSystemService:invalidateSearch", err)
	}
}

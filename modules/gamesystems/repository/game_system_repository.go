package repository

import (
	"context"
	"database/sql"

	"roundtable-api/core/database"
	"roundtable-api/core/logger"
	"roundtable-api/modules/gamesystems/entity"

	"github.com/jmoiron/sqlx"
)

type GameSystemRepositoryInterface interface {
	Search(ctx context.Context, query string, limit int) ([]entity.GameSystem, error)
	FindByID(ctx context.Context, id int) (*entity.GameSystemDetail, error)
	FindBySlug(ctx context.Context, slug string) (*entity.GameSystemDetail, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, gs *entity.GameSystem) (*entity.GameSystem, error)
	// AttachHeroImage records the asset and points the system at it in one tx.
	AttachHeroImage(ctx context.Context, asset *entity.MediaAsset) (*entity.MediaAsset, error)
}

type GameSystemRepository struct {
	DB database.IDatabase
}

func NewGameSystemRepository(db database.IDatabase) *GameSystemRepository {
	return &GameSystemRepository{DB: db}
}

const systemColumns = `gs.id, gs.name, gs.slug, gs.description_cms, gs.min_players, gs.max_players,
	gs.average_play_time, gs.year_released, gs.hero_image_id, gs.is_published, gs.created_at, gs.updated_at`

const detailQuery = `
	SELECT ` + systemColumns + `,
	       hero.url AS hero_image_url,
	       COALESCE(
	           (SELECT array_agg(c.name ORDER BY c.name)
	            FROM game_system_to_category gc
	            INNER JOIN game_system_categories c ON c.id = gc.category_id
	            WHERE gc.game_system_id = gs.id),
	           '{}'
	       ) AS categories
	FROM game_systems gs
	LEFT JOIN media_assets hero ON hero.id = gs.hero_image_id
`

func (r *GameSystemRepository) Search(ctx context.Context, query string, limit int) ([]entity.GameSystem, error) {
	sqlQuery := `
		SELECT ` + systemColumns + `
		FROM game_systems gs
		WHERE gs.name ILIKE $1
		ORDER BY gs.name ASC
		LIMIT $2
	`

	systems := []entity.GameSystem{}
	if err := r.DB.SelectContext(ctx, &systems, sqlQuery, "%"+query+"%", limit); err != nil {
		logger.Error("GameSystemRepository:Search", err)
		return nil, err
	}
	return systems, nil
}

func (r *GameSystemRepository) findOne(ctx context.Context, where string, arg any) (*entity.GameSystemDetail, error) {
	var gs entity.GameSystemDetail
	if err := r.DB.GetContext(ctx, &gs, detailQuery+` WHERE `+where, arg); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &gs, nil
}

func (r *GameSystemRepository) FindByID(ctx context.Context, id int) (*entity.GameSystemDetail, error) {
	gs, err := r.findOne(ctx, `gs.id = $1`, id)
	if err != nil {
		logger.Error("GameSystemRepository:FindByID", err)
	}
	return gs, err
}

func (r *GameSystemRepository) FindBySlug(ctx context.Context, slug string) (*entity.GameSystemDetail, error) {
	gs, err := r.findOne(ctx, `gs.slug = $1`, slug)
	if err != nil {
		logger.Error("GameSystemRepository:FindBySlug", err)
	}
	return gs, err
}

func (r *GameSystemRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := r.DB.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM game_systems WHERE slug = $1)`, slug); err != nil {
		logger.Error("GameSystemRepository:SlugExists", err)
		return false, err
	}
	return exists, nil
}

func (r *GameSystemRepository) Create(ctx context.Context, gs *entity.GameSystem) (*entity.GameSystem, error) {
	query := `
		INSERT INTO game_systems (name, slug, description_cms, min_players, max_players, average_play_time, year_released)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, slug, description_cms, min_players, max_players, average_play_time,
		          year_released, hero_image_id, is_published, created_at, updated_at
	`

	var created entity.GameSystem
	err := r.DB.GetContext(ctx, &created, query,
		gs.Name, gs.Slug, gs.DescriptionCms, gs.MinPlayers, gs.MaxPlayers, gs.AveragePlayTime, gs.YearReleased)
	if err != nil {
		logger.Error("GameSystemRepository:Create", err)
		return nil, err
	}
	return &created, nil
}

func (r *GameSystemRepository) AttachHeroImage(ctx context.Context, asset *entity.MediaAsset) (*entity.MediaAsset, error) {
	var created entity.MediaAsset
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &created, `
			INSERT INTO media_assets (game_system_id, kind, url, storage_key, content_type, uploaded_by)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, game_system_id, kind, url, storage_key, content_type, uploaded_by, created_at`,
			asset.GameSystemID, asset.Kind, asset.URL, asset.StorageKey, asset.ContentType, asset.UploadedBy); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`UPDATE game_systems SET hero_image_id = $1, updated_at = now() WHERE id = $2`, created.ID, asset.GameSystemID)
		return err
	})
	if err != nil {
		logger.Error("GameSystemRepository:AttachHeroImage", err)
		return nil, err
	}
	return &created, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"roundtable-api/core/database"
	"roundtable-api/core/logger"
	"roundtable-api/modules/games/entity"
	"roundtable-api/modules/games/predicate"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Page limits a listing. A nil *Page returns every matching row.
type Page struct {
	Limit  int
	Offset int
}

type GameRepositoryInterface interface {
	// Locators: a missing row is (nil, nil).
	FindGameByID(ctx context.Context, id uuid.UUID) (*entity.GameDetail, error)
	FindParticipantByID(ctx context.Context, id uuid.UUID) (*entity.GameParticipant, error)
	FindParticipant(ctx context.Context, gameID uuid.UUID, userID string) (*entity.GameParticipant, error)
	FindUserByID(ctx context.Context, id string) (*entity.UserRef, error)
	FindUserByEmail(ctx context.Context, email string) (*entity.UserRef, error)

	ListGames(ctx context.Context, viewerID string, filters predicate.Filters, scope predicate.Scope, page *Page) ([]entity.GameListRow, error)
	CountGames(ctx context.Context, viewerID string, filters predicate.Filters, scope predicate.Scope) (int, error)

	CreateGameWithOwner(ctx context.Context, game *entity.Game) (*entity.Game, error)
	UpdateGame(ctx context.Context, game *entity.Game) (*entity.Game, error)
	DeleteGame(ctx context.Context, id uuid.UUID) error
	UpdateGameStatus(ctx context.Context, id uuid.UUID, status string) error

	InsertParticipant(ctx context.Context, p *entity.GameParticipant) (*entity.GameParticipant, error)
	UpdateParticipant(ctx context.Context, p *entity.GameParticipant) (*entity.GameParticipant, error)
	DeleteParticipant(ctx context.Context, id uuid.UUID) error
	ListParticipants(ctx context.Context, gameID uuid.UUID) ([]entity.ParticipantWithUser, error)
	ListPendingApplications(ctx context.Context, gameID uuid.UUID) ([]entity.ParticipantWithUser, error)
}

type GameRepository struct {
	DB database.IDatabase
}

func NewGameRepository(db database.IDatabase) *GameRepository {
	return &GameRepository{DB: db}
}

const gameColumns = `g.id, g.owner_id, g.campaign_id, g.game_system_id, g.name, g.date_time, g.description,
	g.expected_duration, g.price, g.language, g.location, g.status, g.minimum_requirements,
	g.visibility, g.safety_rules, g.created_at, g.updated_at`

const participantColumns = `id, game_id, user_id, role, status, message, created_at, updated_at`

// $1 is always the viewer id; predicate placeholders follow.
const listSelect = `
	SELECT ` + gameColumns + `,
		u.name AS owner_name,
		u.email AS owner_email,
		gs.name AS game_system_name,
		gs.slug AS game_system_slug,
		gs.average_play_time AS game_system_average_play_time,
		gs.min_players AS game_system_min_players,
		gs.max_players AS game_system_max_players,
		ma.url AS system_hero_url,
		COALESCE(ARRAY_REMOVE(ARRAY_AGG(DISTINCT gsc.name), NULL), '{}') AS system_categories,
		COUNT(DISTINCT gp_all.user_id)::int AS participant_count,
		vp.role AS viewer_role,
		vp.status AS viewer_status
	FROM games g
	INNER JOIN "user" u ON u.id = g.owner_id
	INNER JOIN game_systems gs ON gs.id = g.game_system_id
	LEFT JOIN game_participants vp ON vp.game_id = g.id AND vp.user_id = $1
	LEFT JOIN game_participants gp_all ON gp_all.game_id = g.id
	LEFT JOIN media_assets ma ON ma.id = gs.hero_image_id
	LEFT JOIN game_system_to_category gstc ON gstc.game_system_id = gs.id
	LEFT JOIN game_system_categories gsc ON gsc.id = gstc.category_id`

const listGroupOrder = `
	GROUP BY g.id, u.id, gs.id, ma.id, ma.url, vp.role, vp.status
	ORDER BY g.date_time ASC, g.id ASC`

const countSelect = `
	SELECT COUNT(DISTINCT g.id)
	FROM games g
	INNER JOIN "user" u ON u.id = g.owner_id
	INNER JOIN game_systems gs ON gs.id = g.game_system_id`

// BuildListQuery assembles the listing statement and its arguments.
func BuildListQuery(viewerID string, filters predicate.Filters, scope predicate.Scope, page *Page) (string, []any) {
	args := predicate.NewArgs(viewerID)
	where := predicate.Render(predicate.BuildVisibility(viewerID, filters, scope), args)

	query := listSelect + "\n\tWHERE " + where + listGroupOrder
	if page != nil {
		query += fmt.Sprintf("\n\tLIMIT %s OFFSET %s", args.Add(page.Limit), args.Add(page.Offset))
	}
	return query, args.Values()
}

// BuildCountQuery renders the same predicate into a COUNT(DISTINCT g.id) statement.
func BuildCountQuery(viewerID string, filters predicate.Filters, scope predicate.Scope) (string, []any) {
	args := predicate.NewArgs()
	where := predicate.Render(predicate.BuildVisibility(viewerID, filters, scope), args)
	return countSelect + "\n\tWHERE " + where, args.Values()
}

func (r *GameRepository) ListGames(ctx context.Context, viewerID string, filters predicate.Filters, scope predicate.Scope, page *Page) ([]entity.GameListRow, error) {
	query, args := BuildListQuery(viewerID, filters, scope, page)

	rows := []entity.GameListRow{}
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		logger.Error("GameRepository:ListGames", err)
		return nil, err
	}
	return rows, nil
}

func (r *GameRepository) CountGames(ctx context.Context, viewerID string, filters predicate.Filters, scope predicate.Scope) (int, error) {
	query, args := BuildCountQuery(viewerID, filters, scope)

	var total int
	if err := r.DB.GetContext(ctx, &total, query, args...); err != nil {
		logger.Error("GameRepository:CountGames", err)
		return 0, err
	}
	return total, nil
}

func (r *GameRepository) FindGameByID(ctx context.Context, id uuid.UUID) (*entity.GameDetail, error) {
	query := `
		SELECT ` + gameColumns + `,
			u.name AS owner_name,
			u.email AS owner_email,
			gs.name AS game_system_name,
			gs.slug AS game_system_slug
		FROM games g
		INNER JOIN "user" u ON u.id = g.owner_id
		INNER JOIN game_systems gs ON gs.id = g.game_system_id
		WHERE g.id = $1
	`

	var game entity.GameDetail
	err := r.DB.GetContext(ctx, &game, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("GameRepository:FindGameByID", err)
		return nil, err
	}
	return &game, nil
}

func (r *GameRepository) FindParticipantByID(ctx context.Context, id uuid.UUID) (*entity.GameParticipant, error) {
	query := `SELECT ` + participantColumns + ` FROM game_participants WHERE id = $1`

	var p entity.GameParticipant
	if err := r.DB.GetContext(ctx, &p, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("GameRepository:FindParticipantByID", err)
		return nil, err
	}
	return &p, nil
}

func (r *GameRepository) FindParticipant(ctx context.Context, gameID uuid.UUID, userID string) (*entity.GameParticipant, error) {
	query := `SELECT ` + participantColumns + ` FROM game_participants WHERE game_id = $1 AND user_id = $2 LIMIT 1`

	var p entity.GameParticipant
	if err := r.DB.GetContext(ctx, &p, query, gameID, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("GameRepository:FindParticipant", err)
		return nil, err
	}
	return &p, nil
}

func (r *GameRepository) FindUserByID(ctx context.Context, id string) (*entity.UserRef, error) {
	var u entity.UserRef
	if err := r.DB.GetContext(ctx, &u, `SELECT id, name, email FROM "user" WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("GameRepository:FindUserByID", err)
		return nil, err
	}
	return &u, nil
}

func (r *GameRepository) FindUserByEmail(ctx context.Context, email string) (*entity.UserRef, error) {
	var u entity.UserRef
	if err := r.DB.GetContext(ctx, &u, `SELECT id, name, email FROM "user" WHERE lower(email) = lower($1)`, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("GameRepository:FindUserByEmail", err)
		return nil, err
	}
	return &u, nil
}

// CreateGameWithOwner inserts the game and the owner's approved player row atomically.
func (r *GameRepository) CreateGameWithOwner(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	insertGame := `
		INSERT INTO games AS g (owner_id, campaign_id, game_system_id, name, date_time, description,
			expected_duration, price, language, location, status, minimum_requirements, visibility, safety_rules)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + gameColumns

	insertOwner := `
		INSERT INTO game_participants (game_id, user_id, role, status)
		VALUES ($1, $2, $3, $4)
	`

	var created entity.Game
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &created, insertGame,
			game.OwnerID, game.CampaignID, game.GameSystemID, game.Name, game.DateTime, game.Description,
			game.ExpectedDuration, game.Price, game.Language, game.Location, game.Status,
			game.MinimumRequirements, game.Visibility, game.SafetyRules); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, insertOwner, created.ID, created.OwnerID, entity.RolePlayer, entity.ParticipantApproved)
		return err
	})
	if err != nil {
		logger.Error("GameRepository:CreateGameWithOwner", err)
		return nil, err
	}
	return &created, nil
}

func (r *GameRepository) UpdateGame(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	query := `
		UPDATE games AS g
		SET game_system_id = $2, name = $3, date_time = $4, description = $5, expected_duration = $6,
			price = $7, language = $8, location = $9, status = $10, minimum_requirements = $11,
			visibility = $12, safety_rules = $13, updated_at = NOW()
		WHERE g.id = $1
		RETURNING ` + gameColumns

	var updated entity.Game
	err := r.DB.GetContext(ctx, &updated, query,
		game.ID, game.GameSystemID, game.Name, game.DateTime, game.Description, game.ExpectedDuration,
		game.Price, game.Language, game.Location, game.Status, game.MinimumRequirements,
		game.Visibility, game.SafetyRules)
	if err != nil {
		logger.Error("GameRepository:UpdateGame", err)
		return nil, err
	}
	return &updated, nil
}

func (r *GameRepository) DeleteGame(ctx context.Context, id uuid.UUID) error {
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM game_participants WHERE game_id = $1`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, id)
		return err
	})
	if err != nil {
		logger.Error("GameRepository:DeleteGame", err)
		return err
	}
	return nil
}

func (r *GameRepository) UpdateGameStatus(ctx context.Context, id uuid.UUID, status string) error {
	err := r.DB.ExecContext(ctx, `UPDATE games SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		logger.Error("GameRepository:UpdateGameStatus", err)
		return err
	}
	return nil
}

func (r *GameRepository) InsertParticipant(ctx context.Context, p *entity.GameParticipant) (*entity.GameParticipant, error) {
	query := `
		INSERT INTO game_participants (game_id, user_id, role, status, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + participantColumns

	var created entity.GameParticipant
	if err := r.DB.GetContext(ctx, &created, query, p.GameID, p.UserID, p.Role, p.Status, p.Message); err != nil {
		logger.Error("GameRepository:InsertParticipant", err)
		return nil, err
	}
	return &created, nil
}

func (r *GameRepository) UpdateParticipant(ctx context.Context, p *entity.GameParticipant) (*entity.GameParticipant, error) {
	query := `
		UPDATE game_participants
		SET role = $2, status = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + participantColumns

	var updated entity.GameParticipant
	if err := r.DB.GetContext(ctx, &updated, query, p.ID, p.Role, p.Status); err != nil {
		logger.Error("GameRepository:UpdateParticipant", err)
		return nil, err
	}
	return &updated, nil
}

func (r *GameRepository) DeleteParticipant(ctx context.Context, id uuid.UUID) error {
	if err := r.DB.ExecContext(ctx, `DELETE FROM game_participants WHERE id = $1`, id); err != nil {
		logger.Error("GameRepository:DeleteParticipant", err)
		return err
	}
	return nil
}

const participantWithUserSelect = `
	SELECT gp.id, gp.game_id, gp.user_id, gp.role, gp.status, gp.message, gp.created_at, gp.updated_at,
		u.name AS user_name, u.email AS user_email
	FROM game_participants gp
	INNER JOIN "user" u ON u.id = gp.user_id`

func (r *GameRepository) ListParticipants(ctx context.Context, gameID uuid.UUID) ([]entity.ParticipantWithUser, error) {
	query := participantWithUserSelect + `
	WHERE gp.game_id = $1
	ORDER BY gp.created_at ASC`

	rows := []entity.ParticipantWithUser{}
	if err := r.DB.SelectContext(ctx, &rows, query, gameID); err != nil {
		logger.Error("GameRepository:ListParticipants", err)
		return nil, err
	}
	return rows, nil
}

func (r *GameRepository) ListPendingApplications(ctx context.Context, gameID uuid.UUID) ([]entity.ParticipantWithUser, error) {
	query := participantWithUserSelect + `
	WHERE gp.game_id = $1 AND gp.role = $2 AND gp.status = $3
	ORDER BY gp.created_at ASC`

	rows := []entity.ParticipantWithUser{}
	if err := r.DB.SelectContext(ctx, &rows, query, gameID, entity.RoleApplicant, entity.ParticipantPending); err != nil {
		logger.Error("GameRepository:ListPendingApplications", err)
		return nil, err
	}
	return rows, nil
}

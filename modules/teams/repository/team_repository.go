package repository

import (
	"context"
	"database/sql"
	"fmt"

	"roundtable-api/core/database"
	"roundtable-api/core/logger"
	"roundtable-api/modules/teams/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TeamRepositoryInterface interface {
	// CreateTeamWithCaptain inserts the team and its creator as active captain.
	CreateTeamWithCaptain(ctx context.Context, team *entity.Team) (*entity.Team, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	FindTeamByID(ctx context.Context, id uuid.UUID) (*entity.Team, error)
	FindTeamByShareCode(ctx context.Context, code string) (*entity.Team, error)
	FindMembership(ctx context.Context, teamID uuid.UUID, userID string) (*entity.TeamMember, error)
	AddMembers(ctx context.Context, teamID uuid.UUID, userIDs []string, role, status string) error
	RemoveMember(ctx context.Context, teamID uuid.UUID, userID string) error
	ListMembers(ctx context.Context, teamID uuid.UUID) ([]entity.TeamMemberWithUser, error)
	ListTeamsByUser(ctx context.Context, userID string) ([]entity.TeamWithRole, error)
	AreTeammates(ctx context.Context, a, b string) (bool, error)
}

type TeamRepository struct {
	DB database.IDatabase
}

func NewTeamRepository(db database.IDatabase) *TeamRepository {
	return &TeamRepository{DB: db}
}

const teamColumns = `t.id, t.name, t.slug, t.description, t.share_code, t.created_by, t.created_at, t.updated_at`

func (r *TeamRepository) CreateTeamWithCaptain(ctx context.Context, team *entity.Team) (*entity.Team, error) {
	var created entity.Team
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &created, `
			INSERT INTO teams (name, slug, description, share_code, created_by)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, name, slug, description, share_code, created_by, created_at, updated_at`,
			team.Name, team.Slug, team.Description, team.ShareCode, team.CreatedBy); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO team_members (team_id, user_id, role, status)
			VALUES ($1, $2, $3, $4)`, created.ID, team.CreatedBy, entity.RoleCaptain, entity.MemberActive)
		return err
	})
	if err != nil {
		logger.Error("TeamRepository:CreateTeamWithCaptain", err)
		return nil, err
	}
	return &created, nil
}

func (r *TeamRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := r.DB.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM teams WHERE slug = $1)`, slug); err != nil {
		logger.Error("TeamRepository:SlugExists", err)
		return false, err
	}
	return exists, nil
}

func (r *TeamRepository) findTeam(ctx context.Context, where string, arg any) (*entity.Team, error) {
	var team entity.Team
	err := r.DB.GetContext(ctx, &team, `SELECT `+teamColumns+` FROM teams t WHERE `+where, arg)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *TeamRepository) FindTeamByID(ctx context.Context, id uuid.UUID) (*entity.Team, error) {
	team, err := r.findTeam(ctx, `t.id = $1`, id)
	if err != nil {
		logger.Error("TeamRepository:FindTeamByID", err)
	}
	return team, err
}

func (r *TeamRepository) FindTeamByShareCode(ctx context.Context, code string) (*entity.Team, error) {
	team, err := r.findTeam(ctx, `t.share_code = $1`, code)
	if err != nil {
		logger.Error("TeamRepository:FindTeamByShareCode", err)
	}
	return team, err
}

func (r *TeamRepository) FindMembership(ctx context.Context, teamID uuid.UUID, userID string) (*entity.TeamMember, error) {
	var m entity.TeamMember
	err := r.DB.GetContext(ctx, &m, `
		SELECT id, team_id, user_id, role, status, created_at
		FROM team_members
		WHERE team_id = $1 AND user_id = $2`, teamID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TeamRepository:FindMembership", err)
		return nil, err
	}
	return &m, nil
}

// AddMembers leaves existing members untouched, except that adding someone as
// active approves their pending join request.
func (r *TeamRepository) AddMembers(ctx context.Context, teamID uuid.UUID, userIDs []string, role, status string) error {
	if len(userIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO team_members (team_id, user_id, role, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (team_id, user_id) DO UPDATE
		SET role = EXCLUDED.role, status = EXCLUDED.status
		WHERE team_members.status = 'pending' AND EXCLUDED.status = 'active'
	`
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, userID := range userIDs {
			if _, err := tx.ExecContext(ctx, query, teamID, userID, role, status); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("TeamRepository:AddMembers", err)
		return err
	}
	return nil
}

func (r *TeamRepository) RemoveMember(ctx context.Context, teamID uuid.UUID, userID string) error {
	result, err := r.DB.ExecResultContext(ctx,
		`DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`, teamID, userID)
	if err != nil {
		logger.Error("TeamRepository:RemoveMember", err)
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		logger.Error("TeamRepository:RemoveMember - RowsAffected", err)
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user %s is not in team %s", userID, teamID)
	}
	return nil
}

func (r *TeamRepository) ListMembers(ctx context.Context, teamID uuid.UUID) ([]entity.TeamMemberWithUser, error) {
	query := `
		SELECT m.id, m.team_id, m.user_id, m.role, m.status, m.created_at,
		       u.name AS user_name, u.email AS user_email
		FROM team_members m
		INNER JOIN "user" u ON u.id = m.user_id
		WHERE m.team_id = $1
		ORDER BY m.created_at ASC
	`

	members := []entity.TeamMemberWithUser{}
	if err := r.DB.SelectContext(ctx, &members, query, teamID); err != nil {
		logger.Error("TeamRepository:ListMembers", err)
		return nil, err
	}
	return members, nil
}

func (r *TeamRepository) ListTeamsByUser(ctx context.Context, userID string) ([]entity.TeamWithRole, error) {
	query := `
		SELECT ` + teamColumns + `,
		       m.role AS member_role,
		       (SELECT COUNT(*) FROM team_members c WHERE c.team_id = t.id AND c.status = 'active') AS member_count
		FROM teams t
		INNER JOIN team_members m ON m.team_id = t.id
		WHERE m.user_id = $1 AND m.status = 'active'
		ORDER BY t.name ASC
	`

	teams := []entity.TeamWithRole{}
	if err := r.DB.SelectContext(ctx, &teams, query, userID); err != nil {
		logger.Error("TeamRepository:ListTeamsByUser", err)
		return nil, err
	}
	return teams, nil
}

// AreTeammates only counts active memberships on both sides.
func (r *TeamRepository) AreTeammates(ctx context.Context, a, b string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM team_members ma
			INNER JOIN team_members mb ON mb.team_id = ma.team_id
			WHERE ma.user_id = $1 AND mb.user_id = $2
			  AND ma.status = 'active' AND mb.status = 'active'
		)
	`

	var ok bool
	if err := r.DB.GetContext(ctx, &ok, query, a, b); err != nil {
		logger.Error("TeamRepository:AreTeammates", err)
		return false, err
	}
	return ok, nil
}

package repository

import (
	"context"
	"database/sql"

	"roundtable-api/core/database"
	"roundtable-api/core/logger"
	"roundtable-api/modules/social/entity"

	"github.com/jmoiron/sqlx"
)

type SocialRepositoryInterface interface {
	FindUserPrivacy(ctx context.Context, userID string) (*entity.UserPrivacy, error)
	GetRelationship(ctx context.Context, a, b string) (*entity.RelationshipRow, error)

	InsertFollow(ctx context.Context, followerID, followingID string, audit *entity.AuditLog) error
	DeleteFollow(ctx context.Context, followerID, followingID string, audit *entity.AuditLog) error

	// InsertBlock also drops follows in both directions.
	InsertBlock(ctx context.Context, blockerID, blockeeID string, reason *string, audit *entity.AuditLog) error
	DeleteBlock(ctx context.Context, blockerID, blockeeID string, audit *entity.AuditLog) error
	ListBlocks(ctx context.Context, blockerID string) ([]entity.BlockedUser, error)
}

type SocialRepository struct {
	DB database.IDatabase
}

func NewSocialRepository(db database.IDatabase) *SocialRepository {
	return &SocialRepository{DB: db}
}

func (r *SocialRepository) FindUserPrivacy(ctx context.Context, userID string) (*entity.UserPrivacy, error) {
	var u entity.UserPrivacy
	err := r.DB.GetContext(ctx, &u, `SELECT id, privacy_settings FROM "user" WHERE id = $1`, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("SocialRepository:FindUserPrivacy", err)
		return nil, err
	}
	return &u, nil
}

func (r *SocialRepository) GetRelationship(ctx context.Context, a, b string) (*entity.RelationshipRow, error) {
	query := `
		SELECT
			EXISTS (SELECT 1 FROM user_blocks WHERE blocker_id = $1 AND blockee_id = $2) AS blocked,
			EXISTS (SELECT 1 FROM user_blocks WHERE blocker_id = $2 AND blockee_id = $1) AS blocked_by,
			EXISTS (SELECT 1 FROM user_follows WHERE follower_id = $1 AND following_id = $2) AS following,
			EXISTS (SELECT 1 FROM user_follows WHERE follower_id = $2 AND following_id = $1) AS followed_by
	`

	var rel entity.RelationshipRow
	if err := r.DB.GetContext(ctx, &rel, query, a, b); err != nil {
		logger.Error("SocialRepository:GetRelationship", err)
		return nil, err
	}
	return &rel, nil
}

const insertAudit = `
	INSERT INTO social_audit_logs (actor_user_id, target_user_id, action, metadata)
	VALUES (:actor_user_id, :target_user_id, :action, :metadata)
`

func writeAudit(ctx context.Context, tx *sqlx.Tx, audit *entity.AuditLog) error {
	if audit == nil {
		return nil
	}
	_, err := tx.NamedExecContext(ctx, insertAudit, audit)
	return err
}

func (r *SocialRepository) InsertFollow(ctx context.Context, followerID, followingID string, audit *entity.AuditLog) error {
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_follows (follower_id, following_id)
			VALUES ($1, $2)
			ON CONFLICT (follower_id, following_id) DO NOTHING`, followerID, followingID); err != nil {
			return err
		}
		return writeAudit(ctx, tx, audit)
	})
	if err != nil {
		logger.Error("SocialRepository:InsertFollow", err)
		return err
	}
	return nil
}

func (r *SocialRepository) DeleteFollow(ctx context.Context, followerID, followingID string, audit *entity.AuditLog) error {
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM user_follows WHERE follower_id = $1 AND following_id = $2`, followerID, followingID); err != nil {
			return err
		}
		return writeAudit(ctx, tx, audit)
	})
	if err != nil {
		logger.Error("SocialRepository:DeleteFollow", err)
		return err
	}
	return nil
}

func (r *SocialRepository) InsertBlock(ctx context.Context, blockerID, blockeeID string, reason *string, audit *entity.AuditLog) error {
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_blocks (blocker_id, blockee_id, reason)
			VALUES ($1, $2, $3)
			ON CONFLICT (blocker_id, blockee_id) DO NOTHING`, blockerID, blockeeID, reason); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM user_follows
			WHERE (follower_id = $1 AND following_id = $2)
			   OR (follower_id = $2 AND following_id = $1)`, blockerID, blockeeID); err != nil {
			return err
		}
		return writeAudit(ctx, tx, audit)
	})
	if err != nil {
		logger.Error("SocialRepository:InsertBlock", err)
		return err
	}
	return nil
}

func (r *SocialRepository) DeleteBlock(ctx context.Context, blockerID, blockeeID string, audit *entity.AuditLog) error {
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM user_blocks WHERE blocker_id = $1 AND blockee_id = $2`, blockerID, blockeeID); err != nil {
			return err
		}
		return writeAudit(ctx, tx, audit)
	})
	if err != nil {
		logger.Error("SocialRepository:DeleteBlock", err)
		return err
	}
	return nil
}

func (r *SocialRepository) ListBlocks(ctx context.Context, blockerID string) ([]entity.BlockedUser, error) {
	query := `
		SELECT b.id, b.blocker_id, b.blockee_id, b.reason, b.created_at, u.name, u.email
		FROM user_blocks b
		INNER JOIN "user" u ON u.id = b.blockee_id
		WHERE b.blocker_id = $1
		ORDER BY b.created_at DESC
	`

	rows := []entity.BlockedUser{}
	if err := r.DB.SelectContext(ctx, &rows, query, blockerID); err != nil {
		logger.Error("SocialRepository:ListBlocks", err)
		return nil, err
	}
	return rows, nil
}

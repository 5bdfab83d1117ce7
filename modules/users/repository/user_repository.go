package repository

import (
	"context"
	"database/sql"

	"roundtable-api/core/database"
	"roundtable-api/core/logger"
	"roundtable-api/modules/users/entity"
)

type UserRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	Search(ctx context.Context, query string, limit int) ([]entity.User, error)
}

type UserRepository struct {
	DB database.IDatabase
}

func NewUserRepository(db database.IDatabase) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var u entity.User
	err := r.DB.GetContext(ctx, &u, `SELECT id, name, email, image, created_at FROM "user" WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("UserRepository:FindByID", err)
		return nil, err
	}
	return &u, nil
}

// Search matches name or email case-insensitively.
func (r *UserRepository) Search(ctx context.Context, query string, limit int) ([]entity.User, error) {
	sqlQuery := `
		SELECT id, name, email, image, created_at
		FROM "user"
		WHERE name ILIKE $1 OR email ILIKE $1
		ORDER BY name ASC
		LIMIT $2
	`

	users := []entity.User{}
	if err := r.DB.SelectContext(ctx, &users, sqlQuery, "%"+query+"%", limit); err != nil {
		logger.Error("UserRepository:Search", err)
		return nil, err
	}
	return users, nil
}

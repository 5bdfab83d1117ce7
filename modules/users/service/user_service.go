package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"roundtable-api/core/constants"
	"roundtable-api/core/errors"
	"roundtable-api/modules/users/dto"
	"roundtable-api/modules/users/repository"
)

type UserServiceInterface interface {
	GetUser(ctx context.Context, id string) (*dto.UserResponse, *errors.AppError)
	SearchForInvitation(ctx context.Context, query string) ([]dto.UserSearchResult, *errors.AppError)
}

type UserService struct {
	repo repository.UserRepositoryInterface
}

func NewUserService(repo repository.UserRepositoryInterface) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetUser(ctx context.Context, id string) (*dto.UserResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to load user", err)
	}
	if u == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "User not found", nil)
	}
	return &dto.UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Image: u.Image, CreatedAt: u.CreatedAt}, nil
}

// SearchForInvitation returns nothing for queries shorter than the minimum length.
func (s *UserService) SearchForInvitation(ctx context.Context, query string) ([]dto.UserSearchResult, *errors.AppError) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < constants.SearchMinQueryLength {
		return []dto.UserSearchResult{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	rows, err := s.repo.Search(ctx, query, constants.UserSearchLimit)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to search users", err)
	}

	out := make([]dto.UserSearchResult, 0, len(rows))
	for _, u := range rows {
		out = append(out, dto.UserSearchResult{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	return out, nil
}

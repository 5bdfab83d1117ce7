package service

import (
	"context"
	"strings"

	"roundtable-api/core/constants"
	coreDto "roundtable-api/core/dto"
	coreEntity "roundtable-api/core/entity"
	"roundtable-api/core/errors"
	"roundtable-api/core/logger"
	"roundtable-api/core/params"
	"roundtable-api/core/queue"
	"roundtable-api/modules/notification/dto"
	"roundtable-api/modules/notification/entity"
	"roundtable-api/modules/notification/repository"

	"github.com/google/uuid"
)

type NotificationServiceInterface interface {
	Create(ctx context.Context, req *dto.CreateNotificationRequest) *errors.AppError
	GetMyNotifications(ctx context.Context, userID string, queryParams params.QueryParams) (*dto.NotificationPage, *errors.AppError)
	MarkAsRead(ctx context.Context, userID string, ids []string) *errors.AppError
	MarkAllAsRead(ctx context.Context, userID string) *errors.AppError
	CountUnread(ctx context.Context, userID string) (int, *errors.AppError)
}

type NotificationService struct {
	repo repository.NotificationRepositoryInterface
}

func NewNotificationService(repo repository.NotificationRepositoryInterface) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest) *errors.AppError {
	if req.UserID == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "userId: is required", nil)
	}

	notif := &entity.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
		Data:    coreEntity.JSONB(req.Data),
	}
	if err := s.repo.Create(ctx, notif); err != nil {
		return errors.NewAppError(errors.ErrDatabase, "Failed to create notification", err)
	}
	return nil
}

// HandleTask is the queue handler for notification:deliver tasks.
func (s *NotificationService) HandleTask(ctx context.Context, payload queue.NotificationPayload) error {
	appErr := s.Create(ctx, &dto.CreateNotificationRequest{
		UserID:  payload.UserID,
		Title:   payload.Title,
		Message: payload.Message,
		Type:    payload.Type,
		Data:    payload.Data,
	})
	if appErr != nil {
		logger.Error("NotificationService:HandleTask", appErr, "user_id", payload.UserID, "type", payload.Type)
		return appErr
	}
	return nil
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID string, queryParams params.QueryParams) (*dto.NotificationPage, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	result, err := s.repo.GetByUserID(ctx, userID, queryParams)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrDatabase, "Failed to get notifications", err)
	}

	items := make([]dto.NotificationResponse, 0, len(result.Items))
	for _, n := range result.Items {
		items = append(items, dto.NotificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Type:      n.Type,
			Data:      n.Data,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}

	return &dto.NotificationPage{
		Items:      items,
		TotalItems: result.TotalItems,
		TotalPages: coreDto.TotalPages(result.TotalItems, result.PageSize),
		PageNumber: result.PageNumber,
		PageSize:   result.PageSize,
	}, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID string, ids []string) *errors.AppError {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if _, err := uuid.Parse(id); err != nil {
			return errors.NewAppError(errors.ErrInvalidInput, "ids: must be UUIDs", err)
		}
		valid = append(valid, id)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if err := s.repo.MarkAsRead(ctx, userID, valid); err != nil {
		return errors.NewAppError(errors.ErrDatabase, "Failed to mark as read", err)
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID string) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if err := s.repo.MarkAllAsRead(ctx, userID); err != nil {
		return errors.NewAppError(errors.ErrDatabase, "Failed to mark all as read", err)
	}
	return nil
}

func (s *NotificationService) CountUnread(ctx context.Context, userID string) (int, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrDatabase, "Failed to count unread", err)
	}
	return count, nil
}

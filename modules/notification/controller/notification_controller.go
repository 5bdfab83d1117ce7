package controller

import (
	"roundtable-api/core/controller"
	"roundtable-api/core/errors"
	"roundtable-api/core/middleware"
	"roundtable-api/core/params"
	"roundtable-api/modules/notification/dto"
	"roundtable-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

type NotificationController struct {
	service service.NotificationServiceInterface
	controller.BaseController
}

func NewNotificationController(svc service.NotificationServiceInterface) *NotificationController {
	return &NotificationController{
		service:        svc,
		BaseController: controller.NewBaseController(),
	}
}

// GetMyNotifications pages with ?page=&page_size=.
func (h *NotificationController) GetMyNotifications(c echo.Context) error {
	queryParams := params.NewQueryParams(c)
	result, appErr := h.service.GetMyNotifications(c.Request().Context(), middleware.ViewerID(c), *queryParams)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result)
}

func (h *NotificationController) MarkAsRead(c echo.Context) error {
	req := new(dto.MarkAsReadRequest)
	if err := c.Bind(req); err != nil {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if len(req.IDs) == 0 {
		return h.BadRequest(errors.ErrInvalidInput, "ids: is required")
	}

	if appErr := h.service.MarkAsRead(c.Request().Context(), middleware.ViewerID(c), req.IDs); appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, true)
}

func (h *NotificationController) MarkAllAsRead(c echo.Context) error {
	if appErr := h.service.MarkAllAsRead(c.Request().Context(), middleware.ViewerID(c)); appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, true)
}

func (h *NotificationController) CountUnread(c echo.Context) error {
	count, appErr := h.service.CountUnread(c.Request().Context(), middleware.ViewerID(c))
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, dto.UnreadCountResponse{Count: count})
}

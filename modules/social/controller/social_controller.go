package controller

import (
	"strings"

	"roundtable-api/core/controller"
	"roundtable-api/core/errors"
	"roundtable-api/core/middleware"
	"roundtable-api/modules/social/dto"
	"roundtable-api/modules/social/service"

	"github.com/labstack/echo/v4"
)

type SocialController struct {
	service service.SocialServiceInterface
	controller.BaseController
}

func NewSocialController(svc service.SocialServiceInterface) *SocialController {
	return &SocialController{
		service:        svc,
		BaseController: controller.NewBaseController(),
	}
}

func (h *SocialController) Follow(c echo.Context) error {
	req := new(dto.FollowRequest)
	if err := c.Bind(req); err != nil {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		return h.BadRequest(errors.ErrInvalidInput, "userId: is required")
	}

	if appErr := h.service.Follow(c.Request().Context(), middleware.ViewerID(c), req.UserID, c.Request().UserAgent()); appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, true)
}

func (h *SocialController) Unfollow(c echo.Context) error {
	if appErr := h.service.Unfollow(c.Request().Context(), middleware.ViewerID(c), c.Param("userId"), c.Request().UserAgent()); appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, true)
}

func (h *SocialController) Block(c echo.Context) error {
	req := new(dto.BlockRequest)
	if err := c.Bind(req); err != nil {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	req.UserID = strings.TrimSpace(req.UserID)
	req.Reason = strings.TrimSpace(req.Reason)
	if req.UserID == "" {
		return h.BadRequest(errors.ErrInvalidInput, "userId: is required")
	}

	if appErr := h.service.Block(c.Request().Context(), middleware.ViewerID(c), req, c.Request().UserAgent()); appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, true)
}

func (h *SocialController) Unblock(c echo.Context) error {
	if appErr := h.service.Unblock(c.Request().Context(), middleware.ViewerID(c), c.Param("userId"), c.Request().UserAgent()); appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, true)
}

func (h *SocialController) ListBlocks(c echo.Context) error {
	items, appErr := h.service.ListBlocks(c.Request().Context(), middleware.ViewerID(c))
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, items)
}

func (h *SocialController) GetRelationship(c echo.Context) error {
	rel, appErr := h.service.GetRelationship(c.Request().Context(), middleware.ViewerID(c), c.Param("userId"))
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, rel)
}

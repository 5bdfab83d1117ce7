package controller

import (
	"roundtable-api/core/controller"
	"roundtable-api/core/errors"
	"roundtable-api/core/middleware"
	"roundtable-api/modules/teams/dto"
	"roundtable-api/modules/teams/service"
	"roundtable-api/modules/teams/validator"

	"github.com/labstack/echo/v4"
)

type TeamController struct {
	service service.TeamServiceInterface
	controller.BaseController
}

func NewTeamController(svc service.TeamServiceInterface) *TeamController {
	return &TeamController{
		service:        svc,
		BaseController: controller.NewBaseController(),
	}
}

func (h *TeamController) CreateTeam(c echo.Context) error {
	req := new(dto.CreateTeamRequest)
	if err := c.Bind(req); err != nil {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if result := validator.ValidateCreateTeam(req); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, result.Message())
	}

	resp, appErr := h.service.CreateTeam(c.Request().Context(), middleware.ViewerID(c), req)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, resp)
}

func (h *TeamController) GetTeam(c echo.Context) error {
	resp, appErr := h.service.GetTeam(c.Request().Context(), middleware.ViewerID(c), c.Param("id"))
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, resp)
}

func (h *TeamController) JoinByShareCode(c echo.Context) error {
	resp, appErr := h.service.JoinByShareCode(c.Request().Context(), middleware.ViewerID(c), c.Param("code"))
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, resp)
}

func (h *TeamController) ListMyTeams(c echo.Context) error {
	resp, appErr := h.service.ListMyTeams(c.Request().Context(), middleware.ViewerID(c))
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, resp)
}

func (h *TeamController) ListMembers(c echo.Context) error {
	resp, appErr := h.service.ListMembers(c.Request().Context(), middleware.ViewerID(c), c.Param("id"))
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, resp)
}

func (h *TeamController) AddMembers(c echo.Context) error {
	req := new(dto.AddMembersRequest)
	if err := c.Bind(req); err != nil {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if result := validator.ValidateAddMembers(req); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, result.Message())
	}

	if appErr := h.service.AddMembers(c.Request().Context(), middleware.ViewerID(c), c.Param("id"), req); appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, true)
}

func (h *TeamController) RemoveMember(c echo.Context) error {
	if appErr := h.service.RemoveMember(c.Request().Context(), middleware.ViewerID(c), c.Param("id"), c.Param("userId")); appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, true)
}

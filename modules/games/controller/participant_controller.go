package controller

import (
	"roundtable-api/core/errors"
	"roundtable-api/core/middleware"
	"roundtable-api/modules/games/dto"
	"roundtable-api/modules/games/validator"

	"github.com/labstack/echo/v4"
)

func (h *GameController) ListParticipants(c echo.Context) error {
	items, appErr := h.service.ListParticipants(c.Request().Context(), middleware.ViewerID(c), c.Param("id"))
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, items)
}

func (h *GameController) ListApplications(c echo.Context) error {
	items, appErr := h.service.ListApplications(c.Request().Context(), middleware.ViewerID(c), c.Param("id"))
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, items)
}

func (h *GameController) AddParticipant(c echo.Context) error {
	req := new(dto.AddParticipantRequest)
	if err := c.Bind(req); err != nil {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if result := validator.ValidateAddParticipant(req); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, result.Message())
	}

	p, appErr := h.service.AddParticipant(c.Request().Context(), middleware.ViewerID(c), c.Param("id"), req)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, p)
}

func (h *GameController) ApplyToGame(c echo.Context) error {
	req := new(dto.ApplyToGameRequest)
	if err := c.Bind(req); err != nil {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	p, appErr := h.service.ApplyToGame(c.Request().Context(), middleware.ViewerID(c), c.Param("id"), req)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, p)
}

func (h *GameController) InviteToGame(c echo.Context) error {
	req := new(dto.InviteToGameRequest)
	if err := c.Bind(req); err != nil {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if result := validator.ValidateInvite(req); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, result.Message())
	}

	p, appErr := h.service.InviteToGame(c.Request().Context(), middleware.ViewerID(c), c.Param("id"), req)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, p)
}

func (h *GameController) RespondToInvitation(c echo.Context) error {
	req := new(dto.RespondToInvitationRequest)
	if err := c.Bind(req); err != nil {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if result := validator.ValidateRespondToInvitation(req); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, result.Message())
	}

	p, appErr := h.service.RespondToInvitation(c.Request().Context(), middleware.ViewerID(c), c.Param("participantId"), req.Action)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, p)
}

func (h *GameController) RespondToApplication(c echo.Context) error {
	req := new(dto.RespondToApplicationRequest)
	if err := c.Bind(req); err != nil {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if result := validator.ValidateRespondToApplication(req); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, result.Message())
	}

	p, appErr := h.service.RespondToApplication(c.Request().Context(), middleware.ViewerID(c), c.Param("participantId"), req.Status)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, p)
}

func (h *GameController) UpdateParticipant(c echo.Context) error {
	req := new(dto.UpdateParticipantRequest)
	if err := c.Bind(req); err != nil {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if result := validator.ValidateUpdateParticipant(req); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, result.Message())
	}

	p, appErr := h.service.UpdateParticipant(c.Request().Context(), middleware.ViewerID(c), c.Param("participantId"), req)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, p)
}

func (h *GameController) RemoveParticipant(c echo.Context) error {
	if appErr := h.service.RemoveParticipant(c.Request().Context(), middleware.ViewerID(c), c.Param("participantId")); appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, map[string]string{"id": c.Param("participantId")})
}

func (h *GameController) RemoveBan(c echo.Context) error {
	if appErr := h.service.RemoveBan(c.Request().Context(), middleware.ViewerID(c), c.Param("participantId")); appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, map[string]string{"id": c.Param("participantId")})
}

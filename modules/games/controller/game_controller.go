package controller

import (
	"roundtable-api/core/controller"
	"roundtable-api/core/errors"
	"roundtable-api/core/middleware"
	"roundtable-api/modules/games/dto"
	"roundtable-api/modules/games/predicate"
	"roundtable-api/modules/games/service"
	"roundtable-api/modules/games/validator"

	"github.com/labstack/echo/v4"
)

// GameService is everything the HTTP layer needs from the games domain.
type GameService interface {
	service.GameServiceInterface
	service.ParticipantServiceInterface
}

type GameController struct {
	service GameService
	controller.BaseController
}

func NewGameController(svc GameService) *GameController {
	return &GameController{
		service:        svc,
		BaseController: controller.NewBaseController(),
	}
}

func (h *GameController) bindFilters(c echo.Context) (*dto.ListGamesRequest, predicate.Filters, error) {
	req := new(dto.ListGamesRequest)
	if err := c.Bind(req); err != nil {
		return nil, predicate.Filters{}, h.BadRequest(errors.ErrInvalidInput, "Invalid query parameters")
	}
	filters, result := validator.ValidateListGames(req)
	if result.HasError() {
		return nil, predicate.Filters{}, h.BadRequest(errors.ErrInvalidInput, result.Message())
	}
	return req, filters, nil
}

// ListGames godoc
// @Summary List games visible to the caller
// @Tags Games
// @Produce json
// @Router /games [get]
func (h *GameController) ListGames(c echo.Context) error {
	_, filters, err := h.bindFilters(c)
	if err != nil {
		return err
	}

	items, appErr := h.service.ListGames(c.Request().Context(), middleware.ViewerID(c), filters)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, items)
}

// ListGamesPaged godoc
// @Summary List games with a total count
// @Tags Games
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Router /games/paged [get]
func (h *GameController) ListGamesPaged(c echo.Context) error {
	req, filters, err := h.bindFilters(c)
	if err != nil {
		return err
	}
	page, pageSize := validator.NormalizePage(req.Page, req.PageSize)

	result, appErr := h.service.ListGamesWithCount(c.Request().Context(), middleware.ViewerID(c), filters, page, pageSize)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result)
}

// SearchGames godoc
// @Summary Search public games by text
// @Tags Games
// @Param q query string true "At least three characters"
// @Router /games/search [get]
func (h *GameController) SearchGames(c echo.Context) error {
	items, appErr := h.service.SearchGames(c.Request().Context(), middleware.ViewerID(c), c.QueryParam("q"))
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, items)
}

func (h *GameController) GetGame(c echo.Context) error {
	game, appErr := h.service.GetGame(c.Request().Context(), middleware.ViewerID(c), c.Param("id"))
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, game)
}

func (h *GameController) ListGamesByCampaign(c echo.Context) error {
	status := c.QueryParam("status")
	if status != "" {
		if result := validator.ValidateGameStatus(&dto.UpdateGameStatusRequest{Status: status}); result.HasError() {
			return h.BadRequest(errors.ErrInvalidInput, result.Message())
		}
	}

	items, appErr := h.service.ListGamesByCampaign(c.Request().Context(), middleware.ViewerID(c), c.Param("id"), status)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, items)
}

// CreateGame godoc
// @Summary Create a game owned by the caller
// @Tags Games
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateGameRequest true "Game"
// @Router /games [post]
func (h *GameController) CreateGame(c echo.Context) error {
	req := new(dto.CreateGameRequest)
	if err := c.Bind(req); err != nil {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if result := validator.ValidateCreateGame(req); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, result.Message())
	}

	game, appErr := h.service.CreateGame(c.Request().Context(), middleware.ViewerID(c), req)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, game)
}

func (h *GameController) UpdateGame(c echo.Context) error {
	req := new(dto.UpdateGameRequest)
	if err := c.Bind(req); err != nil {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if result := validator.ValidateUpdateGame(req); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, result.Message())
	}

	game, appErr := h.service.UpdateGame(c.Request().Context(), middleware.ViewerID(c), c.Param("id"), req)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, game)
}

func (h *GameController) DeleteGame(c echo.Context) error {
	if appErr := h.service.DeleteGame(c.Request().Context(), middleware.ViewerID(c), c.Param("id")); appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, map[string]string{"id": c.Param("id")})
}

func (h *GameController) UpdateGameStatus(c echo.Context) error {
	req := new(dto.UpdateGameStatusRequest)
	if err := c.Bind(req); err != nil {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if result := validator.ValidateGameStatus(req); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, result.Message())
	}

	game, appErr := h.service.UpdateGameStatus(c.Request().Context(), middleware.ViewerID(c), c.Param("id"), req.Status)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, game)
}

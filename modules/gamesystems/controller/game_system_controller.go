package controller

import (
	"io"

	"roundtable-api/core/constants"
	"roundtable-api/core/controller"
	"roundtable-api/core/errors"
	"roundtable-api/core/middleware"
	"roundtable-api/core/utils"
	"roundtable-api/modules/gamesystems/dto"
	"roundtable-api/modules/gamesystems/service"
	"roundtable-api/modules/gamesystems/validator"

	"github.com/labstack/echo/v4"
)

type GameSystemController struct {
	service service.GameSystemServiceInterface
	controller.BaseController
}

func NewGameSystemController(svc service.GameSystemServiceInterface) *GameSystemController {
	return &GameSystemController{
		service:        svc,
		BaseController: controller.NewBaseController(),
	}
}

func (h *GameSystemController) Search(c echo.Context) error {
	resp, appErr := h.service.Search(c.Request().Context(), c.QueryParam("q"))
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, resp)
}

func (h *GameSystemController) Get(c echo.Context) error {
	id := utils.ToNumberWithDefault(c.Param("id"), 0)
	if id < 1 {
		return h.BadRequest(errors.ErrInvalidInput, "id: must be a positive integer")
	}

	resp, appErr := h.service.Get(c.Request().Context(), id)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, resp)
}

func (h *GameSystemController) GetBySlug(c echo.Context) error {
	resp, appErr := h.service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, resp)
}

func (h *GameSystemController) Create(c echo.Context) error {
	req := new(dto.CreateGameSystemRequest)
	if err := c.Bind(req); err != nil {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if result := validator.ValidateCreateGameSystem(req); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, result.Message())
	}

	resp, appErr := h.service.Create(c.Request().Context(), middleware.ViewerID(c), req)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, resp)
}

// UploadHeroImage expects a multipart form with a "file" field.
func (h *GameSystemController) UploadHeroImage(c echo.Context) error {
	id := utils.ToNumberWithDefault(c.Param("id"), 0)
	if id < 1 {
		return h.BadRequest(errors.ErrInvalidInput, "id: must be a positive integer")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return h.BadRequest(errors.ErrInvalidInput, "file: is required")
	}
	f, err := fh.Open()
	if err != nil {
		return h.BadRequest(errors.ErrInvalidInput, "file: cannot be read")
	}
	defer f.Close()

	body, err := io.ReadAll(io.LimitReader(f, constants.MaxHeroImageBytes+1))
	if err != nil {
		return h.BadRequest(errors.ErrInvalidInput, "file: cannot be read")
	}

	req := &dto.UploadHeroImageRequest{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Body:        body,
	}
	if result := validator.ValidateHeroImage(req); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, result.Message())
	}

	resp, appErr := h.service.UploadHeroImage(c.Request().Context(), middleware.ViewerID(c), id, req)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, resp)
}

package controller

import (
	"roundtable-api/core/controller"
	"roundtable-api/modules/users/service"

	"github.com/labstack/echo/v4"
)

type UserController struct {
	service service.UserServiceInterface
	controller.BaseController
}

func NewUserController(svc service.UserServiceInterface) *UserController {
	return &UserController{
		service:        svc,
		BaseController: controller.NewBaseController(),
	}
}

func (h *UserController) GetUser(c echo.Context) error {
	resp, appErr := h.service.GetUser(c.Request().Context(), c.Param("id"))
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, resp)
}

func (h *UserController) SearchForInvitation(c echo.Context) error {
	resp, appErr := h.service.SearchForInvitation(c.Request().Context(), c.QueryParam("q"))
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, resp)
}

package router

import (
	"roundtable-api/core/middleware"
	"roundtable-api/modules/users/controller"

	"github.com/labstack/echo/v4"
)

type UserRouter struct {
	controller *controller.UserController
}

func NewUserRouter(ctrl *controller.UserController) *UserRouter {
	return &UserRouter{controller: ctrl}
}

func (r *UserRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	group := g.Group("/users", mw.AuthMiddleware())
	group.GET("/search", r.controller.SearchForInvitation)
	group.GET("/:id", r.controller.GetUser)
}

package router

import (
	"roundtable-api/core/middleware"
	"roundtable-api/modules/teams/controller"

	"github.com/labstack/echo/v4"
)

type TeamRouter struct {
	controller *controller.TeamController
}

func NewTeamRouter(ctrl *controller.TeamController) *TeamRouter {
	return &TeamRouter{controller: ctrl}
}

func (r *TeamRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	group := g.Group("/teams", mw.AuthMiddleware())
	group.POST("", r.controller.CreateTeam)
	group.GET("/mine", r.controller.ListMyTeams)
	group.POST("/join/:code", r.controller.JoinByShareCode)
	group.GET("/:id", r.controller.GetTeam)
	group.GET("/:id/members", r.controller.ListMembers)
	group.POST("/:id/members", r.controller.AddMembers)
	group.DELETE("/:id/members/:userId", r.controller.RemoveMember)
}

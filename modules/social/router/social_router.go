package router

import (
	"roundtable-api/core/middleware"
	"roundtable-api/modules/social/controller"

	"github.com/labstack/echo/v4"
)

type SocialRouter struct {
	controller *controller.SocialController
}

func NewSocialRouter(ctrl *controller.SocialController) *SocialRouter {
	return &SocialRouter{controller: ctrl}
}

func (r *SocialRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	group := g.Group("/social", mw.AuthMiddleware())
	group.POST("/follow", r.controller.Follow)
	group.DELETE("/follow/:userId", r.controller.Unfollow)
	group.POST("/block", r.controller.Block)
	group.DELETE("/block/:userId", r.controller.Unblock)
	group.GET("/blocks", r.controller.ListBlocks)
	group.GET("/relationship/:userId", r.controller.GetRelationship)
}

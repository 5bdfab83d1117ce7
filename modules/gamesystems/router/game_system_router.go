package router

import (
	"roundtable-api/core/middleware"
	"roundtable-api/modules/gamesystems/controller"

	"github.com/labstack/echo/v4"
)

type GameSystemRouter struct {
	controller    *controller.GameSystemController
	searchLimiter *middleware.IPRateLimiter
}

func NewGameSystemRouter(ctrl *controller.GameSystemController, searchLimiter *middleware.IPRateLimiter) *GameSystemRouter {
	return &GameSystemRouter{controller: ctrl, searchLimiter: searchLimiter}
}

func (r *GameSystemRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	group := g.Group("/game-systems")
	group.GET("/search", r.controller.Search, middleware.RateLimit(r.searchLimiter))
	group.GET("/slug/:slug", r.controller.GetBySlug)
	group.GET("/:id", r.controller.Get)

	auth := mw.AuthMiddleware()
	group.POST("", r.controller.Create, auth)
	group.POST("/:id/hero-image", r.controller.UploadHeroImage, auth)
}

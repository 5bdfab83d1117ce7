package router

import (
	"roundtable-api/core/middleware"
	"roundtable-api/modules/games/controller"

	"github.com/labstack/echo/v4"
)

type GameRouter struct {
	controller    *controller.GameController
	searchLimiter *middleware.IPRateLimiter
}

func NewGameRouter(ctrl *controller.GameController, searchLimiter *middleware.IPRateLimiter) *GameRouter {
	return &GameRouter{controller: ctrl, searchLimiter: searchLimiter}
}

func (r *GameRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	optional := mw.OptionalAuthMiddleware()
	auth := mw.AuthMiddleware()

	games := g.Group("/games")
	games.GET("", r.controller.ListGames, optional)
	games.GET("/paged", r.controller.ListGamesPaged, optional)
	games.GET("/search", r.controller.SearchGames, middleware.RateLimit(r.searchLimiter), optional)
	games.GET("/:id", r.controller.GetGame, optional)
	games.GET("/:id/participants", r.controller.ListParticipants, optional)

	games.POST("", r.controller.CreateGame, auth)
	games.PUT("/:id", r.controller.UpdateGame, auth)
	games.DELETE("/:id", r.controller.DeleteGame, auth)
	games.PATCH("/:id/status", r.controller.UpdateGameStatus, auth)
	games.POST("/:id/participants", r.controller.AddParticipant, auth)
	games.GET("/:id/applications", r.controller.ListApplications, auth)
	games.POST("/:id/apply", r.controller.ApplyToGame, auth)
	games.POST("/:id/invite", r.controller.InviteToGame, auth)

	participants := g.Group("/participants")
	participants.PATCH("/:participantId", r.controller.UpdateParticipant, auth)
	participants.DELETE("/:participantId", r.controller.RemoveParticipant, auth)
	participants.POST("/:participantId/respond-invitation", r.controller.RespondToInvitation, auth)
	participants.POST("/:participantId/respond-application", r.controller.RespondToApplication, auth)
	participants.DELETE("/:participantId/ban", r.controller.RemoveBan, auth)

	g.GET("/campaigns/:id/games", r.controller.ListGamesByCampaign, optional)
}

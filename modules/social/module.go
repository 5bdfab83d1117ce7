package social

import (
	"roundtable-api/core/cache"
	"roundtable-api/core/database"
	"roundtable-api/core/middleware"
	"roundtable-api/modules/social/controller"
	"roundtable-api/modules/social/repository"
	"roundtable-api/modules/social/router"
	"roundtable-api/modules/social/service"

	"github.com/labstack/echo/v4"
)

func Init(g *echo.Group, db database.IDatabase, mw *middleware.Middleware, teams service.TeammateChecker, c cache.Cache) *service.SocialService {
	repo := repository.NewSocialRepository(db)
	svc := service.NewSocialService(repo, teams, c)
	ctrl := controller.NewSocialController(svc)

	router.NewSocialRouter(ctrl).Register(g, mw)

	return svc
}

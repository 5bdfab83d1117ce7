package teams

import (
	"roundtable-api/core/database"
	"roundtable-api/core/middleware"
	"roundtable-api/modules/teams/controller"
	"roundtable-api/modules/teams/repository"
	"roundtable-api/modules/teams/router"
	"roundtable-api/modules/teams/service"

	"github.com/labstack/echo/v4"
)

func Init(g *echo.Group, db database.IDatabase, mw *middleware.Middleware) *service.TeamService {
	repo := repository.NewTeamRepository(db)
	svc := service.NewTeamService(repo)
	ctrl := controller.NewTeamController(svc)

	router.NewTeamRouter(ctrl).Register(g, mw)

	return svc
}

package users

import (
	"roundtable-api/core/database"
	"roundtable-api/core/middleware"
	"roundtable-api/modules/users/controller"
	"roundtable-api/modules/users/repository"
	"roundtable-api/modules/users/router"
	"roundtable-api/modules/users/service"

	"github.com/labstack/echo/v4"
)

func Init(g *echo.Group, db database.IDatabase, mw *middleware.Middleware) *service.UserService {
	repo := repository.NewUserRepository(db)
	svc := service.NewUserService(repo)
	router.NewUserRouter(controller.NewUserController(svc)).Register(g, mw)
	return svc
}

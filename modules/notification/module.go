package notification

import (
	"roundtable-api/core/database"
	"roundtable-api/core/middleware"
	"roundtable-api/modules/notification/controller"
	"roundtable-api/modules/notification/repository"
	"roundtable-api/modules/notification/router"
	"roundtable-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

func Init(g *echo.Group, db database.IDatabase, mw *middleware.Middleware) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Register(g, mw)

	return svc
}

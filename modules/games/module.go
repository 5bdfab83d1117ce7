package games

import (
	"time"

	"roundtable-api/core/cache"
	"roundtable-api/core/config"
	"roundtable-api/core/database"
	"roundtable-api/core/middleware"
	"roundtable-api/core/queue"
	"roundtable-api/modules/games/controller"
	"roundtable-api/modules/games/repository"
	"roundtable-api/modules/games/router"
	"roundtable-api/modules/games/service"

	"github.com/labstack/echo/v4"
)

func Init(g *echo.Group, db database.IDatabase, mw *middleware.Middleware, social service.RelationshipChecker, c cache.Cache, q queue.Enqueuer) *service.GameService {
	cfg := config.Get()

	repo := repository.NewGameRepository(db)
	svc := service.NewGameService(repo, social, c, q, time.Duration(cfg.Redis.SearchCacheTTL)*time.Second)
	ctrl := controller.NewGameController(svc)

	limiter := middleware.NewIPRateLimiter(cfg.Search.RateLimit, cfg.Search.Burst, 10*time.Minute)
	router.NewGameRouter(ctrl, limiter).Register(g, mw)

	return svc
}

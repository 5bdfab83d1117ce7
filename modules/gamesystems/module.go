package gamesystems

import (
	"time"

	"roundtable-api/core/cache"
	"roundtable-api/core/config"
	"roundtable-api/core/database"
	"roundtable-api/core/middleware"
	"roundtable-api/core/storage"
	"roundtable-api/modules/gamesystems/controller"
	"roundtable-api/modules/gamesystems/repository"
	"roundtable-api/modules/gamesystems/router"
	"roundtable-api/modules/gamesystems/service"

	"github.com/labstack/echo/v4"
)

func Init(g *echo.Group, db database.IDatabase, mw *middleware.Middleware, c cache.Cache, store storage.ObjectStore) *service.GameSystemService {
	cfg := config.Get()

	repo := repository.NewGameSystemRepository(db)
	svc := service.NewGameSystemService(repo, c, store, time.Duration(cfg.Redis.SearchCacheTTL)*time.Second)
	ctrl := controller.NewGameSystemController(svc)

	limiter := middleware.NewIPRateLimiter(cfg.Search.RateLimit, cfg.Search.Burst, 10*time.Minute)
	router.NewGameSystemRouter(ctrl, limiter).Register(g, mw)

	return svc
}

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roundtable-api/core/cache"
	"roundtable-api/core/config"
	"roundtable-api/core/constants"
	"roundtable-api/core/controller"
	"roundtable-api/core/database"
	"roundtable-api/core/logger"
	"roundtable-api/core/middleware"
	"roundtable-api/core/queue"
	"roundtable-api/core/storage"
	"roundtable-api/modules/games"
	"roundtable-api/modules/gamesystems"
	"roundtable-api/modules/notification"
	"roundtable-api/modules/social"
	"roundtable-api/modules/teams"
	"roundtable-api/modules/users"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 15 * time.Second

// Run blocks until SIGINT or SIGTERM, then drains HTTP and the queue worker.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	db, err := database.InitDB(database.DatabaseConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	appCache, redisClient := openRedis(cfg.Redis)
	if redisClient != nil {
		defer redisClient.Close()
	}

	var store storage.ObjectStore
	if cfg.S3.Bucket != "" {
		store, err = storage.NewS3Store(storage.S3Config{
			Endpoint:      cfg.S3.Endpoint,
			Region:        cfg.S3.Region,
			Bucket:        cfg.S3.Bucket,
			AccessKey:     cfg.S3.AccessKey,
			SecretKey:     cfg.S3.SecretKey,
			PublicBaseURL: cfg.S3.PublicBaseURL,
			UsePathStyle:  cfg.S3.UsePathStyle,
		})
		if err != nil {
			return err
		}
	}

	e, err := newEcho(cfg)
	if err != nil {
		return err
	}
	mw := middleware.NewMiddleware(nil)
	api := e.Group("/api/v1")

	notificationSvc := notification.Init(api, db, mw)

	enqueuer, worker, closeQueue := newQueue(cfg, redisClient != nil, notificationSvc.HandleTask)
	defer closeQueue()

	teamSvc := teams.Init(api, db, mw)
	socialSvc := social.Init(api, db, mw, teamSvc, appCache)
	games.Init(api, db, mw, socialSvc, appCache, enqueuer)
	users.Init(api, db, mw)
	gamesystems.Init(api, db, mw, appCache, store)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if worker != nil {
		if err := worker.Start(); err != nil {
			return fmt.Errorf("start queue worker: %w", err)
		}
		defer worker.Shutdown()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// openRedis returns the no-op cache and a nil client when Redis is not
// configured or does not answer a ping.
func openRedis(cfg config.RedisConfig) (cache.Cache, *redis.Client) {
	if cfg.Addr == "" {
		return cache.NewNoopCache(), nil
	}
	client, err := cache.NewRedisClient(cache.RedisConfig{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	if err != nil {
		logger.Warn("Server:openRedis:Unavailable", err)
		return cache.NewNoopCache(), nil
	}
	return cache.NewRedisCache(client), client
}

// newQueue uses asynq only when the shared Redis is up, otherwise
// notifications are handled inline and there is no worker.
func newQueue(cfg *config.Config, redisUp bool, handler queue.NotificationHandler) (queue.Enqueuer, *queue.Worker, func()) {
	if !redisUp {
		return queue.NewInlineEnqueuer(handler), nil, func() {}
	}

	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
	client := asynq.NewClient(redisOpt)
	worker := queue.NewWorker(redisOpt, cfg.Queue.Concurrency)
	worker.HandleNotifications(handler)
	return queue.NewAsynqEnqueuer(client), worker, func() { _ = client.Close() }
}

func newEcho(cfg *config.Config) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = controller.HTTPErrorHandler

	extractor, err := middleware.NewIPExtractor(cfg.Server.TrustedProxies)
	if err != nil {
		return nil, err
	}
	e.IPExtractor = extractor

	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, constants.HeaderRequestID},
	}))
	e.Use(echoMiddleware.BodyLimit(cfg.Server.BodyLimit))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	return e, nil
}

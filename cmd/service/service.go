// @title        MediSecure Portal
// @version      1.0
// @description  MediSecure 捐血媒合平台的頁面與表單端點
// @host         localhost:8080
// @BasePath     /
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"medisecure/internal/api"
	"medisecure/internal/cache"
	"medisecure/internal/config"
	"medisecure/internal/database"
	"medisecure/internal/logging"
	"medisecure/internal/mailer"
	"medisecure/internal/middleware"
	"medisecure/internal/notify"
	"medisecure/internal/realtime"
	"medisecure/internal/requests"
	"medisecure/internal/router"
	"medisecure/internal/session"
	"medisecure/internal/view"
	"medisecure/internal/worker"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	_ "medisecure/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

const (
	mailQueueSize          = 64
	rateLimiterCleanupTick = 10 * time.Minute
)

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	newWorkerPool   = worker.NewPool
	exitFunc        = os.Exit
)

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %v", err)
	}
	defer rdb.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	hub := realtime.NewHub(logger)
	var emitter realtime.Emitter = hub
	if cfg.RealtimeRelay == "redis" {
		relay := realtime.NewRedisRelay(rdb, hub, logger)
		emitter = relay
		go func() {
			if err := relay.Run(ctx); err != nil {
				logger.WithError(err).Error("realtime relay stopped")
			}
		}()
	}

	// MAIL_ASYNC=false 時在請求內同步寄信
	var pool worker.Pool
	if cfg.Mail.Async {
		pool = newWorkerPool(cfg.WorkerCount, mailQueueSize, logger)
		defer pool.Stop()
	}

	dispatcher := notify.NewDispatcher(emitter, mailer.NewSMTPSender(cfg.Mail), pool, logger)
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL, rdb)
	manager := requests.NewManager(db, rdb, dispatcher, cfg.DonorCacheTTL, logger)

	limiter := middleware.NewRateLimiter(cfg.RequestRatePerMinute, logger)
	limiter.StartCleanup(ctx, rateLimiterCleanupTick)

	renderer, err := view.New()
	if err != nil {
		return fmt.Errorf("載入模板失敗: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.Renderer = renderer
	e.Use(echomw.Recover())
	e.Use(logging.RequestLogger(logger))

	router.Setup(e, router.Deps{
		DB:            db,
		Cache:         rdb,
		Sessions:      sessions,
		Requests:      manager,
		Hub:           hub,
		Limiter:       limiter,
		Logger:        logger,
		SecureCookies: cfg.SecureCookies,
	})

	// Swagger UI
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	logger.WithField("addr", cfg.HTTPAddr).Info("medisecure listening")
	return startServer(e, cfg.HTTPAddr)
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}

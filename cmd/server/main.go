package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"hijabstore/docs"
	"hijabstore/internal/auth"
	"hijabstore/internal/cache"
	"hijabstore/internal/config"
	"hijabstore/internal/db"
	"hijabstore/internal/handler"
	"hijabstore/internal/logger"
	"hijabstore/internal/model"
	"hijabstore/internal/repository"
	"hijabstore/internal/router"
	"hijabstore/internal/service"
)

// @title Hijab Store API
// @version 1.0
// @description Hijab catalog search and account management.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description API key issued at registration. Only checked when REQUIRE_API_KEY is on.
func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
		File:   cfg.Log.File,
	})

	gormDB, err := db.NewMySQL(cfg.DB.DSN(), db.Options{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	if cfg.DB.Reset {
		log.Warn().Msg("RESET_DB=true detected, dropping tables")
		for _, table := range []interface{}{&model.User{}, &model.Product{}} {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Warn().Err(err).Msg("drop table failed (may not exist)")
			}
		}
	}
	if cfg.DB.AutoMigrate {
		if err := gormDB.AutoMigrate(&model.User{}, &model.Product{}); err != nil {
			log.Fatal().Err(err).Msg("auto-migrate")
		}
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("database handle")
	}

	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer cacheClient.Close()

	hasher, err := auth.NewPasswordHasher(cfg.PasswordMode)
	if err != nil {
		log.Fatal().Err(err).Msg("password hasher")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	keyStore := auth.NewKeyStore(userRepo, cacheClient, cfg.Redis.APIKeyCacheTTL)

	// Initialize services
	authService := service.NewAuthService(userRepo, hasher)
	userService := service.NewUserService(userRepo, keyStore)
	productService := service.NewProductService(productRepo, cacheClient, cfg.Redis.SearchCacheTTL)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, log, router.Options{
		RequireAPIKey: cfg.RequireAPIKey,
		Keys:          keyStore,
		Metrics:       true,
	}, router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		User:    handler.NewUserHandler(userService),
		Product: handler.NewProductHandler(productService),
		Seed:    handler.NewSeedHandler(productService),
		Health:  handler.NewHealthHandler(handler.PingFunc(sqlDB.PingContext), cacheClient),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
	}
	log.Info().
		Str("swagger", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html").
		Bool("require_api_key", cfg.RequireAPIKey).
		Str("password_mode", cfg.PasswordMode).
		Msg("starting hijab store")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	_ = sqlDB.Close()
}

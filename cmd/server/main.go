package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yaricp/simple-short-links/internal/config"
	"github.com/yaricp/simple-short-links/internal/db"
	transport "github.com/yaricp/simple-short-links/internal/http"
	"github.com/yaricp/simple-short-links/internal/http/middleware"
	"github.com/yaricp/simple-short-links/internal/repo"
	"github.com/yaricp/simple-short-links/internal/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Env)

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	gormDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close(gormDB)

	if err := db.AutoMigrate(gormDB); err != nil {
		logger.Error("failed to migrate schema", "error", err)
		os.Exit(1)
	}

	if err := db.EnsureAdmin(ctx, gormDB, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Error("failed to seed admin user", "error", err)
		os.Exit(1)
	}

	cache, err := db.OpenRedis(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn("redis unavailable, redirect cache disabled", "error", err)
	}
	if cache != nil {
		defer cache.Close()
	}

	userRepo := repo.NewUserRepo(gormDB)
	linkRepo := repo.NewLinkRepo(gormDB)

	authService := services.NewAuthService(userRepo, cfg)
	linkService := services.NewLinkService(linkRepo, cache, cfg.LinkExpireDays, logger)
	sweeper := services.NewSweeper(linkRepo, cfg.SweepInterval, logger)

	go sweeper.Run(ctx)

	router := transport.NewRouter(transport.Dependencies{
		Config:      cfg,
		UserRepo:    userRepo,
		AuthService: authService,
		LinkService: linkService,
		Logger:      logger,
		RateLimiter: middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.RequestTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout,
		IdleTimeout:       60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErrors:
		logger.Error("http server stopped unexpectedly", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("http server stopped")
}

func newLogger(env string) *slog.Logger {
	level := slog.LevelInfo
	if env != "prod" {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if env == "prod" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}

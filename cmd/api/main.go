package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/mood-journal/internal/api/http"
	"github.com/spec-kit/mood-journal/internal/api/http/handlers"
	"github.com/spec-kit/mood-journal/internal/auth"
	"github.com/spec-kit/mood-journal/internal/config"
	"github.com/spec-kit/mood-journal/internal/observability"
	"github.com/spec-kit/mood-journal/internal/persistence"
	"github.com/spec-kit/mood-journal/internal/service"
	"github.com/spec-kit/mood-journal/internal/summarizer"
	"github.com/spec-kit/mood-journal/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := persistence.Open(ctx, *cfg, logger)
	if err != nil {
		logger.Fatal("failed to open storage", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
	}
	defer store.Close()

	trend, err := summarizer.New(ctx, cfg.Summarizer)
	switch {
	case errors.Is(err, summarizer.ErrNotConfigured):
		logger.Warn("no summarizer API key; mood analysis disabled")
	case err != nil:
		logger.Fatal("failed to init summarizer", zap.Error(err))
	}

	services, err := service.NewContainer(*cfg, store, trend, logger)
	if err != nil {
		logger.Fatal("failed to wire services", zap.Error(err))
	}
	worker.StartActivityWorker(services.Activity)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.Storage.Backend, store, metrics),
		Auth:           handlers.NewAuthHandler(services.Sessions, tokens),
		Profile:        handlers.NewProfileHandler(services.Sessions, services.Moods, services.Entries),
		Moods:          handlers.NewMoodsHandler(services.Sessions, services.Moods, services.Trends),
		Entries:        handlers.NewEntriesHandler(services.Sessions, services.Entries),
		Dashboard:      handlers.NewDashboardHandler(services.Sessions, services.Dashboard, services.Trends),
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("storage", cfg.Storage.Backend))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

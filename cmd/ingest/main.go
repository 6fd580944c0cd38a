// Command ingest runs one static-data refresh and exits. Useful for
// cron-style schedulers and for seeding a fresh database.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/benchboost/benchboost/internal/app"
	"github.com/benchboost/benchboost/internal/config"
	"github.com/benchboost/benchboost/internal/platform/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = application.Close(closeCtx)
	}()

	result, err := application.Ingestion.RefreshStatic(ctx)
	if err != nil {
		logger.Error("static refresh failed", "error", err)
		os.Exit(1)
	}
	logger.Info("static refresh complete",
		"players", result.Players,
		"teams", result.Teams,
		"gameweeks", result.Gameweeks,
		"fixtures", result.Fixtures,
		"duration", result.Duration.String(),
	)

	if stored, err := application.News.Refresh(ctx); err != nil {
		logger.Warn("news refresh failed", "error", err)
	} else {
		logger.Info("news refresh complete", "updates", stored)
	}
}

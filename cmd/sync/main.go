package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ftcstats/ftcstats/internal/app"
	"github.com/ftcstats/ftcstats/internal/config"
	"github.com/ftcstats/ftcstats/internal/observability"
	"github.com/ftcstats/ftcstats/internal/platform/logging"
	"github.com/ftcstats/ftcstats/internal/usecase"
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

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	stopProfiling, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runOnce := func() {
		result, err := application.Runner.Run(ctx, usecase.SyncRunInput{
			Seasons:    cfg.SyncSeasons,
			SyncData:   []string{"events", "matches"},
			MaxWorkers: cfg.SyncMaxWorkers,
		})
		if err != nil {
			logger.ErrorContext(ctx, "sync cycle failed", "error", err)
			return
		}
		logger.InfoContext(ctx, "sync cycle finished",
			"tasks", result.TaskCount,
			"success", result.SuccessCount,
			"failed", result.FailedCount,
			"skipped", result.SkippedCount,
		)
	}

	logger.Info("sync loop starting",
		"seasons", cfg.SyncSeasons,
		"interval", cfg.SyncInterval.String(),
	)

	runOnce()
	ticker := time.NewTicker(cfg.SyncInterval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-ticker.C:
			runOnce()
		case <-ctx.Done():
			break loop
		}
	}

	if err := application.Close(); err != nil {
		logger.Error("close app", "error", err)
	}
	if err := stopProfiling(); err != nil {
		logger.Error("stop pyroscope", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("shutdown tracing", "error", err)
	}

	logger.Info("sync loop stopped")
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/polarsight/sea-ice-analyst/internal/adapter/httpapi"
	"github.com/polarsight/sea-ice-analyst/internal/adapter/openai"
	"github.com/polarsight/sea-ice-analyst/internal/config"
	"github.com/polarsight/sea-ice-analyst/internal/ingest"
	"github.com/polarsight/sea-ice-analyst/internal/observability"
	"github.com/polarsight/sea-ice-analyst/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// Loader with content-addressed memoization (disabled when the cache
	// size is 0).
	var loader ingest.Loader = ingest.CSVLoader{}
	if cfg.DatasetCacheSize > 0 {
		loader = ingest.NewCachedLoader(loader, ingest.NewLRUStore(cfg.DatasetCacheSize), metrics)
		logger.Info("dataset cache enabled", "size", cfg.DatasetCacheSize)
	} else {
		logger.Info("dataset cache disabled")
	}

	completer := openai.NewClient(
		cfg.OpenAIBaseURL,
		cfg.OpenAIModel,
		cfg.ReportTemperature,
		cfg.OpenAITimeout,
		metrics,
		logger,
	)

	sess := session.New(loader, completer, logger, metrics)
	srv := httpapi.New(cfg, sess, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Error("http server error", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}

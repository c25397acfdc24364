// Command ingest runs one daily refresh pass: every source adapter fetches
// and normalizes its upstream, and each source's signals are appended to the
// store independently. Designed to run from cron; a failed run is safe to
// repeat because the store is append-only.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	conflictadapter "github.com/couchcryptid/port-disruption-forecaster/internal/adapter/conflict"
	"github.com/couchcryptid/port-disruption-forecaster/internal/adapter/gdelt"
	kafkaadapter "github.com/couchcryptid/port-disruption-forecaster/internal/adapter/kafka"
	"github.com/couchcryptid/port-disruption-forecaster/internal/adapter/portfeed"
	"github.com/couchcryptid/port-disruption-forecaster/internal/config"
	"github.com/couchcryptid/port-disruption-forecaster/internal/observability"
	"github.com/couchcryptid/port-disruption-forecaster/internal/pipeline"
	"github.com/couchcryptid/port-disruption-forecaster/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := storage.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("database connect failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := storage.RunMigrations(ctx, pool); err != nil {
		logger.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	repo := storage.NewRepository(pool)

	producers := []pipeline.SignalProducer{
		gdelt.NewClient(cfg.GDELTBaseURL, cfg.FetchTimeout, logger),
		portfeed.NewAdapter(cfg.PortFeeds, cfg.Scoring.Keywords, cfg.FetchTimeout, logger),
		conflictadapter.NewAdapter(logger),
	}

	var publisher pipeline.SignalPublisher
	if cfg.KafkaSinkEnabled() {
		writer := kafkaadapter.NewWriter(cfg, logger)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		publisher = writer
		logger.Info("kafka signal sink enabled", "topic", cfg.KafkaSignalsTopic)
	}

	p := pipeline.New(producers, repo, publisher, logger, metrics)

	if err := p.Run(ctx); err != nil {
		logger.Error("ingestion run aborted", "error", err)
		os.Exit(1)
	}
}

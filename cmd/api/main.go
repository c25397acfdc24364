// Command api serves the port-disruption forecast endpoint backed by the
// signal store.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/port-disruption-forecaster/internal/adapter/httpapi"
	"github.com/couchcryptid/port-disruption-forecaster/internal/config"
	"github.com/couchcryptid/port-disruption-forecaster/internal/domain"
	"github.com/couchcryptid/port-disruption-forecaster/internal/forecast"
	"github.com/couchcryptid/port-disruption-forecaster/internal/observability"
	"github.com/couchcryptid/port-disruption-forecaster/internal/risk"
	"github.com/couchcryptid/port-disruption-forecaster/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.APIKey == "" {
		slog.Error("API_KEY is required")
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

	// Source order fixes the order of contributing signals in every response.
	providers := []forecast.Provider{
		forecast.NewStoreProvider(repo, domain.SourceMarineTraffic),
		forecast.NewStoreProvider(repo, domain.SourceGDELT),
		forecast.NewStoreProvider(repo, domain.SourceACLED),
	}

	aggregator := risk.NewAggregator(cfg.Scoring)
	svc := forecast.NewService(providers, aggregator, logger)

	srv := httpapi.NewServer(cfg.HTTPAddr, cfg.APIKey, svc, repo, logger, metrics)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}

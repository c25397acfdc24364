// Package conflict reserves the ACLED conflict-data integration point.
// The adapter satisfies the producer contract but emits nothing until an
// API key arrangement is in place.
package conflict

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/port-disruption-forecaster/internal/domain"
)

// Adapter is the ACLED stub producer.
type Adapter struct {
	logger *slog.Logger
}

// NewAdapter creates the stub.
func NewAdapter(logger *slog.Logger) *Adapter {
	return &Adapter{logger: logger}
}

// Name identifies this producer in logs and metrics.
func (a *Adapter) Name() string { return string(domain.SourceACLED) }

// ProduceSignals always returns an empty result.
func (a *Adapter) ProduceSignals(_ context.Context) ([]domain.Signal, error) {
	a.logger.Info("acled ingestion not implemented, skipping")
	return nil, nil
}

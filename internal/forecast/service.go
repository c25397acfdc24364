// Package forecast answers batch risk queries: for each requested port it
// collects one pre-aggregated contribution per source and hands them to the
// risk aggregator. Scoring lives in exactly one place; this package only
// assembles inputs.
package forecast

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/port-disruption-forecaster/internal/domain"
	"github.com/couchcryptid/port-disruption-forecaster/internal/risk"
	"github.com/couchcryptid/port-disruption-forecaster/internal/storage"
)

// DefaultHorizonDays is applied when a request omits horizon_days. The value
// is echoed and reserved for future filtering; scoring does not consume it yet.
const DefaultHorizonDays = 30

// Provider yields one source's risk contribution for a port. ok is false
// when the source has no evidence for that port.
type Provider interface {
	Source() domain.Source
	Contribution(ctx context.Context, port string) (c risk.Contribution, ok bool, err error)
}

// Service computes forecast responses. Providers are queried in their
// configured order, which the output preserves.
type Service struct {
	providers  []Provider
	aggregator *risk.Aggregator
	logger     *slog.Logger
}

// NewService creates a forecast service.
func NewService(providers []Provider, aggregator *risk.Aggregator, logger *slog.Logger) *Service {
	return &Service{
		providers:  providers,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Forecast returns one result per requested port, preserving request order.
// A provider failure degrades that source to no contribution for that port;
// the port still gets a result, so a fully degraded request yields all-Low
// forecasts rather than an error.
func (s *Service) Forecast(ctx context.Context, req domain.ForecastRequest) domain.ForecastResponse {
	results := make([]domain.ForecastResult, 0, len(req.Ports))

	for _, port := range req.Ports {
		contributions := make([]risk.Contribution, 0, len(s.providers))
		for _, provider := range s.providers {
			c, ok, err := provider.Contribution(ctx, port)
			if err != nil {
				s.logger.Error("contribution lookup failed",
					"source", provider.Source(), "port", port, "error", err)
				continue
			}
			if !ok {
				continue
			}
			contributions = append(contributions, c)
		}

		results = append(results, s.aggregator.Score(port, domain.ResolveCountry(port), contributions))
	}

	return domain.ForecastResponse{
		Forecasts: results,
		AsOf:      domain.Now(),
	}
}

// StoreProvider reduces a source's stored signals to a contribution via the
// repository's windowed query.
type StoreProvider struct {
	repo   *storage.Repository
	source domain.Source
}

// NewStoreProvider creates a store-backed provider for one source.
func NewStoreProvider(repo *storage.Repository, source domain.Source) *StoreProvider {
	return &StoreProvider{repo: repo, source: source}
}

func (p *StoreProvider) Source() domain.Source { return p.source }

func (p *StoreProvider) Contribution(ctx context.Context, port string) (risk.Contribution, bool, error) {
	c, err := p.repo.SourceContribution(ctx, port, p.source)
	if err != nil {
		return risk.Contribution{}, false, err
	}
	if c.Signals == 0 {
		return risk.Contribution{}, false, nil
	}

	return risk.Contribution{
		Source: p.source,
		Type:   c.EventType,
		Value:  fmt.Sprintf("%d signals", c.Signals),
		Risk:   c.Risk,
	}, true, nil
}

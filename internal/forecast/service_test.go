package forecast

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/port-disruption-forecaster/internal/domain"
	"github.com/couchcryptid/port-disruption-forecaster/internal/risk"
)

type stubProvider struct {
	source        domain.Source
	contributions map[string]risk.Contribution
	err           error
}

func (s *stubProvider) Source() domain.Source { return s.source }

func (s *stubProvider) Contribution(_ context.Context, port string) (risk.Contribution, bool, error) {
	if s.err != nil {
		return risk.Contribution{}, false, s.err
	}
	c, ok := s.contributions[port]
	return c, ok, nil
}

func newService(providers ...Provider) *Service {
	agg := risk.NewAggregator(domain.DefaultScoringOptions())
	return NewService(providers, agg, slog.Default())
}

func TestForecast_TwoSources(t *testing.T) {
	marine := &stubProvider{
		source: domain.SourceMarineTraffic,
		contributions: map[string]risk.Contribution{
			"Shanghai": {Source: domain.SourceMarineTraffic, Type: "Congestion", Value: "3 signals", Risk: 25},
		},
	}
	gdelt := &stubProvider{
		source: domain.SourceGDELT,
		contributions: map[string]risk.Contribution{
			"Shanghai": {Source: domain.SourceGDELT, Type: "Protest", Value: "7 signals", Risk: 35},
		},
	}

	svc := newService(marine, gdelt)
	resp := svc.Forecast(context.Background(), domain.ForecastRequest{Ports: []string{"Shanghai"}, HorizonDays: 30})

	require.Len(t, resp.Forecasts, 1)
	f := resp.Forecasts[0]
	assert.Equal(t, "Shanghai", f.Port)
	assert.Equal(t, "China", f.Country)
	assert.Equal(t, 60.0, f.DisruptionRiskScore)
	assert.Equal(t, "Medium", f.RiskLevel)
	require.NotNil(t, f.PredictedDelayDays)
	assert.Equal(t, 12, *f.PredictedDelayDays)
	assert.Equal(t, []string{"Reroute via alternative port", "Increase buffer stock"}, f.Recommendations)

	require.Len(t, f.ContributingSignals, 2)
	assert.Equal(t, domain.SourceMarineTraffic, f.ContributingSignals[0].Source)
	assert.Equal(t, domain.SourceGDELT, f.ContributingSignals[1].Source)
}

func TestForecast_PreservesRequestOrder(t *testing.T) {
	svc := newService(&stubProvider{source: domain.SourceGDELT})
	resp := svc.Forecast(context.Background(), domain.ForecastRequest{
		Ports: []string{"Rotterdam", "Shanghai", "Santos"},
	})

	require.Len(t, resp.Forecasts, 3)
	assert.Equal(t, "Rotterdam", resp.Forecasts[0].Port)
	assert.Equal(t, "Shanghai", resp.Forecasts[1].Port)
	assert.Equal(t, "Santos", resp.Forecasts[2].Port)
}

func TestForecast_NoSignals(t *testing.T) {
	svc := newService(
		&stubProvider{source: domain.SourceMarineTraffic},
		&stubProvider{source: domain.SourceGDELT},
	)

	resp := svc.Forecast(context.Background(), domain.ForecastRequest{Ports: []string{"Ghost Harbor"}})

	require.Len(t, resp.Forecasts, 1)
	f := resp.Forecasts[0]
	assert.Equal(t, 0.0, f.DisruptionRiskScore)
	assert.Equal(t, "Low", f.RiskLevel)
	assert.Nil(t, f.PredictedDelayDays)
	assert.Equal(t, 0.85, f.Confidence)
	assert.Empty(t, f.ContributingSignals)
	assert.Equal(t, domain.UnknownSentinel, f.Country)
}

func TestForecast_ProviderFailureDegradesToEmpty(t *testing.T) {
	failing := &stubProvider{source: domain.SourceGDELT, err: errors.New("store unavailable")}
	working := &stubProvider{
		source: domain.SourceMarineTraffic,
		contributions: map[string]risk.Contribution{
			"Shanghai": {Source: domain.SourceMarineTraffic, Type: "Congestion", Value: "1 signals", Risk: 25},
		},
	}

	svc := newService(failing, working)
	resp := svc.Forecast(context.Background(), domain.ForecastRequest{Ports: []string{"Shanghai"}})

	// The request still succeeds with the surviving source.
	require.Len(t, resp.Forecasts, 1)
	assert.Equal(t, 25.0, resp.Forecasts[0].DisruptionRiskScore)
	require.Len(t, resp.Forecasts[0].ContributingSignals, 1)
}

func TestForecast_AsOfUsesClock(t *testing.T) {
	frozen := time.Date(2026, 8, 24, 9, 30, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(frozen))
	defer domain.SetClock(nil)

	svc := newService(&stubProvider{source: domain.SourceGDELT})
	resp := svc.Forecast(context.Background(), domain.ForecastRequest{Ports: []string{"Shanghai"}})

	assert.Equal(t, frozen, resp.AsOf)
}

//go:build integration

package integration_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/couchcryptid/port-disruption-forecaster/internal/domain"
	"github.com/couchcryptid/port-disruption-forecaster/internal/forecast"
	"github.com/couchcryptid/port-disruption-forecaster/internal/risk"
	"github.com/couchcryptid/port-disruption-forecaster/internal/storage"
)

// startPostgres launches a throwaway Postgres and returns an opened,
// migrated repository.
func startPostgres(ctx context.Context, t *testing.T) *storage.Repository {
	t.Helper()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("disruption"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := storage.Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, storage.RunMigrations(ctx, pool))
	return storage.NewRepository(pool)
}

func signalAt(source domain.Source, port, eventType string, impact float64, ingested time.Time) domain.Signal {
	return domain.Signal{
		Source:      source,
		PortName:    port,
		Country:     domain.ResolveCountry(port),
		EventType:   eventType,
		Description: "integration fixture",
		EventDate:   ingested.Add(-6 * time.Hour),
		ImpactScore: impact,
		RawData:     "fixture",
		IngestedAt:  ingested,
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	repo := startPostgres(ctx, t)
	now := time.Now().UTC()

	t.Run("empty batch is a no-op", func(t *testing.T) {
		count, err := repo.InsertSignals(ctx, nil)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("insert and reduce", func(t *testing.T) {
		count, err := repo.InsertSignals(ctx, []domain.Signal{
			signalAt(domain.SourceGDELT, "Shanghai, Shanghai, China", "Protest", 35, now),
			signalAt(domain.SourceGDELT, "Shanghai, Shanghai, China", "Disruption", 10, now),
			signalAt(domain.SourceMarineTraffic, "Shanghai", "Congestion", 25, now),
		})
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		// Request-style port names match the fuller upstream location strings.
		c, err := repo.SourceContribution(ctx, "Shanghai", domain.SourceGDELT)
		require.NoError(t, err)
		assert.Equal(t, 2, c.Signals)
		assert.Equal(t, 35.0, c.Risk)
		assert.Equal(t, "Protest", c.EventType)

		c, err = repo.SourceContribution(ctx, "Shanghai", domain.SourceMarineTraffic)
		require.NoError(t, err)
		assert.Equal(t, 1, c.Signals)
		assert.Equal(t, 25.0, c.Risk)
	})

	t.Run("unknown port has no contribution", func(t *testing.T) {
		c, err := repo.SourceContribution(ctx, "Ghost Harbor", domain.SourceGDELT)
		require.NoError(t, err)
		assert.Zero(t, c.Signals)
		assert.Zero(t, c.Risk)
	})

	t.Run("duplicate re-run appends", func(t *testing.T) {
		batch := []domain.Signal{signalAt(domain.SourceACLED, "Santos", "Conflict", 5, now)}
		for range 2 {
			count, err := repo.InsertSignals(ctx, batch)
			require.NoError(t, err)
			assert.Equal(t, 1, count)
		}

		c, err := repo.SourceContribution(ctx, "Santos", domain.SourceACLED)
		require.NoError(t, err)
		assert.Equal(t, 2, c.Signals)
	})
}

// TestForecastAgainstStore exercises the full query path: stored signals
// through the store providers into the aggregator.
func TestForecastAgainstStore(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	repo := startPostgres(ctx, t)
	now := time.Now().UTC()

	_, err := repo.InsertSignals(ctx, []domain.Signal{
		signalAt(domain.SourceMarineTraffic, "Shanghai", "Congestion", 25, now),
		signalAt(domain.SourceGDELT, "Shanghai, Shanghai, China", "Protest", 35, now),
	})
	require.NoError(t, err)

	svc := forecast.NewService(
		[]forecast.Provider{
			forecast.NewStoreProvider(repo, domain.SourceMarineTraffic),
			forecast.NewStoreProvider(repo, domain.SourceGDELT),
		},
		risk.NewAggregator(domain.DefaultScoringOptions()),
		slog.Default(),
	)

	resp := svc.Forecast(ctx, domain.ForecastRequest{Ports: []string{"Shanghai", "Ghost Harbor"}, HorizonDays: 30})
	require.Len(t, resp.Forecasts, 2)

	shanghai := resp.Forecasts[0]
	assert.Equal(t, 60.0, shanghai.DisruptionRiskScore)
	assert.Equal(t, "Medium", shanghai.RiskLevel)
	require.NotNil(t, shanghai.PredictedDelayDays)
	assert.Equal(t, 12, *shanghai.PredictedDelayDays)
	require.Len(t, shanghai.ContributingSignals, 2)
	assert.Equal(t, domain.SourceMarineTraffic, shanghai.ContributingSignals[0].Source)

	ghost := resp.Forecasts[1]
	assert.Equal(t, 0.0, ghost.DisruptionRiskScore)
	assert.Equal(t, "Low", ghost.RiskLevel)
	assert.Empty(t, ghost.ContributingSignals)
}

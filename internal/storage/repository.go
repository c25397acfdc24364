// Package storage persists normalized signals append-only and serves the
// per-source risk contributions the forecast path aggregates.
package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/couchcryptid/port-disruption-forecaster/internal/domain"
)

// contributionLookback bounds the window scanned when reducing a source's
// signals to one contribution. The request's horizon_days is accepted by the
// API but not yet consumed here.
const contributionLookback = "7 days"

// Repository is the append-only signal store. No updates, no deletes, no
// dedup; a re-run of the ingestion job simply appends again.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wraps a connection pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Ping reports store reachability for readiness checks.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// InsertSignals appends a batch and returns the number of rows inserted.
// An empty batch is a no-op.
func (r *Repository) InsertSignals(ctx context.Context, signals []domain.Signal) (int, error) {
	if len(signals) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(signals))
	for _, s := range signals {
		id := s.ID
		if id == "" {
			id = uuid.NewString()
		}
		rows = append(rows, []any{
			id, string(s.Source), s.PortName, s.Country, s.EventType,
			s.Description, s.EventDate, s.ImpactScore, s.RawData, s.IngestedAt,
		})
	}

	count, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"port_disruption_signals"},
		[]string{
			"signal_id", "source", "port_name", "country", "event_type",
			"description", "event_date", "impact_score", "raw_data", "ingested_at",
		},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("insert signals: %w", err)
	}

	return int(count), nil
}

// Contribution is one source's pre-aggregated risk number for one port.
type Contribution struct {
	Risk      float64
	Signals   int
	EventType string
}

// SourceContribution reduces a source's recent signals for a port to a single
// contribution: the most severe impact within the lookback window, plus the
// signal count and the event type of that strongest signal. Port matching is
// a substring match because upstream location strings carry full geographic
// names ("Shanghai, Shanghai, China").
func (r *Repository) SourceContribution(ctx context.Context, port string, source domain.Source) (Contribution, error) {
	var c Contribution
	err := r.pool.QueryRow(ctx, `
        SELECT COUNT(*), COALESCE(MAX(impact_score), 0)
        FROM port_disruption_signals
        WHERE source = $1
          AND port_name ILIKE '%' || $2 || '%'
          AND ingested_at >= NOW() - $3::interval
    `, string(source), port, contributionLookback).Scan(&c.Signals, &c.Risk)
	if err != nil {
		return Contribution{}, fmt.Errorf("source contribution: %w", err)
	}

	if c.Signals == 0 {
		return c, nil
	}

	err = r.pool.QueryRow(ctx, `
        SELECT event_type
        FROM port_disruption_signals
        WHERE source = $1
          AND port_name ILIKE '%' || $2 || '%'
          AND ingested_at >= NOW() - $3::interval
        ORDER BY impact_score DESC, ingested_at DESC
        LIMIT 1
    `, string(source), port, contributionLookback).Scan(&c.EventType)
	if err != nil {
		return Contribution{}, fmt.Errorf("contribution event type: %w", err)
	}

	return c, nil
}

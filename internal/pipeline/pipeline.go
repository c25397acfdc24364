// Package pipeline orchestrates the daily ingestion run: every source
// adapter produces signals best-effort, and each source's batch is stored
// (and optionally published) independently of the others.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/port-disruption-forecaster/internal/domain"
	"github.com/couchcryptid/port-disruption-forecaster/internal/observability"
)

// SignalProducer is the uniform source-adapter capability. Implementations
// must be best-effort: an error degrades that source to an empty result at
// this layer, it never aborts the run.
type SignalProducer interface {
	Name() string
	ProduceSignals(ctx context.Context) ([]domain.Signal, error)
}

// SignalStore appends normalized signals.
type SignalStore interface {
	InsertSignals(ctx context.Context, signals []domain.Signal) (int, error)
}

// SignalPublisher forwards normalized signals to downstream consumers.
type SignalPublisher interface {
	PublishSignals(ctx context.Context, signals []domain.Signal) error
}

// Pipeline runs the ingestion job across all configured producers.
type Pipeline struct {
	producers []SignalProducer
	store     SignalStore
	publisher SignalPublisher // nil disables publishing
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Pipeline. Pass a nil publisher when no Kafka sink is configured.
func New(producers []SignalProducer, store SignalStore, publisher SignalPublisher, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		producers: producers,
		store:     store,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run executes one ingestion pass. Sources are processed sequentially;
// per-source and per-port fetches are independent and could be dispatched in
// parallel, which is deferred as future work. The run is safe to repeat: the
// store is append-only and tolerates duplicate rows.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	p.metrics.IngestRunning.Set(1)
	defer p.metrics.IngestRunning.Set(0)

	total := 0
	for _, producer := range p.producers {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		total += p.runSource(ctx, producer)
	}

	p.metrics.IngestDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("ingestion run complete", "inserted", total, "duration", time.Since(start))
	return nil
}

// runSource produces, stamps, stores, and optionally publishes one source's
// batch. Every failure is contained to this source. Returns rows inserted.
func (p *Pipeline) runSource(ctx context.Context, producer SignalProducer) int {
	source := producer.Name()

	signals, err := producer.ProduceSignals(ctx)
	if err != nil {
		p.logger.Error("source fetch failed", "source", source, "error", err)
		p.metrics.SourceErrors.WithLabelValues(source, "fetch").Inc()
		return 0
	}

	signals = p.stamp(source, signals)
	p.metrics.SignalsProduced.WithLabelValues(source).Add(float64(len(signals)))

	if len(signals) == 0 {
		p.logger.Info("source produced no signals", "source", source)
		return 0
	}

	inserted, err := p.store.InsertSignals(ctx, signals)
	if err != nil {
		p.logger.Error("store insert failed", "source", source, "error", err, "batch_size", len(signals))
		p.metrics.SourceErrors.WithLabelValues(source, "insert").Inc()
		return 0
	}
	p.metrics.SignalsInserted.WithLabelValues(source).Add(float64(inserted))
	p.logger.Info("signals inserted", "source", source, "produced", len(signals), "inserted", inserted)

	if p.publisher != nil {
		if err := p.publisher.PublishSignals(ctx, signals); err != nil {
			p.logger.Warn("signal publish failed", "source", source, "error", err)
			p.metrics.SourceErrors.WithLabelValues(source, "publish").Inc()
		} else {
			p.metrics.SignalsPublished.WithLabelValues(source).Add(float64(len(signals)))
		}
	}

	return inserted
}

// stamp assigns ingestion time and drops any signal violating the domain
// invariants. Adapters are expected to produce valid signals; this is the
// enforcement point for the impact_score >= 0 contract.
func (p *Pipeline) stamp(source string, signals []domain.Signal) []domain.Signal {
	now := domain.Now()
	stamped := signals[:0]
	for _, s := range signals {
		s.IngestedAt = now
		if err := s.Validate(); err != nil {
			p.logger.Warn("dropping invalid signal", "source", source, "error", err)
			continue
		}
		stamped = append(stamped, s)
	}
	return stamped
}

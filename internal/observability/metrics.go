package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// ingestion pipeline and the forecast API.
type Metrics struct {
	SignalsProduced  *prometheus.CounterVec // labels: source
	SignalsInserted  *prometheus.CounterVec // labels: source
	SignalsPublished *prometheus.CounterVec // labels: source
	SourceErrors     *prometheus.CounterVec // labels: source, stage={fetch,insert,publish}
	IngestRunning    prometheus.Gauge
	IngestDuration   prometheus.Histogram

	ForecastRequests *prometheus.CounterVec // labels: outcome={ok,unauthorized,bad_request}
	ForecastDuration prometheus.Histogram
	PortsScored      prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.SignalsProduced,
		m.SignalsInserted,
		m.SignalsPublished,
		m.SourceErrors,
		m.IngestRunning,
		m.IngestDuration,
		m.ForecastRequests,
		m.ForecastDuration,
		m.PortsScored,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SignalsProduced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "port_forecaster",
			Name:      "signals_produced_total",
			Help:      "Normalized signals produced per source adapter.",
		}, []string{"source"}),
		SignalsInserted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "port_forecaster",
			Name:      "signals_inserted_total",
			Help:      "Signals appended to the store per source.",
		}, []string{"source"}),
		SignalsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "port_forecaster",
			Name:      "signals_published_total",
			Help:      "Signals published to the optional Kafka sink per source.",
		}, []string{"source"}),
		SourceErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "port_forecaster",
			Name:      "source_errors_total",
			Help:      "Per-source failures by pipeline stage.",
		}, []string{"source", "stage"}),
		IngestRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "port_forecaster",
			Name:      "ingest_running",
			Help:      "1 while an ingestion run is active.",
		}),
		IngestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "port_forecaster",
			Name:      "ingest_duration_seconds",
			Help:      "Duration of a complete ingestion run.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		ForecastRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "port_forecaster",
			Name:      "forecast_requests_total",
			Help:      "Forecast API requests by outcome.",
		}, []string{"outcome"}),
		ForecastDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "port_forecaster",
			Name:      "forecast_duration_seconds",
			Help:      "Duration of forecast request handling.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		PortsScored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "port_forecaster",
			Name:      "ports_scored_total",
			Help:      "Total per-port forecasts computed.",
		}),
	}
}

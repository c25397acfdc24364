// Package risk turns per-source risk contributions into a single forecast.
// It is the only scoring implementation in the service; both the query path
// and any batch consumer band scores through it.
package risk

import (
	"math"

	"github.com/couchcryptid/port-disruption-forecaster/internal/domain"
)

// Contribution is the scalar severity one source assigned to one port,
// plus the display fields echoed into the forecast.
type Contribution struct {
	Source domain.Source
	Type   string
	Value  string
	Risk   float64
}

// Aggregator computes forecast results from contributions. It holds no
// mutable state; scoring the same inputs twice yields identical results.
type Aggregator struct {
	opts domain.ScoringOptions
}

// NewAggregator creates an Aggregator with the given scoring options.
func NewAggregator(opts domain.ScoringOptions) *Aggregator {
	return &Aggregator{opts: opts}
}

// Score combines the contributions for one port into a forecast result.
// Zero contributions produce a valid "Low" result, never an error.
func (a *Aggregator) Score(port, country string, contributions []Contribution) domain.ForecastResult {
	total := 0.0
	signals := make([]domain.ContributingSignal, 0, len(contributions))
	for _, c := range contributions {
		total += c.Risk
		signals = append(signals, domain.ContributingSignal{
			Source: c.Source,
			Type:   c.Type,
			Value:  c.Value,
			Impact: c.Risk,
		})
	}

	score := round1(total)

	return domain.ForecastResult{
		Port:                port,
		Country:             country,
		DisruptionRiskScore: score,
		RiskLevel:           a.band(score),
		PredictedDelayDays:  a.predictedDelay(score),
		Confidence:          a.opts.ConfidenceDefault,
		ContributingSignals: signals,
		Recommendations:     a.recommendations(score),
	}
}

// band maps a score to its risk level. Boundaries are strict greater-than:
// a score exactly at a threshold falls into the band below it.
func (a *Aggregator) band(score float64) string {
	switch {
	case score > a.opts.HighThreshold:
		return "High"
	case score > a.opts.MediumThreshold:
		return "Medium"
	default:
		return "Low"
	}
}

// predictedDelay returns floor(score/divisor) days above the delay threshold,
// nil otherwise. Absence means "no meaningful delay predicted", not zero.
func (a *Aggregator) predictedDelay(score float64) *int {
	if score <= a.opts.DelayThreshold {
		return nil
	}
	days := int(math.Floor(score / a.opts.DelayDivisor))
	return &days
}

// recommendations selects exactly one banding rule, not cumulative advice.
func (a *Aggregator) recommendations(score float64) []string {
	if score > a.opts.ActionThreshold {
		return []string{"Reroute via alternative port", "Increase buffer stock"}
	}
	return []string{"Monitor"}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

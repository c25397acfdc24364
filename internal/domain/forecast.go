package domain

import "time"

// ContributingSignal summarizes one source's evidence inside a forecast,
// preserving the order sources were queried in.
type ContributingSignal struct {
	Source Source  `json:"source"`
	Type   string  `json:"type"`
	Value  string  `json:"value"`
	Impact float64 `json:"impact"`
}

// ForecastResult is the per-port output of the scoring pipeline. It is
// recomputed per query and never persisted.
type ForecastResult struct {
	Port                string  `json:"port"`
	Country             string  `json:"country"`
	DisruptionRiskScore float64 `json:"disruption_risk_score"`
	RiskLevel           string  `json:"risk_level"`

	// PredictedDelayDays is present only above the delay threshold; absence
	// signals "no meaningful delay predicted", which is distinct from zero.
	PredictedDelayDays *int `json:"predicted_delay_days,omitempty"`

	Confidence          float64              `json:"confidence"`
	ContributingSignals []ContributingSignal `json:"contributing_signals"`
	Recommendations     []string             `json:"recommendations"`
}

// ForecastRequest is the body accepted by the forecast endpoint.
// HorizonDays and Keywords are accepted but not yet consumed by scoring;
// they are reserved for future filtering.
type ForecastRequest struct {
	Ports       []string `json:"ports"`
	HorizonDays int      `json:"horizon_days"`
	Keywords    []string `json:"keywords,omitempty"`
}

// ForecastResponse wraps a batch of per-port results.
type ForecastResponse struct {
	Forecasts []ForecastResult `json:"forecasts"`
	AsOf      time.Time        `json:"as_of"`
}

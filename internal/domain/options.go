package domain

// ScoringOptions collects the previously hard-coded scoring constants so
// deployments can override them and tests can exercise boundary values.
type ScoringOptions struct {
	// Risk band thresholds, strict greater-than at each boundary:
	// score > High -> "High", score > Medium -> "Medium", else "Low".
	HighThreshold   float64
	MediumThreshold float64

	// A delay estimate of floor(score/DelayDivisor) days is attached only
	// when score > DelayThreshold.
	DelayThreshold float64
	DelayDivisor   float64

	// ActionThreshold gates the mitigation recommendations; at or below it
	// the only advice is to monitor.
	ActionThreshold float64

	// ConfidenceDefault is a placeholder pending real uncertainty modeling;
	// it is not derived from signal count or recency.
	ConfidenceDefault float64

	// Keywords is the vocabulary the port-traffic feed adapter matches
	// against entry titles and summaries.
	Keywords []string
}

// DefaultScoringOptions returns the operational defaults.
func DefaultScoringOptions() ScoringOptions {
	return ScoringOptions{
		HighThreshold:     60,
		MediumThreshold:   30,
		DelayThreshold:    20,
		DelayDivisor:      5,
		ActionThreshold:   50,
		ConfidenceDefault: 0.85,
		Keywords: []string{
			"congestion", "delay", "waiting", "anchorage",
			"queue", "strike", "protest", "blockade",
		},
	}
}

package domain

import (
	"errors"
	"fmt"
	"time"
)

// Source identifies the upstream a signal originated from.
type Source string

const (
	SourceGDELT         Source = "GDELT"
	SourceMarineTraffic Source = "MarineTraffic"
	SourceACLED         Source = "ACLED"
)

// Signal is one normalized piece of evidence about a disruption-relevant
// event at or near a port. Signals are immutable once created and persisted
// append-only; retention is a store concern.
type Signal struct {
	ID          string    `json:"id,omitempty"`
	Source      Source    `json:"source"`
	PortName    string    `json:"port_name"`
	Country     string    `json:"country"`
	EventType   string    `json:"event_type"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"event_date"`
	ImpactScore float64   `json:"impact_score"`

	// RawData holds the original payload or a reference to it, retained for
	// audit and debugging. Never parsed downstream.
	RawData string `json:"raw_data,omitempty"`

	IngestedAt time.Time `json:"ingested_at,omitzero"`
}

// Validate checks the invariants every adapter must uphold.
func (s Signal) Validate() error {
	if s.Source == "" {
		return errors.New("signal source must be set")
	}
	if s.Description == "" {
		return errors.New("signal description must be non-empty")
	}
	if s.ImpactScore < 0 {
		return fmt.Errorf("signal impact score must be non-negative, got %g", s.ImpactScore)
	}
	return nil
}

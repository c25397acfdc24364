// Package kafka publishes normalized signals to an optional topic for
// downstream consumers (dashboards, alerting). The store remains the system
// of record; publishing is fire-and-forget.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/port-disruption-forecaster/internal/config"
	"github.com/couchcryptid/port-disruption-forecaster/internal/domain"
)

// Writer produces signal messages to the configured topic.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the signals topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSignalsTopic,
		Balancer:     &kafkago.LeastBytes{},
		BatchTimeout: 250 * time.Millisecond,
		RequiredAcks: kafkago.RequireOne,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishSignals serializes and publishes a batch in one WriteMessages call.
func (w *Writer) PublishSignals(ctx context.Context, signals []domain.Signal) error {
	if len(signals) == 0 {
		return nil
	}

	msgs := make([]kafkago.Message, len(signals))
	for i := range signals {
		msg, err := serializeToMessage(signals[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a signal into a Kafka message keyed by port so
// per-port consumers see ordered updates.
func serializeToMessage(signal domain.Signal) (kafkago.Message, error) {
	data, err := json.Marshal(signal)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize signal: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(signal.PortName),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte(signal.Source)},
			{Key: "ingested_at", Value: []byte(signal.IngestedAt.Format(time.RFC3339))},
		},
	}, nil
}

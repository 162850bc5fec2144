package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/tidemarsh/floodwatch/internal/config"
	"github.com/tidemarsh/floodwatch/internal/domain"
)

// Writer produces alert events to a Kafka topic.
// It implements engine.AlertSink.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured alerts topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAlertsTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishAlerts serializes and publishes a cycle's alert events to the
// alerts topic in a single WriteMessages call.
func (w *Writer) PublishAlerts(ctx context.Context, events []domain.AlertEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(events))
	for i := range events {
		msg, err := serializeToMessage(events[i])
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

// serializeToMessage marshals an AlertEvent into a Kafka message keyed by
// station id, so one station's alerts stay ordered within a partition.
func serializeToMessage(event domain.AlertEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize alert event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.StationID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "kind", Value: []byte(event.Kind)},
			{Key: "emitted_at", Value: []byte(event.Timestamp.Format(time.RFC3339))},
		},
	}, nil
}

package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/quake-scenario-etl/internal/config"
	"github.com/couchcryptid/quake-scenario-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces scenario messages to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: cfg.BatchFlushInterval,
		BatchBytes:   maxDocumentBytes,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes scenarios to the sink topic in a single
// WriteMessages call. Messages are keyed by event id so every realization
// of the same event lands on one partition.
func (w *Writer) LoadBatch(ctx context.Context, scenarios []domain.Scenario) error {
	if len(scenarios) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(scenarios))
	for i := range scenarios {
		msg, err := serializeToMessage(scenarios[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write scenarios: %w", err)
	}
	w.logger.Debug("scenarios published", "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Scenario's wire form into a Kafka message.
func serializeToMessage(sc domain.Scenario) (kafkago.Message, error) {
	data, err := json.Marshal(sc.Message())
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize scenario %s: %w", sc.Event.ID, err)
	}
	return kafkago.Message{
		Key:   []byte(sc.Event.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_id", Value: []byte(sc.Event.ID)},
			{Key: "dialect", Value: []byte(sc.Dialect)},
			{Key: "processed_at", Value: []byte(sc.ProcessedAt.Format(time.RFC3339))},
		},
	}, nil
}

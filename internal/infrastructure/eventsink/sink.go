package eventsink

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/iho/gowallet/internal/domain"
)

// KafkaSink publishes wallet events to a Kafka topic. Delivery is
// best-effort; callers are expected to log and drop failures.
type KafkaSink struct {
	writer *kafka.Writer
}

// NewKafkaSink creates a KafkaSink writing to the given brokers and topic.
func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	return &KafkaSink{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// Publish sends one event, keyed by event name so consumers can partition by
// kind.
func (s *KafkaSink) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Event),
		Value: payload,
	})
}

// Close flushes and closes the underlying writer.
func (s *KafkaSink) Close() error {
	return s.writer.Close()
}

// LogSink writes events to the log instead of a broker. Used when no Kafka
// brokers are configured.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink creates a LogSink.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Publish logs the event at info level.
func (s *LogSink) Publish(ctx context.Context, event domain.Event) error {
	s.logger.Info().
		Str("event", event.Event).
		Str("timestamp", event.Timestamp).
		Interface("data", event.Data).
		Msg("wallet event")

	return nil
}

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher is the contract services use to emit seat events.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, evt Event) error
}

// KafkaPublisher publishes Event envelopes to Kafka.
type KafkaPublisher struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

// NewKafkaPublisher creates a publisher for the given brokers.
func NewKafkaPublisher(brokers []string, logger *zap.Logger) *KafkaPublisher {
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Balancer:     &kafkago.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafkago.RequireOne,
	}
	return &KafkaPublisher{writer: writer, logger: logger}
}

// Publish writes one event to the topic, keyed so all events for a seat land
// on the same partition.
func (p *KafkaPublisher) Publish(ctx context.Context, topic, key string, evt Event) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish event to %s: %w", topic, err)
	}

	p.logger.Debug("published event",
		zap.String("topic", topic),
		zap.String("type", evt.Type),
		zap.String("key", key),
	)
	return nil
}

// Close flushes and closes the underlying Kafka writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

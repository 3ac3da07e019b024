package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// ErrPublisherClosed is returned by Publish after Close.
var ErrPublisherClosed = errors.New("event publisher closed")

// KafkaPublisher writes CloudEvents to a single Kafka topic.
type KafkaPublisher struct {
	writer *kafkago.Writer
	source string
	logger *zap.Logger
	closed *atomic.Bool
}

// NewKafkaPublisher creates a new KafkaPublisher.
func NewKafkaPublisher(brokers []string, topic, source string, logger *zap.Logger) *KafkaPublisher {
	writer := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           10 * time.Second,
	}
	return &KafkaPublisher{
		writer: writer,
		source: source,
		logger: logger,
		closed: atomic.NewBool(false),
	}
}

// Publish wraps data in a CloudEvent and writes it keyed by key.
func (p *KafkaPublisher) Publish(ctx context.Context, eventType, key string, data interface{}) error {
	if p.closed.Load() {
		return ErrPublisherClosed
	}

	ce, err := NewCloudEvent(p.source, eventType, data)
	if err != nil {
		return err
	}

	value, err := json.Marshal(ce)
	if err != nil {
		return fmt.Errorf("failed to marshal cloud event: %w", err)
	}

	msg := kafkago.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafkago.Header{
			{Key: "ce_type", Value: []byte(eventType)},
			{Key: "ce_id", Value: []byte(ce.ID)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write %s to %s: %w", eventType, p.writer.Topic, err)
	}

	p.logger.Debug("event published",
		zap.String("topic", p.writer.Topic),
		zap.String("event_type", eventType),
		zap.String("event_id", ce.ID),
	)
	return nil
}

// Close flushes and closes the underlying writer.
// Close is idempotent.
func (p *KafkaPublisher) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	return p.writer.Close()
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

// Publish implements the publisher contract without side effects.
func (NopPublisher) Publish(context.Context, string, string, interface{}) error { return nil }

// Close implements io.Closer.
func (NopPublisher) Close() error { return nil }

package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker"

	"github.com/wms-platform/voicepick-service/pkg/logging"
	"github.com/wms-platform/voicepick-service/pkg/metrics"
	"github.com/wms-platform/voicepick-service/pkg/resilience"
)

// EventEnvelope wraps a domain event for the wire
type EventEnvelope struct {
	EventID   string          `json:"eventId"`
	EventType string          `json:"eventType"`
	Source    string          `json:"source"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// Producer publishes domain events to Kafka behind a circuit breaker
type Producer struct {
	writer  *kafka.Writer
	breaker *gobreaker.CircuitBreaker
	logger  *logging.Logger
	metrics *metrics.Metrics
	source  string
}

// NewProducer creates a Kafka producer for the given topic
func NewProducer(config *Config, topic string, logger *logging.Logger, m *metrics.Metrics) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: config.BatchTimeout,
		WriteTimeout: config.WriteTimeout,
		RequiredAcks: kafka.RequiredAcks(config.RequiredAcks),
		MaxAttempts:  config.MaxAttempts,
		Compression:  kafka.Snappy,
	}

	breaker := resilience.NewBreaker(
		resilience.DefaultBreakerConfig("kafka-"+topic),
		logger,
		m,
	)

	return &Producer{
		writer:  writer,
		breaker: breaker,
		logger:  logger,
		metrics: m,
		source:  config.ClientID,
	}
}

// Publish serializes and publishes an event keyed by the given key
func (p *Producer) Publish(ctx context.Context, eventType string, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling event payload: %w", err)
	}

	envelope := EventEnvelope{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Source:    p.source,
		Timestamp: time.Now().UTC(),
		Payload:   body,
	}

	value, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshaling event envelope: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(eventType)},
			{Key: "event-id", Value: []byte(envelope.EventID)},
		},
	}

	_, err = p.breaker.Execute(func() (any, error) {
		return nil, p.writer.WriteMessages(ctx, msg)
	})

	if p.metrics != nil {
		p.metrics.RecordEventPublished(eventType, err == nil)
	}

	if err != nil {
		return fmt.Errorf("publishing %s event: %w", eventType, err)
	}

	p.logger.WithContext(ctx).Debug("Event published",
		"eventType", eventType,
		"eventId", envelope.EventID,
		"key", key,
	)

	return nil
}

// Close flushes and closes the underlying writer
func (p *Producer) Close() error {
	return p.writer.Close()
}

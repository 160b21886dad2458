package events

import (
	"context"
	"strconv"

	"github.com/wms-platform/voicepick-service/internal/domain"
	"github.com/wms-platform/voicepick-service/pkg/kafka"
)

// KafkaPublisher adapts the Kafka producer to the domain event
// publisher. Events for the same task share a partition key so
// downstream consumers see them in order.
type KafkaPublisher struct {
	producer *kafka.Producer
}

// NewKafkaPublisher creates a KafkaPublisher
func NewKafkaPublisher(producer *kafka.Producer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

// PublishTaskEvent implements domain.EventPublisher
func (p *KafkaPublisher) PublishTaskEvent(ctx context.Context, event domain.DomainEvent) error {
	key := strconv.FormatInt(event.TaskID(), 10)
	return p.producer.Publish(ctx, event.EventType(), key, event)
}

// Close flushes the underlying producer
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

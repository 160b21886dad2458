package kafka

import (
	"strings"
	"time"
)

// Topics holds the topic names used by the service
type Topics struct {
	WorkQueueEvents string
}

// DefaultTopics returns the default topic layout
func DefaultTopics() Topics {
	return Topics{
		WorkQueueEvents: "wms.work-queue.events",
	}
}

// Config holds Kafka producer configuration
type Config struct {
	Brokers      []string
	Topics       Topics
	ClientID     string
	BatchTimeout time.Duration
	WriteTimeout time.Duration
	RequiredAcks int
	MaxAttempts  int
}

// DefaultConfig returns a default Kafka configuration
func DefaultConfig(brokers string, clientID string) *Config {
	return &Config{
		Brokers:      splitBrokers(brokers),
		Topics:       DefaultTopics(),
		ClientID:     clientID,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: -1,
		MaxAttempts:  3,
	}
}

func splitBrokers(brokers string) []string {
	parts := strings.Split(brokers, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Package kafka provides an audit.Store that produces events to a Kafka
// topic. Records are keyed by the ledger key so all events for one
// policyholder land in one partition, in order.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	audit "cyberins/pkg/platform/audit"
)

// Sink produces audit events to Kafka.
type Sink struct {
	client *kgo.Client
	topic  string
}

// NewSink connects a producer to the given brokers.
func NewSink(brokers []string, topic string) (*Sink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return &Sink{client: client, topic: topic}, nil
}

// Append produces one event and waits for the broker ack.
func (s *Sink) Append(ctx context.Context, event audit.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}
	record := &kgo.Record{
		Key:   []byte(event.Key),
		Value: value,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// Close flushes outstanding produces and releases the client.
func (s *Sink) Close() {
	s.client.Close()
}

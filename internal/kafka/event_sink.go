package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"im-client/internal/session"
)

// EventSink publishes session events as JSON, keyed by the acting user so
// one user's events stay ordered within a partition.
type EventSink struct {
	producer MessageProducer
	topic    string
}

var _ session.EventSink = (*EventSink)(nil)

func NewEventSink(producer MessageProducer, topic string) *EventSink {
	return &EventSink{producer: producer, topic: topic}
}

func (s *EventSink) Publish(ctx context.Context, event session.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}
	return s.producer.SendMessage(ctx, s.topic, []byte(event.ActorID), payload)
}

// Close closes the underlying producer.
func (s *EventSink) Close() {
	s.producer.Close()
}

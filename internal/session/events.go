package session

import (
	"context"
	"time"
)

// EventType names a graph or message mutation the session performed.
type EventType string

const (
	EventFriendRequestSent     EventType = "friend_request_sent"
	EventFriendRequestAccepted EventType = "friend_request_accepted"
	EventFriendRequestRejected EventType = "friend_request_rejected"
	EventMessageSent           EventType = "message_sent"
	EventSessionEnded          EventType = "session_ended"
)

// Event describes one successful mutation. The responder conversation never
// produces events.
type Event struct {
	Type     EventType `json:"type"`
	ActorID  string    `json:"actorId"`
	TargetID string    `json:"targetId,omitempty"`
	At       time.Time `json:"at"`
}

// EventSink receives events after the collaborator has accepted the mutation.
// Publish failures are logged and never undo the mutation.
type EventSink interface {
	Publish(ctx context.Context, event Event) error
}

// NopSink drops every event.
type NopSink struct{}

func (NopSink) Publish(context.Context, Event) error { return nil }

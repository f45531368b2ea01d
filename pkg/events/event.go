package events

import (
	"context"
	"time"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CONTEXT_CLONED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Publisher sends events somewhere: the in-process bus, NATS, or both.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Context lifecycle events.
const (
	ContextOpened  = "CONTEXT_OPENED"
	ContextCloned  = "CONTEXT_CLONED"
	ContextParsed  = "CONTEXT_PARSED"
	ContextUpdated = "CONTEXT_UPDATED"
	ContextClosed  = "CONTEXT_CLOSED"
)

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewContextEvent builds a lifecycle event for the view contextID. extra is merged into
// the payload.
func NewContextEvent(eventType, contextID string, extra map[string]interface{}) BaseEvent {
	data := map[string]interface{}{
		"context_id": contextID,
	}
	for k, v := range extra {
		data[k] = v
	}
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

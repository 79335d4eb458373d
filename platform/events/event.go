// Package events provides the in-process event bus the triage pipeline
// publishes on: buyer lifecycle and scoring events flow through here.
// This is part of the platform layer and carries no buyer semantics;
// the event types themselves live in internal/events.
package events

import (
	"context"
	"time"
)

// Event is the interface every published event implements.
type Event interface {
	// EventName returns a unique identifier such as "buyers.scored".
	EventName() string
	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time
}

// BaseEvent carries the timestamp shared by every event; concrete events
// embed it and add their own payload fields.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps a new base event with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler reacts to events of one type, for example queueing a rescore
// when a buyer changes.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts an ordinary function into a Handler.
type HandlerFunc func(ctx context.Context, event Event) error

// Handle calls the underlying function.
func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus publishes events to subscribed handlers. Publishers never learn
// whether anyone is listening; a buyer create succeeds even with no
// subscribers.
type Bus interface {
	// Publish dispatches to all handlers for the event's name, each in
	// its own goroutine.
	Publish(ctx context.Context, event Event)

	// PublishSync dispatches and waits for every handler.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers a handler under an event name, which should
	// match the value the event returns from EventName.
	Subscribe(eventName string, handler Handler)
}

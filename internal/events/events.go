// Package events provides a synchronous publish/subscribe bus used to
// decouple command dispatch outcomes from logging and UI feedback.
package events

import (
	"reflect"
	"sync"

	"github.com/voxctl/voxctl/internal/logging"
)

// Type identifies a kind of event.
type Type string

// Event types published across the voice pipeline.
const (
	// Audio events
	RecordingStarted Type = "recording_started"
	RecordingStopped Type = "recording_stopped"

	// Transcription events
	TranscriptionStarted   Type = "transcription_started"
	TranscriptionCompleted Type = "transcription_completed"
	TranscriptionFailed    Type = "transcription_failed"

	// Command events
	CommandDetected Type = "command_detected"
	CommandExecuted Type = "command_executed"
	CommandFailed   Type = "command_failed"

	// Text processing events
	TextProcessed Type = "text_processed"
	TextTyped     Type = "text_typed"

	// UI events
	OverlayShown  Type = "overlay_shown"
	OverlayHidden Type = "overlay_hidden"
)

// Event carries a type and an optional data payload.
// Events are immutable once published and are not persisted.
type Event struct {
	Type Type
	Data map[string]any
}

// New creates an event with the given type and payload.
func New(t Type, data map[string]any) Event {
	if data == nil {
		data = map[string]any{}
	}
	return Event{Type: t, Data: data}
}

// Handler is a subscriber callback.
type Handler func(Event)

// Bus is a synchronous publish/subscribe bus. Subscribers for a type are
// invoked in subscription order; a panicking subscriber is isolated and
// never prevents later subscribers or the publisher from proceeding.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[Type][]subscription
	logger      logging.Logger
}

type subscription struct {
	id      uintptr
	handler Handler
}

// NewBus creates an event bus. A nil logger disables logging.
func NewBus(logger logging.Logger) *Bus {
	if logger == nil {
		logger, _ = logging.Init(logging.Config{})
	}
	return &Bus{
		subscribers: make(map[Type][]subscription),
		logger:      logger,
	}
}

// Subscribe registers a handler for an event type. Subscribing the same
// handler twice has no additional effect.
//
// Handler identity is the function's code pointer, so closures minted
// from the same literal (or method values of different receivers) count
// as one handler. Wrap such callbacks in distinct top-level functions
// if they must subscribe independently.
func (b *Bus) Subscribe(t Type, handler Handler) {
	if handler == nil {
		return
	}
	id := reflect.ValueOf(handler).Pointer()
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subscribers[t] {
		if sub.id == id {
			return
		}
	}
	b.subscribers[t] = append(b.subscribers[t], subscription{id: id, handler: handler})
}

// Unsubscribe removes a previously registered handler.
func (b *Bus) Unsubscribe(t Type, handler Handler) {
	if handler == nil {
		return
	}
	id := reflect.ValueOf(handler).Pointer()
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subscribers[t]
	for i, sub := range subs {
		if sub.id == id {
			b.subscribers[t] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish delivers the event to every subscriber of its type, in
// subscription order, on the caller's goroutine.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := make([]subscription, len(b.subscribers[event.Type]))
	copy(subs, b.subscribers[event.Type])
	b.mu.RUnlock()

	for _, sub := range subs {
		b.invoke(sub.handler, event)
	}
}

func (b *Bus) invoke(handler Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event subscriber panicked", "type", string(event.Type), "panic", r)
		}
	}()
	handler(event)
}

// SubscriberCount returns the number of subscribers for an event type.
func (b *Bus) SubscriberCount(t Type) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[t])
}

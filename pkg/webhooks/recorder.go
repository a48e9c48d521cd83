package webhooks

import (
	"context"
	"sync"
)

// Event is a webhook captured by a Recorder.
type Event struct {
	Type    EventType
	Payload any
}

// Recorder is a Sender that keeps every event in order. Err, when set, is
// returned from Send after the event is recorded.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	Err    error
}

var _ Sender = (*Recorder)(nil)

func (r *Recorder) Send(ctx context.Context, eventType EventType, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, Event{Type: eventType, Payload: payload})
	return r.Err
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Event(nil), r.events...)
}

// Types returns the recorded event types in order.
func (r *Recorder) Types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()

	types := make([]EventType, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.Type)
	}
	return types
}

// OfType returns the payloads recorded for the event type.
func (r *Recorder) OfType(eventType EventType) []any {
	r.mu.Lock()
	defer r.mu.Unlock()

	var payloads []any
	for _, e := range r.events {
		if e.Type == eventType {
			payloads = append(payloads, e.Payload)
		}
	}
	return payloads
}

// Reset forgets all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = nil
}

package webhooks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrNoSubscription is returned when no subscriber is registered for an event type.
var ErrNoSubscription = errors.New("no webhook subscription")

// Subscription registers one URL per event type.
type Subscription struct {
	ID        string    `json:"id"`
	EventType EventType `json:"event_type"`
	URL       string    `json:"url"`
	Secret    string    `json:"secret,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SubscriptionStore persists subscriptions. Saving replaces the subscription of the same event type.
type SubscriptionStore interface {
	GetSubscription(ctx context.Context, eventType EventType) (*Subscription, error)
	SaveSubscription(ctx context.Context, sub *Subscription) error
}

// MemorySubscriptionStore keeps subscriptions in process.
type MemorySubscriptionStore struct {
	mu   sync.RWMutex
	subs map[EventType]Subscription
}

func NewMemorySubscriptionStore() *MemorySubscriptionStore {
	return &MemorySubscriptionStore{subs: make(map[EventType]Subscription)}
}

var _ SubscriptionStore = (*MemorySubscriptionStore)(nil)

func (s *MemorySubscriptionStore) GetSubscription(ctx context.Context, eventType EventType) (*Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subs[eventType]
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrNoSubscription, eventType)
	}
	return &sub, nil
}

func (s *MemorySubscriptionStore) SaveSubscription(ctx context.Context, sub *Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subs[sub.EventType] = *sub
	return nil
}

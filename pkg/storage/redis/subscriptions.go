package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kontist/mock-solaris-sub001/pkg/webhooks"
	"github.com/redis/go-redis/v9"
)

// subscriptionsKey is the hash holding one field per event type.
const subscriptionsKey = "webhooks:subscriptions"

// HashClient is the subset of the go-redis client used by the SubscriptionStore.
type HashClient interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// SubscriptionStore keeps webhook subscriptions in a Redis hash so every
// instance of the simulator sees the same subscribers.
type SubscriptionStore struct {
	client HashClient
}

func NewSubscriptionStore(client HashClient) *SubscriptionStore {
	return &SubscriptionStore{client: client}
}

var _ webhooks.SubscriptionStore = (*SubscriptionStore)(nil)

func (s *SubscriptionStore) GetSubscription(ctx context.Context, eventType webhooks.EventType) (*webhooks.Subscription, error) {
	raw, err := s.client.HGet(ctx, subscriptionsKey, string(eventType)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w for %s", webhooks.ErrNoSubscription, eventType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription from redis: %w", err)
	}

	var sub webhooks.Subscription
	if err := json.Unmarshal([]byte(raw), &sub); err != nil {
		return nil, fmt.Errorf("failed to unmarshal subscription: %w", err)
	}
	return &sub, nil
}

func (s *SubscriptionStore) SaveSubscription(ctx context.Context, sub *webhooks.Subscription) error {
	raw, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("failed to marshal subscription: %w", err)
	}

	if err := s.client.HSet(ctx, subscriptionsKey, string(sub.EventType), string(raw)).Err(); err != nil {
		return fmt.Errorf("failed to save subscription in redis: %w", err)
	}
	return nil
}

// NewClient parses a redis:// URL and verifies the connection.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

package webhooks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kontist/mock-solaris-sub001/pkg/metrics"
)

// Dispatcher looks up the subscriber of an event, prepares the delivery and hands
// it to a Deliverer.
type Dispatcher struct {
	subscriptions SubscriptionStore
	deliverer     Deliverer
	secret        string
	metrics       *metrics.Collector
	logger        *slog.Logger
}

// NewDispatcher creates a Dispatcher. secret signs deliveries of subscriptions without their own secret.
func NewDispatcher(subscriptions SubscriptionStore, deliverer Deliverer, secret string, collector *metrics.Collector, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		subscriptions: subscriptions,
		deliverer:     deliverer,
		secret:        secret,
		metrics:       collector,
		logger:        logger,
	}
}

var _ Sender = (*Dispatcher)(nil)

// Send delivers the event. A missing subscriber is logged and is not an error.
func (d *Dispatcher) Send(ctx context.Context, eventType EventType, payload any) error {
	// 1. Find the subscriber.
	sub, err := d.subscriptions.GetSubscription(ctx, eventType)
	if errors.Is(err, ErrNoSubscription) {
		d.logger.WarnContext(ctx, "no webhook subscriber registered", "event_type", eventType)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get webhook subscription: %w", err)
	}

	// 2. Serialize and sign.
	delivery, err := Prepare(sub, eventType, payload, d.secret)
	if err != nil {
		return err
	}

	// 3. Hand over to the transport.
	err = d.deliverer.Deliver(ctx, delivery)
	d.metrics.RecordWebhookDelivery(string(eventType), err)
	if err != nil {
		return fmt.Errorf("failed to deliver %s webhook: %w", eventType, err)
	}

	d.logger.DebugContext(ctx, "webhook delivered", "event_type", eventType, "webhook_id", delivery.ID, "url", delivery.URL)
	return nil
}

package webhooks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

const (
	HeaderContentType    = "Content-Type"
	HeaderEntityID       = "solaris-entity-id"
	HeaderAttempt        = "solaris-webhook-attempt"
	HeaderEventType      = "solaris-webhook-event-type"
	HeaderWebhookID      = "solaris-webhook-id"
	HeaderSignature      = "solaris-webhook-signature"
	HeaderSubscriptionID = "solaris-webhook-subscription-id"
)

// Delivery is a prepared webhook request. Signing happens before a delivery is
// handed to a Deliverer, so queued deliveries are sent byte for byte.
type Delivery struct {
	ID        string            `json:"id"`
	EventType EventType         `json:"event_type"`
	URL       string            `json:"url"`
	Headers   map[string]string `json:"headers"`
	Body      json.RawMessage   `json:"body"`
}

// Deliverer transports a prepared delivery to its URL.
type Deliverer interface {
	Deliver(ctx context.Context, d *Delivery) error
}

// Prepare serializes the payload and builds the headers for the subscription.
// Signed event types use the subscription secret, falling back to defaultSecret.
// Other event types get a top-level "id" unless the payload already has one.
func Prepare(sub *Subscription, eventType EventType, payload any, defaultSecret string) (*Delivery, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	d := &Delivery{
		ID:        uuid.New().String(),
		EventType: eventType,
		URL:       sub.URL,
		Headers: map[string]string{
			HeaderContentType: "application/json",
		},
	}

	if !eventType.Signed() {
		body, err = injectID(body, d.ID)
		if err != nil {
			return nil, err
		}
		d.Body = body
		return d, nil
	}

	secret := sub.Secret
	if secret == "" {
		secret = defaultSecret
	}

	entityID := ""
	if e, ok := payload.(Entity); ok {
		entityID = e.EntityID()
	}

	d.Body = body
	d.Headers[HeaderEntityID] = entityID
	d.Headers[HeaderAttempt] = "1"
	d.Headers[HeaderEventType] = string(eventType)
	d.Headers[HeaderWebhookID] = d.ID
	d.Headers[HeaderSignature] = NewSigner(secret, nil).Sign(body)
	d.Headers[HeaderSubscriptionID] = sub.ID
	return d, nil
}

func injectID(body []byte, id string) ([]byte, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(body), []byte("{")) {
		return body, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode webhook payload: %w", err)
	}
	if _, ok := fields["id"]; ok {
		return body, nil
	}

	raw, err := json.Marshal(id)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal webhook id: %w", err)
	}
	fields["id"] = raw

	out, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal webhook payload: %w", err)
	}
	return out, nil
}

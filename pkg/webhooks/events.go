package webhooks

import "context"

// EventType names a webhook event.
type EventType string

const (
	EventCardAuthorization           EventType = "CARD_AUTHORIZATION"
	EventCardAuthorizationResolution EventType = "CARD_AUTHORIZATION_RESOLUTION"
	EventCardAuthorizationDecline    EventType = "CARD_AUTHORIZATION_DECLINE"
	EventCardFraudCasePending        EventType = "CARD_FRAUD_CASE_PENDING"
	EventCardFraudCaseTimeout        EventType = "CARD_FRAUD_CASE_TIMEOUT"
	EventCardLifecycleEvent          EventType = "CARD_LIFECYCLE_EVENT"
	EventBooking                     EventType = "BOOKING"
	EventOverdraftApplication        EventType = "OVERDRAFT_APPLICATION"
)

// signedEvents are delivered with the solaris-* signature headers.
var signedEvents = map[EventType]struct{}{
	EventCardAuthorization:           {},
	EventCardAuthorizationResolution: {},
	EventCardAuthorizationDecline:    {},
	EventCardFraudCasePending:        {},
	EventCardFraudCaseTimeout:        {},
	EventOverdraftApplication:        {},
}

// Signed reports whether deliveries of the event carry an HMAC signature.
func (e EventType) Signed() bool {
	_, ok := signedEvents[e]
	return ok
}

// Valid reports whether the event type is known.
func (e EventType) Valid() bool {
	switch e {
	case EventCardLifecycleEvent, EventBooking:
		return true
	}
	return e.Signed()
}

// Sender delivers an event to its subscriber. Implementations return nil when
// nobody is subscribed to the event type.
type Sender interface {
	Send(ctx context.Context, eventType EventType, payload any) error
}

// Entity is implemented by payloads that name the entity they describe. The id
// is sent in the solaris-entity-id header of signed deliveries.
type Entity interface {
	EntityID() string
}

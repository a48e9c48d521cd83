package models

import (
	"encoding/json"
	"time"
)

// ChangeRequestMethod names the sensitive operation a change request gates.
type ChangeRequestMethod string

const (
	ChangeRequestMethodCardPINChange    ChangeRequestMethod = "card_pin_change"
	ChangeRequestMethodCardLimitsChange ChangeRequestMethod = "card_limits_change"
)

// ChangeRequestStatus is reported to the caller after each protocol step.
type ChangeRequestStatus string

const (
	ChangeRequestStatusAuthorizationRequired ChangeRequestStatus = "AUTHORIZATION_REQUIRED"
	ChangeRequestStatusConfirmationRequired  ChangeRequestStatus = "CONFIRMATION_REQUIRED"
	ChangeRequestStatusCompleted             ChangeRequestStatus = "COMPLETED"
	ChangeRequestStatusFailed                ChangeRequestStatus = "FAILED"
)

// DeliveryMethodMobileNumber delivers the TAN by SMS.
const DeliveryMethodMobileNumber = "mobile_number"

// ChangeRequest is a pending sensitive mutation awaiting TAN confirmation.
// A person holds at most one.
type ChangeRequest struct {
	ID     string              `json:"id" dynamodbav:"id"`
	Method ChangeRequestMethod `json:"method" dynamodbav:"method"`

	// Delta is the method-specific payload; its shape is owned by the registered handler.
	Delta json.RawMessage `json:"delta" dynamodbav:"delta"`

	// Token is the TAN minted by the authorize step; empty until then.
	Token     string    `json:"token,omitempty" dynamodbav:"token,omitempty"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

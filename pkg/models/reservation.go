package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// ReservationStatus is the state of a reservation.
type ReservationStatus string

const (
	ReservationStatusOpen     ReservationStatus = "OPEN"
	ReservationStatusResolved ReservationStatus = "RESOLVED"
	ReservationStatusRollback ReservationStatus = "ROLLBACK"
	ReservationStatusExpired  ReservationStatus = "EXPIRED"
)

// ReservationTypeCardAuthorization is the only reservation type the simulator creates.
const ReservationTypeCardAuthorization = "CARD_AUTHORIZATION"

// Reservation is a hold against the available balance pending settlement.
type Reservation struct {
	ID              string            `json:"id" dynamodbav:"id"`
	Amount          Amount            `json:"amount" dynamodbav:"amount"`
	ReservationType string            `json:"reservation_type" dynamodbav:"reservation_type"`
	Reference       string            `json:"reference" dynamodbav:"reference"`
	Status          ReservationStatus `json:"status" dynamodbav:"status"`
	MetaInfo        MetaInfo          `json:"meta_info" dynamodbav:"meta_info"`
	Description     string            `json:"description" dynamodbav:"description"`
	CreatedAt       time.Time         `json:"created_at" dynamodbav:"created_at"`
	ExpiresAt       time.Time         `json:"expires_at" dynamodbav:"expires_at"`
	ExpiredAt       *time.Time        `json:"expired_at,omitempty" dynamodbav:"expired_at,omitempty"`
	ResolvedAt      *time.Time        `json:"resolved_at,omitempty" dynamodbav:"resolved_at,omitempty"`
}

// CardID returns the card the reservation was authorized against, if any.
func (r *Reservation) CardID() string {
	if r.MetaInfo.Cards == nil {
		return ""
	}
	return r.MetaInfo.Cards.CardID
}

// MetaInfo is the structured context of a reservation or booking. The JSON key
// names the context; only the card context exists today.
type MetaInfo struct {
	Cards *CardContext `json:"cards,omitempty" dynamodbav:"cards,omitempty"`
}

// CardContext describes the card event behind a reservation or booking.
type CardContext struct {
	CardID          string          `json:"card_id" dynamodbav:"card_id"`
	Merchant        Merchant        `json:"merchant" dynamodbav:"merchant"`
	OriginalAmount  OriginalAmount  `json:"original_amount" dynamodbav:"original_amount"`
	POSEntryMode    POSEntryMode    `json:"pos_entry_mode" dynamodbav:"pos_entry_mode"`
	TraceID         string          `json:"trace_id" dynamodbav:"trace_id"`
	TransactionDate string          `json:"transaction_date" dynamodbav:"transaction_date"`
	TransactionTime time.Time       `json:"transaction_time" dynamodbav:"transaction_time"`
	TransactionType TransactionType `json:"transaction_type" dynamodbav:"transaction_type"`
}

// Merchant is the acceptor of a card transaction.
type Merchant struct {
	CountryCode  string `json:"country_code" dynamodbav:"country_code"`
	CategoryCode string `json:"category_code" dynamodbav:"category_code"`
	Name         string `json:"name" dynamodbav:"name"`
	Town         string `json:"town" dynamodbav:"town"`
}

// OriginalAmount is the amount in the currency the merchant charged.
type OriginalAmount struct {
	Currency string `json:"currency" dynamodbav:"currency"`
	Value    int64  `json:"value" dynamodbav:"value"`
	FXRate   string `json:"fx_rate" dynamodbav:"fx_rate"`
}

// Encode serializes the meta info into the string form used on the wire.
func (m MetaInfo) Encode() (string, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to encode meta info: %w", err)
	}
	return string(b), nil
}

// DecodeMetaInfo parses the wire string form of a meta info.
func DecodeMetaInfo(s string) (MetaInfo, error) {
	var m MetaInfo
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return MetaInfo{}, fmt.Errorf("failed to decode meta info: %w", err)
	}
	return m, nil
}

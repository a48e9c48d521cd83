package mapping

import (
	"time"

	"github.com/kontist/mock-solaris-sub001/pkg/models"
)

// ReservationPayload is the wire shape of a reservation. meta_info travels as a
// JSON string; this is the only place it is encoded.
type ReservationPayload struct {
	ID              string                   `json:"id"`
	Amount          models.Amount            `json:"amount"`
	ReservationType string                   `json:"reservation_type"`
	Reference       string                   `json:"reference"`
	Status          models.ReservationStatus `json:"status"`
	MetaInfo        string                   `json:"meta_info"`
	Description     string                   `json:"description"`
	ExpiresAt       time.Time                `json:"expires_at"`
	ExpiredAt       *time.Time               `json:"expired_at"`
	ResolvedAt      *time.Time               `json:"resolved_at"`
}

func (p ReservationPayload) EntityID() string { return p.ID }

// ToReservationPayload converts a domain reservation into its webhook payload.
func ToReservationPayload(r *models.Reservation) (ReservationPayload, error) {
	meta, err := r.MetaInfo.Encode()
	if err != nil {
		return ReservationPayload{}, err
	}
	return ReservationPayload{
		ID:              r.ID,
		Amount:          r.Amount,
		ReservationType: r.ReservationType,
		Reference:       r.Reference,
		Status:          r.Status,
		MetaInfo:        meta,
		Description:     r.Description,
		ExpiresAt:       r.ExpiresAt,
		ExpiredAt:       r.ExpiredAt,
		ResolvedAt:      r.ResolvedAt,
	}, nil
}

// CardTransaction is the card-side projection of an authorization attempt.
type CardTransaction struct {
	CardID          string                 `json:"card_id"`
	Type            models.TransactionType `json:"type"`
	Status          string                 `json:"status"`
	AttemptedAt     time.Time              `json:"attempted_at"`
	POSEntryMode    models.POSEntryMode    `json:"pos_entry_mode"`
	Merchant        models.Merchant        `json:"merchant"`
	Amount          models.Amount          `json:"amount"`
	OriginalAmount  models.OriginalAmount  `json:"original_amount"`
	TraceID         string                 `json:"trace_id"`
	TransactionDate string                 `json:"transaction_date"`
}

// ToCardTransaction projects a reservation onto the card transaction shape.
func ToCardTransaction(r *models.Reservation, status string) CardTransaction {
	ct := CardTransaction{
		Status:      status,
		AttemptedAt: r.CreatedAt,
		Amount:      r.Amount,
	}
	if c := r.MetaInfo.Cards; c != nil {
		ct.CardID = c.CardID
		ct.Type = c.TransactionType
		ct.AttemptedAt = c.TransactionTime
		ct.POSEntryMode = c.POSEntryMode
		ct.Merchant = c.Merchant
		ct.OriginalAmount = c.OriginalAmount
		ct.TraceID = c.TraceID
		ct.TransactionDate = c.TransactionDate
	}
	return ct
}

// DeclinePayload is sent with CARD_AUTHORIZATION_DECLINE.
type DeclinePayload struct {
	ID              string               `json:"id"`
	Reason          models.DeclineReason `json:"reason"`
	CardTransaction CardTransaction      `json:"card_transaction"`
}

func (p DeclinePayload) EntityID() string { return p.ID }

// ToDeclinePayload builds the declined projection of the candidate reservation.
func ToDeclinePayload(r *models.Reservation, reason models.DeclineReason) DeclinePayload {
	return DeclinePayload{
		ID:              r.ID,
		Reason:          reason,
		CardTransaction: ToCardTransaction(r, "DECLINED"),
	}
}

// Fraud case resolutions carried in fraud case payloads.
const (
	FraudResolutionPending = "PENDING"
	FraudResolutionTimeout = "TIMEOUT"
)

// FraudCasePayload is sent with CARD_FRAUD_CASE_PENDING and CARD_FRAUD_CASE_TIMEOUT.
type FraudCasePayload struct {
	ID               string          `json:"id"`
	Resolution       string          `json:"resolution"`
	RespondUntil     time.Time       `json:"respond_until"`
	WhitelistedUntil string          `json:"whitelisted_until"`
	CardTransaction  CardTransaction `json:"card_transaction"`
}

func (p FraudCasePayload) EntityID() string { return p.ID }

// ToFraudCasePayload builds the payload of a fraud case. r may be nil when the
// quarantined reservation is gone.
func ToFraudCasePayload(fc models.FraudCase, r *models.Reservation, resolution string) FraudCasePayload {
	p := FraudCasePayload{
		ID:           fc.ID,
		Resolution:   resolution,
		RespondUntil: fc.ReservationExpiresAt,
	}
	if r != nil {
		p.CardTransaction = ToCardTransaction(r, "FRAUD_SUSPECTED")
	} else {
		p.CardTransaction = CardTransaction{CardID: fc.CardID}
	}
	return p
}

// BookingPayload signals that the bookings of an account changed.
type BookingPayload struct {
	AccountID string `json:"account_id"`
}

func ToBookingPayload(accountID string) BookingPayload {
	return BookingPayload{AccountID: accountID}
}

// ToCardPayload returns the public card shape sent with CARD_LIFECYCLE_EVENT.
// CardDetails never leave the simulator.
func ToCardPayload(cd *models.CardData) models.Card {
	return cd.Card
}

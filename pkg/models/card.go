package models

import "time"

// CardStatus is the lifecycle state of a card.
type CardStatus string

const (
	CardStatusProcessing                 CardStatus = "PROCESSING"
	CardStatusInactive                   CardStatus = "INACTIVE"
	CardStatusActive                     CardStatus = "ACTIVE"
	CardStatusBlocked                    CardStatus = "BLOCKED"
	CardStatusBlockedBySolaris           CardStatus = "BLOCKED_BY_SOLARIS"
	CardStatusActivationBlockedBySolaris CardStatus = "ACTIVATION_BLOCKED_BY_SOLARIS"
	CardStatusClosed                     CardStatus = "CLOSED"
	CardStatusClosedBySolaris            CardStatus = "CLOSED_BY_SOLARIS"
)

// Valid reports whether s is a known card status.
func (s CardStatus) Valid() bool {
	switch s {
	case CardStatusProcessing, CardStatusInactive, CardStatusActive, CardStatusBlocked,
		CardStatusBlockedBySolaris, CardStatusActivationBlockedBySolaris, CardStatusClosed, CardStatusClosedBySolaris:
		return true
	}
	return false
}

// CardType is the product of a card.
type CardType string

const (
	CardTypePhysicalDebit CardType = "VISA_BUSINESS_DEBIT"
	CardTypeVirtualDebit  CardType = "VIRTUAL_VISA_BUSINESS_DEBIT"
)

// Card is the public shape of a card. Secrets and limits live in CardDetails.
type Card struct {
	ID             string             `json:"id" dynamodbav:"id"`
	PersonID       string             `json:"person_id" dynamodbav:"person_id"`
	AccountID      string             `json:"account_id" dynamodbav:"account_id"`
	Type           CardType           `json:"type" dynamodbav:"type"`
	Status         CardStatus         `json:"status" dynamodbav:"status"`
	ExpirationDate string             `json:"expiration_date" dynamodbav:"expiration_date"`
	Representation CardRepresentation `json:"representation" dynamodbav:"representation"`
}

// CardRepresentation is what is printed on the card.
type CardRepresentation struct {
	LineOne                 string `json:"line_1" dynamodbav:"line_1"`
	MaskedPAN               string `json:"masked_pan" dynamodbav:"masked_pan"`
	FormattedExpirationDate string `json:"formatted_expiration_date" dynamodbav:"formatted_expiration_date"`
}

// CardDetails is kept next to Card and never leaves the simulator.
type CardDetails struct {
	// PINHash is a bcrypt hash; the clear PIN is never stored.
	PINHash            string            `json:"pin_hash,omitempty" dynamodbav:"pin_hash,omitempty"`
	PINChangedAt       *time.Time        `json:"pin_changed_at,omitempty" dynamodbav:"pin_changed_at,omitempty"`
	Token              string            `json:"token" dynamodbav:"token"`
	ContactlessEnabled bool              `json:"contactless_enabled" dynamodbav:"contactless_enabled"`
	Limits             CardLimitSettings `json:"limits" dynamodbav:"limits"`
}

// CardData pairs a card with its private details.
type CardData struct {
	Card    Card        `json:"card" dynamodbav:"card"`
	Details CardDetails `json:"card_details" dynamodbav:"card_details"`
}

// LimitWindow caps the amount and the number of transactions in one window.
type LimitWindow struct {
	MaxAmountCents  int64 `json:"max_amount_cents" dynamodbav:"max_amount_cents"`
	MaxTransactions int64 `json:"max_transactions" dynamodbav:"max_transactions"`
}

// CardLimits are the daily and monthly windows of one POS entry mode class.
type CardLimits struct {
	Daily   LimitWindow `json:"daily" dynamodbav:"daily"`
	Monthly LimitWindow `json:"monthly" dynamodbav:"monthly"`
}

// CardLimitSettings holds the card-present and card-not-present limits.
type CardLimitSettings struct {
	CardPresent    CardLimits `json:"card_present" dynamodbav:"card_present"`
	CardNotPresent CardLimits `json:"card_not_present" dynamodbav:"card_not_present"`
}

// For returns the limits that apply to the given mode class.
func (s CardLimitSettings) For(cardPresent bool) CardLimits {
	if cardPresent {
		return s.CardPresent
	}
	return s.CardNotPresent
}

// POSEntryMode is how a card transaction was captured.
type POSEntryMode string

const (
	POSEntryModeChip           POSEntryMode = "CHIP"
	POSEntryModeContactless    POSEntryMode = "CONTACTLESS"
	POSEntryModeMagStripe      POSEntryMode = "MAG_STRIPE"
	POSEntryModePhone          POSEntryMode = "PHONE"
	POSEntryModeCardNotPresent POSEntryMode = "CARD_NOT_PRESENT"
	POSEntryModeUnknown        POSEntryMode = "UNKNOWN"
)

// CardPresent reports whether the mode falls into the card-present limit bucket.
func (m POSEntryMode) CardPresent() bool {
	return m != POSEntryModeCardNotPresent
}

// Contactless reports whether the mode requires contactless payments to be enabled.
func (m POSEntryMode) Contactless() bool {
	return m == POSEntryModeContactless || m == POSEntryModePhone
}

// TransactionType of a card authorization.
type TransactionType string

const (
	TransactionTypePurchase          TransactionType = "PURCHASE"
	TransactionTypeCashATM           TransactionType = "CASH_ATM"
	TransactionTypeCashManual        TransactionType = "CASH_MANUAL"
	TransactionTypeCreditPresentment TransactionType = "CREDIT_PRESENTMENT"
)

package models

import "time"

// AccountCurrency is the currency of every account in the simulator.
const AccountCurrency = "EUR"

// Amount is a monetary value in minor units.
type Amount struct {
	Value    int64  `json:"value" dynamodbav:"value"`
	Unit     string `json:"unit" dynamodbav:"unit"`
	Currency string `json:"currency" dynamodbav:"currency"`
}

// Cents builds an account-currency amount.
func Cents(value int64) Amount {
	return Amount{Value: value, Unit: "cents", Currency: AccountCurrency}
}

// LockingStatus of an account.
type LockingStatus string

const (
	LockingStatusNone        LockingStatus = "NO_BLOCK"
	LockingStatusDebitBlock  LockingStatus = "DEBIT_BLOCK"
	LockingStatusCreditBlock LockingStatus = "CREDIT_BLOCK"
	LockingStatusBlock       LockingStatus = "BLOCK"
)

// Account holds the balances, the cards and the open and quarantined reservations.
type Account struct {
	ID               string        `json:"id" dynamodbav:"id"`
	IBAN             string        `json:"iban" dynamodbav:"iban"`
	Balance          Amount        `json:"balance" dynamodbav:"balance"`
	AvailableBalance Amount        `json:"available_balance" dynamodbav:"available_balance"`
	AccountLimit     Amount        `json:"account_limit" dynamodbav:"account_limit"`
	LockingStatus    LockingStatus `json:"locking_status" dynamodbav:"locking_status"`
	Cards            []CardData    `json:"cards" dynamodbav:"cards"`
	Reservations     []Reservation `json:"reservations" dynamodbav:"reservations"`

	// FraudReservations are held out of Reservations until their fraud case resolves.
	FraudReservations []Reservation `json:"fraud_reservations" dynamodbav:"fraud_reservations"`
}

// FindCard returns the card with the given id, or nil.
func (a *Account) FindCard(cardID string) *CardData {
	for i := range a.Cards {
		if a.Cards[i].Card.ID == cardID {
			return &a.Cards[i]
		}
	}
	return nil
}

// FindReservation returns the index of the open reservation with the given id, or -1.
func (a *Account) FindReservation(id string) int {
	for i := range a.Reservations {
		if a.Reservations[i].ID == id {
			return i
		}
	}
	return -1
}

// RemoveReservation deletes the open reservation and returns it.
func (a *Account) RemoveReservation(id string) (Reservation, bool) {
	i := a.FindReservation(id)
	if i < 0 {
		return Reservation{}, false
	}
	r := a.Reservations[i]
	a.Reservations = append(a.Reservations[:i], a.Reservations[i+1:]...)
	return r, true
}

// RemoveFraudReservation deletes the quarantined reservation and returns it.
func (a *Account) RemoveFraudReservation(id string) (Reservation, bool) {
	for i := range a.FraudReservations {
		if a.FraudReservations[i].ID == id {
			r := a.FraudReservations[i]
			a.FraudReservations = append(a.FraudReservations[:i], a.FraudReservations[i+1:]...)
			return r, true
		}
	}
	return Reservation{}, false
}

// BookingType of a ledger entry.
type BookingType string

const (
	BookingTypeCardTransaction    BookingType = "CARD_TRANSACTION"
	BookingTypeSEPACreditTransfer BookingType = "SEPA_CREDIT_TRANSFER"
	BookingTypeInterestOverdraft  BookingType = "INTEREST_OVERDRAFT"
)

// BookingStatus of a queued booking.
type BookingStatus string

const (
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusEscalated BookingStatus = "escalated"
	BookingStatusDeclined  BookingStatus = "declined"
)

// Transaction is an immutable ledger entry. Debits carry a negative amount.
type Transaction struct {
	ID            string        `json:"id" dynamodbav:"id"`
	Amount        Amount        `json:"amount" dynamodbav:"amount"`
	BookingType   BookingType   `json:"booking_type" dynamodbav:"booking_type"`
	BookingDate   time.Time     `json:"booking_date" dynamodbav:"booking_date"`
	ValutaDate    time.Time     `json:"valuta_date" dynamodbav:"valuta_date"`
	Description   string        `json:"description" dynamodbav:"description"`
	RecipientName string        `json:"recipient_name,omitempty" dynamodbav:"recipient_name,omitempty"`
	Reference     string        `json:"reference,omitempty" dynamodbav:"reference,omitempty"`
	Status        BookingStatus `json:"status,omitempty" dynamodbav:"status,omitempty"`
	MetaInfo      *MetaInfo     `json:"meta_info,omitempty" dynamodbav:"meta_info,omitempty"`
}

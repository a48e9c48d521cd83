package models

import (
	"time"
)

// Person is the aggregate persisted as a single unit. Every mutation reads a full
// copy, changes it in memory and writes the whole aggregate back.
type Person struct {
	ID             string         `json:"id" dynamodbav:"id"`
	FirstName      string         `json:"first_name" dynamodbav:"first_name"`
	LastName       string         `json:"last_name" dynamodbav:"last_name"`
	Email          string         `json:"email,omitempty" dynamodbav:"email,omitempty"`
	MobileNumber   *MobileNumber  `json:"mobile_number,omitempty" dynamodbav:"mobile_number,omitempty"`
	Account        *Account       `json:"account,omitempty" dynamodbav:"account,omitempty"`
	Transactions   []Transaction  `json:"transactions" dynamodbav:"transactions"`
	QueuedBookings []Transaction  `json:"queued_bookings" dynamodbav:"queued_bookings"`
	FraudCases     []FraudCase    `json:"fraud_cases" dynamodbav:"fraud_cases"`
	ChangeRequest  *ChangeRequest `json:"change_request,omitempty" dynamodbav:"change_request,omitempty"`
	CreatedAt      time.Time      `json:"created_at" dynamodbav:"created_at"`

	// Version is the optimistic concurrency stamp. Stores reject a save whose
	// Version differs from the stored one and increment it on success.
	Version int64 `json:"version" dynamodbav:"version"`
}

// MobileNumber is the number TANs are delivered to.
type MobileNumber struct {
	Number   string `json:"number" dynamodbav:"number"`
	Verified bool   `json:"verified" dynamodbav:"verified"`
}

// HasVerifiedMobileNumber reports whether change requests may be authorized for the person.
func (p *Person) HasVerifiedMobileNumber() bool {
	return p.MobileNumber != nil && p.MobileNumber.Number != "" && p.MobileNumber.Verified
}

// FindFraudCase returns the index of the fraud case with the given id, or -1.
func (p *Person) FindFraudCase(id string) int {
	for i := range p.FraudCases {
		if p.FraudCases[i].ID == id {
			return i
		}
	}
	return -1
}

// RemoveFraudCase deletes the fraud case and reports whether it was present.
func (p *Person) RemoveFraudCase(id string) (FraudCase, bool) {
	i := p.FindFraudCase(id)
	if i < 0 {
		return FraudCase{}, false
	}
	fc := p.FraudCases[i]
	p.FraudCases = append(p.FraudCases[:i], p.FraudCases[i+1:]...)
	return fc, true
}

// FraudCase is a quarantined reservation awaiting confirmation, whitelisting or timeout.
type FraudCase struct {
	ID            string `json:"id" dynamodbav:"id"`
	ReservationID string `json:"reservation_id" dynamodbav:"reservation_id"`
	CardID        string `json:"card_id" dynamodbav:"card_id"`

	// ReservationExpiresAt is an absolute deadline so a restarted watchdog keeps
	// the original timeout window.
	ReservationExpiresAt time.Time `json:"reservation_expires_at" dynamodbav:"reservation_expires_at"`
}

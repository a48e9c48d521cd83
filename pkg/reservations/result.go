package reservations

import "github.com/kontist/mock-solaris-sub001/pkg/models"

// Result is the outcome of an authorization. Declines are results, not errors.
type Result struct {
	// Reservation is the open reservation when accepted, otherwise the declined candidate.
	Reservation models.Reservation

	// FraudCase is set when the authorization was quarantined as FRAUD_SUSPECTED.
	FraudCase *models.FraudCase

	DeclineReason models.DeclineReason
}

// Declined reports whether the authorization was refused.
func (r Result) Declined() bool {
	return r.DeclineReason != ""
}

// Action is applied to an open reservation by UpdateReservation.
type Action string

const (
	ActionResolve Action = "RESOLVE"
	ActionBook    Action = "BOOK"
	ActionExpire  Action = "EXPIRE"
)

func (a Action) Valid() bool {
	switch a {
	case ActionResolve, ActionBook, ActionExpire:
		return true
	}
	return false
}

// Authorization is an incoming card event.
type Authorization struct {
	PersonID     string
	CardID       string
	Amount       int64
	Currency     string
	Type         models.TransactionType
	Recipient    models.Merchant
	POSEntryMode models.POSEntryMode

	// DeclineReason simulates a decline by the issuer network. FRAUD_SUSPECTED
	// opens a fraud case.
	DeclineReason models.DeclineReason
}

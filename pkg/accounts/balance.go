package accounts

import (
	"context"
	"fmt"
	"time"

	"github.com/kontist/mock-solaris-sub001/pkg/models"
)

// Balances are the derived account figures, in cents.
type Balances struct {
	Balance   int64
	Available int64
}

// Compute derives the balances of the person's account at now:
//
//	balance   = Σ transactions with valuta_date <= now
//	available = account_limit + balance + Σ accepted queued bookings - Σ open reservations
//
// Quarantined fraud reservations are not holds and are not subtracted.
func Compute(person *models.Person, now time.Time) Balances {
	var b Balances
	if person.Account == nil {
		return b
	}

	for _, tx := range person.Transactions {
		if !tx.ValutaDate.After(now) {
			b.Balance += tx.Amount.Value
		}
	}

	b.Available = person.Account.AccountLimit.Value + b.Balance
	for _, q := range person.QueuedBookings {
		if q.Status == models.BookingStatusAccepted {
			b.Available += q.Amount.Value
		}
	}
	for _, r := range person.Account.Reservations {
		b.Available -= r.Amount.Value
	}

	return b
}

// OverdraftAccruer books overdraft interest on an account whose balance went negative.
// It may append transactions to the person.
type OverdraftAccruer interface {
	AccrueInterest(ctx context.Context, person *models.Person, balance int64) error
}

// NoopAccruer never books interest.
type NoopAccruer struct{}

func (NoopAccruer) AccrueInterest(context.Context, *models.Person, int64) error { return nil }

// Apply writes the derived balances onto the account, accruing overdraft
// interest first when the ledger balance is negative.
func Apply(ctx context.Context, person *models.Person, now time.Time, accruer OverdraftAccruer) error {
	if person.Account == nil {
		return nil
	}

	b := Compute(person, now)
	if b.Balance < 0 && accruer != nil {
		if err := accruer.AccrueInterest(ctx, person, b.Balance); err != nil {
			return fmt.Errorf("failed to accrue overdraft interest: %w", err)
		}
		b = Compute(person, now)
	}

	person.Account.Balance = models.Cents(b.Balance)
	person.Account.AvailableBalance = models.Cents(b.Available)
	return nil
}

package limits

import (
	"time"

	"github.com/kontist/mock-solaris-sub001/pkg/models"
)

// Counter is the spend inside one window.
type Counter struct {
	Amount       int64
	Transactions int64
}

// Usage is the spend of one card and POS entry mode class in the current UTC day and month.
type Usage struct {
	Daily   Counter
	Monthly Counter
}

// ComputeUsage scans the open reservations and the booked card transactions of the
// card. A booked reservation leaves the reservation list, so each authorization
// is counted once.
func ComputeUsage(account *models.Account, transactions []models.Transaction, cardID string, cardPresent bool, now time.Time) Usage {
	var u Usage
	now = now.UTC()

	for i := range account.Reservations {
		r := &account.Reservations[i]
		if !matches(r.MetaInfo.Cards, cardID, cardPresent) {
			continue
		}
		u.add(r.Amount.Value, r.CreatedAt, now)
	}

	for i := range transactions {
		tx := &transactions[i]
		if tx.BookingType != models.BookingTypeCardTransaction || tx.MetaInfo == nil {
			continue
		}
		if !matches(tx.MetaInfo.Cards, cardID, cardPresent) {
			continue
		}
		amount := tx.Amount.Value
		if amount < 0 {
			amount = -amount
		}
		u.add(amount, tx.BookingDate, now)
	}

	return u
}

func matches(c *models.CardContext, cardID string, cardPresent bool) bool {
	return c != nil && c.CardID == cardID && c.POSEntryMode.CardPresent() == cardPresent
}

func (u *Usage) add(amount int64, at time.Time, now time.Time) {
	at = at.UTC()
	if at.Year() != now.Year() || at.Month() != now.Month() {
		return
	}
	u.Monthly.Amount += amount
	u.Monthly.Transactions++

	if at.Day() == now.Day() {
		u.Daily.Amount += amount
		u.Daily.Transactions++
	}
}

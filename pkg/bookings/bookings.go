package bookings

import (
	"time"

	"github.com/google/uuid"
	"github.com/kontist/mock-solaris-sub001/pkg/models"
)

// Incoming overrides the settled figures of a reservation, e.g. when the merchant's
// final amount differs from the authorized one.
type Incoming struct {
	AmountCents int64
}

// FromReservation builds the card transaction that settles r. The booking is a
// debit, so its amount is negative.
func FromReservation(r *models.Reservation, now time.Time, incoming *Incoming) models.Transaction {
	amount := r.Amount.Value
	if incoming != nil {
		amount = incoming.AmountCents
	}

	tx := models.Transaction{
		ID:          uuid.New().String(),
		Amount:      models.Cents(-amount),
		BookingType: models.BookingTypeCardTransaction,
		BookingDate: now,
		ValutaDate:  now,
		Description: r.Description,
		Reference:   r.Reference,
	}

	if r.MetaInfo.Cards != nil {
		meta := r.MetaInfo
		cards := *r.MetaInfo.Cards
		meta.Cards = &cards
		tx.MetaInfo = &meta
		tx.RecipientName = cards.Merchant.Name
	}

	return tx
}

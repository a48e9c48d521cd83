package bookings

import (
	"testing"
	"time"

	"github.com/kontist/mock-solaris-sub001/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromReservation(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	r := &models.Reservation{
		ID:          "r-1",
		Amount:      models.Cents(500),
		Reference:   "ref-1",
		Description: "Coffee",
		MetaInfo: models.MetaInfo{Cards: &models.CardContext{
			CardID:   "c-1",
			Merchant: models.Merchant{Name: "Cafe"},
		}},
	}

	t.Run("Reservation Amount", func(t *testing.T) {
		tx := FromReservation(r, now, nil)

		assert.NotEmpty(t, tx.ID)
		assert.Equal(t, models.Cents(-500), tx.Amount)
		assert.Equal(t, models.BookingTypeCardTransaction, tx.BookingType)
		assert.Equal(t, now, tx.BookingDate)
		assert.Equal(t, now, tx.ValutaDate)
		assert.Equal(t, "Cafe", tx.RecipientName)
		assert.Equal(t, "ref-1", tx.Reference)
		require.NotNil(t, tx.MetaInfo)
		assert.Equal(t, "c-1", tx.MetaInfo.Cards.CardID)
	})

	t.Run("Incoming Amount", func(t *testing.T) {
		tx := FromReservation(r, now, &Incoming{AmountCents: 530})

		assert.Equal(t, models.Cents(-530), tx.Amount)
	})

	t.Run("Meta Info Is Copied", func(t *testing.T) {
		tx := FromReservation(r, now, nil)
		tx.MetaInfo.Cards.CardID = "changed"

		assert.Equal(t, "c-1", r.MetaInfo.Cards.CardID)
	})
}

package mapping

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/kontist/mock-solaris-sub001/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReservation() *models.Reservation {
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return &models.Reservation{
		ID:              "r-1",
		Amount:          models.Cents(500),
		ReservationType: models.ReservationTypeCardAuthorization,
		Status:          models.ReservationStatusOpen,
		CreatedAt:       at,
		MetaInfo: models.MetaInfo{Cards: &models.CardContext{
			CardID:          "c-1",
			POSEntryMode:    models.POSEntryModeChip,
			TransactionType: models.TransactionTypePurchase,
			TransactionTime: at,
			Merchant:        models.Merchant{Name: "Cafe", CountryCode: "DE"},
			OriginalAmount:  models.OriginalAmount{Currency: "EUR", Value: 500, FXRate: "1"},
		}},
	}
}

func TestToReservationPayload(t *testing.T) {
	p, err := ToReservationPayload(testReservation())
	require.NoError(t, err)

	assert.Equal(t, "r-1", p.EntityID())

	decoded, err := models.DecodeMetaInfo(p.MetaInfo)
	require.NoError(t, err)
	assert.Equal(t, "c-1", decoded.Cards.CardID)

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(raw, &wire))
	_, isString := wire["meta_info"].(string)
	assert.True(t, isString, "meta_info is serialized as a string")
}

func TestToDeclinePayload(t *testing.T) {
	p := ToDeclinePayload(testReservation(), models.DeclineReasonInsufficientFunds)

	assert.Equal(t, models.DeclineReasonInsufficientFunds, p.Reason)
	assert.Equal(t, "DECLINED", p.CardTransaction.Status)
	assert.Equal(t, "c-1", p.CardTransaction.CardID)
	assert.Equal(t, "Cafe", p.CardTransaction.Merchant.Name)
}

func TestToFraudCasePayload(t *testing.T) {
	fc := models.FraudCase{ID: "fc-1", ReservationID: "r-1", CardID: "c-1", ReservationExpiresAt: time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC)}

	t.Run("With Reservation", func(t *testing.T) {
		p := ToFraudCasePayload(fc, testReservation(), FraudResolutionPending)

		assert.Equal(t, "fc-1", p.EntityID())
		assert.Equal(t, FraudResolutionPending, p.Resolution)
		assert.Equal(t, fc.ReservationExpiresAt, p.RespondUntil)
		assert.Equal(t, "c-1", p.CardTransaction.CardID)
	})

	t.Run("Without Reservation", func(t *testing.T) {
		p := ToFraudCasePayload(fc, nil, FraudResolutionTimeout)

		assert.Equal(t, "c-1", p.CardTransaction.CardID)
		assert.Equal(t, FraudResolutionTimeout, p.Resolution)
	})
}

func TestToCardPayload(t *testing.T) {
	cd := &models.CardData{
		Card:    models.Card{ID: "c-1", Status: models.CardStatusActive},
		Details: models.CardDetails{PINHash: "secret", Token: "tok"},
	}

	raw, err := json.Marshal(ToCardPayload(cd))
	require.NoError(t, err)

	assert.Contains(t, string(raw), `"id":"c-1"`)
	assert.NotContains(t, string(raw), "secret")
	assert.NotContains(t, string(raw), "tok")
}

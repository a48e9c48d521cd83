package cards

import (
	"context"
	"testing"
	"time"

	"github.com/kontist/mock-solaris-sub001/pkg/changerequest"
	"github.com/kontist/mock-solaris-sub001/pkg/clock"
	"github.com/kontist/mock-solaris-sub001/pkg/limits"
	"github.com/kontist/mock-solaris-sub001/pkg/models"
	"github.com/kontist/mock-solaris-sub001/pkg/storage"
	"github.com/kontist/mock-solaris-sub001/pkg/storage/memory"
	"github.com/kontist/mock-solaris-sub001/pkg/webhooks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	service    *Service
	authorizer *changerequest.Authorizer
	store      storage.PersonStore
	recorder   *webhooks.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{store: memory.New(), recorder: &webhooks.Recorder{}}
	clk := clock.NewFake(start)
	registry := changerequest.NewRegistry()
	f.authorizer = changerequest.NewAuthorizer(f.store, registry, clk, changerequest.Options{
		TAN: func() (string, error) { return "424242", nil },
	})
	f.service = NewService(f.store, f.recorder, f.authorizer, clk, nil)
	f.service.RegisterHandlers(registry)

	_, err := f.store.SavePerson(context.Background(), &models.Person{
		ID:           "p-1",
		MobileNumber: &models.MobileNumber{Number: "+4917000000", Verified: true},
		Account: &models.Account{
			ID: "acc-1",
			Cards: []models.CardData{{
				Card:    models.Card{ID: "c-1", PersonID: "p-1", AccountID: "acc-1", Status: models.CardStatusActive},
				Details: models.CardDetails{Limits: limits.DefaultLimits},
			}},
		},
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) card(t *testing.T) *models.CardData {
	t.Helper()
	p, err := f.store.GetPerson(context.Background(), "p-1")
	require.NoError(t, err)
	return p.Account.FindCard("c-1")
}

func (f *fixture) confirm(t *testing.T, resp *changerequest.Response) *changerequest.Response {
	t.Helper()
	ctx := context.Background()

	_, err := f.authorizer.Authorize(ctx, "p-1", resp.ID, models.DeliveryMethodMobileNumber)
	require.NoError(t, err)
	confirmed, err := f.authorizer.Confirm(ctx, "p-1", resp.ID, "424242")
	require.NoError(t, err)
	return confirmed
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)

		card, err := f.service.SetStatus(ctx, "p-1", "c-1", models.CardStatusBlocked)

		require.NoError(t, err)
		assert.Equal(t, models.CardStatusBlocked, card.Card.Status)
		assert.Equal(t, models.CardStatusBlocked, f.card(t).Card.Status)
		assert.Equal(t, []webhooks.EventType{webhooks.EventCardLifecycleEvent}, f.recorder.Types())
		payload := f.recorder.OfType(webhooks.EventCardLifecycleEvent)[0].(models.Card)
		assert.Equal(t, "c-1", payload.ID)
	})

	t.Run("Card Not Found", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.SetStatus(ctx, "p-1", "missing", models.CardStatusBlocked)

		assert.ErrorIs(t, err, ErrCardNotFound)
		assert.Empty(t, f.recorder.Events())
	})

	t.Run("Person Not Found", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.SetStatus(ctx, "missing", "c-1", models.CardStatusBlocked)

		assert.ErrorIs(t, err, storage.ErrPersonNotFound)
	})
}

func TestUpdateLimits(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		settings := limits.DefaultLimits
		settings.CardNotPresent.Daily.MaxAmountCents = 50_000

		updated, err := f.service.UpdateLimits(ctx, "p-1", "c-1", settings)

		require.NoError(t, err)
		assert.Equal(t, settings, *updated)
		assert.Equal(t, settings, f.card(t).Details.Limits)
	})

	t.Run("Above Ceiling", func(t *testing.T) {
		f := newFixture(t)
		settings := limits.DefaultLimits
		settings.CardPresent.Daily.MaxAmountCents = limits.MaxDailyAmountCents + 1

		_, err := f.service.UpdateLimits(ctx, "p-1", "c-1", settings)

		var verr *limits.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Problems, 1)
		assert.Equal(t, limits.DefaultLimits, f.card(t).Details.Limits)
	})
}

func TestRequestPINChange(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)

		resp, err := f.service.RequestPINChange(ctx, "p-1", "c-1", "1234")
		require.NoError(t, err)
		assert.Equal(t, models.ChangeRequestStatusAuthorizationRequired, resp.Status)
		assert.Empty(t, f.card(t).Details.PINHash)

		confirmed := f.confirm(t, resp)

		assert.Equal(t, models.ChangeRequestStatusCompleted, confirmed.Status)
		assert.Equal(t, CardResponse{ID: "c-1", Status: models.CardStatusActive}, confirmed.ResponseBody)

		card := f.card(t)
		assert.NotEqual(t, "1234", card.Details.PINHash)
		assert.True(t, VerifyPIN(card, "1234"))
		assert.False(t, VerifyPIN(card, "4321"))
		require.NotNil(t, card.Details.PINChangedAt)
		assert.Equal(t, start, *card.Details.PINChangedAt)
	})

	t.Run("Invalid PIN", func(t *testing.T) {
		f := newFixture(t)

		for _, pin := range []string{"", "123", "12345", "12a4"} {
			_, err := f.service.RequestPINChange(ctx, "p-1", "c-1", pin)
			assert.ErrorIs(t, err, ErrInvalidPIN, pin)
		}
	})

	t.Run("Card Not Found", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.RequestPINChange(ctx, "p-1", "missing", "1234")

		assert.ErrorIs(t, err, ErrCardNotFound)
	})
}

func TestRequestLimitsChange(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		settings := limits.DefaultLimits
		settings.CardPresent.Monthly.MaxTransactions = 10

		resp, err := f.service.RequestLimitsChange(ctx, "p-1", "c-1", settings)
		require.NoError(t, err)
		assert.Equal(t, limits.DefaultLimits, f.card(t).Details.Limits)

		confirmed := f.confirm(t, resp)

		assert.Equal(t, models.ChangeRequestStatusCompleted, confirmed.Status)
		assert.Equal(t, settings, f.card(t).Details.Limits)
	})

	t.Run("Invalid Limits", func(t *testing.T) {
		f := newFixture(t)
		settings := limits.DefaultLimits
		settings.CardNotPresent.Monthly.MaxAmountCents = -1

		_, err := f.service.RequestLimitsChange(ctx, "p-1", "c-1", settings)

		var verr *limits.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestVerifyPIN(t *testing.T) {
	assert.False(t, VerifyPIN(&models.CardData{}, "1234"))
}

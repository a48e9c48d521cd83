package reservations

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/kontist/mock-solaris-sub001/pkg/accounts"
	"github.com/kontist/mock-solaris-sub001/pkg/clock"
	"github.com/kontist/mock-solaris-sub001/pkg/limits"
	"github.com/kontist/mock-solaris-sub001/pkg/mapping"
	"github.com/kontist/mock-solaris-sub001/pkg/models"
	"github.com/kontist/mock-solaris-sub001/pkg/money"
	"github.com/kontist/mock-solaris-sub001/pkg/storage"
	"github.com/kontist/mock-solaris-sub001/pkg/storage/memory"
	"github.com/kontist/mock-solaris-sub001/pkg/webhooks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type watcherStub struct {
	mu    sync.Mutex
	cases []models.FraudCase
}

func (w *watcherStub) Watch(fc models.FraudCase) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cases = append(w.cases, fc)
}

type fixture struct {
	engine   *Engine
	store    storage.PersonStore
	recorder *webhooks.Recorder
	clock    *clock.Fake
	watcher  *watcherStub
	limits   []int64
}

func newFixture(t *testing.T, funds int64) *fixture {
	t.Helper()

	f := &fixture{
		recorder: &webhooks.Recorder{},
		clock:    clock.NewFake(start),
		watcher:  &watcherStub{},
	}
	f.store = accounts.NewStore(memory.New(), f.clock, nil)
	f.engine = NewEngine(f.store, f.recorder, f.watcher, f.clock, Options{
		Surcharger: func(limit int64) int64 {
			f.limits = append(f.limits, limit)
			if limit == 0 {
				return 0
			}
			return limit - 1
		},
	})

	_, err := f.store.SavePerson(context.Background(), &models.Person{
		ID: "p-1",
		Account: &models.Account{
			ID: "acc-1",
			Cards: []models.CardData{{
				Card:    models.Card{ID: "c-1", PersonID: "p-1", AccountID: "acc-1", Status: models.CardStatusActive},
				Details: models.CardDetails{ContactlessEnabled: true, Limits: limits.DefaultLimits},
			}},
		},
		Transactions: []models.Transaction{{
			ID:          "seed",
			Amount:      models.Cents(funds),
			BookingType: models.BookingTypeSEPACreditTransfer,
			BookingDate: start.Add(-24 * time.Hour),
			ValutaDate:  start.Add(-24 * time.Hour),
		}},
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) person(t *testing.T) *models.Person {
	t.Helper()
	p, err := f.store.GetPerson(context.Background(), "p-1")
	require.NoError(t, err)
	return p
}

func (f *fixture) updateCard(t *testing.T, fn func(cd *models.CardData)) {
	t.Helper()
	p := f.person(t)
	fn(p.Account.FindCard("c-1"))
	_, err := f.store.SavePerson(context.Background(), p)
	require.NoError(t, err)
}

func purchase(cents int64) Authorization {
	return Authorization{
		PersonID:     "p-1",
		CardID:       "c-1",
		Amount:       cents,
		Currency:     "EUR",
		Type:         models.TransactionTypePurchase,
		Recipient:    models.Merchant{Name: "Cafe", Town: "Berlin", CountryCode: "DE", CategoryCode: "5814"},
		POSEntryMode: models.POSEntryModeChip,
	}
}

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t, 1000)

		res, err := f.engine.CreateReservation(ctx, purchase(500))

		require.NoError(t, err)
		assert.False(t, res.Declined())
		assert.Equal(t, models.ReservationStatusOpen, res.Reservation.Status)
		assert.Equal(t, models.Cents(500), res.Reservation.Amount)
		assert.Equal(t, start.Add(DefaultReservationTTL), res.Reservation.ExpiresAt)

		p := f.person(t)
		require.Len(t, p.Account.Reservations, 1)
		assert.Equal(t, res.Reservation.ID, p.Account.Reservations[0].ID)
		assert.Equal(t, models.Cents(1000), p.Account.Balance)
		assert.Equal(t, models.Cents(500), p.Account.AvailableBalance)

		assert.Equal(t, []webhooks.EventType{webhooks.EventCardAuthorization}, f.recorder.Types())
		payload := f.recorder.OfType(webhooks.EventCardAuthorization)[0].(mapping.ReservationPayload)
		assert.Equal(t, res.Reservation.ID, payload.ID)
	})

	t.Run("Blocked And Inactive Cards", func(t *testing.T) {
		tests := []struct {
			status models.CardStatus
			reason models.DeclineReason
		}{
			{models.CardStatusBlocked, models.DeclineReasonCardBlocked},
			{models.CardStatusBlockedBySolaris, models.DeclineReasonCardBlocked},
			{models.CardStatusInactive, models.DeclineReasonCardInactive},
		}

		for _, tt := range tests {
			t.Run(string(tt.status), func(t *testing.T) {
				f := newFixture(t, 1000)
				f.updateCard(t, func(cd *models.CardData) { cd.Card.Status = tt.status })

				res, err := f.engine.CreateReservation(ctx, purchase(100))

				require.NoError(t, err)
				assert.Equal(t, tt.reason, res.DeclineReason)
				assert.Empty(t, f.person(t).Account.Reservations)
				assert.Equal(t, []webhooks.EventType{webhooks.EventCardAuthorizationDecline}, f.recorder.Types())
				payload := f.recorder.OfType(webhooks.EventCardAuthorizationDecline)[0].(mapping.DeclinePayload)
				assert.Equal(t, tt.reason, payload.Reason)
			})
		}
	})

	t.Run("Other Status Fails Without Webhook", func(t *testing.T) {
		f := newFixture(t, 1000)
		f.updateCard(t, func(cd *models.CardData) { cd.Card.Status = models.CardStatusProcessing })

		_, err := f.engine.CreateReservation(ctx, purchase(100))

		assert.ErrorIs(t, err, ErrCardNotActive)
		assert.Empty(t, f.recorder.Events())
		assert.Empty(t, f.person(t).Account.Reservations)
	})

	t.Run("Contactless Disabled", func(t *testing.T) {
		f := newFixture(t, 1000)
		f.updateCard(t, func(cd *models.CardData) { cd.Details.ContactlessEnabled = false })

		auth := purchase(100)
		auth.POSEntryMode = models.POSEntryModePhone
		_, err := f.engine.CreateReservation(ctx, auth)

		assert.ErrorIs(t, err, ErrContactlessDisabled)
		assert.Empty(t, f.person(t).Account.Reservations)
	})

	t.Run("Insufficient Funds", func(t *testing.T) {
		f := newFixture(t, 1000)

		res, err := f.engine.CreateReservation(ctx, purchase(1001))

		require.NoError(t, err)
		assert.Equal(t, models.DeclineReasonInsufficientFunds, res.DeclineReason)
		assert.Empty(t, f.person(t).Account.Reservations)
		assert.Equal(t, []webhooks.EventType{webhooks.EventCardAuthorizationDecline}, f.recorder.Types())
	})

	t.Run("Card Not Found", func(t *testing.T) {
		f := newFixture(t, 1000)

		auth := purchase(100)
		auth.CardID = "missing"
		_, err := f.engine.CreateReservation(ctx, auth)

		assert.ErrorIs(t, err, ErrCardNotFound)
		assert.Empty(t, f.recorder.Events())
	})

	t.Run("Person Not Found", func(t *testing.T) {
		f := newFixture(t, 1000)

		auth := purchase(100)
		auth.PersonID = "missing"
		_, err := f.engine.CreateReservation(ctx, auth)

		assert.ErrorIs(t, err, storage.ErrPersonNotFound)
	})

	t.Run("Foreign Currency", func(t *testing.T) {
		f := newFixture(t, 5000)

		auth := purchase(1000)
		auth.Currency = "usd"
		res, err := f.engine.CreateReservation(ctx, auth)

		require.NoError(t, err)
		assert.Equal(t, models.Cents(926), res.Reservation.Amount)
		card := res.Reservation.MetaInfo.Cards
		require.NotNil(t, card)
		assert.Equal(t, models.OriginalAmount{Currency: "USD", Value: 1000, FXRate: "1.08"}, card.OriginalAmount)
	})

	t.Run("Unsupported Currency", func(t *testing.T) {
		f := newFixture(t, 5000)

		auth := purchase(1000)
		auth.Currency = "XYZ"
		_, err := f.engine.CreateReservation(ctx, auth)

		assert.ErrorIs(t, err, money.ErrUnsupportedCurrency)
	})

	t.Run("Injected Decline", func(t *testing.T) {
		f := newFixture(t, 1000)

		auth := purchase(100)
		auth.DeclineReason = models.DeclineReasonExpiredCard
		res, err := f.engine.CreateReservation(ctx, auth)

		require.NoError(t, err)
		assert.Equal(t, models.DeclineReasonExpiredCard, res.DeclineReason)
		assert.Empty(t, f.person(t).Account.Reservations)
		assert.Equal(t, []webhooks.EventType{webhooks.EventCardAuthorizationDecline}, f.recorder.Types())
	})

	t.Run("Invalid Injected Decline", func(t *testing.T) {
		f := newFixture(t, 1000)

		auth := purchase(100)
		auth.DeclineReason = "NOPE"
		_, err := f.engine.CreateReservation(ctx, auth)

		assert.ErrorIs(t, err, ErrInvalidDeclineReason)
	})

	t.Run("Webhook Failure Does Not Roll Back", func(t *testing.T) {
		f := newFixture(t, 1000)
		f.recorder.Err = assert.AnError

		res, err := f.engine.CreateReservation(ctx, purchase(100))

		require.NoError(t, err)
		assert.False(t, res.Declined())
		assert.Len(t, f.person(t).Account.Reservations, 1)
	})
}

func TestCreateReservationLimits(t *testing.T) {
	ctx := context.Background()

	t.Run("Usage Equal To Limit Is Accepted", func(t *testing.T) {
		f := newFixture(t, 10_000)
		f.updateCard(t, func(cd *models.CardData) { cd.Details.Limits.CardPresent.Daily.MaxAmountCents = 600 })

		first, err := f.engine.CreateReservation(ctx, purchase(100))
		require.NoError(t, err)
		require.False(t, first.Declined())

		second, err := f.engine.CreateReservation(ctx, purchase(500))
		require.NoError(t, err)
		assert.False(t, second.Declined())
		assert.Len(t, f.person(t).Account.Reservations, 2)
	})

	t.Run("One Cent Over Is Declined", func(t *testing.T) {
		f := newFixture(t, 10_000)
		f.updateCard(t, func(cd *models.CardData) { cd.Details.Limits.CardPresent.Daily.MaxAmountCents = 600 })

		_, err := f.engine.CreateReservation(ctx, purchase(100))
		require.NoError(t, err)
		f.recorder.Reset()

		res, err := f.engine.CreateReservation(ctx, purchase(501))

		require.NoError(t, err)
		assert.Equal(t, models.DeclineReasonCardPresentAmountLimitReachedDaily, res.DeclineReason)
		assert.Len(t, f.person(t).Account.Reservations, 1)
		assert.Equal(t, []webhooks.EventType{webhooks.EventCardAuthorizationDecline}, f.recorder.Types())
		payload := f.recorder.OfType(webhooks.EventCardAuthorizationDecline)[0].(mapping.DeclinePayload)
		assert.Equal(t, models.DeclineReasonCardPresentAmountLimitReachedDaily, payload.Reason)
	})

	t.Run("Card Not Present Bucket", func(t *testing.T) {
		f := newFixture(t, 10_000)
		f.updateCard(t, func(cd *models.CardData) { cd.Details.Limits.CardNotPresent.Daily.MaxTransactions = 1 })

		auth := purchase(100)
		auth.POSEntryMode = models.POSEntryModeCardNotPresent

		// A card-present purchase does not count against the card-not-present bucket.
		_, err := f.engine.CreateReservation(ctx, purchase(100))
		require.NoError(t, err)

		first, err := f.engine.CreateReservation(ctx, auth)
		require.NoError(t, err)
		assert.False(t, first.Declined())

		second, err := f.engine.CreateReservation(ctx, auth)
		require.NoError(t, err)
		assert.Equal(t, models.DeclineReasonCardNotPresentUseLimitReachedDaily, second.DeclineReason)
	})

	t.Run("Previous Days Do Not Count Daily", func(t *testing.T) {
		f := newFixture(t, 10_000)
		f.updateCard(t, func(cd *models.CardData) { cd.Details.Limits.CardPresent.Daily.MaxAmountCents = 600 })

		_, err := f.engine.CreateReservation(ctx, purchase(600))
		require.NoError(t, err)

		f.clock.Advance(24 * time.Hour)

		res, err := f.engine.CreateReservation(ctx, purchase(600))
		require.NoError(t, err)
		assert.False(t, res.Declined())
	})
}

func TestCreateReservationFraudSuspected(t *testing.T) {
	f := newFixture(t, 1000)

	auth := purchase(300)
	auth.DeclineReason = models.DeclineReasonFraudSuspected
	res, err := f.engine.CreateReservation(context.Background(), auth)

	require.NoError(t, err)
	assert.Equal(t, models.DeclineReasonFraudSuspected, res.DeclineReason)
	require.NotNil(t, res.FraudCase)
	assert.Equal(t, res.Reservation.ID, res.FraudCase.ReservationID)
	assert.Equal(t, "c-1", res.FraudCase.CardID)
	assert.Equal(t, start.Add(DefaultFraudCaseTTL), res.FraudCase.ReservationExpiresAt)

	p := f.person(t)
	assert.Empty(t, p.Account.Reservations)
	require.Len(t, p.Account.FraudReservations, 1)
	assert.Equal(t, res.Reservation.ID, p.Account.FraudReservations[0].ID)
	require.Len(t, p.FraudCases, 1)
	assert.Equal(t, res.FraudCase.ID, p.FraudCases[0].ID)

	require.Len(t, f.watcher.cases, 1)
	assert.Equal(t, res.FraudCase.ID, f.watcher.cases[0].ID)

	assert.Equal(t, []webhooks.EventType{webhooks.EventCardFraudCasePending}, f.recorder.Types())
	payload := f.recorder.OfType(webhooks.EventCardFraudCasePending)[0].(mapping.FraudCasePayload)
	assert.Equal(t, mapping.FraudResolutionPending, payload.Resolution)
}

// racingStore lets another writer update the person between our read and our write.
type racingStore struct {
	storage.PersonStore
	raced bool
}

func (s *racingStore) SavePerson(ctx context.Context, p *models.Person) (*models.Person, error) {
	if !s.raced {
		s.raced = true
		other, err := s.PersonStore.GetPerson(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		other.FirstName = "concurrent"
		if _, err := s.PersonStore.SavePerson(ctx, other); err != nil {
			return nil, err
		}
	}
	return s.PersonStore.SavePerson(ctx, p)
}

func TestCreateReservationStaleWrite(t *testing.T) {
	f := newFixture(t, 1000)
	racing := &racingStore{PersonStore: f.store}
	engine := NewEngine(racing, f.recorder, f.watcher, f.clock, Options{})

	_, err := engine.CreateReservation(context.Background(), purchase(100))

	assert.ErrorIs(t, err, storage.ErrVersionConflict)
	p := f.person(t)
	assert.Equal(t, "concurrent", p.FirstName)
	assert.Empty(t, p.Account.Reservations)
	assert.Empty(t, f.recorder.Events())
}

package reservations

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kontist/mock-solaris-sub001/pkg/accounts"
	"github.com/kontist/mock-solaris-sub001/pkg/clock"
	"github.com/kontist/mock-solaris-sub001/pkg/limits"
	"github.com/kontist/mock-solaris-sub001/pkg/mapping"
	"github.com/kontist/mock-solaris-sub001/pkg/metrics"
	"github.com/kontist/mock-solaris-sub001/pkg/models"
	"github.com/kontist/mock-solaris-sub001/pkg/money"
	"github.com/kontist/mock-solaris-sub001/pkg/storage"
	"github.com/kontist/mock-solaris-sub001/pkg/webhooks"
)

const (
	DefaultReservationTTL = 7 * 24 * time.Hour
	DefaultFraudCaseTTL   = 30 * time.Minute
)

// FraudWatcher tracks newly opened fraud cases until they are resolved.
type FraudWatcher interface {
	Watch(fc models.FraudCase)
}

// Surcharger returns the extra amount added to a booking, in [0, limit).
type Surcharger func(limit int64) int64

// RandomSurcharge draws the surcharge uniformly.
func RandomSurcharge(limit int64) int64 {
	if limit <= 0 {
		return 0
	}
	return rand.Int64N(limit)
}

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	ReservationTTL time.Duration
	FraudCaseTTL   time.Duration
	Surcharger     Surcharger
	Metrics        *metrics.Collector
	Logger         *slog.Logger
}

// Engine owns the reservation state machine.
type Engine struct {
	store      storage.PersonStore
	sender     webhooks.Sender
	watcher    FraudWatcher
	clock      clock.Clock
	resTTL     time.Duration
	fraudTTL   time.Duration
	surcharger Surcharger
	metrics    *metrics.Collector
	logger     *slog.Logger
}

func NewEngine(store storage.PersonStore, sender webhooks.Sender, watcher FraudWatcher, clk clock.Clock, opts Options) *Engine {
	e := &Engine{
		store:      store,
		sender:     sender,
		watcher:    watcher,
		clock:      clk,
		resTTL:     opts.ReservationTTL,
		fraudTTL:   opts.FraudCaseTTL,
		surcharger: opts.Surcharger,
		metrics:    opts.Metrics,
		logger:     opts.Logger,
	}
	if e.resTTL <= 0 {
		e.resTTL = DefaultReservationTTL
	}
	if e.fraudTTL <= 0 {
		e.fraudTTL = DefaultFraudCaseTTL
	}
	if e.surcharger == nil {
		e.surcharger = RandomSurcharge
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// CreateReservation authorizes a card event against the person's account.
func (e *Engine) CreateReservation(ctx context.Context, auth Authorization) (Result, error) {
	// 1. Load the person and locate the card.
	person, err := e.store.GetPerson(ctx, auth.PersonID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to get person for authorization: %w", err)
	}
	if person.Account == nil {
		return Result{}, fmt.Errorf("%w: %s", ErrCardNotFound, auth.CardID)
	}
	card := person.Account.FindCard(auth.CardID)
	if card == nil {
		return Result{}, fmt.Errorf("%w: %s", ErrCardNotFound, auth.CardID)
	}

	// 2. Convert into the account currency and build the candidate reservation.
	conv, err := money.ToEUR(auth.Amount, auth.Currency)
	if err != nil {
		return Result{}, err
	}
	now := e.clock.Now()
	reservation := e.newReservation(auth, conv, now)

	log := e.logger.With("person_id", person.ID, "card_id", auth.CardID, "reservation_id", reservation.ID)

	// 3. Preconditions, in this order.
	switch card.Card.Status {
	case models.CardStatusActive:
	case models.CardStatusBlocked, models.CardStatusBlockedBySolaris:
		return e.decline(ctx, &reservation, models.DeclineReasonCardBlocked), nil
	case models.CardStatusInactive:
		return e.decline(ctx, &reservation, models.DeclineReasonCardInactive), nil
	default:
		return Result{}, fmt.Errorf("%w: status %s", ErrCardNotActive, card.Card.Status)
	}

	if auth.POSEntryMode.Contactless() && !card.Details.ContactlessEnabled {
		return Result{}, ErrContactlessDisabled
	}

	if accounts.Compute(person, now).Available < reservation.Amount.Value {
		return e.decline(ctx, &reservation, models.DeclineReasonInsufficientFunds), nil
	}

	// 4. Declines injected by the caller.
	switch {
	case auth.DeclineReason == models.DeclineReasonFraudSuspected:
		return e.quarantine(ctx, person, reservation, now)
	case auth.DeclineReason != "":
		if !auth.DeclineReason.Valid() {
			return Result{}, fmt.Errorf("%w: %s", ErrInvalidDeclineReason, auth.DeclineReason)
		}
		return e.decline(ctx, &reservation, auth.DeclineReason), nil
	}

	// 5. Check the limits with the candidate counted.
	person.Account.Reservations = append(person.Account.Reservations, reservation)
	cardPresent := auth.POSEntryMode.CardPresent()
	usage := limits.ComputeUsage(person.Account, person.Transactions, auth.CardID, cardPresent, now)
	if reason := limits.Validate(usage, card.Details.Limits.For(cardPresent), cardPresent); reason != "" {
		return e.decline(ctx, &reservation, reason), nil
	}

	// 6. Persist and notify.
	if _, err := e.store.SavePerson(ctx, person); err != nil {
		return Result{}, fmt.Errorf("failed to save reservation: %w", err)
	}

	log.InfoContext(ctx, "card authorization accepted", "amount", reservation.Amount.Value)
	e.metrics.RecordAuthorization("")
	e.emitReservation(ctx, webhooks.EventCardAuthorization, &reservation)

	return Result{Reservation: reservation}, nil
}

func (e *Engine) newReservation(auth Authorization, conv money.Conversion, now time.Time) models.Reservation {
	return models.Reservation{
		ID:              uuid.New().String(),
		Amount:          models.Cents(conv.Cents),
		ReservationType: models.ReservationTypeCardAuthorization,
		Reference:       uuid.New().String(),
		Status:          models.ReservationStatusOpen,
		Description:     auth.Recipient.Name,
		CreatedAt:       now,
		ExpiresAt:       now.Add(e.resTTL),
		MetaInfo: models.MetaInfo{Cards: &models.CardContext{
			CardID:   auth.CardID,
			Merchant: auth.Recipient,
			OriginalAmount: models.OriginalAmount{
				Currency: strings.ToUpper(auth.Currency),
				Value:    auth.Amount,
				FXRate:   conv.Rate,
			},
			POSEntryMode:    auth.POSEntryMode,
			TraceID:         uuid.New().String(),
			TransactionDate: now.UTC().Format(time.DateOnly),
			TransactionTime: now,
			TransactionType: auth.Type,
		}},
	}
}

// quarantine moves the candidate into the fraud reservations and opens a case.
func (e *Engine) quarantine(ctx context.Context, person *models.Person, reservation models.Reservation, now time.Time) (Result, error) {
	fc := models.FraudCase{
		ID:                   uuid.New().String(),
		ReservationID:        reservation.ID,
		CardID:               reservation.CardID(),
		ReservationExpiresAt: now.Add(e.fraudTTL),
	}

	person.Account.FraudReservations = append(person.Account.FraudReservations, reservation)
	person.FraudCases = append(person.FraudCases, fc)

	if _, err := e.store.SavePerson(ctx, person); err != nil {
		return Result{}, fmt.Errorf("failed to save fraud case: %w", err)
	}

	e.watcher.Watch(fc)

	e.logger.InfoContext(ctx, "fraud case opened",
		"person_id", person.ID,
		"fraud_case_id", fc.ID,
		"reservation_id", reservation.ID,
		"respond_until", fc.ReservationExpiresAt,
	)
	e.metrics.RecordAuthorization(string(models.DeclineReasonFraudSuspected))
	e.metrics.RecordFraudCase(mapping.FraudResolutionPending)
	e.emit(ctx, webhooks.EventCardFraudCasePending, mapping.ToFraudCasePayload(fc, &reservation, mapping.FraudResolutionPending))

	return Result{Reservation: reservation, FraudCase: &fc, DeclineReason: models.DeclineReasonFraudSuspected}, nil
}

func (e *Engine) decline(ctx context.Context, reservation *models.Reservation, reason models.DeclineReason) Result {
	e.logger.InfoContext(ctx, "card authorization declined",
		"card_id", reservation.CardID(),
		"reservation_id", reservation.ID,
		"reason", reason,
	)
	e.metrics.RecordAuthorization(string(reason))
	e.emit(ctx, webhooks.EventCardAuthorizationDecline, mapping.ToDeclinePayload(reservation, reason))

	return Result{Reservation: *reservation, DeclineReason: reason}
}

func (e *Engine) emitReservation(ctx context.Context, eventType webhooks.EventType, r *models.Reservation) {
	payload, err := mapping.ToReservationPayload(r)
	if err != nil {
		e.logger.ErrorContext(ctx, "failed to build webhook payload", "event_type", eventType, "error", err)
		return
	}
	e.emit(ctx, eventType, payload)
}

// emit sends a webhook after the state change committed. Failures are logged only.
func (e *Engine) emit(ctx context.Context, eventType webhooks.EventType, payload any) {
	if err := e.sender.Send(ctx, eventType, payload); err != nil {
		e.logger.ErrorContext(ctx, "failed to send webhook", "event_type", eventType, "error", err)
	}
}

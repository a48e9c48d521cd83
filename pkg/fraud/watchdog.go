package fraud

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/kontist/mock-solaris-sub001/pkg/clock"
	"github.com/kontist/mock-solaris-sub001/pkg/mapping"
	"github.com/kontist/mock-solaris-sub001/pkg/metrics"
	"github.com/kontist/mock-solaris-sub001/pkg/models"
	"github.com/kontist/mock-solaris-sub001/pkg/storage"
	"github.com/kontist/mock-solaris-sub001/pkg/webhooks"
)

const (
	DefaultTimeout = 60 * time.Second
	MinTimeout     = time.Second
)

// Final states of a fraud case.
const (
	StateTimeout     = "TIMEOUT"
	StateConfirmed   = "CONFIRMED"
	StateWhitelisted = "WHITELISTED"
)

var (
	// ErrTimeoutTooShort is returned by NewWatchdog for a sweep delay below MinTimeout.
	ErrTimeoutTooShort = errors.New("fraud watchdog timeout must be at least 1s")

	// ErrFraudCaseNotFound is returned when no person holds the fraud case.
	ErrFraudCaseNotFound = errors.New("fraud case not found")
)

// Options configures a Watchdog.
type Options struct {
	Metrics *metrics.Collector
	Logger  *slog.Logger
}

// Watchdog tracks open fraud cases and blocks the card of every case that is
// neither confirmed nor whitelisted before its deadline. At most one sweep is
// scheduled at any time.
type Watchdog struct {
	store   storage.PersonStore
	sender  webhooks.Sender
	clock   clock.Clock
	timeout time.Duration
	metrics *metrics.Collector
	logger  *slog.Logger

	mu      sync.Mutex
	cases   map[string]models.FraudCase
	timer   clock.Timer
	stopped bool
}

// NewWatchdog creates a Watchdog that sweeps timeout after a case is watched.
func NewWatchdog(store storage.PersonStore, sender webhooks.Sender, clk clock.Clock, timeout time.Duration, opts Options) (*Watchdog, error) {
	if timeout < MinTimeout {
		return nil, fmt.Errorf("%w: got %s", ErrTimeoutTooShort, timeout)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Watchdog{
		store:   store,
		sender:  sender,
		clock:   clk,
		timeout: timeout,
		metrics: opts.Metrics,
		logger:  logger,
		cases:   make(map[string]models.FraudCase),
	}, nil
}

// Watch starts tracking the case. Scheduling is idempotent.
func (w *Watchdog) Watch(fc models.FraudCase) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.cases[fc.ID] = fc
	w.metrics.SetPendingFraudCases(len(w.cases))
	w.scheduleLocked()
}

// Rehydrate re-watches every open fraud case in the store. Deadlines are
// absolute, so cases keep their original timeout window across restarts.
func (w *Watchdog) Rehydrate(ctx context.Context) (int, error) {
	persons, err := w.store.ListPersons(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list persons for fraud cases: %w", err)
	}

	n := 0
	for _, p := range persons {
		for _, fc := range p.FraudCases {
			w.Watch(fc)
			n++
		}
	}

	w.logger.InfoContext(ctx, "fraud watchdog rehydrated", "fraud_cases", n)
	return n, nil
}

// Pending returns the number of tracked cases.
func (w *Watchdog) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.cases)
}

// Stop cancels the scheduled sweep. No sweep is scheduled afterwards, including
// by a sweep that is already running.
func (w *Watchdog) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Watchdog) scheduleLocked() {
	if w.stopped || w.timer != nil {
		return
	}
	w.timer = w.clock.AfterFunc(w.timeout, w.sweep)
}

// sweep times out every due case and reschedules while cases remain.
func (w *Watchdog) sweep() {
	ctx := context.Background()

	// 1. Take the due cases out of the set.
	w.mu.Lock()
	w.timer = nil
	now := w.clock.Now()
	var due []models.FraudCase
	for id, fc := range w.cases {
		if !fc.ReservationExpiresAt.After(now) {
			due = append(due, fc)
			delete(w.cases, id)
		}
	}
	w.mu.Unlock()

	// 2. Escalate them without holding the lock.
	for _, fc := range due {
		err := w.timeoutCase(ctx, fc)
		if err == nil {
			continue
		}
		if errors.Is(err, storage.ErrVersionConflict) {
			w.logger.WarnContext(ctx, "fraud case changed during sweep, retrying on next sweep", "fraud_case_id", fc.ID)
		} else {
			w.logger.ErrorContext(ctx, "failed to time out fraud case, retrying on next sweep", "fraud_case_id", fc.ID, "error", err)
		}
		// Nothing was written, so the case is still open in the store.
		w.mu.Lock()
		w.cases[fc.ID] = fc
		w.mu.Unlock()
	}

	// 3. Keep exactly one sweep pending while cases remain.
	w.mu.Lock()
	defer w.mu.Unlock()
	w.metrics.SetPendingFraudCases(len(w.cases))
	if len(w.cases) > 0 {
		w.scheduleLocked()
	}
}

func (w *Watchdog) timeoutCase(ctx context.Context, fc models.FraudCase) error {
	res, err := w.resolve(ctx, fc.ID, true)
	if errors.Is(err, ErrFraudCaseNotFound) {
		w.logger.DebugContext(ctx, "fraud case already resolved", "fraud_case_id", fc.ID)
		return nil
	}
	if err != nil {
		return err
	}

	w.logger.InfoContext(ctx, "fraud case timed out", "person_id", res.personID, "fraud_case_id", fc.ID, "card_id", fc.CardID)
	w.metrics.RecordFraudCase(StateTimeout)
	w.emit(ctx, webhooks.EventCardFraudCaseTimeout, mapping.ToFraudCasePayload(res.fraudCase, res.reservation, mapping.FraudResolutionTimeout))
	w.emitBlocked(ctx, res)

	return nil
}

// ConfirmFraud resolves the case as fraud and blocks the card.
func (w *Watchdog) ConfirmFraud(ctx context.Context, fraudCaseID string) (*models.FraudCase, error) {
	res, err := w.resolve(ctx, fraudCaseID, true)
	if err != nil {
		return nil, err
	}
	w.forget(fraudCaseID)

	w.logger.InfoContext(ctx, "fraud case confirmed", "person_id", res.personID, "fraud_case_id", fraudCaseID)
	w.metrics.RecordFraudCase(StateConfirmed)
	w.emitBlocked(ctx, res)

	return &res.fraudCase, nil
}

// WhitelistCard resolves the case as legitimate. The card status is untouched.
func (w *Watchdog) WhitelistCard(ctx context.Context, fraudCaseID string) (*models.FraudCase, error) {
	res, err := w.resolve(ctx, fraudCaseID, false)
	if err != nil {
		return nil, err
	}
	w.forget(fraudCaseID)

	w.logger.InfoContext(ctx, "fraud case whitelisted", "person_id", res.personID, "fraud_case_id", fraudCaseID)
	w.metrics.RecordFraudCase(StateWhitelisted)
	return &res.fraudCase, nil
}

func (w *Watchdog) forget(fraudCaseID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.cases, fraudCaseID)
	w.metrics.SetPendingFraudCases(len(w.cases))
}

// resolution is the outcome of removing a fraud case from its person.
type resolution struct {
	personID    string
	fraudCase   models.FraudCase
	reservation *models.Reservation
	blocked     *models.CardData
}

// resolve removes the case and its quarantined reservation from the owning person
// and, when block is set, moves the card to BLOCKED_BY_SOLARIS, all in a single save.
func (w *Watchdog) resolve(ctx context.Context, fraudCaseID string, block bool) (*resolution, error) {
	person, err := w.store.FindPersonByFraudCaseID(ctx, fraudCaseID)
	if errors.Is(err, storage.ErrPersonNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrFraudCaseNotFound, fraudCaseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find person for fraud case: %w", err)
	}

	fc, ok := person.RemoveFraudCase(fraudCaseID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFraudCaseNotFound, fraudCaseID)
	}

	res := &resolution{personID: person.ID, fraudCase: fc}
	if person.Account != nil {
		if r, ok := person.Account.RemoveFraudReservation(fc.ReservationID); ok {
			res.reservation = &r
		}
		if block {
			if card := person.Account.FindCard(fc.CardID); card != nil {
				card.Card.Status = models.CardStatusBlockedBySolaris
				res.blocked = card
			}
		}
	}
	if block && res.blocked == nil {
		w.logger.WarnContext(ctx, "card of fraud case not found, nothing to block", "fraud_case_id", fraudCaseID, "card_id", fc.CardID)
	}

	if _, err := w.store.SavePerson(ctx, person); err != nil {
		return nil, fmt.Errorf("failed to save resolved fraud case: %w", err)
	}

	return res, nil
}

// emitBlocked announces the block written by resolve.
func (w *Watchdog) emitBlocked(ctx context.Context, res *resolution) {
	if res.blocked == nil {
		return
	}
	w.logger.InfoContext(ctx, "card blocked", "person_id", res.personID, "card_id", res.blocked.Card.ID)
	w.emit(ctx, webhooks.EventCardLifecycleEvent, mapping.ToCardPayload(res.blocked))
}

func (w *Watchdog) emit(ctx context.Context, eventType webhooks.EventType, payload any) {
	if err := w.sender.Send(ctx, eventType, payload); err != nil {
		w.logger.ErrorContext(ctx, "failed to send webhook", "event_type", eventType, "error", err)
	}
}

package reservations

import (
	"context"
	"fmt"

	"github.com/kontist/mock-solaris-sub001/pkg/accounts"
	"github.com/kontist/mock-solaris-sub001/pkg/bookings"
	"github.com/kontist/mock-solaris-sub001/pkg/mapping"
	"github.com/kontist/mock-solaris-sub001/pkg/models"
	"github.com/kontist/mock-solaris-sub001/pkg/webhooks"
	"go.uber.org/multierr"
)

// surchargeDivisor bounds the booking surcharge to available/20.
const surchargeDivisor = 20

// UpdateReservation applies action to an open reservation and returns its final state.
// increaseAmount inflates a BOOK by a random surcharge bounded by the available balance.
func (e *Engine) UpdateReservation(ctx context.Context, personID, reservationID string, action Action, increaseAmount bool) (*models.Reservation, error) {
	if !action.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	// 1. Load the person and find the open reservation.
	person, err := e.store.GetPerson(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to get person for reservation update: %w", err)
	}
	if person.Account == nil {
		return nil, fmt.Errorf("%w: %s", ErrReservationNotFound, reservationID)
	}
	i := person.Account.FindReservation(reservationID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrReservationNotFound, reservationID)
	}

	now := e.clock.Now()
	var reservation models.Reservation

	// 2. Apply the transition.
	switch action {
	case ActionResolve:
		person.Account.Reservations[i].Status = models.ReservationStatusResolved
		person.Account.Reservations[i].ResolvedAt = &now
		reservation = person.Account.Reservations[i]

	case ActionBook:
		incoming := &bookings.Incoming{AmountCents: person.Account.Reservations[i].Amount.Value}
		if increaseAmount {
			available := accounts.Compute(person, now).Available
			incoming.AmountCents += e.surcharger(available / surchargeDivisor)
		}

		reservation, _ = person.Account.RemoveReservation(reservationID)
		person.Transactions = append(person.Transactions, bookings.FromReservation(&reservation, now, incoming))
		reservation.Status = models.ReservationStatusResolved
		reservation.ResolvedAt = &now

	case ActionExpire:
		reservation, _ = person.Account.RemoveReservation(reservationID)
		reservation.Status = models.ReservationStatusExpired
		reservation.ExpiredAt = &now
	}

	// 3. Persist, then notify.
	if _, err := e.store.SavePerson(ctx, person); err != nil {
		return nil, fmt.Errorf("failed to save reservation update: %w", err)
	}

	e.logger.InfoContext(ctx, "reservation updated",
		"person_id", personID,
		"reservation_id", reservationID,
		"action", action,
	)
	e.metrics.RecordReservationUpdate(string(action))
	e.emitReservation(ctx, webhooks.EventCardAuthorizationResolution, &reservation)

	if action == ActionBook {
		e.emit(ctx, webhooks.EventBooking, mapping.ToBookingPayload(person.Account.ID))
	}

	return &reservation, nil
}

// ExpireOverdue expires every open reservation whose expiry has passed and
// returns how many were expired. Failures do not stop the sweep.
func (e *Engine) ExpireOverdue(ctx context.Context) (int, error) {
	persons, err := e.store.ListPersons(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list persons for reservation expiry: %w", err)
	}

	now := e.clock.Now()
	expired := 0
	var errs error

	for _, p := range persons {
		if p.Account == nil {
			continue
		}
		for _, r := range p.Account.Reservations {
			if r.ExpiresAt.After(now) {
				continue
			}
			if _, err := e.UpdateReservation(ctx, p.ID, r.ID, ActionExpire, false); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("failed to expire reservation %s: %w", r.ID, err))
				continue
			}
			expired++
		}
	}

	return expired, errs
}

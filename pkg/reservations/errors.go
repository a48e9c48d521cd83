package reservations

import "errors"

var (
	// ErrCardNotFound is returned when the person has no card with the given id.
	ErrCardNotFound = errors.New("card not found")

	// ErrReservationNotFound is returned when no open reservation has the given id.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrUnknownAction is returned for reservation actions other than RESOLVE, BOOK and EXPIRE.
	ErrUnknownAction = errors.New("unknown reservation action")

	// ErrCardNotActive is returned for card statuses that are neither ACTIVE nor mapped to a decline reason.
	ErrCardNotActive = errors.New("card is not active")

	// ErrContactlessDisabled is returned for contactless entry modes on a card with contactless payments off.
	ErrContactlessDisabled = errors.New("contactless payments are disabled for this card")

	// ErrInvalidDeclineReason is returned when an injected decline reason is not a known reason.
	ErrInvalidDeclineReason = errors.New("invalid decline reason")
)

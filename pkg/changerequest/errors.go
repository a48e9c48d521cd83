package changerequest

import "errors"

var (
	// ErrUnauthorized is returned when the person has no verified mobile number.
	ErrUnauthorized = errors.New("person has no verified mobile number")

	// ErrInvalidToken is returned when the delivery method does not match the pending request.
	ErrInvalidToken = errors.New("invalid change request token")

	// ErrUnprocessable is returned when there is no pending change request or it expired.
	ErrUnprocessable = errors.New("change request is not pending or has expired")

	// ErrInvalidTAN is returned for a wrong TAN. The pending request is deleted.
	ErrInvalidTAN = errors.New("invalid TAN")

	// ErrUnknownMethod is returned when no handler is registered for the request's method.
	ErrUnknownMethod = errors.New("unknown change request method")
)

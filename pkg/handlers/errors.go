package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/kontist/mock-solaris-sub001/pkg/cards"
	"github.com/kontist/mock-solaris-sub001/pkg/changerequest"
	"github.com/kontist/mock-solaris-sub001/pkg/fraud"
	"github.com/kontist/mock-solaris-sub001/pkg/limits"
	"github.com/kontist/mock-solaris-sub001/pkg/money"
	"github.com/kontist/mock-solaris-sub001/pkg/reservations"
	"github.com/kontist/mock-solaris-sub001/pkg/storage"
)

type apiError struct {
	ID       string   `json:"id"`
	Status   int      `json:"status"`
	Title    string   `json:"title"`
	Detail   string   `json:"detail"`
	Problems []string `json:"problems,omitempty"`
}

type errorResponse struct {
	Errors []apiError `json:"errors"`
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var validation *limits.ValidationError

	switch {
	case errors.Is(err, storage.ErrPersonNotFound),
		errors.Is(err, reservations.ErrCardNotFound),
		errors.Is(err, reservations.ErrReservationNotFound),
		errors.Is(err, cards.ErrCardNotFound),
		errors.Is(err, fraud.ErrFraudCaseNotFound):
		return http.StatusNotFound

	case errors.As(err, &validation),
		errors.Is(err, cards.ErrInvalidPIN),
		errors.Is(err, reservations.ErrUnknownAction),
		errors.Is(err, reservations.ErrInvalidDeclineReason),
		errors.Is(err, reservations.ErrCardNotActive),
		errors.Is(err, reservations.ErrContactlessDisabled),
		errors.Is(err, money.ErrUnsupportedCurrency),
		errors.Is(err, changerequest.ErrUnknownMethod):
		return http.StatusBadRequest

	case errors.Is(err, changerequest.ErrUnauthorized),
		errors.Is(err, changerequest.ErrInvalidToken),
		errors.Is(err, changerequest.ErrInvalidTAN):
		return http.StatusForbidden

	case errors.Is(err, changerequest.ErrUnprocessable):
		return http.StatusUnprocessableEntity

	case errors.Is(err, storage.ErrVersionConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (h *ApiHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger().ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	var problems []string
	var validation *limits.ValidationError
	if errors.As(err, &validation) {
		problems = validation.Problems
	}
	writeStatus(w, status, err.Error(), problems)
}

func writeStatus(w http.ResponseWriter, status int, detail string, problems []string) {
	writeJSON(w, status, errorResponse{Errors: []apiError{{
		ID:       uuid.New().String(),
		Status:   status,
		Title:    http.StatusText(status),
		Detail:   detail,
		Problems: problems,
	}}})
}

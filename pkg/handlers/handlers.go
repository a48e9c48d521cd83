package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kontist/mock-solaris-sub001/pkg/changerequest"
	"github.com/kontist/mock-solaris-sub001/pkg/models"
	"github.com/kontist/mock-solaris-sub001/pkg/reservations"
	"github.com/kontist/mock-solaris-sub001/pkg/webhooks"
	"github.com/oapi-codegen/runtime"
)

// ReservationService authorizes card events and moves reservations through their lifecycle.
type ReservationService interface {
	CreateReservation(ctx context.Context, auth reservations.Authorization) (reservations.Result, error)
	UpdateReservation(ctx context.Context, personID, reservationID string, action reservations.Action, increaseAmount bool) (*models.Reservation, error)
}

// FraudService resolves open fraud cases.
type FraudService interface {
	ConfirmFraud(ctx context.Context, fraudCaseID string) (*models.FraudCase, error)
	WhitelistCard(ctx context.Context, fraudCaseID string) (*models.FraudCase, error)
}

// CardService changes card state and opens card change requests.
type CardService interface {
	SetStatus(ctx context.Context, personID, cardID string, status models.CardStatus) (*models.CardData, error)
	UpdateLimits(ctx context.Context, personID, cardID string, settings models.CardLimitSettings) (*models.CardLimitSettings, error)
	RequestPINChange(ctx context.Context, personID, cardID, pin string) (*changerequest.Response, error)
	RequestLimitsChange(ctx context.Context, personID, cardID string, settings models.CardLimitSettings) (*changerequest.Response, error)
}

// ChangeRequestService runs the authorize and confirm steps of a change request.
type ChangeRequestService interface {
	Authorize(ctx context.Context, personID, changeRequestID, deliveryMethod string) (*changerequest.Response, error)
	Confirm(ctx context.Context, personID, changeRequestID, tan string) (*changerequest.Response, error)
}

// ApiHandler holds the services behind the simulator's HTTP surface.
type ApiHandler struct {
	Reservations   ReservationService
	Fraud          FraudService
	Cards          CardService
	ChangeRequests ChangeRequestService
	Subscriptions  webhooks.SubscriptionStore
	Logger         *slog.Logger
}

// Routes mounts every endpoint on r.
func (h *ApiHandler) Routes(r chi.Router) {
	r.Route("/persons/{person_id}", func(r chi.Router) {
		r.Patch("/reservations/{reservation_id}", h.UpdateReservation)

		r.Route("/cards/{card_id}", func(r chi.Router) {
			r.Post("/authorizations", h.CreateAuthorization)
			r.Put("/status", h.SetCardStatus)
			r.Put("/limits", h.UpdateCardLimits)
			r.Post("/change_requests/pin", h.RequestPINChange)
			r.Post("/change_requests/limits", h.RequestLimitsChange)
		})
	})

	r.Post("/fraud_cases/{fraud_case_id}/confirm", h.ConfirmFraud)
	r.Post("/fraud_cases/{fraud_case_id}/whitelist", h.WhitelistCard)

	r.Post("/change_requests/{change_request_id}/authorize", h.AuthorizeChangeRequest)
	r.Post("/change_requests/{change_request_id}/confirm", h.ConfirmChangeRequest)

	r.Post("/webhooks", h.CreateWebhookSubscription)
}

func (h *ApiHandler) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}

// bindPath binds a required path parameter the way generated chi servers do.
func bindPath[T any](w http.ResponseWriter, r *http.Request, name string, dest *T) bool {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeStatus(w, http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %v", name, err), nil)
		return false
	}
	return true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeStatus(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err), nil)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/kontist/mock-solaris-sub001/pkg/mapping"
	"github.com/kontist/mock-solaris-sub001/pkg/models"
	"github.com/kontist/mock-solaris-sub001/pkg/reservations"
)

type authorizationRequest struct {
	Amount struct {
		Value    int64  `json:"value"`
		Currency string `json:"currency"`
	} `json:"amount"`
	Type          models.TransactionType `json:"type"`
	POSEntryMode  models.POSEntryMode    `json:"pos_entry_mode"`
	Merchant      models.Merchant        `json:"merchant"`
	DeclineReason models.DeclineReason   `json:"decline_reason,omitempty"`
}

type declineResponse struct {
	mapping.DeclinePayload
	FraudCaseID string `json:"fraud_case_id,omitempty"`
}

type updateReservationRequest struct {
	Action         reservations.Action `json:"action"`
	IncreaseAmount bool                `json:"increase_amount"`
}

// CreateAuthorization simulates a card event. Accepted authorizations answer
// 201 with the reservation, declines answer 422 with the reason.
func (h *ApiHandler) CreateAuthorization(w http.ResponseWriter, r *http.Request) {
	var personID, cardID string
	if !bindPath(w, r, "person_id", &personID) || !bindPath(w, r, "card_id", &cardID) {
		return
	}

	var req authorizationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Amount.Value <= 0 {
		writeStatus(w, http.StatusBadRequest, "amount.value must be positive", nil)
		return
	}

	auth := reservations.Authorization{
		PersonID:      personID,
		CardID:        cardID,
		Amount:        req.Amount.Value,
		Currency:      strings.ToUpper(req.Amount.Currency),
		Type:          req.Type,
		Recipient:     req.Merchant,
		POSEntryMode:  req.POSEntryMode,
		DeclineReason: req.DeclineReason,
	}
	if auth.Currency == "" {
		auth.Currency = models.AccountCurrency
	}
	if auth.Type == "" {
		auth.Type = models.TransactionTypePurchase
	}
	if auth.POSEntryMode == "" {
		auth.POSEntryMode = models.POSEntryModeChip
	}

	res, err := h.Reservations.CreateReservation(r.Context(), auth)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if res.Declined() {
		body := declineResponse{DeclinePayload: mapping.ToDeclinePayload(&res.Reservation, res.DeclineReason)}
		if res.FraudCase != nil {
			body.FraudCaseID = res.FraudCase.ID
		}
		writeJSON(w, http.StatusUnprocessableEntity, body)
		return
	}

	payload, err := mapping.ToReservationPayload(&res.Reservation)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, payload)
}

// UpdateReservation applies RESOLVE, BOOK or EXPIRE to an open reservation.
func (h *ApiHandler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	var personID, reservationID string
	if !bindPath(w, r, "person_id", &personID) || !bindPath(w, r, "reservation_id", &reservationID) {
		return
	}

	var req updateReservationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	reservation, err := h.Reservations.UpdateReservation(r.Context(), personID, reservationID, req.Action, req.IncreaseAmount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	payload, err := mapping.ToReservationPayload(reservation)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

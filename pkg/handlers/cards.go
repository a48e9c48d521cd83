package handlers

import (
	"fmt"
	"net/http"

	"github.com/kontist/mock-solaris-sub001/pkg/mapping"
	"github.com/kontist/mock-solaris-sub001/pkg/models"
)

type cardStatusRequest struct {
	Status models.CardStatus `json:"status"`
}

type pinChangeRequest struct {
	PIN string `json:"pin"`
}

// SetCardStatus moves a card to the requested status.
func (h *ApiHandler) SetCardStatus(w http.ResponseWriter, r *http.Request) {
	var personID, cardID string
	if !bindPath(w, r, "person_id", &personID) || !bindPath(w, r, "card_id", &cardID) {
		return
	}

	var req cardStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !req.Status.Valid() {
		writeStatus(w, http.StatusBadRequest, fmt.Sprintf("unknown card status %q", req.Status), nil)
		return
	}

	card, err := h.Cards.SetStatus(r.Context(), personID, cardID, req.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.ToCardPayload(card))
}

// UpdateCardLimits replaces the card limits directly.
func (h *ApiHandler) UpdateCardLimits(w http.ResponseWriter, r *http.Request) {
	var personID, cardID string
	if !bindPath(w, r, "person_id", &personID) || !bindPath(w, r, "card_id", &cardID) {
		return
	}

	var settings models.CardLimitSettings
	if !decodeBody(w, r, &settings) {
		return
	}

	updated, err := h.Cards.UpdateLimits(r.Context(), personID, cardID, settings)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// RequestPINChange opens a card_pin_change request.
func (h *ApiHandler) RequestPINChange(w http.ResponseWriter, r *http.Request) {
	var personID, cardID string
	if !bindPath(w, r, "person_id", &personID) || !bindPath(w, r, "card_id", &cardID) {
		return
	}

	var req pinChangeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.Cards.RequestPINChange(r.Context(), personID, cardID, req.PIN)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, resp)
}

// RequestLimitsChange opens a card_limits_change request.
func (h *ApiHandler) RequestLimitsChange(w http.ResponseWriter, r *http.Request) {
	var personID, cardID string
	if !bindPath(w, r, "person_id", &personID) || !bindPath(w, r, "card_id", &cardID) {
		return
	}

	var settings models.CardLimitSettings
	if !decodeBody(w, r, &settings) {
		return
	}

	resp, err := h.Cards.RequestLimitsChange(r.Context(), personID, cardID, settings)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, resp)
}

package handlers

import (
	"context"
	"net/http"

	"github.com/kontist/mock-solaris-sub001/pkg/fraud"
	"github.com/kontist/mock-solaris-sub001/pkg/models"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type fraudCaseResponse struct {
	ID         string `json:"id"`
	CardID     string `json:"card_id"`
	Resolution string `json:"resolution"`
}

// ConfirmFraud resolves the case as fraud; the card gets blocked.
func (h *ApiHandler) ConfirmFraud(w http.ResponseWriter, r *http.Request) {
	h.resolveFraudCase(w, r, h.Fraud.ConfirmFraud, fraud.StateConfirmed)
}

// WhitelistCard resolves the case as a legitimate payment.
func (h *ApiHandler) WhitelistCard(w http.ResponseWriter, r *http.Request) {
	h.resolveFraudCase(w, r, h.Fraud.WhitelistCard, fraud.StateWhitelisted)
}

func (h *ApiHandler) resolveFraudCase(w http.ResponseWriter, r *http.Request, resolve func(context.Context, string) (*models.FraudCase, error), state string) {
	var fraudCaseID openapi_types.UUID
	if !bindPath(w, r, "fraud_case_id", &fraudCaseID) {
		return
	}

	fc, err := resolve(r.Context(), fraudCaseID.String())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, fraudCaseResponse{ID: fc.ID, CardID: fc.CardID, Resolution: state})
}

package handlers

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

type authorizeRequest struct {
	PersonID       string `json:"person_id"`
	DeliveryMethod string `json:"delivery_method"`
}

type confirmRequest struct {
	PersonID string `json:"person_id"`
	TAN      string `json:"tan"`
}

// AuthorizeChangeRequest sends the TAN of a pending change request.
func (h *ApiHandler) AuthorizeChangeRequest(w http.ResponseWriter, r *http.Request) {
	var changeRequestID openapi_types.UUID
	if !bindPath(w, r, "change_request_id", &changeRequestID) {
		return
	}

	var req authorizeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.ChangeRequests.Authorize(r.Context(), req.PersonID, changeRequestID.String(), req.DeliveryMethod)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ConfirmChangeRequest checks the TAN and executes the change.
func (h *ApiHandler) ConfirmChangeRequest(w http.ResponseWriter, r *http.Request) {
	var changeRequestID openapi_types.UUID
	if !bindPath(w, r, "change_request_id", &changeRequestID) {
		return
	}

	var req confirmRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.ChangeRequests.Confirm(r.Context(), req.PersonID, changeRequestID.String(), req.TAN)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

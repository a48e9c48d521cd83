package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/kontist/mock-solaris-sub001/pkg/webhooks"
)

type subscriptionRequest struct {
	EventType webhooks.EventType `json:"event_type"`
	URL       string             `json:"url"`
	Secret    string             `json:"secret,omitempty"`
}

// CreateWebhookSubscription registers the subscriber of an event type,
// replacing any earlier one.
func (h *ApiHandler) CreateWebhookSubscription(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !req.EventType.Valid() {
		writeStatus(w, http.StatusBadRequest, fmt.Sprintf("unknown event type %q", req.EventType), nil)
		return
	}
	if u, err := url.ParseRequestURI(req.URL); err != nil || u.Host == "" {
		writeStatus(w, http.StatusBadRequest, fmt.Sprintf("invalid url %q", req.URL), nil)
		return
	}

	sub := &webhooks.Subscription{
		ID:        uuid.New().String(),
		EventType: req.EventType,
		URL:       req.URL,
		Secret:    req.Secret,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Subscriptions.SaveSubscription(r.Context(), sub); err != nil {
		h.writeError(w, r, err)
		return
	}

	// Secrets are write-only.
	resp := *sub
	resp.Secret = ""
	writeJSON(w, http.StatusCreated, resp)
}

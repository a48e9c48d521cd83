package changerequest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kontist/mock-solaris-sub001/pkg/clock"
	"github.com/kontist/mock-solaris-sub001/pkg/metrics"
	"github.com/kontist/mock-solaris-sub001/pkg/models"
	"github.com/kontist/mock-solaris-sub001/pkg/storage"
)

// TTL is the lifetime of a change request, measured from its creation.
const TTL = 5 * time.Minute

// Response is returned by every protocol step.
type Response struct {
	ID           string                     `json:"id"`
	Status       models.ChangeRequestStatus `json:"status"`
	ResponseBody any                        `json:"response_body,omitempty"`
}

// Options configures an Authorizer.
type Options struct {
	// TAN mints tokens; NewTAN when nil.
	TAN     TANGenerator
	Metrics *metrics.Collector
	Logger  *slog.Logger
}

// Authorizer runs the two-step confirmation protocol guarding sensitive mutations.
type Authorizer struct {
	store    storage.PersonStore
	registry *Registry
	clock    clock.Clock
	tan      TANGenerator
	metrics  *metrics.Collector
	logger   *slog.Logger
}

func NewAuthorizer(store storage.PersonStore, registry *Registry, clk clock.Clock, opts Options) *Authorizer {
	a := &Authorizer{
		store:    store,
		registry: registry,
		clock:    clk,
		tan:      opts.TAN,
		metrics:  opts.Metrics,
		logger:   opts.Logger,
	}
	if a.tan == nil {
		a.tan = NewTAN
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// Create stores a pending change request on the person, replacing any earlier one.
func (a *Authorizer) Create(ctx context.Context, person *models.Person, method models.ChangeRequestMethod, delta any) (*Response, error) {
	if !person.HasVerifiedMobileNumber() {
		return nil, ErrUnauthorized
	}

	raw, err := json.Marshal(delta)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal change request delta: %w", err)
	}

	cr := &models.ChangeRequest{
		ID:        uuid.New().String(),
		Method:    method,
		Delta:     raw,
		CreatedAt: a.clock.Now(),
	}
	person.ChangeRequest = cr

	if _, err := a.store.SavePerson(ctx, person); err != nil {
		return nil, fmt.Errorf("failed to save change request: %w", err)
	}

	a.logger.InfoContext(ctx, "change request created", "person_id", person.ID, "change_request_id", cr.ID, "method", method)
	a.metrics.RecordChangeRequest(string(method), string(models.ChangeRequestStatusAuthorizationRequired))

	return &Response{ID: cr.ID, Status: models.ChangeRequestStatusAuthorizationRequired}, nil
}

// Authorize mints the TAN of the pending request and sends it over the delivery method.
func (a *Authorizer) Authorize(ctx context.Context, personID, changeRequestID, deliveryMethod string) (*Response, error) {
	person, cr, err := a.pending(ctx, personID, changeRequestID)
	if err != nil {
		return nil, err
	}

	if deliveryMethod != models.DeliveryMethodMobileNumber || !person.HasVerifiedMobileNumber() {
		return nil, ErrInvalidToken
	}

	token, err := a.tan()
	if err != nil {
		return nil, err
	}
	cr.Token = token

	if _, err := a.store.SavePerson(ctx, person); err != nil {
		return nil, fmt.Errorf("failed to save change request token: %w", err)
	}

	// The simulator has no SMS gateway; the TAN is only logged.
	a.logger.InfoContext(ctx, "change request TAN sent",
		"person_id", person.ID,
		"change_request_id", cr.ID,
		"mobile_number", person.MobileNumber.Number,
		"tan", token,
	)
	a.metrics.RecordChangeRequest(string(cr.Method), string(models.ChangeRequestStatusConfirmationRequired))

	return &Response{ID: cr.ID, Status: models.ChangeRequestStatusConfirmationRequired}, nil
}

// Confirm checks the TAN and runs the handler of the request's method. The
// request is consumed whether or not the confirmation succeeds.
func (a *Authorizer) Confirm(ctx context.Context, personID, changeRequestID, tan string) (*Response, error) {
	// 1. The request must be pending and younger than TTL.
	person, cr, err := a.pending(ctx, personID, changeRequestID)
	if err != nil {
		return nil, err
	}

	log := a.logger.With("person_id", person.ID, "change_request_id", cr.ID, "method", cr.Method)

	// 2. A wrong TAN burns the request.
	if !tanMatches(cr.Token, tan) {
		if err := a.clear(ctx, person); err != nil {
			return nil, err
		}
		log.WarnContext(ctx, "change request invalidated by wrong TAN")
		a.metrics.RecordChangeRequest(string(cr.Method), string(models.ChangeRequestStatusFailed))
		return nil, ErrInvalidTAN
	}

	// 3. Dispatch to the domain handler.
	handler, ok := a.registry.lookup(cr.Method)
	if !ok {
		if err := a.clear(ctx, person); err != nil {
			return nil, err
		}
		a.metrics.RecordChangeRequest(string(cr.Method), string(models.ChangeRequestStatusFailed))
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, cr.Method)
	}

	body, handlerErr := handler(ctx, person, cr.Delta)

	// 4. Consume the request together with the handler's changes.
	if err := a.clear(ctx, person); err != nil {
		return nil, err
	}

	if handlerErr != nil {
		log.WarnContext(ctx, "change request failed", "error", handlerErr)
		a.metrics.RecordChangeRequest(string(cr.Method), string(models.ChangeRequestStatusFailed))
		return &Response{ID: cr.ID, Status: models.ChangeRequestStatusFailed}, handlerErr
	}

	log.InfoContext(ctx, "change request completed")
	a.metrics.RecordChangeRequest(string(cr.Method), string(models.ChangeRequestStatusCompleted))

	return &Response{ID: cr.ID, Status: models.ChangeRequestStatusCompleted, ResponseBody: body}, nil
}

func (a *Authorizer) pending(ctx context.Context, personID, changeRequestID string) (*models.Person, *models.ChangeRequest, error) {
	person, err := a.store.GetPerson(ctx, personID)
	if errors.Is(err, storage.ErrPersonNotFound) {
		return nil, nil, err
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get person for change request: %w", err)
	}

	cr := person.ChangeRequest
	if cr == nil || cr.ID != changeRequestID {
		return nil, nil, ErrUnprocessable
	}
	if a.clock.Now().Sub(cr.CreatedAt) > TTL {
		return nil, nil, fmt.Errorf("%w: created at %s", ErrUnprocessable, cr.CreatedAt.Format(time.RFC3339))
	}
	return person, cr, nil
}

func (a *Authorizer) clear(ctx context.Context, person *models.Person) error {
	person.ChangeRequest = nil
	if _, err := a.store.SavePerson(ctx, person); err != nil {
		return fmt.Errorf("failed to save consumed change request: %w", err)
	}
	return nil
}

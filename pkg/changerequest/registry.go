package changerequest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kontist/mock-solaris-sub001/pkg/models"
)

// Handler applies a confirmed change to the in-memory person and returns the
// response body. The Authorizer persists the person afterwards.
type Handler func(ctx context.Context, person *models.Person, delta json.RawMessage) (any, error)

// Registry maps each change request method to the domain handler that executes it.
type Registry struct {
	handlers map[models.ChangeRequestMethod]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[models.ChangeRequestMethod]Handler)}
}

// Register binds a typed handler to method. The stored delta is decoded into T
// before fn runs. Registering a method twice replaces the earlier handler.
func Register[T any](r *Registry, method models.ChangeRequestMethod, fn func(ctx context.Context, person *models.Person, delta T) (any, error)) {
	r.handlers[method] = func(ctx context.Context, person *models.Person, raw json.RawMessage) (any, error) {
		var delta T
		if err := json.Unmarshal(raw, &delta); err != nil {
			return nil, fmt.Errorf("failed to decode %s delta: %w", method, err)
		}
		return fn(ctx, person, delta)
	}
}

func (r *Registry) lookup(method models.ChangeRequestMethod) (Handler, bool) {
	h, ok := r.handlers[method]
	return h, ok
}

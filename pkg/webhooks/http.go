package webhooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/sony/gobreaker"
)

// ErrCircuitOpen is returned while a subscriber URL is failing and deliveries are short-circuited.
var ErrCircuitOpen = errors.New("webhook circuit open")

// HTTPDeliverer POSTs deliveries to their URL. Each URL gets its own circuit
// breaker so one broken subscriber cannot slow down the others.
type HTTPDeliverer struct {
	client   *http.Client
	logger   *slog.Logger
	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

func NewHTTPDeliverer(timeout time.Duration, logger *slog.Logger) *HTTPDeliverer {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPDeliverer{
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
}

var _ Deliverer = (*HTTPDeliverer)(nil)

func (h *HTTPDeliverer) Deliver(ctx context.Context, d *Delivery) error {
	_, err := h.breaker(d.URL).Execute(func() (interface{}, error) {
		return nil, h.post(ctx, d)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %s", ErrCircuitOpen, d.URL)
	}
	return err
}

func (h *HTTPDeliverer) post(ctx context.Context, d *Delivery) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.URL, bytes.NewReader(d.Body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	for k, v := range d.Headers {
		req.Header.Set(k, v)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("webhook subscriber responded with status %d", resp.StatusCode)
	}
	return nil
}

func (h *HTTPDeliverer) breaker(url string) *gobreaker.CircuitBreaker {
	h.mu.Lock()
	defer h.mu.Unlock()

	if cb, ok := h.breakers[url]; ok {
		return cb
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        url,
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			h.logger.Warn("webhook circuit breaker state changed",
				"url", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
	h.breakers[url] = cb
	return cb
}

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records simulator activity. A nil *Collector is valid and records nothing.
type Collector struct {
	registry           *prometheus.Registry
	authorizations     *prometheus.CounterVec
	reservationUpdates *prometheus.CounterVec
	fraudCases         *prometheus.CounterVec
	changeRequests     *prometheus.CounterVec
	webhookDeliveries  *prometheus.CounterVec
	pendingFraudCases  prometheus.Gauge
}

// NewCollector registers the simulator metrics on a private registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		authorizations: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "card_authorizations_total",
			Help: "Card authorizations by outcome and decline reason",
		}, []string{"outcome", "reason"}),
		reservationUpdates: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "reservation_updates_total",
			Help: "Reservation updates by action",
		}, []string{"action"}),
		fraudCases: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "fraud_cases_total",
			Help: "Fraud cases by final state",
		}, []string{"state"}),
		changeRequests: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "change_requests_total",
			Help: "Change request transitions by method and status",
		}, []string{"method", "status"}),
		webhookDeliveries: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "webhook_deliveries_total",
			Help: "Webhook deliveries by event type and result",
		}, []string{"event_type", "result"}),
		pendingFraudCases: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "fraud_cases_pending",
			Help: "Fraud cases tracked by the watchdog",
		}),
	}
}

// RecordAuthorization counts an accepted authorization (empty reason) or a decline.
func (c *Collector) RecordAuthorization(reason string) {
	if c == nil {
		return
	}
	outcome := "accepted"
	if reason != "" {
		outcome = "declined"
	}
	c.authorizations.WithLabelValues(outcome, reason).Inc()
}

func (c *Collector) RecordReservationUpdate(action string) {
	if c == nil {
		return
	}
	c.reservationUpdates.WithLabelValues(action).Inc()
}

// RecordFraudCase counts a fraud case reaching state (PENDING, TIMEOUT, CONFIRMED, WHITELISTED).
func (c *Collector) RecordFraudCase(state string) {
	if c == nil {
		return
	}
	c.fraudCases.WithLabelValues(state).Inc()
}

func (c *Collector) SetPendingFraudCases(n int) {
	if c == nil {
		return
	}
	c.pendingFraudCases.Set(float64(n))
}

func (c *Collector) RecordChangeRequest(method, status string) {
	if c == nil {
		return
	}
	c.changeRequests.WithLabelValues(method, status).Inc()
}

func (c *Collector) RecordWebhookDelivery(eventType string, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.webhookDeliveries.WithLabelValues(eventType, result).Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collected metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

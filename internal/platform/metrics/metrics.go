// Package metrics exposes Prometheus instruments for the ledger and the HTTP layer.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bookshall"

// OutcomeSuccess labels operations that completed without error.
const OutcomeSuccess = "success"

// Metrics owns its registry so tests can create independent instances.
type Metrics struct {
	registry *prometheus.Registry

	creditOperations *prometheus.CounterVec
	creditVolume     *prometheus.CounterVec
	refundFailures   prometheus.Counter
	webhookEvents    *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New registers all instruments on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		creditOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "credits",
			Name:      "operations_total",
			Help:      "Ledger operations by operation and outcome code.",
		}, []string{"operation", "outcome"}),
		creditVolume: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "credits",
			Name:      "volume_total",
			Help:      "Credits moved by committed ledger entries, by entry type.",
		}, []string{"type"}),
		refundFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "credits",
			Name:      "refund_failures_total",
			Help:      "Deletion refunds that failed and need manual reconciliation.",
		}),
		webhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "billing",
			Name:      "webhook_events_total",
			Help:      "Billing webhook events by type and whether they changed the ledger.",
		}, []string{"type", "processed"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.creditOperations,
		m.creditVolume,
		m.refundFailures,
		m.webhookEvents,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// ObserveCreditOperation counts one ledger operation. outcome is OutcomeSuccess or an error code.
func (m *Metrics) ObserveCreditOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.creditOperations.WithLabelValues(operation, outcome).Inc()
}

// AddCreditVolume adds the amount of a committed entry.
func (m *Metrics) AddCreditVolume(txnType string, amount int64) {
	if m == nil || amount <= 0 {
		return
	}
	m.creditVolume.WithLabelValues(txnType).Add(float64(amount))
}

// IncRefundFailures counts a refund that was not written.
func (m *Metrics) IncRefundFailures() {
	if m == nil {
		return
	}
	m.refundFailures.Inc()
}

// ObserveWebhookEvent counts one billing event.
func (m *Metrics) ObserveWebhookEvent(eventType string, processed bool) {
	if m == nil {
		return
	}
	m.webhookEvents.WithLabelValues(eventType, strconv.FormatBool(processed)).Inc()
}

// ObserveHTTPRequest records one served request.
func (m *Metrics) ObserveHTTPRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Package metrics defines the custom Prometheus metrics for the invoice API.
// It is the single source of truth for metric names, labels, and help strings.
//
// Build one Metrics per process with New, passing the registry the /metrics
// endpoint serves. A nil *Metrics is valid and records nothing, which keeps
// unit tests free of registry plumbing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "invoice"

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultError   = "error"

	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

type Metrics struct {
	// ── Auth metrics ─────────────────────────────────────────────────────────

	// authAttempts counts register and login calls.
	// Labels:
	//   - operation: "register" or "login"
	//   - result: "success", "failure" (caller error) or "error" (internal)
	authAttempts *prometheus.CounterVec

	// ── Invoice metrics ──────────────────────────────────────────────────────

	// invoiceOperations counts invoice CRUD calls.
	// Labels:
	//   - operation: "list", "create", "get", "update" or "delete"
	//   - result: "success", "failure" or "error"
	invoiceOperations *prometheus.CounterVec

	// ── Session cache metrics ────────────────────────────────────────────────

	// sessionCache counts session cache lookups.
	// Label:
	//   - result: "hit", "miss" or "error"
	sessionCache *prometheus.CounterVec
}

// New registers every metric with reg. It panics on duplicate registration,
// so call it once per registry.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		authAttempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_attempts_total",
				Help:      "Total number of register and login attempts, by operation and result.",
			},
			[]string{"operation", "result"},
		),
		invoiceOperations: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "invoice_operations_total",
				Help:      "Total number of invoice operations, by operation and result.",
			},
			[]string{"operation", "result"},
		),
		sessionCache: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "session_cache_requests_total",
				Help:      "Total number of session cache lookups, labelled by result (hit/miss/error).",
			},
			[]string{"result"},
		),
	}
}

func (m *Metrics) ObserveAuth(operation, result string) {
	if m == nil {
		return
	}
	m.authAttempts.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) ObserveInvoice(operation, result string) {
	if m == nil {
		return
	}
	m.invoiceOperations.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) ObserveSessionCache(result string) {
	if m == nil {
		return
	}
	m.sessionCache.WithLabelValues(result).Inc()
}

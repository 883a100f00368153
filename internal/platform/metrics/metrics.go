// Package metrics holds the Prometheus collectors of the billing service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "property_billing"

// Ledger scopes.
const (
	ScopeUnit      = "unit"
	ScopeOwner     = "owner"
	ScopePortfolio = "portfolio"
	ScopeOccupant  = "occupant"
)

// Payment kinds.
const (
	PaymentSingle       = "single"
	PaymentConsolidated = "consolidated"
)

// Metrics groups the collectors and the registry they are registered with.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	ledgersComputed        *prometheus.CounterVec
	paymentsRecorded       *prometheus.CounterVec
	consolidatedRejections *prometheus.CounterVec
	balancesRefreshed      prometheus.Counter
	balanceRefreshDuration prometheus.Histogram
}

// New creates the collectors on a fresh registry, along with the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ledgersComputed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledgers_computed_total",
			Help:      "Number of ledger computations, by scope.",
		}, []string{"scope"}),
		paymentsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_recorded_total",
			Help:      "Number of payments persisted, by kind.",
		}, []string{"kind"}),
		consolidatedRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "consolidated_payment_rejections_total",
			Help:      "Consolidated payments refused before any write, by reason.",
		}, []string{"reason"}),
		balancesRefreshed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balances_refreshed_total",
			Help:      "Number of occupant balance caches recomputed.",
		}),
		balanceRefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "balance_refresh_duration_seconds",
			Help:      "Duration of full balance cache refreshes.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 300},
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ledgersComputed,
		m.paymentsRecorded,
		m.consolidatedRejections,
		m.balancesRefreshed,
		m.balanceRefreshDuration,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// LedgerComputed counts one ledger computation.
func (m *Metrics) LedgerComputed(scope string) {
	if m == nil {
		return
	}
	m.ledgersComputed.WithLabelValues(scope).Inc()
}

// PaymentRecorded counts one persisted payment.
func (m *Metrics) PaymentRecorded(kind string) {
	if m == nil {
		return
	}
	m.paymentsRecorded.WithLabelValues(kind).Inc()
}

// ConsolidatedRejected counts a refused consolidated payment.
func (m *Metrics) ConsolidatedRejected(reason string) {
	if m == nil {
		return
	}
	m.consolidatedRejections.WithLabelValues(reason).Inc()
}

// BalanceRefreshDone records a completed refresh run.
func (m *Metrics) BalanceRefreshDone(updated int, took time.Duration) {
	if m == nil {
		return
	}
	m.balancesRefreshed.Add(float64(updated))
	m.balanceRefreshDuration.Observe(took.Seconds())
}

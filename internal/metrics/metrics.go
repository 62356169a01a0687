// Package metrics exposes Prometheus counters and histograms for model calls, lineup edits and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for model calls.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
	OutcomeStale = "stale"
)

// Manager owns one registry and every collector registered on it.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	modelCalls       *prometheus.CounterVec
	modelLatency     *prometheus.HistogramVec
	busyRejections   *prometheus.CounterVec
	lineupMutations  *prometheus.CounterVec
	reconcileDropped *prometheus.CounterVec
	rosterSize       prometheus.Gauge
	occupiedSlots    prometheus.Gauge

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Option configures a Manager.
type Option func(*Manager)

// WithNamespace sets the metric namespace.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets latency buckets, in seconds.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithRegistry registers collectors on registry instead of a fresh one.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// NewManager creates a Manager with its own registry, so Go runtime collectors stay out
// of the exposition unless the caller adds them.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "squad",
		histogramBuckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.modelCalls = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "model_calls_total",
		Help:      "Model-backed actions by action and outcome",
	}, []string{"action", "outcome"})

	m.modelLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "model_call_duration_seconds",
		Help:      "Duration of model-backed actions",
		Buckets:   m.histogramBuckets,
	}, []string{"action"})

	m.busyRejections = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "busy_rejections_total",
		Help:      "Requests rejected because the same action was already in flight",
	}, []string{"action"})

	m.lineupMutations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "lineup",
		Name:      "mutations_total",
		Help:      "Lineup edits by operation",
	}, []string{"op"})

	m.reconcileDropped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "lineup",
		Name:      "reconcile_dropped_total",
		Help:      "Proposal entries dropped during reconciliation, by reason",
	}, []string{"reason"})

	m.rosterSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "roster",
		Name:      "candidates",
		Help:      "Candidates on the roster",
	})

	m.occupiedSlots = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "lineup",
		Name:      "occupied_slots",
		Help:      "Slots currently filled",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status code",
	}, []string{"route", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})
}

// ObserveModelCall records one model-backed action.
func (m *Manager) ObserveModelCall(action, outcome string, elapsed time.Duration) {
	m.modelCalls.WithLabelValues(action, outcome).Inc()
	m.modelLatency.WithLabelValues(action).Observe(elapsed.Seconds())
}

// RecordBusy counts a rejected concurrent request.
func (m *Manager) RecordBusy(action string) {
	m.busyRejections.WithLabelValues(action).Inc()
}

// RecordMutation counts a lineup edit.
func (m *Manager) RecordMutation(op string) {
	m.lineupMutations.WithLabelValues(op).Inc()
}

// RecordDropped counts a proposal entry dropped during reconciliation.
func (m *Manager) RecordDropped(reason string) {
	m.reconcileDropped.WithLabelValues(reason).Inc()
}

// SetRosterSize sets the roster gauge.
func (m *Manager) SetRosterSize(n int) {
	m.rosterSize.Set(float64(n))
}

// SetOccupied sets the occupied-slot gauge.
func (m *Manager) SetOccupied(n int) {
	m.occupiedSlots.Set(float64(n))
}

// ObserveHTTP records one served request.
func (m *Manager) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// Registry returns the registry the collectors live on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

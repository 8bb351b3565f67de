// Package metrics exposes Prometheus collectors for schedule runs and the
// HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns the collectors and the registry they live in.
type Manager struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	scheduleRuns     *prometheus.CounterVec
	slotsAssigned    prometheus.Counter
	slotsUnmet       prometheus.Counter
	scheduleDuration prometheus.Histogram
	fairnessScore    prometheus.Gauge

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewManager creates a manager backed by its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "scheduler",
		buckets:   prometheus.DefBuckets,
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	auto := promauto.With(m.registry)
	m.scheduleRuns = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "runs_total",
		Help:      "Schedules generated, by request source",
	}, []string{"source"})
	m.slotsAssigned = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "slots_assigned_total",
		Help:      "Shift slots handed out to employees",
	})
	m.slotsUnmet = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "slots_unmet_total",
		Help:      "Requested shift slots left unstaffed",
	})
	m.scheduleDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "run_duration_seconds",
		Help:      "Time spent generating one schedule",
		Buckets:   m.buckets,
	})
	m.fairnessScore = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "last_fairness_score",
		Help:      "Fairness score (0-100) of the most recent run",
	})
	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route and method",
		Buckets:   m.buckets,
	}, []string{"route", "method"})

	return m
}

// Registry returns the underlying registry.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRun records the outcome of one schedule run.
func (m *Manager) ObserveRun(source string, assigned, unmet int, fairness float64, took time.Duration) {
	m.scheduleRuns.WithLabelValues(source).Inc()
	m.slotsAssigned.Add(float64(assigned))
	m.slotsUnmet.Add(float64(unmet))
	m.fairnessScore.Set(fairness)
	m.scheduleDuration.Observe(took.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// GinMiddleware counts and times every request by its route pattern.
func (m *Manager) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpRequestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

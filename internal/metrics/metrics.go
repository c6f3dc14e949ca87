// Package metrics exposes Prometheus metrics for the review flow and HTTP layer.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	reviewsTotal      *prometheus.CounterVec
	badgesAwarded     *prometheus.CounterVec
	sessionsStarted   prometheus.Counter
	sessionsCompleted *prometheus.CounterVec
	progressConflicts prometheus.Counter
	httpDuration      *prometheus.HistogramVec
}

// New creates the collectors and registers them with registry.
func New(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) initMetrics() {
	m.reviewsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "birdguide_reviews_total",
			Help: "Total number of flashcard reviews recorded",
		},
		[]string{"result"},
	)

	m.badgesAwarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "birdguide_badges_awarded_total",
			Help: "Total number of badges awarded",
		},
		[]string{"badge"},
	)

	m.sessionsStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "birdguide_sessions_started_total",
		Help: "Total number of flashcard sessions started",
	})

	m.sessionsCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "birdguide_sessions_completed_total",
			Help: "Total number of flashcard sessions completed",
		},
		[]string{"reason"}, // reason: user, expired
	)

	m.progressConflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "birdguide_progress_conflicts_total",
		Help: "Progress updates that lost a concurrent write and were retried",
	})

	m.httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "birdguide_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		},
		[]string{"method", "route", "status"},
	)
}

// Describe implements the Collector interface
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.reviewsTotal.Describe(ch)
	m.badgesAwarded.Describe(ch)
	m.sessionsStarted.Describe(ch)
	m.sessionsCompleted.Describe(ch)
	m.progressConflicts.Describe(ch)
	m.httpDuration.Describe(ch)
}

// Collect implements the Collector interface
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.reviewsTotal.Collect(ch)
	m.badgesAwarded.Collect(ch)
	m.sessionsStarted.Collect(ch)
	m.sessionsCompleted.Collect(ch)
	m.progressConflicts.Collect(ch)
	m.httpDuration.Collect(ch)
}

// RecordReview counts a committed review.
func (m *Metrics) RecordReview(result string) {
	if m == nil {
		return
	}
	m.reviewsTotal.WithLabelValues(result).Inc()
}

// RecordBadge counts an awarded badge.
func (m *Metrics) RecordBadge(name string) {
	if m == nil {
		return
	}
	m.badgesAwarded.WithLabelValues(name).Inc()
}

func (m *Metrics) RecordSessionStarted() {
	if m == nil {
		return
	}
	m.sessionsStarted.Inc()
}

// RecordSessionCompleted counts a closed session. reason is "user" or "expired".
func (m *Metrics) RecordSessionCompleted(reason string) {
	if m == nil {
		return
	}
	m.sessionsCompleted.WithLabelValues(reason).Inc()
}

func (m *Metrics) RecordProgressConflict() {
	if m == nil {
		return
	}
	m.progressConflicts.Inc()
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry:      m.registry,
		ErrorHandling: promhttp.HTTPErrorOnError,
	})
}

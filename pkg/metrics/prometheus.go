// Package metrics provides Prometheus metrics for the WeHack event service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the WeHack service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Lifecycle Metrics - Event phase machine activity
	phaseTransitions       *prometheus.CounterVec
	phaseTransitionsDenied prometheus.Counter

	// Submission Metrics - What really matters for a hackathon
	submissionsCreated prometheus.Counter
	submissionsEdited  prometheus.Counter
	submissionsUndone  prometheus.Counter
	validationFailures *prometheus.CounterVec
	submissionsLimited prometheus.Counter

	// Scoring Metrics
	judgeScores        prometheus.Counter
	leaderboardQueries prometheus.Counter

	// Discussion Metrics
	commentsAdded prometheus.Counter

	// Notification Metrics - Fan-out health
	broadcasts        prometheus.Counter
	deliveries        *prometheus.CounterVec
	deliveryFailures  *prometheus.CounterVec
	observersApproved prometheus.Counter

	// Outbox Metrics - async direct-mail queue
	outboxDepth    prometheus.Gauge
	outboxEnqueues prometheus.Counter
	outboxDropped  prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "wehack",
		subsystem:        "events",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Lifecycle Metrics
	m.phaseTransitions = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "phase_transitions_total",
			Help:      "Total number of successful event phase transitions by action",
		},
		[]string{"action"},
	)

	m.phaseTransitionsDenied = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "phase_transitions_denied_total",
		Help:      "Total number of rejected phase transitions (skips and repeats)",
	})

	// Submission Metrics
	m.submissionsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_created_total",
		Help:      "Total number of submissions created",
	})

	m.submissionsEdited = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_edited_total",
		Help:      "Total number of submission edits",
	})

	m.submissionsUndone = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_undone_total",
		Help:      "Total number of submission rollbacks",
	})

	m.validationFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "validation_failures_total",
			Help:      "Total number of submission drafts rejected per check",
		},
		[]string{"check"},
	)

	m.submissionsLimited = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_rate_limited_total",
		Help:      "Total number of submissions rejected by the cooldown guard",
	})

	// Scoring Metrics
	m.judgeScores = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "judge_scores_total",
		Help:      "Total number of judge score records accepted",
	})

	m.leaderboardQueries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_queries_total",
		Help:      "Total number of leaderboard reads",
	})

	// Discussion Metrics
	m.commentsAdded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "comments_total",
		Help:      "Total number of discussion comments added",
	})

	// Notification Metrics
	m.broadcasts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "broadcasts_total",
		Help:      "Total number of fan-out broadcasts started",
	})

	m.deliveries = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "deliveries_total",
			Help:      "Total number of successful deliveries by sender kind",
		},
		[]string{"kind"},
	)

	m.deliveryFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "delivery_failures_total",
			Help:      "Total number of failed deliveries by sender kind",
		},
		[]string{"kind"},
	)

	m.observersApproved = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "observers_approved_total",
		Help:      "Total number of judge approvals",
	})

	// Outbox Metrics
	m.outboxDepth = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "outbox_depth",
		Help:      "Current number of direct notifications waiting in the outbox",
	})

	m.outboxEnqueues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "outbox_enqueues_total",
		Help:      "Total number of direct notifications queued for delivery",
	})

	m.outboxDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "outbox_dropped_total",
		Help:      "Total number of direct notifications dropped by a full or closed outbox",
	})

	// HTTP Performance Metrics - User experience indicators
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds (user experience)",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// RecordPhaseTransition increments the transition counter for an action.
func RecordPhaseTransition(action string) {
	globalManager.phaseTransitions.WithLabelValues(action).Inc()
}

// RecordPhaseTransitionDenied increments the denied transition counter.
func RecordPhaseTransitionDenied() {
	globalManager.phaseTransitionsDenied.Inc()
}

// RecordSubmissionCreated increments the submissions created counter.
func RecordSubmissionCreated() {
	globalManager.submissionsCreated.Inc()
}

// RecordSubmissionEdited increments the submissions edited counter.
func RecordSubmissionEdited() {
	globalManager.submissionsEdited.Inc()
}

// RecordSubmissionUndone increments the rollback counter.
func RecordSubmissionUndone() {
	globalManager.submissionsUndone.Inc()
}

// RecordValidationFailure increments the failure counter for a check.
func RecordValidationFailure(check string) {
	globalManager.validationFailures.WithLabelValues(check).Inc()
}

// RecordRateLimited increments the cooldown rejection counter.
func RecordRateLimited() {
	globalManager.submissionsLimited.Inc()
}

// RecordJudgeScore increments the accepted score counter.
func RecordJudgeScore() {
	globalManager.judgeScores.Inc()
}

// RecordLeaderboardQuery increments the leaderboard read counter.
func RecordLeaderboardQuery() {
	globalManager.leaderboardQueries.Inc()
}

// RecordCommentAdded increments the discussion comment counter.
func RecordCommentAdded() {
	globalManager.commentsAdded.Inc()
}

// RecordBroadcast increments the broadcast counter.
func RecordBroadcast() {
	globalManager.broadcasts.Inc()
}

// RecordDelivery increments the delivery counter for a sender kind.
func RecordDelivery(kind string) {
	globalManager.deliveries.WithLabelValues(kind).Inc()
}

// RecordDeliveryFailure increments the failure counter for a sender kind.
func RecordDeliveryFailure(kind string) {
	globalManager.deliveryFailures.WithLabelValues(kind).Inc()
}

// RecordObserverApproved increments the judge approval counter.
func RecordObserverApproved() {
	globalManager.observersApproved.Inc()
}

// UpdateOutboxDepth sets the current outbox queue depth.
func UpdateOutboxDepth(n int) {
	globalManager.outboxDepth.Set(float64(n))
}

// RecordOutboxEnqueue increments the outbox enqueue counter.
func RecordOutboxEnqueue() {
	globalManager.outboxEnqueues.Inc()
}

// RecordOutboxDropped increments the outbox drop counter.
func RecordOutboxDropped() {
	globalManager.outboxDropped.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package metrics provides Prometheus metrics for the score-sheet
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Core business metrics
	totalsComputed  prometheus.Counter
	eventsScored    prometheus.Counter
	templatesSaved  prometheus.Counter
	matrixBuilds    prometheus.Counter
	generateCalls   prometheus.Counter
	generateFailed  prometheus.Counter
	rejectedWrites  prometheus.Counter
	scoringErrors   prometheus.Counter
	storeErrors     prometheus.Counter

	// Business scale gauges
	totalTemplates prometheus.Gauge
	totalEvents    prometheus.Gauge

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System performance metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Registry exposes the registry backing the global manager for the
// /metrics handler.
func Registry() *prometheus.Registry {
	return customRegistry
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "scoresheet",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.totalsComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "totals_computed_total",
		Help:      "Total number of sheet-total computations",
	})

	m.eventsScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_scored_total",
		Help:      "Total number of score sheets submitted or resubmitted",
	})

	m.templatesSaved = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "templates_saved_total",
		Help:      "Total number of template saves",
	})

	m.matrixBuilds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matrix_builds_total",
		Help:      "Total number of judge comparison matrices built",
	})

	m.generateCalls = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "generate_requests_total",
		Help:      "Total number of AI template generation requests",
	})

	m.generateFailed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "generate_failures_total",
		Help:      "Total number of failed or rejected generation requests",
	})

	m.rejectedWrites = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rejected_writes_total",
		Help:      "Total number of out-of-range score entries rejected",
	})

	m.scoringErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_errors_total",
		Help:      "Total number of scoring errors",
	})

	m.storeErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_errors_total",
		Help:      "Total number of persistence errors",
	})

	m.totalTemplates = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "total_templates",
		Help:      "Total number of stored templates",
	})

	m.totalEvents = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "total_events",
		Help:      "Total number of stored competition events",
	})

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
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})
}

// RecordTotalComputed increments the total-computation counter.
func RecordTotalComputed() {
	globalManager.totalsComputed.Inc()
}

// RecordEventScored increments the scored-sheets counter.
func RecordEventScored() {
	globalManager.eventsScored.Inc()
}

// RecordTemplateSaved increments the template saves counter.
func RecordTemplateSaved() {
	globalManager.templatesSaved.Inc()
}

// RecordMatrixBuild increments the matrix builds counter.
func RecordMatrixBuild() {
	globalManager.matrixBuilds.Inc()
}

// RecordGenerateRequest increments the generation requests counter.
func RecordGenerateRequest() {
	globalManager.generateCalls.Inc()
}

// RecordGenerateFailure increments the generation failures counter.
func RecordGenerateFailure() {
	globalManager.generateFailed.Inc()
}

// RecordRejectedWrite increments the rejected out-of-range entry counter.
func RecordRejectedWrite() {
	globalManager.rejectedWrites.Inc()
}

// RecordScoringError increments the scoring errors counter.
func RecordScoringError() {
	globalManager.scoringErrors.Inc()
}

// RecordStoreError increments the persistence errors counter.
func RecordStoreError() {
	globalManager.storeErrors.Inc()
}

// UpdateTotalTemplates sets the stored template count.
func UpdateTotalTemplates(count int) {
	globalManager.totalTemplates.Set(float64(count))
}

// UpdateTotalEvents sets the stored event count.
func UpdateTotalEvents(count int) {
	globalManager.totalEvents.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// UpdateSystemMemoryUsage sets current memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the current goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// Package metrics provides Prometheus metrics for the lexrec recommendation service.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Circuit breaker states as exported by the breaker_state gauge.
const (
	BreakerClosed   = 0
	BreakerHalfOpen = 1
	BreakerOpen     = 2
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Recommendation outcomes
	recommendations   *prometheus.CounterVec
	tierOutcomes      *prometheus.CounterVec
	recommendLatency  prometheus.Histogram
	similarityScores  prometheus.Histogram
	candidatesScored  prometheus.Histogram
	trendingFallbacks prometheus.Counter
	trendingExhausted prometheus.Counter
	vocabularySize    prometheus.Histogram

	// Content source health
	fetchErrors  *prometheus.CounterVec
	fetchLatency *prometheus.HistogramVec
	breakerState *prometheus.GaugeVec
	contentItems prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	rateLimited         *prometheus.CounterVec

	// Error Metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
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
		namespace:        "lexrec",
		subsystem:        "recommend",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.recommendations = auto.NewCounterVec(
		m.counterOpts("recommendations_total", "Recommendation results returned, by strategy that produced them"),
		[]string{"type"},
	)
	m.tierOutcomes = auto.NewCounterVec(
		m.counterOpts("tier_outcomes_total", "Outcome of each fallback tier attempt (hit, empty, error, skipped)"),
		[]string{"tier", "outcome"},
	)
	m.recommendLatency = auto.NewHistogram(
		m.histogramOpts("latency_milliseconds", "End-to-end personalized recommendation latency in milliseconds", m.histogramBuckets),
	)
	m.similarityScores = auto.NewHistogram(
		m.histogramOpts("similarity_score", "Distribution of user/content similarity scores",
			[]float64{0.05, 0.1, 0.15, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1}),
	)
	m.candidatesScored = auto.NewHistogram(
		m.histogramOpts("candidates_scored", "Candidate pool size scored per similarity tier attempt",
			prometheus.ExponentialBuckets(1, 2, 10)),
	)
	m.vocabularySize = auto.NewHistogram(
		m.histogramOpts("vocabulary_size", "Vocabulary size of per-request TF-IDF builds",
			prometheus.ExponentialBuckets(8, 2, 10)),
	)
	m.trendingFallbacks = auto.NewCounter(
		m.counterOpts("trending_fallbacks_total", "Trending requests that fell back to the popular sort"),
	)
	m.trendingExhausted = auto.NewCounter(
		m.counterOpts("trending_exhausted_total", "Trending requests that returned nothing because both sorts failed"),
	)

	m.fetchErrors = auto.NewCounterVec(
		m.counterOpts("fetch_errors_total", "Content fetch failures by source and sort key"),
		[]string{"source", "sort_by"},
	)
	m.fetchLatency = auto.NewHistogramVec(
		m.histogramOpts("fetch_latency_milliseconds", "Content fetch latency in milliseconds", m.histogramBuckets),
		[]string{"source"},
	)
	m.breakerState = auto.NewGaugeVec(
		m.gaugeOpts("breaker_state", "Content source circuit breaker state (0 closed, 1 half-open, 2 open)"),
		[]string{"name"},
	)
	m.contentItems = auto.NewGauge(
		m.gaugeOpts("content_items", "Number of content items held by the local content store"),
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)
	m.rateLimited = auto.NewCounterVec(
		m.counterOpts("http_rate_limited_total", "Requests rejected by the rate limiter"),
		[]string{"endpoint"},
	)

	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Errors by type and severity"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Errors by HTTP endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		m.histogramOpts("error_latency_milliseconds", "Latency of failed operations in milliseconds", m.histogramBuckets),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
			[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}),
	)
}

// RecordRecommendation counts a returned recommendation result by type.
func RecordRecommendation(recType string) {
	globalManager.recommendations.WithLabelValues(recType).Inc()
}

// RecordTierOutcome counts one tier attempt.
func RecordTierOutcome(tier, outcome string) {
	globalManager.tierOutcomes.WithLabelValues(tier, outcome).Inc()
}

// RecordRecommendLatency records personalized recommendation latency in milliseconds.
func RecordRecommendLatency(latencyMs float64) {
	globalManager.recommendLatency.Observe(latencyMs)
}

// RecordSimilarityScore records one computed similarity score.
func RecordSimilarityScore(score float64) {
	globalManager.similarityScores.Observe(score)
}

// RecordCandidatesScored records the size of a scored candidate pool.
func RecordCandidatesScored(n int) {
	globalManager.candidatesScored.Observe(float64(n))
}

// RecordVocabularySize records the size of a TF-IDF vocabulary build.
func RecordVocabularySize(n int) {
	globalManager.vocabularySize.Observe(float64(n))
}

// RecordTrendingFallback counts a trending request served by the popular sort.
func RecordTrendingFallback() {
	globalManager.trendingFallbacks.Inc()
}

// RecordTrendingExhausted counts a trending request that returned nothing.
func RecordTrendingExhausted() {
	globalManager.trendingExhausted.Inc()
}

// RecordFetchError counts a failed content fetch.
func RecordFetchError(source, sortBy string) {
	globalManager.fetchErrors.WithLabelValues(source, sortBy).Inc()
}

// RecordFetchLatency records content fetch latency in milliseconds.
func RecordFetchLatency(source string, latencyMs float64) {
	globalManager.fetchLatency.WithLabelValues(source).Observe(latencyMs)
}

// UpdateBreakerState sets the state gauge of the named circuit breaker.
func UpdateBreakerState(name string, state int) {
	globalManager.breakerState.WithLabelValues(name).Set(float64(state))
}

// UpdateContentItems sets the number of items held by the local store.
func UpdateContentItems(count int) {
	globalManager.contentItems.Set(float64(count))
}

// RecordHTTPRequest increments the HTTP requests counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordRateLimited counts a request rejected by the rate limiter.
func RecordRateLimited(endpoint string) {
	globalManager.rateLimited.WithLabelValues(endpoint).Inc()
}

// RecordErrorByType increments the error counter for a specific error type.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint increments the error counter for a specific endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of a failed operation.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the current memory usage.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the current goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records a GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// BreakerStateValue maps a circuit breaker state name to its gauge value.
func BreakerStateValue(state string) (int, error) {
	switch state {
	case "closed":
		return BreakerClosed, nil
	case "half-open":
		return BreakerHalfOpen, nil
	case "open":
		return BreakerOpen, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownBreakerState, state)
	}
}

package metrics

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ResultSource labels where a served result set came from. Callers never see
// provenance in the data itself, so the metric is the only place it surfaces.
type ResultSource string

const (
	// SourceLive marks results fetched from the upstream API.
	SourceLive ResultSource = "live"
	// SourceCache marks results served from the result cache.
	SourceCache ResultSource = "cache"
	// SourceFallback marks results served from the static fallback catalog.
	SourceFallback ResultSource = "fallback"
)

// CacheOperation identifies the cache method being instrumented.
type CacheOperation string

const (
	// CacheOperationLookup records result cache lookup calls.
	CacheOperationLookup CacheOperation = "lookup"
	// CacheOperationStore records result cache store attempts.
	CacheOperationStore CacheOperation = "store"
)

// CacheLookupOutcome captures the result of a cache lookup.
type CacheLookupOutcome string

const (
	// CacheLookupHit indicates the lookup reused a memoized result set.
	CacheLookupHit CacheLookupOutcome = "hit"
	// CacheLookupMiss indicates no fresh result set was present.
	CacheLookupMiss CacheLookupOutcome = "miss"
	// CacheLookupError indicates the lookup failed due to an error.
	CacheLookupError CacheLookupOutcome = "error"
)

// CacheStoreOutcome captures the result of a cache store attempt.
type CacheStoreOutcome string

const (
	// CacheStoreStored indicates the result set was memoized.
	CacheStoreStored CacheStoreOutcome = "stored"
	// CacheStoreError indicates the store operation failed.
	CacheStoreError CacheStoreOutcome = "error"
)

// Recorder publishes Prometheus metrics for provider activity. A nil Recorder
// is valid and records nothing, so library consumers can opt out.
type Recorder struct {
	gatherer prometheus.Gatherer
	handler  http.Handler

	contentRequests *prometheus.CounterVec
	contentLatency  *prometheus.HistogramVec

	cacheOperations *prometheus.CounterVec
	cacheLatency    *prometheus.HistogramVec
}

// NewRecorder constructs a Prometheus-backed Recorder. When reg is nil a
// dedicated registry is created so multiple recorders can coexist without
// conflicting with the global default registerer.
func NewRecorder(reg *prometheus.Registry) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	reg.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	contentRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contentd",
		Subsystem: "content",
		Name:      "requests_total",
		Help:      "Provider requests served, by provider, operation, and result source.",
	}, []string{"provider", "operation", "source"})

	contentLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "contentd",
		Subsystem: "content",
		Name:      "request_duration_seconds",
		Help:      "Latency distribution for completed provider requests.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"provider", "operation"})

	cacheOperations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contentd",
		Subsystem: "cache",
		Name:      "operations_total",
		Help:      "Result cache operations executed by the providers.",
	}, []string{"provider", "operation", "result"})

	cacheLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "contentd",
		Subsystem: "cache",
		Name:      "operation_duration_seconds",
		Help:      "Latency distribution for result cache operations.",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
	}, []string{"provider", "operation", "result"})

	reg.MustRegister(contentRequests, contentLatency, cacheOperations, cacheLatency)

	handler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})

	return &Recorder{
		gatherer:        reg,
		handler:         handler,
		contentRequests: contentRequests,
		contentLatency:  contentLatency,
		cacheOperations: cacheOperations,
		cacheLatency:    cacheLatency,
	}
}

// Handler exposes the Prometheus HTTP handler for the recorder's registry.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "metrics unavailable", http.StatusServiceUnavailable)
		})
	}
	return r.handler
}

// Gatherer returns the underlying Prometheus gatherer for tests and advanced
// integrations.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	if r == nil {
		return prometheus.NewRegistry()
	}
	return r.gatherer
}

// ObserveRequest records the source and latency of a completed provider call.
func (r *Recorder) ObserveRequest(provider, operation string, source ResultSource, duration time.Duration) {
	if r == nil {
		return
	}
	providerLabel := normalizeLabel(provider)
	operationLabel := normalizeLabel(operation)
	sourceLabel := string(source)
	if sourceLabel == "" {
		sourceLabel = string(SourceLive)
	}
	r.contentRequests.WithLabelValues(providerLabel, operationLabel, sourceLabel).Inc()
	r.contentLatency.WithLabelValues(providerLabel, operationLabel).Observe(duration.Seconds())
}

// ObserveCacheLookup records the result of a cache lookup.
func (r *Recorder) ObserveCacheLookup(provider string, result CacheLookupOutcome, duration time.Duration) {
	if r == nil {
		return
	}
	resultLabel := string(result)
	if resultLabel == "" {
		resultLabel = string(CacheLookupMiss)
	}
	r.observeCache(normalizeLabel(provider), CacheOperationLookup, resultLabel, duration)
}

// ObserveCacheStore records the result of a cache store attempt.
func (r *Recorder) ObserveCacheStore(provider string, result CacheStoreOutcome, duration time.Duration) {
	if r == nil {
		return
	}
	resultLabel := string(result)
	if resultLabel == "" {
		resultLabel = string(CacheStoreError)
	}
	r.observeCache(normalizeLabel(provider), CacheOperationStore, resultLabel, duration)
}

func (r *Recorder) observeCache(provider string, operation CacheOperation, result string, duration time.Duration) {
	opLabel := string(operation)
	if opLabel == "" {
		opLabel = string(CacheOperationLookup)
	}
	resLabel := normalizeLabel(result)
	r.cacheOperations.WithLabelValues(provider, opLabel, resLabel).Inc()
	r.cacheLatency.WithLabelValues(provider, opLabel, resLabel).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "unknown"
	}
	return trimmed
}

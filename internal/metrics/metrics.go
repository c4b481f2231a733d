package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Mirror service metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "mirror",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jan",
			Subsystem: "mirror",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	// Embedding duration
	EmbeddingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "jan",
			Subsystem: "mirror",
			Name:      "embedding_duration_seconds",
			Help:      "Embedding computation duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10},
		},
	)

	// Embedding failures that fell back to storing text only
	EmbeddingFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "mirror",
			Name:      "embedding_failures_total",
			Help:      "Embedding generation failures by reason",
		},
		[]string{"reason"},
	)

	// Vector search duration
	VectorSearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "jan",
			Subsystem: "mirror",
			Name:      "vector_search_duration_seconds",
			Help:      "Vector search duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2},
		},
	)

	// Recall operations by source (similar | recent)
	RecallTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "mirror",
			Name:      "recall_total",
			Help:      "Journal recall operations by result source",
		},
		[]string{"source"},
	)

	// Cache hits
	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "mirror",
			Name:      "cache_hits_total",
			Help:      "Total cache hits",
		},
		[]string{"cache_type"},
	)

	// Cache misses
	CacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "mirror",
			Name:      "cache_misses_total",
			Help:      "Total cache misses",
		},
		[]string{"cache_type"},
	)

	// Persona selections
	PersonaSelectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "mirror",
			Name:      "persona_selections_total",
			Help:      "Persona selections recorded by the analytics sink",
		},
		[]string{"persona"},
	)

	// LLM fallbacks
	LLMFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "mirror",
			Name:      "llm_fallbacks_total",
			Help:      "Generations that fell back to canned content",
		},
		[]string{"purpose"},
	)

	// Archived journal entries
	ArchivedEntriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "mirror",
			Name:      "archived_entries_total",
			Help:      "Journal entries marked archived",
		},
	)
)

// Handler returns the Prometheus metrics handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordEmbedding records embedding computation time
func RecordEmbedding(durationSec float64) {
	EmbeddingDuration.Observe(durationSec)
}

// RecordEmbeddingFailure counts an embedding that could not be produced
func RecordEmbeddingFailure(reason string) {
	EmbeddingFailuresTotal.WithLabelValues(reason).Inc()
}

// RecordVectorSearch records vector search time
func RecordVectorSearch(durationSec float64) {
	VectorSearchDuration.Observe(durationSec)
}

// RecordRecall records which read path served a recall
func RecordRecall(source string) {
	RecallTotal.WithLabelValues(source).Inc()
}

// RecordCacheHit records a cache hit
func RecordCacheHit(cacheType string) {
	CacheHitsTotal.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss(cacheType string) {
	CacheMissesTotal.WithLabelValues(cacheType).Inc()
}

// RecordPersonaSelection counts a persona selection
func RecordPersonaSelection(persona string) {
	PersonaSelectionsTotal.WithLabelValues(persona).Inc()
}

// RecordLLMFallback counts a generation that used fallback content
func RecordLLMFallback(purpose string) {
	LLMFallbacksTotal.WithLabelValues(purpose).Inc()
}

// RecordArchived adds to the archived entries counter
func RecordArchived(count int64) {
	if count > 0 {
		ArchivedEntriesTotal.Add(float64(count))
	}
}

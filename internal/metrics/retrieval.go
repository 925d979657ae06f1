package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Answer outcome label values.
const (
	OutcomeAnswered = "answered"
	OutcomeNoMatch  = "no_match"
	OutcomeEmpty    = "empty"
	OutcomeError    = "error"
)

// Retrieval Prometheus metrics.
var (
	AnswersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "faqdex",
			Name:      "answers_total",
			Help:      "Total number of answered questions by outcome",
		},
		[]string{"outcome"},
	)

	CitationsPerAnswer = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "faqdex",
			Name:      "citations_per_answer",
			Help:      "Number of citations returned per matched answer",
			Buckets:   []float64{1, 2, 3, 5, 10, 20},
		},
	)

	DocumentLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "faqdex",
			Name:      "document_loads_total",
			Help:      "Total number of document source loads",
		},
		[]string{"source", "result"},
	)

	DocumentLoadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "faqdex",
			Name:      "document_load_duration_seconds",
			Help:      "Document source load duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"source"},
	)

	DocumentCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "faqdex",
			Name:      "document_cache_total",
			Help:      "Cached document set hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	RateLimitedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "faqdex",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		},
		[]string{"scope"}, // "client" / "global"
	)
)

var registerRetrievalOnce sync.Once

// RegisterRetrievalMetrics registers the retrieval metrics. Safe to call more than once.
func RegisterRetrievalMetrics() {
	registerRetrievalOnce.Do(func() {
		prometheus.MustRegister(AnswersTotal)
		prometheus.MustRegister(CitationsPerAnswer)
		prometheus.MustRegister(DocumentLoadsTotal)
		prometheus.MustRegister(DocumentLoadDuration)
		prometheus.MustRegister(DocumentCacheTotal)
		prometheus.MustRegister(RateLimitedTotal)
	})
}

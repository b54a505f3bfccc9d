package metrics

import "github.com/prometheus/client_golang/prometheus"

// Namespace prefixes every metric exported by the service.
const Namespace = "workermatch"

// Recommendation engine Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "searches_total",
			Help:      "Total number of recommendation searches",
		},
		[]string{"strategy", "outcome"}, // outcome: "ok" / "empty" / "error"
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_duration_seconds",
			Help:      "Recommendation search duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.2, 0.5, 1, 2.5},
		},
		[]string{"strategy"},
	)

	ModelCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "model_cache_total",
			Help:      "Model cache lookups by result",
		},
		[]string{"result"}, // "hit" / "miss" / "error"
	)

	TrainingRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "training_runs_total",
			Help:      "Model training runs by status",
		},
		[]string{"status"}, // "trained" / "cached" / "failed"
	)

	TrainingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "training_duration_seconds",
			Help:      "Model training duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	VocabularySize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "model_vocabulary_size",
			Help:      "Vocabulary size of the current model",
		},
	)

	CorpusSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "model_corpus_size",
			Help:      "Number of worker documents in the current model",
		},
	)

	RateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-client rate limiter",
		},
	)
)

var recommendMetricsRegistered bool

// RegisterRecommendMetrics registers recommendation metrics. Must be called once from main.
func RegisterRecommendMetrics() {
	if recommendMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(ModelCacheTotal)
	prometheus.MustRegister(TrainingRunsTotal)
	prometheus.MustRegister(TrainingDuration)
	prometheus.MustRegister(VocabularySize)
	prometheus.MustRegister(CorpusSize)
	prometheus.MustRegister(RateLimitedTotal)
	recommendMetricsRegistered = true
}

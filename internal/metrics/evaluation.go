package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Evaluation outcomes used as the "outcome" label.
const (
	OutcomeFeasible   = "feasible"
	OutcomeInfeasible = "infeasible"
	OutcomeRejected   = "rejected"
)

// Evaluation Prometheus metrics.
var (
	EvaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "beamdex",
			Name:      "evaluations_total",
			Help:      "Total number of design evaluations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	EvaluationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "beamdex",
			Name:      "evaluation_duration_seconds",
			Help:      "Design evaluation duration in seconds",
			Buckets:   []float64{1e-7, 1e-6, 1e-5, 1e-4, 1e-3, 1e-2, 0.1},
		},
		[]string{"operation"},
	)

	EvaluationBatchSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "beamdex",
			Name:      "evaluation_batch_size",
			Help:      "Number of vectors per batch evaluation",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 11),
		},
	)

	EvaluationCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "beamdex",
			Name:      "evaluation_cache_total",
			Help:      "Evaluation cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var registerEvaluationOnce sync.Once

// RegisterEvaluationMetrics registers evaluation metrics on the default registry.
// Called from main; safe to call more than once.
func RegisterEvaluationMetrics() {
	registerEvaluationOnce.Do(func() {
		prometheus.MustRegister(EvaluationsTotal)
		prometheus.MustRegister(EvaluationDuration)
		prometheus.MustRegister(EvaluationBatchSize)
		prometheus.MustRegister(EvaluationCacheTotal)
	})
}

package evaluation

import (
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/beamdex/internal/domain/beam"
	"github.com/kailas-cloud/beamdex/internal/metrics"
)

// Operation labels.
const (
	OpEvaluate = "evaluate"
	OpFitness  = "fitness"
	OpBatch    = "batch"
)

// outcome classifies an evaluation for metrics.
func outcome(r beam.Result, err error) string {
	switch {
	case err != nil:
		return metrics.OutcomeRejected
	case r.Feasible():
		return metrics.OutcomeFeasible
	default:
		return metrics.OutcomeInfeasible
	}
}

// record updates evaluation metrics and logs rejected candidates at debug level.
func (s *Service) record(op string, start time.Time, vector []float64, r beam.Result, err error) {
	out := outcome(r, err)
	metrics.EvaluationsTotal.WithLabelValues(op, out).Inc()
	metrics.EvaluationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	if err != nil {
		s.logger.Debug("Design rejected",
			zap.String("operation", op),
			zap.Float64s("vector", vector),
			zap.Error(err),
		)
	}
}

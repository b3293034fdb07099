package health

import "context"

// CachePinger checks evaluation cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// EvaluatorChecker checks that the evaluator produces a known result.
type EvaluatorChecker interface {
	Evaluate(ctx context.Context, vector []float64) error
}

package evaluation

import (
	"context"

	"github.com/kailas-cloud/beamdex/internal/domain/beam"
)

// Evaluator computes the result of one raw design vector.
type Evaluator interface {
	Evaluate(ctx context.Context, vector []float64) (beam.Result, error)
}

// Direct adapts the pure beam evaluator to Evaluator.
type Direct struct {
	ev beam.Evaluator
}

// NewDirect returns an Evaluator backed by the beam model with no cache.
func NewDirect() Direct { return Direct{ev: beam.New()} }

// Evaluate ignores ctx; evaluation never blocks.
func (d Direct) Evaluate(_ context.Context, vector []float64) (beam.Result, error) {
	return d.ev.Evaluate(vector) //nolint:wrapcheck // domain errors pass through unchanged
}

// EvaluateDesign exposes the pure model to decorators that decode first.
func (d Direct) EvaluateDesign(design beam.Design) (beam.Result, error) {
	return d.ev.EvaluateDesign(design) //nolint:wrapcheck // domain errors pass through unchanged
}

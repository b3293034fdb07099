package beam

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/beamdex/internal/domain"
)

// Result is the evaluation of one design (immutable value object).
type Result struct {
	design   Design
	inertia  float64
	volume   float64
	g1       float64
	g2       float64
	feasible bool
}

// NewResult rebuilds a Result from stored responses (used by caches).
// Feasibility is recomputed, never trusted from storage.
func NewResult(d Design, inertia, volume, g1, g2 float64) Result {
	return Result{
		design:   d,
		inertia:  inertia,
		volume:   volume,
		g1:       g1,
		g2:       g2,
		feasible: g1 <= StressLimit && g2 <= DeflectionLimit,
	}
}

// Design returns the decoded design that produced the result.
func (r Result) Design() Design { return r.design }

// Inertia returns the section's moment of inertia.
func (r Result) Inertia() float64 { return r.inertia }

// Volume returns the objective value.
func (r Result) Volume() float64 { return r.volume }

// G1 returns the bending stress.
func (r Result) G1() float64 { return r.g1 }

// G2 returns the tip deflection.
func (r Result) G2() float64 { return r.g2 }

// Feasible reports whether both constraints hold.
func (r Result) Feasible() bool { return r.feasible }

// Violation returns the summed amount by which g1 and g2 exceed their limits.
func (r Result) Violation() float64 {
	return violation(r.g1, StressLimit) + violation(r.g2, DeflectionLimit)
}

// Fitness returns volume + Penalty*violation. Equal to Volume for feasible designs.
func (r Result) Fitness() float64 {
	return r.volume + Penalty*r.Violation()
}

// Evaluator maps design vectors to results. It has no state; the zero value is
// ready to use and safe for concurrent use.
type Evaluator struct{}

// New returns an Evaluator.
func New() Evaluator { return Evaluator{} }

// Evaluate validates the vector and computes volume, g1, g2 and feasibility.
func (Evaluator) Evaluate(vector []float64) (Result, error) {
	d, err := Decode(vector)
	if err != nil {
		return Result{}, err
	}
	return EvaluateDesign(d)
}

// EvaluateDesign computes the responses of an already decoded design.
func (Evaluator) EvaluateDesign(d Design) (Result, error) {
	return EvaluateDesign(d)
}

// Fitness returns the penalized scalar for unconstrained optimizers.
// Invalid vectors return an error, not a fallback value.
func (e Evaluator) Fitness(vector []float64) (float64, error) {
	r, err := e.Evaluate(vector)
	if err != nil {
		return 0, err
	}
	return r.Fitness(), nil
}

// Objective is Fitness under the name particle-swarm drivers expect.
func (e Evaluator) Objective(vector []float64) (float64, error) {
	return e.Fitness(vector)
}

// EvaluateDesign computes the responses of a decoded design.
func EvaluateDesign(d Design) (Result, error) {
	inertia := MomentOfInertia(d)
	if !(inertia > 0) || math.IsInf(inertia, 0) {
		return Result{}, fmt.Errorf("moment of inertia %g: %w", inertia, domain.ErrDegenerateSection)
	}
	return NewResult(d, inertia, Volume(d), BendingStress(d.H, inertia), TipDeflection(inertia)), nil
}

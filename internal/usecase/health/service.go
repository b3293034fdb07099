package health

import (
	"context"
	"fmt"
	"math"

	"github.com/kailas-cloud/beamdex/internal/domain/beam"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the cache is unavailable; evaluation still works.
	Degraded Status = "degraded"
	// Unhealthy indicates the evaluator itself is broken.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

const (
	checkEvaluator = "evaluator"
	checkCache     = "cache"
)

// referenceVector is a feasible design with a known volume.
var referenceVector = []float64{7, 7, 12, 2}

const referenceVolume = 1224.0

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	evaluator EvaluatorChecker
	cache     CachePinger
}

// New creates a Service. cache can be nil when caching is disabled.
func New(evaluator EvaluatorChecker, cache CachePinger) *Service {
	return &Service{evaluator: evaluator, cache: cache}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.evaluator.Evaluate(ctx, referenceVector); err != nil {
		checks[checkEvaluator] = CheckError
	} else {
		checks[checkEvaluator] = CheckOK
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks[checkCache] = CheckError
		} else {
			checks[checkCache] = CheckOK
		}
	}

	status := Healthy
	switch {
	case checks[checkEvaluator] == CheckError:
		status = Unhealthy
	case checks[checkCache] == CheckError:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}

// SelfCheck adapts a result-returning evaluator into an EvaluatorChecker that
// verifies the reference design's volume.
type SelfCheck func(ctx context.Context, vector []float64) (beam.Result, error)

// Evaluate implements EvaluatorChecker.
func (f SelfCheck) Evaluate(ctx context.Context, vector []float64) error {
	r, err := f(ctx, vector)
	if err != nil {
		return err
	}
	if math.Abs(r.Volume()-referenceVolume) > 1e-9 || !r.Feasible() {
		return fmt.Errorf("reference design: volume %g feasible %t", r.Volume(), r.Feasible())
	}
	return nil
}

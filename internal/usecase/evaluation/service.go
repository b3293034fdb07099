package evaluation

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/beamdex/internal/domain"
	dombatch "github.com/kailas-cloud/beamdex/internal/domain/batch"
	"github.com/kailas-cloud/beamdex/internal/domain/beam"
	"github.com/kailas-cloud/beamdex/internal/domain/problem"
	"github.com/kailas-cloud/beamdex/internal/metrics"
)

// MaxBatchSize is the default maximum number of vectors per batch.
const MaxBatchSize = 1000

// Service exposes design evaluation to drivers: single, penalized and batch.
type Service struct {
	eval         Evaluator
	workers      int
	maxBatchSize int
	logger       *zap.Logger
}

// New creates an evaluation service. eval may be a cache decorator.
func New(eval Evaluator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		eval:         eval,
		workers:      runtime.GOMAXPROCS(0),
		maxBatchSize: MaxBatchSize,
		logger:       logger,
	}
}

// WithWorkers bounds concurrent evaluations within one batch.
func (s *Service) WithWorkers(n int) *Service {
	if n > 0 {
		s.workers = n
	}
	return s
}

// WithMaxBatchSize configures the maximum batch size.
func (s *Service) WithMaxBatchSize(size int) *Service {
	if size > 0 {
		s.maxBatchSize = size
	}
	return s
}

// MaxBatch returns the configured batch limit.
func (s *Service) MaxBatch() int { return s.maxBatchSize }

// Evaluate returns volume, constraint responses and feasibility for one vector.
func (s *Service) Evaluate(ctx context.Context, vector []float64) (beam.Result, error) {
	start := time.Now()
	r, err := s.eval.Evaluate(ctx, vector)
	s.record(OpEvaluate, start, vector, r, err)
	if err != nil {
		return beam.Result{}, fmt.Errorf("evaluate: %w", err)
	}
	return r, nil
}

// Fitness returns the penalized scalar together with the underlying result.
func (s *Service) Fitness(ctx context.Context, vector []float64) (float64, beam.Result, error) {
	start := time.Now()
	r, err := s.eval.Evaluate(ctx, vector)
	s.record(OpFitness, start, vector, r, err)
	if err != nil {
		return 0, beam.Result{}, fmt.Errorf("fitness: %w", err)
	}
	return r.Fitness(), r, nil
}

// EvaluateBatch evaluates vectors concurrently with per-item error reporting.
// Results are in input order. Items not started before ctx is done carry ctx's error.
func (s *Service) EvaluateBatch(ctx context.Context, vectors [][]float64) ([]dombatch.Result, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("batch is empty: %w", domain.ErrInvalidRequest)
	}
	if len(vectors) > s.maxBatchSize {
		return nil, fmt.Errorf("batch size %d exceeds %d: %w", len(vectors), s.maxBatchSize, domain.ErrInvalidRequest)
	}
	metrics.EvaluationBatchSize.Observe(float64(len(vectors)))

	results := make([]dombatch.Result, len(vectors))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, v := range vectors {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = dombatch.NewError(i, fmt.Errorf("batch cancelled: %w", err))
				return nil
			}
			start := time.Now()
			r, err := s.eval.Evaluate(ctx, v)
			s.record(OpBatch, start, v, r, err)
			if err != nil {
				results[i] = dombatch.NewError(i, err)
				return nil
			}
			results[i] = dombatch.NewOK(i, r)
			return nil
		})
	}
	_ = g.Wait() // goroutines report per item, never fail the group

	sum := dombatch.Summarize(results)
	s.logger.Debug("Batch evaluation completed",
		zap.Int("batch_size", len(vectors)),
		zap.Int("succeeded", sum.Succeeded),
		zap.Int("failed", sum.Failed),
		zap.Int("feasible", sum.Feasible),
	)
	return results, nil
}

// Problem returns the problem metadata contract.
func (s *Service) Problem() problem.Metadata { return problem.Describe() }

// Constants returns the fixed model constants.
func (s *Service) Constants() problem.Constants { return problem.ModelConstants() }

// Variable looks up one decision variable.
func (s *Service) Variable(name string) (problem.DecisionVariable, error) {
	v, err := problem.Describe().Variable(name)
	if err != nil {
		return problem.DecisionVariable{}, fmt.Errorf("variable: %w", err)
	}
	return v, nil
}

// FlangeHeight resolves a flange-height index.
func (s *Service) FlangeHeight(index int) (float64, error) {
	h, err := beam.FlangeHeight(index)
	if err != nil {
		return 0, fmt.Errorf("flange height: %w", err)
	}
	return h, nil
}

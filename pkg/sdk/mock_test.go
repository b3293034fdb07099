package beamdex

import (
	"context"

	dombatch "github.com/kailas-cloud/beamdex/internal/domain/batch"
	"github.com/kailas-cloud/beamdex/internal/domain/beam"
	"github.com/kailas-cloud/beamdex/internal/domain/problem"
	healthuc "github.com/kailas-cloud/beamdex/internal/usecase/health"
)

// --- evaluationUseCase mock ---

type mockEvaluationUC struct {
	evaluateFn func(ctx context.Context, vector []float64) (beam.Result, error)
	fitnessFn  func(ctx context.Context, vector []float64) (float64, beam.Result, error)
	batchFn    func(ctx context.Context, vectors [][]float64) ([]dombatch.Result, error)
}

func (m *mockEvaluationUC) Evaluate(ctx context.Context, vector []float64) (beam.Result, error) {
	return m.evaluateFn(ctx, vector)
}

func (m *mockEvaluationUC) Fitness(ctx context.Context, vector []float64) (float64, beam.Result, error) {
	return m.fitnessFn(ctx, vector)
}

func (m *mockEvaluationUC) EvaluateBatch(ctx context.Context, vectors [][]float64) ([]dombatch.Result, error) {
	return m.batchFn(ctx, vectors)
}

func (m *mockEvaluationUC) Problem() problem.Metadata { return problem.Describe() }

func (m *mockEvaluationUC) Constants() problem.Constants { return problem.ModelConstants() }

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }

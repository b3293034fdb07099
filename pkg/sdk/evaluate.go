package beamdex

import (
	"context"
	"fmt"
	"time"

	dombatch "github.com/kailas-cloud/beamdex/internal/domain/batch"
	"github.com/kailas-cloud/beamdex/internal/domain/beam"
)

// Design is a validated design vector with the flange index resolved.
type Design struct {
	H   float64 // total height
	H1  int     // flange-height index
	FH1 float64 // flange height looked up from H1
	B1  float64 // flange width
	B2  float64 // web width
}

// Result is the evaluation of one design.
type Result struct {
	// ID is a deterministic fingerprint: vectors decoding to the same design share it.
	ID       string
	Design   Design
	Volume   float64
	G1       float64 // bending stress
	G2       float64 // tip deflection
	Feasible bool
	// Fitness is Volume plus the constraint violation penalty.
	Fitness float64
}

// BatchItem is the outcome of one vector in a batch. Exactly one of Result and Err is set.
type BatchItem struct {
	Index  int
	Result *Result
	Err    error
}

// BatchSummary counts batch outcomes.
type BatchSummary struct {
	Succeeded int
	Failed    int
	Feasible  int
}

// Evaluate validates the vector and returns volume, constraints and feasibility.
// Out-of-domain vectors return an error matching ErrDomain or ErrIndex.
func (c *Client) Evaluate(ctx context.Context, vector []float64) (_ Result, err error) {
	start := time.Now()
	defer func() { c.obs.observe("evaluate", start, err) }()

	r, err := c.evalSvc.Evaluate(ctx, vector)
	if err != nil {
		return Result{}, fmt.Errorf("beamdex: %w", err)
	}
	return resultFromDomain(r), nil
}

// Fitness returns the penalized scalar for unconstrained optimizers.
// Invalid vectors return an error, never a fallback value.
func (c *Client) Fitness(ctx context.Context, vector []float64) (_ float64, err error) {
	start := time.Now()
	defer func() { c.obs.observe("fitness", start, err) }()

	f, _, err := c.evalSvc.Fitness(ctx, vector)
	if err != nil {
		return 0, fmt.Errorf("beamdex: %w", err)
	}
	return f, nil
}

// Objective is Fitness without a context, for particle swarm and similar
// drivers that take an Objective([]float64) (float64, error) function.
func (c *Client) Objective(vector []float64) (float64, error) {
	return c.Fitness(context.Background(), vector)
}

// EvaluateBatch evaluates vectors concurrently. Items are in input order;
// per-item failures are reported in BatchItem.Err. The returned error is
// non-nil only for an empty or oversized batch.
func (c *Client) EvaluateBatch(ctx context.Context, vectors [][]float64) (_ []BatchItem, err error) {
	start := time.Now()
	defer func() { c.obs.observe("evaluate_batch", start, err) }()

	results, err := c.evalSvc.EvaluateBatch(ctx, vectors)
	if err != nil {
		return nil, fmt.Errorf("beamdex: %w", err)
	}

	items := make([]BatchItem, len(results))
	for i, r := range results {
		items[i] = BatchItem{Index: r.Index()}
		if r.Status() != dombatch.StatusOK {
			items[i].Err = r.Err()
			continue
		}
		res := resultFromDomain(r.Result())
		items[i].Result = &res
	}
	return items, nil
}

// Summarize counts succeeded, failed and feasible items.
func Summarize(items []BatchItem) BatchSummary {
	var s BatchSummary
	for _, it := range items {
		if it.Err != nil || it.Result == nil {
			s.Failed++
			continue
		}
		s.Succeeded++
		if it.Result.Feasible {
			s.Feasible++
		}
	}
	return s
}

func resultFromDomain(r beam.Result) Result {
	d := r.Design()
	return Result{
		ID: beam.Fingerprint(d).String(),
		Design: Design{
			H:   d.H,
			H1:  d.H1,
			FH1: d.FH1,
			B1:  d.B1,
			B2:  d.B2,
		},
		Volume:   r.Volume(),
		G1:       r.G1(),
		G2:       r.G2(),
		Feasible: r.Feasible(),
		Fitness:  r.Fitness(),
	}
}

package beamdex

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/beamdex/internal/metrics"
)

func newTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	c, err := New(context.Background(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestNew_WithoutCache(t *testing.T) {
	c := newTestClient(t)
	if c.store != nil {
		t.Error("expected no store without WithValkey/WithRedis")
	}

	res, err := c.Evaluate(context.Background(), []float64{5, 3, 7, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Volume != 396 {
		t.Errorf("Volume = %v, want 396", res.Volume)
	}
	if !res.Feasible || res.Fitness != res.Volume {
		t.Errorf("unexpected result: %+v", res)
	}
	if res.Design.FH1 != 0.5 {
		t.Errorf("FH1 = %v, want 0.5", res.Design.FH1)
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := &clientConfig{driver: "unknown", addrs: []string{"localhost:1234"}}
	if _, err := createStore(cfg); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestNew_MissingAddrs(t *testing.T) {
	cfg := &clientConfig{driver: "redis"}
	if _, err := createStore(cfg); err == nil {
		t.Fatal("expected error for missing addrs")
	}
}

func TestClose_NoStore(t *testing.T) {
	c := &Client{}
	c.Close() // must not panic
}

func TestEvaluate_Errors(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Evaluate(context.Background(), []float64{5, 9, 7, 1})
	if !errors.Is(err, ErrIndex) {
		t.Fatalf("expected ErrIndex, got %v", err)
	}
	var ie *IndexError
	if !errors.As(err, &ie) || ie.Raw != 9 {
		t.Errorf("expected *IndexError with Raw 9, got %v", err)
	}

	_, err = c.Evaluate(context.Background(), []float64{8, 3, 7, 1})
	var de *DomainError
	if !errors.As(err, &de) || de.Variable != "H" {
		t.Errorf("expected *DomainError for H, got %v", err)
	}
}

func TestObjective_MatchesFitness(t *testing.T) {
	c := newTestClient(t)
	v := []float64{3, 3, 8, 0.1}

	f, err := c.Fitness(context.Background(), v)
	if err != nil {
		t.Fatalf("Fitness: %v", err)
	}
	o, err := c.Objective(v)
	if err != nil {
		t.Fatalf("Objective: %v", err)
	}
	if math.Float64bits(f) != math.Float64bits(o) {
		t.Errorf("Objective %v != Fitness %v", o, f)
	}
	if f < 1e7 {
		t.Errorf("infeasible design should be penalized, got %v", f)
	}
}

func TestEvaluateBatch_Real(t *testing.T) {
	c := newTestClient(t, WithWorkers(4), WithMaxBatchSize(3))

	items, err := c.EvaluateBatch(context.Background(), [][]float64{
		{5, 3, 7, 1},
		{5, 9, 7, 1},
		{7, 7, 12, 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := Summarize(items)
	if s.Succeeded != 2 || s.Failed != 1 || s.Feasible != 2 {
		t.Errorf("summary = %+v", s)
	}
	if items[2].Result == nil || items[2].Result.Volume != 1224 {
		t.Errorf("item 2 = %+v", items[2])
	}

	_, err = c.EvaluateBatch(context.Background(), make([][]float64, 4))
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest for oversized batch, got %v", err)
	}
}

func TestProblemAndConstants(t *testing.T) {
	c := newTestClient(t)

	p := c.Problem()
	if len(p.SolutionRepresentation) != 4 || p.SolutionRepresentation[1] != "h1" {
		t.Errorf("SolutionRepresentation = %v", p.SolutionRepresentation)
	}
	if p.DecisionVariables["h1"].Type != "int" {
		t.Errorf("h1 type = %q", p.DecisionVariables["h1"].Type)
	}
	if p.ObjectiveType != "minimization" {
		t.Errorf("ObjectiveType = %q", p.ObjectiveType)
	}

	k := c.Constants()
	if k.L != 36 || k.P != 1000 || k.E != 1e7 {
		t.Errorf("unexpected constants: %+v", k)
	}
}

func TestBounds(t *testing.T) {
	lower, upper := Bounds()
	wantLo := []float64{3, 0, 2, 0.1}
	wantHi := []float64{7, 7, 12, 2}
	for i := range wantLo {
		if lower[i] != wantLo[i] || upper[i] != wantHi[i] {
			t.Errorf("bounds[%d] = [%v, %v], want [%v, %v]", i, lower[i], upper[i], wantLo[i], wantHi[i])
		}
	}
}

func TestHealth_NoCache(t *testing.T) {
	c := newTestClient(t)
	h := c.Health(context.Background())
	if h.Status != "ok" {
		t.Errorf("Status = %q, want ok", h.Status)
	}
	if h.Checks["evaluator"] != "ok" {
		t.Errorf("evaluator check = %q", h.Checks["evaluator"])
	}
	if _, ok := h.Checks["cache"]; ok {
		t.Error("cache check should be absent")
	}
}

func TestHealth_LeavesEvaluationCountersAlone(t *testing.T) {
	feasible := metrics.EvaluationsTotal.WithLabelValues("evaluate", metrics.OutcomeFeasible)
	before := testutil.ToFloat64(feasible)

	c := newTestClient(t)
	for range 3 {
		if h := c.Health(context.Background()); h.Status != "ok" {
			t.Fatalf("Status = %q, want ok", h.Status)
		}
	}
	if after := testutil.ToFloat64(feasible); after != before {
		t.Errorf("evaluations_total moved from %v to %v on health checks", before, after)
	}
}

func TestWithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := newTestClient(t, WithPrometheus(reg))

	_, _ = c.Evaluate(context.Background(), []float64{5, 3, 7, 1})
	_, _ = c.Evaluate(context.Background(), []float64{5, 9, 7, 1})

	ops := c.obs.metrics.operations
	if got := testutil.ToFloat64(ops.WithLabelValues("evaluate", statusOK)); got != 1 {
		t.Errorf("ok count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(ops.WithLabelValues("evaluate", statusRejected)); got != 1 {
		t.Errorf("rejected count = %v, want 1", got)
	}
}

func TestWithPrometheus_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	a := newTestClient(t, WithPrometheus(reg))
	b := newTestClient(t, WithPrometheus(reg))

	_, _ = a.Fitness(context.Background(), []float64{5, 3, 7, 1})
	_, _ = b.Fitness(context.Background(), []float64{5, 3, 7, 1})

	if got := testutil.ToFloat64(a.obs.metrics.operations.WithLabelValues("fitness", statusOK)); got != 2 {
		t.Errorf("shared counter = %v, want 2", got)
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := newTestClient(t, WithLogger(logger))

	_, _ = c.Evaluate(context.Background(), []float64{5, 9, 7, 1})
	if !bytes.Contains(buf.Bytes(), []byte("design rejected")) {
		t.Errorf("expected rejection log, got %q", buf.String())
	}
}

package problem

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/beamdex/internal/domain"
	"github.com/kailas-cloud/beamdex/internal/domain/beam"
)

func TestDescribe_SolutionRepresentation(t *testing.T) {
	m := Describe()
	want := []string{"H", "h1", "b1", "b2"}
	if len(m.SolutionRepresentation) != len(want) {
		t.Fatalf("representation = %v, want %v", m.SolutionRepresentation, want)
	}
	for i := range want {
		if m.SolutionRepresentation[i] != want[i] {
			t.Errorf("representation[%d] = %q, want %q", i, m.SolutionRepresentation[i], want[i])
		}
	}
}

func TestDescribe_DecisionVariables(t *testing.T) {
	m := Describe()
	tests := []struct {
		name string
		kind beam.Kind
		lo   float64
		hi   float64
	}{
		{"H", beam.KindFloat, 3.0, 7.0},
		{"h1", beam.KindInt, 0, 7},
		{"b1", beam.KindFloat, 2.0, 12.0},
		{"b2", beam.KindFloat, 0.1, 2.0},
	}
	for _, tt := range tests {
		v, err := m.Variable(tt.name)
		if err != nil {
			t.Fatalf("Variable(%q): %v", tt.name, err)
		}
		if v.Type != tt.kind {
			t.Errorf("%s type = %q, want %q", tt.name, v.Type, tt.kind)
		}
		if v.Range != [2]float64{tt.lo, tt.hi} {
			t.Errorf("%s range = %v, want [%v %v]", tt.name, v.Range, tt.lo, tt.hi)
		}
		if v.Description == "" {
			t.Errorf("%s has no description", tt.name)
		}
	}
}

func TestDescribe_Objective(t *testing.T) {
	m := Describe()
	if m.Objective.Type != Minimization {
		t.Errorf("objective type = %q", m.Objective.Type)
	}
	if len(m.CompatibleOptimizers) == 0 {
		t.Error("expected compatible optimizers")
	}
}

func TestVariable_NotFound(t *testing.T) {
	_, err := Describe().Variable("L")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestModelConstants(t *testing.T) {
	c := ModelConstants()
	if c.Length != 36 || c.Load != 1000 || c.Modulus != 1e7 {
		t.Errorf("unexpected constants: %+v", c)
	}
	if len(c.FlangeHeights) != 8 {
		t.Errorf("flange table length = %d", len(c.FlangeHeights))
	}
}

package beamdex

import "github.com/kailas-cloud/beamdex/internal/domain/beam"

// Variable describes one decision variable.
type Variable struct {
	Type        string // "float" or "int"
	Range       [2]float64
	Description string
}

// Problem is the metadata contract for optimization drivers.
type Problem struct {
	DecisionVariables      map[string]Variable
	ObjectiveType          string
	ObjectiveDescription   string
	SolutionRepresentation []string
	CompatibleOptimizers   []string
}

// Constants are the fixed physical parameters of the model.
type Constants struct {
	L, P, E         float64
	StressLimit     float64
	DeflectionLimit float64
	Penalty         float64
	FlangeHeights   []float64
}

// Problem returns the problem metadata.
func (c *Client) Problem() Problem {
	m := c.evalSvc.Problem()
	vars := make(map[string]Variable, len(m.DecisionVariables))
	for name, v := range m.DecisionVariables {
		vars[name] = Variable{Type: string(v.Type), Range: v.Range, Description: v.Description}
	}
	return Problem{
		DecisionVariables:      vars,
		ObjectiveType:          string(m.Objective.Type),
		ObjectiveDescription:   m.Objective.Description,
		SolutionRepresentation: m.SolutionRepresentation,
		CompatibleOptimizers:   m.CompatibleOptimizers,
	}
}

// Constants returns the model constants.
func (c *Client) Constants() Constants {
	k := c.evalSvc.Constants()
	return Constants{
		L:               k.Length,
		P:               k.Load,
		E:               k.Modulus,
		StressLimit:     k.StressLimit,
		DeflectionLimit: k.DeflectionLimit,
		Penalty:         k.Penalty,
		FlangeHeights:   k.FlangeHeights,
	}
}

// Bounds returns per-position lower and upper bounds in vector order.
func Bounds() (lower, upper []float64) {
	return beam.Bounds()
}

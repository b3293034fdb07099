// Package problem describes the cantilevered beam problem to optimization
// drivers: decision variables, objective, vector layout and the optimizer
// families that can consume it.
package problem

import (
	"fmt"

	"github.com/kailas-cloud/beamdex/internal/domain"
	"github.com/kailas-cloud/beamdex/internal/domain/beam"
)

// ObjectiveType is the optimization direction.
type ObjectiveType string

// Minimization is the only direction this problem uses.
const Minimization ObjectiveType = "minimization"

// Optimizer family tags a driver may use to pick a strategy.
const (
	OptimizerSimulatedAnnealing    = "simulated_annealing"
	OptimizerGeneticAlgorithm      = "genetic_algorithm"
	OptimizerParticleSwarm         = "particle_swarm"
	OptimizerDifferentialEvolution = "differential_evolution"
	OptimizerGradientBased         = "gradient_based"
)

// DecisionVariable is the driver-facing description of one variable.
type DecisionVariable struct {
	Type        beam.Kind
	Range       [2]float64
	Description string
}

// Objective describes the optimization target.
type Objective struct {
	Type        ObjectiveType
	Description string
}

// Metadata is the problem contract consumed by optimization drivers.
type Metadata struct {
	DecisionVariables      map[string]DecisionVariable
	Objective              Objective
	SolutionRepresentation []string
	CompatibleOptimizers   []string
}

// Constants are the fixed physical parameters and limits of the model.
type Constants struct {
	Length          float64
	Load            float64
	Modulus         float64
	StressLimit     float64
	DeflectionLimit float64
	Penalty         float64
	FlangeHeights   []float64
}

// Describe builds the problem metadata from the beam model.
func Describe() Metadata {
	vars := beam.Variables()
	m := Metadata{
		DecisionVariables:      make(map[string]DecisionVariable, len(vars)),
		SolutionRepresentation: make([]string, len(vars)),
		Objective: Objective{
			Type:        Minimization,
			Description: "Minimize the beam volume (2*fh1*b1 + (H - 2*fh1)*b2) * L subject to g1 <= 5000 and g2 <= 0.10",
		},
		CompatibleOptimizers: []string{
			OptimizerSimulatedAnnealing,
			OptimizerGeneticAlgorithm,
			OptimizerParticleSwarm,
			OptimizerDifferentialEvolution,
			OptimizerGradientBased,
		},
	}
	for i, v := range vars {
		m.SolutionRepresentation[i] = v.Name
		m.DecisionVariables[v.Name] = DecisionVariable{
			Type:        v.Kind,
			Range:       [2]float64{v.Lo, v.Hi},
			Description: v.Description,
		}
	}
	return m
}

// Variable looks up a decision variable by name.
func (m Metadata) Variable(name string) (DecisionVariable, error) {
	v, ok := m.DecisionVariables[name]
	if !ok {
		return DecisionVariable{}, fmt.Errorf("decision variable %q: %w", name, domain.ErrNotFound)
	}
	return v, nil
}

// ModelConstants returns the fixed constants of the beam model.
func ModelConstants() Constants {
	return Constants{
		Length:          beam.Length,
		Load:            beam.Load,
		Modulus:         beam.Modulus,
		StressLimit:     beam.StressLimit,
		DeflectionLimit: beam.DeflectionLimit,
		Penalty:         beam.Penalty,
		FlangeHeights:   beam.FlangeHeights(),
	}
}

// Package beam evaluates the cantilevered I-beam design problem: the volume of
// the beam and its bending-stress and tip-deflection responses for a design
// vector (H, h1, b1, b2).
//
// The model is the standard cantilever benchmark: a tip load P on a beam of
// length L with Young's modulus E. h1 selects the flange height from a fixed
// table; the other three variables are continuous.
package beam

import "math"

// Physical constants of the benchmark. They are not configurable.
const (
	// Length is the beam length L.
	Length = 36.0
	// Load is the tip load P.
	Load = 1000.0
	// Modulus is Young's modulus E.
	Modulus = 10e6

	// StressLimit bounds g1 (bending stress).
	StressLimit = 5000.0
	// DeflectionLimit bounds g2 (tip deflection).
	DeflectionLimit = 0.10

	// Penalty multiplies the summed constraint violation in Fitness.
	Penalty = 1e9
)

// MaxFlangeIndex is the largest valid h1 index. Untyped, so it compares
// against both int indices and raw float64 values.
const MaxFlangeIndex = 7

var flangeHeights = [MaxFlangeIndex + 1]float64{0.1, 0.26, 0.35, 0.5, 0.65, 0.75, 0.9, 1.0}

// FlangeHeights returns a copy of the flange-height table, ordered by index.
func FlangeHeights() []float64 {
	out := make([]float64, len(flangeHeights))
	copy(out, flangeHeights[:])
	return out
}

// MomentOfInertia returns the second moment of area of the I-section:
// the web plus two flanges shifted by the parallel-axis term.
func MomentOfInertia(d Design) float64 {
	web := d.H - 2*d.FH1
	webI := d.B2 * web * web * web / 12
	flangeI := d.B1*d.FH1*d.FH1*d.FH1/12 + d.B1*d.FH1*(d.H-d.FH1)*(d.H-d.FH1)/4
	return webI + 2*flangeI
}

// Volume returns (2*fh1*b1 + (H-2*fh1)*b2) * L.
func Volume(d Design) float64 {
	return (2*d.FH1*d.B1 + (d.H-2*d.FH1)*d.B2) * Length
}

// BendingStress returns g1 = P*L*H / (2*I).
func BendingStress(h, inertia float64) float64 {
	return Load * Length * h / (2 * inertia)
}

// TipDeflection returns g2 = P*L^3 / (3*E*I).
func TipDeflection(inertia float64) float64 {
	return Load * Length * Length * Length / (3 * Modulus * inertia)
}

func violation(value, limit float64) float64 {
	return math.Max(0, value-limit)
}

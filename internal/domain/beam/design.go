package beam

import (
	"math"

	"github.com/kailas-cloud/beamdex/internal/domain"
)

// Dimensions is the length of a design vector.
const Dimensions = 4

// Positions of the design variables in a vector.
const (
	PosH = iota
	PosH1
	PosB1
	PosB2
)

// Kind is the numeric type of a design variable.
type Kind string

const (
	// KindFloat is a continuous variable.
	KindFloat Kind = "float"
	// KindInt is an integer variable.
	KindInt Kind = "int"
)

// Variable describes one decision variable.
type Variable struct {
	Name        string
	Kind        Kind
	Lo, Hi      float64
	Description string
}

// Contains reports whether x lies in the closed range [Lo, Hi].
func (v Variable) Contains(x float64) bool {
	return x >= v.Lo && x <= v.Hi
}

var variables = [Dimensions]Variable{
	PosH:  {Name: "H", Kind: KindFloat, Lo: 3.0, Hi: 7.0, Description: "Overall beam height"},
	PosH1: {Name: "h1", Kind: KindInt, Lo: 0, Hi: MaxFlangeIndex, Description: "Index into the flange-height table"},
	PosB1: {Name: "b1", Kind: KindFloat, Lo: 2.0, Hi: 12.0, Description: "Upper flange width"},
	PosB2: {Name: "b2", Kind: KindFloat, Lo: 0.1, Hi: 2.0, Description: "Web width"},
}

// Variables returns the decision variables in vector order.
func Variables() []Variable {
	out := make([]Variable, Dimensions)
	copy(out, variables[:])
	return out
}

// Bounds returns lower and upper bounds in vector order.
func Bounds() (lower, upper []float64) {
	lower = make([]float64, Dimensions)
	upper = make([]float64, Dimensions)
	for i, v := range variables {
		lower[i] = v.Lo
		upper[i] = v.Hi
	}
	return lower, upper
}

// Design is a validated, decoded design vector.
type Design struct {
	H   float64
	H1  int     // flange index
	FH1 float64 // flange height selected by H1
	B1  float64
	B2  float64
}

// Vector returns the design in [H, h1, b1, b2] order with h1 as its decoded index.
func (d Design) Vector() []float64 {
	return []float64{d.H, float64(d.H1), d.B1, d.B2}
}

// FlangeIndex rounds a raw h1 value half-to-even and checks it against the table.
func FlangeIndex(raw float64) (int, error) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, domain.NewDomainError(variables[PosH1].Name, raw, variables[PosH1].Lo, variables[PosH1].Hi)
	}
	rounded := math.RoundToEven(raw)
	if rounded < 0 || rounded > MaxFlangeIndex {
		return 0, domain.NewIndexError(raw, rounded, MaxFlangeIndex)
	}
	return int(rounded), nil
}

// FlangeHeight returns the flange height for a table index.
func FlangeHeight(index int) (float64, error) {
	if index < 0 || index > MaxFlangeIndex {
		return 0, domain.NewIndexError(float64(index), float64(index), MaxFlangeIndex)
	}
	return flangeHeights[index], nil
}

// Decode validates a raw vector and resolves h1 to its flange height.
// Out-of-domain values are rejected, never clamped.
func Decode(vector []float64) (Design, error) {
	if len(vector) != Dimensions {
		return Design{}, domain.NewArityError(len(vector))
	}

	index, err := FlangeIndex(vector[PosH1])
	if err != nil {
		return Design{}, err
	}

	for _, pos := range [...]int{PosH, PosB1, PosB2} {
		v := variables[pos]
		x := vector[pos]
		if !v.Contains(x) { // NaN fails both comparisons
			return Design{}, domain.NewDomainError(v.Name, x, v.Lo, v.Hi)
		}
	}

	return Design{
		H:   vector[PosH],
		H1:  index,
		FH1: flangeHeights[index],
		B1:  vector[PosB1],
		B2:  vector[PosB2],
	}, nil
}

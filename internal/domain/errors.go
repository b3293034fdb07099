package domain

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrDomain signals a design vector outside its declared domain (bounds, arity, non-finite).
	ErrDomain = errors.New("design vector out of domain")
	// ErrIndex signals a flange-height index outside the lookup table.
	ErrIndex = errors.New("flange index out of range")
	// ErrDegenerateSection signals a cross-section with non-positive moment of inertia.
	ErrDegenerateSection = errors.New("degenerate cross-section")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest signals a malformed request (batch size, empty payload).
	ErrInvalidRequest = errors.New("invalid request")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
)

// DomainError wraps ErrDomain with the offending variable.
// Arity is set instead of Variable when the vector has the wrong length.
type DomainError struct {
	Variable string
	Value    float64
	Lo, Hi   float64
	Arity    int
}

func (e *DomainError) Error() string {
	if e.Variable == "" {
		return fmt.Sprintf("%s: expected 4 components, got %d", ErrDomain.Error(), e.Arity)
	}
	return fmt.Sprintf("%s: %s=%s outside [%s, %s]",
		ErrDomain.Error(), e.Variable, formatFloat(e.Value), formatFloat(e.Lo), formatFloat(e.Hi))
}

func (e *DomainError) Unwrap() error { return ErrDomain }

// NewDomainError creates a bounds violation error for a named variable.
func NewDomainError(variable string, value, lo, hi float64) error {
	return &DomainError{Variable: variable, Value: value, Lo: lo, Hi: hi}
}

// NewArityError creates a domain error for a vector of the wrong length.
func NewArityError(got int) error {
	return &DomainError{Arity: got}
}

// IndexError wraps ErrIndex with the raw value and the index it rounded to.
// Rounded stays a float so huge inputs are reported as given.
type IndexError struct {
	Raw     float64
	Rounded float64
	Max     int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: h1=%s rounds to %s, want 0..%d",
		ErrIndex.Error(), formatFloat(e.Raw), formatFloat(e.Rounded), e.Max)
}

func (e *IndexError) Unwrap() error { return ErrIndex }

// NewIndexError creates an index error for a table with indices 0..maxIndex.
func NewIndexError(raw, rounded float64, maxIndex int) error {
	return &IndexError{Raw: raw, Rounded: rounded, Max: maxIndex}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

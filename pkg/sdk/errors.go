package beamdex

import "github.com/kailas-cloud/beamdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrDomain            = domain.ErrDomain
	ErrIndex             = domain.ErrIndex
	ErrDegenerateSection = domain.ErrDegenerateSection
	ErrNotFound          = domain.ErrNotFound
	ErrInvalidRequest    = domain.ErrInvalidRequest
)

// Typed errors carrying the offending value. Use errors.As() to extract.
type (
	DomainError = domain.DomainError
	IndexError  = domain.IndexError
)

package batch

import "github.com/kailas-cloud/beamdex/internal/domain/beam"

// ItemStatus is the evaluation outcome of a single batch item.
type ItemStatus string

// Batch item status values.
const (
	StatusOK    ItemStatus = "ok"
	StatusError ItemStatus = "error"
)

// Result is the outcome of evaluating one vector in a batch.
type Result struct {
	index  int
	status ItemStatus
	result beam.Result
	err    error
}

// NewOK creates a successful batch result.
func NewOK(index int, r beam.Result) Result {
	return Result{index: index, status: StatusOK, result: r}
}

// NewError creates a failed batch result.
func NewError(index int, err error) Result {
	return Result{index: index, status: StatusError, err: err}
}

// Index returns the position of the vector in the request.
func (r Result) Index() int { return r.index }

// Status returns the evaluation outcome.
func (r Result) Status() ItemStatus { return r.status }

// Result returns the evaluation; zero when Status is StatusError.
func (r Result) Result() beam.Result { return r.result }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }

// Summary counts outcomes of a batch.
type Summary struct {
	Succeeded int
	Failed    int
	Feasible  int
}

// Summarize counts succeeded, failed and feasible items.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		if r.status != StatusOK {
			s.Failed++
			continue
		}
		s.Succeeded++
		if r.result.Feasible() {
			s.Feasible++
		}
	}
	return s
}

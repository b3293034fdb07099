package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ErrorResponseCode is the machine-readable error code in error bodies.
type ErrorResponseCode string

// Error codes.
const (
	ErrorResponseCodeBadRequest       ErrorResponseCode = "bad_request"
	ErrorResponseCodeValidationFailed ErrorResponseCode = "validation_failed"
	ErrorResponseCodeDomainError      ErrorResponseCode = "domain_error"
	ErrorResponseCodeIndexError       ErrorResponseCode = "index_error"
	ErrorResponseCodeNotFound         ErrorResponseCode = "not_found"
	ErrorResponseCodeRateLimited      ErrorResponseCode = "rate_limited"
	ErrorResponseCodeUnauthorized     ErrorResponseCode = "unauthorized"
	ErrorResponseCodeInternalError    ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
// Variable and Value are set for out-of-domain and index errors.
type ErrorResponse struct {
	Code     ErrorResponseCode `json:"code"`
	Message  string            `json:"message"`
	Variable *string           `json:"variable,omitempty"`
	Value    *float64          `json:"value,omitempty"`
}

// EvaluateRequest is the body of POST /evaluate and POST /fitness.
// Entries are pointers so a JSON null is distinguishable from 0.
type EvaluateRequest struct {
	Vector []*float64 `json:"vector"`
}

// EvaluateResponse is the body returned by POST /evaluate.
type EvaluateResponse struct {
	Id       string  `json:"id"` //nolint:revive // matches the wire name
	Volume   float64 `json:"volume"`
	G1       float64 `json:"g1"`
	G2       float64 `json:"g2"`
	Feasible bool    `json:"feasible"`
}

// FitnessResponse is the body returned by POST /fitness.
type FitnessResponse struct {
	Id      string  `json:"id"` //nolint:revive // matches the wire name
	Fitness float64 `json:"fitness"`
}

// BatchEvaluateRequest is the body of POST /evaluate/batch.
type BatchEvaluateRequest struct {
	Vectors [][]*float64 `json:"vectors"`
}

// BatchEvaluateParams are the query parameters of POST /evaluate/batch.
type BatchEvaluateParams struct {
	IncludeFitness *bool `form:"include_fitness" json:"include_fitness,omitempty"`
}

// BatchResultItemStatus is the per-item outcome.
type BatchResultItemStatus string

// BatchResultItem is one entry of a batch response, in input order.
type BatchResultItem struct {
	Index    int                   `json:"index"`
	Status   BatchResultItemStatus `json:"status"`
	Id       *string               `json:"id,omitempty"` //nolint:revive // matches the wire name
	Volume   *float64              `json:"volume,omitempty"`
	G1       *float64              `json:"g1,omitempty"`
	G2       *float64              `json:"g2,omitempty"`
	Feasible *bool                 `json:"feasible,omitempty"`
	Fitness  *float64              `json:"fitness,omitempty"`
	Error    *ErrorResponse        `json:"error,omitempty"`
}

// BatchEvaluateResponse is the body returned by POST /evaluate/batch.
type BatchEvaluateResponse struct {
	BatchId   string            `json:"batch_id"` //nolint:revive // matches the wire name
	Items     []BatchResultItem `json:"items"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Feasible  int               `json:"feasible"`
}

// DecisionVariable describes one component of the design vector.
type DecisionVariable struct {
	Type        string     `json:"type"`
	Range       [2]float64 `json:"range"`
	Description string     `json:"description"`
}

// Objective describes the optimization target.
type Objective struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ProblemResponse is the problem metadata consumed by optimization drivers.
type ProblemResponse struct {
	DecisionVariables      map[string]DecisionVariable `json:"decision_variables"`
	Objective              Objective                   `json:"objective"`
	SolutionRepresentation []string                    `json:"solution_representation"`
	CompatibleOptimizers   []string                    `json:"compatible_optimizers"`
}

// ConstantsResponse lists the fixed model constants.
type ConstantsResponse struct {
	L               float64   `json:"L"`
	P               float64   `json:"P"`
	E               float64   `json:"E"`
	StressLimit     float64   `json:"stress_limit"`
	DeflectionLimit float64   `json:"deflection_limit"`
	Penalty         float64   `json:"penalty"`
	FlangeHeights   []float64 `json:"flange_heights"`
}

// FlangeHeightResponse is the body returned by GET /problem/flange-heights/{index}.
type FlangeHeightResponse struct {
	Index  int     `json:"index"`
	Height float64 `json:"height"`
}

// HealthResponse is the body returned by GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// ServerInterface lists the HTTP operations.
type ServerInterface interface {
	GetProblem(w http.ResponseWriter, r *http.Request)
	GetConstants(w http.ResponseWriter, r *http.Request)
	GetVariable(w http.ResponseWriter, r *http.Request, name string)
	GetFlangeHeight(w http.ResponseWriter, r *http.Request, index int)
	Evaluate(w http.ResponseWriter, r *http.Request)
	Fitness(w http.ResponseWriter, r *http.Request)
	EvaluateBatch(w http.ResponseWriter, r *http.Request, params BatchEvaluateParams)
	HealthCheck(w http.ResponseWriter, r *http.Request)
	Metrics(w http.ResponseWriter, r *http.Request)
}

// ParamErrorHandler reports a parameter binding failure.
type ParamErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// HandlerWithOptions mounts si on router. errHandler receives binding errors.
func HandlerWithOptions(si ServerInterface, router chi.Router, errHandler ParamErrorHandler) http.Handler {
	if errHandler == nil {
		errHandler = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}

	router.Get("/problem", si.GetProblem)
	router.Get("/problem/constants", si.GetConstants)
	router.Get("/problem/variables/{name}", func(w http.ResponseWriter, r *http.Request) {
		si.GetVariable(w, r, chi.URLParam(r, "name"))
	})
	router.Get("/problem/flange-heights/{index}", func(w http.ResponseWriter, r *http.Request) {
		var index int
		err := runtime.BindStyledParameterWithOptions("simple", "index", chi.URLParam(r, "index"), &index,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
		if err != nil {
			errHandler(w, r, err)
			return
		}
		si.GetFlangeHeight(w, r, index)
	})
	router.Post("/evaluate", si.Evaluate)
	router.Post("/fitness", si.Fitness)
	router.Post("/evaluate/batch", func(w http.ResponseWriter, r *http.Request) {
		var params BatchEvaluateParams
		err := runtime.BindQueryParameter("form", true, false, "include_fitness", r.URL.Query(), &params.IncludeFitness)
		if err != nil {
			errHandler(w, r, err)
			return
		}
		si.EvaluateBatch(w, r, params)
	})
	router.Get("/health", si.HealthCheck)
	router.Get("/metrics", si.Metrics)

	return router
}

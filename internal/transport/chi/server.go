package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/beamdex/internal/domain"
	dombatch "github.com/kailas-cloud/beamdex/internal/domain/batch"
	"github.com/kailas-cloud/beamdex/internal/domain/beam"
	"github.com/kailas-cloud/beamdex/internal/domain/problem"
	logpkg "github.com/kailas-cloud/beamdex/internal/logger"
	evaluationuc "github.com/kailas-cloud/beamdex/internal/usecase/evaluation"
	healthuc "github.com/kailas-cloud/beamdex/internal/usecase/health"
)

// maxBodyBytes caps request bodies; a full batch of vectors is far below it.
const maxBodyBytes = 4 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server implements ServerInterface over the evaluation and health services.
type Server struct {
	evaluation    *evaluationuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(
	evaluation *evaluationuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		evaluation: evaluation,
		health:     health,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		domainErrorHandler,
		indexErrorHandler,
		sentinelHandler(domain.ErrDegenerateSection, http.StatusUnprocessableEntity, ErrorResponseCodeDomainError),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorResponseCodeNotFound),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, ErrorResponseCodeRateLimited),
	}
	return s
}

// GetProblem handles GET /problem.
func (s *Server) GetProblem(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, problemToAPI(s.evaluation.Problem()))
}

// GetConstants handles GET /problem/constants.
func (s *Server) GetConstants(w http.ResponseWriter, _ *http.Request) {
	c := s.evaluation.Constants()
	writeJSON(w, http.StatusOK, ConstantsResponse{
		L:               c.Length,
		P:               c.Load,
		E:               c.Modulus,
		StressLimit:     c.StressLimit,
		DeflectionLimit: c.DeflectionLimit,
		Penalty:         c.Penalty,
		FlangeHeights:   c.FlangeHeights,
	})
}

// GetVariable handles GET /problem/variables/{name}.
func (s *Server) GetVariable(w http.ResponseWriter, r *http.Request, name string) {
	v, err := s.evaluation.Variable(name)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, variableToAPI(v))
}

// GetFlangeHeight handles GET /problem/flange-heights/{index}.
func (s *Server) GetFlangeHeight(w http.ResponseWriter, r *http.Request, index int) {
	h, err := s.evaluation.FlangeHeight(index)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, FlangeHeightResponse{Index: index, Height: h})
}

// Evaluate handles POST /evaluate.
func (s *Server) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	vector, err := vectorFromAPI("vector", req.Vector)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, err.Error())
		return
	}

	res, err := s.evaluation.Evaluate(r.Context(), vector)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, EvaluateResponse{
		Id:       beam.Fingerprint(res.Design()).String(),
		Volume:   res.Volume(),
		G1:       res.G1(),
		G2:       res.G2(),
		Feasible: res.Feasible(),
	})
}

// Fitness handles POST /fitness.
func (s *Server) Fitness(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	vector, err := vectorFromAPI("vector", req.Vector)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, err.Error())
		return
	}

	f, res, err := s.evaluation.Fitness(r.Context(), vector)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, FitnessResponse{
		Id:      beam.Fingerprint(res.Design()).String(),
		Fitness: f,
	})
}

// EvaluateBatch handles POST /evaluate/batch.
func (s *Server) EvaluateBatch(w http.ResponseWriter, r *http.Request, params BatchEvaluateParams) {
	var req BatchEvaluateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	vectors := make([][]float64, len(req.Vectors))
	for i, v := range req.Vectors {
		vec, err := vectorFromAPI(fmt.Sprintf("vectors[%d]", i), v)
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, err.Error())
			return
		}
		vectors[i] = vec
	}

	results, err := s.evaluation.EvaluateBatch(r.Context(), vectors)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	includeFitness := derefBool(params.IncludeFitness)
	items := make([]BatchResultItem, len(results))
	for i, res := range results {
		items[i] = batchResultToAPI(res, includeFitness)
	}
	sum := dombatch.Summarize(results)

	writeJSON(w, http.StatusOK, BatchEvaluateResponse{
		BatchId:   uuid.NewString(),
		Items:     items,
		Succeeded: sum.Succeeded,
		Failed:    sum.Failed,
		Feasible:  sum.Feasible,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// ParamError writes a bad_request response for a parameter binding failure.
func ParamError(w http.ResponseWriter, _ *http.Request, err error) {
	writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid parameter: "+err.Error())
}

// vectorFromAPI rejects null entries, which encoding/json would otherwise
// leave as 0. Length is checked by the domain, not here.
func vectorFromAPI(name string, in []*float64) ([]float64, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]float64, len(in))
	for i, p := range in {
		if p == nil {
			return nil, fmt.Errorf("%s[%d] must be a number, got null", name, i)
		}
		out[i] = *p
	}
	return out, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-safe message. Typed domain errors carry
// only request data, everything else is reduced to its sentinel.
func safeDomainMessage(err error) string {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return de.Error()
	}
	var ie *domain.IndexError
	if errors.As(err, &ie) {
		return ie.Error()
	}
	sentinels := []error{
		domain.ErrDomain,
		domain.ErrIndex,
		domain.ErrDegenerateSection,
		domain.ErrInvalidRequest,
		domain.ErrNotFound,
		domain.ErrRateLimited,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// errorResponse builds the error body, adding variable/value for typed errors.
func errorResponse(code ErrorResponseCode, err error, msg string) ErrorResponse {
	resp := ErrorResponse{Code: code, Message: msg}
	var de *domain.DomainError
	if errors.As(err, &de) && de.Variable != "" {
		resp.Variable = &de.Variable
		resp.Value = finitePtr(de.Value)
	}
	var ie *domain.IndexError
	if errors.As(err, &ie) {
		v := "h1"
		resp.Variable = &v
		resp.Value = finitePtr(ie.Raw)
	}
	return resp
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// domainErrorHandler handles ErrDomain with the offending variable and value.
func domainErrorHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrDomain) {
		return false
	}
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse(ErrorResponseCodeDomainError, err, msg))
	return true
}

// indexErrorHandler handles ErrIndex with the raw h1 value.
func indexErrorHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrIndex) {
		return false
	}
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse(ErrorResponseCodeIndexError, err, msg))
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContextOr(r.Context(), s.logger)
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}

func problemToAPI(m problem.Metadata) ProblemResponse {
	vars := make(map[string]DecisionVariable, len(m.DecisionVariables))
	for name, v := range m.DecisionVariables {
		vars[name] = variableToAPI(v)
	}
	return ProblemResponse{
		DecisionVariables: vars,
		Objective: Objective{
			Type:        string(m.Objective.Type),
			Description: m.Objective.Description,
		},
		SolutionRepresentation: m.SolutionRepresentation,
		CompatibleOptimizers:   m.CompatibleOptimizers,
	}
}

func variableToAPI(v problem.DecisionVariable) DecisionVariable {
	return DecisionVariable{
		Type:        string(v.Type),
		Range:       v.Range,
		Description: v.Description,
	}
}

func batchResultToAPI(r dombatch.Result, includeFitness bool) BatchResultItem {
	item := BatchResultItem{
		Index:  r.Index(),
		Status: BatchResultItemStatus(r.Status()),
	}
	if r.Err() != nil {
		code := batchErrorCode(r.Err())
		errResp := errorResponse(code, r.Err(), safeDomainMessage(r.Err()))
		item.Error = &errResp
		return item
	}

	res := r.Result()
	id := beam.Fingerprint(res.Design()).String()
	volume, g1, g2, feasible := res.Volume(), res.G1(), res.G2(), res.Feasible()
	item.Id = &id
	item.Volume = &volume
	item.G1 = &g1
	item.G2 = &g2
	item.Feasible = &feasible
	if includeFitness {
		f := res.Fitness()
		item.Fitness = &f
	}
	return item
}

func batchErrorCode(err error) ErrorResponseCode {
	switch {
	case errors.Is(err, domain.ErrDomain), errors.Is(err, domain.ErrDegenerateSection):
		return ErrorResponseCodeDomainError
	case errors.Is(err, domain.ErrIndex):
		return ErrorResponseCodeIndexError
	case errors.Is(err, domain.ErrRateLimited):
		return ErrorResponseCodeRateLimited
	default:
		return ErrorResponseCodeInternalError
	}
}

func derefBool(p *bool) bool {
	if p == nil {
		return false
	}
	return *p
}

// finitePtr returns nil for NaN and Inf, which JSON cannot encode.
func finitePtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

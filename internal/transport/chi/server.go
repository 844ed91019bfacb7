// Package chi is the HTTP transport: handlers for the generated API bindings,
// auth and the router.
package chi

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hrsearch/internal/domain"
	"github.com/kailas-cloud/hrsearch/internal/domain/ranking"
	domusage "github.com/kailas-cloud/hrsearch/internal/domain/usage"
	"github.com/kailas-cloud/hrsearch/internal/logger"
	gen "github.com/kailas-cloud/hrsearch/internal/transport/generated"
	healthuc "github.com/kailas-cloud/hrsearch/internal/usecase/health"
)

// searchRequest is the validated form of SearchEmployeesParams.
type searchRequest struct {
	Query string `validate:"required,max=1000"`
	Limit *int   `validate:"omitempty,min=1,max=20"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server implements generated.ServerInterface for the oapi-codegen chi router.
type Server struct {
	gen.Unimplemented
	ranker        Ranker
	vectors       ProfileVectors
	usage         UsageReporter
	health        HealthChecker
	validate      *validator.Validate
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ gen.ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(
	ranker Ranker,
	vectors ProfileVectors,
	usage UsageReporter,
	health HealthChecker,
	logger *zap.Logger,
) *Server {
	s := &Server{
		ranker:   ranker,
		vectors:  vectors,
		usage:    usage,
		health:   health,
		validate: validator.New(),
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmployeeNotFound, http.StatusNotFound, gen.ErrorResponseCodeEmployeeNotFound),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, gen.ErrorResponseCodeValidationFailed),
	}
	return s
}

// SearchEmployees handles GET /search.
func (s *Server) SearchEmployees(w http.ResponseWriter, r *http.Request, params gen.SearchEmployeesParams) {
	req := searchRequest{Query: params.Query, Limit: params.Limit}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeValidationFailed, validationMessage(err))
		return
	}

	ctx, u := domain.NewContextWithUsage(r.Context())
	limit := 0
	if req.Limit != nil {
		limit = *req.Limit
	}
	res := s.ranker.Rank(ctx, req.Query, limit)
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("hrsearch.search_id", res.SearchID),
		attribute.String("hrsearch.mode", string(res.Mode)),
	)

	logger.FromContext(ctx).Info("search",
		zap.String("search_id", res.SearchID),
		zap.String("mode", string(res.Mode)),
		zap.String("reason", res.Reason),
		zap.Int("results", len(res.Candidates)),
	)
	setUsageHeaders(w, u)
	writeJSON(w, http.StatusOK, searchResponseToGen(&res))
}

// RebuildProfileVector handles POST /employees/{id}/profile-vector.
// The rebuild is best-effort; only an unknown employee is an error.
func (s *Server) RebuildProfileVector(w http.ResponseWriter, r *http.Request, id gen.EmployeeId) {
	outcome, err := s.vectors.RebuildByID(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, gen.RebuildResponse{
		EmployeeId: id,
		Status:     gen.RebuildResponseStatus(outcome),
	})
}

// DeleteProfileVector handles DELETE /employees/{id}/profile-vector.
func (s *Server) DeleteProfileVector(w http.ResponseWriter, r *http.Request, id gen.EmployeeId) {
	if err := s.vectors.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReindexProfileVectors handles POST /profile-vectors/reindex.
func (s *Server) ReindexProfileVectors(w http.ResponseWriter, r *http.Request) {
	st, err := s.vectors.Reindex(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gen.ReindexResponse{
		Rebuilt: st.Rebuilt,
		Skipped: st.Skipped,
		Failed:  st.Failed,
	})
}

// GetUsage handles GET /usage.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request, params gen.GetUsageParams) {
	period := domusage.PeriodMonth
	if params.Period != nil {
		period = domusage.Period(*params.Period)
	}
	if !period.IsValid() {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeValidationFailed, "period must be day or month")
		return
	}

	report := s.usage.GetReport(r.Context(), period)
	writeJSON(w, http.StatusOK, gen.UsageResponse{
		Period:          gen.UsageResponsePeriod(report.Period()),
		PeriodStartAt:   time.UnixMilli(report.PeriodStart()).UTC(),
		PeriodEndAt:     time.UnixMilli(report.PeriodEnd()).UTC(),
		TokensUsed:      report.TokensUsed(),
		TokensLimit:     report.TokensLimit(),
		TokensRemaining: report.TokensRemaining(),
		IsExhausted:     report.Exhausted(),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]gen.HealthResponseChecks, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = gen.HealthResponseChecks(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, gen.HealthResponse{
		Status: gen.HealthResponseStatus(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func setUsageHeaders(w http.ResponseWriter, u *domain.Usage) {
	if n := u.EmbeddingTokens(); n > 0 {
		w.Header().Set("X-Embedding-Tokens", strconv.Itoa(n))
	}
	if n := u.CompletionTokens(); n > 0 {
		w.Header().Set("X-Completion-Tokens", strconv.Itoa(n))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code gen.ErrorResponseCode, message string) {
	writeJSON(w, status, gen.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Field() {
		case "Query":
			if fe.Tag() == "required" {
				return "query is required"
			}
			return "query is too long"
		case "Limit":
			return "limit must be between 1 and 20"
		}
	}
	return "invalid request"
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	for _, s := range []error{domain.ErrEmployeeNotFound, domain.ErrInvalidQuery} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code gen.ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			s.logger.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, gen.ErrorResponseCodeInternalError, "internal error")
}

func searchResponseToGen(res *ranking.Result) gen.SearchResponse {
	out := gen.SearchResponse{
		SearchId: res.SearchID,
		Mode:     gen.SearchResponseMode(res.Mode),
		Degraded: res.Degraded(),
		Results:  make([]gen.SearchResultItem, len(res.Candidates)),
	}
	if res.Reason != "" {
		reason := res.Reason
		out.Reason = &reason
	}
	if res.Parsed != nil {
		skills := res.Parsed.Skills
		if skills == nil {
			skills = []string{}
		}
		out.Parsed = &gen.ParsedQuery{
			Skills:          skills,
			Grade:           gen.ParsedQueryGrade(res.Parsed.Grade.String()),
			NormalizedQuery: res.Parsed.NormalizedText,
		}
	}
	for i := range res.Candidates {
		out.Results[i] = candidateToGen(&res.Candidates[i])
	}
	return out
}

func candidateToGen(c *ranking.Candidate) gen.SearchResultItem {
	item := gen.SearchResultItem{
		Id:              c.EmployeeID,
		FullName:        c.FullName,
		Position:        c.Position,
		Department:      c.Department,
		ExperienceYears: c.ExperienceYears,
		Skills:          c.Skills,
		Level:           c.Level,
		XpPoints:        c.XPPoints,
		RelevanceScore:  round3(c.Score),
		SemanticScore:   round3(c.SemanticScore),
		SkillsMatch:     round3(c.SkillsMatch),
	}
	if item.Skills == nil {
		item.Skills = []string{}
	}
	if b := c.Breakdown; b != nil {
		g, o, l := round3(b.Grade), round3(b.Overlap), round3(b.Reputation)
		item.GradeScore, item.OchiaiScore, item.LevelBonus = &g, &o, &l
	}
	return item
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

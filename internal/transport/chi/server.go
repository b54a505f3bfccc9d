package chi

import (
	"errors"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/workermatch/internal/domain"
	"github.com/kailas-cloud/workermatch/internal/domain/geo"
	"github.com/kailas-cloud/workermatch/internal/domain/search/filter"
	"github.com/kailas-cloud/workermatch/internal/domain/search/request"
	"github.com/kailas-cloud/workermatch/internal/domain/search/strategy"
	"github.com/kailas-cloud/workermatch/internal/domain/worker"
	"github.com/kailas-cloud/workermatch/internal/logger"
	"github.com/kailas-cloud/workermatch/internal/transport/api"
	healthuc "github.com/kailas-cloud/workermatch/internal/usecase/health"
)

const insufficientCorpusHint = "Add active workers with a biography, then POST /models/train"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server implements api.ServerInterface.
type Server struct {
	svc           Services
	defaultTopN   int
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ api.ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server. defaultTopN applies when a search omits top_n.
func NewServer(svc Services, defaultTopN int, logger *zap.Logger) *Server {
	s := &Server{
		svc:         svc,
		defaultTopN: defaultTopN,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		detailHandler(domain.ErrInvalidStrategy, http.StatusBadRequest, api.ErrorResponseCodeInvalidStrategy),
		detailHandler(domain.ErrValidation, http.StatusBadRequest, api.ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, api.ErrorResponseCodeNotFound),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, api.ErrorResponseCodeRateLimited),
		insufficientCorpusHandler,
		sentinelHandler(domain.ErrEngineUnavailable,
			http.StatusServiceUnavailable, api.ErrorResponseCodeEngineUnavailable),
	}
	return s
}

// Recommend handles POST /workers/recommend.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	var body api.RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, api.ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	req, err := s.searchRequestFromAPI(&body)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp, err := s.svc.Recommend.Search(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, recommendResponseToAPI(&resp))
}

// GetWorker handles GET /workers/{worker_id}.
func (s *Server) GetWorker(w http.ResponseWriter, r *http.Request, workerID api.WorkerID) {
	p, err := s.svc.Profiles.Get(r.Context(), workerID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, workerToAPI(&p))
}

// UpsertWorker handles PUT /workers/{worker_id}.
func (s *Server) UpsertWorker(w http.ResponseWriter, r *http.Request, workerID api.WorkerID) {
	var body api.WorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, api.ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	p := workerFromAPI(workerID, &body)
	created, err := s.svc.Profiles.Save(r.Context(), &p)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		w.Header().Set("Location", fmt.Sprintf("/workers/%s", p.ID))
	}
	writeJSON(w, status, workerToAPI(&p))
}

// RecordClick handles POST /recommendations/{log_id}/click.
func (s *Server) RecordClick(w http.ResponseWriter, r *http.Request, logID api.LogID) {
	var body api.ClickRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, api.ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	pos, err := s.svc.Feedback.RecordClick(r.Context(), logID, body.WorkerID, derefInt(body.Position))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.ClickResponse{LogID: logID, WorkerID: body.WorkerID, Position: pos})
}

// RecordHire handles POST /recommendations/{log_id}/hire.
func (s *Server) RecordHire(w http.ResponseWriter, r *http.Request, logID api.LogID) {
	var body api.HireRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, api.ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.svc.Feedback.RecordHire(r.Context(), logID, body.WorkerID); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.HireResponse{LogID: logID, WorkerID: body.WorkerID})
}

// GetAnalytics handles GET /recommendations/analytics.
func (s *Server) GetAnalytics(w http.ResponseWriter, r *http.Request, params api.GetAnalyticsParams) {
	report, err := s.svc.Analytics.Report(r.Context(), derefInt(params.Days))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analyticsToAPI(&report))
}

// GetRecommendationHealth handles GET /recommendations/health.
func (s *Server) GetRecommendationHealth(w http.ResponseWriter, r *http.Request) {
	report, err := s.svc.Health.Recommendation(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	status := http.StatusOK
	if !report.Status.Available() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, recommendationHealthToAPI(&report))
}

// TrainModel handles POST /models/train.
func (s *Server) TrainModel(w http.ResponseWriter, r *http.Request, params api.TrainModelParams) {
	m, err := s.svc.Training.Train(r.Context(), derefBool(params.Force))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.TrainResponse{
		Status:         string(m.Status),
		WorkersCount:   m.WorkersCount,
		VocabularySize: m.VocabularySize,
		MatrixShape:    [2]int{m.Rows, m.Cols},
		TrainingTimeMs: m.ElapsedMs,
		ModelID:        m.ModelID,
		TrainedAt:      m.TrainedAt,
	})
}

// InvalidateModel handles DELETE /models/current.
func (s *Server) InvalidateModel(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Training.Invalidate(r.Context()); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ValidateCorpus handles GET /models/corpus.
func (s *Server) ValidateCorpus(w http.ResponseWriter, r *http.Request, params api.ValidateCorpusParams) {
	report, err := s.svc.Training.ValidateCorpus(r.Context(), derefBool(params.Detailed))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, corpusReportToAPI(&report))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.svc.Health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, api.HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// ParamErrorHandler renders parameter binding failures.
func ParamErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	writeError(w, http.StatusBadRequest, api.ErrorResponseCodeBadRequest, err.Error())
}

func (s *Server) searchRequestFromAPI(body *api.RecommendRequest) (request.Request, error) {
	var prof *worker.Profession
	if body.Profession != nil && *body.Profession != "" {
		p, ok := worker.ParseProfession(*body.Profession)
		if !ok {
			return request.Request{}, domain.NewValidation("profession", fmt.Sprintf("unknown value %q", *body.Profession))
		}
		prof = &p
	}

	center, err := filter.ParseGeoCenter(body.Latitude, body.Longitude)
	if err != nil {
		return request.Request{}, err
	}
	filters, err := filter.New(body.MinRating, prof, center, body.MaxDistanceKm)
	if err != nil {
		return request.Request{}, err
	}

	topN := s.defaultTopN
	if body.TopN != nil {
		topN = *body.TopN
		if topN == 0 {
			return request.Request{}, domain.NewValidation("top_n", fmt.Sprintf("must be between 1 and %d", request.MaxTopN))
		}
	}

	var st strategy.Strategy
	if body.Strategy != nil {
		st = strategy.Strategy(*body.Strategy)
	}

	req, err := request.New(body.Query, st, topN, filters)
	if err != nil {
		return request.Request{}, err
	}
	if body.UserID != nil {
		req = req.WithUserID(*body.UserID)
	}
	return req, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code api.ErrorResponseCode, message string) {
	writeJSON(w, status, api.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// sentinelHandler returns an errorHandler that answers with the sentinel's own message.
func sentinelHandler(sentinel error, status int, code api.ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

// detailHandler is sentinelHandler for client errors whose text is safe to echo.
func detailHandler(sentinel error, status int, code api.ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

func insufficientCorpusHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrInsufficientCorpus) {
		return false
	}
	hint := insufficientCorpusHint
	writeJSON(w, http.StatusServiceUnavailable, api.ErrorResponse{
		Code:    api.ErrorResponseCodeInsufficientCorpus,
		Message: domain.ErrInsufficientCorpus.Error(),
		Hint:    &hint,
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOr(r.Context(), s.logger)
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, api.ErrorResponseCodeInternalError, "internal error")
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func derefBool(p *bool) bool {
	if p == nil {
		return false
	}
	return *p
}

func locationToAPI(p *geo.Point) *api.Location {
	if p == nil {
		return nil
	}
	return &api.Location{Latitude: p.Lat, Longitude: p.Lng}
}

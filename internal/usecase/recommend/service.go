// Package recommend ranks workers for free-text requests and explains each result.
package recommend

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/workermatch/internal/domain/search/request"
	"github.com/kailas-cloud/workermatch/internal/domain/search/result"
	"github.com/kailas-cloud/workermatch/internal/domain/search/strategy"
	"github.com/kailas-cloud/workermatch/internal/domain/searchlog"
	"github.com/kailas-cloud/workermatch/internal/logger"
	"github.com/kailas-cloud/workermatch/internal/metrics"
	"github.com/kailas-cloud/workermatch/internal/tfidf"
)

// Response is the outcome of one search.
type Response struct {
	Query          string
	ProcessedQuery string
	Strategy       strategy.Strategy
	Candidates     []result.Candidate
	PerformanceMs  float64
	CacheHit       bool
	LogID          string // empty when the log write failed
}

// TotalResults returns the number of ranked workers.
func (r *Response) TotalResults() int { return len(r.Candidates) }

// Service orchestrates a search: normalize, ensure a model, rank, log.
type Service struct {
	models     ModelProvider
	norm       Normalizer
	logs       LogWriter
	strategies registry
	logger     *zap.Logger
	now        func() time.Time
}

// New creates a recommendation service with the tfidf, fallback and hybrid strategies.
func New(profiles ProfileReader, models ModelProvider, norm Normalizer, logs LogWriter, log *zap.Logger) *Service {
	content := newContentStrategy(profiles)
	return &Service{
		models: models,
		norm:   norm,
		logs:   logs,
		strategies: newRegistry(
			content,
			newFallbackStrategy(profiles, norm),
			newHybridStrategy(content),
		),
		logger: log,
		now:    time.Now,
	}
}

// Search ranks workers for req. Queries shorter than request.MinQueryLength,
// or that normalize to nothing, yield an empty response. Every search is logged.
func (s *Service) Search(ctx context.Context, req request.Request) (Response, error) {
	start := s.now()
	log := logger.FromContextOr(ctx, s.logger)

	resp := Response{
		Query:    req.Query(),
		Strategy: req.Strategy(),
	}
	if !req.IsTooShort() {
		resp.ProcessedQuery = s.norm.Normalize(req.Query())
	}

	if resp.ProcessedQuery != "" {
		cands, cacheHit, err := s.rank(ctx, req, resp.ProcessedQuery)
		if err != nil {
			metrics.SearchesTotal.WithLabelValues(string(req.Strategy()), "error").Inc()
			return Response{}, err
		}
		resp.Candidates = cands
		resp.CacheHit = cacheHit
	}

	elapsed := s.now().Sub(start)
	resp.PerformanceMs = float64(elapsed.Microseconds()) / 1000
	resp.LogID = s.appendLog(ctx, log, req, &resp)

	outcome := "ok"
	if resp.TotalResults() == 0 {
		outcome = "empty"
	}
	metrics.SearchesTotal.WithLabelValues(string(req.Strategy()), outcome).Inc()
	metrics.SearchDuration.WithLabelValues(string(req.Strategy())).Observe(elapsed.Seconds())

	log.Debug("Search completed",
		zap.String("strategy", string(resp.Strategy)),
		zap.String("processed_query", resp.ProcessedQuery),
		zap.Int("results", resp.TotalResults()),
		zap.Bool("cache_hit", resp.CacheHit),
		zap.Float64("performance_ms", resp.PerformanceMs),
	)
	return resp, nil
}

func (s *Service) rank(ctx context.Context, req request.Request, processed string) ([]result.Candidate, bool, error) {
	st, ok := s.strategies[req.Strategy()]
	if !ok {
		return nil, false, fmt.Errorf("unsupported strategy: %s", req.Strategy())
	}

	var (
		model    *tfidf.Model
		cacheHit bool
		err      error
	)
	if req.Strategy().NeedsModel() {
		model, cacheHit, err = s.models.Model(ctx)
		if err != nil {
			return nil, false, fmt.Errorf("get model: %w", err)
		}
	}

	cands, err := st.Rank(ctx, model, Query{Raw: req.Query(), Processed: processed}, req.TopN(), req.Filters())
	if err != nil {
		return nil, false, fmt.Errorf("%s ranking: %w", req.Strategy(), err)
	}
	return cands, cacheHit, nil
}

// appendLog records the search. Failures are logged and never fail the search.
func (s *Service) appendLog(ctx context.Context, log *zap.Logger, req request.Request, resp *Response) string {
	ids := make([]string, len(resp.Candidates))
	for i := range resp.Candidates {
		ids[i] = resp.Candidates[i].Worker.ID
	}

	rec := &searchlog.Record{
		UserID:          req.UserID(),
		Query:           resp.Query,
		ProcessedQuery:  resp.ProcessedQuery,
		Strategy:        resp.Strategy,
		Filters:         req.Filters().Map(),
		ResultWorkerIDs: ids,
		ResponseTimeMs:  resp.PerformanceMs,
		CacheHit:        resp.CacheHit,
		CreatedAt:       s.now(),
	}
	id, err := s.logs.Append(ctx, rec)
	if err != nil {
		log.Warn("Failed to write search log", zap.String("strategy", string(resp.Strategy)), zap.Error(err))
		return ""
	}
	return id
}

package health

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/workermatch/internal/domain/search/result"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db    Pinger
	cache Pinger

	model   ModelInfo
	logs    LogReader
	workers WorkerCounter
	now     func() time.Time
}

// New creates a Service for liveness checks. cache can be nil.
func New(db, cache Pinger) *Service {
	return &Service{db: db, cache: cache, now: time.Now}
}

// WithRecommendation enables the recommendation health report.
func (s *Service) WithRecommendation(model ModelInfo, logs LogReader, workers WorkerCounter) *Service {
	s.model, s.logs, s.workers = model, logs, workers
	return s
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	checks["database"] = probe(ctx, s.db)
	if s.cache != nil {
		checks["cache"] = probe(ctx, s.cache)
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}

func probe(ctx context.Context, p Pinger) CheckResult {
	if err := p.Ping(ctx); err != nil {
		return CheckError
	}
	return CheckOK
}

// EngineStatus is the readiness of the recommendation engine.
type EngineStatus string

// Engine statuses, from best to worst.
const (
	EngineReady      EngineStatus = "ready"
	EngineDegraded   EngineStatus = "degraded"
	EngineNotTrained EngineStatus = "not_trained"
	EngineUnhealthy  EngineStatus = "unhealthy"
)

var severity = map[EngineStatus]int{
	EngineReady:      0,
	EngineDegraded:   1,
	EngineNotTrained: 2,
	EngineUnhealthy:  3,
}

// Available reports whether the engine can serve model-backed searches.
func (e EngineStatus) Available() bool {
	return e == EngineReady || e == EngineDegraded
}

// Thresholds for the recommendation report.
const (
	RecentSampleSize  = 100
	SlowResponseMs    = 200.0
	MinActiveWorkers  = 10
	QuietPeriod       = 24 * time.Hour
	CacheConnected    = "connected"
	CacheDisconnected = "disconnected"
)

// RecommendationReport describes the recommendation engine state.
type RecommendationReport struct {
	Status          EngineStatus
	ModelTrained    bool
	CorpusSize      int
	VocabularySize  int
	LastTrained     *time.Time
	CacheStatus     string
	ActiveWorkers   int64
	AvgResponseMs   *float64 // nil when there is no recent traffic
	Recommendations []string
}

// Recommendation builds the recommendation engine report.
func (s *Service) Recommendation(ctx context.Context) (RecommendationReport, error) {
	r := RecommendationReport{Status: EngineReady, CacheStatus: CacheConnected}
	worsen := func(st EngineStatus) {
		if severity[st] > severity[r.Status] {
			r.Status = st
		}
	}

	if s.cache != nil && s.cache.Ping(ctx) != nil {
		r.CacheStatus = CacheDisconnected
		worsen(EngineUnhealthy)
		r.Recommendations = append(r.Recommendations, "Model cache is unreachable; check the redis connection")
	}

	if r.CacheStatus == CacheConnected {
		meta, ok, err := s.model.Metadata(ctx)
		switch {
		case err != nil:
			r.CacheStatus = CacheDisconnected
			worsen(EngineUnhealthy)
			r.Recommendations = append(r.Recommendations, "Model metadata could not be read")
		case !ok:
			worsen(EngineNotTrained)
			r.Recommendations = append(r.Recommendations, "Train the model: POST /models/train")
		default:
			r.ModelTrained = true
			r.CorpusSize = meta.WorkersCount
			r.VocabularySize = meta.VocabularySize
			trained := meta.TrainedAt
			r.LastTrained = &trained
		}
	}

	recent, err := s.logs.ListRecent(ctx, RecentSampleSize)
	if err != nil {
		return RecommendationReport{}, fmt.Errorf("list recent logs: %w", err)
	}
	if len(recent) > 0 {
		var total float64
		for i := range recent {
			total += recent[i].ResponseTimeMs
		}
		avg := result.Round(total/float64(len(recent)), 2)
		r.AvgResponseMs = &avg
		if avg > SlowResponseMs {
			worsen(EngineDegraded)
			r.Recommendations = append(r.Recommendations,
				fmt.Sprintf("Average response time %.0fms exceeds %.0fms; consider retraining or tuning", avg, SlowResponseMs))
		}
	}

	active, err := s.workers.CountActive(ctx)
	if err != nil {
		return RecommendationReport{}, fmt.Errorf("count active workers: %w", err)
	}
	r.ActiveWorkers = active
	if active < MinActiveWorkers {
		worsen(EngineDegraded)
		r.Recommendations = append(r.Recommendations,
			fmt.Sprintf("Only %d active workers; recommendations need at least %d", active, MinActiveWorkers))
	}

	day, err := s.logs.ListSince(ctx, s.now().Add(-QuietPeriod))
	if err != nil {
		return RecommendationReport{}, fmt.Errorf("list logs since: %w", err)
	}
	if len(day) == 0 {
		r.Recommendations = append(r.Recommendations, "No searches in the last 24 hours")
	}

	return r, nil
}

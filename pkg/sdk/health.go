package workermatch

import (
	"context"
	"time"
)

// HealthStatus represents the aggregated component health.
type HealthStatus struct {
	Status string            // "ok" or "degraded"
	Checks map[string]string // component -> "ok"/"error"
}

// EngineHealth describes the recommendation engine state.
type EngineHealth struct {
	Status          string // "ready", "degraded", "not_trained" or "unhealthy"
	Available       bool
	ModelTrained    bool
	CorpusSize      int
	VocabularySize  int
	LastTrained     *time.Time
	ActiveWorkers   int64
	AvgResponseMs   *float64
	Recommendations []string
}

// Health checks the cache store and the database.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

// EngineHealth reports model, corpus and traffic health.
func (c *Client) EngineHealth(ctx context.Context) (h EngineHealth, err error) {
	start := time.Now()
	defer func() { c.obs.observe("engine_health", start, err) }()

	r, err := c.healthSvc.Recommendation(ctx)
	if err != nil {
		return EngineHealth{}, err
	}
	return EngineHealth{
		Status:          string(r.Status),
		Available:       r.Status.Available(),
		ModelTrained:    r.ModelTrained,
		CorpusSize:      r.CorpusSize,
		VocabularySize:  r.VocabularySize,
		LastTrained:     r.LastTrained,
		ActiveWorkers:   r.ActiveWorkers,
		AvgResponseMs:   r.AvgResponseMs,
		Recommendations: r.Recommendations,
	}, nil
}

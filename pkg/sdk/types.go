package workermatch

import (
	"time"

	"github.com/kailas-cloud/workermatch/internal/domain/geo"
	"github.com/kailas-cloud/workermatch/internal/domain/search/result"
	"github.com/kailas-cloud/workermatch/internal/domain/worker"
	recommenduc "github.com/kailas-cloud/workermatch/internal/usecase/recommend"
	traininguc "github.com/kailas-cloud/workermatch/internal/usecase/training"
)

// Strategy selects how workers are ranked.
type Strategy string

// Ranking strategies.
const (
	StrategyTFIDF    Strategy = "tfidf"
	StrategyFallback Strategy = "fallback"
	StrategyHybrid   Strategy = "hybrid"
)

// Point is a WGS84 coordinate.
type Point struct {
	Lat, Lng float64
}

// Query describes a recommendation search. Zero values mean "not set".
type Query struct {
	Text          string
	Strategy      Strategy // default tfidf
	TopN          int      // default 5, max 20
	MinRating     *float64
	Profession    string // e.g. "PLUMBER"
	Near          *Point
	MaxDistanceKm *float64 // requires Near
	UserID        string
}

// Worker is a worker profile.
type Worker struct {
	ID              string
	FullName        string
	Biography       string
	Profession      string
	YearsExperience int
	HourlyRate      float64
	Rating          float64
	IsVerified      bool
	IsActive        bool
	Location        *Point
	UpdatedAt       time.Time
}

// Recommendation is one ranked worker.
type Recommendation struct {
	Worker
	Score           float64 // [0,1]
	RelevancePct    float64
	MatchedKeywords []string
	Explanation     string // "content_match", "rating_based" or "hybrid_breakdown"
	Summary         string
	DistanceKm      *float64
}

// Result is the outcome of Recommend.
type Result struct {
	Query          string
	ProcessedQuery string
	Strategy       Strategy
	Workers        []Recommendation
	PerformanceMs  float64
	CacheHit       bool
	LogID          string // empty when the search log write failed
}

// TrainResult reports how Train was satisfied.
type TrainResult struct {
	Status         string // "trained" or "cached"
	ModelID        string
	WorkersCount   int
	VocabularySize int
	TrainedAt      time.Time
	Elapsed        time.Duration
}

func workerFromDomain(p *worker.Profile) Worker {
	w := Worker{
		ID:              p.ID,
		FullName:        p.FullName,
		Biography:       p.Biography,
		Profession:      string(p.Profession),
		YearsExperience: p.YearsExperience,
		HourlyRate:      p.HourlyRate,
		Rating:          p.Rating,
		IsVerified:      p.IsVerified,
		IsActive:        p.IsActive,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.Location != nil {
		w.Location = &Point{Lat: p.Location.Lat, Lng: p.Location.Lng}
	}
	return w
}

func resultFromDomain(resp *recommenduc.Response) Result {
	out := Result{
		Query:          resp.Query,
		ProcessedQuery: resp.ProcessedQuery,
		Strategy:       Strategy(resp.Strategy),
		Workers:        make([]Recommendation, 0, len(resp.Candidates)),
		PerformanceMs:  resp.PerformanceMs,
		CacheHit:       resp.CacheHit,
		LogID:          resp.LogID,
	}
	for i := range resp.Candidates {
		c := &resp.Candidates[i]
		rec := Recommendation{
			Worker:          workerFromDomain(c.Worker),
			Score:           c.Score,
			RelevancePct:    c.RelevancePercentage(),
			MatchedKeywords: result.MatchedTerms(c.Explanation),
			Summary:         c.Summary(),
		}
		if c.Explanation != nil {
			rec.Explanation = string(c.Explanation.Kind())
		}
		if hb, ok := c.Explanation.(result.HybridBreakdown); ok {
			rec.DistanceKm = hb.DistanceKm
		}
		out.Workers = append(out.Workers, rec)
	}
	return out
}

func trainResultFromDomain(m *traininguc.Metrics) TrainResult {
	return TrainResult{
		Status:         string(m.Status),
		ModelID:        m.ModelID,
		WorkersCount:   m.WorkersCount,
		VocabularySize: m.VocabularySize,
		TrainedAt:      m.TrainedAt,
		Elapsed:        time.Duration(m.ElapsedMs * float64(time.Millisecond)),
	}
}

func workerToDomain(w *Worker) worker.Profile {
	prof, _ := worker.ParseProfession(w.Profession)
	p := worker.Profile{
		ID:              w.ID,
		FullName:        w.FullName,
		Biography:       w.Biography,
		Profession:      prof,
		YearsExperience: w.YearsExperience,
		HourlyRate:      w.HourlyRate,
		Rating:          w.Rating,
		IsVerified:      w.IsVerified,
		IsActive:        w.IsActive,
	}
	if w.Location != nil {
		p.Location = &geo.Point{Lat: w.Location.Lat, Lng: w.Location.Lng}
	}
	return p
}

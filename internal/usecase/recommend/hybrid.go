package recommend

import (
	"context"
	"fmt"
	"math"

	"github.com/kailas-cloud/workermatch/internal/domain/search/filter"
	"github.com/kailas-cloud/workermatch/internal/domain/search/result"
	"github.com/kailas-cloud/workermatch/internal/domain/search/strategy"
	"github.com/kailas-cloud/workermatch/internal/tfidf"
)

// Hybrid blend weights. They sum to 1.
const (
	WeightContent   = 0.5
	WeightRating    = 0.3
	WeightProximity = 0.2
)

// DefaultProximityKm is the proximity horizon when no max distance is requested.
const DefaultProximityKm = 50.0

const hybridPoolFactor = 2

// hybridStrategy re-scores content matches with rating and proximity.
type hybridStrategy struct {
	content *contentStrategy
}

func newHybridStrategy(content *contentStrategy) *hybridStrategy {
	return &hybridStrategy{content: content}
}

func (s *hybridStrategy) Name() strategy.Strategy { return strategy.Hybrid }

func (s *hybridStrategy) Rank(
	ctx context.Context, m *tfidf.Model, q Query, topN int, f filter.Filters,
) ([]result.Candidate, error) {
	pool, err := s.content.Rank(ctx, m, q, hybridPoolFactor*topN, f)
	if err != nil {
		return nil, fmt.Errorf("content pool: %w", err)
	}

	horizon := DefaultProximityKm
	if d := f.MaxDistanceKm(); d != nil {
		horizon = *d
	}
	center := f.GeoCenter()

	for i := range pool {
		c := &pool[i]
		cm, _ := c.Explanation.(result.ContentMatch)

		var distance *float64
		proximity := 0.0
		if center != nil {
			if d, ok := c.Worker.DistanceKm(*center); ok {
				distance = &d
				proximity = math.Max(0, 1-d/horizon)
			}
		}

		contentPart := WeightContent * cm.Similarity
		ratingPart := WeightRating * result.Clamp01(c.Worker.Rating/filter.MaxRating)
		proximityPart := WeightProximity * proximity
		total := contentPart + ratingPart + proximityPart

		c.RawScore = total
		c.Score = result.Clamp01(total)
		c.Explanation = result.HybridBreakdown{
			Content:            cm,
			ContentComponent:   contentPart,
			RatingComponent:    ratingPart,
			ProximityComponent: proximityPart,
			Total:              total,
			DistanceKm:         distance,
		}
	}

	sortCandidates(pool)
	return truncate(pool, topN), nil
}

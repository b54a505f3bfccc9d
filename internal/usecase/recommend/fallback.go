package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/kailas-cloud/workermatch/internal/domain/search/filter"
	"github.com/kailas-cloud/workermatch/internal/domain/search/result"
	"github.com/kailas-cloud/workermatch/internal/domain/search/strategy"
	"github.com/kailas-cloud/workermatch/internal/domain/worker"
	"github.com/kailas-cloud/workermatch/internal/tfidf"
)

// fallbackStrategy ranks by rating and experience without a model.
// A profession detected in the query narrows the candidate list.
type fallbackStrategy struct {
	profiles ProfileReader
	norm     Normalizer
}

func newFallbackStrategy(profiles ProfileReader, norm Normalizer) *fallbackStrategy {
	return &fallbackStrategy{profiles: profiles, norm: norm}
}

func (s *fallbackStrategy) Name() strategy.Strategy { return strategy.Fallback }

func (s *fallbackStrategy) Rank(
	ctx context.Context, _ *tfidf.Model, q Query, topN int, f filter.Filters,
) ([]result.Candidate, error) {
	var profession *worker.Profession
	if p, ok := s.norm.DetectProfession(q.Processed); ok {
		profession = &p
	}

	profiles, err := s.profiles.ListActive(ctx, profession)
	if err != nil {
		return nil, fmt.Errorf("list active workers: %w", err)
	}
	profiles = filterProfiles(profiles, f)

	sort.SliceStable(profiles, func(i, j int) bool {
		a, b := &profiles[i], &profiles[j]
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		if a.YearsExperience != b.YearsExperience {
			return a.YearsExperience > b.YearsExperience
		}
		return a.ID < b.ID
	})
	if len(profiles) > topN {
		profiles = profiles[:topN]
	}

	out := make([]result.Candidate, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		score := result.Clamp01(p.Rating / filter.MaxRating)
		out[i] = result.Candidate{
			Worker:      p,
			RawScore:    p.Rating,
			Score:       score,
			Explanation: explainRating(p),
		}
	}
	return out, nil
}

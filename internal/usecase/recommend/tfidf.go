package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/kailas-cloud/workermatch/internal/domain/search/filter"
	"github.com/kailas-cloud/workermatch/internal/domain/search/result"
	"github.com/kailas-cloud/workermatch/internal/domain/search/strategy"
	"github.com/kailas-cloud/workermatch/internal/tfidf"
)

// contentPoolFactor oversamples similarity hits so filtering can still fill topN.
const contentPoolFactor = 3

// contentStrategy ranks by cosine similarity between query and worker documents.
type contentStrategy struct {
	profiles ProfileReader
}

func newContentStrategy(profiles ProfileReader) *contentStrategy {
	return &contentStrategy{profiles: profiles}
}

func (s *contentStrategy) Name() strategy.Strategy { return strategy.TFIDF }

func (s *contentStrategy) Rank(
	ctx context.Context, m *tfidf.Model, q Query, topN int, f filter.Filters,
) ([]result.Candidate, error) {
	if m == nil {
		return nil, fmt.Errorf("tfidf strategy requires a model")
	}

	qv := m.Transform(q.Processed)
	if qv.IsZero() {
		return nil, nil
	}

	hits := topHits(m, m.Similarities(qv), contentPoolFactor*topN)
	if len(hits) == 0 {
		return nil, nil
	}

	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = m.WorkerID(h.row)
	}
	workers, err := s.profiles.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve workers: %w", err)
	}

	out := make([]result.Candidate, 0, topN)
	for _, h := range hits {
		p := workers[m.WorkerID(h.row)]
		if !eligible(p, f) {
			continue
		}
		out = append(out, result.Candidate{
			Worker:      p,
			RawScore:    h.score,
			Score:       result.Clamp01(h.score),
			Explanation: explainContent(m, qv, m.Row(h.row), h.score),
		})
		if len(out) == topN {
			break
		}
	}
	return out, nil
}

type hit struct {
	row   int
	score float64
}

// topHits returns up to k rows with strictly positive similarity,
// score descending then worker id ascending.
func topHits(m *tfidf.Model, sims []float64, k int) []hit {
	hits := make([]hit, 0, len(sims))
	for i, s := range sims {
		if s > 0 {
			hits = append(hits, hit{row: i, score: s})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return m.WorkerID(hits[i].row) < m.WorkerID(hits[j].row)
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

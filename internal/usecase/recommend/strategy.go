package recommend

import (
	"context"
	"sort"

	"github.com/kailas-cloud/workermatch/internal/domain/search/filter"
	"github.com/kailas-cloud/workermatch/internal/domain/search/result"
	"github.com/kailas-cloud/workermatch/internal/domain/search/strategy"
	"github.com/kailas-cloud/workermatch/internal/tfidf"
)

// Query carries the raw and processed forms of the search text.
type Query struct {
	Raw       string
	Processed string
}

// Strategy ranks workers for a query. model is nil for strategies that do
// not need one.
type Strategy interface {
	Name() strategy.Strategy
	Rank(ctx context.Context, model *tfidf.Model, q Query, topN int, f filter.Filters) ([]result.Candidate, error)
}

// registry maps validated strategy names to implementations.
type registry map[strategy.Strategy]Strategy

func newRegistry(strategies ...Strategy) registry {
	r := make(registry, len(strategies))
	for _, s := range strategies {
		r[s.Name()] = s
	}
	return r
}

// sortCandidates orders by score descending, then worker id ascending.
func sortCandidates(c []result.Candidate) {
	sort.SliceStable(c, func(i, j int) bool {
		if c[i].Score != c[j].Score {
			return c[i].Score > c[j].Score
		}
		return c[i].Worker.ID < c[j].Worker.ID
	})
}

func truncate(c []result.Candidate, n int) []result.Candidate {
	if len(c) > n {
		return c[:n]
	}
	return c
}

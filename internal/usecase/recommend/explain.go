package recommend

import (
	"sort"

	"github.com/kailas-cloud/workermatch/internal/domain/search/result"
	"github.com/kailas-cloud/workermatch/internal/domain/worker"
	"github.com/kailas-cloud/workermatch/internal/tfidf"
)

// explainContent lists terms weighted in both the query and the worker row,
// strongest query weight first, plus the worker's own top terms.
func explainContent(m *tfidf.Model, q, row tfidf.SparseVector, similarity float64) result.ContentMatch {
	var matched []result.KeywordMatch
	for i, idx := range q.Indices {
		w := row.Get(idx)
		if w == 0 || q.Values[i] == 0 {
			continue
		}
		matched = append(matched, result.KeywordMatch{
			Term:         m.Term(idx),
			QueryWeight:  q.Values[i],
			WorkerWeight: w,
		})
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].QueryWeight != matched[j].QueryWeight {
			return matched[i].QueryWeight > matched[j].QueryWeight
		}
		return matched[i].Term < matched[j].Term
	})
	if len(matched) > result.MaxMatchedKeywords {
		matched = matched[:result.MaxMatchedKeywords]
	}

	top := m.TopTerms(row, result.MaxTopTerms)
	terms := make([]string, len(top))
	for i, idx := range top {
		terms[i] = m.Term(idx)
	}

	return result.ContentMatch{
		MatchedKeywords: matched,
		TopTerms:        terms,
		Similarity:      similarity,
	}
}

func explainRating(p *worker.Profile) result.RatingBased {
	return result.RatingBased{Rating: p.Rating, YearsExperience: p.YearsExperience}
}

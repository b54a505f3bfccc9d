package result

// Kind discriminates Explanation variants.
type Kind string

// Explanation kinds.
const (
	KindContentMatch    Kind = "content_match"
	KindRatingBased     Kind = "rating_based"
	KindHybridBreakdown Kind = "hybrid_breakdown"
)

// Explanation is one of ContentMatch, RatingBased or HybridBreakdown.
type Explanation interface {
	Kind() Kind
	sealed()
}

// KeywordMatch is a vocabulary term weighted in both the query and the worker document.
type KeywordMatch struct {
	Term         string
	QueryWeight  float64
	WorkerWeight float64
}

// ContentMatch explains a similarity-based result.
type ContentMatch struct {
	MatchedKeywords []KeywordMatch // sorted by query weight, descending
	TopTerms        []string       // worker's own highest-weighted terms
	Similarity      float64
}

// RatingBased explains a fallback result.
type RatingBased struct {
	Rating          float64
	YearsExperience int
}

// HybridBreakdown explains a hybrid result. Components are already weighted
// and sum to Total.
type HybridBreakdown struct {
	Content            ContentMatch
	ContentComponent   float64
	RatingComponent    float64
	ProximityComponent float64
	Total              float64
	DistanceKm         *float64
}

// Kind implements Explanation.
func (ContentMatch) Kind() Kind { return KindContentMatch }

// Kind implements Explanation.
func (RatingBased) Kind() Kind { return KindRatingBased }

// Kind implements Explanation.
func (HybridBreakdown) Kind() Kind { return KindHybridBreakdown }

func (ContentMatch) sealed()    {}
func (RatingBased) sealed()     {}
func (HybridBreakdown) sealed() {}

// MatchedTerms returns the matched keyword terms of e, if any.
func MatchedTerms(e Explanation) []string {
	var cm ContentMatch
	switch v := e.(type) {
	case ContentMatch:
		cm = v
	case HybridBreakdown:
		cm = v.Content
	default:
		return nil
	}
	terms := make([]string, len(cm.MatchedKeywords))
	for i, k := range cm.MatchedKeywords {
		terms[i] = k.Term
	}
	return terms
}

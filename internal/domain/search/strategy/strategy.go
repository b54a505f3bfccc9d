package strategy

// Strategy is the ranking strategy.
type Strategy string

// Strategy constants.
const (
	// TFIDF ranks by cosine similarity against the trained model.
	TFIDF Strategy = "tfidf"
	// Fallback ranks by rating and experience without a model.
	Fallback Strategy = "fallback"
	// Hybrid blends similarity, rating and proximity.
	Hybrid Strategy = "hybrid"
)

// Default is used when a request does not name a strategy.
const Default = TFIDF

// IsValid checks if the strategy is one of the supported values.
func (s Strategy) IsValid() bool {
	return s == TFIDF || s == Fallback || s == Hybrid
}

// NeedsModel reports whether the strategy requires a trained model.
func (s Strategy) NeedsModel() bool {
	return s == TFIDF || s == Hybrid
}

// All lists every supported strategy.
func All() []Strategy {
	return []Strategy{TFIDF, Fallback, Hybrid}
}

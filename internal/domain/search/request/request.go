package request

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/workermatch/internal/domain"
	"github.com/kailas-cloud/workermatch/internal/domain/search/filter"
	"github.com/kailas-cloud/workermatch/internal/domain/search/strategy"
)

// Search parameter limits.
const (
	// MinQueryLength is the shortest trimmed query that is ranked at all.
	MinQueryLength = 3
	MaxQueryLength = 500
	DefaultTopN    = 5
	MaxTopN        = 20
)

// Request is a validated recommendation query.
type Request struct {
	query    string
	strategy strategy.Strategy
	topN     int
	filters  filter.Filters
	userID   string
}

// New validates and normalizes search parameters.
// Defaults: strategy=tfidf, topN=5. A query shorter than MinQueryLength is
// accepted and reported through IsTooShort.
func New(query string, s strategy.Strategy, topN int, filters filter.Filters) (Request, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return Request{}, domain.NewValidation("query", fmt.Sprintf("too long (max %d chars)", MaxQueryLength))
	}
	if s == "" {
		s = strategy.Default
	}
	if !s.IsValid() {
		return Request{}, fmt.Errorf("%w: %q", domain.ErrInvalidStrategy, s)
	}
	if topN == 0 {
		topN = DefaultTopN
	}
	if topN < 1 || topN > MaxTopN {
		return Request{}, domain.NewValidation("top_n", fmt.Sprintf("must be between 1 and %d", MaxTopN))
	}

	return Request{
		query:    query,
		strategy: s,
		topN:     topN,
		filters:  filters,
	}, nil
}

// Query returns the trimmed query text.
func (r *Request) Query() string { return r.query }

// Strategy returns the ranking strategy.
func (r *Request) Strategy() strategy.Strategy { return r.strategy }

// TopN returns the maximum number of results.
func (r *Request) TopN() int { return r.topN }

// Filters returns the candidate filters.
func (r *Request) Filters() filter.Filters { return r.filters }

// IsTooShort reports whether the query is below MinQueryLength.
func (r *Request) IsTooShort() bool {
	return utf8.RuneCountInString(r.query) < MinQueryLength
}

// WithUserID returns a copy of r attributed to userID for search logging.
func (r *Request) WithUserID(userID string) Request {
	c := *r
	c.userID = userID
	return c
}

// UserID returns the requesting user, empty for anonymous searches.
func (r *Request) UserID() string { return r.userID }

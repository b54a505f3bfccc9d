package result

import (
	"fmt"
	"math"
	"strings"

	"github.com/kailas-cloud/workermatch/internal/domain/worker"
)

// Display limits.
const (
	MaxMatchedKeywords = 5
	MaxTopTerms        = 5
	summaryKeywords    = 3
)

// Candidate is a ranked worker with its explanation.
type Candidate struct {
	Worker      *worker.Profile
	RawScore    float64
	Score       float64 // normalized to [0,1]
	Explanation Explanation
}

// RelevancePercentage returns the score as a percentage with one decimal.
func (c *Candidate) RelevancePercentage() float64 {
	return Round(c.Score*100, 1)
}

// Summary renders a short human-readable justification,
// e.g. "87% relevant - matches: leak, pipes - 2.5km away".
func (c *Candidate) Summary() string {
	var parts []string

	if pct := c.RelevancePercentage(); pct > 0 {
		parts = append(parts, fmt.Sprintf("%.0f%% relevant", pct))
	}
	if kw := MatchedTerms(c.Explanation); len(kw) > 0 {
		if len(kw) > summaryKeywords {
			kw = kw[:summaryKeywords]
		}
		parts = append(parts, "matches: "+strings.Join(kw, ", "))
	}
	if hb, ok := c.Explanation.(HybridBreakdown); ok && hb.DistanceKm != nil {
		parts = append(parts, fmt.Sprintf("%.1fkm away", *hb.DistanceKm))
	}

	if len(parts) == 0 {
		return "Recommended by filters"
	}
	return strings.Join(parts, " - ")
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Clamp01 bounds v to [0,1].
func Clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

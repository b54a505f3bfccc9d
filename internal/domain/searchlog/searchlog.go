package searchlog

import (
	"time"

	"github.com/kailas-cloud/workermatch/internal/domain/search/strategy"
)

// Record is emitted once per search. Feedback fields are filled later by
// click/hire collaborators and never by the engine itself.
type Record struct {
	ID              string
	UserID          string
	Query           string
	ProcessedQuery  string
	Strategy        strategy.Strategy
	Filters         map[string]any
	ResultWorkerIDs []string // ranked order
	ResponseTimeMs  float64
	CacheHit        bool
	CreatedAt       time.Time

	ClickedWorkerID string
	ClickPosition   int // 1-based, 0 when no click
	HiredWorkerID   string
}

// TotalResults returns the number of ranked workers.
func (r *Record) TotalResults() int { return len(r.ResultWorkerIDs) }

// Clicked reports whether a click was recorded.
func (r *Record) Clicked() bool { return r.ClickedWorkerID != "" }

// Hired reports whether a hire was recorded.
func (r *Record) Hired() bool { return r.HiredWorkerID != "" }

// PositionOf returns the 1-based rank of workerID, or 0 if it was not returned.
func (r *Record) PositionOf(workerID string) int {
	for i, id := range r.ResultWorkerIDs {
		if id == workerID {
			return i + 1
		}
	}
	return 0
}

package searchlog

import (
	"time"

	"github.com/kailas-cloud/workermatch/internal/domain/search/strategy"
	domlog "github.com/kailas-cloud/workermatch/internal/domain/searchlog"
)

// row is the persisted shape of a search log record.
type row struct {
	ID              string         `gorm:"primaryKey;size:36"`
	UserID          string         `gorm:"size:64;index"`
	Query           string         `gorm:"type:text;not null"`
	ProcessedQuery  string         `gorm:"type:text"`
	Strategy        string         `gorm:"size:16;index"`
	Filters         map[string]any `gorm:"serializer:json"`
	ResultWorkerIDs []string       `gorm:"serializer:json"`
	ResponseTimeMs  float64
	CacheHit        bool
	CreatedAt       time.Time `gorm:"index"`
	ClickedWorkerID string    `gorm:"size:36"`
	ClickPosition   int
	HiredWorkerID   string `gorm:"size:36"`
}

func (row) TableName() string { return "search_logs" }

func toRow(r *domlog.Record) row {
	return row{
		ID:              r.ID,
		UserID:          r.UserID,
		Query:           r.Query,
		ProcessedQuery:  r.ProcessedQuery,
		Strategy:        string(r.Strategy),
		Filters:         r.Filters,
		ResultWorkerIDs: r.ResultWorkerIDs,
		ResponseTimeMs:  r.ResponseTimeMs,
		CacheHit:        r.CacheHit,
		CreatedAt:       r.CreatedAt,
		ClickedWorkerID: r.ClickedWorkerID,
		ClickPosition:   r.ClickPosition,
		HiredWorkerID:   r.HiredWorkerID,
	}
}

func (r *row) toDomain() domlog.Record {
	return domlog.Record{
		ID:              r.ID,
		UserID:          r.UserID,
		Query:           r.Query,
		ProcessedQuery:  r.ProcessedQuery,
		Strategy:        strategy.Strategy(r.Strategy),
		Filters:         r.Filters,
		ResultWorkerIDs: r.ResultWorkerIDs,
		ResponseTimeMs:  r.ResponseTimeMs,
		CacheHit:        r.CacheHit,
		CreatedAt:       r.CreatedAt,
		ClickedWorkerID: r.ClickedWorkerID,
		ClickPosition:   r.ClickPosition,
		HiredWorkerID:   r.HiredWorkerID,
	}
}

package searchlog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kailas-cloud/workermatch/internal/domain"
	domlog "github.com/kailas-cloud/workermatch/internal/domain/searchlog"
)

// Repo implements the search log store on gorm.
type Repo struct {
	db  *gorm.DB
	now func() time.Time
}

// New creates a search log repository.
func New(db *gorm.DB) *Repo {
	return &Repo{db: db, now: time.Now}
}

// Migrate creates or updates the search log table.
func (r *Repo) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&row{}); err != nil {
		return fmt.Errorf("migrate search_logs: %w", err)
	}
	return nil
}

// Append persists rec and returns its id. ID and CreatedAt are filled when empty.
func (r *Repo) Append(ctx context.Context, rec *domlog.Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = r.now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC()

	rw := toRow(rec)
	if err := r.db.WithContext(ctx).Create(&rw).Error; err != nil {
		return "", fmt.Errorf("append search log: %w", err)
	}
	return rec.ID, nil
}

// Get returns one record.
func (r *Repo) Get(ctx context.Context, id string) (domlog.Record, error) {
	var rw row
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&rw).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domlog.Record{}, domain.ErrNotFound
		}
		return domlog.Record{}, fmt.Errorf("get search log %s: %w", id, err)
	}
	return rw.toDomain(), nil
}

// RecordClick stores the clicked worker and its 1-based position.
func (r *Repo) RecordClick(ctx context.Context, id, workerID string, position int) error {
	return r.update(ctx, id, map[string]any{
		"clicked_worker_id": workerID,
		"click_position":    position,
	})
}

// RecordHire stores the hired worker.
func (r *Repo) RecordHire(ctx context.Context, id, workerID string) error {
	return r.update(ctx, id, map[string]any{"hired_worker_id": workerID})
}

func (r *Repo) update(ctx context.Context, id string, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&row{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update search log %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListSince returns records created at or after since, oldest first.
func (r *Repo) ListSince(ctx context.Context, since time.Time) ([]domlog.Record, error) {
	var rows []row
	err := r.db.WithContext(ctx).
		Where("created_at >= ?", since.UTC()).
		Order("created_at, id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list search logs: %w", err)
	}
	return toDomain(rows), nil
}

// ListRecent returns the newest limit records, newest first.
func (r *Repo) ListRecent(ctx context.Context, limit int) ([]domlog.Record, error) {
	var rows []row
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list recent search logs: %w", err)
	}
	return toDomain(rows), nil
}

func toDomain(rows []row) []domlog.Record {
	out := make([]domlog.Record, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out
}

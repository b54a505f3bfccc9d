package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kailas-cloud/workermatch/internal/domain"
	"github.com/kailas-cloud/workermatch/internal/domain/worker"
)

// Repo implements the worker profile store on gorm.
type Repo struct {
	db *gorm.DB
}

// New creates a profile repository.
func New(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// Migrate creates or updates the profile table.
func (r *Repo) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&row{}); err != nil {
		return fmt.Errorf("migrate worker_profiles: %w", err)
	}
	return nil
}

// ListTrainable returns active workers with a non-blank biography, ordered by id.
func (r *Repo) ListTrainable(ctx context.Context) ([]worker.Profile, error) {
	var rows []row
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("TRIM(COALESCE(biography, '')) <> ''").
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list trainable profiles: %w", err)
	}
	return toDomainSlice(rows), nil
}

// ListActive returns active workers, optionally restricted to one profession.
func (r *Repo) ListActive(ctx context.Context, profession *worker.Profession) ([]worker.Profile, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if profession != nil {
		q = q.Where("profession = ?", string(*profession))
	}

	var rows []row
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list active profiles: %w", err)
	}
	return toDomainSlice(rows), nil
}

// CountActive returns the number of active workers.
func (r *Repo) CountActive(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&row{}).Where("is_active = ?", true).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count active profiles: %w", err)
	}
	return n, nil
}

// GetByIDs resolves profiles by id. Unknown ids are absent from the result.
func (r *Repo) GetByIDs(ctx context.Context, ids []string) (map[string]*worker.Profile, error) {
	out := make(map[string]*worker.Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []row
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("get profiles by ids: %w", err)
	}
	for i := range rows {
		p := rows[i].toDomain()
		out[p.ID] = &p
	}
	return out, nil
}

// Get returns a single profile.
func (r *Repo) Get(ctx context.Context, id string) (worker.Profile, error) {
	var rw row
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&rw).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return worker.Profile{}, domain.ErrNotFound
		}
		return worker.Profile{}, fmt.Errorf("get profile %s: %w", id, err)
	}
	return rw.toDomain(), nil
}

// Upsert creates or replaces a profile. Returns true if created.
// An empty ID is assigned a fresh UUID.
func (r *Repo) Upsert(ctx context.Context, p *worker.Profile) (bool, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	rw := toRow(p)

	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing row
		err := tx.Where("id = ?", rw.ID).Take(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
			return tx.Create(&rw).Error
		case err != nil:
			return err
		}
		rw.CreatedAt = existing.CreatedAt
		return tx.Save(&rw).Error
	})
	if err != nil {
		return false, fmt.Errorf("upsert profile %s: %w", p.ID, err)
	}

	p.UpdatedAt = rw.UpdatedAt
	return created, nil
}

// Package profile manages worker profiles written by providers.
package profile

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kailas-cloud/workermatch/internal/domain"
	"github.com/kailas-cloud/workermatch/internal/domain/geo"
	"github.com/kailas-cloud/workermatch/internal/domain/worker"
)

// Field limits.
const (
	MaxNameLength      = 200
	MaxBiographyLength = 5000
	MaxRating          = 5.0
)

// Service handles profile writes and keeps the model cache consistent.
type Service struct {
	repo   Repository
	models ModelInvalidator
	logger *zap.Logger
}

// New creates a profile service.
func New(repo Repository, models ModelInvalidator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, models: models, logger: logger}
}

// Save validates and upserts a profile. Returns true if it was created.
// Every write drops the cached model so the next search retrains on fresh text.
func (s *Service) Save(ctx context.Context, p *worker.Profile) (bool, error) {
	if err := validate(p); err != nil {
		return false, err
	}

	created, err := s.repo.Upsert(ctx, p)
	if err != nil {
		return false, fmt.Errorf("upsert profile: %w", err)
	}

	if err := s.models.Invalidate(ctx); err != nil {
		s.logger.Warn("model invalidation after profile write failed",
			zap.String("worker_id", p.ID), zap.Bool("created", created), zap.Error(err))
	}
	return created, nil
}

// Get returns a profile by id.
func (s *Service) Get(ctx context.Context, id string) (worker.Profile, error) {
	if strings.TrimSpace(id) == "" {
		return worker.Profile{}, domain.NewValidation("worker_id", "is required")
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return worker.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func validate(p *worker.Profile) error {
	p.FullName = strings.TrimSpace(p.FullName)
	switch {
	case p.FullName == "":
		return domain.NewValidation("full_name", "is required")
	case utf8.RuneCountInString(p.FullName) > MaxNameLength:
		return domain.NewValidation("full_name", fmt.Sprintf("exceeds %d characters", MaxNameLength))
	case utf8.RuneCountInString(p.Biography) > MaxBiographyLength:
		return domain.NewValidation("biography", fmt.Sprintf("exceeds %d characters", MaxBiographyLength))
	case !p.Profession.IsValid():
		return domain.NewValidation("profession", "is not supported")
	case p.YearsExperience < 0:
		return domain.NewValidation("years_experience", "must not be negative")
	case p.HourlyRate < 0:
		return domain.NewValidation("hourly_rate", "must not be negative")
	case p.Rating < 0 || p.Rating > MaxRating:
		return domain.NewValidation("rating", "must be between 0 and 5")
	}
	if p.Location != nil && !geo.ValidateCoordinates(p.Location.Lat, p.Location.Lng) {
		return domain.NewValidation("location", "coordinates out of range")
	}
	return nil
}

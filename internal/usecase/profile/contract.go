package profile

import (
	"context"

	"github.com/kailas-cloud/workermatch/internal/domain/worker"
)

// Repository defines the storage contract for worker profiles.
type Repository interface {
	Upsert(ctx context.Context, p *worker.Profile) (created bool, err error)
	Get(ctx context.Context, id string) (worker.Profile, error)
}

// ModelInvalidator drops the cached model after corpus changes.
type ModelInvalidator interface {
	Invalidate(ctx context.Context) error
}

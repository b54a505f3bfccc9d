package training

import (
	"context"

	"github.com/kailas-cloud/workermatch/internal/domain/worker"
	"github.com/kailas-cloud/workermatch/internal/tfidf"
)

// ProfileReader lists worker profiles for corpus assembly.
type ProfileReader interface {
	ListTrainable(ctx context.Context) ([]worker.Profile, error)
	ListActive(ctx context.Context, profession *worker.Profession) ([]worker.Profile, error)
}

// ModelCache persists trained models. Load returns nil, nil when absent.
type ModelCache interface {
	Load(ctx context.Context) (*tfidf.Model, error)
	Save(ctx context.Context, m *tfidf.Model) error
	Invalidate(ctx context.Context) error
}

// Normalizer turns raw text into the processed form used for training.
type Normalizer interface {
	Normalize(text string) string
}

package recommend

import (
	"context"

	"github.com/kailas-cloud/workermatch/internal/domain/searchlog"
	"github.com/kailas-cloud/workermatch/internal/domain/worker"
	"github.com/kailas-cloud/workermatch/internal/tfidf"
)

// ProfileReader resolves worker profiles for ranking.
type ProfileReader interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]*worker.Profile, error)
	ListActive(ctx context.Context, profession *worker.Profession) ([]worker.Profile, error)
}

// ModelProvider returns the active model, training one when needed.
type ModelProvider interface {
	Model(ctx context.Context) (*tfidf.Model, bool, error)
}

// Normalizer processes query text and detects professions in it.
type Normalizer interface {
	Normalize(text string) string
	DetectProfession(text string) (worker.Profession, bool)
}

// LogWriter appends search log records.
type LogWriter interface {
	Append(ctx context.Context, rec *searchlog.Record) (string, error)
}

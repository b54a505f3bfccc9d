package health

import (
	"context"
	"time"

	"github.com/kailas-cloud/workermatch/internal/domain/searchlog"
	"github.com/kailas-cloud/workermatch/internal/tfidf"
)

// Pinger checks availability of a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ModelInfo reads metadata of the currently cached model.
type ModelInfo interface {
	Metadata(ctx context.Context) (tfidf.Metadata, bool, error)
}

// LogReader reads recent search activity.
type LogReader interface {
	ListRecent(ctx context.Context, limit int) ([]searchlog.Record, error)
	ListSince(ctx context.Context, since time.Time) ([]searchlog.Record, error)
}

// WorkerCounter counts the active corpus.
type WorkerCounter interface {
	CountActive(ctx context.Context) (int64, error)
}

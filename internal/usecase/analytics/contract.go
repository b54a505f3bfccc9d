package analytics

import (
	"context"
	"time"

	"github.com/kailas-cloud/workermatch/internal/domain/searchlog"
	"github.com/kailas-cloud/workermatch/internal/domain/worker"
)

// LogReader lists search logs in a time window.
type LogReader interface {
	ListSince(ctx context.Context, since time.Time) ([]searchlog.Record, error)
}

// ProfileLister lists active workers for corpus health.
type ProfileLister interface {
	ListActive(ctx context.Context, profession *worker.Profession) ([]worker.Profile, error)
}

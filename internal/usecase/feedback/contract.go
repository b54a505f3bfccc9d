package feedback

import (
	"context"

	"github.com/kailas-cloud/workermatch/internal/domain/searchlog"
)

// LogStore reads search logs and records feedback on them.
type LogStore interface {
	Get(ctx context.Context, id string) (searchlog.Record, error)
	RecordClick(ctx context.Context, id, workerID string, position int) error
	RecordHire(ctx context.Context, id, workerID string) error
}

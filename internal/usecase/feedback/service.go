// Package feedback attaches click and hire signals to logged searches.
package feedback

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/workermatch/internal/domain"
	"github.com/kailas-cloud/workermatch/internal/domain/searchlog"
)

// Service records feedback.
type Service struct {
	logs LogStore
}

// New creates a feedback service.
func New(logs LogStore) *Service {
	return &Service{logs: logs}
}

// RecordClick stores a click on workerID. The worker must be one of the
// logged results; position 0 means "derive from the log", otherwise it must
// match the worker's 1-based rank. Returns the stored position.
func (s *Service) RecordClick(ctx context.Context, logID, workerID string, position int) (int, error) {
	rec, err := s.load(ctx, logID, workerID)
	if err != nil {
		return 0, err
	}

	actual := rec.PositionOf(workerID)
	if actual == 0 {
		return 0, domain.NewValidation("worker_id", "was not among the recommended workers")
	}
	if position != 0 && position != actual {
		return 0, domain.NewValidation("position", fmt.Sprintf("worker was ranked %d, not %d", actual, position))
	}

	if err := s.logs.RecordClick(ctx, logID, workerID, actual); err != nil {
		return 0, fmt.Errorf("record click: %w", err)
	}
	return actual, nil
}

// RecordHire stores a hire of workerID. The worker must be one of the logged results.
func (s *Service) RecordHire(ctx context.Context, logID, workerID string) error {
	rec, err := s.load(ctx, logID, workerID)
	if err != nil {
		return err
	}
	if rec.PositionOf(workerID) == 0 {
		return domain.NewValidation("worker_id", "was not among the recommended workers")
	}

	if err := s.logs.RecordHire(ctx, logID, workerID); err != nil {
		return fmt.Errorf("record hire: %w", err)
	}
	return nil
}

func (s *Service) load(ctx context.Context, logID, workerID string) (searchlog.Record, error) {
	if strings.TrimSpace(logID) == "" {
		return searchlog.Record{}, domain.NewValidation("log_id", "is required")
	}
	if strings.TrimSpace(workerID) == "" {
		return searchlog.Record{}, domain.NewValidation("worker_id", "is required")
	}
	rec, err := s.logs.Get(ctx, logID)
	if err != nil {
		return searchlog.Record{}, fmt.Errorf("get search log: %w", err)
	}
	return rec, nil
}

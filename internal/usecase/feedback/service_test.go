package feedback

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/workermatch/internal/domain"
	"github.com/kailas-cloud/workermatch/internal/domain/searchlog"
)

// --- Mocks ---

type mockLogStore struct {
	records  map[string]searchlog.Record
	clickErr error

	clickedWorker string
	clickedPos    int
	hiredWorker   string
}

func newMockLogStore() *mockLogStore {
	return &mockLogStore{records: map[string]searchlog.Record{
		"log-1": {ID: "log-1", ResultWorkerIDs: []string{"w1", "w2", "w3"}},
	}}
}

func (m *mockLogStore) Get(_ context.Context, id string) (searchlog.Record, error) {
	rec, ok := m.records[id]
	if !ok {
		return searchlog.Record{}, domain.ErrNotFound
	}
	return rec, nil
}

func (m *mockLogStore) RecordClick(_ context.Context, _, workerID string, position int) error {
	if m.clickErr != nil {
		return m.clickErr
	}
	m.clickedWorker, m.clickedPos = workerID, position
	return nil
}

func (m *mockLogStore) RecordHire(_ context.Context, _, workerID string) error {
	m.hiredWorker = workerID
	return nil
}

// --- Tests ---

func TestRecordClick_DerivesPosition(t *testing.T) {
	store := newMockLogStore()
	svc := New(store)

	pos, err := svc.RecordClick(context.Background(), "log-1", "w2", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos != 2 || store.clickedPos != 2 || store.clickedWorker != "w2" {
		t.Errorf("expected w2 at 2, got %s at %d (returned %d)", store.clickedWorker, store.clickedPos, pos)
	}
}

func TestRecordClick_MatchingPosition(t *testing.T) {
	svc := New(newMockLogStore())
	if _, err := svc.RecordClick(context.Background(), "log-1", "w3", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecordClick_Validation(t *testing.T) {
	tests := []struct {
		name     string
		logID    string
		workerID string
		position int
	}{
		{"empty log id", "", "w1", 0},
		{"empty worker id", "log-1", " ", 0},
		{"worker not in results", "log-1", "w9", 0},
		{"position mismatch", "log-1", "w1", 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := New(newMockLogStore())
			_, err := svc.RecordClick(context.Background(), tc.logID, tc.workerID, tc.position)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestRecordClick_UnknownLog(t *testing.T) {
	svc := New(newMockLogStore())
	_, err := svc.RecordClick(context.Background(), "missing", "w1", 0)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordClick_StoreError(t *testing.T) {
	store := newMockLogStore()
	store.clickErr = errors.New("db down")
	svc := New(store)

	if _, err := svc.RecordClick(context.Background(), "log-1", "w1", 1); err == nil {
		t.Fatal("expected error")
	}
}

func TestRecordHire(t *testing.T) {
	store := newMockLogStore()
	svc := New(store)

	if err := svc.RecordHire(context.Background(), "log-1", "w1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.hiredWorker != "w1" {
		t.Errorf("expected w1 hired, got %q", store.hiredWorker)
	}

	if err := svc.RecordHire(context.Background(), "log-1", "w9"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

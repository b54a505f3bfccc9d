package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/workermatch/internal/domain"
	"github.com/kailas-cloud/workermatch/internal/domain/geo"
	"github.com/kailas-cloud/workermatch/internal/domain/search/strategy"
	"github.com/kailas-cloud/workermatch/internal/domain/searchlog"
	"github.com/kailas-cloud/workermatch/internal/domain/worker"
)

// --- Mocks ---

type mockLogs struct {
	records []searchlog.Record
	since   time.Time
	err     error
}

func (m *mockLogs) ListSince(_ context.Context, since time.Time) ([]searchlog.Record, error) {
	m.since = since
	return m.records, m.err
}

type mockProfiles struct {
	profiles []worker.Profile
}

func (m *mockProfiles) ListActive(_ context.Context, _ *worker.Profession) ([]worker.Profile, error) {
	return m.profiles, nil
}

// --- Tests ---

func sampleLogs() []searchlog.Record {
	return []searchlog.Record{
		{UserID: "u1", ProcessedQuery: "leak pipes", Strategy: strategy.TFIDF, ResultWorkerIDs: []string{"a", "b"},
			ResponseTimeMs: 10, CacheHit: true, ClickedWorkerID: "a", ClickPosition: 1, HiredWorkerID: "a"},
		{UserID: "u1", ProcessedQuery: "leak roof", Strategy: strategy.TFIDF, ResultWorkerIDs: []string{"a", "b"},
			ResponseTimeMs: 30, CacheHit: true, ClickedWorkerID: "b", ClickPosition: 2},
		{UserID: "u2", ProcessedQuery: "garden", Strategy: strategy.Fallback, ResultWorkerIDs: []string{"c"},
			ResponseTimeMs: 20},
		{ProcessedQuery: "", Strategy: strategy.Hybrid, ResponseTimeMs: 40},
	}
}

func TestReport(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	logs := &mockLogs{records: sampleLogs()}
	profiles := &mockProfiles{profiles: []worker.Profile{
		{ID: "a", Biography: "abcd", Location: &geo.Point{}},
		{ID: "b", Biography: "abcdefgh"},
		{ID: "c"},
	}}
	svc := New(logs, profiles)
	svc.now = func() time.Time { return now }

	r, err := svc.Report(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !logs.since.Equal(now.Add(-7 * 24 * time.Hour)) {
		t.Errorf("unexpected window start %v", logs.since)
	}
	if r.TotalQueries != 4 || r.UniqueUsers != 2 {
		t.Errorf("expected 4 queries from 2 users, got %d/%d", r.TotalQueries, r.UniqueUsers)
	}
	if r.AvgResponseMs != 25 {
		t.Errorf("expected avg 25ms, got %v", r.AvgResponseMs)
	}
	if r.CacheHitRate != 0.5 || r.CTR != 0.5 || r.ConversionRate != 0.25 {
		t.Errorf("unexpected rates: cache=%v ctr=%v conv=%v", r.CacheHitRate, r.CTR, r.ConversionRate)
	}
	if r.AvgResults != 1.25 {
		t.Errorf("expected 1.25 avg results, got %v", r.AvgResults)
	}
	if r.MRR != 0.75 {
		t.Errorf("expected MRR 0.75, got %v", r.MRR)
	}
	if len(r.TopTerms) == 0 || r.TopTerms[0].Term != "leak" || r.TopTerms[0].Count != 2 {
		t.Errorf("expected leak first, got %+v", r.TopTerms)
	}

	tf := r.Strategies[strategy.TFIDF]
	if tf.Queries != 2 || tf.CTR != 1 || tf.ConversionRate != 0.5 || tf.AvgResponseMs != 20 {
		t.Errorf("unexpected tfidf stats %+v", tf)
	}
	if r.Strategies[strategy.Fallback].CTR != 0 {
		t.Errorf("unexpected fallback stats %+v", r.Strategies[strategy.Fallback])
	}

	c := r.Corpus
	if c.TotalWorkers != 3 || c.WorkersWithBio != 2 || c.AvgBioLength != 6 || c.WorkersNeedUpdate != 2 {
		t.Errorf("unexpected corpus health %+v", c)
	}
	if c.HealthPercentage != 66.7 {
		t.Errorf("expected 66.7%%, got %v", c.HealthPercentage)
	}
}

func TestReport_NoData(t *testing.T) {
	svc := New(&mockLogs{}, &mockProfiles{})
	r, err := svc.Report(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Days != DefaultDays || r.TotalQueries != 0 || r.MRR != 0 {
		t.Errorf("unexpected empty report %+v", r)
	}
}

func TestReport_InvalidDays(t *testing.T) {
	svc := New(&mockLogs{}, &mockProfiles{})
	for _, d := range []int{-1, MaxDays + 1} {
		if _, err := svc.Report(context.Background(), d); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("days=%d: expected ErrValidation, got %v", d, err)
		}
	}
}

func TestReport_StoreError(t *testing.T) {
	svc := New(&mockLogs{err: errors.New("db down")}, &mockProfiles{})
	if _, err := svc.Report(context.Background(), 1); err == nil {
		t.Fatal("expected error")
	}
}

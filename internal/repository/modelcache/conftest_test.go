package modelcache

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/workermatch/internal/db"
	"github.com/kailas-cloud/workermatch/internal/tfidf"
)

// --- Mocks ---

// mockStore is an in-memory store with per-operation error injection.
type mockStore struct {
	kv     map[string][]byte
	hashes map[string]map[string]string
	ttls   map[string]time.Duration

	getErr  error
	setErr  error
	hsetErr error
	delErr  error
	gets    int
}

func newMockStore() *mockStore {
	return &mockStore{
		kv:     make(map[string][]byte),
		hashes: make(map[string]map[string]string),
		ttls:   make(map[string]time.Duration),
	}
}

func (m *mockStore) Get(_ context.Context, key string) ([]byte, error) {
	m.gets++
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.kv[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.kv[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *mockStore) HSet(_ context.Context, key string, fields map[string]string) error {
	if m.hsetErr != nil {
		return m.hsetErr
	}
	h, ok := m.hashes[key]
	if !ok {
		h = make(map[string]string)
		m.hashes[key] = h
	}
	for k, v := range fields {
		h[k] = v
	}
	return nil
}

func (m *mockStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.hashes[key], nil
}

func (m *mockStore) Expire(_ context.Context, key string, ttl time.Duration) error {
	m.ttls[key] = ttl
	return nil
}

func (m *mockStore) Del(_ context.Context, keys ...string) error {
	if m.delErr != nil {
		return m.delErr
	}
	for _, k := range keys {
		delete(m.kv, k)
		delete(m.hashes, k)
	}
	return nil
}

func newTestCache(t *testing.T) (*Cache, *mockStore, *prometheus.CounterVec) {
	t.Helper()
	ms := newMockStore()
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_model_cache_total"}, []string{"result"})
	c := New(ms, Config{Prefix: "test:", TTL: time.Hour}, counter, zap.NewNop())
	return c, ms, counter
}

func fitModel(t *testing.T) *tfidf.Model {
	t.Helper()
	m, err := tfidf.Fit([]tfidf.Document{
		{ID: "w1", Text: "fix leaking pipes and bathroom drains"},
		{ID: "w2", Text: "install electrical wiring and lights"},
	}, tfidf.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m
}

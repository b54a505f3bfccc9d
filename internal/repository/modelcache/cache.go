// Package modelcache stores trained similarity models in Redis/Valkey.
//
// Layout under the configured prefix:
//
//	model:<id>      encoded snapshot, TTL
//	model:current   id of the active snapshot, TTL
//	model:meta      hash with trained_at, workers_count, vocabulary_size, model_id
//
// Invalidate removes only the pointer and the metadata. Snapshots expire on
// their own so readers holding an id never lose the blob under them.
package modelcache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/workermatch/internal/db"
	"github.com/kailas-cloud/workermatch/internal/domain"
	"github.com/kailas-cloud/workermatch/internal/tfidf"
)

// DefaultTTL is used when Config.TTL is zero.
const DefaultTTL = 24 * time.Hour

// store is the consumer interface for the model cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Config controls key layout, expiry and the circuit breaker.
type Config struct {
	Prefix  string
	TTL     time.Duration
	Breaker BreakerConfig
}

// BreakerConfig tunes the circuit breaker around store calls.
type BreakerConfig struct {
	FailureThreshold uint32
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
}

// Cache implements load/save/invalidate of model snapshots.
type Cache struct {
	store      store
	ttl        time.Duration
	currentKey string
	metaKey    string
	modelKey   string
	breaker    *gobreaker.CircuitBreaker[any]
	memo       atomic.Pointer[tfidf.Model]
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a model cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"/"error"), passed explicitly.
func New(s store, cfg Config, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	if cfg.Prefix == "" {
		cfg.Prefix = domain.KeyPrefix
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return &Cache{
		store:      s,
		ttl:        cfg.TTL,
		currentKey: cfg.Prefix + "model:current",
		metaKey:    cfg.Prefix + "model:meta",
		modelKey:   cfg.Prefix + "model:",
		breaker:    newBreaker(cfg.Breaker, logger),
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

func newBreaker(cfg BreakerConfig, logger *zap.Logger) *gobreaker.CircuitBreaker[any] {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "model-cache",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, db.ErrKeyNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
}

// Load returns the active model, or nil when none is cached.
// Store failures are reported as domain.ErrEngineUnavailable.
func (c *Cache) Load(ctx context.Context) (*tfidf.Model, error) {
	id, err := c.get(ctx, c.currentKey)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			c.incCache("miss")
			return nil, nil
		}
		c.incCache("error")
		return nil, unavailable("load current model id", err)
	}

	modelID := string(id)
	if m := c.memo.Load(); m != nil && m.ID() == modelID {
		c.incCache("hit")
		return m, nil
	}

	data, err := c.get(ctx, c.modelKey+modelID)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Model pointer references expired snapshot", zap.String("model_id", modelID))
			c.incCache("miss")
			return nil, nil
		}
		c.incCache("error")
		return nil, unavailable("load model snapshot", err)
	}

	m, err := tfidf.Decode(data)
	if err != nil {
		c.logger.Warn("Failed to decode cached model", zap.String("model_id", modelID), zap.Error(err))
		c.incCache("miss")
		return nil, nil
	}

	c.memo.Store(m)
	c.incCache("hit")
	return m, nil
}

// Save stores m, makes it the active model and records its metadata.
func (c *Cache) Save(ctx context.Context, m *tfidf.Model) error {
	data, err := m.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}

	if err := c.run(func() error {
		return c.store.SetWithTTL(ctx, c.modelKey+m.ID(), data, c.ttl)
	}); err != nil {
		return unavailable("save model snapshot", err)
	}
	if err := c.run(func() error {
		return c.store.SetWithTTL(ctx, c.currentKey, []byte(m.ID()), c.ttl)
	}); err != nil {
		return unavailable("save model pointer", err)
	}

	c.memo.Store(m)

	md := m.Metadata()
	meta := map[string]string{
		"model_id":        md.ModelID,
		"trained_at":      md.TrainedAt.UTC().Format(time.RFC3339Nano),
		"workers_count":   strconv.Itoa(md.WorkersCount),
		"vocabulary_size": strconv.Itoa(md.VocabularySize),
	}
	if err := c.run(func() error {
		if err := c.store.HSet(ctx, c.metaKey, meta); err != nil {
			return err
		}
		return c.store.Expire(ctx, c.metaKey, c.ttl)
	}); err != nil {
		// snapshot and pointer are already in place; metadata only feeds health
		c.logger.Warn("Failed to save model metadata", zap.String("model_id", m.ID()), zap.Error(err))
	}

	return nil
}

// Invalidate clears the active model pointer and metadata.
func (c *Cache) Invalidate(ctx context.Context) error {
	c.memo.Store(nil)
	if err := c.run(func() error {
		return c.store.Del(ctx, c.currentKey, c.metaKey)
	}); err != nil {
		return unavailable("invalidate model", err)
	}
	return nil
}

// Metadata returns the active model metadata. ok is false when no model is recorded.
func (c *Cache) Metadata(ctx context.Context) (tfidf.Metadata, bool, error) {
	res, err := c.breaker.Execute(func() (any, error) {
		return c.store.HGetAll(ctx, c.metaKey)
	})
	if err != nil {
		return tfidf.Metadata{}, false, unavailable("load model metadata", err)
	}
	fields, _ := res.(map[string]string)
	if len(fields) == 0 || fields["model_id"] == "" {
		return tfidf.Metadata{}, false, nil
	}
	return parseMetadata(fields), true, nil
}

// BreakerState reports the breaker state for health output.
func (c *Cache) BreakerState() string {
	return c.breaker.State().String()
}

func (c *Cache) get(ctx context.Context, key string) ([]byte, error) {
	res, err := c.breaker.Execute(func() (any, error) {
		return c.store.Get(ctx, key)
	})
	if err != nil {
		return nil, err //nolint:wrapcheck // callers wrap
	}
	data, _ := res.([]byte)
	return data, nil
}

func (c *Cache) run(fn func() error) error {
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, fn()
	})
	return err //nolint:wrapcheck // callers wrap
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrEngineUnavailable, err)
}

func parseMetadata(fields map[string]string) tfidf.Metadata {
	meta := tfidf.Metadata{ModelID: fields["model_id"]}
	if t, err := time.Parse(time.RFC3339Nano, fields["trained_at"]); err == nil {
		meta.TrainedAt = t
	}
	meta.WorkersCount, _ = strconv.Atoi(fields["workers_count"])
	meta.VocabularySize, _ = strconv.Atoi(fields["vocabulary_size"])
	return meta
}

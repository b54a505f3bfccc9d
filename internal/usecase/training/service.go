// Package training assembles the worker corpus, fits the similarity model
// and keeps a single trained snapshot available to searches.
package training

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/workermatch/internal/domain"
	"github.com/kailas-cloud/workermatch/internal/logger"
	"github.com/kailas-cloud/workermatch/internal/metrics"
	"github.com/kailas-cloud/workermatch/internal/tfidf"
)

// Defaults applied by New when Config fields are zero.
const (
	DefaultPoolSize = 8
	DefaultTimeout  = 2 * time.Minute
)

const (
	flightTrain = "train"
	flightLocal = "train:local"
)

// Status reports how a Train call was satisfied.
type Status string

const (
	// StatusTrained means a new model was fitted.
	StatusTrained Status = "trained"
	// StatusCached means a valid cached model was reused.
	StatusCached Status = "cached"
)

// Metrics summarises a training call.
type Metrics struct {
	Status         Status
	WorkersCount   int
	VocabularySize int
	Rows, Cols     int
	ElapsedMs      float64
	ModelID        string
	TrainedAt      time.Time
}

// Config tunes training.
type Config struct {
	TFIDF    tfidf.Config
	PoolSize int
	Timeout  time.Duration
}

// Service trains and serves the similarity model.
type Service struct {
	profiles ProfileReader
	cache    ModelCache
	norm     Normalizer
	cfg      Config
	pool     *ants.Pool
	group    singleflight.Group
	gen      atomic.Uint64 // bumped by Invalidate
	logger   *zap.Logger
	now      func() time.Time
}

type flightResult struct {
	model   *tfidf.Model
	metrics Metrics
}

// New creates a training service with its normalization pool.
func New(profiles ProfileReader, cache ModelCache, norm Normalizer, cfg Config, log *zap.Logger) (*Service, error) {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = DefaultPoolSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.TFIDF.NGramMax == 0 {
		cfg.TFIDF = tfidf.DefaultConfig()
	}

	pool, err := ants.NewPool(cfg.PoolSize)
	if err != nil {
		return nil, fmt.Errorf("create normalization pool: %w", err)
	}

	return &Service{
		profiles: profiles,
		cache:    cache,
		norm:     norm,
		cfg:      cfg,
		pool:     pool,
		logger:   log,
		now:      time.Now,
	}, nil
}

// Close releases the normalization pool.
func (s *Service) Close() {
	s.pool.Release()
}

// Train returns cached metrics when a model exists and force is false;
// otherwise it fits a new model and stores it.
func (s *Service) Train(ctx context.Context, force bool) (Metrics, error) {
	if !force {
		m, err := s.cache.Load(ctx)
		if err != nil {
			return Metrics{}, fmt.Errorf("load cached model: %w", err)
		}
		if m != nil {
			metrics.TrainingRunsTotal.WithLabelValues(string(StatusCached)).Inc()
			return cachedMetrics(m), nil
		}
	}

	res, err := s.flight(ctx, flightTrain, true)
	if err != nil {
		return Metrics{}, err
	}
	return res.metrics, nil
}

// Model returns the active model, training one if the cache is empty.
// cacheHit reports whether the model came from the cache. When the cache
// store is unreachable a model is fitted in-process and not written back.
func (s *Service) Model(ctx context.Context) (*tfidf.Model, bool, error) {
	m, err := s.cache.Load(ctx)
	switch {
	case err == nil && m != nil:
		return m, true, nil
	case err != nil && errors.Is(err, domain.ErrEngineUnavailable):
		logger.FromContextOr(ctx, s.logger).Warn("Model cache unavailable, training in-process", zap.Error(err))
		res, ferr := s.flight(ctx, flightLocal, false)
		if ferr != nil {
			return nil, false, ferr
		}
		return res.model, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("load cached model: %w", err)
	}

	res, err := s.flight(ctx, flightTrain, true)
	if err != nil {
		return nil, false, err
	}
	return res.model, false, nil
}

// Invalidate drops the active model so the next search retrains.
// Runs already in flight finish for their callers but are not cached.
func (s *Service) Invalidate(ctx context.Context) error {
	s.gen.Add(1)
	if err := s.cache.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidate model: %w", err)
	}
	return nil
}

// flight runs one training per key and generation at a time. Callers share
// the result. Training is detached from the caller's cancellation and bounded
// by cfg.Timeout.
func (s *Service) flight(ctx context.Context, key string, persist bool) (flightResult, error) {
	log := logger.FromContextOr(ctx, s.logger)
	gen := s.gen.Load()
	ch := s.group.DoChan(fmt.Sprintf("%s:%d", key, gen), func() (any, error) {
		tctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.Timeout)
		defer cancel()
		return s.train(tctx, persist, gen, log)
	})

	select {
	case <-ctx.Done():
		return flightResult{}, fmt.Errorf("wait for training: %w", ctx.Err())
	case r := <-ch:
		if r.Err != nil {
			return flightResult{}, r.Err
		}
		return r.Val.(flightResult), nil
	}
}

func (s *Service) train(ctx context.Context, persist bool, gen uint64, log *zap.Logger) (flightResult, error) {
	start := s.now()

	res, err := s.fit(ctx)
	if err != nil {
		metrics.TrainingRunsTotal.WithLabelValues("failed").Inc()
		log.Error("Model training failed", zap.Error(err))
		return flightResult{}, err
	}

	// an Invalidate during the run means the corpus may have changed after it was read
	if persist && s.gen.Load() != gen {
		persist = false
		log.Info("Model invalidated during training, not caching", zap.String("model_id", res.model.ID()))
	}
	if persist {
		if err := s.cache.Save(ctx, res.model); err != nil {
			log.Warn("Failed to cache trained model", zap.String("model_id", res.model.ID()), zap.Error(err))
		}
	}

	elapsed := s.now().Sub(start)
	res.metrics.ElapsedMs = float64(elapsed.Microseconds()) / 1000

	metrics.TrainingRunsTotal.WithLabelValues(string(StatusTrained)).Inc()
	metrics.TrainingDuration.Observe(elapsed.Seconds())
	metrics.VocabularySize.Set(float64(res.metrics.VocabularySize))
	metrics.CorpusSize.Set(float64(res.metrics.WorkersCount))

	log.Info("Model trained",
		zap.String("model_id", res.metrics.ModelID),
		zap.Int("workers", res.metrics.WorkersCount),
		zap.Int("vocabulary", res.metrics.VocabularySize),
		zap.Bool("persisted", persist),
		zap.Duration("elapsed", elapsed),
	)
	return res, nil
}

func (s *Service) fit(ctx context.Context) (flightResult, error) {
	profiles, err := s.profiles.ListTrainable(ctx)
	if err != nil {
		return flightResult{}, fmt.Errorf("list trainable profiles: %w", err)
	}

	raw := make([]tfidf.Document, len(profiles))
	for i := range profiles {
		raw[i] = tfidf.Document{ID: profiles[i].ID, Text: profiles[i].Document()}
	}

	docs, err := s.normalize(ctx, raw)
	if err != nil {
		return flightResult{}, err
	}
	if len(docs) == 0 {
		return flightResult{}, fmt.Errorf("%w: no worker has a usable biography", domain.ErrInsufficientCorpus)
	}

	m, err := tfidf.Fit(docs, s.cfg.TFIDF)
	if err != nil {
		if errors.Is(err, tfidf.ErrEmptyVocabulary) {
			return flightResult{}, fmt.Errorf("%w: %w", domain.ErrInsufficientCorpus, err)
		}
		return flightResult{}, fmt.Errorf("fit model: %w", err)
	}

	rows, cols := m.Shape()
	return flightResult{
		model: m,
		metrics: Metrics{
			Status:         StatusTrained,
			WorkersCount:   rows,
			VocabularySize: m.VocabularySize(),
			Rows:           rows,
			Cols:           cols,
			ModelID:        m.ID(),
			TrainedAt:      m.TrainedAt(),
		},
	}, nil
}

// normalize fans document normalization out over the pool. Empty results
// are dropped; input order is preserved.
func (s *Service) normalize(ctx context.Context, docs []tfidf.Document) ([]tfidf.Document, error) {
	out := make([]tfidf.Document, len(docs))
	var wg sync.WaitGroup

	for i := range docs {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, fmt.Errorf("normalize corpus: %w", err)
		}
		wg.Add(1)
		task := func() {
			defer wg.Done()
			out[i] = tfidf.Document{ID: docs[i].ID, Text: s.norm.Normalize(docs[i].Text)}
		}
		if err := s.pool.Submit(task); err != nil {
			// pool closed or overloaded: do the work on this goroutine
			task()
		}
	}
	wg.Wait()

	kept := out[:0]
	for _, d := range out {
		if d.Text != "" {
			kept = append(kept, d)
		}
	}
	return kept, nil
}

func cachedMetrics(m *tfidf.Model) Metrics {
	rows, cols := m.Shape()
	return Metrics{
		Status:         StatusCached,
		WorkersCount:   rows,
		VocabularySize: m.VocabularySize(),
		Rows:           rows,
		Cols:           cols,
		ModelID:        m.ID(),
		TrainedAt:      m.TrainedAt(),
	}
}

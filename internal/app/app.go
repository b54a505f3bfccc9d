// Package app wires repositories and use cases into a running engine.
// It is shared by the HTTP server, the admin CLI and the SDK.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kailas-cloud/workermatch/internal/config"
	"github.com/kailas-cloud/workermatch/internal/db"
	"github.com/kailas-cloud/workermatch/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/workermatch/internal/db/redis"
	"github.com/kailas-cloud/workermatch/internal/metrics"
	"github.com/kailas-cloud/workermatch/internal/nlp"
	"github.com/kailas-cloud/workermatch/internal/repository/modelcache"
	profilerepo "github.com/kailas-cloud/workermatch/internal/repository/profile"
	searchlogrepo "github.com/kailas-cloud/workermatch/internal/repository/searchlog"
	"github.com/kailas-cloud/workermatch/internal/tfidf"
	analyticsuc "github.com/kailas-cloud/workermatch/internal/usecase/analytics"
	feedbackuc "github.com/kailas-cloud/workermatch/internal/usecase/feedback"
	healthuc "github.com/kailas-cloud/workermatch/internal/usecase/health"
	profileuc "github.com/kailas-cloud/workermatch/internal/usecase/profile"
	recommenduc "github.com/kailas-cloud/workermatch/internal/usecase/recommend"
	traininguc "github.com/kailas-cloud/workermatch/internal/usecase/training"
)

// Settings tunes the engine independently of where it runs.
type Settings struct {
	KeyPrefix       string
	CacheTTL        time.Duration
	MaxFeatures     int
	PoolSize        int
	TrainingTimeout time.Duration
	Breaker         modelcache.BreakerConfig
	NLPResources    string // file path; empty = embedded tables
}

// SettingsFromConfig maps the recommend and breaker config sections.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		KeyPrefix:       cfg.Recommend.KeyPrefix,
		CacheTTL:        cfg.Recommend.CacheTTL(),
		MaxFeatures:     cfg.Recommend.MaxFeatures,
		PoolSize:        cfg.Recommend.PoolSize,
		TrainingTimeout: cfg.Recommend.TrainingTimeout(),
		Breaker: modelcache.BreakerConfig{
			FailureThreshold: cfg.Breaker.FailureThreshold,
			MaxRequests:      cfg.Breaker.MaxRequests,
			Interval:         time.Duration(cfg.Breaker.IntervalSec) * time.Second,
			Timeout:          time.Duration(cfg.Breaker.TimeoutSec) * time.Second,
		},
		NLPResources: cfg.Recommend.NLPResources,
	}
}

// Deps are the external stores the engine runs on.
type Deps struct {
	Cache  db.Store
	DB     *gorm.DB
	Logger *zap.Logger
}

// App holds the wired use cases.
type App struct {
	Training   *traininguc.Service
	Recommend  *recommenduc.Service
	Profiles   *profileuc.Service
	Feedback   *feedbackuc.Service
	Analytics  *analyticsuc.Service
	Health     *healthuc.Service
	ModelCache *modelcache.Cache

	profileRepo *profilerepo.Repo
	logRepo     *searchlogrepo.Repo
}

// New wires the engine on deps. Call Close to release the training pool.
func New(deps Deps, s Settings) (*App, error) {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if deps.Cache == nil || deps.DB == nil {
		return nil, fmt.Errorf("cache store and database are required")
	}

	res, err := loadResources(s.NLPResources)
	if err != nil {
		return nil, err
	}
	norm := nlp.NewNormalizer(res)

	profiles := profilerepo.New(deps.DB)
	logs := searchlogrepo.New(deps.DB)
	cache := modelcache.New(deps.Cache, modelcache.Config{
		Prefix:  s.KeyPrefix,
		TTL:     s.CacheTTL,
		Breaker: s.Breaker,
	}, metrics.ModelCacheTotal, log)

	tcfg := tfidf.DefaultConfig()
	if s.MaxFeatures > 0 {
		tcfg.MaxFeatures = s.MaxFeatures
	}
	training, err := traininguc.New(profiles, cache, norm, traininguc.Config{
		TFIDF:    tcfg,
		PoolSize: s.PoolSize,
		Timeout:  s.TrainingTimeout,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("create training service: %w", err)
	}

	return &App{
		Training:   training,
		Recommend:  recommenduc.New(profiles, training, norm, logs, log),
		Profiles:   profileuc.New(profiles, training, log),
		Feedback:   feedbackuc.New(logs),
		Analytics:  analyticsuc.New(logs, profiles),
		Health:     healthuc.New(postgres.NewPinger(deps.DB), deps.Cache).WithRecommendation(cache, logs, profiles),
		ModelCache: cache,

		profileRepo: profiles,
		logRepo:     logs,
	}, nil
}

// Migrate creates or updates the relational schema.
func (a *App) Migrate(ctx context.Context) error {
	if err := a.profileRepo.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate profiles: %w", err)
	}
	if err := a.logRepo.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate search logs: %w", err)
	}
	return nil
}

// Close releases the training pool.
func (a *App) Close() {
	a.Training.Close()
}

func loadResources(path string) (*nlp.Resources, error) {
	if path == "" {
		res, err := nlp.DefaultResources()
		if err != nil {
			return nil, fmt.Errorf("load embedded nlp resources: %w", err)
		}
		return res, nil
	}
	res, err := nlp.LoadResources(path)
	if err != nil {
		return nil, fmt.Errorf("load nlp resources %s: %w", path, err)
	}
	return res, nil
}

// Connect opens the cache store and the database described by cfg and waits
// for the cache to become ready.
func Connect(ctx context.Context, cfg *config.Config) (db.Store, *gorm.DB, error) {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.Database.Addrs,
		Username:   cfg.Database.Username,
		Password:   cfg.Database.Password,
		DB:         cfg.Database.DB,
		Standalone: cfg.Database.Driver == "redis" && len(cfg.Database.Addrs) == 1,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create %s store: %w", cfg.Database.Driver, err)
	}

	timeout := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, timeout); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("%s not ready: %w", cfg.Database.Driver, err)
	}

	gdb, err := postgres.Open(postgres.Config{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetimeSec) * time.Second,
		LogSQL:          cfg.Postgres.LogSQL,
	})
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("open postgres: %w", err)
	}

	return store, gdb, nil
}

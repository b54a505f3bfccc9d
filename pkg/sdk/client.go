package workermatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kailas-cloud/workermatch/internal/app"
	"github.com/kailas-cloud/workermatch/internal/db"
	"github.com/kailas-cloud/workermatch/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/workermatch/internal/db/redis"
	"github.com/kailas-cloud/workermatch/internal/domain/search/request"
	"github.com/kailas-cloud/workermatch/internal/domain/worker"
	healthuc "github.com/kailas-cloud/workermatch/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/workermatch/internal/usecase/recommend"
	traininguc "github.com/kailas-cloud/workermatch/internal/usecase/training"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, swapped for mocks in tests.
type recommendUseCase interface {
	Search(ctx context.Context, req request.Request) (recommenduc.Response, error)
}

type trainingUseCase interface {
	Train(ctx context.Context, force bool) (traininguc.Metrics, error)
	Invalidate(ctx context.Context) error
}

type profileUseCase interface {
	Save(ctx context.Context, p *worker.Profile) (bool, error)
	Get(ctx context.Context, id string) (worker.Profile, error)
}

type feedbackUseCase interface {
	RecordClick(ctx context.Context, logID, workerID string, position int) (int, error)
	RecordHire(ctx context.Context, logID, workerID string) error
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
	Recommendation(ctx context.Context) (healthuc.RecommendationReport, error)
}

// Client is the workermatch SDK entry point.
type Client struct {
	recommendSvc recommendUseCase
	trainingSvc  trainingUseCase
	profileSvc   profileUseCase
	feedbackSvc  feedbackUseCase
	healthSvc    healthUseCase
	obs          *observer

	closers []func()
}

// New connects to the cache store and the database and wires the engine.
// The provided context is used for the readiness check and migrations.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("workermatch: cache address required (use WithRedis or WithValkey)")
	}
	if cfg.dsn == "" && cfg.gormDB == nil {
		return nil, errors.New("workermatch: database required (use WithPostgres or WithGorm)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("workermatch: cache not ready: %w", err)
	}
	closers := []func(){store.Close}

	gdb, closeDB, err := openDB(cfg)
	if err != nil {
		store.Close()
		return nil, err
	}
	if closeDB != nil {
		closers = append(closers, closeDB)
	}

	engine, err := app.New(app.Deps{Cache: store, DB: gdb, Logger: zap.NewNop()}, app.Settings{
		KeyPrefix:   cfg.keyPrefix,
		CacheTTL:    cfg.cacheTTL,
		MaxFeatures: cfg.maxFeatures,
		PoolSize:    cfg.poolSize,
	})
	if err != nil {
		runClosers(closers)
		return nil, fmt.Errorf("workermatch: %w", err)
	}
	closers = append([]func(){engine.Close}, closers...)

	if cfg.autoMigrate {
		if err := engine.Migrate(ctx); err != nil {
			runClosers(closers)
			return nil, fmt.Errorf("workermatch: %w", err)
		}
	}

	c := wireClient(engine, obs)
	c.closers = closers
	return c, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "redis", "valkey":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.addrs,
			Password:   cfg.password,
			Standalone: cfg.standalone,
		})
		if err != nil {
			return nil, fmt.Errorf("workermatch: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("workermatch: unknown driver %q", cfg.driver)
	}
}

// openDB returns the configured connection and, when the client owns it, its closer.
func openDB(cfg *clientConfig) (*gorm.DB, func(), error) {
	if cfg.gormDB != nil {
		return cfg.gormDB, nil, nil
	}
	gdb, err := postgres.Open(postgres.Config{DSN: cfg.dsn})
	if err != nil {
		return nil, nil, fmt.Errorf("workermatch: open postgres: %w", err)
	}
	return gdb, func() { _ = postgres.Close(gdb) }, nil
}

func wireClient(engine *app.App, obs *observer) *Client {
	return &Client{
		recommendSvc: engine.Recommend,
		trainingSvc:  engine.Training,
		profileSvc:   engine.Profiles,
		feedbackSvc:  engine.Feedback,
		healthSvc:    engine.Health,
		obs:          obs,
	}
}

func runClosers(closers []func()) {
	for _, fn := range closers {
		fn()
	}
}

// Close stops the training pool and releases the connections the client opened.
func (c *Client) Close() {
	runClosers(c.closers)
	c.closers = nil
}

// Ping checks cache and database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	report := c.healthSvc.Check(ctx)
	if report.Status == healthuc.Healthy {
		return nil
	}
	var failed []error
	for name, res := range report.Checks {
		if res != healthuc.CheckOK {
			failed = append(failed, fmt.Errorf("%s: %s", name, res))
		}
	}
	return fmt.Errorf("ping: %w", errors.Join(failed...))
}

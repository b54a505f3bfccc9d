package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/workermatch/internal/app"
	"github.com/kailas-cloud/workermatch/internal/config"
	"github.com/kailas-cloud/workermatch/internal/db/postgres"
	"github.com/kailas-cloud/workermatch/internal/domain/search/request"
	logpkg "github.com/kailas-cloud/workermatch/internal/logger"
	recommenduc "github.com/kailas-cloud/workermatch/internal/usecase/recommend"
	traininguc "github.com/kailas-cloud/workermatch/internal/usecase/training"
)

// engine is the subset of the wired app the commands drive.
type engine interface {
	Train(ctx context.Context, force bool) (traininguc.Metrics, error)
	ValidateCorpus(ctx context.Context, detailed bool) (traininguc.CorpusReport, error)
	Invalidate(ctx context.Context) error
	Search(ctx context.Context, req request.Request) (recommenduc.Response, error)
}

// connectFunc opens an engine for env. The returned func releases it.
type connectFunc func(ctx context.Context, env, logLevel string) (engine, func(), error)

type appEngine struct {
	*traininguc.Service
	search *recommenduc.Service
}

func (e appEngine) Search(ctx context.Context, req request.Request) (recommenduc.Response, error) {
	return e.search.Search(ctx, req)
}

func connectEngine(ctx context.Context, env, logLevel string) (engine, func(), error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if logLevel == "" {
		logLevel = cfg.Logging.Level
	}
	logger, err := logpkg.NewLogger(env, logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}

	store, gdb, err := app.Connect(ctx, &cfg)
	if err != nil {
		return nil, nil, err
	}
	a, err := app.New(app.Deps{Cache: store, DB: gdb, Logger: logger}, app.SettingsFromConfig(&cfg))
	if err != nil {
		store.Close()
		_ = postgres.Close(gdb)
		return nil, nil, err
	}

	release := func() {
		a.Close()
		store.Close()
		if err := postgres.Close(gdb); err != nil {
			logger.Warn("close database", zap.Error(err))
		}
		_ = logger.Sync()
	}
	return appEngine{Service: a.Training, search: a.Recommend}, release, nil
}

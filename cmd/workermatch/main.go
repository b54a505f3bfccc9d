package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kailas-cloud/workermatch/internal/app"
	"github.com/kailas-cloud/workermatch/internal/config"
	"github.com/kailas-cloud/workermatch/internal/db/postgres"
	logpkg "github.com/kailas-cloud/workermatch/internal/logger"
	"github.com/kailas-cloud/workermatch/internal/metrics"
	"github.com/kailas-cloud/workermatch/internal/transport/api"
	chiTransport "github.com/kailas-cloud/workermatch/internal/transport/chi"
	"github.com/kailas-cloud/workermatch/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting workermatch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	ctx := context.Background()
	store, gdb, err := app.Connect(ctx, &cfg)
	if err != nil {
		logger.Fatal("Failed to connect stores", zap.Error(err))
	}
	defer store.Close()
	defer func() {
		if err := postgres.Close(gdb); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}()
	logger.Info("Connected to cache store and database")

	// Registered explicitly, no init()
	metrics.RegisterRecommendMetrics()

	engine, err := app.New(app.Deps{Cache: store, DB: gdb, Logger: logger}, app.SettingsFromConfig(&cfg))
	if err != nil {
		logger.Fatal("Failed to build engine", zap.Error(err))
	}
	defer engine.Close()

	if cfg.Postgres.AutoMigrate {
		if err := engine.Migrate(ctx); err != nil {
			logger.Fatal("Failed to migrate schema", zap.Error(err))
		}
		logger.Info("Schema migrated")
	}

	server := chiTransport.NewServer(chiTransport.Services{
		Recommend: engine.Recommend,
		Training:  engine.Training,
		Profiles:  engine.Profiles,
		Feedback:  engine.Feedback,
		Analytics: engine.Analytics,
		Health:    engine.Health,
	}, cfg.Recommend.DefaultTopN, logger)

	limiter := chiTransport.NewRateLimiter(cfg.Recommend.RateLimitPerMinute, cfg.Recommend.RateLimitBurst)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.AdminAuthMiddleware(cfg.Auth.AdminKeys))
	r.Use(limiter.Middleware("/workers/recommend"))
	r.Use(metrics.Middleware())
	api.HandlerWithOptions(server, api.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: chiTransport.ParamErrorHandler,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer returns a JSON error body instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(api.ErrorResponse{
						Code:    api.ErrorResponseCodeInternalError,
						Message: "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits one canonical log line per request and echoes X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}

package workermatch

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kailas-cloud/workermatch/internal/domain"
	healthuc "github.com/kailas-cloud/workermatch/internal/usecase/health"
)

func TestNew_NoAddress(t *testing.T) {
	_, err := New(context.Background(), WithPostgres("postgres://localhost/db"))
	if err == nil {
		t.Fatal("expected error when no address provided")
	}
}

func TestNew_NoDatabase(t *testing.T) {
	_, err := New(context.Background(), WithRedis("localhost:6379", ""))
	if err == nil || !strings.Contains(err.Error(), "database required") {
		t.Fatalf("expected database required error, got %v", err)
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := &clientConfig{driver: "unknown", addrs: []string{"localhost:1234"}}
	_, err := createStore(cfg)
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestOpenDB_ReusesGorm(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	got, closeDB, err := openDB(&clientConfig{gormDB: gdb})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != gdb {
		t.Error("expected the supplied connection")
	}
	if closeDB != nil {
		t.Error("client must not close a connection it does not own")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithValkey("localhost:6379", "secret").apply(cfg)
	if cfg.driver != "valkey" {
		t.Errorf("driver = %q, want valkey", cfg.driver)
	}
	if cfg.addrs[0] != "localhost:6379" {
		t.Errorf("addr = %q, want localhost:6379", cfg.addrs[0])
	}
	if cfg.password != "secret" {
		t.Errorf("password = %q, want secret", cfg.password)
	}

	cfg2 := &clientConfig{}
	WithRedis("localhost:6380", "pass").apply(cfg2)
	WithStandalone().apply(cfg2)
	if cfg2.driver != "redis" || !cfg2.standalone {
		t.Errorf("driver = %q standalone = %t, want redis/true", cfg2.driver, cfg2.standalone)
	}

	cfg3 := &clientConfig{}
	WithPostgres("postgres://app@localhost/workers").apply(cfg3)
	WithAutoMigrate().apply(cfg3)
	WithKeyPrefix("test:").apply(cfg3)
	WithModelTTL(time.Hour).apply(cfg3)
	WithMaxFeatures(500).apply(cfg3)
	WithPoolSize(2).apply(cfg3)
	if cfg3.dsn != "postgres://app@localhost/workers" || !cfg3.autoMigrate {
		t.Errorf("dsn = %q autoMigrate = %t", cfg3.dsn, cfg3.autoMigrate)
	}
	if cfg3.keyPrefix != "test:" || cfg3.cacheTTL != time.Hour {
		t.Errorf("keyPrefix = %q cacheTTL = %v", cfg3.keyPrefix, cfg3.cacheTTL)
	}
	if cfg3.maxFeatures != 500 || cfg3.poolSize != 2 {
		t.Errorf("maxFeatures = %d poolSize = %d", cfg3.maxFeatures, cfg3.poolSize)
	}

	cfg4 := &clientConfig{}
	logger := slog.Default()
	WithLogger(logger).apply(cfg4)
	if cfg4.logger != logger {
		t.Error("expected logger to be set")
	}

	cfg5 := &clientConfig{}
	reg := prometheus.NewRegistry()
	WithPrometheus(reg).apply(cfg5)
	if cfg5.metricsReg != reg {
		t.Error("expected metricsReg to be set")
	}
}

func TestClient_Close_Idempotent(t *testing.T) {
	calls := 0
	c := &Client{closers: []func(){func() { calls++ }}}
	c.Close()
	c.Close()
	if calls != 1 {
		t.Errorf("closer called %d times, want 1", calls)
	}
}

func TestClient_Ping(t *testing.T) {
	c := testClient()
	c.healthSvc = &mockHealthUC{report: healthuc.Report{
		Status: healthuc.Healthy,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK, "cache": healthuc.CheckOK},
	}}
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.healthSvc = &mockHealthUC{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK, "cache": healthuc.CheckError},
	}}
	err := c.Ping(context.Background())
	if err == nil || !strings.Contains(err.Error(), "cache") {
		t.Fatalf("expected cache failure, got %v", err)
	}
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("test", time.Now(), nil)
	obs.observe("test", time.Now(), errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("recommend", time.Now().Add(-10*time.Millisecond), nil)
	obs.observe("recommend", time.Now(), errors.New("redis down"))
	obs.observe("recommend", time.Now(), domain.NewValidation("top_n", "must be between 1 and 20"))

	ops := obs.metrics.operations
	if got := testutil.ToFloat64(ops.WithLabelValues("recommend", "ok")); got != 1 {
		t.Errorf("ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(ops.WithLabelValues("recommend", "error")); got != 1 {
		t.Errorf("error = %v, want 1", got)
	}
	if got := testutil.ToFloat64(ops.WithLabelValues("recommend", "rejected")); got != 1 {
		t.Errorf("rejected = %v, want 1", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "workermatch_sdk_operations_total" {
			found = true
		}
	}
	if !found {
		t.Error("workermatch_sdk_operations_total not found")
	}
}

func TestObserver_ReusesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	second, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("second newObserver: %v", err)
	}
	if first.metrics.operations != second.metrics.operations {
		t.Error("expected the registered counter to be reused")
	}
}

func TestObserver_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs, err := newObserver(logger, nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	obs.observe("train", time.Now(), nil)
	obs.observe("train", time.Now(), errors.New("store down"))

	out := buf.String()
	if !strings.Contains(out, "operation completed") || !strings.Contains(out, "operation failed") {
		t.Errorf("unexpected log output:\n%s", out)
	}
}

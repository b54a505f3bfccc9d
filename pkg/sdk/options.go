package workermatch

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver     string // "valkey" or "redis"
	addrs      []string
	password   string
	standalone bool

	dsn         string
	gormDB      *gorm.DB
	autoMigrate bool

	keyPrefix   string
	cacheTTL    time.Duration
	maxFeatures int
	poolSize    int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithValkey configures the model cache on a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis configures the model cache on a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithStandalone disables cluster topology discovery.
func WithStandalone() Option {
	return optionFunc(func(c *clientConfig) {
		c.standalone = true
	})
}

// WithPostgres opens the profile and search log database from a DSN.
func WithPostgres(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.dsn = dsn
	})
}

// WithGorm reuses an existing gorm connection instead of opening one.
// The client does not close it.
func WithGorm(db *gorm.DB) Option {
	return optionFunc(func(c *clientConfig) {
		c.gormDB = db
	})
}

// WithAutoMigrate creates the workers and search log tables on New.
func WithAutoMigrate() Option {
	return optionFunc(func(c *clientConfig) {
		c.autoMigrate = true
	})
}

// WithKeyPrefix namespaces cache keys. Default: "workermatch:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithModelTTL sets how long a trained model stays cached. Default: 24h.
func WithModelTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
	})
}

// WithMaxFeatures caps the model vocabulary. Default: 1000.
func WithMaxFeatures(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxFeatures = n
	})
}

// WithPoolSize sets the number of training workers.
func WithPoolSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.poolSize = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

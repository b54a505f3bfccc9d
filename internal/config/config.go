package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the workermatch configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Auth      AuthConfig      `yaml:"auth"`
	Recommend RecommendConfig `yaml:"recommend"`
	Breaker   BreakerConfig   `yaml:"breaker"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds admin API authentication settings.
type AuthConfig struct {
	AdminKeys []string `yaml:"admin_keys"` // empty = auth disabled
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds the model cache store connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // valkey, redis (default: redis)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// PostgresConfig holds the profile and search log database settings.
type PostgresConfig struct {
	DSN                string `yaml:"dsn"`
	MaxOpenConns       int    `yaml:"max_open_conns"`
	MaxIdleConns       int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeSec int    `yaml:"conn_max_lifetime_sec"`
	LogSQL             bool   `yaml:"log_sql"`
	AutoMigrate        bool   `yaml:"auto_migrate"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	KeyPrefix          string `yaml:"key_prefix"`
	CacheTTLSec        int    `yaml:"cache_ttl_sec"`
	MaxFeatures        int    `yaml:"max_features"`
	DefaultTopN        int    `yaml:"default_top_n"`
	TrainingTimeoutSec int    `yaml:"training_timeout_sec"`
	PoolSize           int    `yaml:"pool_size"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"` // 0 = default, negative = disabled
	RateLimitBurst     int    `yaml:"rate_limit_burst"`
	NLPResources       string `yaml:"nlp_resources"` // path; empty = embedded tables
}

// BreakerConfig holds the model cache circuit breaker settings.
type BreakerConfig struct {
	FailureThreshold uint32 `yaml:"failure_threshold"`
	MaxRequests      uint32 `yaml:"max_requests"`
	IntervalSec      int    `yaml:"interval_sec"`
	TimeoutSec       int    `yaml:"timeout_sec"`
}

// CacheTTL returns the model cache TTL.
func (c RecommendConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSec) * time.Second
}

// TrainingTimeout returns the training deadline.
func (c RecommendConfig) TrainingTimeout() time.Duration {
	return time.Duration(c.TrainingTimeoutSec) * time.Second
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML after ${VAR} expansion, then applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "redis"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Postgres.MaxOpenConns <= 0 {
		c.Postgres.MaxOpenConns = 10
	}
	if c.Postgres.MaxIdleConns <= 0 {
		c.Postgres.MaxIdleConns = 5
	}
	if c.Postgres.ConnMaxLifetimeSec <= 0 {
		c.Postgres.ConnMaxLifetimeSec = 1800
	}
	if c.Recommend.KeyPrefix == "" {
		c.Recommend.KeyPrefix = "workermatch:"
	}
	if c.Recommend.CacheTTLSec <= 0 {
		c.Recommend.CacheTTLSec = 86400
	}
	if c.Recommend.MaxFeatures <= 0 {
		c.Recommend.MaxFeatures = 1000
	}
	if c.Recommend.DefaultTopN <= 0 {
		c.Recommend.DefaultTopN = 5
	}
	if c.Recommend.TrainingTimeoutSec <= 0 {
		c.Recommend.TrainingTimeoutSec = 120
	}
	if c.Recommend.PoolSize <= 0 {
		c.Recommend.PoolSize = 8
	}
	if c.Recommend.RateLimitPerMinute == 0 {
		c.Recommend.RateLimitPerMinute = 60
	}
	if c.Breaker.FailureThreshold == 0 {
		c.Breaker.FailureThreshold = 5
	}
	if c.Breaker.MaxRequests == 0 {
		c.Breaker.MaxRequests = 1
	}
	if c.Breaker.TimeoutSec <= 0 {
		c.Breaker.TimeoutSec = 30
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case "redis", "valkey":
	default:
		return fmt.Errorf("database.driver must be \"redis\" or \"valkey\", got %q", c.Database.Driver)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if c.Postgres.DSN == "" {
		return fmt.Errorf("postgres.dsn is required")
	}
	if c.Recommend.DefaultTopN > 20 {
		return fmt.Errorf("recommend.default_top_n must be between 1 and 20, got %d", c.Recommend.DefaultTopN)
	}
	if c.Recommend.RateLimitBurst < 0 {
		return fmt.Errorf("recommend.rate_limit_burst must not be negative, got %d", c.Recommend.RateLimitBurst)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}

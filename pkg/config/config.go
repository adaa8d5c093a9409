package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Price source kinds
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Price data
	Prices PriceConfig

	// Statistics
	Stats StatsConfig

	// Database (PRICE_SOURCE=postgres)
	Database DatabaseConfig

	// SQLite (PRICE_SOURCE=sqlite)
	SQLite SQLiteConfig

	// Redis (price series cache)
	Redis RedisConfig

	// Logging
	LogLevel  string
	LogFormat string

	// API
	RateLimit float64 // requests per second, 0 disables
	RateBurst int
}

// PriceConfig selects and tunes the price loader
type PriceConfig struct {
	Source     string // csv, postgres, sqlite
	DataDir    string // base directory for relative CSV sources
	DateLayout string // Go time layout for the Date column
	CacheTTL   time.Duration
}

// StatsConfig holds statistics defaults
type StatsConfig struct {
	RiskFreeRate    float64
	ValidateWeights bool
	WeightTolerance float64
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// SQLiteConfig holds the SQLite price store location
type SQLiteConfig struct {
	Path string
}

// Load reads configuration from environment variables.
// A set but malformed value is an error, never a silent default.
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	env := &envReader{}
	cfg := &Config{
		Port: env.str("PORT", "8080"),
		Env:  env.str("ENV", "development"),

		Prices: PriceConfig{
			Source:     env.str("PRICE_SOURCE", SourceCSV),
			DataDir:    env.str("PRICE_DATA_DIR", ""),
			DateLayout: env.str("PRICE_DATE_LAYOUT", "2006-01-02"),
			CacheTTL:   env.duration("PRICE_CACHE_TTL", 24*time.Hour),
		},

		Stats: StatsConfig{
			RiskFreeRate:    env.float("RISK_FREE_RATE", 0.0),
			ValidateWeights: env.boolean("WEIGHT_VALIDATION", false),
			WeightTolerance: env.float("WEIGHT_TOLERANCE", 1e-6),
		},

		Database: DatabaseConfig{
			URL:             env.str("DATABASE_URL", ""),
			MaxConns:        env.integer("DB_MAX_CONNS", 10),
			MinConns:        env.integer("DB_MIN_CONNS", 1),
			MaxConnLifetime: env.duration("DB_MAX_CONN_LIFETIME", time.Hour),
			MaxConnIdleTime: env.duration("DB_MAX_CONN_IDLE_TIME", 30*time.Minute),
		},

		SQLite: SQLiteConfig{
			Path: env.str("SQLITE_PATH", ""),
		},

		Redis: RedisConfig{
			Host:     env.str("REDIS_HOST", "localhost"),
			Port:     env.str("REDIS_PORT", "6379"),
			Password: env.str("REDIS_PASSWORD", ""),
			DB:       env.integer("REDIS_DB", 0),
			Enabled:  env.boolean("REDIS_ENABLED", false),
		},

		LogLevel:  env.str("LOG_LEVEL", "info"),
		LogFormat: env.str("LOG_FORMAT", "console"),

		RateLimit: env.float("API_RATE_LIMIT", 20),
		RateBurst: env.integer("API_RATE_BURST", 40),
	}

	if err := env.err(); err != nil {
		return nil, fmt.Errorf("config parse failed: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that the selected price source has what it needs
func (c *Config) Validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	switch c.Prices.Source {
	case SourceCSV:
	case SourcePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when PRICE_SOURCE=%s", SourcePostgres)
		}
	case SourceSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("SQLITE_PATH is required when PRICE_SOURCE=%s", SourceSQLite)
		}
	default:
		return fmt.Errorf("PRICE_SOURCE must be one of: %s, %s, %s", SourceCSV, SourcePostgres, SourceSQLite)
	}

	if c.Stats.WeightTolerance < 0 {
		return fmt.Errorf("WEIGHT_TOLERANCE must not be negative")
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("API_RATE_LIMIT must not be negative (0 disables it)")
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		return fmt.Errorf("API_RATE_BURST must be at least 1 when API_RATE_LIMIT is set")
	}

	return nil
}

// loadEnvFile loads the first .env found in the working directory,
// next to the executable, or one level above it
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

// envReader reads typed variables and collects every parse failure
type envReader struct {
	errs []error
}

func (r *envReader) str(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (r *envReader) integer(key string, def int) int {
	return parseEnv(r, key, def, strconv.Atoi)
}

func (r *envReader) float(key string, def float64) float64 {
	return parseEnv(r, key, def, func(v string) (float64, error) {
		return strconv.ParseFloat(v, 64)
	})
}

func (r *envReader) boolean(key string, def bool) bool {
	return parseEnv(r, key, def, strconv.ParseBool)
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	return parseEnv(r, key, def, time.ParseDuration)
}

func (r *envReader) err() error {
	return errors.Join(r.errs...)
}

func parseEnv[T any](r *envReader, key string, def T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s=%q: %w", key, raw, err))
		return def
	}
	return v
}

package util

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type CacheBackend string

const (
	CacheBackend_Memory   CacheBackend = "memory"
	CacheBackend_Sqlite   CacheBackend = "sqlite"
	CacheBackend_Postgres CacheBackend = "postgres"
)

type Config struct {
	Env                string
	Port               int
	CacheBackend       CacheBackend
	SqlitePath         string
	Db                 DbConfig
	CacheTTL           time.Duration
	FetchTimeout       time.Duration
	MaxFetchAttempts   int
	JustEtfBaseURL     string
	CachePurgeSchedule string
}

type DbConfig struct {
	Host      string
	User      string
	Port      string
	Password  string
	Database  string
	EnableSsl bool
}

func (t DbConfig) ToConnectionStr() string {
	x := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
		t.Host, t.Port, t.User, t.Password, t.Database)
	if !t.EnableSsl {
		x += " sslmode=disable"
	}
	return x
}

// LoadConfig reads .env when present, then the process environment.
// Unset values fall back to defaults; malformed values are an error.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	// lambda only allows writes under /tmp and keeps no disk between cold starts
	defaultBackend, defaultSqlitePath := CacheBackend_Sqlite, "./data/etf_cache.db"
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		defaultBackend, defaultSqlitePath = CacheBackend_Memory, "/tmp/etf_cache.db"
	}

	var err error
	cfg := &Config{
		Env:                getEnv("ETF_OVERLAP_ENV", "dev"),
		CacheBackend:       CacheBackend(strings.ToLower(getEnv("CACHE_BACKEND", string(defaultBackend)))),
		SqlitePath:         getEnv("SQLITE_PATH", defaultSqlitePath),
		JustEtfBaseURL:     getEnv("JUSTETF_BASE_URL", ""),
		CachePurgeSchedule: getEnv("CACHE_PURGE_SCHEDULE", "@daily"),
		Db: DbConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Database: getEnv("DB_NAME", "etf_overlap"),
		},
	}

	if cfg.Port, err = getEnvAsInt("PORT", 3009); err != nil {
		return nil, err
	}
	if cfg.Db.EnableSsl, err = getEnvAsBool("DB_ENABLE_SSL", false); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getEnvAsDuration("CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = getEnvAsDuration("FETCH_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.MaxFetchAttempts, err = getEnvAsInt("MAX_FETCH_ATTEMPTS", 3); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch c.CacheBackend {
	case CacheBackend_Memory, CacheBackend_Postgres:
	case CacheBackend_Sqlite:
		if c.SqlitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite cache backend")
		}
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", c.CacheBackend)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.CacheTTL)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	}
	if c.MaxFetchAttempts < 1 {
		return fmt.Errorf("MAX_FETCH_ATTEMPTS must be at least 1, got %d", c.MaxFetchAttempts)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return i, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

package util

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	// keep a stray .env in the package dir from leaking in
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Run("defaults", func(t *testing.T) {
		for _, k := range []string{"CACHE_BACKEND", "PORT", "CACHE_TTL", "FETCH_TIMEOUT", "MAX_FETCH_ATTEMPTS", "DB_ENABLE_SSL", "SQLITE_PATH", "AWS_LAMBDA_FUNCTION_NAME"} {
			t.Setenv(k, "")
		}
		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, CacheBackend_Sqlite, cfg.CacheBackend)
		require.Equal(t, 3009, cfg.Port)
		require.Equal(t, 24*time.Hour, cfg.CacheTTL)
		require.Equal(t, 3, cfg.MaxFetchAttempts)
		require.Equal(t, "@daily", cfg.CachePurgeSchedule)
	})

	t.Run("lambda defaults to the memory cache", func(t *testing.T) {
		t.Setenv("CACHE_BACKEND", "")
		t.Setenv("SQLITE_PATH", "")
		t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "etf-overlap-api")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, CacheBackend_Memory, cfg.CacheBackend)
		require.Equal(t, "/tmp/etf_cache.db", cfg.SqlitePath)

		t.Setenv("CACHE_BACKEND", "sqlite")
		cfg, err = LoadConfig()
		require.NoError(t, err)
		require.Equal(t, CacheBackend_Sqlite, cfg.CacheBackend)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("CACHE_BACKEND", "Memory")
		t.Setenv("PORT", "8080")
		t.Setenv("CACHE_TTL", "1h30m")
		t.Setenv("FETCH_TIMEOUT", "5s")
		t.Setenv("MAX_FETCH_ATTEMPTS", "1")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, CacheBackend_Memory, cfg.CacheBackend)
		require.Equal(t, 8080, cfg.Port)
		require.Equal(t, 90*time.Minute, cfg.CacheTTL)
		require.Equal(t, 5*time.Second, cfg.FetchTimeout)
		require.Equal(t, 1, cfg.MaxFetchAttempts)
	})

	t.Run("malformed values are rejected", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "tomorrow")
		_, err := LoadConfig()
		require.ErrorContains(t, err, "CACHE_TTL")
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("CACHE_BACKEND", "redis")
		_, err := LoadConfig()
		require.ErrorContains(t, err, "CACHE_BACKEND")
	})
}

func TestDbConfig_ToConnectionStr(t *testing.T) {
	cfg := DbConfig{Host: "localhost", Port: "5432", User: "u", Password: "p", Database: "d"}
	require.Equal(t, "host=localhost port=5432 user=u password=p dbname=d sslmode=disable", cfg.ToConnectionStr())

	cfg.EnableSsl = true
	require.Equal(t, "host=localhost port=5432 user=u password=p dbname=d", cfg.ToConnectionStr())
}

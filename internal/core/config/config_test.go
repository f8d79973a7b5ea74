package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var engineKeys = []string{
	"APP_ENV", "LOG_LEVEL", "SERVER_PORT", "RANDOM_SEED",
	"DEFAULT_ALGORITHM", "GA_POPULATION", "GA_GENERATIONS", "GA_MUTATION_RATE",
	"TRACKING_TICK_INTERVAL", "VERIFICATION_CACHE_TTL", "CACHE_DRIVER", "REDIS_URL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range engineKeys {
		os.Unsetenv(k)
	}
}

// TestLoad_Defaults verifies that default values are used when env vars are missing.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(".")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, uint64(0), cfg.RandomSeed)
	assert.Equal(t, "dijkstra", cfg.Routing.DefaultAlgorithm)
	assert.Equal(t, 50, cfg.Routing.GAPopulation)
	assert.Equal(t, 100, cfg.Routing.GAGenerations)
	assert.InDelta(t, 0.1, cfg.Routing.GAMutationRate, 1e-9)
	assert.Equal(t, 30*time.Second, cfg.Tracking.TickInterval)
	assert.Equal(t, 24*time.Hour, cfg.Verification.CacheTTL)
	assert.Equal(t, CacheDriverMemory, cfg.Verification.CacheDriver)
}

// TestLoad_EnvVars verifies that environment variables override defaults.
func TestLoad_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("RANDOM_SEED", "42")
	t.Setenv("DEFAULT_ALGORITHM", "astar")
	t.Setenv("TRACKING_TICK_INTERVAL", "5s")
	t.Setenv("CACHE_DRIVER", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, uint64(42), cfg.RandomSeed)
	assert.Equal(t, "astar", cfg.Routing.DefaultAlgorithm)
	assert.Equal(t, 5*time.Second, cfg.Tracking.TickInterval)
	assert.Equal(t, CacheDriverRedis, cfg.Verification.CacheDriver)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Verification.RedisURL)
}

// TestLoad_File verifies that values are loaded from a .env file.
func TestLoad_File(t *testing.T) {
	clearEnv(t)
	content := []byte(`
APP_ENV=staging
LOG_LEVEL=warn
SERVER_PORT=7070
GA_GENERATIONS=20
VERIFICATION_CACHE_TTL=1h
`)
	err := os.WriteFile(".env", content, 0644)
	require.NoError(t, err)
	defer os.Remove(".env")

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 7070, cfg.ServerPort)
	assert.Equal(t, 20, cfg.Routing.GAGenerations)
	assert.Equal(t, time.Hour, cfg.Verification.CacheTTL)
}

// TestLoad_RedisWithoutURL verifies that the redis driver demands a URL.
func TestLoad_RedisWithoutURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("CACHE_DRIVER", "redis")

	cfg, err := Load(".")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "missing required configuration: REDIS_URL")
}

// TestLoad_InvalidDriver verifies that unknown cache drivers are rejected.
func TestLoad_InvalidDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("CACHE_DRIVER", "memcached")

	_, err := Load(".")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid CACHE_DRIVER")
}

// TestLoad_InvalidDefaultAlgorithm verifies that misspelled strategies fail at startup.
func TestLoad_InvalidDefaultAlgorithm(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEFAULT_ALGORITHM", "genetics")

	_, err := Load(".")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid DEFAULT_ALGORITHM "genetics"`)
}

// TestLoad_DefaultAlgorithmCase verifies that strategy names are normalized.
func TestLoad_DefaultAlgorithmCase(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEFAULT_ALGORITHM", "AStar")

	cfg, err := Load(".")
	require.NoError(t, err)
	assert.Equal(t, "astar", cfg.Routing.DefaultAlgorithm)
}

// TestValidateRequired verifies that empty required fields are reported by key.
func TestValidateRequired(t *testing.T) {
	cfg := &AppConfig{LogLevel: "info"}

	err := validateRequired(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required configuration: APP_ENV")

	cfg.Environment = "development"
	assert.NoError(t, validateRequired(cfg))
}

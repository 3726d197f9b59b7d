package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"LIMELINK_API_KEY", "LIMELINK_PROJECT_ID", "LIMELINK_TRANSPORT", "PORT",
	"CACHE_BACKEND", "REDIS_ADDR", "LIMELINK_DOCS_TTL",
	"LIMELINK_API_BASE_URL", "LIMELINK_DOCS_BASE_URL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.APIKey)
	assert.False(t, cfg.HasAPIKey())
	assert.Equal(t, TransportStdio, cfg.Transport)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.CacheBackend)
	assert.Equal(t, "127.0.0.1:6379", cfg.RedisAddr)
	assert.Equal(t, time.Hour, cfg.DocsTTL)
	assert.Equal(t, "https://api.limelink.org/api/v1", cfg.APIBaseURL)
	assert.Equal(t, "https://limelink.org", cfg.DocsBaseURL)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LIMELINK_API_KEY", "secret")
	t.Setenv("LIMELINK_PROJECT_ID", "proj-1")
	t.Setenv("LIMELINK_TRANSPORT", "HTTP")
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("LIMELINK_DOCS_TTL", "15m")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.HasAPIKey())
	assert.Equal(t, "proj-1", cfg.ProjectID)
	assert.Equal(t, TransportHTTP, cfg.Transport)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "redis", cfg.CacheBackend)
	assert.Equal(t, 15*time.Minute, cfg.DocsTTL)
}

func TestFromEnvBlankAPIKeyIsUnset(t *testing.T) {
	clearEnv(t)
	t.Setenv("LIMELINK_API_KEY", "   ")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.False(t, cfg.HasAPIKey())
}

func TestFromEnvInvalid(t *testing.T) {
	tests := map[string]struct {
		key, value string
	}{
		"transport": {"LIMELINK_TRANSPORT", "grpc"},
		"backend":   {"CACHE_BACKEND", "memcached"},
		"ttl":       {"LIMELINK_DOCS_TTL", "soon"},
		"zero ttl":  {"LIMELINK_DOCS_TTL", "0s"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables that are already set, even to ""
	require.NoError(t, os.Unsetenv("LIMELINK_PROJECT_ID"))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LIMELINK_PROJECT_ID=from-dotenv\n"), 0o600))
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.ProjectID)
}

func TestLoadWithoutDotEnv(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	_, err := Load()
	require.NoError(t, err)
}

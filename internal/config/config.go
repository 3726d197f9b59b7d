package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"limelink-mcp/internal/cache"
	"limelink-mcp/internal/docs"
	"limelink-mcp/internal/limelink"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

type Config struct {
	APIKey    string
	ProjectID string

	Transport    string // "stdio" or "http"
	Port         string
	CacheBackend string // "memory" or "redis"
	RedisAddr    string
	DocsTTL      time.Duration

	APIBaseURL  string
	DocsBaseURL string
}

// Load reads an optional .env file from the working directory, then the
// process environment. Variables already set in the environment win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		APIKey:       strings.TrimSpace(os.Getenv("LIMELINK_API_KEY")),
		ProjectID:    strings.TrimSpace(os.Getenv("LIMELINK_PROJECT_ID")),
		Transport:    strings.ToLower(getenv("LIMELINK_TRANSPORT", TransportStdio)),
		Port:         getenv("PORT", "8080"),
		CacheBackend: strings.ToLower(getenv("CACHE_BACKEND", cache.BackendMemory)),
		RedisAddr:    getenv("REDIS_ADDR", "127.0.0.1:6379"),
		DocsTTL:      cache.DefaultTTL,
		APIBaseURL:   getenv("LIMELINK_API_BASE_URL", limelink.DefaultBaseURL),
		DocsBaseURL:  getenv("LIMELINK_DOCS_BASE_URL", docs.DefaultBaseURL),
	}

	if raw := os.Getenv("LIMELINK_DOCS_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("LIMELINK_DOCS_TTL: %w", err)
		}
		if ttl <= 0 {
			return Config{}, fmt.Errorf("LIMELINK_DOCS_TTL must be positive, got %s", raw)
		}
		cfg.DocsTTL = ttl
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("LIMELINK_TRANSPORT must be %q or %q, got %q", TransportStdio, TransportHTTP, c.Transport)
	}
	switch c.CacheBackend {
	case cache.BackendMemory, cache.BackendRedis:
	default:
		return fmt.Errorf("CACHE_BACKEND must be %q or %q, got %q", cache.BackendMemory, cache.BackendRedis, c.CacheBackend)
	}
	return nil
}

// HasAPIKey reports whether the Limelink API tools can be served.
func (c Config) HasAPIKey() bool {
	return c.APIKey != ""
}

// getenv returns the value of the environment variable key or def if not set.
func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

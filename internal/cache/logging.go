package cache

import (
	"context"
	"strings"
	"time"

	"limelink-mcp/pkg/logging/logging"

	"go.uber.org/zap"
)

// LoggingStore wraps a Store with structured logging. It is the one place
// store errors are logged; hit/miss counting belongs to the caller, which
// knows which lookups answer a request.
type LoggingStore struct {
	inner Store
}

// NewLoggingStore returns a store that logs every access.
func NewLoggingStore(inner Store) Store {
	return &LoggingStore{inner: inner}
}

func (s *LoggingStore) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	value, ok, err := s.inner.Get(ctx, key)
	latencyMs := float64(time.Since(start).Microseconds()) / 1000.0

	result := "miss"
	if err != nil {
		result = "error"
	} else if ok {
		result = "hit"
	}

	fields := []zap.Field{
		zap.String("cache_key", key),
		zap.String("doc_kind", keyKind(key)),
		zap.String("cache_result", result), // hit | miss | error
		zap.Float64("latency_ms", latencyMs),
	}

	logger := logging.L(ctx)
	if err != nil {
		logger.Error("doc_cache_get", append(fields, zap.Error(err))...)
	} else {
		logger.Debug("doc_cache_get", fields...)
	}

	return value, ok, err
}

func (s *LoggingStore) Set(ctx context.Context, key string, value string) error {
	start := time.Now()
	err := s.inner.Set(ctx, key, value)
	latencyMs := float64(time.Since(start).Microseconds()) / 1000.0

	fields := []zap.Field{
		zap.String("cache_key", key),
		zap.String("doc_kind", keyKind(key)),
		zap.Int("bytes", len(value)),
		zap.Float64("latency_ms", latencyMs),
	}

	logger := logging.L(ctx)
	if err != nil {
		logger.Error("doc_cache_set", append(fields, zap.Error(err))...)
	} else {
		logger.Debug("doc_cache_set", fields...)
	}

	return err
}

// keyKind reports "doc" for doc:<slug> keys and "index" otherwise.
func keyKind(key string) string {
	if strings.HasPrefix(key, "doc:") {
		return "doc"
	}
	return "index"
}

package cache

import (
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	Backend string
	TTL     time.Duration
	Prefix  string
}

// NewStore picks the backend named in cfg. Anything other than "redis"
// falls back to memory.
func NewStore(cfg Config, redisClient *redis.Client) Store {
	switch cfg.Backend {
	case BackendRedis:
		return NewRedisStore(redisClient, RedisConfig{
			Prefix: cfg.Prefix,
			TTL:    cfg.TTL,
		})
	default:
		return NewMemoryStore(cfg.TTL)
	}
}

package cache

import (
	"context"
)

// Store is the text cache used by the documentation fetcher.
// Implemented by MemoryStore (default) and RedisStore.
//
// Set applies the store's own TTL; callers never pick one per entry.
// A miss is ("", false, nil). Errors are reserved for backend failures and
// callers treat them as a miss.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

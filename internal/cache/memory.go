package cache

import (
	"context"
	"time"
)

// MemoryStore implements Store on top of an in-process TTL cache.
type MemoryStore struct {
	ttl *TTL[string]
}

// NewMemoryStore creates a memory store whose entries live for ttl
// (DefaultTTL when ttl <= 0).
func NewMemoryStore(ttl time.Duration, opts ...Option) *MemoryStore {
	return &MemoryStore{ttl: NewTTL[string](ttl, opts...)}
}

// Get retrieves a live value. It never fails.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.ttl.Get(key)
	return v, ok, nil
}

// Set stores value with the store TTL.
func (s *MemoryStore) Set(_ context.Context, key string, value string) error {
	s.ttl.Set(key, value)
	return nil
}

// Len returns the number of entries currently held, expired or not.
func (s *MemoryStore) Len() int {
	return s.ttl.Len()
}

// Clear removes all items. Useful for tests or manual resets.
func (s *MemoryStore) Clear() {
	s.ttl.Clear()
}

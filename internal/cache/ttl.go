package cache

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// DefaultTTL is used when NewTTL is given a non-positive ttl.
const DefaultTTL = time.Hour

type ttlEntry[T any] struct {
	value     T
	expiresAt time.Time
}

// TTL is an in-memory key/value store where every entry expires a fixed
// duration after it was written.
//
// Expired entries are removed lazily: Get and Has delete an entry they find
// expired. There is no background sweeper, so an expired key that is never
// touched again stays in the map until Delete or Clear.
type TTL[T any] struct {
	mu    sync.Mutex
	items map[string]ttlEntry[T]
	ttl   time.Duration
	clock clock.Clock
}

// Option configures a TTL cache.
type Option func(*ttlOptions)

type ttlOptions struct {
	clock clock.Clock
}

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c clock.Clock) Option {
	return func(o *ttlOptions) {
		o.clock = c
	}
}

// NewTTL creates a cache whose entries live for ttl.
// If ttl is less than or equal to 0, DefaultTTL is used.
func NewTTL[T any](ttl time.Duration, opts ...Option) *TTL[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	o := ttlOptions{clock: clock.New()}
	for _, opt := range opts {
		opt(&o)
	}

	return &TTL[T]{
		items: make(map[string]ttlEntry[T]),
		ttl:   ttl,
		clock: o.clock,
	}
}

// TTL returns the lifetime given to every entry.
func (c *TTL[T]) TTL() time.Duration {
	return c.ttl
}

// Set stores value under key, replacing any previous entry and its expiry.
func (c *TTL[T]) Set(key string, value T) {
	c.mu.Lock()
	c.items[key] = ttlEntry[T]{
		value:     value,
		expiresAt: c.clock.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Get returns the live value for key.
func (c *TTL[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.liveLocked(key)
	if !ok {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Has reports whether key holds a live value.
func (c *TTL[T]) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.liveLocked(key)
	return ok
}

// Delete removes key if present.
func (c *TTL[T]) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Clear removes all entries, expired or not.
func (c *TTL[T]) Clear() {
	c.mu.Lock()
	c.items = make(map[string]ttlEntry[T])
	c.mu.Unlock()
}

// Len returns the number of stored entries, including expired ones not yet
// observed.
func (c *TTL[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// liveLocked must be called with c.mu held.
func (c *TTL[T]) liveLocked(key string) (ttlEntry[T], bool) {
	e, ok := c.items[key]
	if !ok {
		return e, false
	}
	if !c.clock.Now().Before(e.expiresAt) {
		delete(c.items, key)
		return ttlEntry[T]{}, false
	}
	return e, true
}

package cache

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockTTL[T any](t *testing.T, ttl time.Duration) (*TTL[T], *clock.Mock) {
	t.Helper()
	mock := clock.NewMock()
	return NewTTL[T](ttl, WithClock(mock)), mock
}

func TestTTL_SetGet(t *testing.T) {
	c, _ := newMockTTL[string](t, 0)

	c.Set("key", "value")

	v, ok := c.Get("key")
	require.True(t, ok)
	assert.Equal(t, "value", v)
}

func TestTTL_GetMissing(t *testing.T) {
	c, _ := newMockTTL[string](t, 0)

	v, ok := c.Get("nonexistent")
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestTTL_GenericValues(t *testing.T) {
	ints, _ := newMockTTL[int](t, 0)
	ints.Set("count", 42)
	n, ok := ints.Get("count")
	require.True(t, ok)
	assert.Equal(t, 42, n)

	type named struct{ Name string }
	objs, _ := newMockTTL[named](t, 0)
	objs.Set("obj", named{Name: "test"})
	o, ok := objs.Get("obj")
	require.True(t, ok)
	assert.Equal(t, named{Name: "test"}, o)
}

func TestTTL_OverwriteReturnsLatest(t *testing.T) {
	c, _ := newMockTTL[string](t, 0)

	c.Set("key", "first")
	c.Set("key", "second")

	v, _ := c.Get("key")
	assert.Equal(t, "second", v)
	assert.Equal(t, 1, c.Len())
}

func TestTTL_ExpiryBoundary(t *testing.T) {
	c, mock := newMockTTL[string](t, time.Second)
	c.Set("key", "value")

	mock.Add(999 * time.Millisecond)
	v, ok := c.Get("key")
	require.True(t, ok)
	assert.Equal(t, "value", v)
	assert.True(t, c.Has("key"))

	// now == expiresAt is already expired
	mock.Add(time.Millisecond)
	_, ok = c.Get("key")
	assert.False(t, ok)
}

func TestTTL_ExpiredEntryIsRemovedOnGet(t *testing.T) {
	c, mock := newMockTTL[string](t, time.Second)
	c.Set("key", "value")

	mock.Add(1001 * time.Millisecond)
	require.Equal(t, 1, c.Len())

	_, ok := c.Get("key")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())

	_, ok = c.Get("key")
	assert.False(t, ok)
}

func TestTTL_ExpiredEntryIsRemovedOnHas(t *testing.T) {
	c, mock := newMockTTL[string](t, time.Second)
	c.Set("key", "value")

	mock.Add(1001 * time.Millisecond)

	assert.False(t, c.Has("key"))
	assert.Equal(t, 0, c.Len())
}

func TestTTL_CustomTTL(t *testing.T) {
	c, mock := newMockTTL[string](t, 500*time.Millisecond)
	c.Set("key", "value")

	mock.Add(499 * time.Millisecond)
	_, ok := c.Get("key")
	assert.True(t, ok)

	mock.Add(2 * time.Millisecond)
	_, ok = c.Get("key")
	assert.False(t, ok)
}

func TestTTL_DefaultIsOneHour(t *testing.T) {
	c, mock := newMockTTL[string](t, 0)
	assert.Equal(t, time.Hour, c.TTL())

	c.Set("key", "value")

	mock.Add(59 * time.Minute)
	_, ok := c.Get("key")
	assert.True(t, ok, "live at 59 minutes")

	mock.Add(time.Minute + time.Millisecond)
	_, ok = c.Get("key")
	assert.False(t, ok, "expired at 1h+1ms")
}

func TestTTL_NegativeTTLUsesDefault(t *testing.T) {
	c := NewTTL[string](-time.Second)
	assert.Equal(t, DefaultTTL, c.TTL())
}

func TestTTL_OverwriteResetsExpiry(t *testing.T) {
	c, mock := newMockTTL[string](t, time.Second)
	c.Set("key", "first")

	mock.Add(800 * time.Millisecond)
	c.Set("key", "second")

	// past the first write's expiry, inside the second's
	mock.Add(800 * time.Millisecond)
	v, ok := c.Get("key")
	require.True(t, ok)
	assert.Equal(t, "second", v)

	mock.Add(200 * time.Millisecond)
	_, ok = c.Get("key")
	assert.False(t, ok)
}

func TestTTL_HasMissing(t *testing.T) {
	c, _ := newMockTTL[string](t, 0)
	assert.False(t, c.Has("key"))

	c.Set("key", "value")
	assert.True(t, c.Has("key"))
}

func TestTTL_Delete(t *testing.T) {
	c, _ := newMockTTL[string](t, 0)
	c.Set("key", "value")
	c.Set("other", "value")

	c.Delete("key")
	_, ok := c.Get("key")
	assert.False(t, ok)

	assert.NotPanics(t, func() { c.Delete("nonexistent") })
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Has("other"))
}

func TestTTL_Clear(t *testing.T) {
	c, mock := newMockTTL[string](t, time.Second)
	c.Set("a", "1")
	mock.Add(2 * time.Second)
	c.Set("b", "2")
	c.Set("c", "3")

	c.Clear()

	for _, k := range []string{"a", "b", "c"} {
		_, ok := c.Get(k)
		assert.False(t, ok, k)
	}
	assert.Equal(t, 0, c.Len())
}

func TestTTL_RealClock(t *testing.T) {
	c := NewTTL[string](20 * time.Millisecond)
	c.Set("key", "value")

	_, ok := c.Get("key")
	require.True(t, ok, "expected hit immediately after Set")

	time.Sleep(30 * time.Millisecond)

	_, ok = c.Get("key")
	assert.False(t, ok, "expected miss after TTL expiry")
}

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LRU_GetSet(t *testing.T) {
	t.Parallel()

	c := New[string, int](Config{MaxSize: 4})

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", 1)
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, got)

	c.Set("a", 2)
	got, ok = c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, got)
	assert.Equal(t, 1, c.Len())
}

func Test_LRU_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	c := New[string, int](Config{MaxSize: 2})
	c.Set("a", 1)
	c.Set("b", 2)

	// touching "a" makes "b" the eviction victim
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Set("c", 3)
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func Test_LRU_TTLExpiry(t *testing.T) {
	t.Parallel()

	c := New[string, int](Config{MaxSize: 4, TTL: 20 * time.Millisecond})
	c.Set("a", 1)

	_, ok := c.Get("a")
	require.True(t, ok)

	time.Sleep(40 * time.Millisecond)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func Test_LRU_CleanupExpired(t *testing.T) {
	t.Parallel()

	c := New[string, int](Config{MaxSize: 8, TTL: 20 * time.Millisecond})
	c.Set("a", 1)
	c.Set("b", 2)

	time.Sleep(40 * time.Millisecond)
	c.Set("fresh", 3)

	removed := c.CleanupExpired()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, c.Len())

	_, ok := c.Get("fresh")
	assert.True(t, ok)
}

func Test_LRU_CleanupWithoutTTL(t *testing.T) {
	t.Parallel()

	c := New[string, int](Config{MaxSize: 4})
	c.Set("a", 1)
	assert.Zero(t, c.CleanupExpired())
	assert.Equal(t, 1, c.Len())
}

func Test_LRU_DeleteAndClear(t *testing.T) {
	t.Parallel()

	c := New[string, int](Config{MaxSize: 4})
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	c.Delete("a") // absent key is a no-op

	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func Test_LRU_Stats(t *testing.T) {
	t.Parallel()

	c := New[string, int](Config{MaxSize: 4})
	c.Set("a", 1)

	c.Get("a")
	c.Get("a")
	c.Get("nope")

	hits, misses := c.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
}

package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizdash/bizdash/internal/domain/shared"
)

func TestKeys(t *testing.T) {
	t.Run("equal filters yield equal keys", func(t *testing.T) {
		a := ListKey("clients", shared.Filter{Page: 1, Limit: 20, Search: "acme"})
		b := ListKey("clients", shared.Filter{Page: 1, Limit: 20, Search: "acme"})
		assert.Equal(t, a, b)
	})

	t.Run("differing filters never collide", func(t *testing.T) {
		base := shared.Filter{Page: 1, Limit: 20}
		variants := []shared.Filter{
			{Page: 2, Limit: 20},
			{Page: 1, Limit: 50},
			{Page: 1, Limit: 20, Search: "acme"},
			{Page: 1, Limit: 20, Status: "active"},
			{Page: 1, Limit: 20, Filters: map[string]string{"priority": "high"}},
		}
		seen := map[string]bool{ListKey("clients", base): true}
		for _, f := range variants {
			key := ListKey("clients", f)
			assert.False(t, seen[key], "duplicate key %s", key)
			seen[key] = true
		}
	})

	t.Run("keys share the entity prefix", func(t *testing.T) {
		ns := Namespace("clients")
		assert.True(t, len(ns) > 0)
		assert.Contains(t, ListKey("clients", shared.DefaultFilter()), ns)
		assert.Contains(t, DetailKey("clients", "c1"), ns)
	})

	t.Run("detail keys embed the id", func(t *testing.T) {
		assert.Equal(t, "orders|detail|ORD-1", DetailKey("orders", "ORD-1"))
	})
}

func TestCacheGetSet(t *testing.T) {
	ctx := context.Background()
	c := NewCache()
	defer func() { _ = c.Close() }()

	t.Run("miss then hit", func(t *testing.T) {
		_, ok := c.Get(ctx, "clients|detail|c1")
		assert.False(t, ok)

		c.Set("clients|detail|c1", "value", time.Minute)
		v, ok := c.Get(ctx, "clients|detail|c1")
		require.True(t, ok)
		assert.Equal(t, "value", v)

		hits, misses := c.Stats()
		assert.Equal(t, int64(1), hits)
		assert.Equal(t, int64(1), misses)
	})

	t.Run("expired entries read as misses", func(t *testing.T) {
		c.Set("clients|detail|c2", "stale", time.Nanosecond)
		time.Sleep(5 * time.Millisecond)

		_, ok := c.Get(ctx, "clients|detail|c2")
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		c.Set("clients|detail|c3", "value", time.Minute)
		c.Delete("clients|detail|c3")
		_, ok := c.Get(ctx, "clients|detail|c3")
		assert.False(t, ok)
	})
}

func TestCacheInvalidatePrefix(t *testing.T) {
	ctx := context.Background()
	c := NewCache()
	defer func() { _ = c.Close() }()

	c.Set("clients|list|a", 1, time.Minute)
	c.Set("clients|list|b", 2, time.Minute)
	c.Set("clients|detail|c1", 3, time.Minute)
	c.Set("orders|list|a", 4, time.Minute)

	removed := c.InvalidatePrefix("clients|list|")
	assert.Equal(t, 2, removed)

	_, ok := c.Get(ctx, "clients|detail|c1")
	assert.True(t, ok, "detail entries survive list invalidation")
	_, ok = c.Get(ctx, "orders|list|a")
	assert.True(t, ok, "other entities are untouched")
}

func TestCacheClear(t *testing.T) {
	c := NewCache()
	defer func() { _ = c.Close() }()

	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)
	require.Equal(t, 2, c.Len())

	c.Clear()
	assert.Zero(t, c.Len())
}

func TestCacheCloseIsIdempotent(t *testing.T) {
	c := NewCache()
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}

package query

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/bizdash/bizdash/internal/infrastructure/telemetry"
)

// Constants for cache configuration
const (
	defaultListTTL         = 30 * time.Second
	defaultDetailTTL       = 2 * time.Minute
	defaultCleanupInterval = 30 * time.Second
)

// Cache is the in-memory TTL store behind every resource. Values are
// stored as decoded domain objects, not raw envelopes.
type Cache struct {
	entries sync.Map // map[string]*cacheEntry
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	// Stats for monitoring
	hits   int64
	misses int64
}

// cacheEntry wraps a cached value with expiration time
type cacheEntry struct {
	value     any
	expiresAt time.Time
}

// isExpired checks if the cache entry has expired
func (e *cacheEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// CacheOption is a functional option for configuring the cache
type CacheOption func(*Cache)

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) CacheOption {
	return func(c *Cache) {
		c.logger = logger
	}
}

// NewCache creates a query cache and starts its background cleanup
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	go c.cleanupExpired()

	return c
}

// Get retrieves a cached value; the second return reports whether a live
// entry was found
func (c *Cache) Get(ctx context.Context, key string) (any, bool) {
	entity := entityOf(key)

	if value, ok := c.entries.Load(key); ok {
		entry := value.(*cacheEntry)
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			telemetry.Cache().Hit(ctx, entity)
			c.logger.Debug("query cache hit", zap.String("key", key))
			return entry.value, true
		}
		// Expired, remove from cache
		c.entries.Delete(key)
	}

	atomic.AddInt64(&c.misses, 1)
	telemetry.Cache().Miss(ctx, entity)
	c.logger.Debug("query cache miss", zap.String("key", key))
	return nil, false
}

// Set stores a value under the given key
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = defaultListTTL
	}
	c.entries.Store(key, &cacheEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	})
	c.logger.Debug("query cache set",
		zap.String("key", key),
		zap.Duration("ttl", ttl))
}

// Delete removes a single entry
func (c *Cache) Delete(key string) {
	c.entries.Delete(key)
	c.logger.Debug("query cache delete", zap.String("key", key))
}

// InvalidatePrefix drops every entry whose key starts with prefix. This is
// how a mutation invalidates all cached list pages of its entity.
func (c *Cache) InvalidatePrefix(prefix string) int {
	var removed int
	c.entries.Range(func(key, _ any) bool {
		if strings.HasPrefix(key.(string), prefix) {
			c.entries.Delete(key)
			removed++
		}
		return true
	})
	if removed > 0 {
		c.logger.Debug("query cache invalidated",
			zap.String("prefix", prefix),
			zap.Int("removed", removed))
	}
	return removed
}

// Clear removes every entry
func (c *Cache) Clear() {
	c.entries.Range(func(key, _ any) bool {
		c.entries.Delete(key)
		return true
	})
	c.logger.Info("query cache cleared")
}

// Stats returns hit and miss counters
func (c *Cache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Len returns the number of live entries
func (c *Cache) Len() int {
	var n int
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Close stops the cleanup goroutine
func (c *Cache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// entityOf extracts the entity namespace from a cache key
func entityOf(key string) string {
	if i := strings.IndexByte(key, '|'); i > 0 {
		return key[:i]
	}
	return key
}

// cleanupExpired periodically removes expired entries
func (c *Cache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						c.logger.Error("Panic in cache cleanup",
							zap.Any("panic", r))
					}
				}()
				c.doCleanup()
			}()
		}
	}
}

// doCleanup removes expired entries
func (c *Cache) doCleanup() {
	var removed int
	c.entries.Range(func(key, value any) bool {
		entry := value.(*cacheEntry)
		if entry.isExpired() {
			c.entries.Delete(key)
			removed++
		}
		return true
	})
	if removed > 0 {
		c.logger.Debug("Cleaned up expired query cache entries",
			zap.Int("removed", removed))
	}
}

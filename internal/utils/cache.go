package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/patrickmn/go-cache"
)

// Cache is the global short-TTL cache, used for the home feed and the
// genre/type vocabularies.
var Cache *cache.Cache

// InitCache initializes the global cache: 5 minute default expiry,
// 10 minute cleanup interval.
func InitCache() {
	Cache = cache.New(5*time.Minute, 10*time.Minute)
}

// CacheGet reads a value from the global cache.
func CacheGet(key string) (interface{}, bool) {
	return Cache.Get(key)
}

// CacheSet stores a value in the global cache.
func CacheSet(key string, value interface{}, duration time.Duration) {
	Cache.Set(key, value, duration)
}

// CacheDelete removes a key from the global cache.
func CacheDelete(key string) {
	Cache.Delete(key)
}

// CacheItem wraps a cached value with its expiry time.
type CacheItem[T any] struct {
	Value     T
	ExpiredAt time.Time
}

// SearchCache is a bounded, TTL-checked LRU for search result pages.
type SearchCache[T any] struct {
	storage *lru.Cache[string, CacheItem[T]]
	ttl     time.Duration
}

// NewSearchCache creates the cache; size is the maximum number of entries,
// ttl the lifetime of each. The underlying LRU is thread safe.
func NewSearchCache[T any](size int, ttl time.Duration) *SearchCache[T] {
	c, _ := lru.New[string, CacheItem[T]](size)
	return &SearchCache[T]{
		storage: c,
		ttl:     ttl,
	}
}

// Set adds or updates an entry.
func (c *SearchCache[T]) Set(key string, value T) {
	c.storage.Add(key, CacheItem[T]{
		Value:     value,
		ExpiredAt: time.Now().Add(c.ttl),
	})
}

// Get returns a live entry; expired entries are evicted on read.
func (c *SearchCache[T]) Get(key string) (T, bool) {
	var zero T
	item, ok := c.storage.Get(key)
	if !ok {
		return zero, false
	}
	if time.Now().After(item.ExpiredAt) {
		c.storage.Remove(key)
		return zero, false
	}
	return item.Value, true
}

// Delete removes an entry.
func (c *SearchCache[T]) Delete(key string) {
	c.storage.Remove(key)
}

// Clear removes every entry.
func (c *SearchCache[T]) Clear() {
	c.storage.Purge()
}

// Len returns the current number of entries.
func (c *SearchCache[T]) Len() int {
	return c.storage.Len()
}

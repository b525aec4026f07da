package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"time"

	"gas-storage-valuation/internal/model"
)

// cacheEntry holds one cached quote API response. Exactly one of the two
// payload fields is populated.
type cacheEntry struct {
	Curve     []model.ContractQuote
	Bars      []model.DailyBar
	ExpiresAt time.Time
}

// ResponseCache provides in-memory TTL caching for quote API responses so
// repeated valuations against the same curve window don't hammer the
// upstream source. Correctness of the valuation engine never depends on it.
type ResponseCache struct {
	mu    sync.RWMutex
	store map[string]*cacheEntry
	ttl   time.Duration
}

var globalCache *ResponseCache
var cacheOnce sync.Once

// GetCache returns the global cache instance if caching is enabled via
// ENABLE_QUOTE_CACHE=true. Returns nil when disabled; all cache methods are
// nil-safe.
func GetCache() *ResponseCache {
	if os.Getenv("ENABLE_QUOTE_CACHE") != "true" {
		return nil
	}

	cacheOnce.Do(func() {
		ttl := 15 * time.Minute
		if ttlStr := os.Getenv("QUOTE_CACHE_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil {
				ttl = parsed
			}
		}

		globalCache = &ResponseCache{
			store: make(map[string]*cacheEntry),
			ttl:   ttl,
		}

		go globalCache.cleanup()
	})

	return globalCache
}

// NewResponseCache builds a standalone cache with an explicit TTL. Used in
// tests and by callers that don't want the env-gated global.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	return &ResponseCache{
		store: make(map[string]*cacheEntry),
		ttl:   ttl,
	}
}

func (c *ResponseCache) GetCurve(key string) ([]model.ContractQuote, bool) {
	entry, ok := c.get(key)
	if !ok || entry.Curve == nil {
		return nil, false
	}
	return entry.Curve, true
}

func (c *ResponseCache) SetCurve(key string, quotes []model.ContractQuote) {
	c.set(key, &cacheEntry{Curve: quotes})
}

func (c *ResponseCache) GetBars(key string) ([]model.DailyBar, bool) {
	entry, ok := c.get(key)
	if !ok || entry.Bars == nil {
		return nil, false
	}
	return entry.Bars, true
}

func (c *ResponseCache) SetBars(key string, bars []model.DailyBar) {
	c.set(key, &cacheEntry{Bars: bars})
}

// Clear removes all entries from the cache.
func (c *ResponseCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*cacheEntry)
}

func (c *ResponseCache) get(key string) (*cacheEntry, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry, true
}

func (c *ResponseCache) set(key string, entry *cacheEntry) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry.ExpiresAt = time.Now().Add(c.ttl)
	c.store[key] = entry
}

// cleanup periodically removes expired entries.
func (c *ResponseCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.store {
			if now.After(entry.ExpiresAt) {
				delete(c.store, key)
			}
		}
		c.mu.Unlock()
	}
}

// CurveCacheKey builds a deterministic key for a forward-curve fetch.
func CurveCacheKey(numMonths int) string {
	return hashKey(fmt.Sprintf("forward_curve:%d", numMonths))
}

// HistoricalCacheKey builds a deterministic key for a historical fetch.
func HistoricalCacheKey(symbol string, days int) string {
	return hashKey(fmt.Sprintf("historical:%s:%d", symbol, days))
}

func hashKey(s string) string {
	hash := sha256.Sum256([]byte(s))
	return hex.EncodeToString(hash[:])
}

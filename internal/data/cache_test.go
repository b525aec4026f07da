package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gas-storage-valuation/internal/model"
)

func TestResponseCacheCurve(t *testing.T) {
	cache := NewResponseCache(time.Minute)
	key := CurveCacheKey(24)

	_, found := cache.GetCurve(key)
	assert.False(t, found)

	quotes := []model.ContractQuote{{Contract: "Jan 2026", Price: 3.1}}
	cache.SetCurve(key, quotes)

	got, found := cache.GetCurve(key)
	require.True(t, found)
	assert.Equal(t, quotes, got)

	// A curve entry does not answer bar lookups.
	_, found = cache.GetBars(key)
	assert.False(t, found)
}

func TestResponseCacheExpiry(t *testing.T) {
	cache := NewResponseCache(10 * time.Millisecond)
	key := HistoricalCacheKey(ContinuousSymbol, 365)

	cache.SetBars(key, []model.DailyBar{{Date: "2026-01-02", Close: 3.0}})

	_, found := cache.GetBars(key)
	require.True(t, found)

	time.Sleep(25 * time.Millisecond)
	_, found = cache.GetBars(key)
	assert.False(t, found)
}

func TestResponseCacheClear(t *testing.T) {
	cache := NewResponseCache(time.Minute)
	cache.SetCurve(CurveCacheKey(12), []model.ContractQuote{{Price: 2.5}})

	cache.Clear()

	_, found := cache.GetCurve(CurveCacheKey(12))
	assert.False(t, found)
}

func TestResponseCacheNilSafe(t *testing.T) {
	var cache *ResponseCache

	cache.SetCurve("k", nil)
	cache.SetBars("k", nil)
	cache.Clear()

	_, found := cache.GetCurve("k")
	assert.False(t, found)
	_, found = cache.GetBars("k")
	assert.False(t, found)
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, CurveCacheKey(24), CurveCacheKey(24))
	assert.NotEqual(t, CurveCacheKey(24), CurveCacheKey(12))
	assert.NotEqual(t, HistoricalCacheKey("NG=F", 365), HistoricalCacheKey("NG=F", 30))
	assert.NotEqual(t, CurveCacheKey(24), HistoricalCacheKey("NG=F", 24))
}

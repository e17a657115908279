// Package cache provides a SQLite-backed fetch-through cache for Plex
// API responses and rendered thumbnails.
package cache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultCacheTTL is how long successful responses stay fresh (30 days).
	DefaultCacheTTL = 720 * time.Hour
	// NegativeCacheTTL is how long "not found" responses stay fresh (7 days).
	NegativeCacheTTL = 168 * time.Hour
)

// FetchFunc loads a value from the upstream source on a cache miss.
type FetchFunc[T any] func() (T, error)

var (
	globalCache     *CacheDB
	globalCacheOnce sync.Once
)

// GetGlobalCache returns the process-wide cache, opening the database
// configured under cache.dbfile and creating the cache tables on first use.
func GetGlobalCache() (*CacheDB, error) {
	var initErr error
	globalCacheOnce.Do(func() {
		dbPath := viper.GetString("cache.dbfile")
		if dbPath == "" {
			dbPath = "./cache.db"
		}
		globalCache, initErr = NewCacheDB(dbPath)
		if initErr != nil {
			return
		}
		for _, schema := range AllCacheSchemas {
			if err := globalCache.CreateTable(schema); err != nil {
				initErr = fmt.Errorf("failed to create cache table: %w", err)
				return
			}
		}
	})
	if initErr != nil {
		return nil, initErr
	}
	return globalCache, nil
}

// ResetGlobalCache closes the global cache and resets the singleton so the
// next GetGlobalCache call opens a fresh database. Intended for tests.
func ResetGlobalCache() error {
	if globalCache != nil {
		if err := globalCache.Close(); err != nil {
			return err
		}
	}
	globalCache = nil
	globalCacheOnce = sync.Once{}
	return nil
}

// GetOrFetch returns the cached value for cacheKey, fetching and storing it
// on a miss. The second return value reports whether the cache was hit.
func GetOrFetch[T any](tableName, cacheKey string, fetchFunc FetchFunc[T]) (T, bool, error) {
	return fetchThrough(tableName, cacheKey, fetchFunc, nil, nil)
}

// GetOrFetchWithPolicy is GetOrFetch with control over whether a fetched
// value is stored. A nil shouldCache stores everything.
func GetOrFetchWithPolicy[T any](tableName, cacheKey string, fetchFunc FetchFunc[T], shouldCache func(T) bool) (T, bool, error) {
	return fetchThrough(tableName, cacheKey, fetchFunc, shouldCache, nil)
}

// GetOrFetchWithTTL is GetOrFetch with a per-value TTL, chosen by
// ttlSelector after the fetch. Used for negative caching, where "not found"
// responses get a shorter lifetime than real ones.
func GetOrFetchWithTTL[T any](tableName, cacheKey string, fetchFunc FetchFunc[T], ttlSelector func(T) time.Duration) (T, bool, error) {
	return fetchThrough(tableName, cacheKey, fetchFunc, nil, ttlSelector)
}

// SelectNegativeCacheTTL builds a TTL selector that assigns NegativeCacheTTL
// to values isNotFound reports as misses and DefaultCacheTTL to the rest.
func SelectNegativeCacheTTL[T any](isNotFound func(T) bool) func(T) time.Duration {
	return func(result T) time.Duration {
		if isNotFound(result) {
			return NegativeCacheTTL
		}
		return DefaultCacheTTL
	}
}

func fetchThrough[T any](tableName, cacheKey string, fetchFunc FetchFunc[T], shouldCache func(T) bool, ttlSelector func(T) time.Duration) (T, bool, error) {
	var zero T

	db, err := GetGlobalCache()
	if err != nil {
		// A broken cache must not block playback; fetch directly.
		slog.Warn("Cache unavailable, fetching directly", "error", err)
		value, fetchErr := fetchFunc()
		return value, false, fetchErr
	}

	ttl := configuredTTL()
	raw, hit, err := db.Get(tableName, cacheKey, ttl)
	if err == nil && hit {
		var value T
		if err := json.Unmarshal([]byte(raw), &value); err == nil {
			slog.Debug("Cache hit", "table", tableName, "key", cacheKey)
			return value, true, nil
		}
		slog.Warn("Corrupt cache entry, refetching", "table", tableName, "key", cacheKey)
	}

	slog.Debug("Cache miss", "table", tableName, "key", cacheKey)
	value, err := fetchFunc()
	if err != nil {
		return zero, false, fmt.Errorf("failed to fetch data: %w", err)
	}

	if shouldCache != nil && !shouldCache(value) {
		slog.Debug("Skipping cache store per policy", "table", tableName, "key", cacheKey)
		return value, false, nil
	}

	entryTTL := ttl
	if ttlSelector != nil {
		entryTTL = ttlSelector(value)
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		slog.Warn("Failed to encode value for caching", "table", tableName, "key", cacheKey, "error", err)
		return value, false, nil
	}
	if err := db.Set(tableName, cacheKey, string(encoded)); err != nil {
		// Storing is best effort; the fetched value is still good.
		slog.Warn("Failed to store cache entry", "table", tableName, "key", cacheKey, "error", err)
	} else {
		slog.Debug("Cached", "table", tableName, "key", cacheKey, "ttl", entryTTL)
	}
	return value, false, nil
}

func configuredTTL() time.Duration {
	raw := viper.GetString("cache.ttl")
	if raw == "" {
		return DefaultCacheTTL
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("Invalid cache.ttl, using default", "value", raw, "error", err)
		return DefaultCacheTTL
	}
	return ttl
}

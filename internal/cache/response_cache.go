// Package cache provides a small in-memory TTL cache using Ristretto.
// The usage service caches pre-aggregated analytics documents so a
// dashboard view that re-renders several times a minute does not re-fetch
// the same summary on every render.
package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"go.uber.org/zap"

	"github.com/Olbrain/alchemist-dashboard-sub002/internal/jsonx"
)

// ResponseCache stores serialized responses keyed by resource path.
type ResponseCache struct {
	c      *ristretto.Cache[string, []byte]
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a response cache. maxEntries bounds the number of cached
// responses (default 1024); ttl bounds staleness (default 30 seconds,
// shorter than any analytics refresh a user would notice).
func New(maxEntries int64, ttl time.Duration, logger *zap.Logger) (*ResponseCache, error) {
	if maxEntries == 0 {
		maxEntries = 1024
	}
	if ttl == 0 {
		ttl = 30 * time.Second
	}

	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create ristretto cache: %w", err)
	}

	return &ResponseCache{
		c:      c,
		ttl:    ttl,
		logger: logger.Named("cache"),
	}, nil
}

// Get loads a cached response into out. Returns false on miss or when
// the cached bytes no longer decode into out's shape.
func (rc *ResponseCache) Get(key string, out interface{}) bool {
	data, found := rc.c.Get(key)
	if !found {
		return false
	}
	if err := jsonx.Unmarshal(data, out); err != nil {
		rc.logger.Warn("Dropping undecodable cache entry",
			zap.String("key", key),
			zap.Error(err))
		rc.c.Del(key)
		return false
	}
	return true
}

// Set serializes v and stores it under key for the cache TTL. Values that
// fail to serialize are skipped.
func (rc *ResponseCache) Set(key string, v interface{}) {
	data, err := jsonx.Marshal(v)
	if err != nil {
		rc.logger.Warn("Skipping unserializable cache value",
			zap.String("key", key),
			zap.Error(err))
		return
	}
	rc.c.SetWithTTL(key, data, 1, rc.ttl)
}

// Delete evicts a key, typically after a write invalidates it.
func (rc *ResponseCache) Delete(key string) {
	rc.c.Del(key)
}

// Wait blocks until pending writes are applied. Tests use this; callers
// on the hot path never need it.
func (rc *ResponseCache) Wait() {
	rc.c.Wait()
}

// Close releases the cache's internal goroutines.
func (rc *ResponseCache) Close() {
	rc.c.Close()
}

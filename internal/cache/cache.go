// Package cache provides caching for rendered strips and gradient results.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/allegro/bigcache/v3"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Config contains cache configuration.
type Config struct {
	StripCacheSizeMB int
	StripTTL         time.Duration
	ResultCacheSize  int
}

// Manager manages strip and result caches.
type Manager struct {
	stripCache  *bigcache.BigCache
	resultCache *lru.Cache[string, []byte]
}

// NewManager creates a new cache manager.
func NewManager(cfg Config) (*Manager, error) {
	// Configure strip cache
	stripCacheConfig := bigcache.Config{
		Shards:             1024,
		LifeWindow:         cfg.StripTTL,
		CleanWindow:        cfg.StripTTL / 2,
		MaxEntriesInWindow: 100000,
		MaxEntrySize:       100 * 1024, // 100KB per strip
		HardMaxCacheSize:   cfg.StripCacheSizeMB,
		Verbose:            false,
	}

	stripCache, err := bigcache.New(context.Background(), stripCacheConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create strip cache: %w", err)
	}

	// Create result cache
	resultCache, err := lru.New[string, []byte](cfg.ResultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}

	return &Manager{
		stripCache:  stripCache,
		resultCache: resultCache,
	}, nil
}

// GetStrip retrieves a rendered strip from cache.
func (m *Manager) GetStrip(key string) ([]byte, bool) {
	data, err := m.stripCache.Get(key)
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetStrip stores a rendered strip in cache.
func (m *Manager) SetStrip(key string, data []byte) error {
	return m.stripCache.Set(key, data)
}

// GetResult retrieves a computed gradient result from cache.
func (m *Manager) GetResult(key string) ([]byte, bool) {
	return m.resultCache.Get(key)
}

// SetResult stores a computed gradient result in cache.
func (m *Manager) SetResult(key string, data []byte) {
	m.resultCache.Add(key, data)
}

// StripKey generates a cache key for a two-endpoint gradient strip.
func StripKey(from, to string, steps int) string {
	return fmt.Sprintf("strip:%s:%s:%d", from, to, steps)
}

// GradientKey generates a cache key for a gradient color list.
func GradientKey(from, to string, steps int) string {
	return fmt.Sprintf("grad:%s:%s:%d", from, to, steps)
}

// TransitionKey generates a cache key for a multi-stop transition.
// Long stop lists are hashed to keep keys bounded.
func TransitionKey(colors []string, steps int) string {
	joined := strings.Join(colors, ",")
	if len(joined) <= 64 {
		return fmt.Sprintf("trans:%s:%d", joined, steps)
	}

	h := sha256.New()
	h.Write([]byte(joined))
	return fmt.Sprintf("trans:%s:%d", hex.EncodeToString(h.Sum(nil))[:16], steps)
}

// PaletteStripKey generates a cache key for a named palette strip.
func PaletteStripKey(name string, steps int) string {
	return fmt.Sprintf("pstrip:%s:%d", name, steps)
}

// Stats returns cache statistics.
func (m *Manager) Stats() map[string]interface{} {
	return map[string]interface{}{
		"strip_cache_len":  m.stripCache.Len(),
		"strip_cache_cap":  m.stripCache.Capacity(),
		"result_cache_len": m.resultCache.Len(),
	}
}

// Close closes the cache manager.
func (m *Manager) Close() error {
	return m.stripCache.Close()
}

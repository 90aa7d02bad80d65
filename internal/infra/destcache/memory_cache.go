package destcache

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yanqian/diveplanner/internal/domain/destination"
)

type infoRecord struct {
	payload   destination.CachedInfo
	expiresAt time.Time
}

// MemoryCache is an in-memory destination cache for tests/dev.
type MemoryCache struct {
	mu       sync.RWMutex
	entries  map[string]infoRecord
	trending map[string]int64
	displays map[string]string
	now      func() time.Time
}

// NewMemoryCache constructs a cache backed by process memory.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries:  make(map[string]infoRecord),
		trending: make(map[string]int64),
		displays: make(map[string]string),
		now:      time.Now,
	}
}

// Get implements destination.Cache.
func (c *MemoryCache) Get(_ context.Context, key string) (destination.CachedInfo, bool, error) {
	c.mu.RLock()
	record, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return destination.CachedInfo{}, false, nil
	}
	if c.expired(record.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return destination.CachedInfo{}, false, nil
	}
	return record.payload, true, nil
}

// Save caches the answer with optional TTL.
func (c *MemoryCache) Save(_ context.Context, info destination.CachedInfo, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = c.now().Add(ttl)
	}
	c.entries[info.Key] = infoRecord{payload: info, expiresAt: exp}
	return nil
}

// IncrementQuery bumps the counter for a key and records the first display string seen.
func (c *MemoryCache) IncrementQuery(_ context.Context, key, display string) error {
	if key == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trending[key]++
	if _, exists := c.displays[key]; !exists {
		c.displays[key] = display
	}
	return nil
}

// TopQueries returns the most searched destinations.
func (c *MemoryCache) TopQueries(_ context.Context, limit int) ([]destination.TrendingDestination, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if limit <= 0 {
		limit = len(c.trending)
	}
	items := make([]destination.TrendingDestination, 0, len(c.trending))
	for key, count := range c.trending {
		display := c.displays[key]
		if display == "" {
			display = key
		}
		items = append(items, destination.TrendingDestination{Destination: display, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Destination < items[j].Destination
		}
		return items[i].Count > items[j].Count
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (c *MemoryCache) expired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(c.now())
}

var _ destination.Cache = (*MemoryCache)(nil)

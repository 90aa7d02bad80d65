package destination

import (
	"context"
	"time"

	"github.com/yanqian/diveplanner/internal/domain/llm"
	"github.com/yanqian/diveplanner/pkg/metrics"
)

// Config configures destination lookups.
type Config struct {
	SystemPrompt  string
	Temperature   float32
	MaxWords      int
	CacheTTL      time.Duration
	TrendingLimit int
}

// Request asks for information about a destination. Location enables
// "near me" searches.
type Request struct {
	Destination string      `json:"destination"`
	Location    *llm.LatLng `json:"location,omitempty"`
}

// Response carries the grounded description.
type Response struct {
	Destination string              `json:"destination"`
	Info        string              `json:"info"`
	Sources     []llm.Source        `json:"sources"`
	Nearby      bool                `json:"nearby"`
	Cached      bool                `json:"cached"`
	TokenUsage  *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}

// CachedInfo is what the cache keeps per destination.
type CachedInfo struct {
	Key         string       `json:"key"`
	Destination string       `json:"destination"`
	Info        string       `json:"info"`
	Sources     []llm.Source `json:"sources"`
	CachedAt    time.Time    `json:"cachedAt"`
}

// TrendingDestination is a frequently searched destination.
type TrendingDestination struct {
	Destination string `json:"destination"`
	Count       int64  `json:"count"`
}

// Cache stores answers and search counters.
type Cache interface {
	Get(ctx context.Context, key string) (CachedInfo, bool, error)
	Save(ctx context.Context, info CachedInfo, ttl time.Duration) error
	IncrementQuery(ctx context.Context, key, display string) error
	TopQueries(ctx context.Context, limit int) ([]TrendingDestination, error)
}

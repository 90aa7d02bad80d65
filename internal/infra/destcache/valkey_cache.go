package destcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/diveplanner/internal/domain/destination"
)

// ValkeyCache persists destination answers and search counters in Valkey.
type ValkeyCache struct {
	client valkey.Client
	prefix string
}

// NewValkeyCache constructs a cache backed by Valkey.
func NewValkeyCache(client valkey.Client, prefix string) *ValkeyCache {
	if prefix == "" {
		prefix = "destination"
	}
	return &ValkeyCache{client: client, prefix: prefix}
}

func (c *ValkeyCache) Get(ctx context.Context, key string) (destination.CachedInfo, bool, error) {
	result := c.client.Do(ctx, c.client.B().Get().Key(c.entryKey(key)).Build())
	payload, err := result.ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return destination.CachedInfo{}, false, nil
		}
		return destination.CachedInfo{}, false, err
	}
	var info destination.CachedInfo
	if err := json.Unmarshal([]byte(payload), &info); err != nil {
		return destination.CachedInfo{}, false, err
	}
	return info, true, nil
}

func (c *ValkeyCache) Save(ctx context.Context, info destination.CachedInfo, ttl time.Duration) error {
	payload, err := json.Marshal(info)
	if err != nil {
		return err
	}
	builder := c.client.B().Set().Key(c.entryKey(info.Key)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return c.client.Do(ctx, cmd).Error()
}

func (c *ValkeyCache) IncrementQuery(ctx context.Context, key, display string) error {
	if key == "" {
		return nil
	}
	if err := c.client.Do(ctx, c.client.B().Zincrby().Key(c.trendingKey()).Increment(1).Member(key).Build()).Error(); err != nil {
		return err
	}
	if display != "" {
		_ = c.client.Do(ctx, c.client.B().Set().Key(c.displayKey(key)).Value(display).Nx().Build()).Error()
	}
	return nil
}

func (c *ValkeyCache) TopQueries(ctx context.Context, limit int) ([]destination.TrendingDestination, error) {
	if limit <= 0 {
		limit = 10
	}
	resp := c.client.Do(ctx, c.client.B().Zrevrange().Key(c.trendingKey()).Start(0).Stop(int64(limit-1)).Withscores().Build())
	arr, err := resp.ToArray()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, err
	}
	out := make([]destination.TrendingDestination, 0, len(arr))
	for i := 0; i < len(arr); {
		var (
			member string
			score  float64
		)
		if tuple, tupleErr := arr[i].ToArray(); tupleErr == nil && len(tuple) == 2 {
			// RESP3 returns [member, score] per element
			if member, err = tuple[0].ToString(); err != nil {
				return nil, err
			}
			if score, err = tuple[1].ToFloat64(); err != nil {
				return nil, err
			}
			i++
		} else {
			// RESP2 returns a flat alternating array.
			if i+1 >= len(arr) {
				break
			}
			if member, err = arr[i].ToString(); err != nil {
				return nil, err
			}
			if score, err = arr[i+1].ToFloat64(); err != nil {
				return nil, err
			}
			i += 2
		}
		out = append(out, destination.TrendingDestination{Destination: c.fetchDisplay(ctx, member), Count: int64(score)})
	}
	return out, nil
}

func (c *ValkeyCache) fetchDisplay(ctx context.Context, key string) string {
	display, err := c.client.Do(ctx, c.client.B().Get().Key(c.displayKey(key)).Build()).ToString()
	if err != nil || display == "" {
		return key
	}
	return display
}

func (c *ValkeyCache) entryKey(key string) string {
	return fmt.Sprintf("%s:info:%s", c.prefix, key)
}

func (c *ValkeyCache) trendingKey() string {
	return fmt.Sprintf("%s:trending", c.prefix)
}

func (c *ValkeyCache) displayKey(key string) string {
	return fmt.Sprintf("%s:display:%s", c.prefix, key)
}

var _ destination.Cache = (*ValkeyCache)(nil)

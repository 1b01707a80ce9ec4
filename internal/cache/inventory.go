package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"devcomm/internal/observability"
)

const (
	CommunityKeyPrefix  = "community:%d"
	communityKeyPattern = "community:*"
	FeaturedKey         = "communities:featured"
)

const (
	CommunityTTL = 30 * time.Minute
	FeaturedTTL  = 10 * time.Minute
)

// CommunityKey returns the cache key for a single community record.
func CommunityKey(id uint) string {
	return fmt.Sprintf(CommunityKeyPrefix, id)
}

// Aside implements the cache-aside pattern: on a hit, dest is decoded from
// the cached JSON; on a miss, fetch is called and its result (written into
// dest by the caller) is stored with the given TTL. Cache failures fall
// through to fetch so Redis outages never fail reads.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	prefix := keyPrefix(key)

	if client != nil {
		data, err := client.Get(ctx, key).Bytes()
		if err == nil {
			if uerr := json.Unmarshal(data, dest); uerr == nil {
				observability.CacheHits.WithLabelValues(prefix).Inc()
				return nil
			}
			// Corrupt entry: drop it and fall through to fetch.
			client.Del(ctx, key)
		}
		observability.CacheMisses.WithLabelValues(prefix).Inc()
	}

	if err := fetch(); err != nil {
		return err
	}

	if client != nil {
		if data, err := json.Marshal(dest); err == nil {
			client.Set(ctx, key, data, ttl)
		}
	}
	return nil
}

// Invalidate removes a single cache entry.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateCommunity drops the cached record for one community.
func InvalidateCommunity(ctx context.Context, id uint) {
	Invalidate(ctx, CommunityKey(id))
}

// InvalidateCommunities drops every cached single-community record. Needed
// when the whole catalog is replaced, since record IDs cached before the
// refresh no longer correspond to stored rows.
func InvalidateCommunities(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, communityKeyPattern, 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}

// InvalidateFeatured drops the cached featured listing.
func InvalidateFeatured(ctx context.Context) {
	Invalidate(ctx, FeaturedKey)
}

func keyPrefix(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CodeVantage/codevantage-backend/internal/catalog/domain"
)

const (
	filterKeyPrefix = "catalog:filter:" // catalog:filter:{version}:{domain}:{language}
	DefaultTTL      = 30 * time.Minute
)

// FilterCache memoizes filter results as ordered id lists in Redis.
// Entries are namespaced by the catalog version so a new snapshot never
// reads results computed for an older one.
type FilterCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewFilterCache(client *redis.Client, ttl time.Duration) *FilterCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &FilterCache{client: client, ttl: ttl}
}

func (c *FilterCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Get returns the cached ids for state. hit is false when nothing is stored.
func (c *FilterCache) Get(ctx context.Context, version string, state domain.FilterState) (ids []string, hit bool, err error) {
	data, err := c.client.Get(ctx, c.filterKey(version, state)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached filter: %w", err)
	}
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, false, fmt.Errorf("decode cached filter: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, true, nil
}

func (c *FilterCache) Set(ctx context.Context, version string, state domain.FilterState, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode filter ids: %w", err)
	}
	if err := c.client.Set(ctx, c.filterKey(version, state), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached filter: %w", err)
	}
	return nil
}

// filterKey escapes the selector values; they are arbitrary user input.
func (c *FilterCache) filterKey(version string, state domain.FilterState) string {
	return fmt.Sprintf("%s%s:%s:%s", filterKeyPrefix, version,
		url.QueryEscape(state.Domain), url.QueryEscape(state.Language))
}

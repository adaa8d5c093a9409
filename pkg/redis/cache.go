package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL keeps daily closes for one trading day
const DefaultTTL = 24 * time.Hour

const scanBatch = 100

// Cache stores JSON documents under "<namespace>:" with one fixed TTL
// ⭐ SSOT: 캐시 키 규칙은 여기서만
type Cache struct {
	client    *Client
	namespace string
	ttl       time.Duration
}

// NewCache creates a cache in namespace; ttl <= 0 falls back to DefaultTTL
func NewCache(client *Client, namespace string, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		client:    client,
		namespace: strings.TrimSuffix(namespace, ":"),
		ttl:       ttl,
	}
}

// Enabled reports whether the cache is backed by Redis
func (c *Cache) Enabled() bool {
	return c.client.Enabled()
}

// TTL returns the expiry applied by Put
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Fetch decodes the document at key into dest.
// A miss, or a disabled cache, is found=false with a nil error.
func (c *Cache) Fetch(ctx context.Context, key string, dest interface{}) (found bool, err error) {
	if !c.Enabled() {
		return false, nil
	}

	raw, err := c.client.rdb.Get(ctx, c.key(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

// Put encodes value as JSON and stores it for the cache TTL
func (c *Cache) Put(ctx context.Context, key string, value interface{}) error {
	if !c.Enabled() {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.client.rdb.Set(ctx, c.key(key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Invalidate deletes every key in the namespace that starts with prefix and
// returns how many were removed. An empty prefix clears the namespace.
func (c *Cache) Invalidate(ctx context.Context, prefix string) (int, error) {
	if !c.Enabled() {
		return 0, nil
	}

	pattern := c.key(prefix) + "*"
	removed := 0
	iter := c.client.rdb.Scan(ctx, 0, pattern, scanBatch).Iterator()
	batch := make([]string, 0, scanBatch)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := c.client.rdb.Del(ctx, batch...).Result()
		if err != nil {
			return fmt.Errorf("redis del: %w", err)
		}
		removed += int(n)
		batch = batch[:0]
		return nil
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			if err := flush(); err != nil {
				return removed, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("redis scan %s: %w", pattern, err)
	}
	return removed, flush()
}

func (c *Cache) key(k string) string {
	return c.namespace + ":" + k
}

// SeriesKey is the cache key of one loaded price source.
// kind is the loader (csv, postgres, sqlite); source is what was passed to Load.
func SeriesKey(kind, source string) string {
	return "series:" + kind + ":" + source
}

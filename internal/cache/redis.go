package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const tier1IDsKey = "courtiq:tier1:ids"

// Cache is an optional Redis layer for the Tier 1 player ID set, which
// several jobs read at the top of every run. A nil *Cache is valid and
// behaves as a permanent miss, so the pipeline runs fine without Redis.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis. A connection failure returns nil rather than
// an error; callers continue without caching.
func New(ctx context.Context, addr, password string, db int, ttl time.Duration) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("Redis unavailable, continuing without cache")
		_ = client.Close()
		return nil
	}

	log.Info().Str("addr", addr).Msg("Connected to Redis")
	return &Cache{client: client, ttl: ttl}
}

// GetTier1IDs returns the cached ID set, or nil on a miss or any error
func (c *Cache) GetTier1IDs(ctx context.Context) []int {
	if c == nil {
		return nil
	}
	raw, err := c.client.Get(ctx, tier1IDsKey).Result()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("Failed to read tier 1 cache")
		}
		return nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(p)
		if err != nil {
			log.Warn().Str("value", p).Msg("Corrupt tier 1 cache entry, discarding")
			return nil
		}
		ids = append(ids, id)
	}
	return ids
}

// SetTier1IDs stores the ID set with the configured TTL
func (c *Cache) SetTier1IDs(ctx context.Context, ids []int) {
	if c == nil || len(ids) == 0 {
		return
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	if err := c.client.Set(ctx, tier1IDsKey, strings.Join(parts, ","), c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("Failed to write tier 1 cache")
	}
}

// InvalidateTier1IDs drops the cached set. The player sync calls this
// after tiers change.
func (c *Cache) InvalidateTier1IDs(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, tier1IDsKey).Err(); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate tier 1 cache")
	}
}

// Close releases the Redis connection
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}
	return nil
}

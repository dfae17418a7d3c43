// Package statscache caches the care log statistics between writes.
package statscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"plantcare/internal/carelog/models"
	"plantcare/pkg/platform/circuit"
)

const statsKey = "plantcare:carelog:stats"

// RedisCache keeps the statistics in Redis so every instance shares them.
// While the breaker is open, reads and writes are skipped as misses;
// invalidations are always attempted.
type RedisCache struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *circuit.Breaker
	logger  *slog.Logger
}

type RedisOption func(*RedisCache)

// WithTTL bounds how long a snapshot is served if an invalidation is lost.
func WithTTL(ttl time.Duration) RedisOption {
	return func(c *RedisCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithBreaker guards Redis calls so an unreachable server costs one timeout
// per cooldown instead of one per request.
func WithBreaker(b *circuit.Breaker) RedisOption {
	return func(c *RedisCache) { c.breaker = b }
}

func WithLogger(logger *slog.Logger) RedisOption {
	return func(c *RedisCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewRedis(client *redis.Client, opts ...RedisOption) *RedisCache {
	c := &RedisCache{client: client, ttl: DefaultTTL, logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Get returns the cached statistics. A miss is (nil, false, nil).
func (c *RedisCache) Get(ctx context.Context) (*models.Stats, bool, error) {
	if !c.allow() {
		return nil, false, nil
	}
	raw, err := c.client.Get(ctx, statsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		c.record(ctx, nil)
		return nil, false, nil
	}
	if err != nil {
		c.record(ctx, err)
		return nil, false, fmt.Errorf("get stats: %w", err)
	}
	c.record(ctx, nil)
	var st models.Stats
	if err := json.Unmarshal(raw, &st); err != nil {
		// A snapshot written by an older layout is treated as a miss.
		return nil, false, nil
	}
	return &st, true, nil
}

func (c *RedisCache) Set(ctx context.Context, st *models.Stats) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	if !c.allow() {
		return nil
	}
	err = c.client.Set(ctx, statsKey, raw, c.ttl).Err()
	c.record(ctx, err)
	return err
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	err := c.client.Del(ctx, statsKey).Err()
	c.record(ctx, err)
	return err
}

func (c *RedisCache) allow() bool {
	return c.breaker == nil || c.breaker.Allow()
}

func (c *RedisCache) record(ctx context.Context, err error) {
	if c.breaker == nil {
		return
	}
	if err != nil {
		if _, change := c.breaker.RecordFailure(); change.Opened {
			c.logger.WarnContext(ctx, "stats cache disabled, redis unreachable", "breaker", c.breaker.Name(), "error", err)
		}
		return
	}
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "stats cache re-enabled", "breaker", c.breaker.Name())
	}
}

// Package redis connects the optional stats cache backend.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"plantcare/internal/platform/config"
)

// ErrDisabled is returned by Connect when no URL is configured.
var ErrDisabled = errors.New("redis: not configured")

// Client is a pooled connection used by the care log stats cache.
type Client struct {
	*goredis.Client
	addr string
}

// Connect dials the server described by cfg and verifies it answers PING.
func Connect(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (*Client, error) {
	if cfg.URL == "" {
		return nil, ErrDisabled
	}
	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	applyPool(opts, cfg)

	rdb := goredis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	if logger != nil {
		logger.InfoContext(ctx, "redis connected", "addr", opts.Addr, "pool_size", opts.PoolSize)
	}
	return &Client{Client: rdb, addr: opts.Addr}, nil
}

func applyPool(opts *goredis.Options, cfg config.RedisConfig) {
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
}

// Addr is the host:port the client is connected to.
func (c *Client) Addr() string { return c.addr }

// Check is the /health probe.
func (c *Client) Check(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantcare/internal/platform/config"
)

func TestConnectWithoutURL(t *testing.T) {
	c, err := Connect(context.Background(), config.RedisConfig{}, nil)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestConnectRejectsBadURL(t *testing.T) {
	_, err := Connect(context.Background(), config.RedisConfig{URL: "://nope"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse redis url")
}

func TestApplyPoolKeepsDefaultsForZeroValues(t *testing.T) {
	opts, err := goredis.ParseURL("redis://localhost:6379/0")
	require.NoError(t, err)
	defaultDial := opts.DialTimeout

	applyPool(opts, config.RedisConfig{PoolSize: 7, ReadTimeout: 2 * time.Second})

	assert.Equal(t, 7, opts.PoolSize)
	assert.Equal(t, 2*time.Second, opts.ReadTimeout)
	assert.Equal(t, defaultDial, opts.DialTimeout)
}

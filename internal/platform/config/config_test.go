package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PLANTCARE_ADDR", "JWT_SIGNING_KEY", "CORS_ORIGINS", "DATABASE_URL", "REDIS_URL", "KAFKA_BROKERS", "KAFKA_TOPIC", "STATS_CACHE_TTL", "REDIS_POOL_SIZE"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.False(t, cfg.AuthEnabled())
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "plantcare.care-events", cfg.Kafka.Topic)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, time.Minute, cfg.StatsCacheTTL)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PLANTCARE_ADDR", ":9000")
	t.Setenv("JWT_SIGNING_KEY", "secret")
	t.Setenv("CORS_ORIGINS", "http://localhost:19006, exp://192.168.0.10:8081")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092,k1:9092")
	t.Setenv("STATS_CACHE_TTL", "30s")
	t.Setenv("REDIS_POOL_SIZE", "not-a-number")

	cfg := FromEnv()

	assert.Equal(t, ":9000", cfg.Addr)
	assert.True(t, cfg.AuthEnabled())
	assert.Equal(t, []string{"http://localhost:19006", "exp://192.168.0.10:8081"}, cfg.CORSOrigins)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, cfg.StatsCacheTTL)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
}

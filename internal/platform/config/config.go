package config

import (
	"os"
	"strconv"
	"time"

	pstrings "plantcare/pkg/platform/strings"
)

// Server captures process level configuration. Optional backends are
// disabled when their URL or broker list is empty.
type Server struct {
	Addr          string
	JWTSigningKey string
	CORSOrigins   []string
	LogLevel      string
	LogFormat     string

	DatabaseURL   string
	Redis         RedisConfig
	Kafka         KafkaConfig
	StatsCacheTTL time.Duration
}

// RedisConfig holds connection and pool settings for the stats cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds the care event publisher settings.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:          envOr("PLANTCARE_ADDR", ":8080"),
		JWTSigningKey: os.Getenv("JWT_SIGNING_KEY"),
		CORSOrigins:   pstrings.SplitList(envOr("CORS_ORIGINS", "*")),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		LogFormat:     envOr("LOG_FORMAT", "json"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: pstrings.SplitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   envOr("KAFKA_TOPIC", "plantcare.care-events"),
		},
		StatsCacheTTL: envDuration("STATS_CACHE_TTL", time.Minute),
	}
}

// AuthEnabled reports whether bearer tokens are required on the API.
func (s Server) AuthEnabled() bool { return s.JWTSigningKey != "" }

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

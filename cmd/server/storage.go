package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	carelogservice "plantcare/internal/carelog/service"
	carelogstore "plantcare/internal/carelog/store"
	"plantcare/internal/carelog/store/statscache"
	"plantcare/internal/events"
	locationservice "plantcare/internal/location/service"
	locationstore "plantcare/internal/location/store"
	plantservice "plantcare/internal/plant/service"
	plantstore "plantcare/internal/plant/store"
	"plantcare/internal/platform/config"
	"plantcare/internal/platform/postgres"
	"plantcare/internal/platform/redis"
	reminderservice "plantcare/internal/reminder/service"
	reminderstore "plantcare/internal/reminder/store"
	speciesservice "plantcare/internal/species/service"
	speciesstore "plantcare/internal/species/store"
	transport "plantcare/internal/transport/http"
	"plantcare/pkg/platform/circuit"
	"plantcare/pkg/platform/tx"
)

type (
	speciesBackend  = speciesservice.Store
	locationBackend = locationservice.Store
	careLogBackend  = carelogservice.Store
	statsBackend    = carelogservice.StatsCache
)

// plantBackend also answers the usage counts species and locations check
// before deletion.
type plantBackend interface {
	plantservice.Store
	speciesservice.PlantCounter
	locationservice.PlantCounter
}

type reminderBackend interface {
	reminderservice.Store
	plantservice.Dependents
}

// stores groups the persistence backends selected at startup. The concrete
// types differ between Postgres and memory, so each field is the interface
// the consuming services need.
type stores struct {
	species   speciesBackend
	locations locationBackend
	plants    plantBackend
	reminders reminderBackend
	careLogs  careLogBackend
	tx        tx.Runner

	statsCache statsBackend
	publisher  events.Publisher

	health  []transport.HealthCheck
	closers []func()
}

func (s *stores) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// openStores picks Postgres when DATABASE_URL is set and memory otherwise;
// Redis and Kafka are optional the same way.
func openStores(ctx context.Context, cfg config.Server, logger *slog.Logger) (*stores, error) {
	s := &stores{}
	if err := s.openDatabase(ctx, cfg.DatabaseURL, logger); err != nil {
		s.close()
		return nil, err
	}
	if err := s.openStatsCache(ctx, cfg, logger); err != nil {
		s.close()
		return nil, err
	}
	if err := s.openPublisher(ctx, cfg.Kafka, logger); err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

func (s *stores) openDatabase(ctx context.Context, url string, logger *slog.Logger) error {
	if url == "" {
		logger.WarnContext(ctx, "DATABASE_URL not set, using in-memory stores")
		s.species = speciesstore.NewInMemory()
		s.locations = locationstore.NewInMemory()
		s.plants = plantstore.NewInMemory()
		s.reminders = reminderstore.NewInMemory()
		s.careLogs = carelogstore.NewInMemory()
		s.tx = tx.Inline{}
		return nil
	}

	db, err := postgres.Open(ctx, url)
	if err != nil {
		return err
	}
	s.closers = append(s.closers, func() { _ = db.Close() })
	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}
	logger.InfoContext(ctx, "postgres connected, schema applied")

	s.species = speciesstore.NewPostgres(db)
	s.locations = locationstore.NewPostgres(db)
	s.plants = plantstore.NewPostgres(db)
	s.reminders = reminderstore.NewPostgres(db)
	s.careLogs = carelogstore.NewPostgres(db)
	s.tx = postgres.NewTxRunner(db)
	s.health = append(s.health, transport.HealthCheck{Name: "postgres", Check: pinger(db)})
	return nil
}

func (s *stores) openStatsCache(ctx context.Context, cfg config.Server, logger *slog.Logger) error {
	client, err := redis.Connect(ctx, cfg.Redis, logger)
	if errors.Is(err, redis.ErrDisabled) {
		s.statsCache = statscache.NewMemory(cfg.StatsCacheTTL)
		return nil
	}
	if err != nil {
		return fmt.Errorf("stats cache: %w", err)
	}
	s.closers = append(s.closers, func() { _ = client.Close() })
	s.statsCache = statscache.NewRedis(client.Client,
		statscache.WithTTL(cfg.StatsCacheTTL),
		statscache.WithBreaker(circuit.New("redis-stats-cache", circuit.WithCooldown(30*time.Second))),
		statscache.WithLogger(logger),
	)
	s.health = append(s.health, transport.HealthCheck{Name: "redis", Check: client.Check})
	return nil
}

func (s *stores) openPublisher(ctx context.Context, cfg config.KafkaConfig, logger *slog.Logger) error {
	if len(cfg.Brokers) == 0 {
		s.publisher = events.NewLogPublisher(logger)
		return nil
	}
	pub, err := events.NewKafkaPublisher(ctx, cfg.Brokers, cfg.Topic)
	if err != nil {
		return fmt.Errorf("care events: %w", err)
	}
	logger.InfoContext(ctx, "kafka publisher ready", "brokers", cfg.Brokers, "topic", cfg.Topic)
	s.closers = append(s.closers, pub.Close)
	s.publisher = pub
	return nil
}

func pinger(db *sql.DB) func(ctx context.Context) error {
	return db.PingContext
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	carelogHandler "plantcare/internal/carelog/handler"
	carelogService "plantcare/internal/carelog/service"
	"plantcare/internal/events"
	jwttoken "plantcare/internal/jwt_token"
	locationHandler "plantcare/internal/location/handler"
	locationService "plantcare/internal/location/service"
	plantHandler "plantcare/internal/plant/handler"
	plantService "plantcare/internal/plant/service"
	"plantcare/internal/platform/config"
	"plantcare/internal/platform/httpserver"
	"plantcare/internal/platform/logger"
	"plantcare/internal/platform/metrics"
	"plantcare/internal/platform/middleware"
	reminderHandler "plantcare/internal/reminder/handler"
	reminderService "plantcare/internal/reminder/service"
	speciesHandler "plantcare/internal/species/handler"
	speciesService "plantcare/internal/species/service"
	transport "plantcare/internal/transport/http"
)

const shutdownTimeout = 10 * time.Second

// main wires the stores, services and router, then serves until SIGINT or
// SIGTERM. Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("plantcare stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	m := metrics.New()
	router := transport.NewRouter(transport.Options{
		Logger:       log,
		Metrics:      m,
		Gatherer:     prometheus.DefaultGatherer,
		CORSOrigins:  cfg.CORSOrigins,
		Auth:         buildAuth(cfg, log),
		HealthChecks: st.health,
	}, buildModules(st, log, m)...)

	srv := httpserver.New(cfg.Addr, router, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting plantcare", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func buildModules(st *stores, log *slog.Logger, m *metrics.Metrics) []transport.Module {
	emitter := events.NewEmitter(st.publisher, log, m)

	species := speciesService.New(st.species, st.plants,
		speciesService.WithLogger(log), speciesService.WithMetrics(m))
	locations := locationService.New(st.locations, st.plants,
		locationService.WithLogger(log), locationService.WithMetrics(m))
	reminders := reminderService.New(st.reminders, st.plants,
		reminderService.WithLogger(log), reminderService.WithMetrics(m), reminderService.WithEmitter(emitter))
	careLogs := carelogService.New(st.careLogs, st.plants,
		carelogService.WithLogger(log),
		carelogService.WithMetrics(m),
		carelogService.WithEmitter(emitter),
		carelogService.WithStatsCache(st.statsCache),
	)
	plants := plantService.New(st.plants, st.species, st.locations, st.reminders, careLogs,
		plantService.WithLogger(log),
		plantService.WithMetrics(m),
		plantService.WithEmitter(emitter),
		plantService.WithTxRunner(st.tx),
	)

	return []transport.Module{
		plantHandler.New(plants, log),
		speciesHandler.New(species, log),
		locationHandler.New(locations, log),
		reminderHandler.New(reminders, log),
		carelogHandler.New(careLogs, log),
	}
}

// buildAuth returns nil, leaving the API open, when no signing key is set.
func buildAuth(cfg config.Server, log *slog.Logger) middleware.JWTValidator {
	if !cfg.AuthEnabled() {
		log.Warn("JWT_SIGNING_KEY not set, API authentication disabled")
		return nil
	}
	return jwttoken.NewService(cfg.JWTSigningKey, jwttoken.WithLeeway(30*time.Second))
}

//go:build e2e

package e2e

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	carelogHandler "plantcare/internal/carelog/handler"
	carelogService "plantcare/internal/carelog/service"
	carelogStore "plantcare/internal/carelog/store"
	"plantcare/internal/carelog/store/statscache"
	locationHandler "plantcare/internal/location/handler"
	locationService "plantcare/internal/location/service"
	locationStore "plantcare/internal/location/store"
	plantHandler "plantcare/internal/plant/handler"
	plantService "plantcare/internal/plant/service"
	plantStore "plantcare/internal/plant/store"
	"plantcare/internal/platform/metrics"
	reminderHandler "plantcare/internal/reminder/handler"
	reminderService "plantcare/internal/reminder/service"
	reminderStore "plantcare/internal/reminder/store"
	speciesHandler "plantcare/internal/species/handler"
	speciesService "plantcare/internal/species/service"
	speciesStore "plantcare/internal/species/store"
	transport "plantcare/internal/transport/http"
	"plantcare/pkg/client"
	"plantcare/pkg/client/cleanup"
	dErrors "plantcare/pkg/domain-errors"
	"plantcare/pkg/platform/httputil"
	"plantcare/pkg/platform/tx"
)

// world is the state of one scenario: a fresh in-memory server, a client
// pointed at it, and what the last step produced.
type world struct {
	server  *httptest.Server
	api     *client.Client
	cleaner *cleanup.Cleaner

	species   map[string]client.Species
	locations map[string]client.Location
	plants    map[string]client.Plant
	reminders map[string]client.Reminder

	// failCareLogDeletes makes the server answer that many upcoming
	// DELETE /care-logs/{id} requests with a 500.
	failCareLogDeletes int

	lastErr     error
	lastCascade cleanup.PlantCascade
	lastSweep   cleanup.SweepResult
	lastPlants  []client.Plant
	lastDueIn   int
}

func newWorld() *world {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.NewWithRegistry(prometheus.NewRegistry())

	species := speciesStore.NewInMemory()
	locations := locationStore.NewInMemory()
	plants := plantStore.NewInMemory()
	reminders := reminderStore.NewInMemory()
	careLogs := carelogService.New(carelogStore.NewInMemory(), plants,
		carelogService.WithLogger(logger), carelogService.WithStatsCache(statscache.NewMemory(statscache.DefaultTTL)))

	router := transport.NewRouter(transport.Options{Logger: logger, Metrics: m},
		plantHandler.New(plantService.New(plants, species, locations, reminders, careLogs,
			plantService.WithLogger(logger), plantService.WithTxRunner(tx.Inline{})), logger),
		speciesHandler.New(speciesService.New(species, plants, speciesService.WithLogger(logger)), logger),
		locationHandler.New(locationService.New(locations, plants, locationService.WithLogger(logger)), logger),
		reminderHandler.New(reminderService.New(reminders, plants, reminderService.WithLogger(logger)), logger),
		carelogHandler.New(careLogs, logger),
	)

	w := &world{
		species:   map[string]client.Species{},
		locations: map[string]client.Location{},
		plants:    map[string]client.Plant{},
		reminders: map[string]client.Reminder{},
	}
	w.server = httptest.NewServer(w.faults(router))
	w.api = client.New(w.server.URL, client.WithLogger(logger))
	w.cleaner = cleanup.New(w.api, cleanup.WithLogger(logger))
	return w
}

// faults fails care log deletes on request, leaving everything else to next.
func (w *world) faults(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/care-logs/") && w.failCareLogDeletes > 0 {
			w.failCareLogDeletes--
			httputil.WriteError(rw, dErrors.New(dErrors.CodeInternal, "storage unavailable"))
			return
		}
		next.ServeHTTP(rw, r)
	})
}

func (w *world) close() { w.server.Close() }

func (w *world) plant(name string) (client.Plant, error) {
	p, ok := w.plants[name]
	if !ok {
		return client.Plant{}, fmt.Errorf("plant %q was never created", name)
	}
	return p, nil
}

func expectCount(what string, want, got int) error {
	if want != got {
		return fmt.Errorf("%s: want %d, got %d", what, want, got)
	}
	return nil
}

func statusOf(err error) (int, error) {
	var apiErr *client.Error
	if !errors.As(err, &apiErr) {
		return 0, fmt.Errorf("expected an API error, got %v", err)
	}
	return apiErr.Status, nil
}


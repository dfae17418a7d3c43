package handler

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantcare/internal/carelog/models"
	"plantcare/internal/carelog/service"
	"plantcare/internal/carelog/store"
	"plantcare/internal/carelog/store/statscache"
	plantModels "plantcare/internal/plant/models"
	plantStore "plantcare/internal/plant/store"
	"plantcare/pkg/calendar"
	id "plantcare/pkg/domain"
	"plantcare/pkg/platform/middleware/requesttime"
	"plantcare/pkg/testutil"
)

var fixedNow = time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)

func newRouter(t *testing.T) (http.Handler, *plantModels.Plant) {
	t.Helper()
	plants := plantStore.NewInMemory()
	p, err := plantModels.NewPlant(id.NewPlantID(), "Zamioculca", id.NewSpeciesID(), id.NewLocationID(), calendar.Date{}, fixedNow)
	require.NoError(t, err)
	require.NoError(t, plants.CreateIfNameAvailable(context.Background(), p))

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc := service.New(store.NewInMemory(), plants,
		service.WithLogger(logger),
		service.WithStatsCache(statscache.NewMemory(time.Minute)))
	r := chi.NewRouter()
	r.Use(requesttime.WithClock(func() time.Time { return fixedNow }))
	New(svc, logger).Register(r)
	return r, p
}

func TestCareLogRoutes(t *testing.T) {
	router, plant := newRouter(t)

	for _, body := range []map[string]any{
		{"plantId": plant.ID.String(), "type": "watering", "date": "2024-06-09"},
		{"plantId": plant.ID.String(), "type": "fertilizing", "date": "2024-05-01", "success": false},
		{"plantId": plant.ID.String(), "type": "watering", "date": "2024-06-10T23:30:00-03:00", "notes": "pouca água"},
	} {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/care-logs", body))
		testutil.AssertStatus(t, rr, http.StatusCreated)
	}

	testutil.Given(t, "three logs across two months", func(t *testing.T) {
		testutil.When(t, "listing", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/care-logs"))
			testutil.Then(t, "the most recent comes first and dates keep their calendar day", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				list := testutil.UnmarshalResponse[[]models.CareLog](t, rr)
				require.Len(t, *list, 3)
				assert.Equal(t, "2024-06-10", (*list)[0].Date.String())
				assert.Equal(t, "2024-05-01", (*list)[2].Date.String())
			})
		})

		testutil.When(t, "asking for recent logs", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/care-logs/recent?days=3"))
			testutil.Then(t, "only the last days are returned", func(t *testing.T) {
				list := testutil.UnmarshalResponse[[]models.CareLog](t, rr)
				assert.Len(t, *list, 2)
			})
		})

		testutil.When(t, "asking for stats", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/care-logs/stats"))
			testutil.Then(t, "totals and rate are reported", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				assert.JSONEq(t, `{"total":3,"successful":2,"failed":1,"successRate":66.7,"byType":{"watering":2,"fertilizing":1}}`, rr.Body.String())
			})
		})
	})

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/care-logs/successful"))
	testutil.AssertStatusOK(t, rr)
	assert.Len(t, *testutil.UnmarshalResponse[[]models.CareLog](t, rr), 2)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/care-logs?type=fertilizing&q=zamio"))
	testutil.AssertStatusOK(t, rr)
	assert.Len(t, *testutil.UnmarshalResponse[[]models.CareLog](t, rr), 1)
}

func TestCareLogErrors(t *testing.T) {
	router, plant := newRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/care-logs", map[string]any{
		"plantId": plant.ID.String(), "type": "watering", "date": "31/12/2024",
	}))
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/care-logs/"+id.NewCareLogID().String()))
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/care-logs?plantId=abc"))
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
}

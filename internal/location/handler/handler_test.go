package handler

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"plantcare/internal/location/models"
	"plantcare/internal/location/service"
	"plantcare/internal/location/store"
	id "plantcare/pkg/domain"
	"plantcare/pkg/testutil"
)

type plantCounter map[id.LocationID]int

func (p plantCounter) CountByLocation(_ context.Context, locationID id.LocationID) (int, error) {
	return p[locationID], nil
}

func newRouter(t *testing.T, counts plantCounter) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc := service.New(store.NewInMemory(), counts, service.WithLogger(logger))
	r := chi.NewRouter()
	New(svc, logger).Register(r)
	return r
}

func createLocation(t *testing.T, router http.Handler, body map[string]any) *models.Location {
	t.Helper()
	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/locations", body))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	return testutil.UnmarshalResponse[models.Location](t, rr)
}

func TestLocationLifecycle(t *testing.T) {
	counts := plantCounter{}
	router := newRouter(t, counts)

	sala := createLocation(t, router, map[string]any{
		"name": "Sala", "type": "indoor", "sunlight": "partial", "humidity": "medium", "description": "Perto da janela",
	})
	createLocation(t, router, map[string]any{
		"name": "Quintal", "type": "garden", "sunlight": "full", "humidity": "high", "description": "Canteiro",
	})

	testutil.Given(t, "two locations of different types", func(t *testing.T) {
		testutil.When(t, "listing by type", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/locations?type=garden"))
			testutil.Then(t, "only matching locations are returned", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				list := testutil.UnmarshalResponse[[]models.Location](t, rr)
				if assert.Len(t, *list, 1) {
					assert.Equal(t, "Quintal", (*list)[0].Name)
				}
			})
		})
	})

	testutil.Given(t, "a location holding a plant", func(t *testing.T) {
		counts[sala.ID] = 1
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/locations/"+sala.ID.String()+"/is-empty"))
		testutil.AssertStatusOK(t, rr)
		testutil.AssertJSONContains(t, rr, "isEmpty", false)

		rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodDelete, "/locations/"+sala.ID.String()))
		testutil.AssertStatusAndError(t, rr, http.StatusConflict, "conflict")
		delete(counts, sala.ID)
	})

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPatch, "/locations/"+sala.ID.String(), map[string]any{
		"sunlight": "shade",
	}))
	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "sunlight", "shade")
	testutil.AssertJSONContains(t, rr, "description", "Perto da janela")

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodDelete, "/locations/"+sala.ID.String()))
	testutil.AssertStatus(t, rr, http.StatusNoContent)
}

func TestLocationErrors(t *testing.T) {
	router := newRouter(t, plantCounter{})

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/locations?type=roof"))
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/locations/"+id.NewLocationID().String()))
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/locations", map[string]any{
		"name": "Sala", "type": "indoor", "sunlight": "dark", "humidity": "medium", "description": "x",
	}))
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
}

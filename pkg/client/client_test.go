package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantcare/pkg/calendar"
	"plantcare/pkg/care"
	id "plantcare/pkg/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", opts...)
}

func TestErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    Kind
		message string
	}{
		{"message string", 400, `{"message":"name is required"}`, KindValidation, "name is required"},
		{"message list", 400, `{"message":["name is required","type is invalid"]}`, KindValidation, "name is required, type is invalid"},
		{"error description", 409, `{"error":"conflict","error_description":"species still has plants"}`, KindValidation, "species still has plants"},
		{"status text fallback", 500, `{"error":"internal_error"}`, KindServer, "Internal Server Error"},
		{"non json body", 502, `<html>bad gateway</html>`, KindServer, "Bad Gateway"},
		{"unknown status", 599, ``, KindServer, "unknown error"},
		{"unauthorized", 401, `{"error":"unauthorized","error_description":"Invalid or expired token"}`, KindUnauthorized, "Invalid or expired token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			_, err := c.ListPlants(context.Background(), "")

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.kind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := New(srv.URL).ListSpecies(context.Background(), "")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindTransport, apiErr.Kind)
	assert.Contains(t, apiErr.Message, "network error")
}

func TestUnauthorizedIsLoggedAsSessionExpiry(t *testing.T) {
	var logs bytes.Buffer
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	_, err := c.ListReminders(context.Background(), ReminderQuery{})
	assert.True(t, IsUnauthorized(err))
	assert.Contains(t, logs.String(), "session expired")
}

func TestRequestShape(t *testing.T) {
	var got struct {
		method, path, query, auth string
		body                      map[string]any
	}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got.method, got.path, got.query = r.Method, r.URL.Path, r.URL.RawQuery
		got.auth = r.Header.Get("Authorization")
		got.body = nil
		_ = json.NewDecoder(r.Body).Decode(&got.body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"0b7b6f5e-6d5e-4a55-9d8c-3f1f0c8e7a10","name":"Jiboia","purchaseDate":"2024-03-05T00:00:00Z","photo":null}`)
	}, WithToken("tok"))
	ctx := context.Background()

	t.Run("blank photo is never sent", func(t *testing.T) {
		blank := id.Photo("  ")
		p, err := c.CreatePlant(ctx, NewPlant{
			Name: "Jiboia", SpeciesName: "Epipremnum aureum", LocationName: "Sala",
			PurchaseDate: calendar.New(2024, time.March, 5), Photo: &blank,
		})
		require.NoError(t, err)
		assert.Equal(t, "Bearer tok", got.auth)
		assert.Equal(t, "/plants", got.path)
		assert.NotContains(t, got.body, "photo")
		assert.Equal(t, "2024-03-05", got.body["purchaseDate"])
		assert.Equal(t, "2024-03-05", p.PurchaseDate.String())
		assert.Nil(t, p.Photo)
	})

	t.Run("clearing a photo sends null", func(t *testing.T) {
		_, err := c.UpdatePlant(ctx, "Jiboia", PlantPatch{Photo: id.SetPhoto(nil)})
		require.NoError(t, err)
		assert.Equal(t, http.MethodPatch, got.method)
		assert.Contains(t, got.body, "photo")
		assert.Nil(t, got.body["photo"])
	})

	t.Run("untouched photo is omitted", func(t *testing.T) {
		notes := "regar pouco"
		_, err := c.UpdatePlant(ctx, "Jiboia", PlantPatch{Notes: &notes})
		require.NoError(t, err)
		assert.NotContains(t, got.body, "photo")
	})

	t.Run("names are path escaped", func(t *testing.T) {
		_, err := c.ListPlantsByLocation(ctx, "Sala de estar")
		require.Error(t, err) // the canned body is an object, not a list
		assert.Equal(t, "/plants/location/Sala de estar", got.path)
	})

	t.Run("filters become query parameters", func(t *testing.T) {
		_, _ = c.ListLocations(ctx, LocationQuery{Type: id.LocationIndoor, Query: "sala"})
		assert.Equal(t, "q=sala&type=indoor", got.query)
	})
}

func TestReminderDerivedViews(t *testing.T) {
	now := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.Local)
	r := Reminder{NextDue: calendar.New(2024, time.June, 8), IsActive: true}

	assert.Equal(t, care.LabelOverdue, r.Status(now).Label)
	assert.Equal(t, -2, r.DaysUntilDue(now))

	r.IsActive = false
	assert.Equal(t, care.LabelInactive, r.Status(now).Label)
}

func TestLoadDegradesToEmpty(t *testing.T) {
	failing := func(context.Context) ([]Plant, error) { return nil, errors.New("offline") }
	snap := Load(context.Background(), failing)
	assert.NotNil(t, snap.Items)
	assert.Empty(t, snap.Items)
	assert.EqualError(t, snap.Err, "offline")

	ok := func(context.Context) ([]Plant, error) { return []Plant{{Name: "Jiboia"}}, nil }
	snap = Load(context.Background(), ok)
	assert.NoError(t, snap.Err)
	assert.Len(t, snap.Items, 1)
}

package httptransport

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"plantcare/internal/platform/metrics"
	"plantcare/internal/platform/middleware"
	"plantcare/pkg/platform/httputil"
	"plantcare/pkg/requestcontext"
	"plantcare/pkg/testutil"
)

type pingModule struct{}

func (pingModule) Register(r chi.Router) {
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{
			"subject": requestcontext.Subject(r.Context()),
		})
	})
}

type staticValidator struct{ token string }

func (v staticValidator) ValidateToken(token string) (*middleware.JWTClaims, error) {
	if token != v.token {
		return nil, errors.New("bad token")
	}
	return &middleware.JWTClaims{Subject: "gardener"}, nil
}

func quietOptions() Options {
	reg := prometheus.NewRegistry()
	return Options{
		Logger:   slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
		Metrics:  metrics.NewWithRegistry(reg),
		Gatherer: reg,
	}
}

func TestHealth(t *testing.T) {
	testutil.Given(t, "all backends healthy", func(t *testing.T) {
		opts := quietOptions()
		opts.HealthChecks = []HealthCheck{{Name: "postgres", Check: func(context.Context) error { return nil }}}
		router := NewRouter(opts)

		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health"))
		testutil.Then(t, "status is ok", func(t *testing.T) {
			testutil.AssertStatusOK(t, rr)
			testutil.AssertJSONContains(t, rr, "status", "ok")
		})
	})

	testutil.Given(t, "a failing backend", func(t *testing.T) {
		opts := quietOptions()
		opts.HealthChecks = []HealthCheck{{Name: "redis", Check: func(context.Context) error { return errors.New("connection refused") }}}
		router := NewRouter(opts)

		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health"))
		testutil.Then(t, "status is degraded", func(t *testing.T) {
			testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
			testutil.AssertJSONContains(t, rr, "status", "degraded")
		})
	})
}

func TestRouting(t *testing.T) {
	router := NewRouter(quietOptions(), pingModule{})

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/ping"))
	testutil.AssertStatusOK(t, rr)
	assert.NotEmpty(t, rr.Header().Get(chimw.RequestIDHeader))
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/nowhere"))
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodDelete, "/ping"))
	testutil.AssertStatusAndError(t, rr, http.StatusMethodNotAllowed, "method_not_allowed")
}

func TestAuthentication(t *testing.T) {
	opts := quietOptions()
	opts.Auth = staticValidator{token: "secret"}
	router := NewRouter(opts, pingModule{})

	testutil.When(t, "no bearer token is sent", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/ping"))
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
	})

	testutil.When(t, "a valid token is sent", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodGet, "/ping")
		req.Header.Set("Authorization", "Bearer secret")
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatusOK(t, rr)
		testutil.AssertJSONContains(t, rr, "subject", "gardener")
	})

	testutil.When(t, "probing health", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health"))
		testutil.AssertStatusOK(t, rr)
	})
}

func TestCORSPreflight(t *testing.T) {
	opts := quietOptions()
	opts.CORSOrigins = []string{"http://localhost:3000"}
	router := NewRouter(opts, pingModule{})

	req := testutil.NewRequest(t, http.MethodOptions, "/ping")
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := testutil.DoRequest(router, req)

	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	router := NewRouter(quietOptions(), pingModule{})
	testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/ping"))

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
	testutil.AssertStatusOK(t, rr)
	assert.Contains(t, rr.Body.String(), "plantcare_")
}

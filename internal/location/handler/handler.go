package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"plantcare/internal/location/models"
	id "plantcare/pkg/domain"
	dErrors "plantcare/pkg/domain-errors"
	"plantcare/pkg/platform/httputil"
)

type Service interface {
	List(ctx context.Context, filter models.ListFilter) ([]*models.Location, error)
	Get(ctx context.Context, locationID id.LocationID) (*models.Location, error)
	Create(ctx context.Context, req *models.CreateLocationRequest) (*models.Location, error)
	Update(ctx context.Context, locationID id.LocationID, req *models.UpdateLocationRequest) (*models.Location, error)
	Delete(ctx context.Context, locationID id.LocationID) error
	IsEmpty(ctx context.Context, locationID id.LocationID) (*models.Emptiness, error)
}

// Handler serves /locations.
type Handler struct {
	locations Service
	logger    *slog.Logger
}

func New(locations Service, logger *slog.Logger) *Handler {
	return &Handler{locations: locations, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/locations", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.Patch("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
		r.Get("/{id}/is-empty", h.handleIsEmpty)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	list, err := h.locations.List(r.Context(), filter)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteList(w, list)
}

func parseFilter(r *http.Request) (models.ListFilter, error) {
	q := r.URL.Query()
	filter := models.ListFilter{Query: q.Get("q")}
	if raw := strings.TrimSpace(q.Get("type")); raw != "" {
		lt, err := id.ParseLocationType(raw)
		if err != nil {
			return filter, dErrors.New(dErrors.CodeBadRequest, "invalid location type filter")
		}
		filter.Type = lt
	}
	if raw := strings.TrimSpace(q.Get("sunlight")); raw != "" {
		sun, err := id.ParseSunlight(raw)
		if err != nil {
			return filter, dErrors.New(dErrors.CodeBadRequest, "invalid sunlight filter")
		}
		filter.Sunlight = sun
	}
	return filter, nil
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLocationRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	loc, err := h.locations.Create(r.Context(), &req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, loc)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	locationID, ok := h.locationID(w, r)
	if !ok {
		return
	}
	loc, err := h.locations.Get(r.Context(), locationID)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, loc)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	locationID, ok := h.locationID(w, r)
	if !ok {
		return
	}
	var req models.UpdateLocationRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	loc, err := h.locations.Update(r.Context(), locationID, &req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, loc)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	locationID, ok := h.locationID(w, r)
	if !ok {
		return
	}
	if err := h.locations.Delete(r.Context(), locationID); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleIsEmpty(w http.ResponseWriter, r *http.Request) {
	locationID, ok := h.locationID(w, r)
	if !ok {
		return
	}
	res, err := h.locations.IsEmpty(r.Context(), locationID)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) locationID(w http.ResponseWriter, r *http.Request) (id.LocationID, bool) {
	locationID, err := id.ParseLocationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Fail(w, r, h.logger, dErrors.New(dErrors.CodeBadRequest, "invalid location id"))
		return id.LocationID{}, false
	}
	return locationID, true
}

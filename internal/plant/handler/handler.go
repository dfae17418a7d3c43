package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"plantcare/internal/plant/models"
	dErrors "plantcare/pkg/domain-errors"
	"plantcare/pkg/platform/httputil"
)

type Service interface {
	List(ctx context.Context, query string) ([]*models.Plant, error)
	Get(ctx context.Context, ref string) (*models.Plant, error)
	ListBySpeciesName(ctx context.Context, name string) ([]*models.Plant, error)
	ListByLocationName(ctx context.Context, name string) ([]*models.Plant, error)
	Create(ctx context.Context, req *models.CreatePlantRequest) (*models.Plant, error)
	Update(ctx context.Context, ref string, req *models.UpdatePlantRequest) (*models.Plant, error)
	Delete(ctx context.Context, ref string) error
	DeleteAll(ctx context.Context) (*models.BulkDeleteResult, error)
}

// Handler serves /plants. A {ref} is a plant ID or a plant name.
type Handler struct {
	plants Service
	logger *slog.Logger
}

func New(plants Service, logger *slog.Logger) *Handler {
	return &Handler{plants: plants, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/plants", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Delete("/", h.handleDeleteAll)
		r.Get("/location/{name}", h.handleByLocation)
		r.Get("/species/{name}", h.handleBySpecies)
		r.Get("/{ref}", h.handleGet)
		r.Patch("/{ref}", h.handleUpdate)
		r.Delete("/{ref}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.plants.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteList(w, list)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePlantRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	p, err := h.plants.Create(r.Context(), &req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) handleDeleteAll(w http.ResponseWriter, r *http.Request) {
	res, err := h.plants.DeleteAll(r.Context())
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) handleByLocation(w http.ResponseWriter, r *http.Request) {
	name, ok := h.param(w, r, "name")
	if !ok {
		return
	}
	list, err := h.plants.ListByLocationName(r.Context(), name)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteList(w, list)
}

func (h *Handler) handleBySpecies(w http.ResponseWriter, r *http.Request) {
	name, ok := h.param(w, r, "name")
	if !ok {
		return
	}
	list, err := h.plants.ListBySpeciesName(r.Context(), name)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteList(w, list)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.param(w, r, "ref")
	if !ok {
		return
	}
	p, err := h.plants.Get(r.Context(), ref)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.param(w, r, "ref")
	if !ok {
		return
	}
	var req models.UpdatePlantRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	p, err := h.plants.Update(r.Context(), ref, &req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.param(w, r, "ref")
	if !ok {
		return
	}
	if err := h.plants.Delete(r.Context(), ref); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// param returns the unescaped path parameter; names may contain spaces.
func (h *Handler) param(w http.ResponseWriter, r *http.Request, key string) (string, bool) {
	v, err := url.PathUnescape(chi.URLParam(r, key))
	v = strings.TrimSpace(v)
	if err != nil || v == "" {
		httputil.Fail(w, r, h.logger, dErrors.New(dErrors.CodeBadRequest, "invalid "+key))
		return "", false
	}
	return v, true
}

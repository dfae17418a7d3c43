package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"plantcare/internal/species/models"
	id "plantcare/pkg/domain"
	dErrors "plantcare/pkg/domain-errors"
	"plantcare/pkg/platform/httputil"
)

// Service defines the species operations the handler needs.
type Service interface {
	List(ctx context.Context, query string) ([]*models.Species, error)
	Get(ctx context.Context, speciesID id.SpeciesID) (*models.Species, error)
	Create(ctx context.Context, req *models.CreateSpeciesRequest) (*models.Species, error)
	Update(ctx context.Context, speciesID id.SpeciesID, req *models.UpdateSpeciesRequest) (*models.Species, error)
	Delete(ctx context.Context, speciesID id.SpeciesID) error
	CanRemove(ctx context.Context, speciesID id.SpeciesID) (*models.Removability, error)
}

// Handler serves /species.
type Handler struct {
	species Service
	logger  *slog.Logger
}

func New(species Service, logger *slog.Logger) *Handler {
	return &Handler{species: species, logger: logger}
}

// Register registers the species routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/species", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.Patch("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
		r.Get("/{id}/can-remove", h.handleCanRemove)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.species.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteList(w, list)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSpeciesRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	sp, err := h.species.Create(r.Context(), &req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, sp)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	speciesID, ok := h.speciesID(w, r)
	if !ok {
		return
	}
	sp, err := h.species.Get(r.Context(), speciesID)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sp)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	speciesID, ok := h.speciesID(w, r)
	if !ok {
		return
	}
	var req models.UpdateSpeciesRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	sp, err := h.species.Update(r.Context(), speciesID, &req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sp)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	speciesID, ok := h.speciesID(w, r)
	if !ok {
		return
	}
	if err := h.species.Delete(r.Context(), speciesID); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCanRemove(w http.ResponseWriter, r *http.Request) {
	speciesID, ok := h.speciesID(w, r)
	if !ok {
		return
	}
	res, err := h.species.CanRemove(r.Context(), speciesID)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) speciesID(w http.ResponseWriter, r *http.Request) (id.SpeciesID, bool) {
	speciesID, err := id.ParseSpeciesID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Fail(w, r, h.logger, dErrors.New(dErrors.CodeBadRequest, "invalid species id"))
		return id.SpeciesID{}, false
	}
	return speciesID, true
}

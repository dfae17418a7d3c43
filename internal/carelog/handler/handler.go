package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"plantcare/internal/carelog/models"
	"plantcare/internal/carelog/service"
	id "plantcare/pkg/domain"
	dErrors "plantcare/pkg/domain-errors"
	"plantcare/pkg/platform/httputil"
)

type Service interface {
	List(ctx context.Context, filter models.ListFilter) ([]*models.CareLog, error)
	Recent(ctx context.Context, days int) ([]*models.CareLog, error)
	Successful(ctx context.Context) ([]*models.CareLog, error)
	Stats(ctx context.Context) (*models.Stats, error)
	Get(ctx context.Context, logID id.CareLogID) (*models.CareLog, error)
	Create(ctx context.Context, req *models.CreateCareLogRequest) (*models.CareLog, error)
	Update(ctx context.Context, logID id.CareLogID, req *models.UpdateCareLogRequest) (*models.CareLog, error)
	Delete(ctx context.Context, logID id.CareLogID) error
}

// Handler serves /care-logs.
type Handler struct {
	logs   Service
	logger *slog.Logger
}

func New(logs Service, logger *slog.Logger) *Handler {
	return &Handler{logs: logs, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/care-logs", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/recent", h.handleRecent)
		r.Get("/successful", h.handleSuccessful)
		r.Get("/stats", h.handleStats)
		r.Get("/{id}", h.handleGet)
		r.Patch("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ListFilter{Query: q.Get("q")}
	if raw := strings.TrimSpace(q.Get("plantId")); raw != "" {
		plantID, err := id.ParsePlantID(raw)
		if err != nil {
			httputil.Fail(w, r, h.logger, dErrors.New(dErrors.CodeBadRequest, "invalid plantId filter"))
			return
		}
		filter.PlantID = plantID
	}
	if raw := strings.TrimSpace(q.Get("type")); raw != "" {
		t, err := id.ParseCareLogType(raw)
		if err != nil {
			httputil.Fail(w, r, h.logger, dErrors.New(dErrors.CodeBadRequest, "invalid type filter"))
			return
		}
		filter.Type = t
	}
	list, err := h.logs.List(r.Context(), filter)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteList(w, list)
}

func (h *Handler) handleRecent(w http.ResponseWriter, r *http.Request) {
	days, err := httputil.QueryInt(r, "days", service.DefaultRecentDays)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	list, err := h.logs.Recent(r.Context(), days)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteList(w, list)
}

func (h *Handler) handleSuccessful(w http.ResponseWriter, r *http.Request) {
	list, err := h.logs.Successful(r.Context())
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteList(w, list)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.logs.Stats(r.Context())
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, st)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCareLogRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	l, err := h.logs.Create(r.Context(), &req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, l)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	logID, ok := h.logID(w, r)
	if !ok {
		return
	}
	l, err := h.logs.Get(r.Context(), logID)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	logID, ok := h.logID(w, r)
	if !ok {
		return
	}
	var req models.UpdateCareLogRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	l, err := h.logs.Update(r.Context(), logID, &req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	logID, ok := h.logID(w, r)
	if !ok {
		return
	}
	if err := h.logs.Delete(r.Context(), logID); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) logID(w http.ResponseWriter, r *http.Request) (id.CareLogID, bool) {
	logID, err := id.ParseCareLogID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Fail(w, r, h.logger, dErrors.New(dErrors.CodeBadRequest, "invalid care log id"))
		return id.CareLogID{}, false
	}
	return logID, true
}

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"plantcare/internal/reminder/models"
	"plantcare/internal/reminder/service"
	id "plantcare/pkg/domain"
	dErrors "plantcare/pkg/domain-errors"
	"plantcare/pkg/platform/httputil"
)

type Service interface {
	List(ctx context.Context, filter models.ListFilter) ([]*models.View, error)
	Overdue(ctx context.Context) ([]*models.View, error)
	Upcoming(ctx context.Context, days int) ([]*models.View, error)
	Get(ctx context.Context, reminderID id.ReminderID) (*models.View, error)
	Create(ctx context.Context, req *models.CreateReminderRequest) (*models.View, error)
	Update(ctx context.Context, reminderID id.ReminderID, req *models.UpdateReminderRequest) (*models.View, error)
	MarkDone(ctx context.Context, reminderID id.ReminderID) (*models.View, error)
	Delete(ctx context.Context, reminderID id.ReminderID) error
}

// Handler serves /care-reminders.
type Handler struct {
	reminders Service
	logger    *slog.Logger
}

func New(reminders Service, logger *slog.Logger) *Handler {
	return &Handler{reminders: reminders, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/care-reminders", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/overdue", h.handleOverdue)
		r.Get("/upcoming", h.handleUpcoming)
		r.Get("/{id}", h.handleGet)
		r.Patch("/{id}", h.handleUpdate)
		r.Patch("/{id}/mark-done", h.handleMarkDone)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ListFilter{Query: q.Get("q")}
	if raw := strings.TrimSpace(q.Get("type")); raw != "" {
		t, err := id.ParseReminderType(raw)
		if err != nil {
			httputil.Fail(w, r, h.logger, dErrors.New(dErrors.CodeBadRequest, "invalid type filter"))
			return
		}
		filter.Type = t
	}
	if raw := strings.TrimSpace(q.Get("plantId")); raw != "" {
		plantID, err := id.ParsePlantID(raw)
		if err != nil {
			httputil.Fail(w, r, h.logger, dErrors.New(dErrors.CodeBadRequest, "invalid plantId filter"))
			return
		}
		filter.PlantID = plantID
	}
	list, err := h.reminders.List(r.Context(), filter)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteList(w, list)
}

func (h *Handler) handleOverdue(w http.ResponseWriter, r *http.Request) {
	list, err := h.reminders.Overdue(r.Context())
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteList(w, list)
}

func (h *Handler) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	days, err := httputil.QueryInt(r, "days", service.DefaultUpcomingDays)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	list, err := h.reminders.Upcoming(r.Context(), days)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteList(w, list)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReminderRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	v, err := h.reminders.Create(r.Context(), &req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, v)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reminderID, ok := h.reminderID(w, r)
	if !ok {
		return
	}
	v, err := h.reminders.Get(r.Context(), reminderID)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reminderID, ok := h.reminderID(w, r)
	if !ok {
		return
	}
	var req models.UpdateReminderRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	v, err := h.reminders.Update(r.Context(), reminderID, &req)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) handleMarkDone(w http.ResponseWriter, r *http.Request) {
	reminderID, ok := h.reminderID(w, r)
	if !ok {
		return
	}
	v, err := h.reminders.MarkDone(r.Context(), reminderID)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reminderID, ok := h.reminderID(w, r)
	if !ok {
		return
	}
	if err := h.reminders.Delete(r.Context(), reminderID); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) reminderID(w http.ResponseWriter, r *http.Request) (id.ReminderID, bool) {
	reminderID, err := id.ParseReminderID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Fail(w, r, h.logger, dErrors.New(dErrors.CodeBadRequest, "invalid care reminder id"))
		return id.ReminderID{}, false
	}
	return reminderID, true
}

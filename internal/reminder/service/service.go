package service

import (
	"context"
	"errors"
	"log/slog"

	"plantcare/internal/events"
	plantModels "plantcare/internal/plant/models"
	"plantcare/internal/platform/metrics"
	"plantcare/internal/reminder/models"
	"plantcare/pkg/calendar"
	"plantcare/pkg/care"
	id "plantcare/pkg/domain"
	dErrors "plantcare/pkg/domain-errors"
	"plantcare/pkg/platform/sentinel"
	"plantcare/pkg/requestcontext"
)

// DefaultUpcomingDays is the horizon of Upcoming when none is given.
const DefaultUpcomingDays = 7

type Store interface {
	Create(ctx context.Context, r *models.Reminder) error
	FindByID(ctx context.Context, reminderID id.ReminderID) (*models.Reminder, error)
	List(ctx context.Context, filter models.ListFilter) ([]*models.Reminder, error)
	Update(ctx context.Context, r *models.Reminder) error
	Delete(ctx context.Context, reminderID id.ReminderID) error
}

// PlantLookup resolves the plants reminders belong to.
type PlantLookup interface {
	FindByID(ctx context.Context, plantID id.PlantID) (*plantModels.Plant, error)
	List(ctx context.Context) ([]*plantModels.Plant, error)
}

// Service manages care reminders and derives their status at read time.
type Service struct {
	reminders Store
	plants    PlantLookup
	emitter   *events.Emitter
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithEmitter(e *events.Emitter) Option {
	return func(s *Service) {
		s.emitter = e
	}
}

func New(reminders Store, plants PlantLookup, opts ...Option) *Service {
	s := &Service{reminders: reminders, plants: plants, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns reminders soonest due first.
func (s *Service) List(ctx context.Context, filter models.ListFilter) ([]*models.View, error) {
	all, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, care.Filter(all, filter.Query)), nil
}

// Overdue returns active reminders whose due day has passed.
func (s *Service) Overdue(ctx context.Context) ([]*models.View, error) {
	all, err := s.load(ctx, models.ListFilter{})
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)
	out := make([]*models.Reminder, 0, len(all))
	for _, r := range all {
		if care.IsOverdue(r.NextDue, r.IsActive, now) {
			out = append(out, r)
		}
	}
	return s.views(ctx, out), nil
}

// Upcoming returns active reminders due within days, today included. Overdue
// reminders are excluded.
func (s *Service) Upcoming(ctx context.Context, days int) ([]*models.View, error) {
	if days < 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "days must not be negative")
	}
	all, err := s.load(ctx, models.ListFilter{})
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)
	out := make([]*models.Reminder, 0, len(all))
	for _, r := range all {
		if care.IsUpcoming(r.NextDue, r.IsActive, now, days) {
			out = append(out, r)
		}
	}
	return s.views(ctx, out), nil
}

func (s *Service) Get(ctx context.Context, reminderID id.ReminderID) (*models.View, error) {
	r, err := s.reminders.FindByID(ctx, reminderID)
	if err != nil {
		return nil, wrapReminderErr(err, "failed to load care reminder")
	}
	if err := s.enrich(ctx, r); err != nil {
		return nil, err
	}
	return models.NewView(r, requestcontext.Now(ctx)), nil
}

func (s *Service) Create(ctx context.Context, req *models.CreateReminderRequest) (*models.View, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	r, err := req.Build(requestcontext.Now(ctx))
	if err != nil {
		return nil, toValidation(err)
	}
	plant, err := s.plants.FindByID(ctx, r.PlantID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeValidation, "plant does not exist")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load plant")
	}
	if err := s.reminders.Create(ctx, r); err != nil {
		return nil, wrapReminderErr(err, "failed to create care reminder")
	}
	r.PlantName = plant.Name

	s.metrics.IncrementWrite("care_reminder", "create")
	s.logger.InfoContext(ctx, "care reminder created",
		"reminder_id", r.ID,
		"plant_id", r.PlantID,
		"type", r.Type,
		"frequency", r.Frequency,
		"request_id", requestcontext.RequestID(ctx),
	)
	return models.NewView(r, requestcontext.Now(ctx)), nil
}

func (s *Service) Update(ctx context.Context, reminderID id.ReminderID, req *models.UpdateReminderRequest) (*models.View, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	r, err := s.reminders.FindByID(ctx, reminderID)
	if err != nil {
		return nil, wrapReminderErr(err, "failed to load care reminder")
	}
	req.Apply(r, requestcontext.Now(ctx))
	if err := s.reminders.Update(ctx, r); err != nil {
		return nil, wrapReminderErr(err, "failed to update care reminder")
	}
	if err := s.enrich(ctx, r); err != nil {
		return nil, err
	}
	s.metrics.IncrementWrite("care_reminder", "update")
	return models.NewView(r, requestcontext.Now(ctx)), nil
}

// MarkDone records the reminder's care as done today and rolls NextDue
// forward by the reminder's frequency.
func (s *Service) MarkDone(ctx context.Context, reminderID id.ReminderID) (*models.View, error) {
	r, err := s.reminders.FindByID(ctx, reminderID)
	if err != nil {
		return nil, wrapReminderErr(err, "failed to load care reminder")
	}
	now := requestcontext.Now(ctx)
	r.MarkDone(now)
	if err := s.reminders.Update(ctx, r); err != nil {
		return nil, wrapReminderErr(err, "failed to update care reminder")
	}
	if err := s.enrich(ctx, r); err != nil {
		return nil, err
	}

	s.metrics.IncrementRemindersDone()
	s.logger.InfoContext(ctx, "care reminder done",
		"reminder_id", r.ID,
		"next_due", r.NextDue,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.emitter.Emit(ctx, care.Event{
		Type:     care.EventReminderComplete,
		EntityID: r.ID.String(),
		PlantID:  r.PlantID.String(),
		Detail:   string(r.Type),
	})
	return models.NewView(r, now), nil
}

func (s *Service) Delete(ctx context.Context, reminderID id.ReminderID) error {
	if err := s.reminders.Delete(ctx, reminderID); err != nil {
		return wrapReminderErr(err, "failed to delete care reminder")
	}
	s.metrics.IncrementWrite("care_reminder", "delete")
	s.logger.InfoContext(ctx, "care reminder deleted",
		"reminder_id", reminderID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}

func (s *Service) load(ctx context.Context, filter models.ListFilter) ([]*models.Reminder, error) {
	all, err := s.reminders.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list care reminders")
	}
	if err := s.enrich(ctx, all...); err != nil {
		return nil, err
	}
	return all, nil
}

func (s *Service) views(ctx context.Context, reminders []*models.Reminder) []*models.View {
	care.SortByNextDue(reminders, func(r *models.Reminder) calendar.Date { return r.NextDue })
	now := requestcontext.Now(ctx)
	out := make([]*models.View, len(reminders))
	for i, r := range reminders {
		out[i] = models.NewView(r, now)
	}
	return out
}

func (s *Service) enrich(ctx context.Context, reminders ...*models.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}
	plants, err := s.plants.List(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load plants")
	}
	names := make(map[id.PlantID]string, len(plants))
	for _, p := range plants {
		names[p.ID] = p.Name
	}
	for _, r := range reminders {
		r.PlantName = names[r.PlantID]
	}
	return nil
}

func wrapReminderErr(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "care reminder not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

func toValidation(err error) error {
	var de *dErrors.Error
	if errors.As(err, &de) && (de.Code == dErrors.CodeInvariantViolation || de.Code == dErrors.CodeInvalidInput) {
		return dErrors.New(dErrors.CodeValidation, de.Message)
	}
	return err
}

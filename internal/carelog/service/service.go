package service

import (
	"context"
	"errors"
	"log/slog"

	"plantcare/internal/carelog/models"
	"plantcare/internal/events"
	plantModels "plantcare/internal/plant/models"
	"plantcare/internal/platform/metrics"
	"plantcare/pkg/calendar"
	"plantcare/pkg/care"
	id "plantcare/pkg/domain"
	dErrors "plantcare/pkg/domain-errors"
	"plantcare/pkg/platform/sentinel"
	"plantcare/pkg/requestcontext"
)

// DefaultRecentDays is the window of Recent when none is given.
const DefaultRecentDays = 7

type Store interface {
	Create(ctx context.Context, l *models.CareLog) error
	FindByID(ctx context.Context, logID id.CareLogID) (*models.CareLog, error)
	List(ctx context.Context, filter models.ListFilter) ([]*models.CareLog, error)
	Update(ctx context.Context, l *models.CareLog) error
	Delete(ctx context.Context, logID id.CareLogID) error
	DeleteByPlants(ctx context.Context, plantIDs []id.PlantID) (int, error)
}

// StatsCache holds the last computed statistics until a write invalidates
// them.
type StatsCache interface {
	Get(ctx context.Context) (*models.Stats, bool, error)
	Set(ctx context.Context, st *models.Stats) error
	Invalidate(ctx context.Context) error
}

type PlantLookup interface {
	FindByID(ctx context.Context, plantID id.PlantID) (*plantModels.Plant, error)
	List(ctx context.Context) ([]*plantModels.Plant, error)
}

// Service records care given to plants.
type Service struct {
	logs    Store
	plants  PlantLookup
	cache   StatsCache
	emitter *events.Emitter
	logger  *slog.Logger
	metrics *metrics.Metrics
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

// WithStatsCache enables caching of Stats.
func WithStatsCache(c StatsCache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

func New(logs Store, plants PlantLookup, opts ...Option) *Service {
	s := &Service{logs: logs, plants: plants, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns care logs most recent first.
func (s *Service) List(ctx context.Context, filter models.ListFilter) ([]*models.CareLog, error) {
	all, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}
	return care.Filter(all, filter.Query), nil
}

// Recent returns logs dated within the last days days, today included.
func (s *Service) Recent(ctx context.Context, days int) ([]*models.CareLog, error) {
	if days < 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "days must not be negative")
	}
	all, err := s.load(ctx, models.ListFilter{})
	if err != nil {
		return nil, err
	}
	today := calendar.Today(requestcontext.Now(ctx))
	since := today.AddDays(-days)
	out := make([]*models.CareLog, 0, len(all))
	for _, l := range all {
		if !l.Date.Before(since) && !l.Date.After(today) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *Service) Successful(ctx context.Context) ([]*models.CareLog, error) {
	all, err := s.load(ctx, models.ListFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]*models.CareLog, 0, len(all))
	for _, l := range all {
		if l.Success {
			out = append(out, l)
		}
	}
	return out, nil
}

// Stats summarizes every care log. Cache failures degrade to recomputing.
func (s *Service) Stats(ctx context.Context) (*models.Stats, error) {
	if s.cache != nil {
		st, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "stats cache read failed", "error", err)
		}
		s.metrics.IncrementStatsCache(ok)
		if ok {
			return st, nil
		}
	}
	all, err := s.logs.List(ctx, models.ListFilter{})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list care logs")
	}
	st := models.ComputeStats(all)
	if s.cache != nil {
		if err := s.cache.Set(ctx, st); err != nil {
			s.logger.WarnContext(ctx, "stats cache write failed", "error", err)
		}
	}
	return st, nil
}

func (s *Service) Get(ctx context.Context, logID id.CareLogID) (*models.CareLog, error) {
	l, err := s.logs.FindByID(ctx, logID)
	if err != nil {
		return nil, wrapCareLogErr(err, "failed to load care log")
	}
	if err := s.enrich(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) Create(ctx context.Context, req *models.CreateCareLogRequest) (*models.CareLog, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	l, err := req.Build(requestcontext.Now(ctx))
	if err != nil {
		return nil, toValidation(err)
	}
	plant, err := s.plants.FindByID(ctx, l.PlantID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeValidation, "plant does not exist")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load plant")
	}
	if err := s.logs.Create(ctx, l); err != nil {
		return nil, wrapCareLogErr(err, "failed to create care log")
	}
	l.PlantName = plant.Name
	s.invalidate(ctx)

	s.metrics.IncrementCareLogged(string(l.Type), l.Success)
	s.logger.InfoContext(ctx, "care logged",
		"care_log_id", l.ID,
		"plant_id", l.PlantID,
		"type", l.Type,
		"success", l.Success,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.emitter.Emit(ctx, care.Event{
		Type:     care.EventCareLogged,
		EntityID: l.ID.String(),
		PlantID:  l.PlantID.String(),
		Detail:   string(l.Type),
	})
	return l, nil
}

func (s *Service) Update(ctx context.Context, logID id.CareLogID, req *models.UpdateCareLogRequest) (*models.CareLog, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	l, err := s.logs.FindByID(ctx, logID)
	if err != nil {
		return nil, wrapCareLogErr(err, "failed to load care log")
	}
	req.Apply(l, requestcontext.Now(ctx))
	if err := s.logs.Update(ctx, l); err != nil {
		return nil, wrapCareLogErr(err, "failed to update care log")
	}
	s.invalidate(ctx)
	if err := s.enrich(ctx, l); err != nil {
		return nil, err
	}
	s.metrics.IncrementWrite("care_log", "update")
	return l, nil
}

func (s *Service) Delete(ctx context.Context, logID id.CareLogID) error {
	if err := s.logs.Delete(ctx, logID); err != nil {
		return wrapCareLogErr(err, "failed to delete care log")
	}
	s.invalidate(ctx)
	s.metrics.IncrementWrite("care_log", "delete")
	s.logger.InfoContext(ctx, "care log deleted",
		"care_log_id", logID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}

// DeleteByPlants removes every log of the given plants. It joins the caller's
// unit of work when ctx carries one and leaves the stats cache alone: the
// caller invalidates it with InvalidateStats after committing.
func (s *Service) DeleteByPlants(ctx context.Context, plantIDs []id.PlantID) (int, error) {
	return s.logs.DeleteByPlants(ctx, plantIDs)
}

func (s *Service) InvalidateStats(ctx context.Context) { s.invalidate(ctx) }

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.WarnContext(ctx, "stats cache invalidation failed", "error", err)
	}
}

func (s *Service) load(ctx context.Context, filter models.ListFilter) ([]*models.CareLog, error) {
	all, err := s.logs.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list care logs")
	}
	if err := s.enrich(ctx, all...); err != nil {
		return nil, err
	}
	care.SortByDateDesc(all, func(l *models.CareLog) calendar.Date { return l.Date })
	return all, nil
}

func (s *Service) enrich(ctx context.Context, logs ...*models.CareLog) error {
	if len(logs) == 0 {
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
	for _, l := range logs {
		l.PlantName = names[l.PlantID]
	}
	return nil
}

func wrapCareLogErr(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "care log not found")
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

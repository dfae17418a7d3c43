package service

import (
	"context"
	"errors"
	"log/slog"

	"plantcare/internal/location/models"
	"plantcare/internal/platform/metrics"
	"plantcare/pkg/care"
	id "plantcare/pkg/domain"
	dErrors "plantcare/pkg/domain-errors"
	"plantcare/pkg/platform/sentinel"
	"plantcare/pkg/requestcontext"
)

type Store interface {
	CreateIfNameAvailable(ctx context.Context, loc *models.Location) error
	FindByID(ctx context.Context, locationID id.LocationID) (*models.Location, error)
	FindByName(ctx context.Context, name string) (*models.Location, error)
	List(ctx context.Context, filter models.ListFilter) ([]*models.Location, error)
	Update(ctx context.Context, loc *models.Location) error
	Delete(ctx context.Context, locationID id.LocationID) error
}

// PlantCounter reports how many plants are kept at a location.
type PlantCounter interface {
	CountByLocation(ctx context.Context, locationID id.LocationID) (int, error)
}

// Service manages locations.
type Service struct {
	locations Store
	plants    PlantCounter
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

func New(locations Store, plants PlantCounter, opts ...Option) *Service {
	s := &Service{locations: locations, plants: plants, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) List(ctx context.Context, filter models.ListFilter) ([]*models.Location, error) {
	all, err := s.locations.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list locations")
	}
	return care.Filter(all, filter.Query), nil
}

func (s *Service) Get(ctx context.Context, locationID id.LocationID) (*models.Location, error) {
	loc, err := s.locations.FindByID(ctx, locationID)
	if err != nil {
		return nil, wrapLocationErr(err, "failed to load location")
	}
	return loc, nil
}

func (s *Service) GetByName(ctx context.Context, name string) (*models.Location, error) {
	loc, err := s.locations.FindByName(ctx, name)
	if err != nil {
		return nil, wrapLocationErr(err, "failed to load location")
	}
	return loc, nil
}

func (s *Service) Create(ctx context.Context, req *models.CreateLocationRequest) (*models.Location, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	loc, err := req.Build(requestcontext.Now(ctx))
	if err != nil {
		return nil, toValidation(err)
	}
	if err := s.locations.CreateIfNameAvailable(ctx, loc); err != nil {
		return nil, wrapLocationErr(err, "failed to create location")
	}
	s.metrics.IncrementWrite("location", "create")
	s.logger.InfoContext(ctx, "location created",
		"location_id", loc.ID,
		"type", loc.Type,
		"request_id", requestcontext.RequestID(ctx),
	)
	return loc, nil
}

func (s *Service) Update(ctx context.Context, locationID id.LocationID, req *models.UpdateLocationRequest) (*models.Location, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	loc, err := s.locations.FindByID(ctx, locationID)
	if err != nil {
		return nil, wrapLocationErr(err, "failed to load location")
	}
	req.Apply(loc, requestcontext.Now(ctx))
	if err := s.locations.Update(ctx, loc); err != nil {
		return nil, wrapLocationErr(err, "failed to update location")
	}
	s.metrics.IncrementWrite("location", "update")
	return loc, nil
}

// IsEmpty reports whether no plant is kept at the location.
func (s *Service) IsEmpty(ctx context.Context, locationID id.LocationID) (*models.Emptiness, error) {
	if _, err := s.locations.FindByID(ctx, locationID); err != nil {
		return nil, wrapLocationErr(err, "failed to load location")
	}
	n, err := s.plants.CountByLocation(ctx, locationID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count plants")
	}
	return &models.Emptiness{IsEmpty: n == 0, PlantCount: n}, nil
}

// Delete removes an empty location.
func (s *Service) Delete(ctx context.Context, locationID id.LocationID) error {
	e, err := s.IsEmpty(ctx, locationID)
	if err != nil {
		return err
	}
	if !e.IsEmpty {
		s.metrics.IncrementConflict("location")
		return dErrors.New(dErrors.CodeConflict, "location still holds plants")
	}
	if err := s.locations.Delete(ctx, locationID); err != nil {
		if errors.Is(err, sentinel.ErrInUse) {
			s.metrics.IncrementConflict("location")
		}
		return wrapLocationErr(err, "failed to delete location")
	}
	s.metrics.IncrementWrite("location", "delete")
	s.logger.InfoContext(ctx, "location deleted",
		"location_id", locationID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}

func wrapLocationErr(err error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "location not found")
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		return dErrors.New(dErrors.CodeConflict, "location name must be unique")
	case errors.Is(err, sentinel.ErrInUse):
		return dErrors.New(dErrors.CodeConflict, "location still holds plants")
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

package service

import (
	"context"
	"errors"
	"log/slog"

	"plantcare/internal/platform/metrics"
	"plantcare/internal/species/models"
	"plantcare/pkg/care"
	id "plantcare/pkg/domain"
	dErrors "plantcare/pkg/domain-errors"
	"plantcare/pkg/platform/sentinel"
	"plantcare/pkg/requestcontext"
)

type Store interface {
	CreateIfNameAvailable(ctx context.Context, sp *models.Species) error
	FindByID(ctx context.Context, speciesID id.SpeciesID) (*models.Species, error)
	FindByName(ctx context.Context, name string) (*models.Species, error)
	List(ctx context.Context) ([]*models.Species, error)
	Update(ctx context.Context, sp *models.Species) error
	Delete(ctx context.Context, speciesID id.SpeciesID) error
}

// PlantCounter reports how many plants reference a species.
type PlantCounter interface {
	CountBySpecies(ctx context.Context, speciesID id.SpeciesID) (int, error)
}

// Service manages the species catalogue.
type Service struct {
	species Store
	plants  PlantCounter
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

func New(species Store, plants PlantCounter, opts ...Option) *Service {
	s := &Service{species: species, plants: plants, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns all species, narrowed by an optional search query.
func (s *Service) List(ctx context.Context, query string) ([]*models.Species, error) {
	all, err := s.species.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list species")
	}
	return care.Filter(all, query), nil
}

func (s *Service) Get(ctx context.Context, speciesID id.SpeciesID) (*models.Species, error) {
	sp, err := s.species.FindByID(ctx, speciesID)
	if err != nil {
		return nil, wrapSpeciesErr(err, "failed to load species")
	}
	return sp, nil
}

func (s *Service) GetByName(ctx context.Context, name string) (*models.Species, error) {
	sp, err := s.species.FindByName(ctx, name)
	if err != nil {
		return nil, wrapSpeciesErr(err, "failed to load species")
	}
	return sp, nil
}

func (s *Service) Create(ctx context.Context, req *models.CreateSpeciesRequest) (*models.Species, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	sp, err := req.Build(requestcontext.Now(ctx))
	if err != nil {
		return nil, toValidation(err)
	}
	if err := s.species.CreateIfNameAvailable(ctx, sp); err != nil {
		return nil, wrapSpeciesErr(err, "failed to create species")
	}
	s.metrics.IncrementWrite("species", "create")
	s.logger.InfoContext(ctx, "species created",
		"species_id", sp.ID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return sp, nil
}

func (s *Service) Update(ctx context.Context, speciesID id.SpeciesID, req *models.UpdateSpeciesRequest) (*models.Species, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	sp, err := s.species.FindByID(ctx, speciesID)
	if err != nil {
		return nil, wrapSpeciesErr(err, "failed to load species")
	}
	req.Apply(sp, requestcontext.Now(ctx))
	if err := s.species.Update(ctx, sp); err != nil {
		return nil, wrapSpeciesErr(err, "failed to update species")
	}
	s.metrics.IncrementWrite("species", "update")
	return sp, nil
}

// CanRemove reports whether no plant references the species.
func (s *Service) CanRemove(ctx context.Context, speciesID id.SpeciesID) (*models.Removability, error) {
	if _, err := s.species.FindByID(ctx, speciesID); err != nil {
		return nil, wrapSpeciesErr(err, "failed to load species")
	}
	n, err := s.plants.CountBySpecies(ctx, speciesID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count plants")
	}
	return &models.Removability{CanBeRemoved: n == 0, PlantCount: n}, nil
}

// Delete removes a species no plant references.
func (s *Service) Delete(ctx context.Context, speciesID id.SpeciesID) error {
	r, err := s.CanRemove(ctx, speciesID)
	if err != nil {
		return err
	}
	if !r.CanBeRemoved {
		s.metrics.IncrementConflict("species")
		return dErrors.New(dErrors.CodeConflict, "species is used by one or more plants")
	}
	if err := s.species.Delete(ctx, speciesID); err != nil {
		if errors.Is(err, sentinel.ErrInUse) {
			s.metrics.IncrementConflict("species")
		}
		return wrapSpeciesErr(err, "failed to delete species")
	}
	s.metrics.IncrementWrite("species", "delete")
	s.logger.InfoContext(ctx, "species deleted",
		"species_id", speciesID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}

func wrapSpeciesErr(err error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "species not found")
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		return dErrors.New(dErrors.CodeConflict, "species name must be unique")
	case errors.Is(err, sentinel.ErrInUse):
		return dErrors.New(dErrors.CodeConflict, "species is used by one or more plants")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

// toValidation converts model invariant violations into validation errors for
// API responses.
func toValidation(err error) error {
	var de *dErrors.Error
	if errors.As(err, &de) && (de.Code == dErrors.CodeInvariantViolation || de.Code == dErrors.CodeInvalidInput) {
		return dErrors.New(dErrors.CodeValidation, de.Message)
	}
	return err
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"plantcare/internal/events"
	locationModels "plantcare/internal/location/models"
	"plantcare/internal/plant/models"
	"plantcare/internal/platform/metrics"
	speciesModels "plantcare/internal/species/models"
	"plantcare/pkg/care"
	id "plantcare/pkg/domain"
	dErrors "plantcare/pkg/domain-errors"
	"plantcare/pkg/platform/sentinel"
	"plantcare/pkg/platform/tx"
	"plantcare/pkg/requestcontext"
)

type Store interface {
	CreateIfNameAvailable(ctx context.Context, p *models.Plant) error
	FindByID(ctx context.Context, plantID id.PlantID) (*models.Plant, error)
	FindByName(ctx context.Context, name string) (*models.Plant, error)
	List(ctx context.Context) ([]*models.Plant, error)
	ListBySpecies(ctx context.Context, speciesID id.SpeciesID) ([]*models.Plant, error)
	ListByLocation(ctx context.Context, locationID id.LocationID) ([]*models.Plant, error)
	Update(ctx context.Context, p *models.Plant) error
	Delete(ctx context.Context, plantID id.PlantID) error
	DeleteAll(ctx context.Context) (int, error)
}

type SpeciesLookup interface {
	FindByID(ctx context.Context, speciesID id.SpeciesID) (*speciesModels.Species, error)
	FindByName(ctx context.Context, name string) (*speciesModels.Species, error)
	List(ctx context.Context) ([]*speciesModels.Species, error)
}

type LocationLookup interface {
	FindByID(ctx context.Context, locationID id.LocationID) (*locationModels.Location, error)
	FindByName(ctx context.Context, name string) (*locationModels.Location, error)
	List(ctx context.Context, filter locationModels.ListFilter) ([]*locationModels.Location, error)
}

// Dependents is a collection of records that belong to plants: care
// reminders or care logs.
type Dependents interface {
	DeleteByPlants(ctx context.Context, plantIDs []id.PlantID) (int, error)
}

// CareLogs are plant dependents that feed cached statistics. InvalidateStats
// is called once a unit of work that removed logs has committed.
type CareLogs interface {
	Dependents
	InvalidateStats(ctx context.Context)
}

// Service manages the plant collection.
type Service struct {
	plants    Store
	species   SpeciesLookup
	locations LocationLookup
	reminders Dependents
	careLogs  CareLogs
	tx        tx.Runner
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

// WithTxRunner sets the unit of work used by Delete and DeleteAll. Defaults
// to tx.Inline.
func WithTxRunner(r tx.Runner) Option {
	return func(s *Service) {
		s.tx = r
	}
}

func New(plants Store, species SpeciesLookup, locations LocationLookup, reminders Dependents, careLogs CareLogs, opts ...Option) *Service {
	s := &Service{
		plants:    plants,
		species:   species,
		locations: locations,
		reminders: reminders,
		careLogs:  careLogs,
		tx:        tx.Inline{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) List(ctx context.Context, query string) ([]*models.Plant, error) {
	all, err := s.plants.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list plants")
	}
	if err := s.enrich(ctx, all...); err != nil {
		return nil, err
	}
	return care.Filter(all, query), nil
}

// Get resolves ref as a plant ID, or as a plant name when it is not an ID.
func (s *Service) Get(ctx context.Context, ref string) (*models.Plant, error) {
	p, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := s.enrich(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListBySpeciesName returns the plants of the named species.
func (s *Service) ListBySpeciesName(ctx context.Context, name string) ([]*models.Plant, error) {
	sp, err := s.species.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "species not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load species")
	}
	list, err := s.plants.ListBySpecies(ctx, sp.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list plants")
	}
	if err := s.enrich(ctx, list...); err != nil {
		return nil, err
	}
	return list, nil
}

// ListByLocationName returns the plants kept at the named location.
func (s *Service) ListByLocationName(ctx context.Context, name string) ([]*models.Plant, error) {
	loc, err := s.locations.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "location not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load location")
	}
	list, err := s.plants.ListByLocation(ctx, loc.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list plants")
	}
	if err := s.enrich(ctx, list...); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) Create(ctx context.Context, req *models.CreatePlantRequest) (*models.Plant, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	sp, err := s.resolveSpecies(ctx, req.SpeciesID, req.SpeciesName)
	if err != nil {
		return nil, err
	}
	loc, err := s.resolveLocation(ctx, req.LocationID, req.LocationName)
	if err != nil {
		return nil, err
	}
	p, err := req.Build(sp.ID, loc.ID, requestcontext.Now(ctx))
	if err != nil {
		return nil, toValidation(err)
	}
	if err := s.plants.CreateIfNameAvailable(ctx, p); err != nil {
		return nil, wrapPlantErr(err, "failed to create plant")
	}
	p.SpeciesName, p.LocationName = sp.Name, loc.Name

	s.metrics.IncrementWrite("plant", "create")
	s.logger.InfoContext(ctx, "plant created",
		"plant_id", p.ID,
		"species_id", p.SpeciesID,
		"location_id", p.LocationID,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.emitter.Emit(ctx, care.Event{
		Type:     care.EventPlantCreated,
		EntityID: p.ID.String(),
		PlantID:  p.ID.String(),
		Detail:   p.Name,
	})
	return p, nil
}

func (s *Service) Update(ctx context.Context, ref string, req *models.UpdatePlantRequest) (*models.Plant, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if speciesID, speciesName := req.SpeciesRef(); speciesID != "" || speciesName != "" {
		sp, err := s.resolveSpecies(ctx, speciesID, speciesName)
		if err != nil {
			return nil, err
		}
		p.SpeciesID = sp.ID
	}
	if locationID, locationName := req.LocationRef(); locationID != "" || locationName != "" {
		loc, err := s.resolveLocation(ctx, locationID, locationName)
		if err != nil {
			return nil, err
		}
		p.LocationID = loc.ID
	}
	req.Apply(p, requestcontext.Now(ctx))
	if err := s.plants.Update(ctx, p); err != nil {
		return nil, wrapPlantErr(err, "failed to update plant")
	}
	if err := s.enrich(ctx, p); err != nil {
		return nil, err
	}
	s.metrics.IncrementWrite("plant", "update")
	return p, nil
}

// Delete removes a plant together with any care logs and reminders still
// attached to it, as one unit of work.
func (s *Service) Delete(ctx context.Context, ref string) error {
	p, err := s.resolve(ctx, ref)
	if err != nil {
		return err
	}
	var logs, reminders int
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		plantIDs := []id.PlantID{p.ID}
		var err error
		if logs, err = s.careLogs.DeleteByPlants(ctx, plantIDs); err != nil {
			return fmt.Errorf("delete care logs: %w", err)
		}
		if reminders, err = s.reminders.DeleteByPlants(ctx, plantIDs); err != nil {
			return fmt.Errorf("delete care reminders: %w", err)
		}
		return s.plants.Delete(ctx, p.ID)
	})
	if err != nil {
		return wrapPlantErr(err, "failed to delete plant")
	}
	if logs > 0 {
		s.careLogs.InvalidateStats(ctx)
	}

	s.metrics.IncrementWrite("plant", "delete")
	s.logger.InfoContext(ctx, "plant deleted",
		"plant_id", p.ID,
		"reminders", reminders,
		"care_logs", logs,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.emitter.Emit(ctx, care.Event{
		Type:     care.EventPlantDeleted,
		EntityID: p.ID.String(),
		PlantID:  p.ID.String(),
		Detail:   p.Name,
	})
	return nil
}

// DeleteAll removes every plant together with its care logs and reminders as
// one unit of work.
func (s *Service) DeleteAll(ctx context.Context) (*models.BulkDeleteResult, error) {
	var res models.BulkDeleteResult
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		all, err := s.plants.List(ctx)
		if err != nil {
			return fmt.Errorf("list plants: %w", err)
		}
		ids := make([]id.PlantID, len(all))
		for i, p := range all {
			ids[i] = p.ID
		}
		if len(ids) > 0 {
			if res.CareLogs, err = s.careLogs.DeleteByPlants(ctx, ids); err != nil {
				return fmt.Errorf("delete care logs: %w", err)
			}
			if res.Reminders, err = s.reminders.DeleteByPlants(ctx, ids); err != nil {
				return fmt.Errorf("delete care reminders: %w", err)
			}
		}
		if res.Plants, err = s.plants.DeleteAll(ctx); err != nil {
			return fmt.Errorf("delete plants: %w", err)
		}
		return nil
	})
	if err != nil {
		var de *dErrors.Error
		if errors.As(err, &de) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete plants")
	}

	if res.CareLogs > 0 {
		s.careLogs.InvalidateStats(ctx)
	}

	s.metrics.IncrementWrite("plant", "delete_all")
	s.logger.InfoContext(ctx, "plants cleared",
		"plants", res.Plants,
		"reminders", res.Reminders,
		"care_logs", res.CareLogs,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.emitter.Emit(ctx, care.Event{
		Type:   care.EventPlantsCleared,
		Detail: fmt.Sprintf("plants=%d reminders=%d careLogs=%d", res.Plants, res.Reminders, res.CareLogs),
	})
	return &res, nil
}

func (s *Service) resolve(ctx context.Context, ref string) (*models.Plant, error) {
	var (
		p   *models.Plant
		err error
	)
	if plantID, parseErr := id.ParsePlantID(ref); parseErr == nil {
		p, err = s.plants.FindByID(ctx, plantID)
	} else {
		p, err = s.plants.FindByName(ctx, ref)
	}
	if err != nil {
		return nil, wrapPlantErr(err, "failed to load plant")
	}
	return p, nil
}

func (s *Service) resolveSpecies(ctx context.Context, ref, name string) (*speciesModels.Species, error) {
	var (
		sp  *speciesModels.Species
		err error
	)
	if ref != "" {
		speciesID, parseErr := id.ParseSpeciesID(ref)
		if parseErr != nil {
			return nil, dErrors.New(dErrors.CodeValidation, "speciesId is not a valid id")
		}
		sp, err = s.species.FindByID(ctx, speciesID)
	} else {
		sp, err = s.species.FindByName(ctx, name)
	}
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeValidation, "species does not exist")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load species")
	}
	return sp, nil
}

func (s *Service) resolveLocation(ctx context.Context, ref, name string) (*locationModels.Location, error) {
	var (
		loc *locationModels.Location
		err error
	)
	if ref != "" {
		locationID, parseErr := id.ParseLocationID(ref)
		if parseErr != nil {
			return nil, dErrors.New(dErrors.CodeValidation, "locationId is not a valid id")
		}
		loc, err = s.locations.FindByID(ctx, locationID)
	} else {
		loc, err = s.locations.FindByName(ctx, name)
	}
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeValidation, "location does not exist")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load location")
	}
	return loc, nil
}

// enrich fills the derived species and location names.
func (s *Service) enrich(ctx context.Context, plants ...*models.Plant) error {
	if len(plants) == 0 {
		return nil
	}
	species, err := s.species.List(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load species")
	}
	locations, err := s.locations.List(ctx, locationModels.ListFilter{})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load locations")
	}
	speciesNames := make(map[id.SpeciesID]string, len(species))
	for _, sp := range species {
		speciesNames[sp.ID] = sp.Name
	}
	locationNames := make(map[id.LocationID]string, len(locations))
	for _, loc := range locations {
		locationNames[loc.ID] = loc.Name
	}
	for _, p := range plants {
		p.SpeciesName = speciesNames[p.SpeciesID]
		p.LocationName = locationNames[p.LocationID]
	}
	return nil
}

func wrapPlantErr(err error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "plant not found")
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		return dErrors.New(dErrors.CodeConflict, "plant name must be unique")
	case errors.Is(err, sentinel.ErrInUse):
		return dErrors.New(dErrors.CodeConflict, "plant still has care reminders or care logs")
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

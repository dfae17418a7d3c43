package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"plantcare/internal/events"
	locationModels "plantcare/internal/location/models"
	locationStore "plantcare/internal/location/store"
	"plantcare/internal/plant/models"
	"plantcare/internal/plant/store"
	speciesModels "plantcare/internal/species/models"
	speciesStore "plantcare/internal/species/store"
	"plantcare/pkg/calendar"
	"plantcare/pkg/care"
	id "plantcare/pkg/domain"
	dErrors "plantcare/pkg/domain-errors"
	"plantcare/pkg/requestcontext"
)

type fakeDependents struct {
	byPlant       map[id.PlantID]int
	failAll       bool
	invalidations int
	// invalidatedInTx counts invalidations made before the unit of work
	// committed.
	invalidatedInTx int
	// deletedInTx records whether each DeleteByPlants call saw an open
	// unit of work in its context.
	deletedInTx []bool
}

func (f *fakeDependents) InvalidateStats(ctx context.Context) {
	if _, inTx := ctx.Value(unitOfWorkKey{}).(bool); inTx {
		f.invalidatedInTx++
	}
	f.invalidations++
}

func (f *fakeDependents) DeleteByPlants(ctx context.Context, plantIDs []id.PlantID) (int, error) {
	_, inTx := ctx.Value(unitOfWorkKey{}).(bool)
	f.deletedInTx = append(f.deletedInTx, inTx)
	if f.failAll {
		return 0, errors.New("connection reset")
	}
	n := 0
	for _, plantID := range plantIDs {
		n += f.byPlant[plantID]
		delete(f.byPlant, plantID)
	}
	return n, nil
}

type unitOfWorkKey struct{}

// markingRunner tags the context it hands to fn and counts commits, so tests
// can tell work done inside the unit from work done after it.
type markingRunner struct {
	commits int
}

func (r *markingRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(context.WithValue(ctx, unitOfWorkKey{}, true)); err != nil {
		return err
	}
	r.commits++
	return nil
}

type recordingPublisher struct {
	events []care.Event
}

func (r *recordingPublisher) Publish(_ context.Context, e care.Event) error {
	r.events = append(r.events, e)
	return nil
}

type ServiceSuite struct {
	suite.Suite
	ctx       context.Context
	plants    *store.InMemoryStore
	reminders *fakeDependents
	logs      *fakeDependents
	published *recordingPublisher
	runner    *markingRunner
	svc       *Service
	species   *speciesModels.Species
	location  *locationModels.Location
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), now)

	species := speciesStore.NewInMemory()
	s.species, _ = speciesModels.NewSpecies(id.NewSpeciesID(), "Epipremnum aureum", now)
	s.species.CommonName = "Jibóia"
	s.Require().NoError(species.CreateIfNameAvailable(s.ctx, s.species))

	locations := locationStore.NewInMemory()
	var err error
	s.location, err = locationModels.NewLocation(id.NewLocationID(), "Sala", id.LocationIndoor,
		id.SunlightPartial, id.HumidityMedium, "Perto da janela", now)
	s.Require().NoError(err)
	s.Require().NoError(locations.CreateIfNameAvailable(s.ctx, s.location))

	s.plants = store.NewInMemory()
	s.reminders = &fakeDependents{byPlant: map[id.PlantID]int{}}
	s.logs = &fakeDependents{byPlant: map[id.PlantID]int{}}
	s.published = &recordingPublisher{}
	s.runner = &markingRunner{}
	s.svc = New(s.plants, species, locations, s.reminders, s.logs,
		WithEmitter(events.NewEmitter(s.published, nil, nil)),
		WithTxRunner(s.runner))
}

func (s *ServiceSuite) create(name string) *models.Plant {
	p, err := s.svc.Create(s.ctx, &models.CreatePlantRequest{
		Name:         name,
		SpeciesID:    s.species.ID.String(),
		LocationName: "sala",
		PurchaseDate: "2024-03-10",
	})
	s.Require().NoError(err)
	return p
}

func (s *ServiceSuite) TestCreate() {
	s.Run("derives display names and keeps the purchase date", func() {
		p := s.create("Jibóia da sala")
		s.Equal("Epipremnum aureum", p.SpeciesName)
		s.Equal("Sala", p.LocationName)
		s.Equal("2024-03-10", p.PurchaseDate.String())
		s.Require().Len(s.published.events, 1)
		s.Equal(care.EventPlantCreated, s.published.events[0].Type)
	})

	s.Run("unknown species is a validation error", func() {
		_, err := s.svc.Create(s.ctx, &models.CreatePlantRequest{
			Name: "Other", SpeciesName: "Monstera", LocationID: s.location.ID.String(),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("malformed purchase date is rejected", func() {
		_, err := s.svc.Create(s.ctx, &models.CreatePlantRequest{
			Name: "Other", SpeciesID: s.species.ID.String(), LocationID: s.location.ID.String(), PurchaseDate: "10/03/2024",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("duplicate name conflicts", func() {
		_, err := s.svc.Create(s.ctx, &models.CreatePlantRequest{
			Name: "JIBÓIA DA SALA", SpeciesID: s.species.ID.String(), LocationID: s.location.ID.String(),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func (s *ServiceSuite) TestGetByIDOrName() {
	p := s.create("Costela")

	byID, err := s.svc.Get(s.ctx, p.ID.String())
	s.Require().NoError(err)
	s.Equal("Costela", byID.Name)

	byName, err := s.svc.Get(s.ctx, "costela")
	s.Require().NoError(err)
	s.Equal(p.ID, byName.ID)
	s.Equal("Sala", byName.LocationName)

	_, err = s.svc.Get(s.ctx, "nope")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestListSearchesDerivedNames() {
	s.create("Costela")
	s.create("Samambaia")

	hits, err := s.svc.List(s.ctx, "SALA")
	s.Require().NoError(err)
	s.Len(hits, 2)

	hits, err = s.svc.List(s.ctx, "samam")
	s.Require().NoError(err)
	s.Len(hits, 1)
}

func (s *ServiceSuite) TestListByNames() {
	s.create("Costela")

	list, err := s.svc.ListByLocationName(s.ctx, "SALA")
	s.Require().NoError(err)
	s.Len(list, 1)

	list, err = s.svc.ListBySpeciesName(s.ctx, "epipremnum aureum")
	s.Require().NoError(err)
	s.Len(list, 1)

	_, err = s.svc.ListByLocationName(s.ctx, "Varanda")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestUpdate() {
	p := s.create("Costela")
	name := "Costela-de-adão"
	notes := "  regar pouco "
	cleared := ""

	updated, err := s.svc.Update(s.ctx, p.ID.String(), &models.UpdatePlantRequest{
		Name: &name, Notes: &notes, PurchaseDate: &cleared,
	})
	s.Require().NoError(err)
	s.Equal("Costela-de-adão", updated.Name)
	s.Equal("regar pouco", updated.Notes)
	s.True(updated.PurchaseDate.IsZero())
	s.Equal("Epipremnum aureum", updated.SpeciesName)

	bad := "Varanda"
	_, err = s.svc.Update(s.ctx, p.ID.String(), &models.UpdatePlantRequest{LocationName: &bad})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestDeleteRemovesLeftoverDependents() {
	p := s.create("Costela")
	s.logs.byPlant[p.ID] = 1
	s.reminders.byPlant[p.ID] = 1

	s.Require().NoError(s.svc.Delete(s.ctx, "costela"))

	_, err := s.svc.Get(s.ctx, p.ID.String())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Empty(s.logs.byPlant)
	s.Empty(s.reminders.byPlant)
	s.Equal([]bool{true}, s.logs.deletedInTx)
	s.Equal([]bool{true}, s.reminders.deletedInTx)
	s.Equal(1, s.runner.commits)
	s.Equal(1, s.logs.invalidations)
	s.Zero(s.logs.invalidatedInTx)
	s.Equal(care.EventPlantDeleted, s.published.events[len(s.published.events)-1].Type)
}

func (s *ServiceSuite) TestDeleteWithoutDependents() {
	p := s.create("Costela")

	s.Require().NoError(s.svc.Delete(s.ctx, p.ID.String()))
	s.Zero(s.logs.invalidations, "no logs removed, stats unchanged")

	err := s.svc.Delete(s.ctx, p.ID.String())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestDeleteKeepsPlantWhenDependentsFail() {
	p := s.create("Costela")
	s.logs.failAll = true

	err := s.svc.Delete(s.ctx, p.ID.String())
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.Zero(s.logs.invalidations)

	_, err = s.svc.Get(s.ctx, p.ID.String())
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestDeleteAllRemovesDependents() {
	a := s.create("Costela")
	b := s.create("Samambaia")
	s.reminders.byPlant[a.ID] = 1
	s.logs.byPlant[a.ID] = 2
	s.logs.byPlant[b.ID] = 3

	res, err := s.svc.DeleteAll(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.BulkDeleteResult{Plants: 2, Reminders: 1, CareLogs: 5}, *res)
	s.Equal([]bool{true}, s.logs.deletedInTx)
	s.Equal(1, s.logs.invalidations, "stats invalidated once, after commit")
	s.Zero(s.logs.invalidatedInTx)

	left, err := s.svc.List(s.ctx, "")
	s.Require().NoError(err)
	s.Empty(left)
	s.Equal(care.EventPlantsCleared, s.published.events[len(s.published.events)-1].Type)
}

func (s *ServiceSuite) TestDeleteAllStopsOnDependentFailure() {
	s.create("Costela")
	s.logs.failAll = true

	_, err := s.svc.DeleteAll(s.ctx)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.Zero(s.runner.commits)
	s.Zero(s.logs.invalidations)

	left, err := s.svc.List(s.ctx, "")
	s.Require().NoError(err)
	s.Len(left, 1)
}

func (s *ServiceSuite) TestPurchaseDateRoundTrip() {
	p := s.create("Costela")
	got, err := s.svc.Get(s.ctx, p.ID.String())
	s.Require().NoError(err)
	s.True(got.PurchaseDate.Equal(calendar.MustParse("2024-03-10")))
}

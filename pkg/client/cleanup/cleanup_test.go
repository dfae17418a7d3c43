package cleanup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"plantcare/pkg/client"
	"plantcare/pkg/client/cleanup/mocks"
	id "plantcare/pkg/domain"
)

type CleanupSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	api     *mocks.MockAPI
	cleaner *Cleaner
	ctx     context.Context
}

func TestCleanupSuite(t *testing.T) {
	suite.Run(t, new(CleanupSuite))
}

func (s *CleanupSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.api = mocks.NewMockAPI(s.ctrl)
	s.cleaner = New(s.api, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	s.ctx = context.Background()
}

func (s *CleanupSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *CleanupSuite) TestDeletePlant() {
	plantID := id.NewPlantID()
	logA, logB := id.NewCareLogID(), id.NewCareLogID()
	reminderID := id.NewReminderID()

	s.Run("one failing care log does not stop the cascade", func() {
		s.api.EXPECT().ListCareLogs(gomock.Any(), client.CareLogQuery{PlantID: plantID}).
			Return([]client.CareLog{{ID: logA}, {ID: logB}}, nil)
		s.api.EXPECT().DeleteCareLog(gomock.Any(), logA.String()).Return(errors.New("timeout"))
		s.api.EXPECT().DeleteCareLog(gomock.Any(), logB.String()).Return(nil)
		s.api.EXPECT().ListReminders(gomock.Any(), client.ReminderQuery{PlantID: plantID}).
			Return([]client.Reminder{{ID: reminderID}}, nil)
		s.api.EXPECT().DeleteReminder(gomock.Any(), reminderID.String()).Return(nil)
		s.api.EXPECT().DeletePlant(gomock.Any(), plantID.String()).Return(nil)

		out, err := s.cleaner.DeletePlant(s.ctx, plantID)
		s.Require().NoError(err)
		s.Equal(1, out.Plants.Succeeded)
		s.Equal(1, out.Reminders.Succeeded)
		s.Equal(1, out.CareLogs.Succeeded)
		s.Equal(1, out.CareLogs.Failed)
		s.Require().Len(out.CareLogs.Failures, 1)
		s.Equal(logA.String(), out.CareLogs.Failures[0].ID)
	})

	s.Run("listing failure is recorded and the plant is still attempted", func() {
		s.api.EXPECT().ListCareLogs(gomock.Any(), gomock.Any()).Return(nil, errors.New("offline"))
		s.api.EXPECT().ListReminders(gomock.Any(), gomock.Any()).Return(nil, nil)
		unavailable := &client.Error{Kind: client.KindServer, Status: http.StatusServiceUnavailable, Message: "storage unavailable"}
		s.api.EXPECT().DeletePlant(gomock.Any(), plantID.String()).Return(unavailable)

		out, err := s.cleaner.DeletePlant(s.ctx, plantID)
		s.ErrorIs(err, unavailable)
		s.Equal(1, out.CareLogs.Failed)
		s.Empty(out.CareLogs.Failures[0].ID)
		s.Equal(1, out.Plants.Failed)
	})
}

func (s *CleanupSuite) TestDeleteAllPlants() {
	s.Run("bulk delete succeeds", func() {
		s.api.EXPECT().DeleteAllPlants(gomock.Any()).
			Return(&client.BulkDeleteResult{Plants: 3, Reminders: 2, CareLogs: 5}, nil)

		out, err := s.cleaner.DeleteAllPlants(s.ctx)
		s.Require().NoError(err)
		s.Equal(3, out.Plants.Succeeded)
		s.Equal(2, out.Reminders.Succeeded)
		s.Equal(5, out.CareLogs.Succeeded)
	})

	s.Run("bulk failure falls back to one cascade per plant", func() {
		first, second := id.NewPlantID(), id.NewPlantID()
		s.api.EXPECT().DeleteAllPlants(gomock.Any()).Return(nil, errors.New("not supported"))
		s.api.EXPECT().ListPlants(gomock.Any(), "").Return([]client.Plant{{ID: first}, {ID: second}}, nil)
		s.api.EXPECT().ListCareLogs(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
		s.api.EXPECT().ListReminders(gomock.Any(), client.ReminderQuery{PlantID: first}).
			Return([]client.Reminder{{ID: id.NewReminderID()}}, nil)
		s.api.EXPECT().ListReminders(gomock.Any(), client.ReminderQuery{PlantID: second}).Return(nil, nil)
		s.api.EXPECT().DeleteReminder(gomock.Any(), gomock.Any()).Return(nil)
		s.api.EXPECT().DeletePlant(gomock.Any(), first.String()).Return(nil)
		s.api.EXPECT().DeletePlant(gomock.Any(), second.String()).Return(errors.New("boom"))

		out, err := s.cleaner.DeleteAllPlants(s.ctx)
		s.Require().NoError(err)
		s.Equal(1, out.Plants.Succeeded)
		s.Equal(1, out.Plants.Failed)
		s.Equal(1, out.Reminders.Succeeded)
	})

	s.Run("fallback cannot list plants", func() {
		s.api.EXPECT().DeleteAllPlants(gomock.Any()).Return(nil, errors.New("not supported"))
		s.api.EXPECT().ListPlants(gomock.Any(), "").Return(nil, errors.New("offline"))

		_, err := s.cleaner.DeleteAllPlants(s.ctx)
		s.EqualError(err, "offline")
	})
}

func (s *CleanupSuite) TestClearCustomSpecies() {
	used, unused, broken := id.NewSpeciesID(), id.NewSpeciesID(), id.NewSpeciesID()
	s.api.EXPECT().ListSpecies(gomock.Any(), "").
		Return([]client.Species{{ID: used}, {ID: unused}, {ID: broken}}, nil)
	s.api.EXPECT().CanRemoveSpecies(gomock.Any(), used.String()).
		Return(&client.Removability{CanBeRemoved: false, PlantCount: 2}, nil)
	s.api.EXPECT().CanRemoveSpecies(gomock.Any(), unused.String()).
		Return(&client.Removability{CanBeRemoved: true}, nil)
	s.api.EXPECT().CanRemoveSpecies(gomock.Any(), broken.String()).Return(nil, errors.New("timeout"))
	s.api.EXPECT().DeleteSpecies(gomock.Any(), unused.String()).Return(nil)

	out, err := s.cleaner.ClearCustomSpecies(s.ctx)
	s.Require().NoError(err)
	s.Equal(SweepResult{
		Checked: 3, Deleted: 1, Skipped: 1, Failed: 1,
		Failures: []Failure{{ID: broken.String(), Err: errors.New("timeout")}},
	}, out)
}

func (s *CleanupSuite) TestClearCustomSpeciesSkipsLateConflicts() {
	raced := id.NewSpeciesID()
	s.api.EXPECT().ListSpecies(gomock.Any(), "").Return([]client.Species{{ID: raced}}, nil)
	s.api.EXPECT().CanRemoveSpecies(gomock.Any(), raced.String()).
		Return(&client.Removability{CanBeRemoved: true}, nil)
	s.api.EXPECT().DeleteSpecies(gomock.Any(), raced.String()).
		Return(&client.Error{Kind: client.KindValidation, Status: http.StatusConflict, Message: "species is used by plants"})

	out, err := s.cleaner.ClearCustomSpecies(s.ctx)
	s.Require().NoError(err)
	s.Equal(SweepResult{Checked: 1, Skipped: 1}, out)
}

func (s *CleanupSuite) TestClearEmptyLocations() {
	empty, full := id.NewLocationID(), id.NewLocationID()
	s.api.EXPECT().ListLocations(gomock.Any(), client.LocationQuery{}).
		Return([]client.Location{{ID: empty}, {ID: full}}, nil)
	s.api.EXPECT().IsLocationEmpty(gomock.Any(), empty.String()).Return(&client.Emptiness{IsEmpty: true}, nil)
	s.api.EXPECT().IsLocationEmpty(gomock.Any(), full.String()).Return(&client.Emptiness{PlantCount: 4}, nil)
	s.api.EXPECT().DeleteLocation(gomock.Any(), empty.String()).Return(errors.New("conflict"))

	out, err := s.cleaner.ClearEmptyLocations(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, out.Checked)
	s.Equal(0, out.Deleted)
	s.Equal(1, out.Skipped)
	s.Equal(1, out.Failed)
}

func (s *CleanupSuite) TestClearEmptyLocationsSkipsLateConflicts() {
	raced := id.NewLocationID()
	s.api.EXPECT().ListLocations(gomock.Any(), client.LocationQuery{}).Return([]client.Location{{ID: raced}}, nil)
	s.api.EXPECT().IsLocationEmpty(gomock.Any(), raced.String()).Return(&client.Emptiness{IsEmpty: true}, nil)
	s.api.EXPECT().DeleteLocation(gomock.Any(), raced.String()).
		Return(&client.Error{Kind: client.KindValidation, Status: http.StatusConflict, Message: "location has plants"})

	out, err := s.cleaner.ClearEmptyLocations(s.ctx)
	s.Require().NoError(err)
	s.Equal(SweepResult{Checked: 1, Skipped: 1}, out)
}

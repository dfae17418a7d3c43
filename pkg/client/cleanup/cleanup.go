// Package cleanup removes records together with whatever references them.
// Every batch is sequential and best effort: one item failing is recorded in
// the outcome and the batch moves on.
package cleanup

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"plantcare/pkg/client"
	id "plantcare/pkg/domain"
)

//go:generate mockgen -source=cleanup.go -destination=mocks/mocks.go -package=mocks API

// API is the subset of *client.Client the cleanup operations call.
type API interface {
	ListPlants(ctx context.Context, query string) ([]client.Plant, error)
	DeletePlant(ctx context.Context, ref string) error
	DeleteAllPlants(ctx context.Context) (*client.BulkDeleteResult, error)

	ListReminders(ctx context.Context, filter client.ReminderQuery) ([]client.Reminder, error)
	DeleteReminder(ctx context.Context, reminderID string) error
	ListCareLogs(ctx context.Context, filter client.CareLogQuery) ([]client.CareLog, error)
	DeleteCareLog(ctx context.Context, logID string) error

	ListSpecies(ctx context.Context, query string) ([]client.Species, error)
	CanRemoveSpecies(ctx context.Context, speciesID string) (*client.Removability, error)
	DeleteSpecies(ctx context.Context, speciesID string) error

	ListLocations(ctx context.Context, filter client.LocationQuery) ([]client.Location, error)
	IsLocationEmpty(ctx context.Context, locationID string) (*client.Emptiness, error)
	DeleteLocation(ctx context.Context, locationID string) error
}

var _ API = (*client.Client)(nil)

// Failure names the record that could not be removed. ID is empty when the
// listing itself failed.
type Failure struct {
	ID  string
	Err error
}

// Outcome counts one kind of record.
type Outcome struct {
	Succeeded int
	Failed    int
	Failures  []Failure
}

func (o *Outcome) record(recordID string, err error) {
	if err != nil {
		o.Failed++
		o.Failures = append(o.Failures, Failure{ID: recordID, Err: err})
		return
	}
	o.Succeeded++
}

func (o *Outcome) add(other Outcome) {
	o.Succeeded += other.Succeeded
	o.Failed += other.Failed
	o.Failures = append(o.Failures, other.Failures...)
}

// PlantCascade reports a plant removal per record kind.
type PlantCascade struct {
	Plants    Outcome
	Reminders Outcome
	CareLogs  Outcome
}

func (c *PlantCascade) add(other PlantCascade) {
	c.Plants.add(other.Plants)
	c.Reminders.add(other.Reminders)
	c.CareLogs.add(other.CareLogs)
}

// SweepResult reports a removability sweep. Skipped items are still in use.
type SweepResult struct {
	Checked  int
	Deleted  int
	Skipped  int
	Failed   int
	Failures []Failure
}

func (r *SweepResult) fail(recordID string, err error) {
	r.Failed++
	r.Failures = append(r.Failures, Failure{ID: recordID, Err: err})
}

type Cleaner struct {
	api    API
	logger *slog.Logger
	tracer trace.Tracer
}

type Option func(*Cleaner)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Cleaner) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func New(api API, opts ...Option) *Cleaner {
	c := &Cleaner{api: api, logger: slog.Default(), tracer: otel.Tracer("plantcare/pkg/client/cleanup")}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DeletePlant removes the plant's care logs and reminders one by one, then
// the plant. The error is non-nil only when the plant itself was not
// removed; dependent failures are in the cascade.
func (c *Cleaner) DeletePlant(ctx context.Context, plantID id.PlantID) (PlantCascade, error) {
	ctx, span := c.tracer.Start(ctx, "cleanup.DeletePlant", trace.WithAttributes(attribute.String("plant.id", plantID.String())))
	defer span.End()

	var out PlantCascade
	out.CareLogs = c.deleteCareLogs(ctx, plantID)
	out.Reminders = c.deleteReminders(ctx, plantID)

	err := c.api.DeletePlant(ctx, plantID.String())
	out.Plants.record(plantID.String(), err)
	if err != nil {
		c.logger.WarnContext(ctx, "plant not deleted", "plant_id", plantID, "error", err)
		span.RecordError(err)
	}
	span.SetAttributes(
		attribute.Int("care_logs.deleted", out.CareLogs.Succeeded),
		attribute.Int("reminders.deleted", out.Reminders.Succeeded),
	)
	return out, err
}

func (c *Cleaner) deleteCareLogs(ctx context.Context, plantID id.PlantID) Outcome {
	var out Outcome
	logs, err := c.api.ListCareLogs(ctx, client.CareLogQuery{PlantID: plantID})
	if err != nil {
		c.logger.WarnContext(ctx, "listing care logs failed", "plant_id", plantID, "error", err)
		out.record("", err)
		return out
	}
	for _, l := range logs {
		err := c.api.DeleteCareLog(ctx, l.ID.String())
		if err != nil {
			c.logger.WarnContext(ctx, "care log not deleted", "care_log_id", l.ID, "error", err)
		}
		out.record(l.ID.String(), err)
	}
	return out
}

func (c *Cleaner) deleteReminders(ctx context.Context, plantID id.PlantID) Outcome {
	var out Outcome
	reminders, err := c.api.ListReminders(ctx, client.ReminderQuery{PlantID: plantID})
	if err != nil {
		c.logger.WarnContext(ctx, "listing reminders failed", "plant_id", plantID, "error", err)
		out.record("", err)
		return out
	}
	for _, r := range reminders {
		err := c.api.DeleteReminder(ctx, r.ID.String())
		if err != nil {
			c.logger.WarnContext(ctx, "reminder not deleted", "reminder_id", r.ID, "error", err)
		}
		out.record(r.ID.String(), err)
	}
	return out
}

// DeleteAllPlants tries the server's bulk delete first and falls back to a
// cascade per plant when that call fails. The error is non-nil only when the
// fallback could not list the plants.
func (c *Cleaner) DeleteAllPlants(ctx context.Context) (PlantCascade, error) {
	ctx, span := c.tracer.Start(ctx, "cleanup.DeleteAllPlants")
	defer span.End()

	var out PlantCascade
	res, err := c.api.DeleteAllPlants(ctx)
	if err == nil {
		out.Plants.Succeeded = res.Plants
		out.Reminders.Succeeded = res.Reminders
		out.CareLogs.Succeeded = res.CareLogs
		return out, nil
	}
	c.logger.WarnContext(ctx, "bulk plant delete failed, deleting one by one", "error", err)
	span.AddEvent("bulk delete fallback")

	plants, err := c.api.ListPlants(ctx, "")
	if err != nil {
		span.RecordError(err)
		return out, err
	}
	for _, p := range plants {
		cascade, _ := c.DeletePlant(ctx, p.ID)
		out.add(cascade)
	}
	return out, nil
}

// ClearCustomSpecies deletes every species no plant references. A species
// that gains a plant between the check and the delete (409) counts as
// skipped.
func (c *Cleaner) ClearCustomSpecies(ctx context.Context) (SweepResult, error) {
	ctx, span := c.tracer.Start(ctx, "cleanup.ClearCustomSpecies")
	defer span.End()

	var out SweepResult
	species, err := c.api.ListSpecies(ctx, "")
	if err != nil {
		span.RecordError(err)
		return out, err
	}
	for _, sp := range species {
		out.Checked++
		speciesID := sp.ID.String()
		check, err := c.api.CanRemoveSpecies(ctx, speciesID)
		if err != nil {
			c.logger.WarnContext(ctx, "species removability check failed", "species_id", speciesID, "error", err)
			out.fail(speciesID, err)
			continue
		}
		if !check.CanBeRemoved {
			out.Skipped++
			continue
		}
		if err := c.api.DeleteSpecies(ctx, speciesID); err != nil {
			if client.IsConflict(err) {
				c.logger.InfoContext(ctx, "species gained plants since check, skipped", "species_id", speciesID)
				out.Skipped++
				continue
			}
			c.logger.WarnContext(ctx, "species not deleted", "species_id", speciesID, "error", err)
			out.fail(speciesID, err)
			continue
		}
		out.Deleted++
	}
	return out, nil
}

// ClearEmptyLocations deletes every location without plants, with the same
// handling of late conflicts as ClearCustomSpecies.
func (c *Cleaner) ClearEmptyLocations(ctx context.Context) (SweepResult, error) {
	ctx, span := c.tracer.Start(ctx, "cleanup.ClearEmptyLocations")
	defer span.End()

	var out SweepResult
	locations, err := c.api.ListLocations(ctx, client.LocationQuery{})
	if err != nil {
		span.RecordError(err)
		return out, err
	}
	for _, loc := range locations {
		out.Checked++
		locationID := loc.ID.String()
		check, err := c.api.IsLocationEmpty(ctx, locationID)
		if err != nil {
			c.logger.WarnContext(ctx, "location emptiness check failed", "location_id", locationID, "error", err)
			out.fail(locationID, err)
			continue
		}
		if !check.IsEmpty {
			out.Skipped++
			continue
		}
		if err := c.api.DeleteLocation(ctx, locationID); err != nil {
			if client.IsConflict(err) {
				c.logger.InfoContext(ctx, "location gained plants since check, skipped", "location_id", locationID)
				out.Skipped++
				continue
			}
			c.logger.WarnContext(ctx, "location not deleted", "location_id", locationID, "error", err)
			out.fail(locationID, err)
			continue
		}
		out.Deleted++
	}
	return out, nil
}

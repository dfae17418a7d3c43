package models

import (
	"strings"
	"time"

	"plantcare/pkg/calendar"
	"plantcare/pkg/care"
	id "plantcare/pkg/domain"
	dErrors "plantcare/pkg/domain-errors"
)

const maxNotesLength = 1000

// CreateReminderRequest creates a reminder. LastDone defaults to today,
// NextDue to LastDone plus Frequency, and IsActive to true.
type CreateReminderRequest struct {
	PlantID   string `json:"plantId"`
	Type      string `json:"type"`
	Frequency int    `json:"frequency"`
	LastDone  string `json:"lastDone"`
	NextDue   string `json:"nextDue"`
	Notes     string `json:"notes"`
	IsActive  *bool  `json:"isActive"`
}

func (r *CreateReminderRequest) Normalize() {
	if r == nil {
		return
	}
	r.PlantID = strings.TrimSpace(r.PlantID)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	r.LastDone = strings.TrimSpace(r.LastDone)
	r.NextDue = strings.TrimSpace(r.NextDue)
	r.Notes = strings.TrimSpace(r.Notes)
}

// Follows validation order: Size -> Required -> Syntax -> Semantic.
func (r *CreateReminderRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if len(r.Notes) > maxNotesLength {
		return dErrors.New(dErrors.CodeValidation, "notes must be 1000 characters or less")
	}
	switch {
	case r.PlantID == "":
		return dErrors.New(dErrors.CodeValidation, "plantId is required")
	case r.Type == "":
		return dErrors.New(dErrors.CodeValidation, "type is required")
	}
	if _, err := id.ParsePlantID(r.PlantID); err != nil {
		return dErrors.New(dErrors.CodeValidation, "plantId is not a valid id")
	}
	if _, err := id.ParseReminderType(r.Type); err != nil {
		return dErrors.New(dErrors.CodeValidation, "type must be one of watering, fertilizing, pruning, sunlight, other")
	}
	if _, err := calendar.ParseOptional(r.LastDone); err != nil {
		return dErrors.New(dErrors.CodeValidation, "lastDone must be YYYY-MM-DD")
	}
	if _, err := calendar.ParseOptional(r.NextDue); err != nil {
		return dErrors.New(dErrors.CodeValidation, "nextDue must be YYYY-MM-DD")
	}
	return care.ValidateFrequency(r.Frequency)
}

func (r *CreateReminderRequest) Build(now time.Time) (*Reminder, error) {
	plantID, err := id.ParsePlantID(r.PlantID)
	if err != nil {
		return nil, err
	}
	t, err := id.ParseReminderType(r.Type)
	if err != nil {
		return nil, err
	}
	lastDone, err := calendar.ParseOptional(r.LastDone)
	if err != nil {
		return nil, err
	}
	rem, err := NewReminder(id.NewReminderID(), plantID, t, r.Frequency, lastDone, now)
	if err != nil {
		return nil, err
	}
	if next, _ := calendar.ParseOptional(r.NextDue); !next.IsZero() {
		rem.NextDue = next
	}
	if r.IsActive != nil {
		rem.IsActive = *r.IsActive
	}
	rem.Notes = r.Notes
	return rem, nil
}

// UpdateReminderRequest is a partial update: nil fields are left unchanged.
// Changing Frequency or LastDone without an explicit NextDue reschedules the
// reminder from LastDone.
type UpdateReminderRequest struct {
	Type      *string `json:"type"`
	Frequency *int    `json:"frequency"`
	LastDone  *string `json:"lastDone"`
	NextDue   *string `json:"nextDue"`
	Notes     *string `json:"notes"`
	IsActive  *bool   `json:"isActive"`
}

func (r *UpdateReminderRequest) Normalize() {
	if r == nil {
		return
	}
	for _, f := range []*string{r.LastDone, r.NextDue, r.Notes} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
	if r.Type != nil {
		*r.Type = strings.ToLower(strings.TrimSpace(*r.Type))
	}
}

func (r *UpdateReminderRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.Notes != nil && len(*r.Notes) > maxNotesLength {
		return dErrors.New(dErrors.CodeValidation, "notes must be 1000 characters or less")
	}
	if r.Type != nil {
		if _, err := id.ParseReminderType(*r.Type); err != nil {
			return dErrors.New(dErrors.CodeValidation, "type must be one of watering, fertilizing, pruning, sunlight, other")
		}
	}
	if r.LastDone != nil {
		if _, err := calendar.Parse(*r.LastDone); err != nil {
			return dErrors.New(dErrors.CodeValidation, "lastDone must be YYYY-MM-DD")
		}
	}
	if r.NextDue != nil {
		if _, err := calendar.Parse(*r.NextDue); err != nil {
			return dErrors.New(dErrors.CodeValidation, "nextDue must be YYYY-MM-DD")
		}
	}
	if r.Frequency != nil {
		return care.ValidateFrequency(*r.Frequency)
	}
	return nil
}

// Apply copies the set fields onto rem. Call Validate first.
func (r *UpdateReminderRequest) Apply(rem *Reminder, now time.Time) {
	if r.Type != nil {
		rem.Type = id.ReminderType(*r.Type)
	}
	if r.Frequency != nil {
		rem.Frequency = *r.Frequency
	}
	if r.LastDone != nil {
		rem.LastDone, _ = calendar.Parse(*r.LastDone)
	}
	switch {
	case r.NextDue != nil:
		rem.NextDue, _ = calendar.Parse(*r.NextDue)
	case r.Frequency != nil || r.LastDone != nil:
		rem.NextDue = care.NextDue(rem.LastDone, rem.Frequency)
	}
	if r.Notes != nil {
		rem.Notes = *r.Notes
	}
	if r.IsActive != nil {
		rem.IsActive = *r.IsActive
	}
	rem.UpdatedAt = now
}

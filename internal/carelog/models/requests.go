package models

import (
	"strings"
	"time"

	"plantcare/pkg/calendar"
	id "plantcare/pkg/domain"
	dErrors "plantcare/pkg/domain-errors"
)

const maxNotesLength = 1000

// CreateCareLogRequest records care. Date defaults to today and Success to
// true.
type CreateCareLogRequest struct {
	PlantID string `json:"plantId"`
	Type    string `json:"type"`
	Date    string `json:"date"`
	Notes   string `json:"notes"`
	Success *bool  `json:"success"`
}

func (r *CreateCareLogRequest) Normalize() {
	if r == nil {
		return
	}
	r.PlantID = strings.TrimSpace(r.PlantID)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	r.Date = strings.TrimSpace(r.Date)
	r.Notes = strings.TrimSpace(r.Notes)
}

// Follows validation order: Size -> Required -> Syntax.
func (r *CreateCareLogRequest) Validate() error {
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
	if _, err := id.ParseCareLogType(r.Type); err != nil {
		return dErrors.New(dErrors.CodeValidation, "type must be one of watering, fertilizing, pruning, repotting, cleaning, other")
	}
	if _, err := calendar.ParseOptional(r.Date); err != nil {
		return dErrors.New(dErrors.CodeValidation, "date must be YYYY-MM-DD")
	}
	return nil
}

func (r *CreateCareLogRequest) Build(now time.Time) (*CareLog, error) {
	plantID, err := id.ParsePlantID(r.PlantID)
	if err != nil {
		return nil, err
	}
	t, err := id.ParseCareLogType(r.Type)
	if err != nil {
		return nil, err
	}
	date, err := calendar.ParseOptional(r.Date)
	if err != nil {
		return nil, err
	}
	l, err := NewCareLog(id.NewCareLogID(), plantID, t, date, now)
	if err != nil {
		return nil, err
	}
	if r.Success != nil {
		l.Success = *r.Success
	}
	l.Notes = r.Notes
	return l, nil
}

// UpdateCareLogRequest is a partial update: nil fields are left unchanged.
type UpdateCareLogRequest struct {
	Type    *string `json:"type"`
	Date    *string `json:"date"`
	Notes   *string `json:"notes"`
	Success *bool   `json:"success"`
}

func (r *UpdateCareLogRequest) Normalize() {
	if r == nil {
		return
	}
	if r.Type != nil {
		*r.Type = strings.ToLower(strings.TrimSpace(*r.Type))
	}
	if r.Date != nil {
		*r.Date = strings.TrimSpace(*r.Date)
	}
	if r.Notes != nil {
		*r.Notes = strings.TrimSpace(*r.Notes)
	}
}

func (r *UpdateCareLogRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.Notes != nil && len(*r.Notes) > maxNotesLength {
		return dErrors.New(dErrors.CodeValidation, "notes must be 1000 characters or less")
	}
	if r.Type != nil {
		if _, err := id.ParseCareLogType(*r.Type); err != nil {
			return dErrors.New(dErrors.CodeValidation, "type must be one of watering, fertilizing, pruning, repotting, cleaning, other")
		}
	}
	if r.Date != nil {
		if _, err := calendar.Parse(*r.Date); err != nil {
			return dErrors.New(dErrors.CodeValidation, "date must be YYYY-MM-DD")
		}
	}
	return nil
}

// Apply copies the set fields onto l. Call Validate first.
func (r *UpdateCareLogRequest) Apply(l *CareLog, now time.Time) {
	if r.Type != nil {
		l.Type = id.CareLogType(*r.Type)
	}
	if r.Date != nil {
		l.Date, _ = calendar.Parse(*r.Date)
	}
	if r.Notes != nil {
		l.Notes = *r.Notes
	}
	if r.Success != nil {
		l.Success = *r.Success
	}
	l.UpdatedAt = now
}

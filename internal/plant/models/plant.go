package models

import (
	"time"

	"plantcare/pkg/calendar"
	id "plantcare/pkg/domain"
	dErrors "plantcare/pkg/domain-errors"
)

const MaxNameLength = 100

// Plant is a plant in the user's collection.
//
// Invariants:
//   - Name is non-empty and unique case-insensitively
//   - SpeciesID and LocationID reference existing records
//   - SpeciesName and LocationName are derived at read time and never stored
type Plant struct {
	ID           id.PlantID    `json:"id"`
	Name         string        `json:"name"`
	SpeciesID    id.SpeciesID  `json:"speciesId"`
	SpeciesName  string        `json:"speciesName"`
	LocationID   id.LocationID `json:"locationId"`
	LocationName string        `json:"locationName"`
	PurchaseDate calendar.Date `json:"purchaseDate"`
	Notes        string        `json:"notes,omitempty"`
	Photo        *id.Photo     `json:"photo"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func NewPlant(plantID id.PlantID, name string, speciesID id.SpeciesID, locationID id.LocationID, purchased calendar.Date, now time.Time) (*Plant, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "plant name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "plant name must be 100 characters or less")
	}
	if speciesID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "plant species is required")
	}
	if locationID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "plant location is required")
	}
	return &Plant{
		ID:           plantID,
		Name:         name,
		SpeciesID:    speciesID,
		LocationID:   locationID,
		PurchaseDate: purchased,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (p *Plant) SearchFields() []string {
	return []string{p.Name, p.SpeciesName, p.LocationName}
}

// BulkDeleteResult counts the records removed by a bulk plant delete.
type BulkDeleteResult struct {
	Plants    int `json:"plants"`
	Reminders int `json:"reminders"`
	CareLogs  int `json:"careLogs"`
}

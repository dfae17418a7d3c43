package models

import (
	"time"

	id "plantcare/pkg/domain"
	dErrors "plantcare/pkg/domain-errors"
)

const MaxNameLength = 100

// Location is a place plants are kept.
//
// Invariants:
//   - Name is non-empty, at most 100 characters, unique case-insensitively
//   - Type, Sunlight and Humidity are members of their enumerations
//   - Description is required
//   - A location no plant references is "empty" and may be deleted
type Location struct {
	ID          id.LocationID   `json:"id"`
	Name        string          `json:"name"`
	Type        id.LocationType `json:"type"`
	Sunlight    id.Sunlight     `json:"sunlight"`
	Humidity    id.Humidity     `json:"humidity"`
	Description string          `json:"description"`
	Photo       *id.Photo       `json:"photo"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func NewLocation(locationID id.LocationID, name string, locType id.LocationType, sun id.Sunlight, hum id.Humidity, description string, now time.Time) (*Location, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "location name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "location name must be 100 characters or less")
	}
	if !locType.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid location type")
	}
	if description == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "location description cannot be empty")
	}
	return &Location{
		ID:          locationID,
		Name:        name,
		Type:        locType,
		Sunlight:    sun,
		Humidity:    hum,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (l *Location) SearchFields() []string {
	return []string{l.Name, string(l.Type), l.Description}
}

// Emptiness answers whether a location holds no plants.
type Emptiness struct {
	IsEmpty    bool `json:"isEmpty"`
	PlantCount int  `json:"plantCount"`
}

// ListFilter narrows a location listing. Zero fields match everything.
type ListFilter struct {
	Type     id.LocationType
	Sunlight id.Sunlight
	Query    string
}

package models

import (
	"strings"
	"time"

	id "plantcare/pkg/domain"
	dErrors "plantcare/pkg/domain-errors"
)

const MaxNameLength = 150

// Species is a botanical species plants are registered under.
//
// Invariants:
//   - Name (the scientific name) is non-empty and unique case-insensitively
//   - A species referenced by at least one plant cannot be deleted
type Species struct {
	ID               id.SpeciesID `json:"id"`
	Name             string       `json:"name"`
	CommonName       string       `json:"commonName,omitempty"`
	Description      string       `json:"description,omitempty"`
	CareInstructions string       `json:"careInstructions,omitempty"`
	IdealConditions  string       `json:"idealConditions,omitempty"`
	Photo            *id.Photo    `json:"photo"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

func NewSpecies(speciesID id.SpeciesID, name string, now time.Time) (*Species, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "species name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "species name must be 150 characters or less")
	}
	return &Species{
		ID:        speciesID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// DisplayName prefers the common name.
func (s *Species) DisplayName() string {
	if s.CommonName != "" {
		return s.CommonName
	}
	return s.Name
}

func (s *Species) SearchFields() []string {
	return []string{s.Name, s.CommonName}
}

// Removability answers whether a species can be deleted.
type Removability struct {
	CanBeRemoved bool `json:"canBeRemoved"`
	PlantCount   int  `json:"plantCount"`
}

package models

import (
	"strings"
	"time"

	"plantcare/pkg/calendar"
	id "plantcare/pkg/domain"
	dErrors "plantcare/pkg/domain-errors"
)

const maxNotesLength = 2000

// CreatePlantRequest names the species and location by ID or, failing that,
// by name.
type CreatePlantRequest struct {
	Name         string  `json:"name"`
	SpeciesID    string  `json:"speciesId"`
	SpeciesName  string  `json:"speciesName"`
	LocationID   string  `json:"locationId"`
	LocationName string  `json:"locationName"`
	PurchaseDate string  `json:"purchaseDate"`
	Notes        string  `json:"notes"`
	Photo        *string `json:"photo"`
}

func (r *CreatePlantRequest) Normalize() {
	if r == nil {
		return
	}
	r.Name = strings.TrimSpace(r.Name)
	r.SpeciesID = strings.TrimSpace(r.SpeciesID)
	r.SpeciesName = strings.TrimSpace(r.SpeciesName)
	r.LocationID = strings.TrimSpace(r.LocationID)
	r.LocationName = strings.TrimSpace(r.LocationName)
	r.PurchaseDate = strings.TrimSpace(r.PurchaseDate)
	r.Notes = strings.TrimSpace(r.Notes)
}

// Follows validation order: Size -> Required -> Syntax.
func (r *CreatePlantRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if len(r.Name) > MaxNameLength {
		return dErrors.New(dErrors.CodeValidation, "name must be 100 characters or less")
	}
	if len(r.Notes) > maxNotesLength {
		return dErrors.New(dErrors.CodeValidation, "notes must be 2000 characters or less")
	}
	switch {
	case r.Name == "":
		return dErrors.New(dErrors.CodeValidation, "name is required")
	case r.SpeciesID == "" && r.SpeciesName == "":
		return dErrors.New(dErrors.CodeValidation, "species is required")
	case r.LocationID == "" && r.LocationName == "":
		return dErrors.New(dErrors.CodeValidation, "location is required")
	}
	if r.SpeciesID != "" {
		if _, err := id.ParseSpeciesID(r.SpeciesID); err != nil {
			return dErrors.New(dErrors.CodeValidation, "speciesId is not a valid id")
		}
	}
	if r.LocationID != "" {
		if _, err := id.ParseLocationID(r.LocationID); err != nil {
			return dErrors.New(dErrors.CodeValidation, "locationId is not a valid id")
		}
	}
	if _, err := calendar.ParseOptional(r.PurchaseDate); err != nil {
		return dErrors.New(dErrors.CodeValidation, "purchaseDate must be YYYY-MM-DD")
	}
	if _, err := id.NormalizePhoto(r.Photo); err != nil {
		return dErrors.New(dErrors.CodeValidation, err.Error())
	}
	return nil
}

// Build creates the plant once species and location have been resolved.
func (r *CreatePlantRequest) Build(speciesID id.SpeciesID, locationID id.LocationID, now time.Time) (*Plant, error) {
	purchased, err := calendar.ParseOptional(r.PurchaseDate)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, "purchaseDate must be YYYY-MM-DD")
	}
	p, err := NewPlant(id.NewPlantID(), r.Name, speciesID, locationID, purchased, now)
	if err != nil {
		return nil, err
	}
	p.Notes = r.Notes
	p.Photo, err = id.NormalizePhoto(r.Photo)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePlantRequest is a partial update: nil fields are left unchanged.
type UpdatePlantRequest struct {
	Name         *string        `json:"name"`
	SpeciesID    *string        `json:"speciesId"`
	SpeciesName  *string        `json:"speciesName"`
	LocationID   *string        `json:"locationId"`
	LocationName *string        `json:"locationName"`
	PurchaseDate *string        `json:"purchaseDate"`
	Notes        *string        `json:"notes"`
	Photo        id.PhotoChange `json:"photo"`
}

func (r *UpdatePlantRequest) Normalize() {
	if r == nil {
		return
	}
	for _, f := range []*string{r.Name, r.SpeciesID, r.SpeciesName, r.LocationID, r.LocationName, r.PurchaseDate, r.Notes} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}

func (r *UpdatePlantRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.Name != nil && len(*r.Name) > MaxNameLength {
		return dErrors.New(dErrors.CodeValidation, "name must be 100 characters or less")
	}
	if r.Notes != nil && len(*r.Notes) > maxNotesLength {
		return dErrors.New(dErrors.CodeValidation, "notes must be 2000 characters or less")
	}
	if r.Name != nil && *r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name cannot be empty")
	}
	if r.SpeciesID != nil && *r.SpeciesID != "" {
		if _, err := id.ParseSpeciesID(*r.SpeciesID); err != nil {
			return dErrors.New(dErrors.CodeValidation, "speciesId is not a valid id")
		}
	}
	if r.LocationID != nil && *r.LocationID != "" {
		if _, err := id.ParseLocationID(*r.LocationID); err != nil {
			return dErrors.New(dErrors.CodeValidation, "locationId is not a valid id")
		}
	}
	if r.PurchaseDate != nil {
		if _, err := calendar.ParseOptional(*r.PurchaseDate); err != nil {
			return dErrors.New(dErrors.CodeValidation, "purchaseDate must be YYYY-MM-DD")
		}
	}
	return r.Photo.Validate()
}

// SpeciesRef returns the requested species reference, if any.
func (r *UpdatePlantRequest) SpeciesRef() (idRef, name string) {
	return deref(r.SpeciesID), deref(r.SpeciesName)
}

// LocationRef returns the requested location reference, if any.
func (r *UpdatePlantRequest) LocationRef() (idRef, name string) {
	return deref(r.LocationID), deref(r.LocationName)
}

// Apply copies the set scalar fields onto p. Species and location changes are
// resolved by the service. Call Validate first.
func (r *UpdatePlantRequest) Apply(p *Plant, now time.Time) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.PurchaseDate != nil {
		p.PurchaseDate, _ = calendar.ParseOptional(*r.PurchaseDate)
	}
	if r.Notes != nil {
		p.Notes = *r.Notes
	}
	p.Photo = r.Photo.ApplyTo(p.Photo)
	p.UpdatedAt = now
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

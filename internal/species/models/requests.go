package models

import (
	"strings"
	"time"

	id "plantcare/pkg/domain"
	dErrors "plantcare/pkg/domain-errors"
)

const maxTextLength = 2000

type CreateSpeciesRequest struct {
	Name             string  `json:"name"`
	CommonName       string  `json:"commonName"`
	Description      string  `json:"description"`
	CareInstructions string  `json:"careInstructions"`
	IdealConditions  string  `json:"idealConditions"`
	Photo            *string `json:"photo"`
}

func (r *CreateSpeciesRequest) Normalize() {
	if r == nil {
		return
	}
	r.Name = strings.TrimSpace(r.Name)
	r.CommonName = strings.TrimSpace(r.CommonName)
	r.Description = strings.TrimSpace(r.Description)
	r.CareInstructions = strings.TrimSpace(r.CareInstructions)
	r.IdealConditions = strings.TrimSpace(r.IdealConditions)
}

// Follows validation order: Size -> Required -> Syntax.
func (r *CreateSpeciesRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if len(r.Name) > MaxNameLength {
		return dErrors.New(dErrors.CodeValidation, "name must be 150 characters or less")
	}
	if err := validateText(r.CommonName, r.Description, r.CareInstructions, r.IdealConditions); err != nil {
		return err
	}
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if _, err := id.NormalizePhoto(r.Photo); err != nil {
		return dErrors.New(dErrors.CodeValidation, err.Error())
	}
	return nil
}

// Build constructs the species a validated request describes.
func (r *CreateSpeciesRequest) Build(now time.Time) (*Species, error) {
	s, err := NewSpecies(id.NewSpeciesID(), r.Name, now)
	if err != nil {
		return nil, err
	}
	s.CommonName = r.CommonName
	s.Description = r.Description
	s.CareInstructions = r.CareInstructions
	s.IdealConditions = r.IdealConditions
	s.Photo, err = id.NormalizePhoto(r.Photo)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// UpdateSpeciesRequest is a partial update: nil fields are left unchanged.
// A photo sent as "" or null clears it; an absent photo key keeps it.
type UpdateSpeciesRequest struct {
	Name             *string        `json:"name"`
	CommonName       *string        `json:"commonName"`
	Description      *string        `json:"description"`
	CareInstructions *string        `json:"careInstructions"`
	IdealConditions  *string        `json:"idealConditions"`
	Photo            id.PhotoChange `json:"photo"`
}

func (r *UpdateSpeciesRequest) Normalize() {
	if r == nil {
		return
	}
	for _, f := range []*string{r.Name, r.CommonName, r.Description, r.CareInstructions, r.IdealConditions} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}

func (r *UpdateSpeciesRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.Name != nil {
		if len(*r.Name) > MaxNameLength {
			return dErrors.New(dErrors.CodeValidation, "name must be 150 characters or less")
		}
		if *r.Name == "" {
			return dErrors.New(dErrors.CodeValidation, "name cannot be empty")
		}
	}
	if err := validateText(deref(r.CommonName), deref(r.Description), deref(r.CareInstructions), deref(r.IdealConditions)); err != nil {
		return err
	}
	return r.Photo.Validate()
}

// Apply copies the set fields onto s.
func (r *UpdateSpeciesRequest) Apply(s *Species, now time.Time) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.CommonName != nil {
		s.CommonName = *r.CommonName
	}
	if r.Description != nil {
		s.Description = *r.Description
	}
	if r.CareInstructions != nil {
		s.CareInstructions = *r.CareInstructions
	}
	if r.IdealConditions != nil {
		s.IdealConditions = *r.IdealConditions
	}
	s.Photo = r.Photo.ApplyTo(s.Photo)
	s.UpdatedAt = now
}

func validateText(fields ...string) error {
	for _, f := range fields {
		if len(f) > maxTextLength {
			return dErrors.New(dErrors.CodeValidation, "text fields must be 2000 characters or less")
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

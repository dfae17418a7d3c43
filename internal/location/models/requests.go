package models

import (
	"strings"
	"time"

	id "plantcare/pkg/domain"
	dErrors "plantcare/pkg/domain-errors"
)

const maxDescriptionLength = 1000

type CreateLocationRequest struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Sunlight    string  `json:"sunlight"`
	Humidity    string  `json:"humidity"`
	Description string  `json:"description"`
	Photo       *string `json:"photo"`
}

func (r *CreateLocationRequest) Normalize() {
	if r == nil {
		return
	}
	r.Name = strings.TrimSpace(r.Name)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	r.Sunlight = strings.ToLower(strings.TrimSpace(r.Sunlight))
	r.Humidity = strings.ToLower(strings.TrimSpace(r.Humidity))
	r.Description = strings.TrimSpace(r.Description)
}

// Follows validation order: Size -> Required -> Syntax.
func (r *CreateLocationRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if len(r.Name) > MaxNameLength {
		return dErrors.New(dErrors.CodeValidation, "name must be 100 characters or less")
	}
	if len(r.Description) > maxDescriptionLength {
		return dErrors.New(dErrors.CodeValidation, "description must be 1000 characters or less")
	}
	switch {
	case r.Name == "":
		return dErrors.New(dErrors.CodeValidation, "name is required")
	case r.Type == "":
		return dErrors.New(dErrors.CodeValidation, "type is required")
	case r.Sunlight == "":
		return dErrors.New(dErrors.CodeValidation, "sunlight is required")
	case r.Humidity == "":
		return dErrors.New(dErrors.CodeValidation, "humidity is required")
	case r.Description == "":
		return dErrors.New(dErrors.CodeValidation, "description is required")
	}
	if _, _, _, err := parseEnums(r.Type, r.Sunlight, r.Humidity); err != nil {
		return err
	}
	if _, err := id.NormalizePhoto(r.Photo); err != nil {
		return dErrors.New(dErrors.CodeValidation, err.Error())
	}
	return nil
}

func (r *CreateLocationRequest) Build(now time.Time) (*Location, error) {
	lt, sun, hum, err := parseEnums(r.Type, r.Sunlight, r.Humidity)
	if err != nil {
		return nil, err
	}
	loc, err := NewLocation(id.NewLocationID(), r.Name, lt, sun, hum, r.Description, now)
	if err != nil {
		return nil, err
	}
	loc.Photo, err = id.NormalizePhoto(r.Photo)
	if err != nil {
		return nil, err
	}
	return loc, nil
}

// UpdateLocationRequest is a partial update: nil fields are left unchanged.
type UpdateLocationRequest struct {
	Name        *string        `json:"name"`
	Type        *string        `json:"type"`
	Sunlight    *string        `json:"sunlight"`
	Humidity    *string        `json:"humidity"`
	Description *string        `json:"description"`
	Photo       id.PhotoChange `json:"photo"`
}

func (r *UpdateLocationRequest) Normalize() {
	if r == nil {
		return
	}
	for _, f := range []*string{r.Name, r.Description} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
	for _, f := range []*string{r.Type, r.Sunlight, r.Humidity} {
		if f != nil {
			*f = strings.ToLower(strings.TrimSpace(*f))
		}
	}
}

func (r *UpdateLocationRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.Name != nil && len(*r.Name) > MaxNameLength {
		return dErrors.New(dErrors.CodeValidation, "name must be 100 characters or less")
	}
	if r.Description != nil && len(*r.Description) > maxDescriptionLength {
		return dErrors.New(dErrors.CodeValidation, "description must be 1000 characters or less")
	}
	if r.Name != nil && *r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name cannot be empty")
	}
	if r.Description != nil && *r.Description == "" {
		return dErrors.New(dErrors.CodeValidation, "description cannot be empty")
	}
	if r.Type != nil {
		if _, err := id.ParseLocationType(*r.Type); err != nil {
			return dErrors.New(dErrors.CodeValidation, "type must be one of indoor, outdoor, balcony, garden, terrace")
		}
	}
	if r.Sunlight != nil {
		if _, err := id.ParseSunlight(*r.Sunlight); err != nil {
			return dErrors.New(dErrors.CodeValidation, "sunlight must be one of full, partial, shade")
		}
	}
	if r.Humidity != nil {
		if _, err := id.ParseHumidity(*r.Humidity); err != nil {
			return dErrors.New(dErrors.CodeValidation, "humidity must be one of low, medium, high")
		}
	}
	return r.Photo.Validate()
}

// Apply copies the set fields onto l. Call Validate first.
func (r *UpdateLocationRequest) Apply(l *Location, now time.Time) {
	if r.Name != nil {
		l.Name = *r.Name
	}
	if r.Type != nil {
		l.Type = id.LocationType(*r.Type)
	}
	if r.Sunlight != nil {
		l.Sunlight = id.Sunlight(*r.Sunlight)
	}
	if r.Humidity != nil {
		l.Humidity = id.Humidity(*r.Humidity)
	}
	if r.Description != nil {
		l.Description = *r.Description
	}
	l.Photo = r.Photo.ApplyTo(l.Photo)
	l.UpdatedAt = now
}

func parseEnums(locType, sunlight, humidity string) (id.LocationType, id.Sunlight, id.Humidity, error) {
	lt, err := id.ParseLocationType(locType)
	if err != nil {
		return "", "", "", dErrors.New(dErrors.CodeValidation, "type must be one of indoor, outdoor, balcony, garden, terrace")
	}
	sun, err := id.ParseSunlight(sunlight)
	if err != nil {
		return "", "", "", dErrors.New(dErrors.CodeValidation, "sunlight must be one of full, partial, shade")
	}
	hum, err := id.ParseHumidity(humidity)
	if err != nil {
		return "", "", "", dErrors.New(dErrors.CodeValidation, "humidity must be one of low, medium, high")
	}
	return lt, sun, hum, nil
}

package domain

import (
	"strings"

	dErrors "plantcare/pkg/domain-errors"
)

type LocationType string

const (
	LocationIndoor  LocationType = "indoor"
	LocationOutdoor LocationType = "outdoor"
	LocationBalcony LocationType = "balcony"
	LocationGarden  LocationType = "garden"
	LocationTerrace LocationType = "terrace"
)

var validLocationTypes = map[LocationType]bool{
	LocationIndoor:  true,
	LocationOutdoor: true,
	LocationBalcony: true,
	LocationGarden:  true,
	LocationTerrace: true,
}

func ParseLocationType(s string) (LocationType, error) {
	t := LocationType(strings.ToLower(strings.TrimSpace(s)))
	if !validLocationTypes[t] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "type must be one of indoor, outdoor, balcony, garden, terrace")
	}
	return t, nil
}

func (t LocationType) IsValid() bool  { return validLocationTypes[t] }
func (t LocationType) String() string { return string(t) }

type Sunlight string

const (
	SunlightFull    Sunlight = "full"
	SunlightPartial Sunlight = "partial"
	SunlightShade   Sunlight = "shade"
)

func ParseSunlight(s string) (Sunlight, error) {
	v := Sunlight(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case SunlightFull, SunlightPartial, SunlightShade:
		return v, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "sunlight must be one of full, partial, shade")
}

func (s Sunlight) String() string { return string(s) }

type Humidity string

const (
	HumidityLow    Humidity = "low"
	HumidityMedium Humidity = "medium"
	HumidityHigh   Humidity = "high"
)

func ParseHumidity(s string) (Humidity, error) {
	v := Humidity(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case HumidityLow, HumidityMedium, HumidityHigh:
		return v, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "humidity must be one of low, medium, high")
}

func (h Humidity) String() string { return string(h) }

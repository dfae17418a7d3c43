package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	dErrors "plantcare/pkg/domain-errors"
)

// Typed identifiers keep cross-entity references explicit: a reminder can only
// point at a PlantID, never at a SpeciesID by accident.
type (
	PlantID    uuid.UUID
	SpeciesID  uuid.UUID
	LocationID uuid.UUID
	ReminderID uuid.UUID
	CareLogID  uuid.UUID
)

// maxIDLength bounds input before handing it to uuid.Parse.
const maxIDLength = 64

func parseID(s, kind string) (uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" cannot be empty")
	}
	if len(s) > maxIDLength {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	u, err := uuid.Parse(s)
	if err != nil || u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	return u, nil
}

func NewPlantID() PlantID       { return PlantID(uuid.New()) }
func NewSpeciesID() SpeciesID   { return SpeciesID(uuid.New()) }
func NewLocationID() LocationID { return LocationID(uuid.New()) }
func NewReminderID() ReminderID { return ReminderID(uuid.New()) }
func NewCareLogID() CareLogID   { return CareLogID(uuid.New()) }

// ParsePlantID parses a plant identifier at a trust boundary.
func ParsePlantID(s string) (PlantID, error) {
	u, err := parseID(s, "plant id")
	return PlantID(u), err
}

func ParseSpeciesID(s string) (SpeciesID, error) {
	u, err := parseID(s, "species id")
	return SpeciesID(u), err
}

func ParseLocationID(s string) (LocationID, error) {
	u, err := parseID(s, "location id")
	return LocationID(u), err
}

func ParseReminderID(s string) (ReminderID, error) {
	u, err := parseID(s, "reminder id")
	return ReminderID(u), err
}

func ParseCareLogID(s string) (CareLogID, error) {
	u, err := parseID(s, "care log id")
	return CareLogID(u), err
}

func (id PlantID) String() string    { return uuid.UUID(id).String() }
func (id SpeciesID) String() string  { return uuid.UUID(id).String() }
func (id LocationID) String() string { return uuid.UUID(id).String() }
func (id ReminderID) String() string { return uuid.UUID(id).String() }
func (id CareLogID) String() string  { return uuid.UUID(id).String() }

func (id PlantID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id SpeciesID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id LocationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ReminderID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id CareLogID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }

func (id PlantID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }
func (id SpeciesID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id LocationID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id ReminderID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id CareLogID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }

func (id *PlantID) UnmarshalText(b []byte) error    { return unmarshalID((*uuid.UUID)(id), b) }
func (id *SpeciesID) UnmarshalText(b []byte) error  { return unmarshalID((*uuid.UUID)(id), b) }
func (id *LocationID) UnmarshalText(b []byte) error { return unmarshalID((*uuid.UUID)(id), b) }
func (id *ReminderID) UnmarshalText(b []byte) error { return unmarshalID((*uuid.UUID)(id), b) }
func (id *CareLogID) UnmarshalText(b []byte) error  { return unmarshalID((*uuid.UUID)(id), b) }

func unmarshalID(dst *uuid.UUID, b []byte) error {
	if len(b) == 0 {
		*dst = uuid.Nil
		return nil
	}
	return dst.UnmarshalText(b)
}

// Strings renders ids in their canonical text form.
func Strings[T fmt.Stringer](ids []T) []string {
	out := make([]string, len(ids))
	for i, v := range ids {
		out[i] = v.String()
	}
	return out
}

package client

import (
	"strings"
	"time"

	"plantcare/pkg/calendar"
	"plantcare/pkg/care"
	id "plantcare/pkg/domain"
)

type Plant struct {
	ID           id.PlantID    `json:"id"`
	Name         string        `json:"name"`
	SpeciesID    id.SpeciesID  `json:"speciesId"`
	SpeciesName  string        `json:"speciesName"`
	LocationID   id.LocationID `json:"locationId"`
	LocationName string        `json:"locationName"`
	PurchaseDate calendar.Date `json:"purchaseDate"`
	Notes        string        `json:"notes"`
	Photo        *id.Photo     `json:"photo"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func (p Plant) SearchFields() []string { return []string{p.Name, p.SpeciesName, p.LocationName} }

type Species struct {
	ID               id.SpeciesID `json:"id"`
	Name             string       `json:"name"`
	CommonName       string       `json:"commonName"`
	Description      string       `json:"description"`
	CareInstructions string       `json:"careInstructions"`
	IdealConditions  string       `json:"idealConditions"`
	Photo            *id.Photo    `json:"photo"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

func (s Species) SearchFields() []string { return []string{s.Name, s.CommonName} }

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

func (l Location) SearchFields() []string {
	return []string{l.Name, l.Type.String(), l.Description}
}

// Reminder mirrors the server record. Status and DaysUntilDue are derived
// locally so a cached list stays correct across midnight.
type Reminder struct {
	ID        id.ReminderID   `json:"id"`
	PlantID   id.PlantID      `json:"plantId"`
	PlantName string          `json:"plantName"`
	Type      id.ReminderType `json:"type"`
	Frequency int             `json:"frequency"`
	LastDone  calendar.Date   `json:"lastDone"`
	NextDue   calendar.Date   `json:"nextDue"`
	Notes     string          `json:"notes"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (r Reminder) Status(now time.Time) care.Status {
	return care.DeriveStatus(r.NextDue, r.IsActive, now)
}

func (r Reminder) DaysUntilDue(now time.Time) int {
	return care.DaysUntilDue(r.NextDue, now)
}

func (r Reminder) SearchFields() []string {
	return []string{r.PlantName, r.Type.String(), r.Notes}
}

type CareLog struct {
	ID        id.CareLogID   `json:"id"`
	PlantID   id.PlantID     `json:"plantId"`
	PlantName string         `json:"plantName"`
	Type      id.CareLogType `json:"type"`
	Date      calendar.Date  `json:"date"`
	Notes     string         `json:"notes"`
	Success   bool           `json:"success"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (l CareLog) SearchFields() []string {
	return []string{l.PlantName, l.Type.String(), l.Notes}
}

type CareStats struct {
	Total       int            `json:"total"`
	Successful  int            `json:"successful"`
	Failed      int            `json:"failed"`
	SuccessRate float64        `json:"successRate"`
	ByType      map[string]int `json:"byType"`
}

type BulkDeleteResult struct {
	Plants    int `json:"plants"`
	Reminders int `json:"reminders"`
	CareLogs  int `json:"careLogs"`
}

type Removability struct {
	CanBeRemoved bool `json:"canBeRemoved"`
	PlantCount   int  `json:"plantCount"`
}

type Emptiness struct {
	IsEmpty    bool `json:"isEmpty"`
	PlantCount int  `json:"plantCount"`
}

// NewPlant creates a plant. Species and location may be referenced by id or
// by name; the id wins when both are set.
type NewPlant struct {
	Name         string        `json:"name"`
	SpeciesID    string        `json:"speciesId,omitempty"`
	SpeciesName  string        `json:"speciesName,omitempty"`
	LocationID   string        `json:"locationId,omitempty"`
	LocationName string        `json:"locationName,omitempty"`
	PurchaseDate calendar.Date `json:"purchaseDate"`
	Notes        string        `json:"notes,omitempty"`
	Photo        *id.Photo     `json:"photo,omitempty"`
}

// PlantPatch changes only the fields that are set.
type PlantPatch struct {
	Name         *string        `json:"name,omitempty"`
	SpeciesID    *string        `json:"speciesId,omitempty"`
	SpeciesName  *string        `json:"speciesName,omitempty"`
	LocationID   *string        `json:"locationId,omitempty"`
	LocationName *string        `json:"locationName,omitempty"`
	PurchaseDate *calendar.Date `json:"purchaseDate,omitempty"`
	Notes        *string        `json:"notes,omitempty"`
	Photo        id.PhotoChange `json:"photo,omitzero"`
}

type NewSpecies struct {
	Name             string    `json:"name"`
	CommonName       string    `json:"commonName,omitempty"`
	Description      string    `json:"description,omitempty"`
	CareInstructions string    `json:"careInstructions,omitempty"`
	IdealConditions  string    `json:"idealConditions,omitempty"`
	Photo            *id.Photo `json:"photo,omitempty"`
}

type SpeciesPatch struct {
	Name             *string        `json:"name,omitempty"`
	CommonName       *string        `json:"commonName,omitempty"`
	Description      *string        `json:"description,omitempty"`
	CareInstructions *string        `json:"careInstructions,omitempty"`
	IdealConditions  *string        `json:"idealConditions,omitempty"`
	Photo            id.PhotoChange `json:"photo,omitzero"`
}

type NewLocation struct {
	Name        string          `json:"name"`
	Type        id.LocationType `json:"type"`
	Sunlight    id.Sunlight     `json:"sunlight"`
	Humidity    id.Humidity     `json:"humidity"`
	Description string          `json:"description"`
	Photo       *id.Photo       `json:"photo,omitempty"`
}

type LocationPatch struct {
	Name        *string          `json:"name,omitempty"`
	Type        *id.LocationType `json:"type,omitempty"`
	Sunlight    *id.Sunlight     `json:"sunlight,omitempty"`
	Humidity    *id.Humidity     `json:"humidity,omitempty"`
	Description *string          `json:"description,omitempty"`
	Photo       id.PhotoChange   `json:"photo,omitzero"`
}

// LocationQuery narrows ListLocations; zero fields are ignored.
type LocationQuery struct {
	Type     id.LocationType
	Sunlight id.Sunlight
	Query    string
}

type NewReminder struct {
	PlantID   id.PlantID      `json:"plantId"`
	Type      id.ReminderType `json:"type"`
	Frequency int             `json:"frequency"`
	LastDone  calendar.Date   `json:"lastDone"`
	NextDue   calendar.Date   `json:"nextDue"`
	Notes     string          `json:"notes,omitempty"`
	IsActive  *bool           `json:"isActive,omitempty"`
}

type ReminderPatch struct {
	Type      *id.ReminderType `json:"type,omitempty"`
	Frequency *int             `json:"frequency,omitempty"`
	LastDone  *calendar.Date   `json:"lastDone,omitempty"`
	NextDue   *calendar.Date   `json:"nextDue,omitempty"`
	Notes     *string          `json:"notes,omitempty"`
	IsActive  *bool            `json:"isActive,omitempty"`
}

// ReminderQuery narrows ListReminders; zero fields are ignored.
type ReminderQuery struct {
	Type    id.ReminderType
	PlantID id.PlantID
	Query   string
}

type NewCareLog struct {
	PlantID id.PlantID     `json:"plantId"`
	Type    id.CareLogType `json:"type"`
	Date    calendar.Date  `json:"date"`
	Notes   string         `json:"notes,omitempty"`
	Success *bool          `json:"success,omitempty"`
}

type CareLogPatch struct {
	Type    *id.CareLogType `json:"type,omitempty"`
	Date    *calendar.Date  `json:"date,omitempty"`
	Notes   *string         `json:"notes,omitempty"`
	Success *bool           `json:"success,omitempty"`
}

// CareLogQuery narrows ListCareLogs; zero fields are ignored.
type CareLogQuery struct {
	PlantID id.PlantID
	Type    id.CareLogType
	Query   string
}

// blankPhoto drops an empty reference so "" never reaches the server.
func blankPhoto(p *id.Photo) *id.Photo {
	if p == nil || strings.TrimSpace(string(*p)) == "" {
		return nil
	}
	return p
}

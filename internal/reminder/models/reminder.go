package models

import (
	"time"

	"plantcare/pkg/calendar"
	"plantcare/pkg/care"
	id "plantcare/pkg/domain"
	dErrors "plantcare/pkg/domain-errors"
)

// Reminder schedules recurring care for a plant.
//
// Invariants:
//   - Frequency is between 1 and 99 days
//   - PlantName is derived at read time and never stored
//   - Status is derived from NextDue and IsActive, never stored
type Reminder struct {
	ID        id.ReminderID   `json:"id"`
	PlantID   id.PlantID      `json:"plantId"`
	PlantName string          `json:"plantName"`
	Type      id.ReminderType `json:"type"`
	Frequency int             `json:"frequency"`
	LastDone  calendar.Date   `json:"lastDone"`
	NextDue   calendar.Date   `json:"nextDue"`
	Notes     string          `json:"notes,omitempty"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func NewReminder(reminderID id.ReminderID, plantID id.PlantID, t id.ReminderType, frequency int, lastDone calendar.Date, now time.Time) (*Reminder, error) {
	if plantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "reminder plant is required")
	}
	if !t.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid reminder type")
	}
	if err := care.ValidateFrequency(frequency); err != nil {
		return nil, err
	}
	if lastDone.IsZero() {
		lastDone = calendar.Today(now)
	}
	return &Reminder{
		ID:        reminderID,
		PlantID:   plantID,
		Type:      t,
		Frequency: frequency,
		LastDone:  lastDone,
		NextDue:   care.NextDue(lastDone, frequency),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// MarkDone records the care as done today and schedules the next occurrence.
func (r *Reminder) MarkDone(now time.Time) {
	r.LastDone, r.NextDue = care.Complete(r.Frequency, now)
	r.UpdatedAt = now
}

func (r *Reminder) SearchFields() []string {
	return []string{r.PlantName, string(r.Type), r.Notes}
}

// View is a reminder with its status derived at request time.
type View struct {
	*Reminder
	Status       care.Status `json:"status"`
	DaysUntilDue int         `json:"daysUntilDue"`
}

func NewView(r *Reminder, now time.Time) *View {
	return &View{
		Reminder:     r,
		Status:       care.DeriveStatus(r.NextDue, r.IsActive, now),
		DaysUntilDue: care.DaysUntilDue(r.NextDue, now),
	}
}

// ListFilter narrows a reminder listing. Zero fields match everything.
type ListFilter struct {
	Type    id.ReminderType
	PlantID id.PlantID
	Query   string
}

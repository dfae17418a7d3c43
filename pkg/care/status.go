// Package care holds the reminder status engine, due-date rollover, list
// ordering and search filtering shared by the API server and the client.
package care

import (
	"time"

	"plantcare/pkg/calendar"
	dErrors "plantcare/pkg/domain-errors"
)

// DueSoonDays is the inclusive horizon, in days, within which an active
// reminder that is not overdue counts as "Due Soon". Every view uses it.
const DueSoonDays = 3

// Frequency bounds, in days between occurrences.
const (
	MinFrequency = 1
	MaxFrequency = 99
)

type Label string

const (
	LabelInactive   Label = "Inactive"
	LabelOverdue    Label = "Overdue"
	LabelDueSoon    Label = "Due Soon"
	LabelOnSchedule Label = "On Schedule"
)

type Urgency string

const (
	UrgencyNone   Urgency = "none"
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

// Status is the derived classification of a reminder. It is never persisted.
type Status struct {
	Label   Label   `json:"label"`
	Urgency Urgency `json:"urgency"`
}

// DeriveStatus classifies a reminder. Rules are checked in order and the
// first match wins: inactive, overdue, due within DueSoonDays, on schedule.
func DeriveStatus(nextDue calendar.Date, isActive bool, now time.Time) Status {
	if !isActive {
		return Status{Label: LabelInactive, Urgency: UrgencyNone}
	}
	if IsOverdue(nextDue, isActive, now) {
		return Status{Label: LabelOverdue, Urgency: UrgencyHigh}
	}
	if DaysUntilDue(nextDue, now) <= DueSoonDays {
		return Status{Label: LabelDueSoon, Urgency: UrgencyMedium}
	}
	return Status{Label: LabelOnSchedule, Urgency: UrgencyLow}
}

// IsOverdue reports whether an active reminder's due day is strictly before
// today. A missing due date is never overdue.
func IsOverdue(nextDue calendar.Date, isActive bool, now time.Time) bool {
	if !isActive || nextDue.IsZero() {
		return false
	}
	return nextDue.Before(calendar.Today(now))
}

// DaysUntilDue returns whole calendar days from today to nextDue: negative
// when overdue, zero today or when nextDue is missing.
func DaysUntilDue(nextDue calendar.Date, now time.Time) int {
	if nextDue.IsZero() {
		return 0
	}
	return calendar.DaysBetween(calendar.Today(now), nextDue)
}

// IsUpcoming reports whether an active reminder falls due within the next
// days days, today included, and is not overdue.
func IsUpcoming(nextDue calendar.Date, isActive bool, now time.Time, days int) bool {
	if !isActive || nextDue.IsZero() {
		return false
	}
	d := DaysUntilDue(nextDue, now)
	return d >= 0 && d <= days
}

// ValidateFrequency enforces the 1..99 day bound.
func ValidateFrequency(frequency int) error {
	if frequency < MinFrequency || frequency > MaxFrequency {
		return dErrors.New(dErrors.CodeValidation, "frequency must be between 1 and 99 days")
	}
	return nil
}

// NextDue is the due day following a completion on lastDone.
func NextDue(lastDone calendar.Date, frequency int) calendar.Date {
	if lastDone.IsZero() {
		return calendar.Date{}
	}
	return lastDone.AddDays(frequency)
}

// Complete rolls a reminder forward after it was done today.
func Complete(frequency int, now time.Time) (lastDone, nextDue calendar.Date) {
	today := calendar.Today(now)
	return today, NextDue(today, frequency)
}

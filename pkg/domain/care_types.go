package domain

import (
	"strings"

	dErrors "plantcare/pkg/domain-errors"
)

// ReminderType is the kind of recurring care a reminder schedules.
type ReminderType string

const (
	ReminderWatering    ReminderType = "watering"
	ReminderFertilizing ReminderType = "fertilizing"
	ReminderPruning     ReminderType = "pruning"
	ReminderSunlight    ReminderType = "sunlight"
	ReminderOther       ReminderType = "other"
)

var validReminderTypes = map[ReminderType]bool{
	ReminderWatering:    true,
	ReminderFertilizing: true,
	ReminderPruning:     true,
	ReminderSunlight:    true,
	ReminderOther:       true,
}

// ParseReminderType constructs a ReminderType from external input.
// Input is trimmed and lowercased before the allowlist check.
func ParseReminderType(s string) (ReminderType, error) {
	t := ReminderType(strings.ToLower(strings.TrimSpace(s)))
	if t == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "reminder type cannot be empty")
	}
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid reminder type")
	}
	return t, nil
}

func (t ReminderType) IsValid() bool  { return validReminderTypes[t] }
func (t ReminderType) String() string { return string(t) }

// CareLogType is the kind of care event recorded in a log entry. It differs
// from ReminderType: repotting and cleaning are logged but never scheduled,
// and sunlight is scheduled but never logged.
type CareLogType string

const (
	CareLogWatering    CareLogType = "watering"
	CareLogFertilizing CareLogType = "fertilizing"
	CareLogPruning     CareLogType = "pruning"
	CareLogRepotting   CareLogType = "repotting"
	CareLogCleaning    CareLogType = "cleaning"
	CareLogOther       CareLogType = "other"
)

var validCareLogTypes = map[CareLogType]bool{
	CareLogWatering:    true,
	CareLogFertilizing: true,
	CareLogPruning:     true,
	CareLogRepotting:   true,
	CareLogCleaning:    true,
	CareLogOther:       true,
}

func ParseCareLogType(s string) (CareLogType, error) {
	t := CareLogType(strings.ToLower(strings.TrimSpace(s)))
	if t == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "care log type cannot be empty")
	}
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid care log type")
	}
	return t, nil
}

func (t CareLogType) IsValid() bool  { return validCareLogTypes[t] }
func (t CareLogType) String() string { return string(t) }

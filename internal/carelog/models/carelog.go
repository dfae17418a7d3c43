package models

import (
	"math"
	"time"

	"plantcare/pkg/calendar"
	id "plantcare/pkg/domain"
	dErrors "plantcare/pkg/domain-errors"
)

// CareLog records care given to a plant on a day.
//
// Invariants:
//   - Date is always set
//   - PlantName is derived at read time and never stored
type CareLog struct {
	ID        id.CareLogID   `json:"id"`
	PlantID   id.PlantID     `json:"plantId"`
	PlantName string         `json:"plantName"`
	Type      id.CareLogType `json:"type"`
	Date      calendar.Date  `json:"date"`
	Notes     string         `json:"notes,omitempty"`
	Success   bool           `json:"success"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func NewCareLog(logID id.CareLogID, plantID id.PlantID, t id.CareLogType, date calendar.Date, now time.Time) (*CareLog, error) {
	if plantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "care log plant is required")
	}
	if !t.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid care log type")
	}
	if date.IsZero() {
		date = calendar.Today(now)
	}
	return &CareLog{
		ID:        logID,
		PlantID:   plantID,
		Type:      t,
		Date:      date,
		Success:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (l *CareLog) SearchFields() []string {
	return []string{l.PlantName, string(l.Type), l.Notes}
}

// ListFilter narrows a care log listing. Zero fields match everything.
type ListFilter struct {
	PlantID id.PlantID
	Type    id.CareLogType
	Query   string
}

// Stats summarizes the care log history.
type Stats struct {
	Total       int            `json:"total"`
	Successful  int            `json:"successful"`
	Failed      int            `json:"failed"`
	SuccessRate float64        `json:"successRate"`
	ByType      map[string]int `json:"byType"`
}

// ComputeStats aggregates logs. SuccessRate is a percentage rounded to one
// decimal place, zero when there are no logs.
func ComputeStats(logs []*CareLog) *Stats {
	st := &Stats{ByType: make(map[string]int)}
	for _, l := range logs {
		st.Total++
		if l.Success {
			st.Successful++
		} else {
			st.Failed++
		}
		st.ByType[string(l.Type)]++
	}
	if st.Total > 0 {
		st.SuccessRate = math.Round(float64(st.Successful)/float64(st.Total)*1000) / 10
	}
	return st
}

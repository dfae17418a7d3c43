package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"plantcare/internal/reminder/models"
	id "plantcare/pkg/domain"
	"plantcare/pkg/platform/sentinel"
)

// InMemoryStore stores care reminders in memory for tests/dev.
type InMemoryStore struct {
	mu        sync.RWMutex
	reminders map[id.ReminderID]*models.Reminder
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{reminders: make(map[id.ReminderID]*models.Reminder)}
}

func (s *InMemoryStore) Create(_ context.Context, r *models.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminders[r.ID] = stored(r)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, reminderID id.ReminderID) (*models.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reminders[reminderID]
	if !ok {
		return nil, fmt.Errorf("care reminder not found: %w", sentinel.ErrNotFound)
	}
	cp := *r
	return &cp, nil
}

// List returns reminders matching the type and plant filters in creation
// order.
func (s *InMemoryStore) List(_ context.Context, filter models.ListFilter) ([]*models.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Reminder, 0, len(s.reminders))
	for _, r := range s.reminders {
		if filter.Type != "" && r.Type != filter.Type {
			continue
		}
		if !filter.PlantID.IsNil() && r.PlantID != filter.PlantID {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *models.Reminder) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, r *models.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reminders[r.ID]; !ok {
		return fmt.Errorf("care reminder not found: %w", sentinel.ErrNotFound)
	}
	s.reminders[r.ID] = stored(r)
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, reminderID id.ReminderID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reminders[reminderID]; !ok {
		return fmt.Errorf("care reminder not found: %w", sentinel.ErrNotFound)
	}
	delete(s.reminders, reminderID)
	return nil
}

func (s *InMemoryStore) DeleteByPlants(_ context.Context, plantIDs []id.PlantID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for reminderID, r := range s.reminders {
		if slices.Contains(plantIDs, r.PlantID) {
			delete(s.reminders, reminderID)
			n++
		}
	}
	return n, nil
}

func stored(r *models.Reminder) *models.Reminder {
	cp := *r
	cp.PlantName = ""
	return &cp
}

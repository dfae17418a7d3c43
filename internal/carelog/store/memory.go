package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"plantcare/internal/carelog/models"
	id "plantcare/pkg/domain"
	"plantcare/pkg/platform/sentinel"
)

// InMemoryStore stores care logs in memory for tests/dev.
type InMemoryStore struct {
	mu   sync.RWMutex
	logs map[id.CareLogID]*models.CareLog
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{logs: make(map[id.CareLogID]*models.CareLog)}
}

func (s *InMemoryStore) Create(_ context.Context, l *models.CareLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs[l.ID] = stored(l)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, logID id.CareLogID) (*models.CareLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.logs[logID]
	if !ok {
		return nil, fmt.Errorf("care log not found: %w", sentinel.ErrNotFound)
	}
	cp := *l
	return &cp, nil
}

// List returns logs matching the plant and type filters in creation order.
func (s *InMemoryStore) List(_ context.Context, filter models.ListFilter) ([]*models.CareLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.CareLog, 0, len(s.logs))
	for _, l := range s.logs {
		if !filter.PlantID.IsNil() && l.PlantID != filter.PlantID {
			continue
		}
		if filter.Type != "" && l.Type != filter.Type {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *models.CareLog) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, l *models.CareLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.logs[l.ID]; !ok {
		return fmt.Errorf("care log not found: %w", sentinel.ErrNotFound)
	}
	s.logs[l.ID] = stored(l)
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, logID id.CareLogID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.logs[logID]; !ok {
		return fmt.Errorf("care log not found: %w", sentinel.ErrNotFound)
	}
	delete(s.logs, logID)
	return nil
}

func (s *InMemoryStore) DeleteByPlants(_ context.Context, plantIDs []id.PlantID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for logID, l := range s.logs {
		if slices.Contains(plantIDs, l.PlantID) {
			delete(s.logs, logID)
			n++
		}
	}
	return n, nil
}

func stored(l *models.CareLog) *models.CareLog {
	cp := *l
	cp.PlantName = ""
	return &cp
}

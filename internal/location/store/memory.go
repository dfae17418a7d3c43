package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"plantcare/internal/location/models"
	id "plantcare/pkg/domain"
	"plantcare/pkg/platform/sentinel"
)

// InMemoryStore stores locations in memory for tests/dev.
type InMemoryStore struct {
	mu        sync.RWMutex
	locations map[id.LocationID]*models.Location
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{locations: make(map[id.LocationID]*models.Location)}
}

func (s *InMemoryStore) CreateIfNameAvailable(_ context.Context, loc *models.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nameTakenLocked(loc.Name, loc.ID) {
		return fmt.Errorf("location name %q: %w", loc.Name, sentinel.ErrAlreadyUsed)
	}
	cp := *loc
	s.locations[loc.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, locationID id.LocationID) (*models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loc, ok := s.locations[locationID]
	if !ok {
		return nil, fmt.Errorf("location not found: %w", sentinel.ErrNotFound)
	}
	cp := *loc
	return &cp, nil
}

func (s *InMemoryStore) FindByName(_ context.Context, name string) (*models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, loc := range s.locations {
		if strings.EqualFold(loc.Name, name) {
			cp := *loc
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("location not found: %w", sentinel.ErrNotFound)
}

// List returns locations matching the type and sunlight filters, ordered by
// name. The free-text query is applied by the service.
func (s *InMemoryStore) List(_ context.Context, filter models.ListFilter) ([]*models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Location, 0, len(s.locations))
	for _, loc := range s.locations {
		if filter.Type != "" && loc.Type != filter.Type {
			continue
		}
		if filter.Sunlight != "" && loc.Sunlight != filter.Sunlight {
			continue
		}
		cp := *loc
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *models.Location) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, loc *models.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.locations[loc.ID]; !ok {
		return fmt.Errorf("location not found: %w", sentinel.ErrNotFound)
	}
	if s.nameTakenLocked(loc.Name, loc.ID) {
		return fmt.Errorf("location name %q: %w", loc.Name, sentinel.ErrAlreadyUsed)
	}
	cp := *loc
	s.locations[loc.ID] = &cp
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, locationID id.LocationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.locations[locationID]; !ok {
		return fmt.Errorf("location not found: %w", sentinel.ErrNotFound)
	}
	delete(s.locations, locationID)
	return nil
}

func (s *InMemoryStore) nameTakenLocked(name string, self id.LocationID) bool {
	for _, other := range s.locations {
		if other.ID != self && strings.EqualFold(other.Name, name) {
			return true
		}
	}
	return false
}

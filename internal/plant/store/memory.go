package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"plantcare/internal/plant/models"
	id "plantcare/pkg/domain"
	"plantcare/pkg/platform/sentinel"
)

// InMemoryStore stores plants in memory for tests/dev.
type InMemoryStore struct {
	mu     sync.RWMutex
	plants map[id.PlantID]*models.Plant
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{plants: make(map[id.PlantID]*models.Plant)}
}

func (s *InMemoryStore) CreateIfNameAvailable(_ context.Context, p *models.Plant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nameTakenLocked(p.Name, p.ID) {
		return fmt.Errorf("plant name %q: %w", p.Name, sentinel.ErrAlreadyUsed)
	}
	s.plants[p.ID] = stored(p)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, plantID id.PlantID) (*models.Plant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.plants[plantID]
	if !ok {
		return nil, fmt.Errorf("plant not found: %w", sentinel.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (s *InMemoryStore) FindByName(_ context.Context, name string) (*models.Plant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.plants {
		if strings.EqualFold(p.Name, name) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("plant not found: %w", sentinel.ErrNotFound)
}

func (s *InMemoryStore) List(_ context.Context) ([]*models.Plant, error) {
	return s.collect(func(*models.Plant) bool { return true }), nil
}

func (s *InMemoryStore) ListBySpecies(_ context.Context, speciesID id.SpeciesID) ([]*models.Plant, error) {
	return s.collect(func(p *models.Plant) bool { return p.SpeciesID == speciesID }), nil
}

func (s *InMemoryStore) ListByLocation(_ context.Context, locationID id.LocationID) ([]*models.Plant, error) {
	return s.collect(func(p *models.Plant) bool { return p.LocationID == locationID }), nil
}

func (s *InMemoryStore) CountBySpecies(ctx context.Context, speciesID id.SpeciesID) (int, error) {
	list, _ := s.ListBySpecies(ctx, speciesID)
	return len(list), nil
}

func (s *InMemoryStore) CountByLocation(ctx context.Context, locationID id.LocationID) (int, error) {
	list, _ := s.ListByLocation(ctx, locationID)
	return len(list), nil
}

func (s *InMemoryStore) Update(_ context.Context, p *models.Plant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plants[p.ID]; !ok {
		return fmt.Errorf("plant not found: %w", sentinel.ErrNotFound)
	}
	if s.nameTakenLocked(p.Name, p.ID) {
		return fmt.Errorf("plant name %q: %w", p.Name, sentinel.ErrAlreadyUsed)
	}
	s.plants[p.ID] = stored(p)
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, plantID id.PlantID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plants[plantID]; !ok {
		return fmt.Errorf("plant not found: %w", sentinel.ErrNotFound)
	}
	delete(s.plants, plantID)
	return nil
}

// DeleteAll removes every plant and returns how many were removed.
func (s *InMemoryStore) DeleteAll(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.plants)
	s.plants = make(map[id.PlantID]*models.Plant)
	return n, nil
}

func (s *InMemoryStore) collect(keep func(*models.Plant) bool) []*models.Plant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Plant, 0, len(s.plants))
	for _, p := range s.plants {
		if keep(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *models.Plant) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return out
}

func (s *InMemoryStore) nameTakenLocked(name string, self id.PlantID) bool {
	for _, other := range s.plants {
		if other.ID != self && strings.EqualFold(other.Name, name) {
			return true
		}
	}
	return false
}

// stored drops the derived display names.
func stored(p *models.Plant) *models.Plant {
	cp := *p
	cp.SpeciesName = ""
	cp.LocationName = ""
	return &cp
}

package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"plantcare/internal/species/models"
	id "plantcare/pkg/domain"
	"plantcare/pkg/platform/sentinel"
)

// Error Contract:
// - ErrNotFound when the species does not exist
// - ErrAlreadyUsed when another species already has the name (case-insensitive)

// InMemoryStore stores species in memory for tests/dev.
type InMemoryStore struct {
	mu      sync.RWMutex
	species map[id.SpeciesID]*models.Species
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{species: make(map[id.SpeciesID]*models.Species)}
}

func (s *InMemoryStore) CreateIfNameAvailable(_ context.Context, sp *models.Species) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nameTakenLocked(sp.Name, sp.ID) {
		return fmt.Errorf("species name %q: %w", sp.Name, sentinel.ErrAlreadyUsed)
	}
	cp := *sp
	s.species[sp.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, speciesID id.SpeciesID) (*models.Species, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sp, ok := s.species[speciesID]
	if !ok {
		return nil, fmt.Errorf("species not found: %w", sentinel.ErrNotFound)
	}
	cp := *sp
	return &cp, nil
}

func (s *InMemoryStore) FindByName(_ context.Context, name string) (*models.Species, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sp := range s.species {
		if strings.EqualFold(sp.Name, name) {
			cp := *sp
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("species not found: %w", sentinel.ErrNotFound)
}

// List returns all species ordered by name.
func (s *InMemoryStore) List(_ context.Context) ([]*models.Species, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Species, 0, len(s.species))
	for _, sp := range s.species {
		cp := *sp
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *models.Species) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, sp *models.Species) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.species[sp.ID]; !ok {
		return fmt.Errorf("species not found: %w", sentinel.ErrNotFound)
	}
	if s.nameTakenLocked(sp.Name, sp.ID) {
		return fmt.Errorf("species name %q: %w", sp.Name, sentinel.ErrAlreadyUsed)
	}
	cp := *sp
	s.species[sp.ID] = &cp
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, speciesID id.SpeciesID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.species[speciesID]; !ok {
		return fmt.Errorf("species not found: %w", sentinel.ErrNotFound)
	}
	delete(s.species, speciesID)
	return nil
}

func (s *InMemoryStore) nameTakenLocked(name string, self id.SpeciesID) bool {
	for _, other := range s.species {
		if other.ID != self && strings.EqualFold(other.Name, name) {
			return true
		}
	}
	return false
}

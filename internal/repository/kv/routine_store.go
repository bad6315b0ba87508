package kv

import (
	"alcyxob/gym-buddy/internal/domain"
	"alcyxob/gym-buddy/internal/repository"
	"context"
	"errors"
)

// routineStore implements repository.RoutineRepository
type routineStore struct {
	routines *collection[domain.Routine]
}

// NewRoutineStore loads the routine collection from the given store.
func NewRoutineStore(ctx context.Context, store repository.KVStore) (repository.RoutineRepository, error) {
	c, err := openCollection[domain.Routine](ctx, store, RoutinesKey, routineMigrations)
	if err != nil {
		return nil, err
	}
	return &routineStore{routines: c}, nil
}

// List returns the routines in creation order.
func (s *routineStore) List(ctx context.Context) ([]domain.Routine, error) {
	items := s.routines.snapshot()
	for i := range items {
		items[i] = items[i].Clone()
	}
	return items, nil
}

// GetByID retrieves a single routine.
func (s *routineStore) GetByID(ctx context.Context, id string) (*domain.Routine, error) {
	for _, r := range s.routines.snapshot() {
		if r.ID == id {
			found := r.Clone()
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Create appends a routine. ID and name must already be set by the service.
func (s *routineStore) Create(ctx context.Context, routine *domain.Routine) error {
	if routine.ID == "" || routine.Name == "" {
		return errors.New("routine requires id and name")
	}
	stored := routine.Clone()
	return s.routines.update(ctx, func(current []domain.Routine) ([]domain.Routine, error) {
		return append(current, stored), nil
	})
}

// Delete removes a routine. Logs that point at it keep their snapshot.
func (s *routineStore) Delete(ctx context.Context, id string) error {
	return s.routines.update(ctx, func(current []domain.Routine) ([]domain.Routine, error) {
		for i, r := range current {
			if r.ID == id {
				return append(current[:i], current[i+1:]...), nil
			}
		}
		return nil, repository.ErrNotFound
	})
}

package kv

import (
	"alcyxob/gym-buddy/internal/domain"
	"alcyxob/gym-buddy/internal/repository"
	"context"
	"errors"
)

// logStore implements repository.LogRepository
type logStore struct {
	logs *collection[domain.LogEntry]
}

// NewLogStore loads the history collection from the given store.
func NewLogStore(ctx context.Context, store repository.KVStore) (repository.LogRepository, error) {
	c, err := openCollection[domain.LogEntry](ctx, store, LogsKey, logMigrations)
	if err != nil {
		return nil, err
	}
	return &logStore{logs: c}, nil
}

// List returns the history, most recent first.
func (s *logStore) List(ctx context.Context) ([]domain.LogEntry, error) {
	items := s.logs.snapshot()
	for i := range items {
		items[i] = cloneLog(items[i])
	}
	return items, nil
}

// GetByID retrieves a single log entry.
func (s *logStore) GetByID(ctx context.Context, id string) (*domain.LogEntry, error) {
	for _, entry := range s.logs.snapshot() {
		if entry.ID == id {
			found := cloneLog(entry)
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Prepend stores a finished session at the head of the history.
func (s *logStore) Prepend(ctx context.Context, entry *domain.LogEntry) error {
	if entry.ID == "" {
		return errors.New("log entry requires id")
	}
	stored := cloneLog(*entry)
	return s.logs.update(ctx, func(current []domain.LogEntry) ([]domain.LogEntry, error) {
		next := make([]domain.LogEntry, 0, len(current)+1)
		next = append(next, stored)
		return append(next, current...), nil
	})
}

func cloneLog(entry domain.LogEntry) domain.LogEntry {
	entry.Entries = entry.Entries.Clone()
	entry.Exercises = domain.CloneExercises(entry.Exercises)
	return entry
}

package service_test

import (
	"context"
	"errors"

	"alcyxob/gym-buddy/internal/domain"
	"alcyxob/gym-buddy/internal/repository"
)

type mockState int

const (
	stateSuccess mockState = iota
	stateDBError
	stateNotFound
)

var errDB = errors.New("db error")

// routineRepoMock records what was created and answers by state.
type routineRepoMock struct {
	state   mockState
	created []domain.Routine
	deleted []string
}

func (m *routineRepoMock) List(ctx context.Context) ([]domain.Routine, error) {
	switch m.state {
	case stateDBError:
		return nil, errDB
	default:
		return m.created, nil
	}
}

func (m *routineRepoMock) GetByID(ctx context.Context, id string) (*domain.Routine, error) {
	switch m.state {
	case stateDBError:
		return nil, errDB
	case stateNotFound:
		return nil, repository.ErrNotFound
	default:
		for _, r := range m.created {
			if r.ID == id {
				cp := r.Clone()
				return &cp, nil
			}
		}
		return nil, repository.ErrNotFound
	}
}

func (m *routineRepoMock) Create(ctx context.Context, routine *domain.Routine) error {
	switch m.state {
	case stateDBError:
		return errDB
	default:
		m.created = append(m.created, routine.Clone())
		return nil
	}
}

func (m *routineRepoMock) Delete(ctx context.Context, id string) error {
	switch m.state {
	case stateDBError:
		return errDB
	case stateNotFound:
		return repository.ErrNotFound
	default:
		m.deleted = append(m.deleted, id)
		return nil
	}
}

// logRepoMock keeps entries newest first.
type logRepoMock struct {
	state   mockState
	entries []domain.LogEntry
}

func (m *logRepoMock) List(ctx context.Context) ([]domain.LogEntry, error) {
	if m.state == stateDBError {
		return nil, errDB
	}
	return m.entries, nil
}

func (m *logRepoMock) GetByID(ctx context.Context, id string) (*domain.LogEntry, error) {
	switch m.state {
	case stateDBError:
		return nil, errDB
	default:
		for _, e := range m.entries {
			if e.ID == id {
				cp := e
				return &cp, nil
			}
		}
		return nil, repository.ErrNotFound
	}
}

func (m *logRepoMock) Prepend(ctx context.Context, entry *domain.LogEntry) error {
	if m.state == stateDBError {
		return errDB
	}
	m.entries = append([]domain.LogEntry{*entry}, m.entries...)
	return nil
}

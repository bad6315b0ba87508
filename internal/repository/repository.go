package repository

import (
	"alcyxob/gym-buddy/internal/domain" // Import our defined domain models
	"context"
)

// Error constants for repository layer
var (
	ErrNotFound          = RepositoryError("not found")
	ErrUnsupportedSchema = RepositoryError("unsupported schema version")
	ErrCorruptRecord     = RepositoryError("stored record could not be decoded")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// KVStore is the persistence contract every backend implements: a flat map of
// named text records. A missing key is reported with found == false, not an error.
type KVStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// RoutineRepository defines the interface for the ordered routine collection.
type RoutineRepository interface {
	List(ctx context.Context) ([]domain.Routine, error)
	GetByID(ctx context.Context, id string) (*domain.Routine, error)
	Create(ctx context.Context, routine *domain.Routine) error // Appends to the end of the list
	Delete(ctx context.Context, id string) error
}

// LogRepository defines the interface for the session history.
// List order is most recent first; that order is what the history view shows.
type LogRepository interface {
	List(ctx context.Context) ([]domain.LogEntry, error)
	GetByID(ctx context.Context, id string) (*domain.LogEntry, error)
	Prepend(ctx context.Context, entry *domain.LogEntry) error
}

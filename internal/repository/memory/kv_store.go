// Package memory provides a process-local KVStore. Nothing survives a restart;
// it backs tests and the "memory" storage driver.
package memory

import (
	"alcyxob/gym-buddy/internal/repository"
	"context"
	"sync"
)

type kvStore struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ repository.KVStore = (*kvStore)(nil)

// NewKVStore creates an empty in-memory store.
func NewKVStore() repository.KVStore {
	return &kvStore{values: make(map[string]string)}
}

func (s *kvStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *kvStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

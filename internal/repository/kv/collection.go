package kv

import (
	"alcyxob/gym-buddy/internal/repository"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
)

// collection is one ordered list persisted under a single key.
// It is read from the store once, when opened; every change re-serializes the
// whole list. The in-memory copy only changes after the write succeeded, so a
// failed write leaves both sides as they were.
type collection[T any] struct {
	mu    sync.RWMutex
	store repository.KVStore
	key   string
	items []T
}

func openCollection[T any](ctx context.Context, store repository.KVStore, key string, migrations map[int]Migration) (*collection[T], error) {
	c := &collection[T]{store: store, key: key}

	raw, found, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !found {
		c.items = []T{}
		return c, nil
	}

	itemsRaw, migrated, err := decodeEnvelope(raw, migrations)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(itemsRaw, &c.items); err != nil {
		return nil, fmt.Errorf("load %s: %w: %v", key, repository.ErrCorruptRecord, err)
	}
	if c.items == nil {
		c.items = []T{}
	}

	if migrated {
		log.Printf("INFO: Migrated record '%s' to schema version %d", key, CurrentSchemaVersion)
		if err := c.write(ctx, c.items); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// snapshot returns a copy of the list header; element values are copied by the caller as needed.
func (c *collection[T]) snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// update computes the next list from the current one and persists it.
func (c *collection[T]) update(ctx context.Context, next func(current []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := make([]T, len(c.items))
	copy(current, c.items)
	items, err := next(current)
	if err != nil {
		return err
	}
	if err := c.write(ctx, items); err != nil {
		return err
	}
	c.items = items
	return nil
}

func (c *collection[T]) write(ctx context.Context, items []T) error {
	text, err := encodeEnvelope(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, text); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}

// Package kv implements the routine and log collections on top of a
// repository.KVStore. Each collection is one record holding a versioned JSON
// envelope; older layouts are migrated forward when the record is loaded.
package kv

import (
	"alcyxob/gym-buddy/internal/repository"
	"bytes"
	"encoding/json"
	"fmt"
)

// Record keys. They match the keys the browser build of the app wrote to
// localStorage, so an exported localStorage dump can be loaded as-is.
const (
	RoutinesKey = "gymBuddy_workouts"
	LogsKey     = "gymBuddy_logs"
)

// CurrentSchemaVersion is the envelope version this build writes.
const CurrentSchemaVersion = 1

// envelope is the stored shape of a collection.
type envelope struct {
	SchemaVersion int             `json:"schemaVersion"`
	Items         json.RawMessage `json:"items"`
}

// Migration rewrites the items of schema version N into version N+1.
type Migration func(items json.RawMessage) (json.RawMessage, error)

// decodeEnvelope parses stored text and runs the migrations needed to reach
// CurrentSchemaVersion. A bare JSON array is schema version 0.
// migrated reports whether any step ran, so the caller can write the result back.
func decodeEnvelope(raw string, migrations map[int]Migration) (items json.RawMessage, migrated bool, err error) {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 {
		return json.RawMessage("[]"), false, nil
	}

	var env envelope
	if trimmed[0] == '[' {
		env = envelope{SchemaVersion: 0, Items: trimmed}
	} else if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, false, fmt.Errorf("%w: %v", repository.ErrCorruptRecord, err)
	}

	if env.SchemaVersion > CurrentSchemaVersion || env.SchemaVersion < 0 {
		return nil, false, fmt.Errorf("%w: %d (this build reads up to %d)", repository.ErrUnsupportedSchema, env.SchemaVersion, CurrentSchemaVersion)
	}
	if len(env.Items) == 0 || string(env.Items) == "null" {
		env.Items = json.RawMessage("[]")
	}

	for v := env.SchemaVersion; v < CurrentSchemaVersion; v++ {
		step, ok := migrations[v]
		if !ok {
			return nil, false, fmt.Errorf("%w: no migration from version %d", repository.ErrUnsupportedSchema, v)
		}
		env.Items, err = step(env.Items)
		if err != nil {
			return nil, false, fmt.Errorf("migrate from version %d: %w", v, err)
		}
		migrated = true
	}
	return env.Items, migrated, nil
}

// encodeEnvelope serializes items under the current schema version.
func encodeEnvelope(items any) (string, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	out, err := json.Marshal(envelope{SchemaVersion: CurrentSchemaVersion, Items: raw})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

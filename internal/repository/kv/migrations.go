package kv

import (
	"alcyxob/gym-buddy/internal/repository"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
)

// routineMigrations: the version 0 routine layout matches version 1, but the
// browser build minted exercise ids from the clock and could repeat them.
var routineMigrations = map[int]Migration{
	0: rekeyDuplicateExercises,
}

// logMigrations: version 0 logs (browser build) used workout-centric field names.
var logMigrations = map[int]Migration{
	0: renameFields(map[string]string{
		"workoutId":   "routineId",
		"workoutName": "routineName",
		"duration":    "durationMs",
		"sessionData": "entries",
	}),
}

// renameFields returns a migration that renames top-level keys of every item.
// A key that already exists under its new name is left alone.
func renameFields(renames map[string]string) Migration {
	return func(items json.RawMessage) (json.RawMessage, error) {
		var objs []map[string]json.RawMessage
		if err := json.Unmarshal(items, &objs); err != nil {
			return nil, fmt.Errorf("%w: %v", repository.ErrCorruptRecord, err)
		}
		for _, obj := range objs {
			for from, to := range renames {
				val, ok := obj[from]
				if !ok {
					continue
				}
				delete(obj, from)
				if _, exists := obj[to]; !exists {
					obj[to] = val
				}
			}
		}
		return json.Marshal(objs)
	}
}

// rekeyDuplicateExercises gives every exercise of a routine a distinct id.
// The first holder keeps its id; later ones get the first free "<id>-N", N >= 2.
func rekeyDuplicateExercises(items json.RawMessage) (json.RawMessage, error) {
	var routines []map[string]json.RawMessage
	if err := json.Unmarshal(items, &routines); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrCorruptRecord, err)
	}
	for _, routine := range routines {
		raw, ok := routine["exercises"]
		if !ok {
			continue
		}
		var exercises []map[string]json.RawMessage
		if err := json.Unmarshal(raw, &exercises); err != nil {
			return nil, fmt.Errorf("%w: %v", repository.ErrCorruptRecord, err)
		}

		ids := make([]string, len(exercises))
		taken := make(map[string]bool, len(exercises))
		for i, ex := range exercises {
			rawID, ok := ex["id"]
			if !ok {
				continue
			}
			if err := json.Unmarshal(rawID, &ids[i]); err != nil {
				return nil, fmt.Errorf("%w: exercise id: %v", repository.ErrCorruptRecord, err)
			}
			taken[ids[i]] = true
		}

		kept := make(map[string]bool, len(exercises))
		changed := false
		for i, ex := range exercises {
			id := ids[i]
			if _, ok := ex["id"]; !ok {
				continue
			}
			if !kept[id] {
				kept[id] = true
				continue
			}
			next := id
			for n := 2; taken[next]; n++ {
				next = id + "-" + strconv.Itoa(n)
			}
			taken[next] = true
			kept[next] = true
			ex["id"], _ = json.Marshal(next)
			changed = true
			log.Printf("WARN: Exercise id %q repeated in routine %s, re-keyed to %q", id, routine["id"], next)
		}
		if changed {
			out, err := json.Marshal(exercises)
			if err != nil {
				return nil, err
			}
			routine["exercises"] = out
		}
	}
	return json.Marshal(routines)
}

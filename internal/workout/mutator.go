package workout

import (
	"fmt"

	"alcyxob/gym-buddy/internal/domain"
)

// UpdateSet returns a copy of the session with one field of one set replaced.
// The input session is left untouched; only the targeted sequence is copied,
// the other exercises' sequences are shared with the input.
func UpdateSet(s domain.Session, exerciseID string, setIndex int, field domain.SetField, value string) (domain.Session, error) {
	if !field.Valid() {
		return s, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	sets, ok := s.Entries[exerciseID]
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrUnknownExercise, exerciseID)
	}
	if setIndex < 0 || setIndex >= len(sets) {
		return s, fmt.Errorf("%w: %d (exercise has %d sets)", ErrSetOutOfRange, setIndex, len(sets))
	}

	updated := make([]domain.SetEntry, len(sets))
	copy(updated, sets)
	switch field {
	case domain.FieldWeight:
		updated[setIndex].Weight = value
	case domain.FieldReps:
		updated[setIndex].Reps = value
	}

	return withSets(s, exerciseID, updated), nil
}

// AddSet returns a copy of the session with one empty set appended to the exercise.
func AddSet(s domain.Session, exerciseID string) (domain.Session, error) {
	sets, ok := s.Entries[exerciseID]
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrUnknownExercise, exerciseID)
	}

	grown := make([]domain.SetEntry, len(sets), len(sets)+1)
	copy(grown, sets)
	grown = append(grown, domain.SetEntry{})

	return withSets(s, exerciseID, grown), nil
}

func withSets(s domain.Session, exerciseID string, sets []domain.SetEntry) domain.Session {
	entries := make(domain.SessionEntries, len(s.Entries))
	for id, seq := range s.Entries {
		entries[id] = seq
	}
	entries[exerciseID] = sets
	s.Entries = entries
	return s
}

// Package workout holds the session and log model: building a session from a
// routine, editing its sets, freezing it into a log entry and summarizing logs.
// Everything here is pure; persistence lives in the service layer.
package workout

import (
	"fmt"
	"time"

	"alcyxob/gym-buddy/internal/domain"
)

// StartSession builds the in-progress session for a routine.
// Each exercise gets ParseSetCount(sets) empty set entries, at most MaxSetCount,
// every entry its own value. Exercise ids must be unique within the routine.
func StartSession(routine domain.Routine, now time.Time) (domain.Session, error) {
	if !routine.Startable() {
		return domain.Session{}, ErrEmptyRoutine
	}

	entries := make(domain.SessionEntries, len(routine.Exercises))
	for _, ex := range routine.Exercises {
		if _, dup := entries[ex.ID]; dup {
			return domain.Session{}, fmt.Errorf("%w: %q", ErrDuplicateExercise, ex.ID)
		}
		entries[ex.ID] = make([]domain.SetEntry, min(ParseSetCount(ex.Sets), MaxSetCount))
	}

	return domain.Session{
		Routine:   routine.Clone(),
		StartedAt: now,
		Entries:   entries,
	}, nil
}

// internal/domain/session.go
package domain

import "time"

// SetField names one of the two editable values of a SetEntry.
type SetField string

const (
	FieldWeight SetField = "weight"
	FieldReps   SetField = "reps"
)

// Valid reports whether f is a known field.
func (f SetField) Valid() bool {
	return f == FieldWeight || f == FieldReps
}

// SetEntry is one recorded (or still empty) set.
type SetEntry struct {
	Weight string `bson:"weight" json:"weight"`
	Reps   string `bson:"reps" json:"reps"`
}

// SessionEntries maps Exercise.ID to the ordered sets logged for it.
type SessionEntries map[string][]SetEntry

// Clone returns a deep copy: a new map with new backing arrays.
func (e SessionEntries) Clone() SessionEntries {
	out := make(SessionEntries, len(e))
	for id, sets := range e {
		cp := make([]SetEntry, len(sets))
		copy(cp, sets)
		out[id] = cp
	}
	return out
}

// Session is an in-progress run of a routine. It is never persisted;
// finishing it produces a LogEntry, cancelling it drops it.
type Session struct {
	Routine   Routine        `json:"routine"` // Copy taken at start, not a live reference
	StartedAt time.Time      `json:"startedAt"`
	Entries   SessionEntries `json:"entries"`
}

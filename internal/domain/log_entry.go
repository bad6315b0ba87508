// internal/domain/log_entry.go
package domain

import "time"

// Rating bounds for a finished session.
const (
	MinRating = 0
	MaxRating = 5
)

// LogEntry is the immutable record of a finished session.
// Exercises is a snapshot of the routine at session time, so the entry stays
// readable after the routine is deleted.
type LogEntry struct {
	ID          string         `bson:"id" json:"id"`
	RoutineID   string         `bson:"routineId" json:"routineId"` // May dangle once the routine is deleted
	RoutineName string         `bson:"routineName" json:"routineName"`
	Date        time.Time      `bson:"date" json:"date"` // Completion time (UTC)
	DurationMs  int64          `bson:"durationMs" json:"durationMs"`
	Rating      int            `bson:"rating" json:"rating"`
	Comment     string         `bson:"comment,omitempty" json:"comment,omitempty"`
	Entries     SessionEntries `bson:"entries" json:"entries"`
	Exercises   []Exercise     `bson:"exercises" json:"exercises"`
}

// ExerciseSummary is the per-exercise line shown on a history card.
type ExerciseSummary struct {
	ExerciseID string    `json:"exerciseId"`
	Name       string    `json:"name"`
	SetCount   int       `json:"setCount"`
	BestWeight string    `json:"bestWeight"` // "0" when no set has a weight
	BestSet    *SetEntry `json:"bestSet,omitempty"`
}

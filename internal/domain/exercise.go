// internal/domain/exercise.go
package domain

// Exercise is one line of a routine: what to do and the target volume.
// Sets and Reps are kept as the text the user typed ("3", "8-12").
type Exercise struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
	Sets string `bson:"sets" json:"sets"` // Target set count, parsed leniently when a session starts
	Reps string `bson:"reps" json:"reps"` // Free-form target, e.g. "5" or "8-12"
}

// CloneExercises returns a value copy of the given exercise list.
// A nil input yields an empty (non-nil) slice so snapshots always serialize as [].
func CloneExercises(exercises []Exercise) []Exercise {
	out := make([]Exercise, len(exercises))
	copy(out, exercises)
	return out
}

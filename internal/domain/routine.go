// internal/domain/routine.go
package domain

// Routine is a user-defined workout template.
// Routines are created and deleted, never edited in place.
type Routine struct {
	ID          string     `bson:"id" json:"id"`
	Name        string     `bson:"name" json:"name"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	Exercises   []Exercise `bson:"exercises" json:"exercises"`
}

// Startable reports whether a session can be started from this routine.
func (r *Routine) Startable() bool {
	return len(r.Exercises) > 0
}

// Clone returns a deep copy of the routine.
func (r Routine) Clone() Routine {
	r.Exercises = CloneExercises(r.Exercises)
	return r
}

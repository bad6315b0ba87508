package workout

import (
	"time"

	"alcyxob/gym-buddy/internal/domain"
)

// FinishSession freezes a session into a log entry.
// Rating is clamped to [MinRating, MaxRating] and a negative duration (clock
// moved backwards) is stored as 0. Entries and exercises are deep copies, so
// nothing done to the session or its routine afterwards shows up in the log.
func FinishSession(s domain.Session, rating int, comment string, now time.Time, newID func() string) domain.LogEntry {
	duration := now.Sub(s.StartedAt).Milliseconds()
	if duration < 0 {
		duration = 0
	}

	return domain.LogEntry{
		ID:          newID(),
		RoutineID:   s.Routine.ID,
		RoutineName: s.Routine.Name,
		Date:        now.UTC(),
		DurationMs:  duration,
		Rating:      ClampRating(rating),
		Comment:     comment,
		Entries:     s.Entries.Clone(),
		Exercises:   domain.CloneExercises(s.Routine.Exercises),
	}
}

// ClampRating forces a rating into the accepted range.
func ClampRating(rating int) int {
	switch {
	case rating < domain.MinRating:
		return domain.MinRating
	case rating > domain.MaxRating:
		return domain.MaxRating
	}
	return rating
}

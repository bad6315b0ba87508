package workout_test

import (
	"fmt"
	"strconv"
	"testing"
	"time"

	"pgregory.net/rapid"

	"alcyxob/gym-buddy/internal/domain"
	"alcyxob/gym-buddy/internal/workout"
)

func routineGen() *rapid.Generator[domain.Routine] {
	return rapid.Custom(func(t *rapid.T) domain.Routine {
		n := rapid.IntRange(1, 6).Draw(t, "exercises")
		exercises := make([]domain.Exercise, n)
		for i := range exercises {
			exercises[i] = domain.Exercise{
				ID:   fmt.Sprintf("ex-%d", i),
				Name: rapid.StringMatching(`[A-Z][a-z]{2,10}`).Draw(t, "name"),
				Sets: rapid.OneOf(
					rapid.StringMatching(`-?[0-9]{1,2}`),
					rapid.StringMatching(`[a-z ]{0,4}`),
				).Draw(t, "sets"),
				Reps: rapid.StringMatching(`[0-9]{1,2}(-[0-9]{1,2})?`).Draw(t, "reps"),
			}
		}
		return domain.Routine{ID: "r", Name: "Generated", Exercises: exercises}
	})
}

func expectedSets(text string) int {
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// TestStartSession_Shape checks key count and per-exercise length for any startable routine.
func TestStartSession_Shape(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := routineGen().Draw(rt, "routine")
		s, err := workout.StartSession(r, time.Now())
		if err != nil {
			rt.Fatalf("start: %v", err)
		}
		if len(s.Entries) != len(r.Exercises) {
			rt.Fatalf("got %d keys, want %d", len(s.Entries), len(r.Exercises))
		}
		for _, ex := range r.Exercises {
			if got, want := len(s.Entries[ex.ID]), expectedSets(ex.Sets); got != want {
				rt.Fatalf("exercise %s sets=%q: got %d rows, want %d", ex.ID, ex.Sets, got, want)
			}
		}
	})
}

// TestMutations_AreLocal applies random edits and set additions and checks that
// every operation touches exactly its target.
func TestMutations_AreLocal(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := routineGen().Draw(rt, "routine")
		s, err := workout.StartSession(r, time.Now())
		if err != nil {
			rt.Fatalf("start: %v", err)
		}

		steps := rapid.IntRange(1, 30).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			ex := r.Exercises[rapid.IntRange(0, len(r.Exercises)-1).Draw(rt, "exercise")]
			before := s.Entries.Clone()

			if rapid.Bool().Draw(rt, "addSet") {
				s, err = workout.AddSet(s, ex.ID)
				if err != nil {
					rt.Fatalf("add set: %v", err)
				}
				if len(s.Entries[ex.ID]) != len(before[ex.ID])+1 {
					rt.Fatalf("add set changed length by %d", len(s.Entries[ex.ID])-len(before[ex.ID]))
				}
				assertOthersUnchanged(rt, before, s.Entries, ex.ID, -1)
				continue
			}

			idx := rapid.IntRange(0, len(before[ex.ID])-1).Draw(rt, "set")
			field := rapid.SampledFrom([]domain.SetField{domain.FieldWeight, domain.FieldReps}).Draw(rt, "field")
			value := rapid.StringMatching(`[0-9]{0,3}`).Draw(rt, "value")
			s, err = workout.UpdateSet(s, ex.ID, idx, field, value)
			if err != nil {
				rt.Fatalf("update set: %v", err)
			}
			assertOthersUnchanged(rt, before, s.Entries, ex.ID, idx)
		}
	})
}

func assertOthersUnchanged(rt *rapid.T, before, after domain.SessionEntries, exerciseID string, setIndex int) {
	for id, sets := range before {
		for i, set := range sets {
			if id == exerciseID && i == setIndex {
				continue
			}
			if after[id][i] != set {
				rt.Fatalf("exercise %s set %d changed: %+v -> %+v", id, i, set, after[id][i])
			}
		}
		if id != exerciseID && len(after[id]) != len(sets) {
			rt.Fatalf("exercise %s length changed", id)
		}
	}
}

// TestFinishSession_SnapshotIsolation mutates the source routine after starting
// and checks the log still reflects the routine as it was at start.
func TestFinishSession_SnapshotIsolation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := routineGen().Draw(rt, "routine")
		original := r.Clone()

		s, err := workout.StartSession(r, time.Now())
		if err != nil {
			rt.Fatalf("start: %v", err)
		}
		for i := range r.Exercises {
			r.Exercises[i].Name = "mutated"
			r.Exercises[i].Sets = "99"
		}
		r.Exercises = r.Exercises[:0]

		entry := workout.FinishSession(s, rapid.IntRange(-10, 10).Draw(rt, "rating"), "", time.Now(), func() string { return "id" })
		if len(entry.Exercises) != len(original.Exercises) {
			rt.Fatalf("snapshot has %d exercises, want %d", len(entry.Exercises), len(original.Exercises))
		}
		for i := range original.Exercises {
			if entry.Exercises[i] != original.Exercises[i] {
				rt.Fatalf("exercise %d: got %+v, want %+v", i, entry.Exercises[i], original.Exercises[i])
			}
		}
		if entry.Rating < domain.MinRating || entry.Rating > domain.MaxRating {
			rt.Fatalf("rating %d out of range", entry.Rating)
		}
	})
}

package workout

import "alcyxob/gym-buddy/internal/domain"

// BestSet returns the heaviest set logged for an exercise.
// Weights are compared with ParseWeight and a strict greater-than, so on a tie
// the first set wins. ok is false when the exercise has no sets in the log.
func BestSet(entry domain.LogEntry, exerciseID string) (best domain.SetEntry, ok bool) {
	sets := entry.Entries[exerciseID]
	if len(sets) == 0 {
		return domain.SetEntry{}, false
	}

	best = sets[0]
	bestWeight := ParseWeight(best.Weight)
	for _, set := range sets[1:] {
		if w := ParseWeight(set.Weight); w > bestWeight {
			best, bestWeight = set, w
		}
	}
	return best, true
}

// Summarize builds the history card lines of a log entry, in snapshot order.
// Exercises without logged sets are skipped. BestWeight stays "0" unless the
// best set has a positive weight.
func Summarize(entry domain.LogEntry) []domain.ExerciseSummary {
	summaries := make([]domain.ExerciseSummary, 0, len(entry.Exercises))
	for _, ex := range entry.Exercises {
		sets, found := entry.Entries[ex.ID]
		if !found {
			continue
		}
		summary := domain.ExerciseSummary{
			ExerciseID: ex.ID,
			Name:       ex.Name,
			SetCount:   len(sets),
			BestWeight: "0",
		}
		if best, ok := BestSet(entry, ex.ID); ok {
			b := best
			summary.BestSet = &b
			if ParseWeight(best.Weight) > 0 {
				summary.BestWeight = best.Weight
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

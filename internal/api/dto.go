package api

import (
	"alcyxob/gym-buddy/internal/controller"
	"alcyxob/gym-buddy/internal/domain"
	"alcyxob/gym-buddy/internal/service"
	"time"
)

// --- DTOs for API (Data Transfer Objects) ---

// DraftDetailsRequest sets the name and description of the routine being created.
type DraftDetailsRequest struct {
	Name        string `json:"name" binding:"max=100"`
	Description string `json:"description" binding:"max=500"`
}

// DraftExerciseRequest adds one exercise to the draft.
type DraftExerciseRequest struct {
	Name string `json:"name" binding:"required"`
	Sets string `json:"sets"`
	Reps string `json:"reps"`
}

// UpdateSetRequest changes the weight or reps of one set.
type UpdateSetRequest struct {
	Field string `json:"field" binding:"required,oneof=weight reps"`
	Value string `json:"value"`
}

// FinishFormRequest updates the rating and/or comment; absent fields are left alone.
type FinishFormRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// HistoryQuery is the query string of GET /history.
type HistoryQuery struct {
	Limit int `form:"limit" binding:"min=0"`
}

type ExerciseResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Sets string `json:"sets"`
	Reps string `json:"reps"`
}

type RoutineResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Exercises   []ExerciseResponse `json:"exercises"`
}

type SetResponse struct {
	Weight string `json:"weight"`
	Reps   string `json:"reps"`
}

type ExerciseSummaryResponse struct {
	ExerciseID string       `json:"exerciseId"`
	Name       string       `json:"name"`
	SetCount   int          `json:"setCount"`
	BestWeight string       `json:"bestWeight"`
	BestSet    *SetResponse `json:"bestSet,omitempty"`
}

// LogResponse is one history card.
type LogResponse struct {
	ID          string                    `json:"id"`
	RoutineID   string                    `json:"routineId"`
	RoutineName string                    `json:"routineName"`
	Date        time.Time                 `json:"date"`
	DurationMs  int64                     `json:"durationMs"`
	Rating      int                       `json:"rating"`
	Comment     string                    `json:"comment,omitempty"`
	Entries     map[string][]SetResponse  `json:"entries"`
	Exercises   []ExerciseResponse        `json:"exercises"`
	Summary     []ExerciseSummaryResponse `json:"summary"`
}

// RoutineCreatedResponse is returned when the draft is saved.
type RoutineCreatedResponse struct {
	Routine RoutineResponse     `json:"routine"`
	State   controller.Snapshot `json:"state"`
}

// LogSavedResponse is returned when a finished session is saved.
type LogSavedResponse struct {
	Log   LogResponse         `json:"log"`
	State controller.Snapshot `json:"state"`
}

func mapExercises(exercises []domain.Exercise) []ExerciseResponse {
	out := make([]ExerciseResponse, len(exercises))
	for i, ex := range exercises {
		out[i] = ExerciseResponse{ID: ex.ID, Name: ex.Name, Sets: ex.Sets, Reps: ex.Reps}
	}
	return out
}

// MapRoutineToResponse converts a domain.Routine to RoutineResponse DTO.
func MapRoutineToResponse(r *domain.Routine) RoutineResponse {
	if r == nil {
		return RoutineResponse{}
	}
	return RoutineResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Exercises:   mapExercises(r.Exercises),
	}
}

func MapRoutinesToResponse(routines []domain.Routine) []RoutineResponse {
	out := make([]RoutineResponse, len(routines))
	for i := range routines {
		out[i] = MapRoutineToResponse(&routines[i])
	}
	return out
}

func mapSet(s domain.SetEntry) SetResponse {
	return SetResponse{Weight: s.Weight, Reps: s.Reps}
}

// MapLogToResponse converts a log entry plus its summaries to LogResponse DTO.
func MapLogToResponse(entry domain.LogEntry, summaries []domain.ExerciseSummary) LogResponse {
	entries := make(map[string][]SetResponse, len(entry.Entries))
	for id, sets := range entry.Entries {
		mapped := make([]SetResponse, len(sets))
		for i, s := range sets {
			mapped[i] = mapSet(s)
		}
		entries[id] = mapped
	}

	summary := make([]ExerciseSummaryResponse, len(summaries))
	for i, s := range summaries {
		summary[i] = ExerciseSummaryResponse{
			ExerciseID: s.ExerciseID,
			Name:       s.Name,
			SetCount:   s.SetCount,
			BestWeight: s.BestWeight,
		}
		if s.BestSet != nil {
			best := mapSet(*s.BestSet)
			summary[i].BestSet = &best
		}
	}

	return LogResponse{
		ID:          entry.ID,
		RoutineID:   entry.RoutineID,
		RoutineName: entry.RoutineName,
		Date:        entry.Date,
		DurationMs:  entry.DurationMs,
		Rating:      entry.Rating,
		Comment:     entry.Comment,
		Entries:     entries,
		Exercises:   mapExercises(entry.Exercises),
		Summary:     summary,
	}
}

func mapHistoryItem(item service.HistoryItem) LogResponse {
	return MapLogToResponse(item.Entry, item.Summaries)
}

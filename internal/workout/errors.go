package workout

import "errors"

// Errors returned for calls that break the session shape produced by StartSession.
// They indicate an integration bug in the caller, not bad user input.
var (
	ErrEmptyRoutine      = errors.New("routine has no exercises")
	ErrDuplicateExercise = errors.New("routine repeats an exercise id")
	ErrUnknownExercise   = errors.New("exercise is not part of this session")
	ErrSetOutOfRange     = errors.New("set index out of range")
	ErrUnknownField      = errors.New("unknown set field")
)

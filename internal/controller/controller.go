// Package controller is the view state machine the UI drives.
//
// Every action checks the current view first and fails with
// ErrInvalidTransition when it does not apply there. Actions that write to
// storage keep the current view and state on failure and leave a Notice on
// the snapshot so the UI can tell the user without losing their input.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"alcyxob/gym-buddy/internal/domain"
	"alcyxob/gym-buddy/internal/service"
	"alcyxob/gym-buddy/internal/workout"
)

type View string

const (
	ViewHome    View = "home"
	ViewCreate  View = "create"
	ViewActive  View = "active"
	ViewFinish  View = "finish"
	ViewHistory View = "history"
)

// ParseView converts a view name; ok is false for unknown names.
func ParseView(name string) (View, bool) {
	switch v := View(strings.ToLower(name)); v {
	case ViewHome, ViewCreate, ViewActive, ViewFinish, ViewHistory:
		return v, true
	}
	return "", false
}

// browsable views can be reached from each other with Navigate.
func (v View) browsable() bool {
	return v == ViewHome || v == ViewCreate || v == ViewHistory
}

var (
	ErrInvalidTransition    = errors.New("action not allowed in the current view")
	ErrConfirmationRequired = errors.New("confirmation required")
)

// Draft is the routine being composed in the create view.
type Draft struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Exercises   []service.ExerciseInput `json:"exercises"`
}

// FinishForm holds the rating and comment typed in the finish view.
type FinishForm struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Snapshot is a read-only copy of the controller state.
type Snapshot struct {
	View    View            `json:"view"`
	Draft   Draft           `json:"draft"`
	Finish  FinishForm      `json:"finish"`
	Session *domain.Session `json:"session,omitempty"`
	Notice  string          `json:"notice,omitempty"`
}

// Controller serializes all UI actions behind one mutex.
type Controller struct {
	routines service.RoutineService
	workouts service.WorkoutService

	mu     sync.Mutex
	view   View
	draft  Draft
	finish FinishForm
	notice string
}

func New(routines service.RoutineService, workouts service.WorkoutService) *Controller {
	c := &Controller{
		routines: routines,
		workouts: workouts,
		view:     ViewHome,
		draft:    Draft{Exercises: []service.ExerciseInput{}},
	}
	// A session that survived a restart of the controller resumes where it was.
	if _, ok := workouts.Active(); ok {
		c.view = ViewActive
	}
	return c
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) snapshot() Snapshot {
	snap := Snapshot{
		View: c.view,
		Draft: Draft{
			Name:        c.draft.Name,
			Description: c.draft.Description,
			Exercises:   append([]service.ExerciseInput{}, c.draft.Exercises...),
		},
		Finish: c.finish,
		Notice: c.notice,
	}
	if s, ok := c.workouts.Active(); ok {
		s.Entries = s.Entries.Clone()
		s.Routine = s.Routine.Clone()
		snap.Session = &s
	}
	return snap
}

// require checks the current view and clears any previous notice.
func (c *Controller) require(action string, allowed ...View) error {
	for _, v := range allowed {
		if c.view == v {
			c.notice = ""
			return nil
		}
	}
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, c.view)
}

// storageFailed records a notice for errors that are not the caller's fault.
func (c *Controller) storageFailed(action string, err error) error {
	switch {
	case errors.Is(err, service.ErrValidationFailed),
		errors.Is(err, service.ErrRoutineNotFound),
		errors.Is(err, service.ErrNoActiveSession):
		return err
	}
	log.Printf("ERROR: %s failed: %v", action, err)
	c.notice = fmt.Sprintf("Could not %s, your changes were kept. Please try again.", action)
	return err
}

// --- Browsing ---

// Navigate moves between home, create and history.
func (c *Controller) Navigate(target View) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.view.browsable() || !target.browsable() {
		return fmt.Errorf("%w: navigate from %s to %s", ErrInvalidTransition, c.view, target)
	}
	c.notice = ""
	c.view = target
	return nil
}

// StartRoutine begins a session and switches to the active view.
func (c *Controller) StartRoutine(ctx context.Context, routineID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require("start routine", ViewHome); err != nil {
		return err
	}
	if _, err := c.workouts.Start(ctx, routineID); err != nil {
		if errors.Is(err, workout.ErrEmptyRoutine) || errors.Is(err, workout.ErrDuplicateExercise) ||
			errors.Is(err, service.ErrSessionInProgress) {
			return err
		}
		return c.storageFailed("start the workout", err)
	}
	c.finish = FinishForm{}
	c.view = ViewActive
	return nil
}

// DeleteRoutine removes a routine once the user has confirmed.
func (c *Controller) DeleteRoutine(ctx context.Context, routineID string, confirmed bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require("delete routine", ViewHome); err != nil {
		return err
	}
	if !confirmed {
		return fmt.Errorf("%w: delete routine", ErrConfirmationRequired)
	}
	if err := c.routines.DeleteRoutine(ctx, routineID); err != nil {
		return c.storageFailed("delete the routine", err)
	}
	return nil
}

// --- Create view ---

func (c *Controller) SetDraftDetails(name, description string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require("edit draft", ViewCreate); err != nil {
		return err
	}
	c.draft.Name = name
	c.draft.Description = description
	return nil
}

// AddDraftExercise appends an exercise; the name is required.
func (c *Controller) AddDraftExercise(ex service.ExerciseInput) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require("add exercise", ViewCreate); err != nil {
		return err
	}
	if strings.TrimSpace(ex.Name) == "" {
		return fmt.Errorf("%w: exercise name is required", service.ErrValidationFailed)
	}
	c.draft.Exercises = append(c.draft.Exercises, ex)
	return nil
}

func (c *Controller) RemoveDraftExercise(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require("remove exercise", ViewCreate); err != nil {
		return err
	}
	if index < 0 || index >= len(c.draft.Exercises) {
		return fmt.Errorf("%w: no draft exercise at index %d", service.ErrValidationFailed, index)
	}
	next := make([]service.ExerciseInput, 0, len(c.draft.Exercises)-1)
	next = append(next, c.draft.Exercises[:index]...)
	c.draft.Exercises = append(next, c.draft.Exercises[index+1:]...)
	return nil
}

// SaveRoutine persists the draft, resets it and goes home.
func (c *Controller) SaveRoutine(ctx context.Context) (*domain.Routine, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require("save routine", ViewCreate); err != nil {
		return nil, err
	}
	routine, err := c.routines.CreateRoutine(ctx, &service.CreateRoutineRequest{
		Name:        c.draft.Name,
		Description: c.draft.Description,
		Exercises:   c.draft.Exercises,
	})
	if err != nil {
		return nil, c.storageFailed("save the routine", err)
	}
	c.draft = Draft{Exercises: []service.ExerciseInput{}}
	c.view = ViewHome
	return routine, nil
}

// --- Active view ---

func (c *Controller) UpdateSet(exerciseID string, setIndex int, field domain.SetField, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require("update set", ViewActive); err != nil {
		return err
	}
	_, err := c.workouts.UpdateSet(exerciseID, setIndex, field, value)
	return err
}

func (c *Controller) AddSet(exerciseID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require("add set", ViewActive); err != nil {
		return err
	}
	_, err := c.workouts.AddSet(exerciseID)
	return err
}

func (c *Controller) RequestFinish() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require("finish workout", ViewActive); err != nil {
		return err
	}
	c.view = ViewFinish
	return nil
}

// CancelWorkout drops the session once confirmed. Nothing is written.
func (c *Controller) CancelWorkout(confirmed bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require("cancel workout", ViewActive); err != nil {
		return err
	}
	if !confirmed {
		return fmt.Errorf("%w: cancel workout", ErrConfirmationRequired)
	}
	if err := c.workouts.Cancel(); err != nil && !errors.Is(err, service.ErrNoActiveSession) {
		return err
	}
	c.finish = FinishForm{}
	c.view = ViewHome
	return nil
}

// --- Finish view ---

// SetRating stores the rating clamped to 0..5.
func (c *Controller) SetRating(rating int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require("rate workout", ViewFinish); err != nil {
		return err
	}
	c.finish.Rating = workout.ClampRating(rating)
	return nil
}

func (c *Controller) SetComment(comment string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require("comment workout", ViewFinish); err != nil {
		return err
	}
	c.finish.Comment = comment
	return nil
}

func (c *Controller) ResumeWorkout() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require("resume workout", ViewFinish); err != nil {
		return err
	}
	c.view = ViewActive
	return nil
}

// SaveLog records the session and shows the history. On failure the session
// and the finish form are kept.
func (c *Controller) SaveLog(ctx context.Context) (*domain.LogEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require("save workout", ViewFinish); err != nil {
		return nil, err
	}
	entry, err := c.workouts.Finish(ctx, c.finish.Rating, c.finish.Comment)
	if err != nil {
		return nil, c.storageFailed("save the workout", err)
	}
	c.finish = FinishForm{}
	c.view = ViewHistory
	return entry, nil
}

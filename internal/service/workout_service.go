package service

import (
	"alcyxob/gym-buddy/internal/domain"
	"alcyxob/gym-buddy/internal/repository"
	"alcyxob/gym-buddy/internal/workout"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrSessionInProgress = errors.New("a workout session is already in progress")
	ErrNoActiveSession   = errors.New("no active workout session")
)

// --- Service Interface ---

// WorkoutService owns the single active session and turns it into a log entry.
type WorkoutService interface {
	Start(ctx context.Context, routineID string) (domain.Session, error)
	Active() (domain.Session, bool)
	UpdateSet(exerciseID string, setIndex int, field domain.SetField, value string) (domain.Session, error)
	AddSet(exerciseID string) (domain.Session, error)
	Finish(ctx context.Context, rating int, comment string) (*domain.LogEntry, error)
	Cancel() error
}

// --- Service Implementation ---

type workoutService struct {
	routineRepo repository.RoutineRepository
	logRepo     repository.LogRepository
	now         func() time.Time
	newID       func() string

	mu     sync.Mutex
	active *domain.Session
}

// WorkoutOption customizes a workout service.
type WorkoutOption func(*workoutService)

// WithClock replaces time.Now; the value is converted to UTC.
func WithClock(now func() time.Time) WorkoutOption {
	return func(s *workoutService) { s.now = now }
}

// WithIDGenerator replaces uuid.NewString for log entry ids.
func WithIDGenerator(newID func() string) WorkoutOption {
	return func(s *workoutService) { s.newID = newID }
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(routineRepo repository.RoutineRepository, logRepo repository.LogRepository, opts ...WorkoutOption) WorkoutService {
	s := &workoutService{
		routineRepo: routineRepo,
		logRepo:     logRepo,
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the routine and begins a session from a copy of it.
func (s *workoutService) Start(ctx context.Context, routineID string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		return domain.Session{}, ErrSessionInProgress
	}
	routine, err := s.routineRepo.GetByID(ctx, routineID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Session{}, ErrRoutineNotFound
		}
		return domain.Session{}, err
	}
	session, err := workout.StartSession(*routine, s.now().UTC())
	if err != nil {
		return domain.Session{}, fmt.Errorf("start %q: %w", routine.Name, err)
	}
	s.active = &session
	return session, nil
}

// Active returns the session in progress, if any.
func (s *workoutService) Active() (domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return domain.Session{}, false
	}
	return *s.active, true
}

func (s *workoutService) UpdateSet(exerciseID string, setIndex int, field domain.SetField, value string) (domain.Session, error) {
	return s.mutate(func(cur domain.Session) (domain.Session, error) {
		return workout.UpdateSet(cur, exerciseID, setIndex, field, value)
	})
}

func (s *workoutService) AddSet(exerciseID string) (domain.Session, error) {
	return s.mutate(func(cur domain.Session) (domain.Session, error) {
		return workout.AddSet(cur, exerciseID)
	})
}

func (s *workoutService) mutate(fn func(domain.Session) (domain.Session, error)) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return domain.Session{}, ErrNoActiveSession
	}
	next, err := fn(*s.active)
	if err != nil {
		return domain.Session{}, err
	}
	s.active = &next
	return next, nil
}

// Finish records the active session at the head of the log.
// If the log cannot be written the session stays active so nothing is lost.
func (s *workoutService) Finish(ctx context.Context, rating int, comment string) (*domain.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil, ErrNoActiveSession
	}
	entry := workout.FinishSession(*s.active, rating, comment, s.now().UTC(), s.newID)
	if err := s.logRepo.Prepend(ctx, &entry); err != nil {
		return nil, fmt.Errorf("save workout log: %w", err)
	}
	s.active = nil
	return &entry, nil
}

// Cancel discards the active session without touching either store.
func (s *workoutService) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return ErrNoActiveSession
	}
	s.active = nil
	return nil
}

package service

import (
	"alcyxob/gym-buddy/internal/domain"
	"alcyxob/gym-buddy/internal/repository"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrRoutineNotFound  = errors.New("routine not found")
	ErrValidationFailed = errors.New("validation failed")
)

// ExerciseInput is one exercise of a routine being created.
type ExerciseInput struct {
	Name string `json:"name" validate:"notblank,max=100"`
	Sets string `json:"sets" validate:"max=20,setcount"`
	Reps string `json:"reps" validate:"max=20"`
}

// CreateRoutineRequest carries everything needed to save a routine.
type CreateRoutineRequest struct {
	Name        string          `json:"name" validate:"notblank,max=100"`
	Description string          `json:"description" validate:"max=500"`
	Exercises   []ExerciseInput `json:"exercises" validate:"min=1,dive"`
}

// --- Service Interface ---
type RoutineService interface {
	CreateRoutine(ctx context.Context, req *CreateRoutineRequest) (*domain.Routine, error)
	ListRoutines(ctx context.Context) ([]domain.Routine, error)
	GetRoutine(ctx context.Context, id string) (*domain.Routine, error)
	DeleteRoutine(ctx context.Context, id string) error
}

// --- Service Implementation ---

// routineService implements the RoutineService interface.
type routineService struct {
	routineRepo repository.RoutineRepository
	newID       func() string
}

// NewRoutineService creates a new instance of routineService.
func NewRoutineService(routineRepo repository.RoutineRepository) RoutineService {
	InitValidator()
	return &routineService{
		routineRepo: routineRepo,
		newID:       uuid.NewString,
	}
}

// CreateRoutine validates the request, assigns ids and appends the routine.
// Names are trimmed; sets and reps are stored as typed.
func (s *routineService) CreateRoutine(ctx context.Context, req *CreateRoutineRequest) (*domain.Routine, error) {
	if req == nil {
		return nil, ErrValidationFailed
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	routine := &domain.Routine{
		ID:          s.newID(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Exercises:   make([]domain.Exercise, 0, len(req.Exercises)),
	}
	for _, in := range req.Exercises {
		routine.Exercises = append(routine.Exercises, domain.Exercise{
			ID:   s.newID(),
			Name: strings.TrimSpace(in.Name),
			Sets: strings.TrimSpace(in.Sets),
			Reps: strings.TrimSpace(in.Reps),
		})
	}

	if err := s.routineRepo.Create(ctx, routine); err != nil {
		return nil, err
	}
	return routine, nil
}

// ListRoutines returns routines in creation order.
func (s *routineService) ListRoutines(ctx context.Context) ([]domain.Routine, error) {
	return s.routineRepo.List(ctx)
}

func (s *routineService) GetRoutine(ctx context.Context, id string) (*domain.Routine, error) {
	routine, err := s.routineRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}
	return routine, nil
}

// DeleteRoutine removes a routine. Logs that reference it are kept as they are.
func (s *routineService) DeleteRoutine(ctx context.Context, id string) error {
	err := s.routineRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrRoutineNotFound
	}
	return err
}

package service

import (
	"alcyxob/gym-buddy/internal/domain"
	"alcyxob/gym-buddy/internal/repository"
	"alcyxob/gym-buddy/internal/workout"
	"context"
	"errors"
)

var ErrLogNotFound = errors.New("workout log not found")

// HistoryItem is a log entry together with its per-exercise summary lines.
type HistoryItem struct {
	Entry     domain.LogEntry          `json:"entry"`
	Summaries []domain.ExerciseSummary `json:"summaries"`
}

type HistoryService interface {
	// ListHistory returns the most recent entries first. limit <= 0 means all.
	ListHistory(ctx context.Context, limit int) ([]HistoryItem, error)
	GetHistory(ctx context.Context, id string) (*HistoryItem, error)
}

type historyService struct {
	logRepo repository.LogRepository
}

func NewHistoryService(logRepo repository.LogRepository) HistoryService {
	return &historyService{logRepo: logRepo}
}

func (s *historyService) ListHistory(ctx context.Context, limit int) ([]HistoryItem, error) {
	entries, err := s.logRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	items := make([]HistoryItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, HistoryItem{Entry: e, Summaries: workout.Summarize(e)})
	}
	return items, nil
}

func (s *historyService) GetHistory(ctx context.Context, id string) (*HistoryItem, error) {
	entry, err := s.logRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	return &HistoryItem{Entry: *entry, Summaries: workout.Summarize(*entry)}, nil
}

package services

import (
	"context"
	"time"

	"github.com/vladblajovan/ritualist-engine/internal/core/domain"
	"github.com/vladblajovan/ritualist-engine/internal/core/workers"
)

type LogService struct {
	repo      domain.HabitLogRepository
	habitRepo domain.HabitRepository
	worker    *workers.StreakWorker
}

func NewLogService(repo domain.HabitLogRepository, habitRepo domain.HabitRepository, worker *workers.StreakWorker) *LogService {
	return &LogService{
		repo:      repo,
		habitRepo: habitRepo,
		worker:    worker,
	}
}

type CreateLogInput struct {
	HabitID        string
	UserID         string
	Date           time.Time
	Value          *float64
	Notes          string
	OriginTimezone string
}

type UpdateLogInput struct {
	ID      string
	UserID  string
	Value   *float64
	Notes   string
	Version int
}

func (s *LogService) Create(ctx context.Context, input CreateLogInput) (*domain.HabitLog, error) {
	log := domain.NewHabitLog(input.HabitID, input.UserID, input.Date, input.Value, input.OriginTimezone)
	log.Notes = input.Notes

	if err := log.Validate(); err != nil {
		return nil, err
	}

	habit, err := s.habitRepo.GetByID(ctx, log.HabitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != log.UserID {
		return nil, domain.ErrUnauthorized
	}

	if err := s.repo.Create(ctx, log); err != nil {
		return nil, err
	}

	s.worker.Enqueue(log.HabitID)

	return log, nil
}

func (s *LogService) Update(ctx context.Context, input UpdateLogInput) (*domain.HabitLog, error) {
	existing, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && existing.Version != input.Version {
		return nil, domain.ErrLogConflict
	}

	existing.Value = input.Value
	existing.Notes = input.Notes

	// The repository bumps the version under its optimistic lock.
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.worker.Enqueue(existing.HabitID)

	return existing, nil
}

func (s *LogService) GetByID(ctx context.Context, id string, userID string) (*domain.HabitLog, error) {
	log, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if log.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return log, nil
}

func (s *LogService) ListByHabitID(ctx context.Context, habitID string, userID string, from, to time.Time) ([]*domain.HabitLog, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrUnauthorized
	}

	return s.repo.ListByHabitID(ctx, habitID, from, to)
}

func (s *LogService) Delete(ctx context.Context, id string, userID string) error {
	log, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if log.UserID != userID {
		return domain.ErrUnauthorized
	}

	habitID := log.HabitID

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.worker.Enqueue(habitID)

	return nil
}

func (s *LogService) GetDelta(ctx context.Context, userID string, since time.Time) ([]*domain.HabitLog, error) {
	return s.repo.GetChanges(ctx, userID, since)
}

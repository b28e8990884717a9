package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vladblajovan/ritualist-engine/internal/core/domain"
)

type HabitService struct {
	repo domain.HabitRepository
}

func NewHabitService(repo domain.HabitRepository) *HabitService {
	return &HabitService{
		repo: repo,
	}
}

type CreateHabitInput struct {
	UserID       string
	Title        string
	Description  string
	Color        string
	Icon         string
	Kind         string
	ReminderTime string
	Unit         string
	DailyTarget  *float64
	ScheduleType string
	TimesPerWeek int
	Weekdays     []domain.Weekday
}

type UpdateHabitInput struct {
	ID           string
	UserID       string
	Title        string
	Description  string
	Color        string
	Icon         string
	Kind         string
	ReminderTime string
	Unit         string
	DailyTarget  *float64
	ScheduleType string
	TimesPerWeek int
	Weekdays     []domain.Weekday
	Version      int
}

func mergeString(newVal, oldVal string) string {
	if newVal == "" {
		return oldVal
	}
	return newVal
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	schedule, err := domain.NewSchedule(input.ScheduleType, input.TimesPerWeek, input.Weekdays)
	if err != nil {
		return nil, err
	}

	habit, err := domain.NewHabit(
		input.UserID,
		input.Title,
		input.Description,
		input.Color,
		input.Icon,
		input.Kind,
		input.ReminderTime,
		input.Unit,
		input.DailyTarget,
		schedule,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) GetByID(ctx context.Context, id, userID string) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}
	return habit, nil
}

func (s *HabitService) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *HabitService) GetDelta(ctx context.Context, userID string, lastSync time.Time) ([]*domain.Habit, error) {
	return s.repo.GetChanges(ctx, userID, lastSync)
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) error {
	habit, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return err
	}

	if habit.UserID != input.UserID {
		return domain.ErrHabitNotFound
	}

	if input.Version > 0 && habit.Version != input.Version {
		return fmt.Errorf("%w: client v%d vs server v%d", domain.ErrHabitConflict, input.Version, habit.Version)
	}

	title := mergeString(input.Title, habit.Title)
	desc := mergeString(input.Description, habit.Description)
	color := mergeString(input.Color, habit.Color)
	icon := mergeString(input.Icon, habit.Icon)
	kind := mergeString(input.Kind, habit.Kind)
	unit := mergeString(input.Unit, habit.Unit)

	target := habit.DailyTarget
	if input.DailyTarget != nil {
		target = input.DailyTarget
	}

	// An absent schedule_type keeps the stored schedule untouched.
	schedule := habit.Schedule
	if input.ScheduleType != "" {
		schedule, err = domain.NewSchedule(input.ScheduleType, input.TimesPerWeek, input.Weekdays)
		if err != nil {
			return err
		}
	}

	err = habit.Update(
		title,
		desc,
		color,
		icon,
		kind,
		input.ReminderTime,
		unit,
		target,
		schedule,
	)
	if err != nil {
		return err
	}

	return s.repo.Update(ctx, habit)
}

func (s *HabitService) Archive(ctx context.Context, id, userID string) error {
	habit, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	habit.Archive()
	return s.repo.Update(ctx, habit)
}

func (s *HabitService) Restore(ctx context.Context, id, userID string) error {
	habit, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	habit.Restore()
	return s.repo.Update(ctx, habit)
}

func (s *HabitService) Delete(ctx context.Context, id string, userID string) error {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if habit.UserID != userID {
		return domain.ErrHabitNotFound
	}

	return s.repo.Delete(ctx, id)
}

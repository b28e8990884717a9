package services

import (
	"context"

	"github.com/vladblajovan/ritualist-engine/internal/core/domain"
	"github.com/vladblajovan/ritualist-engine/internal/core/engine"
)

type StatsService struct {
	habitRepo  domain.HabitRepository
	logRepo    domain.HabitLogRepository
	aggregator *engine.ScheduleAggregator
	cal        *engine.CalendarService
}

func NewStatsService(habitRepo domain.HabitRepository, logRepo domain.HabitLogRepository, cal *engine.CalendarService) *StatsService {
	return &StatsService{
		habitRepo:  habitRepo,
		logRepo:    logRepo,
		aggregator: engine.NewScheduleAggregator(cal),
		cal:        cal,
	}
}

// GetWeeklyStats aggregates every habit of the user over the requested
// range, schedule-aware: unscheduled days never land in a denominator, and
// times-per-week habits are rated against their weekly unit target.
func (s *StatsService) GetWeeklyStats(ctx context.Context, input domain.StatsInput) (*domain.WeeklyStats, error) {
	cal := s.cal.CachedCalendar(input.Timezone)
	startDate := cal.StartOfDay(input.StartDate)
	endDate := cal.StartOfDay(input.EndDate)

	habits, err := s.habitRepo.ListByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	stats := &domain.WeeklyStats{
		StartDate:   cal.DayKey(startDate),
		EndDate:     cal.DayKey(endDate),
		Timezone:    cal.Location().String(),
		TotalHabits: len(habits),
		HabitStats:  make([]domain.HabitStat, 0, len(habits)),
	}

	totalRequired := 0
	totalCompleted := 0

	for _, h := range habits {
		logs, err := s.logRepo.ListByHabitID(ctx, h.ID, startDate, cal.EndOfDay(endDate))
		if err != nil {
			return nil, err
		}

		results := s.aggregator.AggregateRange(h, logs, startDate, endDate, input.Timezone)
		weeks := s.aggregator.WeekSummaries(h, results, input.Timezone)

		hStat := domain.HabitStat{
			HabitID:       h.ID,
			HabitTitle:    h.Title,
			Color:         h.Color,
			Icon:          h.Icon,
			Kind:          h.Kind,
			ScheduleType:  h.Schedule.Type(),
			DailyTarget:   h.DailyTarget,
			Unit:          h.Unit,
			DailyProgress: make([]float64, 0, len(results)),
			CurrentStreak: h.CurrentStreak,
			LongestStreak: h.LongestStreak,
		}

		for _, r := range results {
			hStat.TotalValue += r.ProgressValue
			hStat.DailyProgress = append(hStat.DailyProgress, r.ProgressValue)
			if r.IsScheduled {
				hStat.ScheduledDays++
			}
			if r.IsCompleted {
				hStat.DaysCompleted++
			}
		}

		hStat.CompletionRate = engine.CompletionRate(weeks) * 100

		for _, w := range weeks {
			totalRequired += w.RequiredUnits
			totalCompleted += w.CompletedUnits
		}

		stats.HabitStats = append(stats.HabitStats, hStat)
	}

	if totalRequired > 0 {
		rate := float64(totalCompleted) / float64(totalRequired)
		if rate > 1 {
			rate = 1
		}
		stats.OverallRate = rate * 100
	}

	return stats, nil
}

// HabitSummary is the per-habit calendar payload: the day-by-day completion
// sequence, weekly summaries and fresh streaks for one habit.
type HabitSummary struct {
	Habit   *domain.Habit             `json:"habit"`
	Days    []engine.CompletionResult `json:"days"`
	Weeks   []engine.WeekSummary      `json:"weeks"`
	Streaks engine.StreakResult       `json:"streaks"`
}

// GetHabitSummary aggregates one habit over the range and computes streaks
// anchored on input.EndDate.
func (s *StatsService) GetHabitSummary(ctx context.Context, habitID string, input domain.StatsInput) (*HabitSummary, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != input.UserID {
		return nil, domain.ErrHabitNotFound
	}

	cal := s.cal.CachedCalendar(input.Timezone)
	startDate := cal.StartOfDay(input.StartDate)
	endDate := cal.StartOfDay(input.EndDate)

	logs, err := s.logRepo.ListByHabitID(ctx, habit.ID, startDate, cal.EndOfDay(endDate))
	if err != nil {
		return nil, err
	}

	results := s.aggregator.AggregateRange(habit, logs, startDate, endDate, input.Timezone)
	weeks := s.aggregator.WeekSummaries(habit, results, input.Timezone)
	streaks := engine.NewStreakCalculator(s.cal).CalculateStreaks(results, endDate, input.Timezone)

	return &HabitSummary{
		Habit:   habit,
		Days:    results,
		Weeks:   weeks,
		Streaks: streaks,
	}, nil
}

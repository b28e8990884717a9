package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladblajovan/ritualist-engine/internal/core/domain"
)

func newAggregator() *ScheduleAggregator {
	return NewScheduleAggregator(NewCalendarService())
}

func withSchedule(h *domain.Habit, s domain.Schedule) *domain.Habit {
	h.Schedule = s
	return h
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func resultFor(results []CompletionResult, d time.Time) *CompletionResult {
	for i := range results {
		if results[i].Date.Year() == d.Year() && results[i].Date.YearDay() == d.YearDay() {
			return &results[i]
		}
	}
	return nil
}

func TestAggregateRange_Daily(t *testing.T) {
	agg := newAggregator()

	t.Run("Every day scheduled, completion per day", func(t *testing.T) {
		habit := binaryHabit("h1")
		logs := []*domain.HabitLog{
			logFor("h1", day(2024, 1, 1).Add(8*time.Hour), floatPtr(1)),
			logFor("h1", day(2024, 1, 3).Add(20*time.Hour), floatPtr(1)),
		}

		results := agg.AggregateRange(habit, logs, day(2024, 1, 1), day(2024, 1, 4), "UTC")
		require.Len(t, results, 4)

		for _, r := range results {
			assert.True(t, r.IsScheduled)
		}
		assert.True(t, results[0].IsCompleted)
		assert.False(t, results[1].IsCompleted)
		assert.True(t, results[2].IsCompleted)
		assert.False(t, results[3].IsCompleted)
	})

	t.Run("Numeric habit sums multiple logs on one day", func(t *testing.T) {
		habit := numericHabit("h2", floatPtr(2000))
		logs := []*domain.HabitLog{
			logFor("h2", day(2024, 1, 1).Add(7*time.Hour), floatPtr(1200)),
			logFor("h2", day(2024, 1, 1).Add(19*time.Hour), floatPtr(900)),
		}

		results := agg.AggregateRange(habit, logs, day(2024, 1, 1), day(2024, 1, 1), "UTC")
		require.Len(t, results, 1)

		assert.True(t, results[0].IsCompleted)
		assert.Equal(t, 2100.0, results[0].ProgressValue)
	})

	t.Run("Logs for other habits are ignored", func(t *testing.T) {
		habit := binaryHabit("h1")
		logs := []*domain.HabitLog{
			logFor("other-habit", day(2024, 1, 1), floatPtr(1)),
		}

		results := agg.AggregateRange(habit, logs, day(2024, 1, 1), day(2024, 1, 1), "UTC")
		require.Len(t, results, 1)
		assert.False(t, results[0].IsCompleted)
		assert.Equal(t, 0.0, results[0].ProgressValue)
	})

	t.Run("Inverted range yields nothing", func(t *testing.T) {
		habit := binaryHabit("h1")
		results := agg.AggregateRange(habit, nil, day(2024, 1, 5), day(2024, 1, 1), "UTC")
		assert.Empty(t, results)
	})
}

func TestAggregateRange_DaysOfWeek(t *testing.T) {
	agg := newAggregator()

	// Mon/Wed/Fri habit. 2024-01-01 is a Monday.
	schedule := domain.DaysOfWeek{Days: []domain.Weekday{domain.Monday, domain.Wednesday, domain.Friday}}
	habit := withSchedule(binaryHabit("h1"), schedule)

	t.Run("Unscheduled days are never completed", func(t *testing.T) {
		logs := []*domain.HabitLog{
			logFor("h1", day(2024, 1, 1).Add(9*time.Hour), floatPtr(1)), // Monday
			logFor("h1", day(2024, 1, 2).Add(9*time.Hour), floatPtr(1)), // Tuesday (unscheduled)
		}

		results := agg.AggregateRange(habit, logs, day(2024, 1, 1), day(2024, 1, 7), "UTC")
		require.Len(t, results, 7)

		monday := resultFor(results, day(2024, 1, 1))
		require.NotNil(t, monday)
		assert.True(t, monday.IsScheduled)
		assert.True(t, monday.IsCompleted)

		tuesday := resultFor(results, day(2024, 1, 2))
		require.NotNil(t, tuesday)
		assert.False(t, tuesday.IsScheduled)
		assert.False(t, tuesday.IsCompleted, "a Tuesday log on a Mon/Wed/Fri habit must not complete the day")

		// Invariant: completed implies scheduled, everywhere.
		for _, r := range results {
			if r.IsCompleted {
				assert.True(t, r.IsScheduled)
			}
		}
	})

	t.Run("Weekly target met only when all scheduled days completed", func(t *testing.T) {
		logs := []*domain.HabitLog{
			logFor("h1", day(2024, 1, 1), floatPtr(1)), // Mon
			logFor("h1", day(2024, 1, 3), floatPtr(1)), // Wed
		}

		results := agg.AggregateRange(habit, logs, day(2024, 1, 1), day(2024, 1, 7), "UTC")
		weeks := agg.WeekSummaries(habit, results, "UTC")
		require.Len(t, weeks, 1)

		assert.Equal(t, 3, weeks[0].RequiredUnits)
		assert.Equal(t, 2, weeks[0].CompletedUnits)
		assert.False(t, weeks[0].TargetMet)
		assert.InDelta(t, 2.0/3.0, weeks[0].Rate, 1e-9)

		// Friday too -> met.
		logs = append(logs, logFor("h1", day(2024, 1, 5), floatPtr(1)))
		results = agg.AggregateRange(habit, logs, day(2024, 1, 1), day(2024, 1, 7), "UTC")
		weeks = agg.WeekSummaries(habit, results, "UTC")
		require.Len(t, weeks, 1)
		assert.True(t, weeks[0].TargetMet)
	})
}

func TestAggregateRange_TimesPerWeek(t *testing.T) {
	agg := newAggregator()
	habit := withSchedule(binaryHabit("h1"), domain.TimesPerWeek{Count: 3})

	t.Run("Any three distinct days satisfy the weekly target", func(t *testing.T) {
		// Tue, Thu, Sun of the week starting Monday 2024-01-01.
		logs := []*domain.HabitLog{
			logFor("h1", day(2024, 1, 2), floatPtr(1)),
			logFor("h1", day(2024, 1, 4), floatPtr(1)),
			logFor("h1", day(2024, 1, 7), floatPtr(1)),
		}

		results := agg.AggregateRange(habit, logs, day(2024, 1, 1), day(2024, 1, 7), "UTC")
		weeks := agg.WeekSummaries(habit, results, "UTC")
		require.Len(t, weeks, 1)

		assert.Equal(t, 3, weeks[0].RequiredUnits)
		assert.Equal(t, 3, weeks[0].CompletedUnits)
		assert.True(t, weeks[0].TargetMet)
	})

	t.Run("Same day logged twice counts as one unit", func(t *testing.T) {
		logs := []*domain.HabitLog{
			logFor("h1", day(2024, 1, 2).Add(8*time.Hour), floatPtr(1)),
			logFor("h1", day(2024, 1, 2).Add(21*time.Hour), floatPtr(1)),
			logFor("h1", day(2024, 1, 4), floatPtr(1)),
		}

		results := agg.AggregateRange(habit, logs, day(2024, 1, 1), day(2024, 1, 7), "UTC")
		weeks := agg.WeekSummaries(habit, results, "UTC")
		require.Len(t, weeks, 1)

		assert.Equal(t, 2, weeks[0].CompletedUnits, "duplicate logs on one day must not inflate the weekly count")
		assert.False(t, weeks[0].TargetMet)
	})

	t.Run("Every day is schedulable", func(t *testing.T) {
		results := agg.AggregateRange(habit, nil, day(2024, 1, 1), day(2024, 1, 7), "UTC")
		for _, r := range results {
			assert.True(t, r.IsScheduled)
		}
	})

	t.Run("Overflow weeks keep an unclamped rate", func(t *testing.T) {
		habitOnce := withSchedule(binaryHabit("h1"), domain.TimesPerWeek{Count: 1})
		logs := []*domain.HabitLog{
			logFor("h1", day(2024, 1, 1), floatPtr(1)),
			logFor("h1", day(2024, 1, 3), floatPtr(1)),
		}

		results := agg.AggregateRange(habitOnce, logs, day(2024, 1, 1), day(2024, 1, 7), "UTC")
		weeks := agg.WeekSummaries(habitOnce, results, "UTC")
		require.Len(t, weeks, 1)

		assert.Equal(t, 2.0, weeks[0].Rate, "aggregator must not clamp")
		assert.Equal(t, 1.0, CompletionRate(weeks), "display helper clamps to 1")
	})
}

func TestWeekSummaries_MultipleWeeks(t *testing.T) {
	agg := newAggregator()
	habit := binaryHabit("h1")

	// Two full Monday-based weeks, first fully logged, second empty.
	var logs []*domain.HabitLog
	for d := 1; d <= 7; d++ {
		logs = append(logs, logFor("h1", day(2024, 1, d), floatPtr(1)))
	}

	results := agg.AggregateRange(habit, logs, day(2024, 1, 1), day(2024, 1, 14), "UTC")
	weeks := agg.WeekSummaries(habit, results, "UTC")
	require.Len(t, weeks, 2)

	assert.True(t, weeks[0].TargetMet)
	assert.Equal(t, 7, weeks[0].CompletedUnits)
	assert.False(t, weeks[1].TargetMet)
	assert.Equal(t, 0, weeks[1].CompletedUnits)
	assert.Equal(t, time.Monday, weeks[0].Start.Weekday())
	assert.InDelta(t, 0.5, CompletionRate(weeks), 1e-9)
}

func TestAggregateRange_OriginTimezoneIgnored(t *testing.T) {
	agg := newAggregator()
	habit := binaryHabit("h1")

	// Log created in Tokyo, evaluated in UTC: only the anchor timezone
	// decides which civil day the instant belongs to.
	logTime := time.Date(2024, 1, 2, 23, 30, 0, 0, time.UTC)
	l := logFor("h1", logTime, floatPtr(1))
	l.OriginTimezone = "Asia/Tokyo"

	results := agg.AggregateRange(habit, []*domain.HabitLog{l}, day(2024, 1, 1), day(2024, 1, 3), "UTC")
	require.Len(t, results, 3)

	assert.False(t, results[0].IsCompleted)
	assert.True(t, results[1].IsCompleted, "the log lands on Jan 2 in the anchor timezone, whatever its origin")
	assert.False(t, results[2].IsCompleted)
}

func TestAggregateRange_DSTTransition(t *testing.T) {
	agg := newAggregator()
	habit := binaryHabit("h1")

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2024-03-08 .. 2024-03-12 spans the 23-hour spring-forward day
	// (March 10). One result per calendar day, no duplicates or gaps.
	var logs []*domain.HabitLog
	for d := 8; d <= 12; d++ {
		logs = append(logs, logFor("h1", time.Date(2024, 3, d, 12, 0, 0, 0, loc), floatPtr(1)))
	}

	from := time.Date(2024, 3, 8, 0, 0, 0, 0, loc)
	to := time.Date(2024, 3, 12, 0, 0, 0, 0, loc)
	results := agg.AggregateRange(habit, logs, from, to, "America/New_York")

	require.Len(t, results, 5)
	for i, r := range results {
		assert.Equal(t, 8+i, r.Date.Day())
		assert.True(t, r.IsCompleted)
	}
}

package engine

import (
	"github.com/vladblajovan/ritualist-engine/internal/core/domain"
)

// This file is the single home of the nil/target completion rule. Services,
// workers and the aggregator all decide completion through these functions;
// none of them compare values against targets on their own.

// IsLogCompleted reports whether a single log satisfies its habit's
// completion rule. A nil value never completes, regardless of kind:
// placeholder and migrated entries without a recorded value are not
// completions.
func IsLogCompleted(log *domain.HabitLog, habit *domain.Habit) bool {
	if log == nil || log.Value == nil {
		return false
	}

	if habit.Kind == domain.HabitKindNumeric && habit.DailyTarget != nil {
		return *log.Value >= *habit.DailyTarget
	}

	// Binary, and numeric without a target: any positive value counts.
	return *log.Value > 0
}

// DayProgress returns the representative progress value for one day's logs:
// the sum of recorded values for numeric habits, 1 or 0 for binary habits.
func DayProgress(habit *domain.Habit, logs []*domain.HabitLog) float64 {
	if habit.Kind == domain.HabitKindNumeric {
		var total float64
		for _, l := range logs {
			if l.Value != nil {
				total += *l.Value
			}
		}
		return total
	}

	for _, l := range logs {
		if IsLogCompleted(l, habit) {
			return 1
		}
	}
	return 0
}

// IsDayCompleted evaluates all of a day's logs together: numeric habits sum
// values before the target comparison, binary habits need at least one
// completing log. Multiple logs on one day never count more than one day.
func IsDayCompleted(habit *domain.Habit, logs []*domain.HabitLog) bool {
	if len(logs) == 0 {
		return false
	}

	if habit.Kind == domain.HabitKindNumeric {
		total, any := sumValues(logs)
		if !any {
			return false
		}
		if habit.DailyTarget != nil {
			return total >= *habit.DailyTarget
		}
		return total > 0
	}

	for _, l := range logs {
		if IsLogCompleted(l, habit) {
			return true
		}
	}
	return false
}

func sumValues(logs []*domain.HabitLog) (total float64, any bool) {
	for _, l := range logs {
		if l.Value != nil {
			total += *l.Value
			any = true
		}
	}
	return total, any
}

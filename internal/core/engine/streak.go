package engine

import (
	"time"
)

// StreakResult holds consecutive-completion streaks in scheduled-day units.
// Unscheduled days are skipped: they neither extend nor break a streak.
type StreakResult struct {
	Current int `json:"current"`
	Best    int `json:"best"`
}

// StreakCalculator walks the schedule-aware daily sequence produced by
// ScheduleAggregator. It holds no state between calls; recomputation with
// the same inputs always yields the same result.
type StreakCalculator struct {
	cal *CalendarService
}

func NewStreakCalculator(cal *CalendarService) *StreakCalculator {
	return &StreakCalculator{cal: cal}
}

// CalculateStreaks computes the current and best streaks over results
// (ordered ascending by date), with 'anchor' marking today in the given
// timezone.
//
// Current streak: walk backward from the anchor day. Unscheduled days are
// skipped. The anchor day itself, if scheduled but not yet completed, is
// also skipped rather than breaking the streak: the day is not over, the
// user may still log it. Any earlier scheduled-but-incomplete day
// terminates the walk.
//
// Best streak: longest run of scheduled-and-completed days anywhere in the
// sequence, under the same skip-unscheduled rule, independent of the
// anchor.
func (s *StreakCalculator) CalculateStreaks(results []CompletionResult, anchor time.Time, timezone string) StreakResult {
	if len(results) == 0 {
		return StreakResult{}
	}

	cal := s.cal.CachedCalendar(timezone)

	// Start from the most recent day at or before the anchor.
	start := len(results) - 1
	for start >= 0 && cal.DaysBetween(anchor, results[start].Date) > 0 {
		start--
	}

	current := 0
	for i := start; i >= 0; i-- {
		r := results[i]
		if !r.IsScheduled {
			continue
		}
		if r.IsCompleted {
			current++
			continue
		}
		if cal.IsSameDay(r.Date, anchor) {
			// Today is scheduled but not logged yet; not a break.
			continue
		}
		break
	}

	best := 0
	run := 0
	for _, r := range results {
		if !r.IsScheduled {
			continue
		}
		if r.IsCompleted {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}

	return StreakResult{Current: current, Best: best}
}

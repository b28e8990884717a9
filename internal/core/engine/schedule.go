package engine

import (
	"time"

	"github.com/vladblajovan/ritualist-engine/internal/core/domain"
)

// CompletionResult is the per-day outcome of schedule-aware aggregation.
// IsCompleted is true only when IsScheduled is true.
type CompletionResult struct {
	Date          time.Time `json:"date"`
	IsScheduled   bool      `json:"is_scheduled"`
	IsCompleted   bool      `json:"is_completed"`
	ProgressValue float64   `json:"progress_value"`
}

// WeekSummary aggregates one week interval of results. Rate is
// CompletedUnits/RequiredUnits and is deliberately not clamped; callers
// decide whether to cap overflow for display.
type WeekSummary struct {
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	CompletedUnits int       `json:"completed_units"`
	RequiredUnits  int       `json:"required_units"`
	Rate           float64   `json:"rate"`
	TargetMet      bool      `json:"target_met"`
}

// ScheduleAggregator turns a habit's log history into per-day completion
// flags and weekly summaries according to the habit's schedule variant.
type ScheduleAggregator struct {
	cal *CalendarService
}

func NewScheduleAggregator(cal *CalendarService) *ScheduleAggregator {
	return &ScheduleAggregator{cal: cal}
}

// isScheduledOn is the one exhaustive dispatch over schedule variants for
// per-day scheduling.
func isScheduledOn(schedule domain.Schedule, cal *Calendar, day time.Time) bool {
	switch s := schedule.(type) {
	case domain.Daily:
		return true
	case domain.TimesPerWeek:
		// Any day of the week may contribute a unit toward the weekly
		// target, so every day is schedulable.
		return true
	case domain.DaysOfWeek:
		return s.Contains(cal.HabitWeekday(day))
	default:
		_ = s
		return false
	}
}

// AggregateRange produces one CompletionResult per civil day in
// [from, to], interpreted in the given anchor timezone. One cached
// calendar instance serves the whole call; switching timezone mid-range is
// the caller's problem (re-run aggregation after travel).
//
// Logs referencing a different habit are skipped: passing them is a
// contract violation by the caller, and mixing them in would corrupt the
// aggregation silently.
func (a *ScheduleAggregator) AggregateRange(habit *domain.Habit, logs []*domain.HabitLog, from, to time.Time, timezone string) []CompletionResult {
	cal := a.cal.CachedCalendar(timezone)

	byDay := make(map[string][]*domain.HabitLog)
	for _, l := range logs {
		if l.HabitID != habit.ID {
			continue
		}
		key := cal.DayKey(l.Date)
		byDay[key] = append(byDay[key], l)
	}

	start := cal.StartOfDay(from)
	end := cal.StartOfDay(to)
	if end.Before(start) {
		return nil
	}

	n := cal.DaysBetween(start, end) + 1
	results := make([]CompletionResult, 0, n)

	for day := start; !day.After(end); day = cal.NextDay(day) {
		dayLogs := byDay[cal.DayKey(day)]
		scheduled := isScheduledOn(habit.Schedule, cal, day)

		completed := false
		if scheduled {
			completed = IsDayCompleted(habit, dayLogs)
		}

		results = append(results, CompletionResult{
			Date:          day,
			IsScheduled:   scheduled,
			IsCompleted:   completed,
			ProgressValue: DayProgress(habit, dayLogs),
		})
	}

	return results
}

// WeekSummaries groups an aggregated range into week intervals (anchored on
// the calendar's first weekday) and evaluates each week against the
// habit's schedule:
//
//   - Daily and DaysOfWeek: required = scheduled days of the week present
//     in the range, completed = those of them that are completed, target
//     met when every scheduled day is completed.
//   - TimesPerWeek(n): required = n, completed = unique completed days in
//     the week, target met when completed >= n.
func (a *ScheduleAggregator) WeekSummaries(habit *domain.Habit, results []CompletionResult, timezone string) []WeekSummary {
	if len(results) == 0 {
		return nil
	}

	cal := a.cal.CachedCalendar(timezone)

	var summaries []WeekSummary
	var cur *WeekSummary

	flush := func() {
		if cur == nil {
			return
		}
		if cur.RequiredUnits > 0 {
			cur.Rate = float64(cur.CompletedUnits) / float64(cur.RequiredUnits)
		}
		switch s := habit.Schedule.(type) {
		case domain.TimesPerWeek:
			cur.TargetMet = cur.CompletedUnits >= s.Count
		case domain.Daily, domain.DaysOfWeek:
			cur.TargetMet = cur.RequiredUnits > 0 && cur.CompletedUnits >= cur.RequiredUnits
		default:
			_ = s
		}
		summaries = append(summaries, *cur)
		cur = nil
	}

	for _, r := range results {
		weekStart, weekEnd := cal.WeekInterval(r.Date)
		if cur == nil || !cur.Start.Equal(weekStart) {
			flush()
			cur = &WeekSummary{Start: weekStart, End: weekEnd}
			if tpw, ok := habit.Schedule.(domain.TimesPerWeek); ok {
				cur.RequiredUnits = tpw.Count
			}
		}

		switch habit.Schedule.(type) {
		case domain.TimesPerWeek:
			// RequiredUnits fixed at n; each completed day is one unit,
			// and a day appears in results exactly once, so duplicate
			// logs cannot inflate the count.
			if r.IsCompleted {
				cur.CompletedUnits++
			}
		default:
			if r.IsScheduled {
				cur.RequiredUnits++
				if r.IsCompleted {
					cur.CompletedUnits++
				}
			}
		}
	}
	flush()

	return summaries
}

// CompletionRate condenses week summaries into a single [0, 1] display
// value. This is the one place overflow is clamped.
func CompletionRate(summaries []WeekSummary) float64 {
	var completed, required int
	for _, w := range summaries {
		completed += w.CompletedUnits
		required += w.RequiredUnits
	}
	if required == 0 {
		return 0
	}

	rate := float64(completed) / float64(required)
	if rate > 1 {
		return 1
	}
	return rate
}

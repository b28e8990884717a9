package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

var (
	ErrInvalidScheduleType = errors.New("invalid schedule type (must be daily, times_per_week, or days_of_week)")
	ErrInvalidTimesPerWeek = errors.New("times_per_week count must be between 1 and 7")
	ErrInvalidWeekdays     = errors.New("invalid weekdays (must be 1=Monday .. 7=Sunday)")
	ErrEmptyWeekdaySet     = errors.New("days_of_week schedule requires at least one weekday")
)

// Weekday is Monday-based: 1=Monday .. 7=Sunday. This differs from Go's
// time.Weekday (Sunday-based); conversion lives in the engine package.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

const (
	ScheduleTypeDaily        = "daily"
	ScheduleTypeTimesPerWeek = "times_per_week"
	ScheduleTypeDaysOfWeek   = "days_of_week"
)

// Schedule is a closed set of habit cadences. The sealed marker method keeps
// the set exhaustive: every consumer switches over the three concrete types
// and the compiler flags any new variant added here.
type Schedule interface {
	Type() string
	sealed()
}

// Daily schedules the habit on every calendar day.
type Daily struct{}

// TimesPerWeek schedules the habit a number of times per week, on any days.
type TimesPerWeek struct {
	Count int
}

// DaysOfWeek schedules the habit on fixed weekdays.
type DaysOfWeek struct {
	Days []Weekday
}

func (Daily) Type() string        { return ScheduleTypeDaily }
func (TimesPerWeek) Type() string { return ScheduleTypeTimesPerWeek }
func (DaysOfWeek) Type() string   { return ScheduleTypeDaysOfWeek }

func (Daily) sealed()        {}
func (TimesPerWeek) sealed() {}
func (DaysOfWeek) sealed()   {}

// Contains reports whether the given weekday is part of the schedule.
func (s DaysOfWeek) Contains(day Weekday) bool {
	for _, d := range s.Days {
		if d == day {
			return true
		}
	}
	return false
}

func normalizeWeekdays(days []Weekday) []Weekday {
	if len(days) == 0 {
		return nil
	}

	seen := make(map[Weekday]bool)
	var unique []Weekday
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			unique = append(unique, d)
		}
	}

	sort.Slice(unique, func(i, j int) bool { return unique[i] < unique[j] })
	return unique
}

// NewSchedule builds and validates a Schedule from its wire representation:
// the schedule type plus whichever of count/weekdays the type needs.
func NewSchedule(scheduleType string, count int, weekdays []Weekday) (Schedule, error) {
	switch scheduleType {
	case ScheduleTypeDaily, "":
		return Daily{}, nil

	case ScheduleTypeTimesPerWeek:
		if count < 1 || count > 7 {
			return nil, ErrInvalidTimesPerWeek
		}
		return TimesPerWeek{Count: count}, nil

	case ScheduleTypeDaysOfWeek:
		if len(weekdays) == 0 {
			return nil, ErrEmptyWeekdaySet
		}
		for _, d := range weekdays {
			if d < Monday || d > Sunday {
				return nil, ErrInvalidWeekdays
			}
		}
		return DaysOfWeek{Days: normalizeWeekdays(weekdays)}, nil

	default:
		return nil, ErrInvalidScheduleType
	}
}

// scheduleJSON is the flat wire/storage envelope shared by the API layer and
// the Postgres repository.
type scheduleJSON struct {
	Type     string    `json:"type"`
	Count    int       `json:"count,omitempty"`
	Weekdays []Weekday `json:"weekdays,omitempty"`
}

// MarshalSchedule encodes a schedule into its flat JSON envelope.
func MarshalSchedule(s Schedule) ([]byte, error) {
	env := scheduleJSON{Type: s.Type()}
	switch sc := s.(type) {
	case Daily:
	case TimesPerWeek:
		env.Count = sc.Count
	case DaysOfWeek:
		env.Weekdays = sc.Days
	default:
		return nil, ErrInvalidScheduleType
	}
	return json.Marshal(env)
}

// UnmarshalSchedule decodes and re-validates a schedule envelope.
func UnmarshalSchedule(data []byte) (Schedule, error) {
	if len(data) == 0 {
		return Daily{}, nil
	}

	var env scheduleJSON
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode schedule: %w", err)
	}

	return NewSchedule(env.Type, env.Count, env.Weekdays)
}

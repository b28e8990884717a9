package domain

import "time"

type WeeklyStats struct {
	StartDate   string      `json:"start_date"`
	EndDate     string      `json:"end_date"`
	Timezone    string      `json:"timezone"`
	TotalHabits int         `json:"total_habits"`
	OverallRate float64     `json:"overall_completion_rate"`
	HabitStats  []HabitStat `json:"habits"`
}

type HabitStat struct {
	HabitID        string    `json:"habit_id"`
	HabitTitle     string    `json:"habit_title"`
	Color          string    `json:"color"`
	Icon           string    `json:"icon"`
	Kind           string    `json:"kind"`
	ScheduleType   string    `json:"schedule_type"`
	DailyTarget    *float64  `json:"daily_target,omitempty"`
	Unit           string    `json:"unit,omitempty"`
	TotalValue     float64   `json:"total_value"`
	CompletionRate float64   `json:"completion_rate"`
	ScheduledDays  int       `json:"scheduled_days"`
	DaysCompleted  int       `json:"days_completed"`
	DailyProgress  []float64 `json:"daily_progress"`
	CurrentStreak  int       `json:"current_streak"`
	LongestStreak  int       `json:"longest_streak"`
}

type StatsInput struct {
	UserID    string
	StartDate time.Time
	EndDate   time.Time
	Timezone  string
}

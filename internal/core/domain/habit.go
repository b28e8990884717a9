package domain

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitTitleEmpty    = errors.New("habit title cannot be empty")
	ErrHabitTitleTooLong  = errors.New("habit title is too long (max 100 chars)")
	ErrHabitDescTooLong   = errors.New("habit description is too long (max 500 chars)")
	ErrHabitInvalidUserID = errors.New("invalid user id")
	ErrInvalidColor       = errors.New("invalid color format (must be #RRGGBB)")
	ErrInvalidTarget      = errors.New("daily target must be positive")
	ErrHabitArchived      = errors.New("cannot update an archived habit")
	ErrInvalidHabitKind   = errors.New("invalid habit kind (must be binary or numeric)")
	ErrInvalidReminder    = errors.New("invalid reminder format (must be HH:MM 24h)")
)

var colorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)
var reminderRegex = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)

const (
	// HabitKindBinary habits are done or not done on a day.
	HabitKindBinary = "binary"
	// HabitKindNumeric habits accumulate a measured value (ml, pages, minutes)
	// toward an optional daily target.
	HabitKindNumeric = "numeric"

	DefaultIcon = "default_icon"
	MaxTitleLen = 100
	MaxDescLen  = 500
)

type Habit struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	SortOrder   int    `json:"sort_order"`

	Kind         string   `json:"kind"`
	Schedule     Schedule `json:"schedule"`
	DailyTarget  *float64 `json:"daily_target,omitempty"`
	Unit         string   `json:"unit,omitempty"`
	ReminderTime *string  `json:"reminder_time,omitempty"`

	// Streak snapshot maintained by the background worker; the engine
	// recomputes these from logs, the habit only carries the last result.
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`

	Version    int        `json:"version"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

func validateHabitFields(title, desc, color, kind, reminder string, target *float64) error {
	trimmedTitle := strings.TrimSpace(title)
	if trimmedTitle == "" {
		return ErrHabitTitleEmpty
	}
	if len(trimmedTitle) > MaxTitleLen {
		return ErrHabitTitleTooLong
	}

	if len(strings.TrimSpace(desc)) > MaxDescLen {
		return ErrHabitDescTooLong
	}

	switch kind {
	case HabitKindBinary, HabitKindNumeric:
	default:
		return ErrInvalidHabitKind
	}

	if target != nil && *target <= 0 {
		return ErrInvalidTarget
	}

	if reminder != "" && !reminderRegex.MatchString(reminder) {
		return ErrInvalidReminder
	}

	if color != "" && !colorRegex.MatchString(color) {
		return ErrInvalidColor
	}

	return nil
}

// NewHabit creates a validated habit. A binary habit never carries a daily
// target; it is dropped silently rather than rejected so clients can send
// the same payload shape for both kinds.
func NewHabit(userID, title, description, color, icon, kind, reminder, unit string, target *float64, schedule Schedule) (*Habit, error) {
	if userID == "" {
		return nil, ErrHabitInvalidUserID
	}
	if kind == "" {
		kind = HabitKindBinary
	}
	if schedule == nil {
		schedule = Daily{}
	}

	cleanDesc := strings.TrimSpace(description)
	if err := validateHabitFields(title, cleanDesc, color, kind, reminder, target); err != nil {
		return nil, err
	}

	if icon == "" {
		icon = DefaultIcon
	}
	if kind == HabitKindBinary {
		target = nil
	}

	var remPtr *string
	if reminder != "" {
		remPtr = &reminder
	}

	now := time.Now().UTC()

	return &Habit{
		ID:           uuid.New().String(),
		UserID:       userID,
		Title:        strings.TrimSpace(title),
		Description:  cleanDesc,
		Color:        color,
		Icon:         icon,
		Kind:         kind,
		Schedule:     schedule,
		DailyTarget:  target,
		Unit:         unit,
		ReminderTime: remPtr,
		SortOrder:    0,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
		StartDate:    now,
	}, nil
}

func (h *Habit) Update(title, description, color, icon, kind, reminder, unit string, target *float64, schedule Schedule) error {
	if h.ArchivedAt != nil {
		return ErrHabitArchived
	}

	cleanDesc := strings.TrimSpace(description)
	if err := validateHabitFields(title, cleanDesc, color, kind, reminder, target); err != nil {
		return err
	}

	if icon == "" {
		icon = DefaultIcon
	}
	if kind == HabitKindBinary {
		target = nil
	}

	var remPtr *string
	if reminder != "" {
		remPtr = &reminder
	}

	h.Title = strings.TrimSpace(title)
	h.Description = cleanDesc
	h.Color = color
	h.Icon = icon
	h.Kind = kind
	if schedule != nil {
		h.Schedule = schedule
	}
	h.DailyTarget = target
	h.Unit = unit
	h.ReminderTime = remPtr

	h.UpdatedAt = time.Now().UTC()

	return nil
}

func (h *Habit) ChangePosition(newOrder int) error {
	if h.ArchivedAt != nil {
		return ErrHabitArchived
	}

	h.SortOrder = newOrder
	h.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateStreak stores the latest computed streak snapshot on the habit.
func (h *Habit) UpdateStreak(current, longest int) {
	h.CurrentStreak = current
	h.LongestStreak = longest
	h.UpdatedAt = time.Now().UTC()
}

func (h *Habit) Archive() {
	if h.ArchivedAt != nil {
		return
	}

	now := time.Now().UTC()
	h.ArchivedAt = &now
	h.UpdatedAt = now
}

func (h *Habit) Restore() {
	if h.ArchivedAt == nil {
		return
	}
	h.ArchivedAt = nil
	h.UpdatedAt = time.Now().UTC()
}

// habitAlias prevents MarshalJSON/UnmarshalJSON recursion.
type habitAlias Habit

type habitJSON struct {
	habitAlias
	Schedule json.RawMessage `json:"schedule"`
}

func (h Habit) MarshalJSON() ([]byte, error) {
	sched, err := MarshalSchedule(h.Schedule)
	if err != nil {
		return nil, err
	}
	return json.Marshal(habitJSON{habitAlias: habitAlias(h), Schedule: sched})
}

func (h *Habit) UnmarshalJSON(data []byte) error {
	var raw habitJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	sched, err := UnmarshalSchedule(raw.Schedule)
	if err != nil {
		return err
	}

	*h = Habit(raw.habitAlias)
	h.Schedule = sched
	return nil
}

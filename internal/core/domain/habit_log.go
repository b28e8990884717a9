package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrLogNotFound = errors.New("habit log not found")
	ErrLogConflict = errors.New("habit log version conflict")
	ErrInvalidLog  = errors.New("invalid habit log")
)

// HabitLog records one logged occurrence of a habit. Value is optional: a
// nil value marks a placeholder or migrated entry with no recorded amount
// and never counts as a completion, regardless of the habit kind.
type HabitLog struct {
	ID      string `json:"id" db:"id"`
	HabitID string `json:"habit_id" db:"habit_id"`
	UserID  string `json:"user_id" db:"user_id"`

	Date  time.Time `json:"date" db:"log_date"`
	Value *float64  `json:"value,omitempty" db:"value"`
	Notes string    `json:"notes,omitempty" db:"notes"`

	// OriginTimezone is the IANA identifier of the timezone the log was
	// created in. Display and audit only; completion and streak math use
	// the caller's anchor timezone exclusively.
	OriginTimezone string `json:"origin_timezone" db:"origin_timezone"`

	Version   int        `json:"version" db:"version"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func NewHabitLog(habitID, userID string, date time.Time, value *float64, originTimezone string) *HabitLog {
	now := time.Now().UTC()

	if originTimezone == "" {
		originTimezone = time.Local.String()
	}

	return &HabitLog{
		HabitID:        habitID,
		UserID:         userID,
		Date:           date.UTC(),
		Value:          value,
		OriginTimezone: originTimezone,

		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (l *HabitLog) Validate() error {
	if strings.TrimSpace(l.HabitID) == "" {
		return fmt.Errorf("%w: habit_id is required", ErrInvalidLog)
	}
	if strings.TrimSpace(l.UserID) == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidLog)
	}
	if l.Value != nil && *l.Value < 0 {
		return fmt.Errorf("%w: value cannot be negative", ErrInvalidLog)
	}
	if l.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidLog)
	}
	return nil
}

package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrHabitConflict = errors.New("habit version conflict")
	ErrUnauthorized  = errors.New("resource does not belong to the user")
)

type HabitRepository interface {
	// Create persists a new habit definition in the storage.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves a habit by its unique identifier.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// ListByUserID retrieves all habits associated with a specific user.
	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)

	// Update modifies the state of an existing habit.
	// Implementations must handle optimistic locking (version check).
	Update(ctx context.Context, habit *Habit) error

	// Delete soft-deletes a habit.
	Delete(ctx context.Context, id string) error

	// GetChanges [SYNC] returns only the deltas occurring after a specific date.
	GetChanges(ctx context.Context, userID string, since time.Time) ([]*Habit, error)

	// UpdateStreaks stores a freshly computed streak snapshot without
	// bumping the habit version (the snapshot is derived state, not a
	// client edit).
	UpdateStreaks(ctx context.Context, id string, current, longest int) error
}

type HabitLogRepository interface {
	// Create persists a new log to the storage.
	Create(ctx context.Context, log *HabitLog) error

	// Update modifies an existing log.
	// Implementations must handle optimistic locking (version check).
	Update(ctx context.Context, log *HabitLog) error

	// Delete performs a soft delete on the log.
	// It requires userID to ensure the user actually owns the log.
	Delete(ctx context.Context, id string, userID string) error

	// GetByID retrieves a single active (non-deleted) log by its ID.
	GetByID(ctx context.Context, id string) (*HabitLog, error)

	// ListByHabitID retrieves logs for a habit within a date range,
	// most recent first. Feeds the completion engine and calendar views;
	// the engine buckets by day and does not rely on the order.
	ListByHabitID(ctx context.Context, habitID string, from, to time.Time) ([]*HabitLog, error)

	// GetChanges [SYNC] returns all creations, updates and soft-deletes
	// after the 'since' timestamp, for offline-first synchronization.
	GetChanges(ctx context.Context, userID string, since time.Time) ([]*HabitLog, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
}

package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vladblajovan/ritualist-engine/internal/core/domain"
)

// In-memory repositories backing tests and local development. They mirror the
// Postgres implementations' semantics where it matters: soft deletes stay
// visible to GetChanges, versions guard updates, streak writes skip the
// version bump.

var (
	_ domain.HabitRepository    = (*InMemoryHabitRepository)(nil)
	_ domain.HabitLogRepository = (*InMemoryLogRepository)(nil)
	_ domain.UserRepository     = (*InMemoryUserRepository)(nil)
)

type InMemoryHabitRepository struct {
	store map[string]*domain.Habit

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[string]*domain.Habit),
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *habit
	r.store[habit.ID] = &cp
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok || habit.DeletedAt != nil {
		return nil, domain.ErrHabitNotFound
	}
	cp := *habit
	return &cp, nil
}

func (r *InMemoryHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var habits []*domain.Habit
	for _, h := range r.store {
		if h.UserID == userID && h.DeletedAt == nil {
			cp := *h
			habits = append(habits, &cp)
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		return habits[i].SortOrder < habits[j].SortOrder
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[habit.ID]
	if !ok || stored.DeletedAt != nil {
		return domain.ErrHabitNotFound
	}
	if stored.Version != habit.Version {
		return domain.ErrHabitConflict
	}

	cp := *habit
	cp.Version++
	cp.UpdatedAt = time.Now().UTC()
	r.store[habit.ID] = &cp

	habit.Version = cp.Version
	habit.UpdatedAt = cp.UpdatedAt
	return nil
}

func (r *InMemoryHabitRepository) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[id]
	if !ok || stored.DeletedAt != nil {
		return domain.ErrHabitNotFound
	}

	stored.CurrentStreak = current
	stored.LongestStreak = longest
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[id]
	if !ok || stored.DeletedAt != nil {
		return domain.ErrHabitNotFound
	}

	now := time.Now().UTC()
	stored.DeletedAt = &now
	stored.UpdatedAt = now
	stored.Version++
	return nil
}

func (r *InMemoryHabitRepository) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var habits []*domain.Habit
	for _, h := range r.store {
		if h.UserID == userID && h.UpdatedAt.After(since) {
			cp := *h
			habits = append(habits, &cp)
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		return habits[i].UpdatedAt.Before(habits[j].UpdatedAt)
	})

	return habits, nil
}

type InMemoryLogRepository struct {
	store map[string]*domain.HabitLog

	mu sync.RWMutex
}

func NewInMemoryLogRepository() *InMemoryLogRepository {
	return &InMemoryLogRepository{
		store: make(map[string]*domain.HabitLog),
	}
}

func (r *InMemoryLogRepository) Create(ctx context.Context, log *domain.HabitLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if log.ID == "" {
		log.ID = uuid.NewString()
	}

	cp := *log
	r.store[log.ID] = &cp
	return nil
}

func (r *InMemoryLogRepository) GetByID(ctx context.Context, id string) (*domain.HabitLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	log, ok := r.store[id]
	if !ok || log.DeletedAt != nil {
		return nil, domain.ErrLogNotFound
	}
	cp := *log
	return &cp, nil
}

func (r *InMemoryLogRepository) ListByHabitID(ctx context.Context, habitID string, from, to time.Time) ([]*domain.HabitLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var logs []*domain.HabitLog
	for _, l := range r.store {
		if l.HabitID != habitID || l.DeletedAt != nil {
			continue
		}
		if l.Date.Before(from) || l.Date.After(to) {
			continue
		}
		cp := *l
		logs = append(logs, &cp)
	}

	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Date.After(logs[j].Date)
	})

	return logs, nil
}

func (r *InMemoryLogRepository) Update(ctx context.Context, log *domain.HabitLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[log.ID]
	if !ok || stored.DeletedAt != nil {
		return domain.ErrLogNotFound
	}
	if stored.Version != log.Version {
		return domain.ErrLogConflict
	}

	cp := *log
	cp.Version++
	cp.UpdatedAt = time.Now().UTC()
	r.store[log.ID] = &cp

	log.Version = cp.Version
	log.UpdatedAt = cp.UpdatedAt
	return nil
}

func (r *InMemoryLogRepository) Delete(ctx context.Context, id string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[id]
	if !ok || stored.UserID != userID || stored.DeletedAt != nil {
		return domain.ErrLogNotFound
	}

	now := time.Now().UTC()
	stored.DeletedAt = &now
	stored.UpdatedAt = now
	stored.Version++
	return nil
}

func (r *InMemoryLogRepository) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.HabitLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var logs []*domain.HabitLog
	for _, l := range r.store {
		if l.UserID == userID && l.UpdatedAt.After(since) {
			cp := *l
			logs = append(logs, &cp)
		}
	}

	sort.Slice(logs, func(i, j int) bool {
		return logs[i].UpdatedAt.Before(logs[j].UpdatedAt)
	})

	return logs, nil
}

type InMemoryUserRepository struct {
	store   map[string]*domain.User
	byEmail map[string]string

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store:   make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return domain.ErrEmailAlreadyExists
	}

	cp := *user
	r.store[user.ID] = &cp
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *r.store[id]
	return &cp, nil
}

func (r *InMemoryUserRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}

	if stored.Email != user.Email {
		if _, taken := r.byEmail[user.Email]; taken {
			return domain.ErrEmailAlreadyExists
		}
		delete(r.byEmail, stored.Email)
		r.byEmail[user.Email] = user.ID
	}

	cp := *user
	cp.UpdatedAt = time.Now().UTC()
	r.store[user.ID] = &cp
	return nil
}

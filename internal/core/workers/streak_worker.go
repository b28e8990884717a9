package workers

import (
	"context"
	"log"
	"time"

	"github.com/vladblajovan/ritualist-engine/internal/core/domain"
	"github.com/vladblajovan/ritualist-engine/internal/core/engine"
)

// streakWindowDays bounds how far back the worker re-aggregates. A year of
// history is enough for any streak a habit app displays, and keeps the job
// in the low-millisecond range.
const streakWindowDays = 365

type HabitRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Habit, error)
	UpdateStreaks(ctx context.Context, id string, current, longest int) error
}

type LogRepository interface {
	ListByHabitID(ctx context.Context, habitID string, from, to time.Time) ([]*domain.HabitLog, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type StreakJob struct {
	HabitID string
}

// StreakWorker recomputes streak snapshots in the background whenever a log
// mutation invalidates them. All completion math goes through the engine.
type StreakWorker struct {
	habitRepo  HabitRepository
	logRepo    LogRepository
	userRepo   UserRepository
	aggregator *engine.ScheduleAggregator
	streaks    *engine.StreakCalculator
	jobs       chan StreakJob
}

func NewStreakWorker(hRepo HabitRepository, lRepo LogRepository, uRepo UserRepository, cal *engine.CalendarService) *StreakWorker {
	return &StreakWorker{
		habitRepo:  hRepo,
		logRepo:    lRepo,
		userRepo:   uRepo,
		aggregator: engine.NewScheduleAggregator(cal),
		streaks:    engine.NewStreakCalculator(cal),
		jobs:       make(chan StreakJob, 100),
	}
}

func (w *StreakWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Streak Worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("Streak Worker shutting down...")
				return
			}
		}
	}()
}

func (w *StreakWorker) Enqueue(habitID string) {
	select {
	case w.jobs <- StreakJob{HabitID: habitID}:
	default:
		log.Printf("Streak Worker queue full! Dropping job for habit %s", habitID)
	}
}

func (w *StreakWorker) processJob(ctx context.Context, job StreakJob) {
	habit, err := w.habitRepo.GetByID(ctx, job.HabitID)
	if err != nil {
		log.Printf("Worker Error fetching habit %s: %v", job.HabitID, err)
		return
	}

	current, longest := w.Recalculate(ctx, habit, time.Now())

	if habit.CurrentStreak != current || habit.LongestStreak != longest {
		if err := w.habitRepo.UpdateStreaks(ctx, habit.ID, current, longest); err != nil {
			log.Printf("Worker Failed to update streak for %s: %v", habit.ID, err)
		} else {
			log.Printf("Streak updated for %s: Current=%d, Longest=%d", habit.Title, current, longest)
		}
	}
}

// Recalculate aggregates the habit's recent log history in the owner's home
// timezone and walks it for streaks. Exposed so services can compute fresh
// values synchronously when a stale snapshot is not acceptable.
func (w *StreakWorker) Recalculate(ctx context.Context, habit *domain.Habit, now time.Time) (current, longest int) {
	timezone := "UTC"
	if user, err := w.userRepo.GetByID(ctx, habit.UserID); err == nil {
		timezone = user.Timezone
	} else {
		log.Printf("Worker Falling back to UTC for habit %s: %v", habit.ID, err)
	}

	from := now.AddDate(0, 0, -streakWindowDays)
	logs, err := w.logRepo.ListByHabitID(ctx, habit.ID, from, now)
	if err != nil {
		log.Printf("Worker Error fetching logs for %s: %v", habit.ID, err)
		return habit.CurrentStreak, habit.LongestStreak
	}

	results := w.aggregator.AggregateRange(habit, logs, from, now, timezone)
	streaks := w.streaks.CalculateStreaks(results, now, timezone)

	// The aggregation window is bounded, so the lifetime best may live
	// entirely outside it. Never let a recalculation shrink the snapshot.
	longest = streaks.Best
	if habit.LongestStreak > longest {
		longest = habit.LongestStreak
	}
	return streaks.Current, longest
}

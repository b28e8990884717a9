package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/vladblajovan/ritualist-engine/internal/core/domain"
)

type PostgresLogRepository struct {
	db *sqlx.DB
}

func NewPostgresLogRepository(db *sqlx.DB) *PostgresLogRepository {
	return &PostgresLogRepository{db: db}
}

func (r *PostgresLogRepository) Create(ctx context.Context, log *domain.HabitLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}

	query := `
		INSERT INTO habit_logs (
			id, habit_id, user_id,
			log_date, value, notes, origin_timezone,
			version, created_at, updated_at, deleted_at
		) VALUES (
			:id, :habit_id, :user_id,
			:log_date, :value, :notes, :origin_timezone,
			:version, :created_at, :updated_at, :deleted_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, log)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" {
				return errors.New("referenced habit or user does not exist")
			}
			if pqErr.Code == "23505" {
				return domain.ErrLogConflict
			}
		}
		return err
	}
	return nil
}

func (r *PostgresLogRepository) GetByID(ctx context.Context, id string) (*domain.HabitLog, error) {
	var log domain.HabitLog
	query := `SELECT * FROM habit_logs WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &log, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLogNotFound
		}
		return nil, err
	}
	return &log, nil
}

func (r *PostgresLogRepository) ListByHabitID(ctx context.Context, habitID string, from, to time.Time) ([]*domain.HabitLog, error) {
	logs := []*domain.HabitLog{}

	query := `
		SELECT * FROM habit_logs
		WHERE habit_id = $1
		  AND log_date >= $2
		  AND log_date <= $3
		  AND deleted_at IS NULL
		ORDER BY log_date DESC`

	err := r.db.SelectContext(ctx, &logs, query, habitID, from, to)
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *PostgresLogRepository) Update(ctx context.Context, log *domain.HabitLog) error {
	log.Version++
	log.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE habit_logs
		SET value = :value,
		    notes = :notes,
		    log_date = :log_date,
		    origin_timezone = :origin_timezone,
		    version = :version,
		    updated_at = :updated_at
		WHERE id = :id
		  AND version = :version - 1  -- Optimistic Lock check
		  AND deleted_at IS NULL`

	result, err := r.db.NamedExecContext(ctx, query, log)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		exists, _ := r.exists(ctx, log.ID)
		if !exists {
			return domain.ErrLogNotFound
		}
		return domain.ErrLogConflict
	}

	return nil
}

func (r *PostgresLogRepository) Delete(ctx context.Context, id string, userID string) error {
	now := time.Now().UTC()

	query := `
		UPDATE habit_logs
		SET deleted_at = $1,
		    updated_at = $1,
		    version = version + 1
		WHERE id = $2
		  AND user_id = $3 -- Security Check
		  AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, now, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrLogNotFound
	}

	return nil
}

func (r *PostgresLogRepository) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.HabitLog, error) {
	logs := []*domain.HabitLog{}

	query := `
		SELECT * FROM habit_logs
		WHERE user_id = $1
		  AND updated_at > $2
		ORDER BY updated_at ASC`

	err := r.db.SelectContext(ctx, &logs, query, userID, since)
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *PostgresLogRepository) exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT count(*) FROM habit_logs WHERE id = $1", id)
	return count > 0, err
}

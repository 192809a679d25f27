package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
)

// PostgresWellnessRepository implements WellnessRepository using PostgreSQL
type PostgresWellnessRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresWellnessRepository creates a new PostgresWellnessRepository
func NewPostgresWellnessRepository(pool *pgxpool.Pool) *PostgresWellnessRepository {
	return &PostgresWellnessRepository{pool: pool}
}

// Upsert inserts or updates the entry for a user and date
func (r *PostgresWellnessRepository) Upsert(ctx context.Context, entry *domain.WellnessEntry) error {
	query := `
		INSERT INTO wellness_entries (id, user_id, couple_id, entry_date, steps, sleep_minutes, water_ml, mood, calories, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11)
		ON CONFLICT (user_id, entry_date) DO UPDATE
		SET steps = EXCLUDED.steps,
			sleep_minutes = EXCLUDED.sleep_minutes,
			water_ml = EXCLUDED.water_ml,
			mood = EXCLUDED.mood,
			calories = EXCLUDED.calories,
			updated_at = EXCLUDED.updated_at
	`
	entry.UpdatedAt = time.Now()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = entry.UpdatedAt
	}
	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.CoupleID,
		entry.EntryDate,
		entry.Steps,
		entry.SleepMinutes,
		entry.WaterMl,
		entry.Mood,
		entry.Calories,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	return err
}

// GetByUserAndDate retrieves an entry for a user on a date
func (r *PostgresWellnessRepository) GetByUserAndDate(ctx context.Context, userID, entryDate string) (*domain.WellnessEntry, error) {
	query := `
		SELECT id, user_id, couple_id, entry_date, steps, sleep_minutes, water_ml, COALESCE(mood, ''), calories, created_at, updated_at
		FROM wellness_entries
		WHERE user_id = $1 AND entry_date = $2
	`
	entry := &domain.WellnessEntry{}
	err := r.pool.QueryRow(ctx, query, userID, entryDate).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.CoupleID,
		&entry.EntryDate,
		&entry.Steps,
		&entry.SleepMinutes,
		&entry.WaterMl,
		&entry.Mood,
		&entry.Calories,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

// ListByCoupleAndRange retrieves a couple's entries in a date range
func (r *PostgresWellnessRepository) ListByCoupleAndRange(ctx context.Context, coupleID, fromDate, toDate string) ([]domain.WellnessEntry, error) {
	query := `
		SELECT id, user_id, couple_id, entry_date, steps, sleep_minutes, water_ml, COALESCE(mood, ''), calories, created_at, updated_at
		FROM wellness_entries
		WHERE couple_id = $1 AND entry_date BETWEEN $2 AND $3
		ORDER BY entry_date, user_id
	`
	rows, err := r.pool.Query(ctx, query, coupleID, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.WellnessEntry
	for rows.Next() {
		var e domain.WellnessEntry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.CoupleID, &e.EntryDate,
			&e.Steps, &e.SleepMinutes, &e.WaterMl, &e.Mood, &e.Calories,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

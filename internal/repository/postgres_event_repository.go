package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
)

const eventColumns = `
	id, couple_id, owner_id, title, COALESCE(description, ''),
	start_time, end_time, COALESCE(source_timezone, ''), COALESCE(repeat_rule, ''),
	COALESCE(color, ''), is_completed, reminded_at, created_at, updated_at
`

// PostgresEventRepository implements EventRepository using PostgreSQL
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEventRepository creates a new PostgresEventRepository
func NewPostgresEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

// Create creates a new event
func (r *PostgresEventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (id, couple_id, owner_id, title, description, start_time, end_time,
			source_timezone, repeat_rule, color, is_completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), $11, $12, $13)
	`
	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.CoupleID,
		event.OwnerID,
		event.Title,
		event.Description,
		event.StartTime,
		event.EndTime,
		event.SourceTimezone,
		event.RepeatRule,
		event.Color,
		event.IsCompleted,
		event.CreatedAt,
		event.UpdatedAt,
	)
	return err
}

// GetByID retrieves an event by ID
func (r *PostgresEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	event, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return event, nil
}

// ListByCouple retrieves a couple's events intersecting a time range.
// Events without an end time count as one hour long.
func (r *PostgresEventRepository) ListByCouple(ctx context.Context, coupleID string, from, to time.Time) ([]domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE couple_id = $1
		  AND start_time < $3
		  AND COALESCE(end_time, start_time + interval '1 hour') > $2
		ORDER BY start_time, id
	`
	rows, err := r.pool.Query(ctx, query, coupleID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

// ListRecurringByCouple retrieves a couple's recurring events
func (r *PostgresEventRepository) ListRecurringByCouple(ctx context.Context, coupleID string) ([]domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE couple_id = $1 AND repeat_rule IS NOT NULL AND repeat_rule <> ''
		ORDER BY start_time, id
	`
	rows, err := r.pool.Query(ctx, query, coupleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

// Update updates an event
func (r *PostgresEventRepository) Update(ctx context.Context, event *domain.Event) error {
	query := `
		UPDATE events
		SET title = $2, description = NULLIF($3, ''), start_time = $4, end_time = $5,
			source_timezone = NULLIF($6, ''), repeat_rule = NULLIF($7, ''), color = NULLIF($8, ''),
			is_completed = $9, updated_at = $10
		WHERE id = $1
	`
	event.UpdatedAt = time.Now()
	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.StartTime,
		event.EndTime,
		event.SourceTimezone,
		event.RepeatRule,
		event.Color,
		event.IsCompleted,
		event.UpdatedAt,
	)
	return err
}

// Delete deletes an event by ID
func (r *PostgresEventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

// ListDueReminders retrieves non-recurring events starting within the
// window that have not been reminded yet
func (r *PostgresEventRepository) ListDueReminders(ctx context.Context, from, to time.Time, limit int) ([]domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE reminded_at IS NULL
		  AND (repeat_rule IS NULL OR repeat_rule = '')
		  AND start_time >= $1 AND start_time < $2
		ORDER BY start_time
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

// MarkReminded records that a reminder was sent for the event
func (r *PostgresEventRepository) MarkReminded(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE events SET reminded_at = $2 WHERE id = $1 AND reminded_at IS NULL`
	_, err := r.pool.Exec(ctx, query, id, at)
	return err
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	event := &domain.Event{}
	err := row.Scan(
		&event.ID,
		&event.CoupleID,
		&event.OwnerID,
		&event.Title,
		&event.Description,
		&event.StartTime,
		&event.EndTime,
		&event.SourceTimezone,
		&event.RepeatRule,
		&event.Color,
		&event.IsCompleted,
		&event.RemindedAt,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return event, nil
}

func collectEvents(rows pgx.Rows) ([]domain.Event, error) {
	var events []domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	return events, rows.Err()
}

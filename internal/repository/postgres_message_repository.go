package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
)

// PostgresMessageRepository implements MessageRepository using PostgreSQL
type PostgresMessageRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(pool *pgxpool.Pool) *PostgresMessageRepository {
	return &PostgresMessageRepository{pool: pool}
}

// Create creates a new message
func (r *PostgresMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (id, couple_id, sender_id, body, sent_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		message.ID,
		message.CoupleID,
		message.SenderID,
		message.Body,
		message.SentAt,
		message.CreatedAt,
	)
	return err
}

// ListByCouple retrieves messages for a couple before a cursor, newest first
func (r *PostgresMessageRepository) ListByCouple(ctx context.Context, coupleID string, before time.Time, limit int) ([]domain.Message, error) {
	query := `
		SELECT id, couple_id, sender_id, body, sent_at, created_at
		FROM messages
		WHERE couple_id = $1 AND sent_at < $2
		ORDER BY sent_at DESC
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, coupleID, before, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.CoupleID, &m.SenderID, &m.Body, &m.SentAt, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

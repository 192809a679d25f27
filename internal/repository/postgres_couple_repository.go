package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
)

// PostgresCoupleRepository implements CoupleRepository using PostgreSQL
type PostgresCoupleRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCoupleRepository creates a new PostgresCoupleRepository
func NewPostgresCoupleRepository(pool *pgxpool.Pool) *PostgresCoupleRepository {
	return &PostgresCoupleRepository{pool: pool}
}

// Create creates a new couple
func (r *PostgresCoupleRepository) Create(ctx context.Context, couple *domain.Couple) error {
	query := `
		INSERT INTO couples (id, creator_id, partner_id, invite_code, status, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		couple.ID,
		couple.CreatorID,
		couple.PartnerID,
		couple.InviteCode,
		couple.Status,
		couple.CreatedAt,
		couple.UpdatedAt,
	)
	return err
}

// GetByID retrieves a couple by ID
func (r *PostgresCoupleRepository) GetByID(ctx context.Context, id string) (*domain.Couple, error) {
	query := `
		SELECT id, creator_id, COALESCE(partner_id, ''), invite_code, status, created_at, updated_at
		FROM couples
		WHERE id = $1
	`
	return r.scanCouple(r.pool.QueryRow(ctx, query, id))
}

// GetByInviteCode retrieves a pending couple by invite code
func (r *PostgresCoupleRepository) GetByInviteCode(ctx context.Context, code string) (*domain.Couple, error) {
	query := `
		SELECT id, creator_id, COALESCE(partner_id, ''), invite_code, status, created_at, updated_at
		FROM couples
		WHERE invite_code = $1 AND status = $2
	`
	return r.scanCouple(r.pool.QueryRow(ctx, query, code, domain.CoupleStatusPending))
}

// GetByMember retrieves the couple a user belongs to
func (r *PostgresCoupleRepository) GetByMember(ctx context.Context, userID string) (*domain.Couple, error) {
	query := `
		SELECT id, creator_id, COALESCE(partner_id, ''), invite_code, status, created_at, updated_at
		FROM couples
		WHERE creator_id = $1 OR partner_id = $1
	`
	return r.scanCouple(r.pool.QueryRow(ctx, query, userID))
}

// Update updates a couple
func (r *PostgresCoupleRepository) Update(ctx context.Context, couple *domain.Couple) error {
	query := `
		UPDATE couples
		SET partner_id = NULLIF($2, ''), invite_code = $3, status = $4, updated_at = $5
		WHERE id = $1
	`
	couple.UpdatedAt = time.Now()
	_, err := r.pool.Exec(ctx, query,
		couple.ID,
		couple.PartnerID,
		couple.InviteCode,
		couple.Status,
		couple.UpdatedAt,
	)
	return err
}

func (r *PostgresCoupleRepository) scanCouple(row pgx.Row) (*domain.Couple, error) {
	couple := &domain.Couple{}
	err := row.Scan(
		&couple.ID,
		&couple.CreatorID,
		&couple.PartnerID,
		&couple.InviteCode,
		&couple.Status,
		&couple.CreatedAt,
		&couple.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return couple, nil
}

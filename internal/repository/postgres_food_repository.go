package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
)

// PostgresFoodRepository implements FoodRepository using PostgreSQL
type PostgresFoodRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresFoodRepository creates a new PostgresFoodRepository
func NewPostgresFoodRepository(pool *pgxpool.Pool) *PostgresFoodRepository {
	return &PostgresFoodRepository{pool: pool}
}

// Search retrieves food items whose name or brand matches the query
func (r *PostgresFoodRepository) Search(ctx context.Context, query string, limit int) ([]domain.FoodItem, error) {
	sql := `
		SELECT id, name, COALESCE(brand, ''), COALESCE(serving_size, ''), calories, protein_g, carbs_g, fat_g
		FROM food_items
		WHERE name ILIKE '%' || $1 || '%' OR brand ILIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, sql, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.FoodItem
	for rows.Next() {
		var it domain.FoodItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Brand, &it.ServingSize, &it.Calories, &it.ProteinG, &it.CarbsG, &it.FatG); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

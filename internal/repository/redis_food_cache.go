package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/andrewsnewton/couplespace-sub003/internal/domain"
	"github.com/andrewsnewton/couplespace-sub003/pkg/redis"
)

const foodCachePrefix = "food:search:"

// RedisFoodCache implements FoodCache using Redis
type RedisFoodCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisFoodCache creates a new RedisFoodCache
func NewRedisFoodCache(client *redis.Client, ttl time.Duration) *RedisFoodCache {
	return &RedisFoodCache{client: client, ttl: ttl}
}

// Get retrieves cached search results, (nil, nil) on miss
func (c *RedisFoodCache) Get(ctx context.Context, query string, limit int) ([]domain.FoodItem, error) {
	data, err := c.client.Get(ctx, c.key(query, limit)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var items []domain.FoodItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("unmarshal cached food results: %w", err)
	}
	return items, nil
}

// Set stores search results for a query
func (c *RedisFoodCache) Set(ctx context.Context, query string, limit int, items []domain.FoodItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal food results: %w", err)
	}
	return c.client.Set(ctx, c.key(query, limit), data, c.ttl).Err()
}

func (c *RedisFoodCache) key(query string, limit int) string {
	return fmt.Sprintf("%s%s:%d", foodCachePrefix, strings.ToLower(strings.TrimSpace(query)), limit)
}

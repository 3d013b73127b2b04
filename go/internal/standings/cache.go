package standings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mcdev12/pickpool/go/internal/models"
)

const DefaultTTL = 10 * time.Minute

// Cache stores computed standings per season.
type Cache interface {
	Get(ctx context.Context, seasonID uuid.UUID) ([]models.Standing, bool, error)
	Set(ctx context.Context, seasonID uuid.UUID, standings []models.Standing) error
	Delete(ctx context.Context, seasonID uuid.UUID) error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

func cacheKey(seasonID uuid.UUID) string {
	return fmt.Sprintf("standings:%s", seasonID)
}

func (c *RedisCache) Get(ctx context.Context, seasonID uuid.UUID) ([]models.Standing, bool, error) {
	data, err := c.client.Get(ctx, cacheKey(seasonID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get standings: %w", err)
	}
	var standings []models.Standing
	if err := json.Unmarshal(data, &standings); err != nil {
		return nil, false, fmt.Errorf("unmarshal standings: %w", err)
	}
	return standings, true, nil
}

func (c *RedisCache) Set(ctx context.Context, seasonID uuid.UUID, standings []models.Standing) error {
	data, err := json.Marshal(standings)
	if err != nil {
		return fmt.Errorf("marshal standings: %w", err)
	}
	return c.client.Set(ctx, cacheKey(seasonID), data, c.ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, seasonID uuid.UUID) error {
	return c.client.Del(ctx, cacheKey(seasonID)).Err()
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"wordquiz/internal/models"
)

// RedisProgressRepository stores the record as a JSON string under progress:<profile>
type RedisProgressRepository struct {
	client *redis.Client
	key    string
}

// NewRedisProgressRepository connects to Redis and verifies the connection
func NewRedisProgressRepository(ctx context.Context, redisURL, profileID string) (*RedisProgressRepository, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, unavailable("connect to Redis", err)
	}

	return NewRedisProgressRepositoryWithClient(client, profileID), nil
}

// NewRedisProgressRepositoryWithClient wraps an existing client
func NewRedisProgressRepositoryWithClient(client *redis.Client, profileID string) *RedisProgressRepository {
	return &RedisProgressRepository{
		client: client,
		key:    "progress:" + profileID,
	}
}

// Load retrieves the record from Redis
func (r *RedisProgressRepository) Load(ctx context.Context) (*models.UserProgress, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, unavailable("load progress from Redis", err)
	}

	return decodeProgress(data)
}

// Save writes the record without expiry
func (r *RedisProgressRepository) Save(ctx context.Context, progress *models.UserProgress) error {
	data, err := encodeProgress(progress)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return unavailable("save progress to Redis", err)
	}
	return nil
}

// Close closes the Redis client
func (r *RedisProgressRepository) Close() error {
	return r.client.Close()
}

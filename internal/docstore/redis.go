package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"club-signup/internal/common/config"
	apperrors "club-signup/internal/common/errors"
	"club-signup/internal/models"
)

// RedisStore keeps each document as a JSON string under <collection>:<id>.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisClient builds a client from config.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
}

// Key returns the Redis key of a document.
func Key(collection, id string) string {
	return collection + ":" + id
}

func (s *RedisStore) Create(ctx context.Context, collection, id string, app models.Application) error {
	body, err := json.Marshal(app)
	if err != nil {
		return apperrors.NewDocumentWriteFailedError(collection, id, err)
	}

	created, err := s.client.SetNX(ctx, Key(collection, id), string(body), 0).Result()
	if err != nil {
		return writeError(ctx, collection, id, err)
	}
	if !created {
		return apperrors.NewDocumentExistsError(collection, id)
	}
	return nil
}

// Ping tests the Redis connection
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

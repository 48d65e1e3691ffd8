package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BartekS5/uilm/pkg/models"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the state in a single Redis string key.
type RedisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisStore wraps client. A ttl of 0 keeps the state until cleared.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, key: StorageKey, ttl: ttl}
}

// WithKeyPrefix namespaces the key, e.g. per test run.
func (s *RedisStore) WithKeyPrefix(prefix string) *RedisStore {
	s.key = prefix + StorageKey
	return s
}

func (s *RedisStore) Save(ctx context.Context, cfg models.Configuration) error {
	data, err := encode(cfg)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("saving state to Redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context) (models.Configuration, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Configuration{}, ErrNotFound
	}
	if err != nil {
		return models.Configuration{}, fmt.Errorf("loading state from Redis: %w", err)
	}
	return decode(data)
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clearing state in Redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

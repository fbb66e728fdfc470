package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fan_showcase/internal/storage"
	redisapp "fan_showcase/internal/storage/redis"

	"github.com/redis/go-redis/v9"
)

type RedisKV struct {
	Client *redisapp.Client
}

func NewRedisKV(client *redisapp.Client) *RedisKV {
	return &RedisKV{Client: client}
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "repository.RedisKV.Get"

	val, err := r.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrorNoSuchKey)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return val, nil
}

// Set с ttl <= 0 сохраняет ключ без срока жизни.
func (r *RedisKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return r.Client.Set(ctx, key, value, ttl).Err()
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	return r.Client.Del(ctx, key).Err()
}

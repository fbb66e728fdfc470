package repository

import (
	"context"
	"fmt"
	"time"

	"fan_showcase/internal/storage"

	"github.com/patrickmn/go-cache"
)

const memoryCleanupInterval = 10 * time.Minute

type MemoryKV struct {
	cache *cache.Cache
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		cache: cache.New(cache.NoExpiration, memoryCleanupInterval),
	}
}

func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "repository.MemoryKV.Get"

	v, ok := m.cache.Get(key)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrorNoSuchKey)
	}

	data := v.([]byte)
	out := make([]byte, len(data))
	copy(out, data)

	return out, nil
}

func (m *MemoryKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}

	data := make([]byte, len(value))
	copy(data, value)
	m.cache.Set(key, data, ttl)

	return nil
}

func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}

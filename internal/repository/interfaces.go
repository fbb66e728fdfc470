package repository

import (
	"context"
	"time"

	"fan_showcase/internal/domain/models"
)

type CatalogRepository interface {
	Catalog(ctx context.Context) (models.Catalog, error)
}

// KeyValueStore хранит состояние посетителя (тема, просмотрщик, читалка).
// Get возвращает storage.ErrorNoSuchKey, если ключа нет или он истёк.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

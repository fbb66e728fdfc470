package repository

import (
	"context"
	"fmt"
	"log/slog"

	"fan_showcase/internal/domain/models"
	"fan_showcase/internal/storage/postgresql"
)

type Repository struct {
	db      *postgresql.Storage
	Catalog *CatalogRepo
}

// NewRepository подключается к postgres и применяет схему каталога.
func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	db, err := postgresql.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Stop()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{
		db:      db,
		Catalog: NewCatalogRepo(db.Pool()),
	}, nil
}

// SeedIfEmpty заполняет пустую базу переданным каталогом.
func (r *Repository) SeedIfEmpty(ctx context.Context, log *slog.Logger, catalog models.Catalog) error {
	n, err := r.Catalog.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	if err := r.Catalog.SaveCatalog(ctx, catalog); err != nil {
		return err
	}

	log.Info("catalog seeded", slog.Int("records", catalog.Size()))

	return nil
}

func (r *Repository) Close() {
	r.db.Stop()
}

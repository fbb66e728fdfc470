package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"fan_showcase/internal/domain/models"
	"fan_showcase/internal/storage/postgresql"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lib/pq"
)

type CatalogRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewCatalogRepo(db *pgxpool.Pool) *CatalogRepo {
	return &CatalogRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Catalog читает все разделы в порядке position.
func (r *CatalogRepo) Catalog(ctx context.Context) (models.Catalog, error) {
	const op = "repository.CatalogRepo.Catalog"

	var (
		catalog models.Catalog
		err     error
	)

	if catalog.Gallery, err = r.gallery(ctx); err != nil {
		return models.Catalog{}, fmt.Errorf("%s: %w", op, err)
	}
	if catalog.Games, err = r.games(ctx); err != nil {
		return models.Catalog{}, fmt.Errorf("%s: %w", op, err)
	}
	if catalog.Events, err = r.events(ctx); err != nil {
		return models.Catalog{}, fmt.Errorf("%s: %w", op, err)
	}
	if catalog.Characters, err = r.characters(ctx); err != nil {
		return models.Catalog{}, fmt.Errorf("%s: %w", op, err)
	}
	if catalog.Comics, err = r.comics(ctx); err != nil {
		return models.Catalog{}, fmt.Errorf("%s: %w", op, err)
	}

	return catalog, nil
}

// Count возвращает число записей в каталоге, используется при первичном заполнении.
func (r *CatalogRepo) Count(ctx context.Context) (int, error) {
	const op = "repository.CatalogRepo.Count"

	total := 0
	for _, table := range []string{
		postgresql.GalleryTable,
		postgresql.GamesTable,
		postgresql.EventsTable,
		postgresql.CharactersTable,
		postgresql.ComicsTable,
	} {
		query, args, err := r.sb.Select("COUNT(*)").From(table).ToSql()
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}

		var n int
		if err := r.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		total += n
	}

	return total, nil
}

// SaveCatalog заменяет содержимое всех таблиц одной транзакцией.
func (r *CatalogRepo) SaveCatalog(ctx context.Context, catalog models.Catalog) error {
	const op = "repository.CatalogRepo.SaveCatalog"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{
		postgresql.GalleryTable,
		postgresql.GamesTable,
		postgresql.EventsTable,
		postgresql.CharactersTable,
		postgresql.ComicsTable,
	} {
		query, args, err := r.sb.Delete(table).ToSql()
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("%s: clear %s: %w", op, table, err)
		}
	}

	inserts := make([]squirrel.InsertBuilder, 0, 5)

	if len(catalog.Gallery) > 0 {
		b := r.sb.Insert(postgresql.GalleryTable).Columns("position", "id", "title", "source", "image")
		for i, g := range catalog.Gallery {
			b = b.Values(i, g.ID, g.Title, g.Source, g.Image)
		}
		inserts = append(inserts, b)
	}

	if len(catalog.Games) > 0 {
		b := r.sb.Insert(postgresql.GamesTable).Columns("position", "id", "title", "tags", "updated", "image", "image_hover")
		for i, g := range catalog.Games {
			b = b.Values(i, g.ID, g.Title, pq.Array(tagsOrEmpty(g.Type)), g.Updated, g.Image.Main, g.Image.Hover)
		}
		inserts = append(inserts, b)
	}

	if len(catalog.Events) > 0 {
		b := r.sb.Insert(postgresql.EventsTable).Columns("position", "id", "title", "tags", "status", "image")
		for i, e := range catalog.Events {
			b = b.Values(i, e.ID, e.Title, pq.Array(tagsOrEmpty(e.Type)), e.Status, e.Image)
		}
		inserts = append(inserts, b)
	}

	if len(catalog.Characters) > 0 {
		b := r.sb.Insert(postgresql.CharactersTable).Columns("position", "id", "name", "bio", "image", "details")
		for i, c := range catalog.Characters {
			details := c.Details
			if details == nil {
				details = models.Details{}
			}
			raw, err := json.Marshal(details)
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			b = b.Values(i, c.ID, c.Name, c.Bio, c.Image, string(raw))
		}
		inserts = append(inserts, b)
	}

	if len(catalog.Comics) > 0 {
		b := r.sb.Insert(postgresql.ComicsTable).Columns("position", "id", "title", "tags", "updated", "image", "pages")
		for i, c := range catalog.Comics {
			pages := c.Pages
			if pages == nil {
				pages = []string{}
			}
			b = b.Values(i, c.ID, c.Title, pq.Array(tagsOrEmpty(c.Type)), c.Updated, c.Image, pq.Array(pages))
		}
		inserts = append(inserts, b)
	}

	for _, b := range inserts {
		query, args, err := b.ToSql()
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *CatalogRepo) query(ctx context.Context, table string, columns ...string) (pgx.Rows, error) {
	query, args, err := r.sb.Select(columns...).From(table).OrderBy("position").ToSql()
	if err != nil {
		return nil, err
	}
	return r.db.Query(ctx, query, args...)
}

func (r *CatalogRepo) gallery(ctx context.Context) ([]models.GalleryItem, error) {
	rows, err := r.query(ctx, postgresql.GalleryTable, "id", "title", "source", "image")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.GalleryItem
	for rows.Next() {
		var g models.GalleryItem
		if err := rows.Scan(&g.ID, &g.Title, &g.Source, &g.Image); err != nil {
			return nil, err
		}
		items = append(items, g)
	}

	return items, rows.Err()
}

func (r *CatalogRepo) games(ctx context.Context) ([]models.GameEntry, error) {
	rows, err := r.query(ctx, postgresql.GamesTable, "id", "title", "tags", "updated", "image", "image_hover")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.GameEntry
	for rows.Next() {
		var (
			g    models.GameEntry
			tags []string
		)
		if err := rows.Scan(&g.ID, &g.Title, &tags, &g.Updated, &g.Image.Main, &g.Image.Hover); err != nil {
			return nil, err
		}
		g.Type = tagsOrNil(tags)
		items = append(items, g)
	}

	return items, rows.Err()
}

func (r *CatalogRepo) events(ctx context.Context) ([]models.EventEntry, error) {
	rows, err := r.query(ctx, postgresql.EventsTable, "id", "title", "tags", "status", "image")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.EventEntry
	for rows.Next() {
		var (
			e    models.EventEntry
			tags []string
		)
		if err := rows.Scan(&e.ID, &e.Title, &tags, &e.Status, &e.Image); err != nil {
			return nil, err
		}
		e.Type = tagsOrNil(tags)
		items = append(items, e)
	}

	return items, rows.Err()
}

func (r *CatalogRepo) characters(ctx context.Context) ([]models.CharacterProfile, error) {
	rows, err := r.query(ctx, postgresql.CharactersTable, "id", "name", "bio", "image", "details")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.CharacterProfile
	for rows.Next() {
		var (
			c   models.CharacterProfile
			raw []byte
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Bio, &c.Image, &raw); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &c.Details); err != nil {
			return nil, fmt.Errorf("character %d details: %w", c.ID, err)
		}
		items = append(items, c)
	}

	return items, rows.Err()
}

func (r *CatalogRepo) comics(ctx context.Context) ([]models.ComicEntry, error) {
	rows, err := r.query(ctx, postgresql.ComicsTable, "id", "title", "tags", "updated", "image", "pages")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.ComicEntry
	for rows.Next() {
		var (
			c    models.ComicEntry
			tags []string
		)
		if err := rows.Scan(&c.ID, &c.Title, &tags, &c.Updated, &c.Image, &c.Pages); err != nil {
			return nil, err
		}
		c.Type = tagsOrNil(tags)
		items = append(items, c)
	}

	return items, rows.Err()
}

func tagsOrEmpty(t models.TagList) []string {
	if t == nil {
		return []string{}
	}
	return []string(t)
}

func tagsOrNil(tags []string) models.TagList {
	if len(tags) == 0 {
		return nil
	}
	return models.TagList(tags)
}

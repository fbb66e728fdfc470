package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Таблицы каталога. position сохраняет порядок записей из исходного документа.
const (
	GalleryTable    = "gallery_items"
	GamesTable      = "games"
	EventsTable     = "events"
	CharactersTable = "characters"
	ComicsTable     = "comics"
)

const schema = `
CREATE TABLE IF NOT EXISTS ` + GalleryTable + ` (
	position INT PRIMARY KEY,
	id BIGINT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	source TEXT NOT NULL DEFAULT '',
	image TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS ` + GamesTable + ` (
	position INT PRIMARY KEY,
	id BIGINT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	tags TEXT[] NOT NULL DEFAULT '{}',
	updated TEXT NOT NULL DEFAULT '',
	image TEXT NOT NULL DEFAULT '',
	image_hover TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS ` + EventsTable + ` (
	position INT PRIMARY KEY,
	id BIGINT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	tags TEXT[] NOT NULL DEFAULT '{}',
	status TEXT NOT NULL DEFAULT '',
	image TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS ` + CharactersTable + ` (
	position INT PRIMARY KEY,
	id BIGINT NOT NULL,
	name TEXT NOT NULL DEFAULT '',
	bio TEXT NOT NULL DEFAULT '',
	image TEXT NOT NULL DEFAULT '',
	details JSONB NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS ` + ComicsTable + ` (
	position INT PRIMARY KEY,
	id BIGINT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	tags TEXT[] NOT NULL DEFAULT '{}',
	updated TEXT NOT NULL DEFAULT '',
	image TEXT NOT NULL DEFAULT '',
	pages TEXT[] NOT NULL DEFAULT '{}'
);
`

type Storage struct {
	db *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Storage, error) {
	const op = "storage.postgresql.New"

	db, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.db
}

// Migrate создаёт таблицы каталога, если их ещё нет.
func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.postgresql.Migrate"

	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) Stop() {
	s.db.Close()
}

package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fan_showcase/internal/domain/models"
	"fan_showcase/internal/repository"
	"fan_showcase/internal/storage"
	"fan_showcase/internal/storage/catalogfile"
	redisapp "fan_showcase/internal/storage/redis"

	"github.com/brianvoe/gofakeit"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	testCtx = context.Background()
)

func setupTestDSN(t *testing.T) string {
	if testing.Short() {
		t.Skip("postgres container skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(time.Minute),
	}

	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		pgContainer.Terminate(ctx)
	})

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())
}

func TestCatalogRepo_SaveAndLoad(t *testing.T) {
	dsn := setupTestDSN(t)

	repo, err := repository.NewRepository(testCtx, dsn)
	require.NoError(t, err)
	t.Cleanup(repo.Close)

	sample, err := catalogfile.Sample()
	require.NoError(t, err)

	t.Run("empty database", func(t *testing.T) {
		n, err := repo.Catalog.Count(testCtx)
		require.NoError(t, err)
		assert.Zero(t, n)

		catalog, err := repo.Catalog.Catalog(testCtx)
		require.NoError(t, err)
		assert.Zero(t, catalog.Size())
	})

	t.Run("seed keeps document order", func(t *testing.T) {
		require.NoError(t, repo.SeedIfEmpty(testCtx, discardLogger(), sample))

		catalog, err := repo.Catalog.Catalog(testCtx)
		require.NoError(t, err)

		require.Equal(t, sample.Size(), catalog.Size())
		assert.Equal(t, sample.Gallery, catalog.Gallery)
		assert.Equal(t, sample.Events, catalog.Events)
		assert.Equal(t, sample.Characters, catalog.Characters)

		for i, g := range sample.Games {
			assert.Equal(t, g.Title, catalog.Games[i].Title)
			assert.Equal(t, g.Type, catalog.Games[i].Type)
			assert.Equal(t, g.Image, catalog.Games[i].Image)
		}
		for i, c := range sample.Comics {
			assert.Equal(t, c.Pages, catalog.Comics[i].Pages)
		}
	})

	t.Run("seed is skipped when data exists", func(t *testing.T) {
		other := models.Catalog{Gallery: []models.GalleryItem{{ID: 1, Title: gofakeit.Name()}}}
		require.NoError(t, repo.SeedIfEmpty(testCtx, discardLogger(), other))

		n, err := repo.Catalog.Count(testCtx)
		require.NoError(t, err)
		assert.Equal(t, sample.Size(), n)
	})

	t.Run("save replaces catalog", func(t *testing.T) {
		title := gofakeit.Name()
		replacement := models.Catalog{
			Comics: []models.ComicEntry{
				{ID: 7, Title: title, Type: models.TagList{"短篇"}, Updated: "2024-01-01", Pages: []string{"p1.png", "p2.png"}},
			},
		}
		require.NoError(t, repo.Catalog.SaveCatalog(testCtx, replacement))

		catalog, err := repo.Catalog.Catalog(testCtx)
		require.NoError(t, err)

		assert.Empty(t, catalog.Gallery)
		require.Len(t, catalog.Comics, 1)
		assert.Equal(t, title, catalog.Comics[0].Title)
		assert.Equal(t, []string{"p1.png", "p2.png"}, catalog.Comics[0].Pages)
	})
}

func NewMockClient() (*redisapp.Client, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	return &redisapp.Client{Client: db}, mock
}

func setupRedisKV() (*repository.RedisKV, redismock.ClientMock) {
	db, mock := NewMockClient()
	return repository.NewRedisKV(db), mock
}

func TestRedisKV_Get(t *testing.T) {
	kv, mock := setupRedisKV()
	key := repository.VisitorKey("v1", "theme")

	t.Run("key exists", func(t *testing.T) {
		mock.ExpectGet(key).SetVal(`"light"`)
		val, err := kv.Get(testCtx, key)
		require.NoError(t, err)
		assert.Equal(t, []byte(`"light"`), val)
	})

	t.Run("key not exists", func(t *testing.T) {
		mock.ExpectGet(key).RedisNil()
		_, err := kv.Get(testCtx, key)
		assert.ErrorIs(t, err, storage.ErrorNoSuchKey)
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectGet(key).SetErr(redis.ErrClosed)
		_, err := kv.Get(testCtx, key)
		assert.ErrorIs(t, err, redis.ErrClosed)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisKV_Set(t *testing.T) {
	kv, mock := setupRedisKV()
	key := repository.VisitorKey("v1", "reader")
	value := []byte(`{"pageIndex":1}`)

	t.Run("with ttl", func(t *testing.T) {
		mock.ExpectSet(key, value, time.Hour).SetVal("OK")
		assert.NoError(t, kv.Set(testCtx, key, value, time.Hour))
	})

	t.Run("negative ttl means no expiry", func(t *testing.T) {
		mock.ExpectSet(key, value, 0).SetVal("OK")
		assert.NoError(t, kv.Set(testCtx, key, value, -1))
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectSet(key, value, 0).SetErr(redis.ErrClosed)
		assert.ErrorIs(t, kv.Set(testCtx, key, value, 0), redis.ErrClosed)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisKV_Delete(t *testing.T) {
	kv, mock := setupRedisKV()
	key := repository.VisitorKey("v1", "viewer")

	mock.ExpectDel(key).SetVal(1)
	assert.NoError(t, kv.Delete(testCtx, key))

	mock.ExpectDel(key).SetErr(redis.ErrClosed)
	assert.ErrorIs(t, kv.Delete(testCtx, key), redis.ErrClosed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryKV(t *testing.T) {
	kv := repository.NewMemoryKV()

	_, err := kv.Get(testCtx, "missing")
	assert.ErrorIs(t, err, storage.ErrorNoSuchKey)

	value := []byte("red-black")
	require.NoError(t, kv.Set(testCtx, "theme", value, 0))
	value[0] = 'X'

	got, err := kv.Get(testCtx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "red-black", string(got), "stored value is a copy")

	require.NoError(t, kv.Delete(testCtx, "theme"))
	_, err = kv.Get(testCtx, "theme")
	assert.ErrorIs(t, err, storage.ErrorNoSuchKey)
}

func TestMemoryKV_TTL(t *testing.T) {
	kv := repository.NewMemoryKV()

	require.NoError(t, kv.Set(testCtx, "short", []byte("1"), 20*time.Millisecond))

	assert.Eventually(t, func() bool {
		_, err := kv.Get(testCtx, "short")
		return err != nil
	}, time.Second, 10*time.Millisecond)
}

func TestJSONHelpers(t *testing.T) {
	kv := repository.NewMemoryKV()
	key := repository.VisitorKey("abc", "viewer")

	assert.Equal(t, "visitor:abc:viewer", key)

	type state struct {
		Active bool   `json:"active"`
		Src    string `json:"src"`
	}

	var got state
	found, err := repository.LoadJSON(testCtx, kv, key, &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repository.SaveJSON(testCtx, kv, key, state{Active: true, Src: "/assets/hh.jpg"}, time.Hour))

	found, err = repository.LoadJSON(testCtx, kv, key, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, state{Active: true, Src: "/assets/hh.jpg"}, got)

	require.NoError(t, kv.Set(testCtx, key, []byte("{broken"), 0))
	_, err = repository.LoadJSON(testCtx, kv, key, &got)
	assert.Error(t, err)
}

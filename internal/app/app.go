package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	httpapp "fan_showcase/internal/app/http"
	"fan_showcase/internal/config"
	"fan_showcase/internal/domain/view"
	"fan_showcase/internal/lib/logger/sl"
	"fan_showcase/internal/repository"
	catalogsrv "fan_showcase/internal/services/catalog_service"
	companionsrv "fan_showcase/internal/services/companion_service"
	readersrv "fan_showcase/internal/services/reader_service"
	themesrv "fan_showcase/internal/services/theme_service"
	viewersrv "fan_showcase/internal/services/viewer_service"
	"fan_showcase/internal/storage/catalogfile"
	storage "fan_showcase/internal/storage/filestorage"
	redisapp "fan_showcase/internal/storage/redis"
	httprouters "fan_showcase/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server

	log     *slog.Logger
	cancel  context.CancelFunc
	closers []func() error
}

func New(log *slog.Logger, cfg *config.Config) *App {
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{log: log, cancel: cancel}

	catalogRepo, err := a.catalogRepository(ctx, cfg)
	if err != nil {
		panic(err)
	}

	kv, err := a.keyValueStore(ctx, cfg)
	if err != nil {
		panic(err)
	}

	assets, err := storage.NewLocalAssetStorage(cfg.Assets.BaseDir, cfg.Assets.BaseURL)
	if err != nil {
		panic(err)
	}

	builder := view.NewBuilder(assets, cfg.Assets.Placeholders)

	catalogService := catalogsrv.NewCatalogService(log, catalogRepo, builder)
	themeService := themesrv.NewThemeService(log, kv)
	viewerService := viewersrv.NewViewerService(log, kv, catalogService, cfg.KV.StateTTL)
	readerService := readersrv.NewReaderService(log, kv, catalogService, cfg.KV.StateTTL)
	companionService := companionsrv.NewCompanionService(log, companionsrv.Layout{
		Left:   cfg.Companion.Left,
		Top:    cfg.Companion.Top,
		Width:  cfg.Companion.Width,
		Height: cfg.Companion.Height,
		Delay:  cfg.Companion.InteractiveDelay,
	}, cfg.Companion.IdleTTL)

	routers := httprouters.NewRouter(
		log,
		httprouters.NavSettings{Offset: cfg.Nav.Offset, ScrollDuration: cfg.Nav.ScrollDuration},
		catalogService,
		themeService,
		viewerService,
		readerService,
		companionService,
	)

	a.HTTPServer = httpapp.New(log, cfg.HTTP, cfg.Assets, routers)

	return a
}

func (a *App) catalogRepository(ctx context.Context, cfg *config.Config) (repository.CatalogRepository, error) {
	const op = "app.catalogRepository"

	switch cfg.Catalog.Source {
	case config.CatalogFile:
		store, err := catalogfile.NewFile(a.log, cfg.Catalog.Path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if cfg.Catalog.Watch {
			if err := store.Watch(ctx, catalogfile.DefaultDebounce); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
		return store, nil

	case config.CatalogPostgres:
		repo, err := repository.NewRepository(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		a.closers = append(a.closers, func() error { repo.Close(); return nil })

		if cfg.Catalog.Seed {
			sample, err := catalogfile.Sample()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			if err := repo.SeedIfEmpty(ctx, a.log, sample); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
		return repo.Catalog, nil

	default:
		store, err := catalogfile.NewEmbedded(a.log)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return store, nil
	}
}

func (a *App) keyValueStore(ctx context.Context, cfg *config.Config) (repository.KeyValueStore, error) {
	const op = "app.keyValueStore"

	switch cfg.KV.Driver {
	case config.KVBolt:
		kv, err := repository.NewBoltKV(cfg.KV.BoltPath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		a.closers = append(a.closers, kv.Close)
		go a.purgeExpired(ctx, kv)
		return kv, nil

	case config.KVRedis:
		client := redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
		if err := client.HealthCheck(ctx); err != nil {
			client.Close()
			return nil, fmt.Errorf("%s: redis: %w", op, err)
		}
		a.closers = append(a.closers, client.Close)
		return repository.NewRedisKV(client), nil

	default:
		return repository.NewMemoryKV(), nil
	}
}

const boltPurgeInterval = time.Hour

// purgeExpired чистит истёкшие состояния посетителей; redis и go-cache
// делают это сами.
func (a *App) purgeExpired(ctx context.Context, kv *repository.BoltKV) {
	ticker := time.NewTicker(boltPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := kv.PurgeExpired(ctx)
			if err != nil {
				a.log.Error("failed to purge visitor state", sl.Err(err))
				continue
			}
			if n > 0 {
				a.log.Debug("visitor state purged", slog.Int("removed", n))
			}
		}
	}
}

// Stop останавливает HTTP-сервер, наблюдатель каталога и закрывает хранилища.
func (a *App) Stop() {
	if err := a.HTTPServer.Stop(); err != nil {
		a.log.Error("failed to stop http server", sl.Err(err))
	}

	a.cancel()

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Error("failed to close storage", sl.Err(err))
		}
	}
}

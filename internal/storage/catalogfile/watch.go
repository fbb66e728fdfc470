package catalogfile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"fan_showcase/internal/lib/logger/sl"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 500 * time.Millisecond

// Watch reloads the catalog whenever its file changes, until ctx is done.
// The parent directory is watched so editors that replace the file on save
// are picked up.
func (s *Store) Watch(ctx context.Context, debounce time.Duration) error {
	const op = "storage.catalogfile.Store.Watch"

	if s.path == "" {
		return errors.New(op + ": embedded catalog cannot be watched")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("%s: %w", op, err)
	}

	log := s.log.With(slog.String("op", op), slog.String("path", s.path))
	target := filepath.Clean(s.path)

	go func() {
		defer watcher.Close()

		var reloadTimer *time.Timer
		defer func() {
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}

				log.Debug("catalog change detected", slog.String("event", event.Op.String()))

				if reloadTimer != nil {
					reloadTimer.Stop()
				}
				reloadTimer = time.AfterFunc(debounce, func() {
					if err := s.Reload(); err != nil {
						log.Error("catalog reload failed", sl.Err(err))
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error("watcher error", sl.Err(err))
			}
		}
	}()

	return nil
}

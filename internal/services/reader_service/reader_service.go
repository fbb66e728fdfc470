package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fan_showcase/internal/domain/modal"
	"fan_showcase/internal/domain/models"
	"fan_showcase/internal/domain/view"
	"fan_showcase/internal/lib/logger/sl"
	"fan_showcase/internal/metrics"
	"fan_showcase/internal/repository"
)

const readerKey = "reader"

type ComicLookup interface {
	Comic(ctx context.Context, index int) (models.ComicEntry, error)
	PageImage(ref, alt string) view.Image
}

// ReaderService единственный, кто меняет состояние читалки посетителя.
type ReaderService struct {
	log    *slog.Logger
	kv     repository.KeyValueStore
	comics ComicLookup
	ttl    time.Duration
}

func NewReaderService(log *slog.Logger, kv repository.KeyValueStore, comics ComicLookup, ttl time.Duration) *ReaderService {
	return &ReaderService{
		log:    log,
		kv:     kv,
		comics: comics,
		ttl:    ttl,
	}
}

func (s *ReaderService) State(ctx context.Context, visitorID string) (view.ReaderView, error) {
	const op = "service.ReaderService.State"

	r, err := s.load(ctx, visitorID)
	if err != nil {
		return view.ReaderView{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.render(r), nil
}

// Open открывает комикс с позицией index на первой странице.
func (s *ReaderService) Open(ctx context.Context, visitorID string, index int) (view.ReaderView, error) {
	const op = "service.ReaderService.Open"

	comic, err := s.comics.Comic(ctx, index)
	if err != nil {
		s.log.Warn("comic not available",
			slog.String("op", op),
			slog.String("visitor_id", visitorID),
			slog.Int("index", index),
			sl.Err(err),
		)
		return view.ReaderView{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.transition(ctx, visitorID, "open", func(r modal.Reader) modal.Reader {
		return r.Open(comic)
	})
}

func (s *ReaderService) Next(ctx context.Context, visitorID string) (view.ReaderView, error) {
	return s.transition(ctx, visitorID, "next", modal.Reader.Next)
}

func (s *ReaderService) Prev(ctx context.Context, visitorID string) (view.ReaderView, error) {
	return s.transition(ctx, visitorID, "prev", modal.Reader.Prev)
}

func (s *ReaderService) Close(ctx context.Context, visitorID string) (view.ReaderView, error) {
	return s.transition(ctx, visitorID, "close", modal.Reader.Close)
}

func (s *ReaderService) HandleKey(ctx context.Context, visitorID string, key modal.Key) (view.ReaderView, error) {
	return s.transition(ctx, visitorID, "key", func(r modal.Reader) modal.Reader {
		return r.HandleKey(key)
	})
}

func (s *ReaderService) HandlePointer(ctx context.Context, visitorID string, target modal.Target) (view.ReaderView, error) {
	return s.transition(ctx, visitorID, "pointer", func(r modal.Reader) modal.Reader {
		return r.HandlePointer(target)
	})
}

func (s *ReaderService) load(ctx context.Context, visitorID string) (modal.Reader, error) {
	var r modal.Reader
	if _, err := repository.LoadJSON(ctx, s.kv, repository.VisitorKey(visitorID, readerKey), &r); err != nil {
		return modal.Reader{}, err
	}
	return r, nil
}

func (s *ReaderService) transition(ctx context.Context, visitorID, action string, fn func(modal.Reader) modal.Reader) (view.ReaderView, error) {
	const op = "service.ReaderService.transition"

	log := s.log.With(
		slog.String("op", op),
		slog.String("visitor_id", visitorID),
		slog.String("action", action),
	)

	current, err := s.load(ctx, visitorID)
	if err != nil {
		log.Error("failed to load reader state", sl.Err(err))
		return view.ReaderView{}, fmt.Errorf("%s: %w", op, err)
	}

	next := fn(current)
	if !current.Active() && !next.Active() {
		return s.render(next), nil
	}
	if current.Active() && next.Active() && current.PageIndex == next.PageIndex && action != "open" {
		return s.render(next), nil
	}

	key := repository.VisitorKey(visitorID, readerKey)
	if next.Active() {
		err = repository.SaveJSON(ctx, s.kv, key, next, s.ttl)
	} else {
		err = s.kv.Delete(ctx, key)
	}
	if err != nil {
		log.Error("failed to save reader state", sl.Err(err))
		return view.ReaderView{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.ReaderTransitions.WithLabelValues(action).Inc()

	if next.Active() {
		log.Debug("reader state changed",
			slog.Int("comic_id", next.Comic.ID),
			slog.Int("page", next.PageIndex),
		)
	} else {
		log.Debug("reader closed")
	}

	return s.render(next), nil
}

func (s *ReaderService) render(r modal.Reader) view.ReaderView {
	if !r.Active() {
		return view.ReaderView{}
	}

	v := view.ReaderView{
		Open:      true,
		ComicID:   r.Comic.ID,
		Title:     r.Comic.Title,
		PageIndex: r.PageIndex,
		PageCount: len(r.Comic.Pages),
	}

	if page, ok := r.Page(); ok {
		v.Page = &view.ReaderPage{
			Image:     s.comics.PageImage(page.Src, page.Alt),
			Indicator: page.Indicator,
		}
	}

	return v
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fan_showcase/internal/domain/modal"
	"fan_showcase/internal/domain/view"
	"fan_showcase/internal/lib/logger/sl"
	"fan_showcase/internal/metrics"
	"fan_showcase/internal/repository"
)

const viewerKey = "viewer"

type GalleryLookup interface {
	GalleryCard(ctx context.Context, index int) (view.Card, error)
}

// ViewerService хранит состояние просмотрщика изображений для каждого посетителя.
type ViewerService struct {
	log     *slog.Logger
	kv      repository.KeyValueStore
	gallery GalleryLookup
	ttl     time.Duration
}

func NewViewerService(log *slog.Logger, kv repository.KeyValueStore, gallery GalleryLookup, ttl time.Duration) *ViewerService {
	return &ViewerService{
		log:     log,
		kv:      kv,
		gallery: gallery,
		ttl:     ttl,
	}
}

func (s *ViewerService) State(ctx context.Context, visitorID string) (modal.Viewer, error) {
	const op = "service.ViewerService.State"

	var v modal.Viewer
	if _, err := repository.LoadJSON(ctx, s.kv, repository.VisitorKey(visitorID, viewerKey), &v); err != nil {
		return modal.Viewer{}, fmt.Errorf("%s: %w", op, err)
	}

	return v, nil
}

// Open показывает изображение карточки галереи с позицией index.
func (s *ViewerService) Open(ctx context.Context, visitorID string, index int) (modal.Viewer, error) {
	const op = "service.ViewerService.Open"

	log := s.log.With(
		slog.String("op", op),
		slog.String("visitor_id", visitorID),
		slog.Int("index", index),
	)

	card, err := s.gallery.GalleryCard(ctx, index)
	if err != nil {
		log.Warn("gallery card not available", sl.Err(err))
		return modal.Viewer{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.transition(ctx, visitorID, "open", func(v modal.Viewer) modal.Viewer {
		if card.Image.Failed {
			return v.OpenFailed(card.Caption)
		}
		return v.Open(card.Image.Src, card.Caption)
	})
}

func (s *ViewerService) Close(ctx context.Context, visitorID string) (modal.Viewer, error) {
	return s.transition(ctx, visitorID, "close", modal.Viewer.Close)
}

func (s *ViewerService) HandleKey(ctx context.Context, visitorID string, key modal.Key) (modal.Viewer, error) {
	return s.transition(ctx, visitorID, "key", func(v modal.Viewer) modal.Viewer {
		return v.HandleKey(key)
	})
}

func (s *ViewerService) HandlePointer(ctx context.Context, visitorID string, target modal.Target) (modal.Viewer, error) {
	return s.transition(ctx, visitorID, "pointer", func(v modal.Viewer) modal.Viewer {
		return v.HandlePointer(target)
	})
}

func (s *ViewerService) transition(ctx context.Context, visitorID, action string, fn func(modal.Viewer) modal.Viewer) (modal.Viewer, error) {
	const op = "service.ViewerService.transition"

	log := s.log.With(
		slog.String("op", op),
		slog.String("visitor_id", visitorID),
		slog.String("action", action),
	)

	current, err := s.State(ctx, visitorID)
	if err != nil {
		log.Error("failed to load viewer state", sl.Err(err))
		return modal.Viewer{}, fmt.Errorf("%s: %w", op, err)
	}

	next := fn(current)
	if next == current {
		return current, nil
	}

	key := repository.VisitorKey(visitorID, viewerKey)
	if next.Active {
		err = repository.SaveJSON(ctx, s.kv, key, next, s.ttl)
	} else {
		err = s.kv.Delete(ctx, key)
	}
	if err != nil {
		log.Error("failed to save viewer state", sl.Err(err))
		return modal.Viewer{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.ViewerTransitions.WithLabelValues(action).Inc()
	log.Debug("viewer state changed", slog.Bool("active", next.Active))

	return next, nil
}

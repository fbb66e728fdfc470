package services

import (
	"context"
	"fmt"
	"log/slog"

	"fan_showcase/internal/domain/models"
	"fan_showcase/internal/lib/logger/sl"
	"fan_showcase/internal/metrics"
	"fan_showcase/internal/repository"
	"fan_showcase/internal/storage"
)

const themeKey = "theme"

type ThemeService struct {
	log *slog.Logger
	kv  repository.KeyValueStore
}

func NewThemeService(log *slog.Logger, kv repository.KeyValueStore) *ThemeService {
	return &ThemeService{
		log: log,
		kv:  kv,
	}
}

// Current возвращает сохранённую тему посетителя, по умолчанию светлую.
func (s *ThemeService) Current(ctx context.Context, visitorID string) (models.Theme, error) {
	const op = "service.ThemeService.Current"

	var saved string
	found, err := repository.LoadJSON(ctx, s.kv, repository.VisitorKey(visitorID, themeKey), &saved)
	if err != nil {
		return models.DefaultTheme, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return models.DefaultTheme, nil
	}

	theme, ok := models.ParseTheme(saved)
	if !ok {
		s.log.Warn("unknown saved theme",
			slog.String("op", op),
			slog.String("visitor_id", visitorID),
			slog.String("theme", saved),
		)
	}

	return theme, nil
}

// Toggle переключает тему и сразу сохраняет её.
func (s *ThemeService) Toggle(ctx context.Context, visitorID string) (models.Theme, error) {
	const op = "service.ThemeService.Toggle"

	current, err := s.Current(ctx, visitorID)
	if err != nil {
		return models.DefaultTheme, fmt.Errorf("%s: %w", op, err)
	}

	next := current.Toggle()
	if err := s.save(ctx, visitorID, next); err != nil {
		return current, fmt.Errorf("%s: %w", op, err)
	}

	return next, nil
}

func (s *ThemeService) Set(ctx context.Context, visitorID, theme string) (models.Theme, error) {
	const op = "service.ThemeService.Set"

	parsed, ok := models.ParseTheme(theme)
	if !ok {
		return models.DefaultTheme, fmt.Errorf("%s: %q: %w", op, theme, storage.ErrInvalidTheme)
	}

	if err := s.save(ctx, visitorID, parsed); err != nil {
		return models.DefaultTheme, fmt.Errorf("%s: %w", op, err)
	}

	return parsed, nil
}

func (s *ThemeService) save(ctx context.Context, visitorID string, theme models.Theme) error {
	log := s.log.With(
		slog.String("visitor_id", visitorID),
		slog.String("theme", string(theme)),
	)

	// тема хранится без срока жизни, как в localStorage
	if err := repository.SaveJSON(ctx, s.kv, repository.VisitorKey(visitorID, themeKey), string(theme), 0); err != nil {
		log.Error("failed to save theme", sl.Err(err))
		return err
	}

	metrics.ThemeToggles.WithLabelValues(string(theme)).Inc()
	log.Debug("theme saved")

	return nil
}

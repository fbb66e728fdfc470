package services

import (
	"context"
	"fmt"
	"log/slog"

	"fan_showcase/internal/domain/models"
	"fan_showcase/internal/domain/view"
	"fan_showcase/internal/lib/logger/sl"
	"fan_showcase/internal/repository"
	"fan_showcase/internal/storage"
)

type CatalogService struct {
	log     *slog.Logger
	repo    repository.CatalogRepository
	builder *view.Builder
}

func NewCatalogService(log *slog.Logger, repo repository.CatalogRepository, builder *view.Builder) *CatalogService {
	return &CatalogService{
		log:     log,
		repo:    repo,
		builder: builder,
	}
}

// Sections строит карточки всех разделов в порядке отображения.
func (s *CatalogService) Sections(ctx context.Context) (view.Sections, error) {
	const op = "service.CatalogService.Sections"

	catalog, err := s.repo.Catalog(ctx)
	if err != nil {
		s.log.Error("failed to load catalog", slog.String("op", op), sl.Err(err))
		return view.Sections{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.builder.Build(catalog), nil
}

// GalleryCard возвращает карточку галереи по позиции на странице.
func (s *CatalogService) GalleryCard(ctx context.Context, index int) (view.Card, error) {
	const op = "service.CatalogService.GalleryCard"

	catalog, err := s.repo.Catalog(ctx)
	if err != nil {
		return view.Card{}, fmt.Errorf("%s: %w", op, err)
	}

	if index < 0 || index >= len(catalog.Gallery) {
		return view.Card{}, fmt.Errorf("%s: gallery item %d: %w", op, index, storage.ErrNotFound)
	}

	return s.builder.GalleryCards(catalog.Gallery)[index], nil
}

// Comic возвращает комикс по позиции в отсортированном списке.
func (s *CatalogService) Comic(ctx context.Context, index int) (models.ComicEntry, error) {
	const op = "service.CatalogService.Comic"

	catalog, err := s.repo.Catalog(ctx)
	if err != nil {
		return models.ComicEntry{}, fmt.Errorf("%s: %w", op, err)
	}

	comics := view.SortComics(catalog.Comics)
	if index < 0 || index >= len(comics) {
		return models.ComicEntry{}, fmt.Errorf("%s: comic %d: %w", op, index, storage.ErrNotFound)
	}

	return comics[index], nil
}

// PageImage resolves a comic page for the reader.
func (s *CatalogService) PageImage(ref, alt string) view.Image {
	return s.builder.PageImage(ref, alt)
}

package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"fan_showcase/internal/domain/companion"
	"fan_showcase/internal/domain/modal"
	"fan_showcase/internal/domain/models"
	"fan_showcase/internal/domain/view"
	"fan_showcase/internal/lib/logger/sl"
	"fan_showcase/internal/storage"
	"fan_showcase/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"

	_ "fan_showcase/docs"
)

type CatalogService interface {
	Sections(ctx context.Context) (view.Sections, error)
}

type ThemeService interface {
	Current(ctx context.Context, visitorID string) (models.Theme, error)
	Toggle(ctx context.Context, visitorID string) (models.Theme, error)
	Set(ctx context.Context, visitorID, theme string) (models.Theme, error)
}

type ViewerService interface {
	State(ctx context.Context, visitorID string) (modal.Viewer, error)
	Open(ctx context.Context, visitorID string, index int) (modal.Viewer, error)
	Close(ctx context.Context, visitorID string) (modal.Viewer, error)
	HandleKey(ctx context.Context, visitorID string, key modal.Key) (modal.Viewer, error)
	HandlePointer(ctx context.Context, visitorID string, target modal.Target) (modal.Viewer, error)
}

type ReaderService interface {
	State(ctx context.Context, visitorID string) (view.ReaderView, error)
	Open(ctx context.Context, visitorID string, index int) (view.ReaderView, error)
	Next(ctx context.Context, visitorID string) (view.ReaderView, error)
	Prev(ctx context.Context, visitorID string) (view.ReaderView, error)
	Close(ctx context.Context, visitorID string) (view.ReaderView, error)
	HandleKey(ctx context.Context, visitorID string, key modal.Key) (view.ReaderView, error)
	HandlePointer(ctx context.Context, visitorID string, target modal.Target) (view.ReaderView, error)
}

type CompanionService interface {
	State(visitorID string) companion.Snapshot
	Click(visitorID string) companion.Snapshot
	StartDrag(visitorID string, x, y float64) companion.Snapshot
	DragTo(visitorID string, x, y float64) companion.Snapshot
	EndDrag(visitorID string) companion.Snapshot
	Resize(visitorID string, width, height float64) companion.Snapshot
}

// NavSettings are the scroll parameters handed to the page script.
type NavSettings struct {
	Offset         int
	ScrollDuration time.Duration
}

type Routers struct {
	log              *slog.Logger
	nav              NavSettings
	CatalogService   CatalogService
	ThemeService     ThemeService
	ViewerService    ViewerService
	ReaderService    ReaderService
	CompanionService CompanionService
}

func NewRouter(
	log *slog.Logger,
	nav NavSettings,
	catalogService CatalogService,
	themeService ThemeService,
	viewerService ViewerService,
	readerService ReaderService,
	companionService CompanionService,
) *Routers {
	return &Routers{
		log:              log,
		nav:              nav,
		CatalogService:   catalogService,
		ThemeService:     themeService,
		ViewerService:    viewerService,
		ReaderService:    readerService,
		CompanionService: companionService,
	}
}

// errorJSON переводит ошибку сервиса в ответ API.
func (r *Routers) errorJSON(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return c.JSON(http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, storage.ErrInvalidTheme):
		return c.JSON(http.StatusBadRequest, response.ErrInvalidTheme)
	default:
		r.log.Error("request failed", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}
}

// errorHTML is errorJSON for the form endpoints.
func (r *Routers) errorHTML(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "no card at this position").SetInternal(err)
	}

	r.log.Error("request failed", slog.String("op", op), sl.Err(err))
	return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
}

func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

func invalidRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails(response.ErrInvalidRequestFormat.Error, err.Error()))
}

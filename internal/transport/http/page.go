package http

import (
	"net/http"
	"strconv"

	"fan_showcase/internal/domain/companion"
	"fan_showcase/internal/domain/modal"
	"fan_showcase/internal/domain/models"
	"fan_showcase/internal/domain/nav"
	"fan_showcase/internal/domain/view"
	"fan_showcase/internal/middleware"
	"fan_showcase/internal/transport/http/dto/request"

	"github.com/labstack/echo/v4"
)

const pageTemplate = "page"

// PageData is everything the page template renders.
type PageData struct {
	Theme          models.Theme
	Menu           nav.Menu
	Nav            []nav.Section
	NavOffset      int
	ScrollDuration int64
	Sections       view.Sections
	Viewer         modal.Viewer
	Reader         view.ReaderView
	Companion      companion.Snapshot
}

// ScrollLocked reports whether any modal suspends page scrolling.
func (d PageData) ScrollLocked() bool {
	return d.Viewer.ScrollLocked() || d.Reader.Open
}

// KeyTarget names the modal that receives arrow and escape keys. The
// reader wins when both modals are open.
func (d PageData) KeyTarget() string {
	switch {
	case d.Reader.Open:
		return "reader"
	case d.Viewer.Active:
		return "viewer"
	default:
		return ""
	}
}

// Page renders the showcase for the current visitor.
func (r *Routers) Page(c echo.Context) error {
	const op = "http.routers.Page"

	ctx := c.Request().Context()
	visitorID := middleware.VisitorID(c)

	sections, err := r.CatalogService.Sections(ctx)
	if err != nil {
		return r.errorHTML(op, err)
	}

	theme, err := r.ThemeService.Current(ctx, visitorID)
	if err != nil {
		return r.errorHTML(op, err)
	}

	viewer, err := r.ViewerService.State(ctx, visitorID)
	if err != nil {
		return r.errorHTML(op, err)
	}

	reader, err := r.ReaderService.State(ctx, visitorID)
	if err != nil {
		return r.errorHTML(op, err)
	}

	return c.Render(http.StatusOK, pageTemplate, PageData{
		Theme:          theme,
		Menu:           nav.Menu{Open: c.QueryParam("menu") == "open"},
		Nav:            nav.Sections,
		NavOffset:      r.nav.Offset,
		ScrollDuration: r.nav.ScrollDuration.Milliseconds(),
		Sections:       sections,
		Viewer:         viewer,
		Reader:         reader,
		Companion:      r.CompanionService.State(visitorID),
	})
}

func (r *Routers) ThemeTogglePage(c echo.Context) error {
	const op = "http.routers.ThemeTogglePage"

	visitorID := middleware.VisitorID(c)
	if _, err := r.ThemeService.Toggle(c.Request().Context(), visitorID); err != nil {
		return r.errorHTML(op, err)
	}
	r.CompanionService.Click(visitorID)

	return back(c, "")
}

func (r *Routers) GalleryOpenPage(c echo.Context) error {
	const op = "http.routers.GalleryOpenPage"

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid index")
	}

	if _, err := r.ViewerService.Open(c.Request().Context(), middleware.VisitorID(c), index); err != nil {
		return r.errorHTML(op, err)
	}

	return back(c, "doujin")
}

func (r *Routers) ViewerClosePage(c echo.Context) error {
	const op = "http.routers.ViewerClosePage"

	if _, err := r.ViewerService.Close(c.Request().Context(), middleware.VisitorID(c)); err != nil {
		return r.errorHTML(op, err)
	}

	return back(c, "doujin")
}

func (r *Routers) ViewerKeyPage(c echo.Context) error {
	const op = "http.routers.ViewerKeyPage"

	var req request.KeyRequest
	if err := bindValid(c, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := r.ViewerService.HandleKey(c.Request().Context(), middleware.VisitorID(c), modal.Key(req.Key)); err != nil {
		return r.errorHTML(op, err)
	}

	return back(c, "doujin")
}

func (r *Routers) ViewerPointerPage(c echo.Context) error {
	const op = "http.routers.ViewerPointerPage"

	var req request.PointerRequest
	if err := bindValid(c, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := r.ViewerService.HandlePointer(c.Request().Context(), middleware.VisitorID(c), modal.Target(req.Target)); err != nil {
		return r.errorHTML(op, err)
	}

	return back(c, "doujin")
}

func (r *Routers) ComicOpenPage(c echo.Context) error {
	const op = "http.routers.ComicOpenPage"

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid index")
	}

	if _, err := r.ReaderService.Open(c.Request().Context(), middleware.VisitorID(c), index); err != nil {
		return r.errorHTML(op, err)
	}

	return back(c, "comics")
}

func (r *Routers) ReaderNextPage(c echo.Context) error {
	const op = "http.routers.ReaderNextPage"

	if _, err := r.ReaderService.Next(c.Request().Context(), middleware.VisitorID(c)); err != nil {
		return r.errorHTML(op, err)
	}

	return back(c, "comics")
}

func (r *Routers) ReaderPrevPage(c echo.Context) error {
	const op = "http.routers.ReaderPrevPage"

	if _, err := r.ReaderService.Prev(c.Request().Context(), middleware.VisitorID(c)); err != nil {
		return r.errorHTML(op, err)
	}

	return back(c, "comics")
}

func (r *Routers) ReaderClosePage(c echo.Context) error {
	const op = "http.routers.ReaderClosePage"

	if _, err := r.ReaderService.Close(c.Request().Context(), middleware.VisitorID(c)); err != nil {
		return r.errorHTML(op, err)
	}

	return back(c, "comics")
}

func (r *Routers) ReaderKeyPage(c echo.Context) error {
	const op = "http.routers.ReaderKeyPage"

	var req request.KeyRequest
	if err := bindValid(c, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := r.ReaderService.HandleKey(c.Request().Context(), middleware.VisitorID(c), modal.Key(req.Key)); err != nil {
		return r.errorHTML(op, err)
	}

	return back(c, "comics")
}

func (r *Routers) ReaderPointerPage(c echo.Context) error {
	const op = "http.routers.ReaderPointerPage"

	var req request.PointerRequest
	if err := bindValid(c, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := r.ReaderService.HandlePointer(c.Request().Context(), middleware.VisitorID(c), modal.Target(req.Target)); err != nil {
		return r.errorHTML(op, err)
	}

	return back(c, "comics")
}

// back redirects a form post to the page, optionally to a section anchor.
func back(c echo.Context, anchor string) error {
	target := "/"
	if anchor != "" {
		target = nav.Menu{}.LinkHref(anchor)
	}
	return c.Redirect(http.StatusSeeOther, target)
}

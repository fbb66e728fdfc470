package http

import (
	"log/slog"
	"net/http"

	"fan_showcase/internal/domain/modal"
	"fan_showcase/internal/domain/nav"
	"fan_showcase/internal/lib/logger/sl"
	"fan_showcase/internal/middleware"
	"fan_showcase/internal/transport/http/dto/request"
	"fan_showcase/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// Catalog godoc
// @Summary Карточки всех разделов
// @Description Возвращает карточки витрины в порядке отображения и разделы навигации.
// @Tags catalog
// @Produce json
// @Success 200 {object} response.Response{data=response.CatalogResponse}
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/catalog [get]
func (r *Routers) Catalog(c echo.Context) error {
	const op = "http.routers.Catalog"

	sections, err := r.CatalogService.Sections(c.Request().Context())
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(response.CatalogResponse{
		Nav:      nav.Sections,
		Sections: sections,
	}))
}

// Health godoc
// @Summary Проверка готовности
// @Tags ops
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.ErrorResponse
// @Router /api/v1/healthz [get]
func (r *Routers) Health(c echo.Context) error {
	const op = "http.routers.Health"

	if _, err := r.CatalogService.Sections(c.Request().Context()); err != nil {
		r.log.Warn("health check failed", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusServiceUnavailable, response.ErrorResponseWithDetails(response.ErrUnavailable.Error, "catalog unavailable"))
	}

	return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "ok"})
}

// GetTheme godoc
// @Summary Текущая тема посетителя
// @Tags theme
// @Produce json
// @Success 200 {object} response.Response{data=response.ThemeResponse}
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/theme [get]
func (r *Routers) GetTheme(c echo.Context) error {
	const op = "http.routers.GetTheme"

	theme, err := r.ThemeService.Current(c.Request().Context(), middleware.VisitorID(c))
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(response.ThemeResponse{Theme: string(theme)}))
}

// ToggleTheme godoc
// @Summary Переключение темы
// @Description Переключает light и red-black и сохраняет выбор. Виджет-компаньон реагирует на переключение.
// @Tags theme
// @Produce json
// @Success 200 {object} response.Response{data=response.ThemeResponse}
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/theme/toggle [post]
func (r *Routers) ToggleTheme(c echo.Context) error {
	const op = "http.routers.ToggleTheme"

	visitorID := middleware.VisitorID(c)

	theme, err := r.ThemeService.Toggle(c.Request().Context(), visitorID)
	if err != nil {
		return r.errorJSON(c, op, err)
	}
	r.CompanionService.Click(visitorID)

	return c.JSON(http.StatusOK, response.SuccessResponse(response.ThemeResponse{Theme: string(theme)}))
}

// SetTheme godoc
// @Summary Установка темы
// @Tags theme
// @Accept json
// @Produce json
// @Param request body request.ThemeRequest true "Тема: light или red-black"
// @Success 200 {object} response.Response{data=response.ThemeResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/theme [put]
func (r *Routers) SetTheme(c echo.Context) error {
	const op = "http.routers.SetTheme"

	var req request.ThemeRequest
	if err := bindValid(c, &req); err != nil {
		return invalidRequest(c, err)
	}

	theme, err := r.ThemeService.Set(c.Request().Context(), middleware.VisitorID(c), req.Theme)
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(response.ThemeResponse{Theme: string(theme)}))
}

// GetViewer godoc
// @Summary Состояние просмотрщика изображений
// @Tags viewer
// @Produce json
// @Success 200 {object} response.Response{data=modal.Viewer}
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/viewer [get]
func (r *Routers) GetViewer(c echo.Context) error {
	const op = "http.routers.GetViewer"

	v, err := r.ViewerService.State(c.Request().Context(), middleware.VisitorID(c))
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(v))
}

// OpenViewer godoc
// @Summary Открыть изображение галереи
// @Tags viewer
// @Accept json
// @Produce json
// @Param request body request.OpenRequest true "Позиция карточки галереи"
// @Success 200 {object} response.Response{data=modal.Viewer}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/viewer/open [post]
func (r *Routers) OpenViewer(c echo.Context) error {
	const op = "http.routers.OpenViewer"

	var req request.OpenRequest
	if err := bindValid(c, &req); err != nil {
		return invalidRequest(c, err)
	}

	v, err := r.ViewerService.Open(c.Request().Context(), middleware.VisitorID(c), *req.Index)
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(v))
}

// CloseViewer godoc
// @Summary Закрыть просмотрщик
// @Tags viewer
// @Produce json
// @Success 200 {object} response.Response{data=modal.Viewer}
// @Router /api/v1/viewer/close [post]
func (r *Routers) CloseViewer(c echo.Context) error {
	const op = "http.routers.CloseViewer"

	v, err := r.ViewerService.Close(c.Request().Context(), middleware.VisitorID(c))
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(v))
}

// ViewerKey godoc
// @Summary Клавиша в просмотрщике
// @Description Escape закрывает просмотрщик, остальные клавиши игнорируются.
// @Tags viewer
// @Accept json
// @Produce json
// @Param request body request.KeyRequest true "Клавиша"
// @Success 200 {object} response.Response{data=modal.Viewer}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/viewer/key [post]
func (r *Routers) ViewerKey(c echo.Context) error {
	const op = "http.routers.ViewerKey"

	var req request.KeyRequest
	if err := bindValid(c, &req); err != nil {
		return invalidRequest(c, err)
	}

	v, err := r.ViewerService.HandleKey(c.Request().Context(), middleware.VisitorID(c), modal.Key(req.Key))
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(v))
}

// ViewerPointer godoc
// @Summary Клик в просмотрщике
// @Description backdrop и close закрывают просмотрщик, content ничего не меняет.
// @Tags viewer
// @Accept json
// @Produce json
// @Param request body request.PointerRequest true "Цель клика"
// @Success 200 {object} response.Response{data=modal.Viewer}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/viewer/pointer [post]
func (r *Routers) ViewerPointer(c echo.Context) error {
	const op = "http.routers.ViewerPointer"

	var req request.PointerRequest
	if err := bindValid(c, &req); err != nil {
		return invalidRequest(c, err)
	}

	v, err := r.ViewerService.HandlePointer(c.Request().Context(), middleware.VisitorID(c), modal.Target(req.Target))
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(v))
}

// GetReader godoc
// @Summary Состояние читалки комиксов
// @Tags reader
// @Produce json
// @Success 200 {object} response.Response{data=view.ReaderView}
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/reader [get]
func (r *Routers) GetReader(c echo.Context) error {
	const op = "http.routers.GetReader"

	v, err := r.ReaderService.State(c.Request().Context(), middleware.VisitorID(c))
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(v))
}

// OpenReader godoc
// @Summary Открыть комикс
// @Description Открывает комикс на первой странице. Позиция считается в отсортированном списке.
// @Tags reader
// @Accept json
// @Produce json
// @Param request body request.OpenRequest true "Позиция комикса"
// @Success 200 {object} response.Response{data=view.ReaderView}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/reader/open [post]
func (r *Routers) OpenReader(c echo.Context) error {
	const op = "http.routers.OpenReader"

	var req request.OpenRequest
	if err := bindValid(c, &req); err != nil {
		return invalidRequest(c, err)
	}

	v, err := r.ReaderService.Open(c.Request().Context(), middleware.VisitorID(c), *req.Index)
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(v))
}

// NextPage godoc
// @Summary Следующая страница
// @Tags reader
// @Produce json
// @Success 200 {object} response.Response{data=view.ReaderView}
// @Router /api/v1/reader/next [post]
func (r *Routers) NextPage(c echo.Context) error {
	const op = "http.routers.NextPage"

	v, err := r.ReaderService.Next(c.Request().Context(), middleware.VisitorID(c))
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(v))
}

// PrevPage godoc
// @Summary Предыдущая страница
// @Tags reader
// @Produce json
// @Success 200 {object} response.Response{data=view.ReaderView}
// @Router /api/v1/reader/prev [post]
func (r *Routers) PrevPage(c echo.Context) error {
	const op = "http.routers.PrevPage"

	v, err := r.ReaderService.Prev(c.Request().Context(), middleware.VisitorID(c))
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(v))
}

// CloseReader godoc
// @Summary Закрыть читалку
// @Tags reader
// @Produce json
// @Success 200 {object} response.Response{data=view.ReaderView}
// @Router /api/v1/reader/close [post]
func (r *Routers) CloseReader(c echo.Context) error {
	const op = "http.routers.CloseReader"

	v, err := r.ReaderService.Close(c.Request().Context(), middleware.VisitorID(c))
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(v))
}

// ReaderKey godoc
// @Summary Клавиша в читалке
// @Description ArrowLeft и ArrowRight листают, Escape закрывает. При закрытой читалке ничего не происходит.
// @Tags reader
// @Accept json
// @Produce json
// @Param request body request.KeyRequest true "Клавиша"
// @Success 200 {object} response.Response{data=view.ReaderView}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/reader/key [post]
func (r *Routers) ReaderKey(c echo.Context) error {
	const op = "http.routers.ReaderKey"

	var req request.KeyRequest
	if err := bindValid(c, &req); err != nil {
		return invalidRequest(c, err)
	}

	v, err := r.ReaderService.HandleKey(c.Request().Context(), middleware.VisitorID(c), modal.Key(req.Key))
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(v))
}

// ReaderPointer godoc
// @Summary Клик в читалке
// @Tags reader
// @Accept json
// @Produce json
// @Param request body request.PointerRequest true "Цель клика"
// @Success 200 {object} response.Response{data=view.ReaderView}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/reader/pointer [post]
func (r *Routers) ReaderPointer(c echo.Context) error {
	const op = "http.routers.ReaderPointer"

	var req request.PointerRequest
	if err := bindValid(c, &req); err != nil {
		return invalidRequest(c, err)
	}

	v, err := r.ReaderService.HandlePointer(c.Request().Context(), middleware.VisitorID(c), modal.Target(req.Target))
	if err != nil {
		return r.errorJSON(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(v))
}

// GetCompanion godoc
// @Summary Состояние виджета-компаньона
// @Tags companion
// @Produce json
// @Success 200 {object} response.Response{data=companion.Snapshot}
// @Router /api/v1/companion [get]
func (r *Routers) GetCompanion(c echo.Context) error {
	return c.JSON(http.StatusOK, response.SuccessResponse(r.CompanionService.State(middleware.VisitorID(c))))
}

// ClickCompanion godoc
// @Summary Клик по компаньону
// @Tags companion
// @Produce json
// @Success 200 {object} response.Response{data=companion.Snapshot}
// @Router /api/v1/companion/click [post]
func (r *Routers) ClickCompanion(c echo.Context) error {
	return c.JSON(http.StatusOK, response.SuccessResponse(r.CompanionService.Click(middleware.VisitorID(c))))
}

// StartDrag godoc
// @Summary Начало перетаскивания
// @Tags companion
// @Accept json
// @Produce json
// @Param request body request.PointRequest true "Позиция указателя"
// @Success 200 {object} response.Response{data=companion.Snapshot}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/companion/drag/start [post]
func (r *Routers) StartDrag(c echo.Context) error {
	var req request.PointRequest
	if err := bindValid(c, &req); err != nil {
		return invalidRequest(c, err)
	}

	snap := r.CompanionService.StartDrag(middleware.VisitorID(c), *req.X, *req.Y)
	return c.JSON(http.StatusOK, response.SuccessResponse(snap))
}

// MoveDrag godoc
// @Summary Перемещение при перетаскивании
// @Tags companion
// @Accept json
// @Produce json
// @Param request body request.PointRequest true "Позиция указателя"
// @Success 200 {object} response.Response{data=companion.Snapshot}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/companion/drag/move [post]
func (r *Routers) MoveDrag(c echo.Context) error {
	var req request.PointRequest
	if err := bindValid(c, &req); err != nil {
		return invalidRequest(c, err)
	}

	snap := r.CompanionService.DragTo(middleware.VisitorID(c), *req.X, *req.Y)
	return c.JSON(http.StatusOK, response.SuccessResponse(snap))
}

// EndDrag godoc
// @Summary Конец перетаскивания
// @Tags companion
// @Produce json
// @Success 200 {object} response.Response{data=companion.Snapshot}
// @Router /api/v1/companion/drag/end [post]
func (r *Routers) EndDrag(c echo.Context) error {
	return c.JSON(http.StatusOK, response.SuccessResponse(r.CompanionService.EndDrag(middleware.VisitorID(c))))
}

// ResizeViewport godoc
// @Summary Изменение размера окна
// @Description Возвращает виджет в пределы окна с отступом 20px.
// @Tags companion
// @Accept json
// @Produce json
// @Param request body request.ViewportRequest true "Размер окна"
// @Success 200 {object} response.Response{data=companion.Snapshot}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/companion/resize [post]
func (r *Routers) ResizeViewport(c echo.Context) error {
	var req request.ViewportRequest
	if err := bindValid(c, &req); err != nil {
		return invalidRequest(c, err)
	}

	snap := r.CompanionService.Resize(middleware.VisitorID(c), req.Width, req.Height)
	return c.JSON(http.StatusOK, response.SuccessResponse(snap))
}

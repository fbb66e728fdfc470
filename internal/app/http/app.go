package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"fan_showcase/internal/config"
	appmiddleware "fan_showcase/internal/middleware"
	httprouters "fan_showcase/internal/transport/http"

	"github.com/arl/statsviz"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	m       *http.ServeMux
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	assets  config.AssetsConfig
	host    string
	port    string
}

func New(log *slog.Logger, cfg config.HTTPConfig, assets config.AssetsConfig, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = cfg.Timeout
	e.Server.WriteTimeout = cfg.Timeout

	validate := validator.New()
	e.Validator = &CustomValidator{validator: validate}
	e.Renderer = httprouters.MustRenderer()

	e.Use(middleware.Recover())
	e.Use(appmiddleware.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	mux := http.NewServeMux()
	err := statsviz.Register(mux)
	if err != nil {
		log.Info("Statsviz start with error", slog.Any("error:", err.Error()))
	}

	e.Use(session.Middleware(sessions.NewCookieStore([]byte(cfg.SessionSecret))))

	return &Server{
		m:       mux,
		log:     log,
		e:       e,
		routers: routers,
		assets:  assets,
		host:    cfg.Host,
		port:    cfg.Port,
	}
}

// Handler exposes the router, used by tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"), slog.String("addr", s.addr()))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(s.addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) addr() string {
	return net.JoinHostPort(s.host, s.port)
}

func (s *Server) BuildRouters() {
	ops := s.e.Group("")
	{
		ops.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

		debug := ops.Group("/debug")
		{
			debug.GET("/statsviz/", echo.WrapHandler(s.m))
			debug.GET("/statsviz/*", echo.WrapHandler(s.m))
		}

		swagger := ops.Group("/swag")
		{
			swagger.GET("/swagger/*", echoSwagger.WrapHandler)
		}
	}

	s.e.Static(s.assets.BaseURL, s.assets.BaseDir)

	page := s.e.Group("", appmiddleware.Visitor)
	{
		page.GET("/", s.routers.Page)
		page.POST("/theme/toggle", s.routers.ThemeTogglePage)

		page.POST("/gallery/:index/open", s.routers.GalleryOpenPage)
		page.POST("/viewer/close", s.routers.ViewerClosePage)
		page.POST("/viewer/key", s.routers.ViewerKeyPage)
		page.POST("/viewer/pointer", s.routers.ViewerPointerPage)

		page.POST("/comics/:index/open", s.routers.ComicOpenPage)
		page.POST("/reader/next", s.routers.ReaderNextPage)
		page.POST("/reader/prev", s.routers.ReaderPrevPage)
		page.POST("/reader/close", s.routers.ReaderClosePage)
		page.POST("/reader/key", s.routers.ReaderKeyPage)
		page.POST("/reader/pointer", s.routers.ReaderPointerPage)
	}

	api := s.e.Group("/api/v1")
	{
		api.GET("/healthz", s.routers.Health)
		api.GET("/catalog", s.routers.Catalog)

		visitor := api.Group("", appmiddleware.Visitor)

		themeGroup := visitor.Group("/theme")
		{
			themeGroup.GET("", s.routers.GetTheme)
			themeGroup.PUT("", s.routers.SetTheme)
			themeGroup.POST("/toggle", s.routers.ToggleTheme)
		}

		viewerGroup := visitor.Group("/viewer")
		{
			viewerGroup.GET("", s.routers.GetViewer)
			viewerGroup.POST("/open", s.routers.OpenViewer)
			viewerGroup.POST("/close", s.routers.CloseViewer)
			viewerGroup.POST("/key", s.routers.ViewerKey)
			viewerGroup.POST("/pointer", s.routers.ViewerPointer)
		}

		readerGroup := visitor.Group("/reader")
		{
			readerGroup.GET("", s.routers.GetReader)
			readerGroup.POST("/open", s.routers.OpenReader)
			readerGroup.POST("/next", s.routers.NextPage)
			readerGroup.POST("/prev", s.routers.PrevPage)
			readerGroup.POST("/close", s.routers.CloseReader)
			readerGroup.POST("/key", s.routers.ReaderKey)
			readerGroup.POST("/pointer", s.routers.ReaderPointer)
		}

		companionGroup := visitor.Group("/companion")
		{
			companionGroup.GET("", s.routers.GetCompanion)
			companionGroup.POST("/click", s.routers.ClickCompanion)
			companionGroup.POST("/drag/start", s.routers.StartDrag)
			companionGroup.POST("/drag/move", s.routers.MoveDrag)
			companionGroup.POST("/drag/end", s.routers.EndDrag)
			companionGroup.POST("/resize", s.routers.ResizeViewport)
		}
	}
}

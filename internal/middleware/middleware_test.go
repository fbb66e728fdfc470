package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVisitorEcho() *echo.Echo {
	e := echo.New()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte("test-secret"))))
	e.Use(Visitor)
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, VisitorID(c))
	})
	return e
}

func TestVisitor_AssignsAndKeepsID(t *testing.T) {
	e := newVisitorEcho()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	first := rec.Body.String()
	assert.Len(t, first, 36)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, first, rec.Body.String())
	assert.Empty(t, rec.Result().Cookies(), "existing visitor gets no new cookie")
}

func TestVisitor_BrokenCookie(t *testing.T) {
	e := newVisitorEcho()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionName, Value: "garbage"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, rec.Body.String(), 36)
}

func TestPrometheusMetrics_PassesThrough(t *testing.T) {
	e := echo.New()
	e.Use(PrometheusMetrics)
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

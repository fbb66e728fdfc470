package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	httpapp "fan_showcase/internal/app/http"
	"fan_showcase/internal/config"
	"fan_showcase/internal/domain/companion"
	"fan_showcase/internal/domain/modal"
	"fan_showcase/internal/domain/view"
	"fan_showcase/internal/lib/logger/handlers/slogdiscard"
	"fan_showcase/internal/repository"
	catalogsrv "fan_showcase/internal/services/catalog_service"
	companionsrv "fan_showcase/internal/services/companion_service"
	readersrv "fan_showcase/internal/services/reader_service"
	themesrv "fan_showcase/internal/services/theme_service"
	viewersrv "fan_showcase/internal/services/viewer_service"
	"fan_showcase/internal/storage/catalogfile"
	storage "fan_showcase/internal/storage/filestorage"
	httprouters "fan_showcase/internal/transport/http"
	"fan_showcase/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	return newTestServerWithAssets(t, nil)
}

// newTestServerWithAssets checks local image references against assets;
// nil accepts every reference.
func newTestServerWithAssets(t *testing.T, assets view.AssetResolver) http.Handler {
	t.Helper()

	log := slogdiscard.NewDiscardLogger()

	store, err := catalogfile.NewEmbedded(log)
	require.NoError(t, err)

	kv := repository.NewMemoryKV()
	builder := view.NewBuilder(assets, config.DefaultPlaceholders)

	catalogService := catalogsrv.NewCatalogService(log, store, builder)
	routers := httprouters.NewRouter(
		log,
		httprouters.NavSettings{Offset: 80, ScrollDuration: 800 * time.Millisecond},
		catalogService,
		themesrv.NewThemeService(log, kv),
		viewersrv.NewViewerService(log, kv, catalogService, time.Hour),
		readersrv.NewReaderService(log, kv, catalogService, time.Hour),
		companionsrv.NewCompanionService(log, companionsrv.Layout{
			Left:   20,
			Top:    500,
			Width:  120,
			Height: 120,
			Delay:  time.Second,
		}, time.Hour),
	)

	srv := httpapp.New(log, config.HTTPConfig{
		Timeout:       time.Second,
		SessionSecret: "test-secret",
	}, config.AssetsConfig{BaseDir: t.TempDir(), BaseURL: "/assets"}, routers)
	srv.BuildRouters()

	return srv.Handler()
}

// visitor replays the session cookie like a browser would.
type visitor struct {
	t       *testing.T
	h       http.Handler
	cookies []*http.Cookie
}

func newVisitor(t *testing.T, h http.Handler) *visitor {
	return &visitor{t: t, h: h}
}

func (v *visitor) do(method, target, contentType, body string) *httptest.ResponseRecorder {
	v.t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, ck := range v.cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	v.h.ServeHTTP(rec, req)

	if set := rec.Result().Cookies(); len(set) > 0 {
		v.cookies = set
	}

	return rec
}

func (v *visitor) get(target string) *httptest.ResponseRecorder {
	return v.do(http.MethodGet, target, "", "")
}

func (v *visitor) postJSON(target, body string) *httptest.ResponseRecorder {
	return v.do(http.MethodPost, target, "application/json", body)
}

func (v *visitor) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	return v.do(http.MethodPost, target, "application/x-www-form-urlencoded", form.Encode())
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var body struct {
		Status string `json:"status"`
		Data   T      `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	require.Equal(t, "success", body.Status)

	return body.Data
}

func TestPage_Render(t *testing.T) {
	v := newVisitor(t, newTestServer(t))

	rec := v.get("/")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `data-theme="light"`)
	assert.Contains(t, body, "伊布家族")
	assert.Contains(t, body, "囚于时空中的少女们demo ver.1.0")
	assert.Contains(t, body, "镜花水月1.0")
	assert.Contains(t, body, "年龄")
	assert.NotContains(t, body, `id="imageViewer"`)
	assert.NotContains(t, body, `id="comicReader"`)
	assert.NotEmpty(t, v.cookies, "visitor cookie issued")
}

func TestPage_MenuToggle(t *testing.T) {
	v := newVisitor(t, newTestServer(t))

	rec := v.get("/?menu=open")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="navMenu" class="active"`)
}

func TestPage_ThemeToggle(t *testing.T) {
	h := newTestServer(t)
	v := newVisitor(t, h)

	v.get("/")

	rec := v.postForm("/theme/toggle", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = v.get("/")
	assert.Contains(t, rec.Body.String(), `data-theme="red-black"`)

	other := newVisitor(t, h)
	rec = other.get("/")
	assert.Contains(t, rec.Body.String(), `data-theme="light"`, "theme is per visitor")
}

func TestPage_GalleryViewer(t *testing.T) {
	v := newVisitor(t, newTestServer(t))
	v.get("/")

	rec := v.postForm("/gallery/1/open", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/#doujin", rec.Header().Get("Location"))

	body := v.get("/").Body.String()
	assert.Contains(t, body, `id="imageViewer"`)
	assert.Contains(t, body, "地狱客栈 (出自：Hazbin Hotel)")
	assert.Contains(t, body, `class="scroll-locked"`)

	rec = v.postForm("/viewer/pointer", url.Values{"target": {"content"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, v.get("/").Body.String(), `id="imageViewer"`, "click on content keeps viewer open")

	v.postForm("/viewer/key", url.Values{"key": {"Escape"}})
	body = v.get("/").Body.String()
	assert.NotContains(t, body, `id="imageViewer"`)
	assert.NotContains(t, body, `class="scroll-locked"`)
}

func TestPage_ImageLoadFallback(t *testing.T) {
	v := newVisitor(t, newTestServer(t))

	body := v.get("/").Body.String()
	assert.Contains(t, body, `<img src="https://via.placeholder.com/`)
	assert.Contains(t, body, "document.addEventListener('error'")
	assert.Contains(t, body, "img.replaceWith(marker)")
}

func TestPage_ViewerMissingAsset(t *testing.T) {
	assets, err := storage.NewLocalAssetStorage(t.TempDir(), "/assets")
	require.NoError(t, err)

	v := newVisitor(t, newTestServerWithAssets(t, assets))

	body := v.get("/").Body.String()
	assert.Contains(t, body, `<div class="image-error" title="图片加载失败">图片加载失败</div>`, "missing bkm.jpg card")

	rec := v.postForm("/gallery/0/open", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	body = v.get("/").Body.String()
	assert.Contains(t, body, `<div id="viewerImage" class="image-error" title="图片加载失败">图片加载失败</div>`)
	assert.NotContains(t, body, `<img id="viewerImage"`)
	assert.Contains(t, body, "伊布家族 (出自：Pokémon)")

	viewer := decodeData[modal.Viewer](t, v.postJSON("/api/v1/viewer/open", `{"index":6}`))
	assert.False(t, viewer.Failed, "remote images are left to the browser")
	assert.NotEmpty(t, viewer.Src)

	viewer = decodeData[modal.Viewer](t, v.postJSON("/api/v1/viewer/open", `{"index":1}`))
	assert.True(t, viewer.Active)
	assert.True(t, viewer.Failed)
	assert.Empty(t, viewer.Src)
}

func TestPage_KeysGoToReaderFirst(t *testing.T) {
	v := newVisitor(t, newTestServer(t))

	assert.Contains(t, v.get("/").Body.String(), `data-key-target=""`)

	v.postForm("/gallery/0/open", nil)
	assert.Contains(t, v.get("/").Body.String(), `data-key-target="viewer"`)

	v.postForm("/comics/0/open", nil)
	body := v.get("/").Body.String()
	assert.Contains(t, body, `id="imageViewer"`)
	assert.Contains(t, body, `id="comicReader"`)
	assert.Contains(t, body, `data-key-target="reader"`)

	v.postForm("/reader/close", nil)
	assert.Contains(t, v.get("/").Body.String(), `data-key-target="viewer"`)
}

func TestPage_UnknownCard(t *testing.T) {
	v := newVisitor(t, newTestServer(t))

	assert.Equal(t, http.StatusNotFound, v.postForm("/gallery/99/open", nil).Code)
	assert.Equal(t, http.StatusBadRequest, v.postForm("/comics/abc/open", nil).Code)
	assert.Equal(t, http.StatusBadRequest, v.postForm("/reader/pointer", url.Values{"target": {"nowhere"}}).Code)
}

func TestAPI_Catalog(t *testing.T) {
	v := newVisitor(t, newTestServer(t))

	rec := v.get("/api/v1/catalog")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData[response.CatalogResponse](t, rec)
	assert.Len(t, data.Nav, 5)
	assert.Len(t, data.Sections.Gallery, 8)
	assert.Len(t, data.Sections.Games, 7)
	assert.Len(t, data.Sections.Comics, 3)

	// newest first, undated placeholders keep their slots
	assert.Equal(t, "最后更新：2025-11-21", data.Sections.Games[0].Line)
	assert.True(t, data.Sections.Games[5].Image.Placeholder)
}

func TestAPI_Health(t *testing.T) {
	v := newVisitor(t, newTestServer(t))

	rec := v.get("/api/v1/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

type brokenCatalog struct{}

func (brokenCatalog) Sections(context.Context) (view.Sections, error) {
	return view.Sections{}, errors.New("catalog down")
}

func TestAPI_HealthUnavailable(t *testing.T) {
	var logs bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&logs, nil))

	routers := httprouters.NewRouter(log, httprouters.NavSettings{}, brokenCatalog{}, nil, nil, nil, nil)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/healthz", nil), rec)

	require.NoError(t, routers.Health(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	assert.Equal(t, "catalog down", entry["error"])
	assert.Equal(t, "http.routers.Health", entry["op"])
}

func TestAPI_Theme(t *testing.T) {
	v := newVisitor(t, newTestServer(t))

	rec := v.get("/api/v1/theme")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "light", decodeData[response.ThemeResponse](t, rec).Theme)

	rec = v.postJSON("/api/v1/theme/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "red-black", decodeData[response.ThemeResponse](t, rec).Theme)

	rec = v.do(http.MethodPut, "/api/v1/theme", "application/json", `{"theme":"light"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "light", decodeData[response.ThemeResponse](t, rec).Theme)

	rec = v.do(http.MethodPut, "/api/v1/theme", "application/json", `{"theme":"blue"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = v.do(http.MethodPut, "/api/v1/theme", "application/json", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_ReaderFlow(t *testing.T) {
	v := newVisitor(t, newTestServer(t))

	rec := v.postJSON("/api/v1/reader/open", `{"index":0}`)
	require.Equal(t, http.StatusOK, rec.Code)

	state := decodeData[view.ReaderView](t, rec)
	require.True(t, state.Open)
	assert.Equal(t, 3, state.PageCount)
	require.NotNil(t, state.Page)
	assert.Equal(t, "1 / 3", state.Page.Indicator)
	assert.False(t, state.HasPrev())

	state = decodeData[view.ReaderView](t, v.postJSON("/api/v1/reader/next", ""))
	assert.Equal(t, "2 / 3", state.Page.Indicator)

	v.postJSON("/api/v1/reader/next", "")
	state = decodeData[view.ReaderView](t, v.postJSON("/api/v1/reader/next", ""))
	assert.Equal(t, "3 / 3", state.Page.Indicator, "last page stays put")
	assert.False(t, state.HasNext())

	state = decodeData[view.ReaderView](t, v.postJSON("/api/v1/reader/key", `{"key":"ArrowLeft"}`))
	assert.Equal(t, "2 / 3", state.Page.Indicator)

	state = decodeData[view.ReaderView](t, v.postJSON("/api/v1/reader/key", `{"key":"Enter"}`))
	assert.Equal(t, "2 / 3", state.Page.Indicator, "other keys are ignored")

	state = decodeData[view.ReaderView](t, v.get("/api/v1/reader"))
	assert.Equal(t, 1, state.PageIndex)

	state = decodeData[view.ReaderView](t, v.postJSON("/api/v1/reader/pointer", `{"target":"backdrop"}`))
	assert.False(t, state.Open)

	state = decodeData[view.ReaderView](t, v.postJSON("/api/v1/reader/open", `{"index":1}`))
	assert.Equal(t, "1 / 2", state.Page.Indicator, "reopening starts at the first page")
}

func TestAPI_Viewer(t *testing.T) {
	v := newVisitor(t, newTestServer(t))

	rec := v.postJSON("/api/v1/viewer/open", `{"index":0}`)
	require.Equal(t, http.StatusOK, rec.Code)

	viewer := decodeData[modal.Viewer](t, rec)
	assert.True(t, viewer.Active)
	assert.Equal(t, "bkm.jpg", viewer.Src)

	viewer = decodeData[modal.Viewer](t, v.postJSON("/api/v1/viewer/pointer", `{"target":"close"}`))
	assert.False(t, viewer.Active)
}

func TestAPI_Validation(t *testing.T) {
	v := newVisitor(t, newTestServer(t))

	tests := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{name: "missing index", target: "/api/v1/viewer/open", body: `{}`, status: http.StatusBadRequest},
		{name: "negative index", target: "/api/v1/reader/open", body: `{"index":-1}`, status: http.StatusBadRequest},
		{name: "unknown gallery card", target: "/api/v1/viewer/open", body: `{"index":99}`, status: http.StatusNotFound},
		{name: "unknown comic", target: "/api/v1/reader/open", body: `{"index":3}`, status: http.StatusNotFound},
		{name: "empty key", target: "/api/v1/viewer/key", body: `{"key":""}`, status: http.StatusBadRequest},
		{name: "bad pointer target", target: "/api/v1/reader/pointer", body: `{"target":"nowhere"}`, status: http.StatusBadRequest},
		{name: "missing drag point", target: "/api/v1/companion/drag/start", body: `{"x":1}`, status: http.StatusBadRequest},
		{name: "zero viewport", target: "/api/v1/companion/resize", body: `{"width":0,"height":300}`, status: http.StatusBadRequest},
		{name: "malformed json", target: "/api/v1/viewer/open", body: `{"index":`, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := v.postJSON(tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())

			var errResp response.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
			assert.Equal(t, "error", errResp.Status)
		})
	}
}

func TestAPI_Companion(t *testing.T) {
	v := newVisitor(t, newTestServer(t))

	state := decodeData[companion.Snapshot](t, v.get("/api/v1/companion"))
	assert.Equal(t, 20.0, state.Left)
	assert.Equal(t, 500.0, state.Top)

	state = decodeData[companion.Snapshot](t, v.postJSON("/api/v1/companion/drag/start", `{"x":30,"y":510}`))
	assert.True(t, state.Dragging)

	state = decodeData[companion.Snapshot](t, v.postJSON("/api/v1/companion/drag/move", `{"x":130,"y":410}`))
	assert.Equal(t, 120.0, state.Left)
	assert.Equal(t, 400.0, state.Top)

	state = decodeData[companion.Snapshot](t, v.postJSON("/api/v1/companion/drag/end", ""))
	assert.False(t, state.Dragging)

	state = decodeData[companion.Snapshot](t, v.postJSON("/api/v1/companion/click", ""))
	assert.True(t, state.Interactive)
}

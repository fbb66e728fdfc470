package http

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"fan_showcase/internal/domain/view"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templateFuncs = template.FuncMap{
	// goldmark escapes raw HTML in bios, its output is safe to inline
	"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	"failedText": func() string { return view.FailedImageText },
}

// Renderer adapts html/template to echo.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	const op = "http.NewRenderer"

	t, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if t.Lookup(pageTemplate) == nil {
		return nil, fmt.Errorf("%s: template %q not found", op, pageTemplate)
	}

	return &Renderer{templates: t}, nil
}

// MustRenderer panics when the page template cannot be loaded.
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

package echoutil

import (
	"html/template"
	"io"
	"io/fs"

	"github.com/labstack/echo/v4"
)

// TemplateRenderer renders html/template for echo.Context.Render.
type TemplateRenderer struct {
	templates *template.Template
}

var _ echo.Renderer = &TemplateRenderer{}

// NewTemplateRenderer parses templates in fsys matching patterns.
//
// Templates are named by their base name, like "states.html".
func NewTemplateRenderer(fsys fs.FS, patterns ...string) (*TemplateRenderer, error) {
	t, err := template.New("").ParseFS(fsys, patterns...)
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{templates: t}, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

package handlers

import (
	"embed"

	"github.com/opst/hbnb/pkg/echoutil"
)

//go:embed templates/*.html
var templates embed.FS

// NewRenderer returns a renderer of pages for handlers in this package.
func NewRenderer() (*echoutil.TemplateRenderer, error) {
	return echoutil.NewTemplateRenderer(templates, "templates/*.html")
}

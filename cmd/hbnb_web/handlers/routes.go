package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/opst/hbnb/pkg/storage"
)

// Install sets the renderer and routes of pages onto e.
//
// Trailing slashes in request paths are ignored.
func Install(e *echo.Echo, st storage.Storage) error {
	renderer, err := NewRenderer()
	if err != nil {
		return err
	}
	e.Renderer = renderer
	e.Pre(middleware.RemoveTrailingSlash())

	e.GET("/", Hello())
	e.GET("/c/:text", C("text"))
	e.GET("/python", Python("text"))
	e.GET("/python/:text", Python("text"))
	e.GET("/number/:n", Number("n"))
	e.GET("/number_template/:n", NumberTemplate("n"))
	e.GET("/number_odd_or_even/:n", NumberOddOrEven("n"))

	e.GET("/states_list", StatesList(st))
	e.GET("/cities_by_states", CitiesByStates(st))
	e.GET("/states", States(st))
	e.GET("/states/:id", State(st, "id"))
	e.GET("/hbnb_filters", HbnbFilters(st))
	e.GET("/hbnb", Hbnb(st))
	return nil
}

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/opst/hbnb/pkg/echoutil"
	"github.com/opst/hbnb/pkg/storage"
)

type hbnbPage struct {
	States    []stateView
	Amenities []amenityView
	Places    []placeView
}

// HbnbFilters renders filters: states with their cities, and amenities.
func HbnbFilters(st storage.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		states, err := statesView(ctx, st, true)
		if err != nil {
			return echoutil.InternalServerError(err)
		}
		amenities, err := amenitiesView(ctx, st)
		if err != nil {
			return echoutil.InternalServerError(err)
		}
		return c.Render(http.StatusOK, "hbnb_filters.html", hbnbPage{States: states, Amenities: amenities})
	}
}

// Hbnb renders filters and places sorted by name.
func Hbnb(st storage.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		states, err := statesView(ctx, st, true)
		if err != nil {
			return echoutil.InternalServerError(err)
		}
		amenities, err := amenitiesView(ctx, st)
		if err != nil {
			return echoutil.InternalServerError(err)
		}
		places, err := placesView(ctx, st)
		if err != nil {
			return echoutil.InternalServerError(err)
		}
		return c.Render(http.StatusOK, "hbnb.html", hbnbPage{
			States: states, Amenities: amenities, Places: places,
		})
	}
}

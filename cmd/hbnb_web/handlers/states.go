package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/opst/hbnb/pkg/echoutil"
	"github.com/opst/hbnb/pkg/models"
	"github.com/opst/hbnb/pkg/storage"
)

type statesPage struct {
	States []stateView

	// set when a state is requested by id.
	State *stateView

	// a state is requested by id, but it is not found.
	NotFound bool
}

// StatesList renders states sorted by name.
func StatesList(st storage.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		states, err := statesView(c.Request().Context(), st, false)
		if err != nil {
			return echoutil.InternalServerError(err)
		}
		return c.Render(http.StatusOK, "states_list.html", statesPage{States: states})
	}
}

// CitiesByStates renders states sorted by name, with their cities sorted by name.
func CitiesByStates(st storage.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		states, err := statesView(c.Request().Context(), st, true)
		if err != nil {
			return echoutil.InternalServerError(err)
		}
		return c.Render(http.StatusOK, "cities_by_states.html", statesPage{States: states})
	}
}

// States renders states sorted by name.
func States(st storage.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		states, err := statesView(c.Request().Context(), st, false)
		if err != nil {
			return echoutil.InternalServerError(err)
		}
		return c.Render(http.StatusOK, "states.html", statesPage{States: states})
	}
}

// State renders a state specified by the path parameter, with its cities sorted by name.
//
// When the state is not found, it renders "Not found!".
func State(st storage.Storage, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		found, err := storage.Get(ctx, st, models.ClassState, c.Param(param))
		if errors.Is(err, storage.ErrMissing) {
			return c.Render(http.StatusOK, "states.html", statesPage{NotFound: true})
		} else if err != nil {
			return echoutil.InternalServerError(err)
		}
		state, ok := found.(*models.State)
		if !ok {
			return c.Render(http.StatusOK, "states.html", statesPage{NotFound: true})
		}

		cities, err := storage.CitiesOf(ctx, st, state)
		if err != nil {
			return echoutil.InternalServerError(err)
		}
		return c.Render(http.StatusOK, "states.html", statesPage{
			State: &stateView{Id: state.Id, Name: state.Name, Cities: citiesView(cities)},
		})
	}
}

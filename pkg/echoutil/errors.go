package echoutil

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func NotFound() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusNotFound, "not found")
}

// InternalServerError hides err from clients. It is still logged by LogHandlerFunc.
func InternalServerError(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusInternalServerError, "unexpected error").SetInternal(err)
}

package echoutil

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

var levels = map[string]log.Lvl{
	"debug": log.DEBUG,
	"info":  log.INFO,
	"warn":  log.WARN,
	"":      log.WARN,
	"error": log.ERROR,
	"off":   log.OFF,
}

// SetLevel sets the level of e.Logger by its name, case insensitive.
//
// Unknown names fall back to "warn".
func SetLevel(e *echo.Echo, name string) {
	lvl, ok := levels[strings.ToLower(name)]
	if !ok {
		lvl = log.WARN
	}
	e.Logger.SetLevel(lvl)
	if !ok {
		e.Logger.Warnf("unknown log level %q. use warn", name)
	}
}

// LogHandlerFunc logs each request and its outcome.
//
// Server errors are logged as error, and others as info.
func LogHandlerFunc(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		begin := time.Now()
		c.Logger().Debugf("<<< %s %s from %s", req.Method, req.RequestURI, c.RealIP())

		err := next(c)

		status := c.Response().Status
		if he := new(echo.HTTPError); errors.As(err, &he) {
			status = he.Code
		} else if err != nil {
			status = http.StatusInternalServerError
		}

		logf := c.Logger().Infof
		if http.StatusInternalServerError <= status {
			logf = c.Logger().Errorf
		}
		if err != nil {
			logf(">>> %d %s %s (%v): %+v", status, req.Method, req.RequestURI, time.Since(begin), err)
		} else {
			logf(">>> %d %s %s (%v)", status, req.Method, req.RequestURI, time.Since(begin))
		}
		return err
	}
}

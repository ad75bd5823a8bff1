package handlers

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/opst/hbnb/pkg/echoutil"
)

func Hello() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello HBNB!")
	}
}

// C responds "C <text>", where underscores in the path parameter are spaces.
func C(param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusOK, "C "+spaced(c.Param(param)))
	}
}

// Python responds "Python <text>". When the path parameter is empty, text is "is cool".
func Python(param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		text := c.Param(param)
		if text == "" {
			text = "is_cool"
		}
		return c.String(http.StatusOK, "Python "+spaced(text))
	}
}

// Number responds "<n> is a number" when the path parameter is an integer, or 404.
func Number(param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		n, err := strconv.Atoi(c.Param(param))
		if err != nil {
			return echoutil.NotFound()
		}
		return c.String(http.StatusOK, strconv.Itoa(n)+" is a number")
	}
}

type numberPage struct {
	Number int
	Parity string
}

// NumberTemplate renders a page showing the number in the path parameter.
//
// Only digits are accepted. Otherwise, it is 404.
func NumberTemplate(param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		n, ok := digits(c.Param(param))
		if !ok {
			return echoutil.NotFound()
		}
		return c.Render(http.StatusOK, "number.html", numberPage{Number: n})
	}
}

// NumberOddOrEven renders a page telling the number in the path parameter is even or odd.
//
// Only digits are accepted. Otherwise, it is 404.
func NumberOddOrEven(param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		n, ok := digits(c.Param(param))
		if !ok {
			return echoutil.NotFound()
		}
		parity := "odd"
		if n%2 == 0 {
			parity = "even"
		}
		return c.Render(http.StatusOK, "number_odd_or_even.html", numberPage{Number: n, Parity: parity})
	}
}

func spaced(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

var onlyDigits = regexp.MustCompile(`^[0-9]+$`)

func digits(s string) (int, bool) {
	if !onlyDigits.MatchString(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

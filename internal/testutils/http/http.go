package http

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"
)

type RequestOption func(req *http.Request) *http.Request

func WithContext(ctx context.Context) RequestOption {
	return func(req *http.Request) *http.Request {
		return req.WithContext(ctx)
	}
}

func WithHeader(key string, value string, values ...string) RequestOption {
	return func(req *http.Request) *http.Request {
		req.Header.Add(key, value)
		for _, v := range values {
			req.Header.Add(key, v)
		}
		return req
	}
}

func newGet(target string, reqopts ...RequestOption) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, opt := range reqopts {
		req = opt(req)
	}
	return req, httptest.NewRecorder()
}

// Get creates echo.Context for a GET request, to call a handler directly.
//
// Path parameters are not set. Set them with echo.Context.SetParamNames and SetParamValues.
func Get(e *echo.Echo, target string, reqopts ...RequestOption) (echo.Context, *httptest.ResponseRecorder) {
	req, resp := newGet(target, reqopts...)
	return e.NewContext(req, resp), resp
}

// Serve sends a GET request through e, with its routes and middlewares.
func Serve(e *echo.Echo, target string, reqopts ...RequestOption) *httptest.ResponseRecorder {
	req, resp := newGet(target, reqopts...)
	e.ServeHTTP(resp, req)
	return resp
}

package http

import (
	"net/http"

	"pricehunter/internal/platform/net/http/bind"
)

// JSONHandler binds and validates a T body before calling fn
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}

// QueryHandler calls fn for requests without a body
func QueryHandler(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}

// GetJSON mounts fn on GET
func GetJSON(r Router, path string, fn func(*http.Request) (any, error)) {
	r.Get(path, QueryHandler(fn))
}

// PostJSON mounts fn on POST with a bound body
func PostJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	r.Post(path, JSONHandler(fn))
}

// PutJSON mounts fn on PUT with a bound body
func PutJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	r.Put(path, JSONHandler(fn))
}

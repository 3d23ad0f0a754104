// Package httpkit re-exports the platform http helpers for modules
package httpkit

import (
	"net/http"

	phttp "pricehunter/internal/platform/net/http"
)

type (
	// Envelope is the response body type
	Envelope = phttp.Envelope
	// Response is the return-style handler result
	Response = phttp.Response
	// Handler is the platform handler type
	Handler = phttp.Handler
	// Router is the platform router
	Router = phttp.Router
)

// OK is a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created is a 201 response
func Created(data any) Response { return phttp.Created(data) }

// Error maps err to a response
func Error(err error) Response { return phttp.Error(err) }

// Handle adapts a return-style handler
func Handle(fn func(*http.Request) Response) Handler { return phttp.Handle(fn) }

// Get mounts a body-less handler on GET
func Get(r Router, path string, fn func(*http.Request) (any, error)) { phttp.GetJSON(r, path, fn) }

// PostJSON mounts a JSON handler on POST
func PostJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	phttp.PostJSON(r, path, fn)
}

// PutJSON mounts a JSON handler on PUT
func PutJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	phttp.PutJSON(r, path, fn)
}

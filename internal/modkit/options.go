package modkit

import (
	"net/http"

	phttp "pricehunter/internal/platform/net/http"
)

// Option mutates a module's build configuration
type Option func(*buildCfg)

type buildCfg struct {
	name     string
	prefix   string
	mw       []func(http.Handler) http.Handler
	ports    any
	register func(phttp.Router)
}

// WithName sets the module name used in logs
func WithName(name string) Option { return func(c *buildCfg) { c.name = name } }

// WithPrefix mounts the module under prefix
func WithPrefix(prefix string) Option { return func(c *buildCfg) { c.prefix = prefix } }

// WithMiddlewares appends per-module middleware
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(c *buildCfg) { c.mw = append(c.mw, mw...) }
}

// WithPorts sets the value returned by Module.Ports
func WithPorts[T any](p T) Option { return func(c *buildCfg) { c.ports = p } }

// WithRegister sets the function that attaches endpoints
func WithRegister(fn func(phttp.Router)) Option { return func(c *buildCfg) { c.register = fn } }

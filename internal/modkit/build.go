package modkit

import (
	"net/http"

	phttp "pricehunter/internal/platform/net/http"
)

// Built is the resolved module configuration
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Ports    any
	Register func(phttp.Router)
}

// Build applies opts. Register defaults to a no-op.
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.register == nil {
		c.register = func(phttp.Router) {}
	}
	return Built{
		Name:     c.name,
		Prefix:   c.prefix,
		Mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:    c.ports,
		Register: c.register,
	}
}

// Mount mounts b's routes under its prefix with its middleware.
// An empty prefix mounts in place as a group.
func (b Built) Mount(r phttp.Router) {
	fn := func(sub phttp.Router) {
		if len(b.Mw) > 0 {
			sub.Use(b.Mw...)
		}
		b.Register(sub)
	}
	if b.Prefix == "" || b.Prefix == "/" {
		r.Group(fn)
		return
	}
	r.Route(b.Prefix, fn)
}

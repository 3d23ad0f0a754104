// Package module wires the catalog endpoints into the API using modkit
package module

import (
	"pricehunter/internal/modkit"
	"pricehunter/internal/modkit/httpkit"
	"pricehunter/internal/platform/net/middleware"

	chttp "pricehunter/internal/services/api/catalog/http"
	"pricehunter/internal/services/catalog/domain"
)

// Ports declares the injected catalog service this API module serves
type Ports struct {
	Service domain.ServicePort
}

// Module implements the catalog API module
type Module struct {
	built modkit.Built
	svc   domain.ServicePort
}

// New constructs the module. The catalog service must be injected with modkit.WithPorts(Ports{...}).
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("catalog-api"),
		modkit.WithPrefix(""),
	}, opts...)...)

	injected, ok := b.Ports.(Ports)
	if !ok || injected.Service == nil {
		panic("catalog API module requires Ports{Service} (from services/catalog)")
	}
	cfg := FromConfig(deps.Cfg)

	m := &Module{svc: injected.Service}
	external := b.Register
	b.Register = func(r httpkit.Router) {
		chttp.Register(r, m.svc, middleware.StaticToken(cfg.AdminToken))
		external(r)
	}
	m.built = b
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) { m.built.Mount(r) }

// Name returns the module name
func (m *Module) Name() string { return m.built.Name }

// Ports returns the served catalog port
func (m *Module) Ports() any { return Ports{Service: m.svc} }

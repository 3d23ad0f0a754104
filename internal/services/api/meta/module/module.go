// Package module wires meta endpoints into the API using modkit
package module

import (
	"time"

	modkit "pricehunter/internal/modkit"
	"pricehunter/internal/modkit/httpkit"

	metahttp "pricehunter/internal/services/api/meta/http"
)

// ServiceName is reported by the health, version and service endpoints
const ServiceName = "pricehunter-api"

// Module implements the modkit.Module interface
type Module struct {
	built     modkit.Built
	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{startedAt: time.Now()}

	d := metahttp.Deps{ServiceName: ServiceName, StartedAt: m.startedAt}
	// typed nils would read as configured
	if deps.PG != nil {
		d.PG = deps.PG
	}
	if deps.CH != nil {
		d.CH = deps.CH
	}
	if deps.Meili != nil {
		d.Meili = deps.Meili
	}

	external := b.Register
	b.Register = func(r httpkit.Router) {
		metahttp.Register(r, d)
		external(r)
	}
	m.built = b
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) { m.built.Mount(r) }

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.built.Name }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }

// Package module wires the scraper service and exposes its ports
package module

import (
	"pricehunter/internal/adapters/shopify"
	"pricehunter/internal/modkit"
	"pricehunter/internal/modkit/httpkit"
	catalog "pricehunter/internal/services/catalog/domain"
	"pricehunter/internal/services/scrape/domain"
	"pricehunter/internal/services/scrape/service"
)

// Ports holds the ports exposed by the scrape module
type Ports struct {
	Runner domain.RunnerPort
}

// Module defines the scrape worker module
type Module struct {
	ports Ports
}

// New constructs the scrape module on top of the catalog's ingest port.
// Non-zero override fields win over config.
func New(deps modkit.Deps, ingest catalog.IngestPort, overrides Options) *Module {
	opts := FromConfig(deps.Cfg)
	if overrides.Concurrency != 0 {
		opts.Concurrency = overrides.Concurrency
	}
	if overrides.MaxPages != 0 {
		opts.MaxPages = overrides.MaxPages
	}
	if overrides.PageDelay != 0 {
		opts.PageDelay = overrides.PageDelay
	}
	if overrides.RatePerSec != 0 {
		opts.RatePerSec = overrides.RatePerSec
	}

	client := shopify.NewClient(shopify.Options{
		UserAgent:  opts.UserAgent,
		Timeout:    opts.Timeout,
		MaxRetries: opts.MaxRetries,
		RPS:        float64(opts.RatePerSec),
	})
	svc := service.New(ingest, client, service.Config{
		Concurrency: opts.Concurrency,
		MaxPages:    opts.MaxPages,
		PageDelay:   opts.PageDelay,
	})
	return &Module{ports: Ports{Runner: svc}}
}

// Scraper returns the typed ports
func (m *Module) Scraper() Ports { return m.ports }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "scrape" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}

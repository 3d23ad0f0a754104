// Package module implements the catalog service module shared by the API, scraper and seeder
package module

import (
	"context"
	"fmt"

	"pricehunter/internal/modkit"
	"pricehunter/internal/platform/logger"
	phttp "pricehunter/internal/platform/net/http"
	"pricehunter/internal/services/catalog/domain"
	"pricehunter/internal/services/catalog/repo"
	"pricehunter/internal/services/catalog/service"
)

// Ports exposed by the catalog module
type Ports struct {
	Service service.Service
	Ingest  domain.IngestPort
}

// Module implements the catalog service module
type Module struct {
	deps   modkit.Deps
	opts   Options
	ports  Ports
	events *repo.CHEvents
	index  *repo.MeiliIndex
}

// New constructs the catalog module. The pg backend requires deps.PG.
// ClickHouse and Meilisearch are used when present in deps.
func New(deps modkit.Deps, opts Options) *Module {
	m := &Module{deps: deps, opts: opts}

	log := deps.Log.With().Str("component", "catalog").Logger()
	so := service.Options{
		ResultLimit:  opts.ResultLimit,
		SearchLimit:  opts.SearchLimit,
		RecentWindow: opts.RecentWindow,
		Log:          &log,
	}
	if deps.CH != nil {
		m.events = repo.NewCHEvents(deps.CH)
		so.Events = m.events
	}
	if deps.Meili != nil {
		m.index = repo.NewMeiliIndex(deps.Meili, opts.MeiliIndex)
		so.Index = m.index
		so.SearchViaIndex = opts.SearchEngine == EngineMeili
	} else if opts.SearchEngine == EngineMeili {
		panic("catalog module: CORE_CATALOG_SEARCH_ENGINE=meili requires SERVICE_MEILI_URL")
	}

	var svc *service.Svc
	switch opts.Backend {
	case BackendMemory:
		svc = service.New(repo.NewMemory(nil), so)
	default:
		if deps.PG == nil {
			panic("catalog module: pg backend requires SERVICE_PGSQL_URL")
		}
		svc = service.NewPG(deps.PG, repo.NewPG(), so)
	}

	m.ports = Ports{Service: svc, Ingest: svc}
	return m
}

// Prepare creates whatever storage the module uses: Postgres tables, the ClickHouse
// events table and the Meilisearch index settings
func (m *Module) Prepare(ctx context.Context) error {
	if m.opts.Backend != BackendMemory && m.deps.PG != nil {
		if err := repo.EnsureSchema(ctx, m.deps.PG); err != nil {
			return fmt.Errorf("catalog schema: %w", err)
		}
	}
	if m.events != nil {
		if err := m.events.EnsureTable(ctx); err != nil {
			return fmt.Errorf("lookup events table: %w", err)
		}
	}
	if m.index != nil {
		if err := m.index.EnsureIndex(ctx); err != nil {
			return fmt.Errorf("search index: %w", err)
		}
	}
	logger.C(ctx).Debug().Str("backend", m.opts.Backend).
		Bool("events", m.events != nil).Bool("index", m.index != nil).Msg("catalog storage ready")
	return nil
}

// Catalog returns the typed ports
func (m *Module) Catalog() Ports { return m.ports }

// Name satisfies modkit.Module
func (m *Module) Name() string { return "catalog" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module; the API module owns the routes
func (m *Module) MountRoutes(phttp.Router) {}

// Package api provides the HTTP API for the application
package api

import (
	"time"

	"pricehunter/internal/platform/config"
	"pricehunter/internal/platform/logger"
	phttp "pricehunter/internal/platform/net/http"
	"pricehunter/internal/platform/net/middleware"
	"pricehunter/internal/platform/store"

	"pricehunter/internal/modkit"
	"pricehunter/internal/modkit/httpkit"
	"pricehunter/internal/modkit/swaggerkit"

	apicatalog "pricehunter/internal/services/api/catalog/module"
	metamod "pricehunter/internal/services/api/meta/module"

	// service-side catalog module (owns the catalog ports)
	catalogmod "pricehunter/internal/services/catalog/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool

	// Catalog is the prepared catalog module. When nil one is built from Config.
	Catalog *catalogmod.Module
}

// Deps builds the shared module deps from the opened store
func Deps(opt Options) modkit.Deps {
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
		deps.Meili = opt.Store.Meili
	}
	return deps
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// unversioned liveness for load balancers; must precede every route
	r.Use(middleware.Heartbeat("/health"))

	deps := Deps(opt)

	catalog := opt.Catalog
	if catalog == nil {
		catalog = catalogmod.New(deps, catalogmod.FromConfig(deps.Cfg))
	}

	// the API catalog module only serves the ports the service module owns
	apiCatalog := apicatalog.New(
		deps,
		modkit.WithPorts(apicatalog.Ports{
			Service: catalog.Catalog().Service,
		}),
	)

	mods := []modkit.Module{
		metamod.New(deps),
		apiCatalog,
	}

	ac := deps.Cfg.Prefix("CORE_API_")
	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: ac.MayCSV("CORS_ORIGINS", []string{"*"}),
		Timeout:     ac.MayDuration("TIMEOUT", 30*time.Second),
		SlowRequest: ac.MayDuration("SLOW_REQUEST", time.Second),
		MaxInFlight: ac.MayInt("MAX_INFLIGHT", 0),
	})

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			logger.Named("api").Debug().Str("module", m.Name()).Msg("mounting module")
			m.MountRoutes(api)
		}
	})

}

// @title         pricehunter API
// @version       0.1.0
// @description   Cross-store price comparison for the browser extension
// @BasePath      /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"pricehunter/internal/modkit/repokit"
	"pricehunter/internal/platform/config"
	"pricehunter/internal/platform/logger"
	phttp "pricehunter/internal/platform/net/http"
	"pricehunter/internal/platform/store"

	"pricehunter/internal/services/api"
	catalogmod "pricehunter/internal/services/catalog/module"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// open whichever stores are configured (SERVICE_PGSQL_*, SERVICE_CLICKHOUSE_*, SERVICE_MEILI_*)
	st, err := store.Open(ctx, store.FromConfig(root, "api"), *l)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	// meilisearch is opened lazily, so fail fast here rather than on the first search
	if st.Meili != nil {
		repokit.MustPing(ctx, "meili", st.Meili)
	}

	opts := api.Options{
		Config:         root,
		Store:          st,
		Logger:         l,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	}

	// the catalog owns its tables, so prepare it before serving
	catalog := catalogmod.New(api.Deps(opts), catalogmod.FromConfig(root))
	if err := catalog.Prepare(ctx); err != nil {
		l.Panic().Err(err).Msg("catalog prepare failed")
	}
	opts.Catalog = catalog

	srv := phttp.NewServer(root)
	api.Mount(srv.Router(), opts)

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			l.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("http server drained")
}

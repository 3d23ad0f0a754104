package main

import (
	"context"
	"flag"

	"pricehunter/internal/modkit"
	"pricehunter/internal/platform/config"
	"pricehunter/internal/platform/logger"
	"pricehunter/internal/platform/store"

	catalogmod "pricehunter/internal/services/catalog/module"
	"pricehunter/internal/services/catalog/seed"
)

func main() {
	root := config.New()
	l := logger.Get()

	fFixture := flag.String("fixture", "", "YAML fixture (default: built-in demo catalog)")
	flag.Parse()

	fx, err := seed.Default()
	if *fFixture != "" {
		fx, err = seed.Load(*fFixture)
	}
	if err != nil {
		l.Fatal().Err(err).Msg("fixture")
	}

	ctx := context.Background()
	st, err := store.Open(ctx, store.FromConfig(root, "seed"), *l)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	deps := modkit.Deps{Cfg: root, Log: *l, PG: st.PG, CH: st.CH, Meili: st.Meili}
	catalog := catalogmod.New(deps, catalogmod.FromConfig(root))
	if err := catalog.Prepare(ctx); err != nil {
		l.Panic().Err(err).Msg("catalog prepare failed")
	}

	ports := catalog.Catalog()
	n, err := seed.Apply(ctx, ports.Ingest, fx)
	if err != nil {
		l.Panic().Err(err).Msg("seed failed")
	}
	resolved, err := ports.Ingest.ResolveDemand(ctx)
	if err != nil {
		l.Warn().Err(err).Msg("resolve demand failed")
	}
	l.Info().Int("products", n).Int("stores", len(fx.Stores())).Int64("demand_resolved", resolved).Msg("seed complete")
}

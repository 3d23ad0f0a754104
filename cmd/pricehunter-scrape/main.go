package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"pricehunter/internal/modkit"
	"pricehunter/internal/modkit/repokit"
	"pricehunter/internal/platform/config"
	"pricehunter/internal/platform/logger"
	"pricehunter/internal/platform/store"

	catalogmod "pricehunter/internal/services/catalog/module"
	scrapedomain "pricehunter/internal/services/scrape/domain"
	scrapemod "pricehunter/internal/services/scrape/module"
)

func main() {
	root := config.New()
	l := logger.Get()

	var (
		fStores   = flag.String("stores", "", "YAML store list (default: built-in list)")
		fConc     = flag.Int("concurrency", 0, "stores scraped in parallel (default CORE_SCRAPE_CONCURRENCY)")
		fMaxPages = flag.Int("max_pages", 0, "pages per store (default CORE_SCRAPE_MAX_PAGES)")
		fRPS      = flag.Int("rps", 0, "outbound requests/sec across all stores (default CORE_SCRAPE_RPS)")
	)
	flag.Parse()

	targets := scrapedomain.DefaultStoreList()
	if *fStores != "" {
		sl, err := scrapedomain.LoadStoreList(*fStores)
		if err != nil {
			l.Fatal().Err(err).Msg("store list")
		}
		targets = sl
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.FromConfig(root, "scrape"), *l)
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

	deps := modkit.Deps{Cfg: root, Log: *l, PG: st.PG, CH: st.CH, Meili: st.Meili}

	catalog := catalogmod.New(deps, catalogmod.FromConfig(root))
	if err := catalog.Prepare(ctx); err != nil {
		l.Panic().Err(err).Msg("catalog prepare failed")
	}

	mod := scrapemod.New(deps, catalog.Catalog().Ingest, scrapemod.Options{
		Concurrency: *fConc,
		MaxPages:    *fMaxPages,
		RatePerSec:  *fRPS,
	})

	l.Info().Int("stores", len(targets.Stores)).Msg("starting scrape")
	rep, err := mod.Scraper().Runner.Run(ctx, targets.Stores)
	if err != nil {
		l.Fatal().Err(err).Int("products", rep.Products).Msg("scrape interrupted")
	}
	for _, r := range rep.Results {
		if r.Err != nil {
			l.Warn().Str("store", r.Domain).Err(r.Err).Msg("store failed")
		}
	}
	l.Info().Int("stores", rep.Stores).Int("succeeded", rep.Succeeded).Int("products", rep.Products).Msg("scrape done")
}

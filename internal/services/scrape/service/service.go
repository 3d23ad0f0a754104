// Package service scrapes storefront catalogs into the catalog service
package service

import (
	"context"
	"sync"
	"time"

	"pricehunter/internal/adapters/shopify"
	"pricehunter/internal/platform/logger"
	catalog "pricehunter/internal/services/catalog/domain"
	"pricehunter/internal/services/scrape/domain"
)

// Config tunes a run
type Config struct {
	Concurrency int
	MaxPages    int
	PageDelay   time.Duration
}

// Svc implements domain.RunnerPort
type Svc struct {
	ingest catalog.IngestPort
	fetch  domain.Fetcher
	cfg    Config
	log    logger.Logger
	now    func() time.Time
	sleep  func(context.Context, time.Duration) error
}

// New constructs the scraper. It panics on nil dependencies.
func New(ingest catalog.IngestPort, fetch domain.Fetcher, cfg Config) *Svc {
	if ingest == nil || fetch == nil {
		panic("scrape service requires an ingest port and a fetcher")
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 10
	}
	return &Svc{
		ingest: ingest,
		fetch:  fetch,
		cfg:    cfg,
		log:    *logger.Named("scrape"),
		now:    time.Now,
		sleep:  sleepCtx,
	}
}

// Run scrapes every target with a bounded pool, then marks demand that now has results.
// A failing store is reported in its result and does not stop the run.
func (s *Svc) Run(ctx context.Context, targets []domain.Target) (domain.Report, error) {
	rep := domain.Report{Stores: len(targets), Results: make([]domain.StoreResult, len(targets))}
	sem := make(chan struct{}, max(1, s.cfg.Concurrency))
	var wg sync.WaitGroup

	for i := range targets {
		select {
		case <-ctx.Done():
			wg.Wait()
			return rep, ctx.Err()
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			rep.Results[i] = s.ScrapeStore(ctx, targets[i])
		}(i)
	}
	wg.Wait()

	for _, r := range rep.Results {
		if r.Err == nil {
			rep.Succeeded++
		}
		rep.Products += r.Saved
	}
	if err := ctx.Err(); err != nil {
		return rep, err
	}

	resolved, err := s.ingest.ResolveDemand(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("resolve demand failed")
	} else {
		rep.Resolved = resolved
	}

	s.log.Info().
		Int("stores", rep.Stores).
		Int("succeeded", rep.Succeeded).
		Int("products", rep.Products).
		Int64("demand_resolved", rep.Resolved).
		Msg("scrape run complete")
	return rep, nil
}

// ScrapeStore registers t, walks its products.json pages and records the store stats.
// Pages fetched before an error are kept.
func (s *Svc) ScrapeStore(ctx context.Context, t domain.Target) domain.StoreResult {
	start := s.now()
	res := domain.StoreResult{Domain: t.Domain}
	log := s.log.With().Str("store", t.Domain).Logger()

	st, err := s.ingest.RegisterStore(ctx, catalog.StoreInput{
		Domain:           t.Domain,
		Name:             t.Name,
		Platform:         t.Platform,
		AffiliateNetwork: t.AffiliateNetwork,
		AffiliateID:      t.AffiliateID,
	})
	if err != nil {
		res.Err = err
		log.Error().Err(err).Msg("register store failed")
		return res
	}

	for page := 1; page <= s.cfg.MaxPages; page++ {
		products, err := s.fetch.ProductsPage(ctx, st.Domain, page)
		if err != nil {
			res.Err = err
			log.Warn().Err(err).Int("page", page).Msg("page fetch failed")
			break
		}
		if len(products) == 0 {
			break
		}
		res.Pages++
		res.Seen += len(products)

		batch := make([]catalog.Sighting, 0, len(products))
		for _, p := range products {
			if sg, ok := toSighting(st, p); ok {
				batch = append(batch, sg)
			}
		}
		res.Skipped += len(products) - len(batch)

		n, err := s.ingest.UpsertBatch(ctx, batch)
		if err != nil {
			res.Err = err
			log.Error().Err(err).Int("page", page).Msg("upsert page failed")
			break
		}
		res.Saved += n
		log.Debug().Int("page", page).Int("products", len(products)).Int("saved", n).Msg("page scraped")

		if len(products) < shopify.PageSize {
			break
		}
		if page < s.cfg.MaxPages {
			if err := s.sleep(ctx, s.cfg.PageDelay); err != nil {
				res.Err = err
				break
			}
		}
	}

	if res.Pages > 0 || res.Err == nil {
		if err := s.ingest.TouchStore(ctx, st.Domain, res.Saved, s.now()); err != nil {
			log.Error().Err(err).Msg("store stats update failed")
		}
	}
	res.Elapsed = s.now().Sub(start)

	ev := log.Info()
	if res.Err != nil {
		ev = log.Warn().Err(res.Err)
	}
	ev.Int("pages", res.Pages).Int("saved", res.Saved).Int("skipped", res.Skipped).Dur("elapsed", res.Elapsed).Msg("store scraped")
	return res
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

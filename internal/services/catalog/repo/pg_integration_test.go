//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"pricehunter/internal/platform/store"
	"pricehunter/internal/services/catalog/domain"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "pricehunter",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		cancel()
		t.Fatalf("start postgres: %v", err)
	}
	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("port: %v", err)
	}
	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/pricehunter?sslmode=disable", host, mapped.Port())
	return dsn, func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
}

func openCatalog(t *testing.T) (Repo, store.TxRunner) {
	t.Helper()
	dsn, stop := startPostgres(t)
	t.Cleanup(stop)

	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{PG: store.PGConfig{Enabled: true, URL: dsn, MaxConns: 8}}, zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	if err := EnsureSchema(ctx, st.PG); err != nil {
		t.Fatalf("schema: %v", err)
	}
	// idempotent
	if err := EnsureSchema(ctx, st.PG); err != nil {
		t.Fatalf("schema twice: %v", err)
	}
	return NewPG().Bind(st.PG), st.PG
}

func TestPGCatalog_Integration(t *testing.T) {
	r, db := openCatalog(t)
	ctx := context.Background()

	mk := func(title, norm, storeDomain, url string, price float64) domain.Sighting {
		return domain.Sighting{Title: title, NormalizedTitle: norm, Price: price, Currency: "USD",
			StoreDomain: storeDomain, URL: url, InStock: true, Source: domain.SourceSeed}
	}

	first, err := r.Upsert(ctx, mk("CeraVe Cream 16oz", "cerave cream 16oz", "amazon.com", "https://amazon.com/c", 16.99))
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	second, err := r.Upsert(ctx, mk("Other Title", "other title", "amazon.com", "https://amazon.com/c", 15.49))
	if err != nil {
		t.Fatalf("upsert again: %v", err)
	}
	if second.ID != first.ID || second.Price != 15.49 || second.Title != "CeraVe Cream 16oz" {
		t.Fatalf("merge = %+v", second)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Fatalf("updated_at not advanced: %v -> %v", first.UpdatedAt, second.UpdatedAt)
	}

	_, _ = r.Upsert(ctx, mk("CeraVe Cream 16oz", "cerave cream 16oz", "target.com", "https://target.com/c", 18.99))
	_, _ = r.Upsert(ctx, mk("CeraVe Daily Cream", "cerave daily cream", "cvs.com", "https://cvs.com/c", 11))

	exact, err := r.FindExact(ctx, "cerave cream 16oz", "target.com", 10)
	if err != nil || len(exact) != 1 || exact[0].StoreDomain != "amazon.com" {
		t.Fatalf("exact = %+v, %v", exact, err)
	}
	fuzzy, err := r.FindPattern(ctx, "%cerave%cream%", "target.com", 10)
	if err != nil || len(fuzzy) != 2 || fuzzy[0].StoreDomain != "cvs.com" {
		t.Fatalf("fuzzy = %+v, %v", fuzzy, err)
	}
	all, _ := r.FindPattern(ctx, "%cerave%", "", 10)
	if len(all) != 3 {
		t.Fatalf("unexcluded pattern = %d rows", len(all))
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = r.Upsert(ctx, mk("Race", "race", "a.com", "https://a.com/race", float64(i)))
		}(i)
	}
	wg.Wait()
	n, err := store.Scalar[int64](ctx, db, `SELECT count(*) FROM products WHERE url = 'https://a.com/race'`)
	if err != nil || n != 1 {
		t.Fatalf("race rows = %d, %v", n, err)
	}

	for i := 0; i < 2; i++ {
		if err := r.IncrementDemand(ctx, "glossier boy brow"); err != nil {
			t.Fatalf("demand: %v", err)
		}
	}
	_ = r.IncrementDemand(ctx, "cerave daily cream")
	resolved, err := r.ResolveDemand(ctx)
	if err != nil || resolved != 1 {
		t.Fatalf("resolve = %d, %v", resolved, err)
	}
	top, err := r.HighDemand(ctx, 10)
	if err != nil || len(top) != 1 || top[0].SearchCount != 2 {
		t.Fatalf("demand = %+v, %v", top, err)
	}

	if c, _ := r.CountProducts(ctx); c != 4 {
		t.Fatalf("products = %d", c)
	}
	if c, _ := r.CountDistinctStores(ctx); c != 4 {
		t.Fatalf("stores = %d", c)
	}
	if c, _ := r.CountRecentlyUpdated(ctx, time.Hour); c != 4 {
		t.Fatalf("recent = %d", c)
	}

	if _, err := r.UpsertStore(ctx, domain.Store{Domain: "colourpop.com", Name: "ColourPop", Platform: "shopify", ScrapeFrequencyHours: 24}); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := r.TouchStore(ctx, "colourpop.com", 120, time.Now()); err != nil {
		t.Fatalf("touch: %v", err)
	}
	stores, err := r.ListStores(ctx)
	if err != nil || len(stores) != 1 || stores[0].ProductCount != 120 || stores[0].LastScraped == nil {
		t.Fatalf("stores = %+v, %v", stores, err)
	}

	if err := db.Tx(ctx, func(q store.RowQuerier) error {
		_, err := NewPG().Bind(q).Upsert(ctx, mk("Tx", "tx", "b.com", "https://b.com/tx", 1))
		return err
	}); err != nil {
		t.Fatalf("tx upsert: %v", err)
	}
}

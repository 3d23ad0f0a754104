// Package repo provides catalog persistence: Postgres for production, memory for tests and demos
package repo

import (
	"context"
	"time"

	"pricehunter/internal/modkit/repokit"
	perr "pricehunter/internal/platform/errors"
	"pricehunter/internal/platform/store"
	ptime "pricehunter/internal/platform/time"
	"pricehunter/internal/services/catalog/domain"
)

// Repo is the catalog store adapter used by the service layer.
// Every write touches exactly one logical row except ResolveDemand, which is a single statement.
type Repo interface {
	// FindExact returns in-stock rows whose normalized title equals normalized, cheapest first
	FindExact(ctx context.Context, normalized, excludeStore string, limit int) ([]domain.Product, error)
	// FindPattern returns in-stock rows whose normalized title is LIKE pattern. An empty excludeStore excludes nothing.
	FindPattern(ctx context.Context, pattern, excludeStore string, limit int) ([]domain.Product, error)
	// Upsert inserts by url, or updates price, in_stock and updated_at of the existing row
	Upsert(ctx context.Context, s domain.Sighting) (domain.Product, error)

	IncrementDemand(ctx context.Context, normalized string) error
	HighDemand(ctx context.Context, limit int) ([]domain.Demand, error)
	ResolveDemand(ctx context.Context) (int64, error)

	CountProducts(ctx context.Context) (int64, error)
	CountDistinctStores(ctx context.Context) (int64, error)
	CountRecentlyUpdated(ctx context.Context, window time.Duration) (int64, error)

	UpsertStore(ctx context.Context, s domain.Store) (domain.Store, error)
	ListStores(ctx context.Context) ([]domain.Store, error)
	TouchStore(ctx context.Context, storeDomain string, productCount int, at time.Time) error
}

type (
	// PG is a Postgres implementation of the catalog repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const productCols = `id, title, normalized_title, price::float8, currency, store_domain, store_name, url,
	image_url, vendor, category, in_stock, source, created_at, updated_at`

func scanProduct(r repokit.Row) (domain.Product, error) {
	var p domain.Product
	var src string
	err := r.Scan(&p.ID, &p.Title, &p.NormalizedTitle, &p.Price, &p.Currency, &p.StoreDomain, &p.StoreName,
		&p.URL, &p.ImageURL, &p.Vendor, &p.Category, &p.InStock, &src, &p.CreatedAt, &p.UpdatedAt)
	p.Source = domain.Source(src)
	return p, err
}

// FindExact implements Repo
func (r *queries) FindExact(ctx context.Context, normalized, excludeStore string, limit int) ([]domain.Product, error) {
	const sql = `
		SELECT ` + productCols + `
		FROM products
		WHERE normalized_title = $1 AND store_domain <> $2 AND in_stock
		ORDER BY price ASC, id ASC
		LIMIT $3
	`
	out, err := store.Many(ctx, r.q, scanProduct, sql, normalized, excludeStore, limit)
	return out, perr.FromPostgres(err, "find exact")
}

// FindPattern implements Repo
func (r *queries) FindPattern(ctx context.Context, pattern, excludeStore string, limit int) ([]domain.Product, error) {
	const sql = `
		SELECT ` + productCols + `
		FROM products
		WHERE normalized_title LIKE $1 AND ($2 = '' OR store_domain <> $2) AND in_stock
		ORDER BY price ASC, id ASC
		LIMIT $3
	`
	out, err := store.Many(ctx, r.q, scanProduct, sql, pattern, excludeStore, limit)
	return out, perr.FromPostgres(err, "find pattern")
}

// Upsert implements Repo. title, normalized_title and created_at are fixed at first sighting.
func (r *queries) Upsert(ctx context.Context, s domain.Sighting) (domain.Product, error) {
	const sql = `
		INSERT INTO products (
			title, normalized_title, price, currency, store_domain, store_name,
			url, image_url, vendor, category, in_stock, source
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (url) DO UPDATE
		SET price      = EXCLUDED.price,
		    in_stock   = EXCLUDED.in_stock,
		    updated_at = clock_timestamp()
		RETURNING ` + productCols
	p, err := scanProduct(r.q.QueryRow(ctx, sql,
		s.Title, s.NormalizedTitle, s.Price, s.Currency, s.StoreDomain, s.StoreName,
		s.URL, s.ImageURL, s.Vendor, s.Category, s.InStock, string(s.Source),
	))
	return p, perr.FromPostgres(err, "upsert product")
}

// IncrementDemand implements Repo
func (r *queries) IncrementDemand(ctx context.Context, normalized string) error {
	const sql = `
		INSERT INTO search_demand (normalized_title, search_count, last_searched)
		VALUES ($1, 1, now())
		ON CONFLICT (normalized_title) DO UPDATE
		SET search_count  = search_demand.search_count + 1,
		    last_searched = now()
	`
	_, err := r.q.Exec(ctx, sql, normalized)
	return perr.FromPostgres(err, "increment demand")
}

// HighDemand implements Repo
func (r *queries) HighDemand(ctx context.Context, limit int) ([]domain.Demand, error) {
	const sql = `
		SELECT normalized_title, search_count, last_searched, has_results
		FROM search_demand
		WHERE NOT has_results
		ORDER BY search_count DESC, last_searched DESC
		LIMIT $1
	`
	out, err := store.Many(ctx, r.q, func(row repokit.Row) (domain.Demand, error) {
		var d domain.Demand
		err := row.Scan(&d.NormalizedTitle, &d.SearchCount, &d.LastSearched, &d.HasResults)
		return d, err
	}, sql, limit)
	return out, perr.FromPostgres(err, "high demand")
}

// ResolveDemand implements Repo. It flags misses that the catalog can now answer exactly.
func (r *queries) ResolveDemand(ctx context.Context) (int64, error) {
	const sql = `
		UPDATE search_demand d
		SET has_results = true
		WHERE NOT d.has_results
		  AND EXISTS (SELECT 1 FROM products p WHERE p.normalized_title = d.normalized_title AND p.in_stock)
	`
	ct, err := r.q.Exec(ctx, sql)
	if err != nil {
		return 0, perr.FromPostgres(err, "resolve demand")
	}
	return ct.RowsAffected(), nil
}

// CountProducts implements Repo
func (r *queries) CountProducts(ctx context.Context) (int64, error) {
	n, err := store.Scalar[int64](ctx, r.q, `SELECT count(*) FROM products`)
	return n, perr.FromPostgres(err, "count products")
}

// CountDistinctStores implements Repo
func (r *queries) CountDistinctStores(ctx context.Context) (int64, error) {
	n, err := store.Scalar[int64](ctx, r.q, `SELECT count(DISTINCT store_domain) FROM products`)
	return n, perr.FromPostgres(err, "count stores")
}

// CountRecentlyUpdated implements Repo
func (r *queries) CountRecentlyUpdated(ctx context.Context, window time.Duration) (int64, error) {
	const sql = `SELECT count(*) FROM products WHERE updated_at >= now() - ($1::bigint * interval '1 second')`
	n, err := store.Scalar[int64](ctx, r.q, sql, int64(window/time.Second))
	return n, perr.FromPostgres(err, "count recent")
}

const storeCols = `domain, name, platform, product_count, last_scraped, scrape_frequency_hours,
	affiliate_network, affiliate_id, is_active, created_at`

func scanStore(r repokit.Row) (domain.Store, error) {
	var s domain.Store
	err := r.Scan(&s.Domain, &s.Name, &s.Platform, &s.ProductCount, &s.LastScraped, &s.ScrapeFrequencyHours,
		&s.AffiliateNetwork, &s.AffiliateID, &s.IsActive, &s.CreatedAt)
	return s, err
}

// UpsertStore implements Repo. Blank name and affiliate fields keep what is stored.
func (r *queries) UpsertStore(ctx context.Context, s domain.Store) (domain.Store, error) {
	const sql = `
		INSERT INTO stores (domain, name, platform, scrape_frequency_hours, affiliate_network, affiliate_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (domain) DO UPDATE
		SET name                   = COALESCE(NULLIF(EXCLUDED.name, ''), stores.name),
		    platform               = EXCLUDED.platform,
		    scrape_frequency_hours = EXCLUDED.scrape_frequency_hours,
		    affiliate_network      = COALESCE(NULLIF(EXCLUDED.affiliate_network, ''), stores.affiliate_network),
		    affiliate_id           = COALESCE(NULLIF(EXCLUDED.affiliate_id, ''), stores.affiliate_id),
		    is_active              = true
		RETURNING ` + storeCols
	out, err := scanStore(r.q.QueryRow(ctx, sql,
		s.Domain, s.Name, s.Platform, s.ScrapeFrequencyHours, s.AffiliateNetwork, s.AffiliateID))
	return out, perr.FromPostgres(err, "upsert store")
}

// ListStores implements Repo
func (r *queries) ListStores(ctx context.Context) ([]domain.Store, error) {
	out, err := store.Many(ctx, r.q, scanStore, `SELECT `+storeCols+` FROM stores ORDER BY domain`)
	return out, perr.FromPostgres(err, "list stores")
}

// TouchStore implements Repo
func (r *queries) TouchStore(ctx context.Context, domainName string, productCount int, at time.Time) error {
	const sql = `UPDATE stores SET product_count = $2, last_scraped = $3 WHERE domain = $1`
	ct, err := r.q.Exec(ctx, sql, domainName, productCount, ptime.Ptr(at))
	if err != nil {
		return perr.FromPostgres(err, "touch store")
	}
	if ct.RowsAffected() == 0 {
		return perr.NotFoundf("store %s not registered", domainName)
	}
	return nil
}

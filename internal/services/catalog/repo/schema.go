package repo

import (
	"context"

	"pricehunter/internal/modkit/repokit"
	perr "pricehunter/internal/platform/errors"
)

// schema is idempotent; there is no migration history
var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id               bigserial PRIMARY KEY,
		title            text           NOT NULL,
		normalized_title text           NOT NULL,
		price            numeric(12, 2) NOT NULL CHECK (price >= 0),
		currency         text           NOT NULL DEFAULT 'USD',
		store_domain     text           NOT NULL,
		store_name       text           NOT NULL DEFAULT '',
		url              text           NOT NULL UNIQUE,
		image_url        text           NOT NULL DEFAULT '',
		vendor           text           NOT NULL DEFAULT '',
		category         text           NOT NULL DEFAULT '',
		in_stock         boolean        NOT NULL DEFAULT true,
		source           text           NOT NULL DEFAULT 'scrape',
		created_at       timestamptz    NOT NULL DEFAULT now(),
		updated_at       timestamptz    NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS products_normalized_title_idx ON products (normalized_title)`,
	`CREATE INDEX IF NOT EXISTS products_store_domain_idx ON products (store_domain)`,
	`CREATE INDEX IF NOT EXISTS products_price_idx ON products (price)`,
	`CREATE TABLE IF NOT EXISTS stores (
		domain                 text        PRIMARY KEY,
		name                   text        NOT NULL DEFAULT '',
		platform               text        NOT NULL DEFAULT 'shopify',
		product_count          integer     NOT NULL DEFAULT 0,
		last_scraped           timestamptz,
		scrape_frequency_hours integer     NOT NULL DEFAULT 24,
		affiliate_network      text        NOT NULL DEFAULT '',
		affiliate_id           text        NOT NULL DEFAULT '',
		is_active              boolean     NOT NULL DEFAULT true,
		created_at             timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS search_demand (
		normalized_title text        PRIMARY KEY,
		search_count     bigint      NOT NULL DEFAULT 1,
		last_searched    timestamptz NOT NULL DEFAULT now(),
		has_results      boolean     NOT NULL DEFAULT false
	)`,
}

// EnsureSchema creates the catalog tables when missing
func EnsureSchema(ctx context.Context, q repokit.Queryer) error {
	for _, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return perr.FromPostgres(err, "ensure schema")
		}
	}
	return nil
}

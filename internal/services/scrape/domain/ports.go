package domain

import (
	"context"

	"pricehunter/internal/adapters/shopify"
)

// Fetcher reads one products.json page of a storefront
type Fetcher interface {
	ProductsPage(ctx context.Context, domain string, page int) ([]shopify.Product, error)
}

// RunnerPort scrapes storefronts into the catalog
type RunnerPort interface {
	Run(ctx context.Context, targets []Target) (Report, error)
	ScrapeStore(ctx context.Context, t Target) StoreResult
}

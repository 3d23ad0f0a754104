package domain

import (
	"context"
	"time"
)

// ServicePort is what the catalog API exposes
type ServicePort interface {
	FindAlternatives(ctx context.Context, in FindInput) (FindOutput, error)
	ReportProducts(ctx context.Context, in ReportInput) (ReportOutput, error)
	Search(ctx context.Context, in SearchQuery) (SearchOutput, error)
	Stats(ctx context.Context) (Stats, error)
	RegisterStore(ctx context.Context, in StoreInput) (Store, error)
	ListStores(ctx context.Context) ([]Store, error)
	HighDemand(ctx context.Context, limit int) ([]Demand, error)
}

// IngestPort is what scrapers and seeders write through
type IngestPort interface {
	UpsertBatch(ctx context.Context, batch []Sighting) (int, error)
	RegisterStore(ctx context.Context, in StoreInput) (Store, error)
	TouchStore(ctx context.Context, domain string, productCount int, at time.Time) error
	ResolveDemand(ctx context.Context) (int64, error)
}

// SearchIndex is an optional full-text backend for free-text search
type SearchIndex interface {
	Index(ctx context.Context, products []Product) error
	Search(ctx context.Context, query string, limit int) ([]Product, error)
}

// EventSink receives lookup analytics
type EventSink interface {
	Lookup(ctx context.Context, ev LookupEvent) error
}

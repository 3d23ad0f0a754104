// Package domain holds catalog types independent of transport or storage
package domain

import (
	"time"

	"github.com/google/uuid"
)

// MatchType says which tier produced the alternatives
type MatchType string

const (
	// MatchExact means the normalized titles are byte-equal
	MatchExact MatchType = "exact"

	// MatchFuzzy means the stored title contains the query's significant terms in order
	MatchFuzzy MatchType = "fuzzy"

	// MatchNone means nothing matched
	MatchNone MatchType = "none"
)

// Source records where a sighting came from
type Source string

const (
	SourceScrape     Source = "scrape"
	SourceShopify    Source = "shopify_scrape"
	SourceUserReport Source = "user_report"
	SourceSeed       Source = "seed"
)

// Product is one catalog row: a title observed at a price on one store url
type Product struct {
	ID              int64     `json:"id" example:"42"`
	Title           string    `json:"title" example:"CeraVe Moisturizing Cream 16oz"`
	NormalizedTitle string    `json:"normalized_title" example:"cerave moisturizing cream 16oz"`
	Price           float64   `json:"price" example:"16.99"`
	Currency        string    `json:"currency" example:"USD"`
	StoreDomain     string    `json:"store_domain" example:"amazon.com"`
	StoreName       string    `json:"store_name,omitempty" example:"Amazon"`
	URL             string    `json:"url" example:"https://amazon.com/dp/B00TTD9BRC"`
	ImageURL        string    `json:"image_url,omitempty"`
	Vendor          string    `json:"vendor,omitempty" example:"CeraVe"`
	Category        string    `json:"category,omitempty" example:"Skin Care"`
	InStock         bool      `json:"in_stock" example:"true"`
	Source          Source    `json:"source" example:"scrape"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Sighting is the write shape for an upsert. NormalizedTitle is always derived from Title.
type Sighting struct {
	Title           string
	NormalizedTitle string
	Price           float64
	Currency        string
	StoreDomain     string
	StoreName       string
	URL             string
	ImageURL        string
	Vendor          string
	Category        string
	InStock         bool
	Source          Source
}

// Store is a retailer the catalog knows about
type Store struct {
	Domain               string     `json:"domain" example:"colourpop.com"`
	Name                 string     `json:"name,omitempty" example:"ColourPop"`
	Platform             string     `json:"platform" example:"shopify"`
	ProductCount         int        `json:"product_count" example:"1240"`
	LastScraped          *time.Time `json:"last_scraped,omitempty"`
	ScrapeFrequencyHours int        `json:"scrape_frequency_hours" example:"24"`
	AffiliateNetwork     string     `json:"affiliate_network,omitempty" example:"impact"`
	AffiliateID          string     `json:"affiliate_id,omitempty"`
	IsActive             bool       `json:"is_active" example:"true"`
	CreatedAt            time.Time  `json:"created_at"`
}

// Demand counts lookups that found nothing for a normalized title
type Demand struct {
	NormalizedTitle string    `json:"normalized_title" example:"glossier boy brow"`
	SearchCount     int64     `json:"search_count" example:"17"`
	LastSearched    time.Time `json:"last_searched"`
	HasResults      bool      `json:"has_results"`
}

// Stats are catalog-wide counters
type Stats struct {
	TotalProducts   int64 `json:"total_products" example:"18230"`
	TotalStores     int64 `json:"total_stores" example:"41"`
	UpdatedRecently int64 `json:"products_updated_24h" example:"3120"`
}

// LookupEvent describes one alternatives lookup for analytics
type LookupEvent struct {
	ID              uuid.UUID
	At              time.Time
	NormalizedTitle string
	StoreDomain     string
	MatchType       MatchType
	Alternatives    int
}

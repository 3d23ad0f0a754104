package domain

// FindInput is the product the shopper is looking at
type FindInput struct {
	Title       string   `json:"title"        validate:"required,max=500" example:"CeraVe Moisturizing Cream 16oz"`
	Price       *float64 `json:"price"        validate:"omitempty,gte=0" example:"18.99"`
	StoreDomain string   `json:"store_domain" validate:"required,store_domain" example:"target.com"`
	URL         string   `json:"url"          validate:"omitempty,url,max=2048" example:"https://target.com/p/cerave-cream/-/A-14"`
	ImageURL    string   `json:"image_url"    validate:"omitempty,url,max=2048"`
}

// Alternative is a cheaper (or not) listing at another store
type Alternative struct {
	Title    string  `json:"title" example:"CeraVe Moisturizing Cream 16oz"`
	Price    float64 `json:"price" example:"16.99"`
	Store    string  `json:"store" example:"amazon.com"`
	URL      string  `json:"url" example:"https://amazon.com/dp/B00TTD9BRC"`
	ImageURL string  `json:"image_url,omitempty"`
	// Savings is query price minus this price, null when the query had no price
	Savings *string `json:"savings" example:"2.00"`
}

// QueryEcho repeats what was looked up
type QueryEcho struct {
	Title string   `json:"title"`
	Price *float64 `json:"price"`
	Store string   `json:"store"`
}

// FindOutput is the lookup result. Alternatives are ordered by ascending price.
type FindOutput struct {
	Query             QueryEcho     `json:"query"`
	MatchType         MatchType     `json:"match_type" example:"exact"`
	AlternativesCount int           `json:"alternatives_count" example:"1"`
	Alternatives      []Alternative `json:"alternatives"`
	Cheapest          *Alternative  `json:"cheapest"`
}

// ReportItem is one crowd-sourced sighting. Incomplete items are skipped, not rejected.
type ReportItem struct {
	Title       string   `json:"title"`
	Price       *float64 `json:"price"`
	StoreDomain string   `json:"store_domain"`
	StoreName   string   `json:"store_name,omitempty"`
	URL         string   `json:"url"`
	ImageURL    string   `json:"image_url,omitempty"`
	Vendor      string   `json:"vendor,omitempty"`
	Category    string   `json:"category,omitempty"`
	InStock     *bool    `json:"in_stock,omitempty"`
}

// ReportInput carries a batch of sightings
type ReportInput struct {
	Products []ReportItem `json:"products" validate:"required,max=1000"`
}

// ReportOutput says how many items were stored
type ReportOutput struct {
	Saved int `json:"saved" example:"48"`
	Total int `json:"total" example:"50"`
}

// SearchQuery is bound from ?q=&limit=
type SearchQuery struct {
	Q     string `json:"q"     validate:"required,max=200" example:"cerave cream"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=100" example:"20"`
}

// SearchOutput lists matching products by ascending price
type SearchOutput struct {
	Query   string    `json:"query" example:"cerave cream"`
	Count   int       `json:"count" example:"3"`
	Results []Product `json:"results"`
}

// StoreInput registers or updates a store
type StoreInput struct {
	Domain               string `json:"domain"                 validate:"required,store_domain" example:"colourpop.com"`
	Name                 string `json:"name"                   validate:"omitempty,max=200" example:"ColourPop"`
	Platform             string `json:"platform"               validate:"omitempty,oneof=shopify custom" example:"shopify"`
	ScrapeFrequencyHours int    `json:"scrape_frequency_hours" validate:"omitempty,min=1,max=720" example:"24"`
	AffiliateNetwork     string `json:"affiliate_network"      validate:"omitempty,max=100" example:"impact"`
	AffiliateID          string `json:"affiliate_id"           validate:"omitempty,max=200"`
}

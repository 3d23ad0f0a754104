// Package domain holds the scraper's types and ports
package domain

import "time"

// Target is a storefront to scrape
type Target struct {
	Domain           string `yaml:"domain"`
	Name             string `yaml:"name"`
	Platform         string `yaml:"platform"`
	AffiliateNetwork string `yaml:"affiliate_network"`
	AffiliateID      string `yaml:"affiliate_id"`
}

// StoreResult summarizes one store's scrape
type StoreResult struct {
	Domain  string
	Pages   int
	Seen    int
	Saved   int
	Skipped int
	Elapsed time.Duration
	Err     error
}

// Report summarizes a run
type Report struct {
	Stores    int
	Succeeded int
	Products  int
	Resolved  int64
	Results   []StoreResult
}

// Package seed loads YAML product fixtures into the catalog
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"pricehunter/internal/services/catalog/domain"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultFixture []byte

// Item is one fixture row. URL defaults to a slug under the store domain.
type Item struct {
	Title       string  `yaml:"title"`
	Price       float64 `yaml:"price"`
	StoreDomain string  `yaml:"store_domain"`
	StoreName   string  `yaml:"store_name"`
	URL         string  `yaml:"url"`
	ImageURL    string  `yaml:"image_url"`
	Vendor      string  `yaml:"vendor"`
	Category    string  `yaml:"category"`
}

// Fixture is the YAML document
type Fixture struct {
	Products []Item `yaml:"products"`
}

// Default returns the built-in fixture
func Default() (Fixture, error) { return parse(defaultFixture, "default.yaml") }

// Load reads a fixture file, applies defaults and validates it
func Load(path string) (Fixture, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, err
	}
	return parse(b, path)
}

func parse(b []byte, name string) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(b, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse %s: %w", name, err)
	}
	f.applyDefaults()
	if err := f.Validate(); err != nil {
		return Fixture{}, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

func (f *Fixture) applyDefaults() {
	for i := range f.Products {
		it := &f.Products[i]
		it.StoreDomain = strings.ToLower(strings.TrimSpace(it.StoreDomain))
		if it.URL == "" && it.StoreDomain != "" {
			slug := strings.Trim(slugRe.ReplaceAllString(strings.ToLower(it.Title), "-"), "-")
			it.URL = "https://" + it.StoreDomain + "/products/" + slug
		}
	}
}

// Validate rejects rows missing a title or store, negative prices and repeated urls
func (f Fixture) Validate() error {
	if len(f.Products) == 0 {
		return fmt.Errorf("no products")
	}
	urls := make(map[string]struct{}, len(f.Products))
	for i, it := range f.Products {
		switch {
		case strings.TrimSpace(it.Title) == "":
			return fmt.Errorf("products[%d]: title is required", i)
		case it.StoreDomain == "":
			return fmt.Errorf("products[%d]: store_domain is required", i)
		case it.Price < 0:
			return fmt.Errorf("products[%d]: negative price", i)
		}
		if _, dup := urls[it.URL]; dup {
			return fmt.Errorf("products[%d]: duplicate url %s", i, it.URL)
		}
		urls[it.URL] = struct{}{}
	}
	return nil
}

// Stores lists the distinct store domains in fixture order
func (f Fixture) Stores() []string {
	var out []string
	seen := map[string]bool{}
	for _, it := range f.Products {
		if !seen[it.StoreDomain] {
			seen[it.StoreDomain] = true
			out = append(out, it.StoreDomain)
		}
	}
	return out
}

// Apply registers every store and upserts every row with source seed
func Apply(ctx context.Context, ingest domain.IngestPort, f Fixture) (int, error) {
	for _, d := range f.Stores() {
		if _, err := ingest.RegisterStore(ctx, domain.StoreInput{Domain: d, Platform: "custom"}); err != nil {
			return 0, fmt.Errorf("register %s: %w", d, err)
		}
	}
	batch := make([]domain.Sighting, 0, len(f.Products))
	for _, it := range f.Products {
		batch = append(batch, domain.Sighting{
			Title:       it.Title,
			Price:       it.Price,
			StoreDomain: it.StoreDomain,
			StoreName:   it.StoreName,
			URL:         it.URL,
			ImageURL:    it.ImageURL,
			Vendor:      it.Vendor,
			Category:    it.Category,
			InStock:     true,
			Source:      domain.SourceSeed,
		})
	}
	return ingest.UpsertBatch(ctx, batch)
}

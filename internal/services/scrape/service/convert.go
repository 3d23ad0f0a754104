package service

import (
	"strings"

	"pricehunter/internal/adapters/shopify"
	"pricehunter/internal/core/money"
	catalog "pricehunter/internal/services/catalog/domain"
)

// toSighting maps a storefront product to a sighting. Products without a first
// variant, with an unavailable first variant, or without a usable price are skipped.
func toSighting(st catalog.Store, p shopify.Product) (catalog.Sighting, bool) {
	if len(p.Variants) == 0 || strings.TrimSpace(p.Title) == "" || p.Handle == "" {
		return catalog.Sighting{}, false
	}
	v := p.Variants[0]
	if v.Available != nil && !*v.Available {
		return catalog.Sighting{}, false
	}
	price, err := money.Parse(v.Price)
	if err != nil || price < 0 {
		return catalog.Sighting{}, false
	}
	sg := catalog.Sighting{
		Title:       p.Title,
		Price:       price,
		Currency:    "USD",
		StoreDomain: st.Domain,
		StoreName:   st.Name,
		URL:         shopify.URL(st.Domain, p.Handle),
		Vendor:      p.Vendor,
		Category:    p.ProductType,
		InStock:     true,
		Source:      catalog.SourceShopify,
	}
	if len(p.Images) > 0 {
		sg.ImageURL = p.Images[0].Src
	}
	return sg, true
}

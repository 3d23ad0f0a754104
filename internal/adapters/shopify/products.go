package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	perr "pricehunter/internal/platform/errors"
)

// PageSize is the largest page products.json serves
const PageSize = 250

// ProductsPage fetches one page of a store's catalog. Pages start at 1.
func (c *Client) ProductsPage(ctx context.Context, domain string, page int) ([]Product, error) {
	path := fmt.Sprintf("/products.json?limit=%d&page=%d", PageSize, page)
	resp, err := c.Do(ctx, domain, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("store", domain).Msg("shopify close body failed")
		}
	}()

	var out productsPage
	if err := json.NewDecoder(io.LimitReader(resp.Body, 32<<20)).Decode(&out); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "shopify %s page %d decode", domain, page)
	}
	return out.Products, nil
}

// URL is the storefront product page for handle
func URL(domain, handle string) string {
	return "https://" + domain + "/products/" + handle
}

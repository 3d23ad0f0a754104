package repo

import (
	"context"
	"fmt"

	"pricehunter/internal/platform/store/meili"
	"pricehunter/internal/services/catalog/domain"

	"github.com/meilisearch/meilisearch-go"
)

// MeiliIndex serves free-text search from a Meilisearch index of products
type MeiliIndex struct {
	c   *meili.Client
	uid string
}

// NewMeiliIndex binds the products index uid
func NewMeiliIndex(c *meili.Client, uid string) *MeiliIndex {
	if uid == "" {
		uid = "products"
	}
	return &MeiliIndex{c: c, uid: uid}
}

// EnsureIndex creates the index and applies settings
func (m *MeiliIndex) EnsureIndex(ctx context.Context) error {
	return m.c.EnsureIndex(ctx, m.uid, meili.IndexSettings{
		PrimaryKey: "id",
		Searchable: []string{"normalized_title", "title", "vendor", "category"},
		Filterable: []string{"in_stock", "store_domain", "price"},
		Sortable:   []string{"price"},
	})
}

// Index implements domain.SearchIndex. Documents are replaced by id.
func (m *MeiliIndex) Index(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	if _, err := m.c.Index(m.uid).AddDocumentsWithContext(ctx, products, nil); err != nil {
		return fmt.Errorf("meili add %s: %w", m.uid, err)
	}
	return nil
}

// Search implements domain.SearchIndex: in stock only, cheapest first
func (m *MeiliIndex) Search(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	res, err := m.c.Index(m.uid).SearchWithContext(ctx, query, &meilisearch.SearchRequest{
		Limit:  int64(limit),
		Filter: "in_stock = true",
		Sort:   []string{"price:asc"},
	})
	if err != nil {
		return nil, fmt.Errorf("meili search %s: %w", m.uid, err)
	}
	return meili.DecodeHits[domain.Product](res.Hits)
}

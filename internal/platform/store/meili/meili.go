// Package meili wraps the Meilisearch client
package meili

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/meilisearch/meilisearch-go"
)

// Config configures the client
type Config struct {
	URL    string
	APIKey string
}

// Client is a Meilisearch service handle
type Client struct {
	sm meilisearch.ServiceManager
}

// IndexSettings is the subset of index settings we manage
type IndexSettings struct {
	PrimaryKey string
	Searchable []string
	Filterable []string
	Sortable   []string
}

// Open builds a client. Meilisearch is HTTP so nothing is dialed until first use.
func Open(cfg Config) *Client {
	return &Client{sm: meilisearch.New(cfg.URL, meilisearch.WithAPIKey(cfg.APIKey))}
}

// Ping calls /health
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.sm.HealthWithContext(ctx)
	return err
}

// Index returns a handle for uid
func (c *Client) Index(uid string) meilisearch.IndexManager { return c.sm.Index(uid) }

// EnsureIndex creates uid when missing and applies settings. Creating an existing index is a no-op task.
func (c *Client) EnsureIndex(ctx context.Context, uid string, s IndexSettings) error {
	_, _ = c.sm.CreateIndexWithContext(ctx, &meilisearch.IndexConfig{Uid: uid, PrimaryKey: s.PrimaryKey})

	settings := meilisearch.Settings{
		SearchableAttributes: s.Searchable,
		FilterableAttributes: s.Filterable,
		SortableAttributes:   s.Sortable,
	}
	if _, err := c.sm.Index(uid).UpdateSettingsWithContext(ctx, &settings); err != nil {
		return fmt.Errorf("meili settings %s: %w", uid, err)
	}
	return nil
}

// DecodeHits converts raw hits into T via JSON
func DecodeHits[T any](hits any) ([]T, error) {
	raw, err := json.Marshal(hits)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

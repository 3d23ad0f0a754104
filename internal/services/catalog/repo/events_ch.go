package repo

import (
	"context"

	"pricehunter/internal/platform/store"
	"pricehunter/internal/services/catalog/domain"

	"github.com/google/uuid"
)

// LookupEventsTable is the ClickHouse table lookups land in
const LookupEventsTable = "lookup_events"

const lookupEventsDDL = `
	CREATE TABLE IF NOT EXISTS lookup_events (
		id               UUID,
		ts               DateTime64(3, 'UTC'),
		normalized_title String,
		store_domain     LowCardinality(String),
		match_type       LowCardinality(String),
		alternatives     UInt16
	)
	ENGINE = MergeTree
	ORDER BY (ts)
`

// CHEvents writes lookup events to ClickHouse
type CHEvents struct {
	ch store.Clickhouse
}

// NewCHEvents wraps an open ClickHouse connection
func NewCHEvents(ch store.Clickhouse) *CHEvents { return &CHEvents{ch: ch} }

// EnsureTable creates lookup_events when missing
func (e *CHEvents) EnsureTable(ctx context.Context) error {
	return e.ch.Exec(ctx, lookupEventsDDL)
}

// Lookup implements domain.EventSink
func (e *CHEvents) Lookup(ctx context.Context, ev domain.LookupEvent) error {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	n := ev.Alternatives
	if n > 65535 {
		n = 65535
	}
	return e.ch.Insert(ctx, LookupEventsTable, [][]any{{
		ev.ID, ev.At.UTC(), ev.NormalizedTitle, ev.StoreDomain, string(ev.MatchType), uint16(n),
	}})
}

package repo

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	perr "pricehunter/internal/platform/errors"
	"pricehunter/internal/services/catalog/domain"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newClock() *clock { return &clock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)} }

func sighting(title, norm, store, url string, price float64) domain.Sighting {
	return domain.Sighting{
		Title: title, NormalizedTitle: norm, Price: price, Currency: "USD",
		StoreDomain: store, URL: url, InStock: true, Source: domain.SourceSeed,
	}
}

func TestMemoryUpsertMergesByURL(t *testing.T) {
	ctx := context.Background()
	c := newClock()
	m := NewMemory(c.now)

	first, err := m.Upsert(ctx, sighting("Cream 16oz", "cream 16oz", "amazon.com", "https://amazon.com/1", 20))
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	c.advance(time.Minute)
	renamed := sighting("Renamed Cream", "renamed cream", "amazon.com", "https://amazon.com/1", 17.5)
	second, err := m.Upsert(ctx, renamed)
	if err != nil {
		t.Fatalf("upsert again: %v", err)
	}

	if n, _ := m.CountProducts(ctx); n != 1 {
		t.Fatalf("rows = %d, want 1", n)
	}
	if second.ID != first.ID || second.Price != 17.5 {
		t.Fatalf("second = %+v", second)
	}
	if second.Title != "Cream 16oz" || second.NormalizedTitle != "cream 16oz" {
		t.Fatalf("identity fields overwritten: %+v", second)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) || !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("timestamps: first=%+v second=%+v", first, second)
	}
}

func TestMemoryUpsertRejectsNegativePrice(t *testing.T) {
	_, err := NewMemory(nil).Upsert(context.Background(), sighting("x", "x", "a.com", "u", -1))
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("err = %v", err)
	}
}

func TestMemoryConcurrentUpsertsKeepOneRow(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(nil)
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = m.Upsert(ctx, sighting("Gel", "gel", "a.com", "https://a.com/gel", float64(i)))
		}(i)
	}
	wg.Wait()
	if n, _ := m.CountProducts(ctx); n != 1 {
		t.Fatalf("rows = %d", n)
	}
}

func TestMemoryFindExactOrderingAndExclusion(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(nil)
	for _, s := range []domain.Sighting{
		sighting("A", "cream", "target.com", "t1", 18.99),
		sighting("B", "cream", "amazon.com", "a1", 16.99),
		sighting("C", "cream", "walmart.com", "w1", 16.99),
		sighting("D", "cream", "cvs.com", "c1", 12.00),
		sighting("E", "lotion", "cvs.com", "c2", 1.00),
	} {
		if _, err := m.Upsert(ctx, s); err != nil {
			t.Fatal(err)
		}
	}
	oos := sighting("F", "cream", "ulta.com", "u1", 1)
	oos.InStock = false
	_, _ = m.Upsert(ctx, oos)

	got, _ := m.FindExact(ctx, "cream", "target.com", 10)
	var urls []string
	for _, p := range got {
		urls = append(urls, p.URL)
	}
	if want := []string{"c1", "a1", "w1"}; !reflect.DeepEqual(urls, want) {
		t.Fatalf("urls = %v, want %v", urls, want)
	}

	capped, _ := m.FindExact(ctx, "cream", "target.com", 2)
	if len(capped) != 2 {
		t.Fatalf("limit ignored: %d", len(capped))
	}
}

func TestMemoryFindPattern(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(nil)
	_, _ = m.Upsert(ctx, sighting("x", "cerave moisturizing cream 16oz", "amazon.com", "a", 16.99))
	_, _ = m.Upsert(ctx, sighting("y", "cream cerave", "cvs.com", "b", 9.99))
	_, _ = m.Upsert(ctx, sighting("z", "cerave daily cream", "target.com", "c", 14.99))

	got, _ := m.FindPattern(ctx, "%cerave%cream%", "target.com", 10)
	if len(got) != 1 || got[0].URL != "a" {
		t.Fatalf("ordered pattern = %+v", got)
	}
	all, _ := m.FindPattern(ctx, "%cerave%cream%", "", 10)
	if len(all) != 2 || all[0].URL != "c" {
		t.Fatalf("no exclusion = %+v", all)
	}
}

func TestLikeTerms(t *testing.T) {
	cases := map[string][]string{
		"%a%b%":      {"a", "b"},
		"%100\\%%x%": {"100%", "x"},
		"%a\\_b%":    {"a_b"},
		"":           nil,
		"%%":         nil,
	}
	for in, want := range cases {
		if got := likeTerms(in); !reflect.DeepEqual(got, want) {
			t.Fatalf("likeTerms(%q) = %#v, want %#v", in, got, want)
		}
	}
}

func TestMemoryDemand(t *testing.T) {
	ctx := context.Background()
	c := newClock()
	m := NewMemory(c.now)
	for i := 0; i < 3; i++ {
		_ = m.IncrementDemand(ctx, "glossier boy brow")
	}
	_ = m.IncrementDemand(ctx, "rare beauty blush")

	top, _ := m.HighDemand(ctx, 10)
	if len(top) != 2 || top[0].NormalizedTitle != "glossier boy brow" || top[0].SearchCount != 3 {
		t.Fatalf("HighDemand = %+v", top)
	}

	_, _ = m.Upsert(ctx, sighting("Blush", "rare beauty blush", "sephora.com", "s1", 23))
	n, _ := m.ResolveDemand(ctx)
	if n != 1 {
		t.Fatalf("resolved = %d", n)
	}
	top, _ = m.HighDemand(ctx, 10)
	if len(top) != 1 {
		t.Fatalf("resolved demand still listed: %+v", top)
	}
}

func TestMemoryStatsAndStores(t *testing.T) {
	ctx := context.Background()
	c := newClock()
	m := NewMemory(c.now)
	_, _ = m.Upsert(ctx, sighting("a", "a", "x.com", "1", 1))
	c.advance(48 * time.Hour)
	_, _ = m.Upsert(ctx, sighting("b", "b", "y.com", "2", 1))
	_, _ = m.Upsert(ctx, sighting("c", "c", "y.com", "3", 1))

	if n, _ := m.CountDistinctStores(ctx); n != 2 {
		t.Fatalf("stores = %d", n)
	}
	if n, _ := m.CountRecentlyUpdated(ctx, 24*time.Hour); n != 2 {
		t.Fatalf("recent = %d", n)
	}

	if err := m.TouchStore(ctx, "x.com", 5, c.now()); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("touch unknown = %v", err)
	}
	s, _ := m.UpsertStore(ctx, domain.Store{Domain: "x.com", Name: "X", Platform: "shopify", ScrapeFrequencyHours: 24})
	if !s.IsActive || s.CreatedAt.IsZero() {
		t.Fatalf("store = %+v", s)
	}
	s, _ = m.UpsertStore(ctx, domain.Store{Domain: "x.com", Platform: "custom", ScrapeFrequencyHours: 12})
	if s.Name != "X" || s.Platform != "custom" {
		t.Fatalf("blank name should keep stored value: %+v", s)
	}
	if err := m.TouchStore(ctx, "x.com", 5, c.now()); err != nil {
		t.Fatalf("touch: %v", err)
	}
	list, _ := m.ListStores(ctx)
	if len(list) != 1 || list[0].ProductCount != 5 || list[0].LastScraped == nil {
		t.Fatalf("list = %+v", list)
	}
}

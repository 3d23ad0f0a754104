package repo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"pricehunter/internal/core/terms"
	"pricehunter/internal/modkit/repokit"
	perr "pricehunter/internal/platform/errors"
	ptime "pricehunter/internal/platform/time"
	"pricehunter/internal/services/catalog/domain"
)

// Memory is an in-process Repo. Products keep insertion order so price ties
// resolve the same way as the Postgres id tiebreak.
type Memory struct {
	mu       sync.RWMutex
	now      func() time.Time
	nextID   int64
	products []*domain.Product
	byURL    map[string]*domain.Product
	stores   map[string]*domain.Store
	demand   map[string]*domain.Demand
}

// NewMemory returns an empty catalog. now defaults to time.Now.
func NewMemory(now func() time.Time) *Memory {
	if now == nil {
		now = time.Now
	}
	return &Memory{
		now:    now,
		byURL:  map[string]*domain.Product{},
		stores: map[string]*domain.Store{},
		demand: map[string]*domain.Demand{},
	}
}

// Bind returns m regardless of q so Memory can stand in for a binder
func (m *Memory) Bind(repokit.Queryer) Repo { return m }

func (m *Memory) find(limit int, keep func(*domain.Product) bool) []domain.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []domain.Product{}
	for _, p := range m.products {
		if p.InStock && keep(p) {
			out = append(out, *p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// FindExact implements Repo
func (m *Memory) FindExact(_ context.Context, normalized, excludeStore string, limit int) ([]domain.Product, error) {
	return m.find(limit, func(p *domain.Product) bool {
		return p.NormalizedTitle == normalized && p.StoreDomain != excludeStore
	}), nil
}

// FindPattern implements Repo with the same ordered-substring semantics as LIKE '%a%b%'
func (m *Memory) FindPattern(_ context.Context, pattern, excludeStore string, limit int) ([]domain.Product, error) {
	parts := likeTerms(pattern)
	return m.find(limit, func(p *domain.Product) bool {
		if excludeStore != "" && p.StoreDomain == excludeStore {
			return false
		}
		return terms.Match(p.NormalizedTitle, parts)
	}), nil
}

// likeTerms splits a %-joined pattern back into its literal terms
func likeTerms(pattern string) []string {
	var out []string
	var cur strings.Builder
	esc := false
	for _, r := range pattern {
		switch {
		case esc:
			cur.WriteRune(r)
			esc = false
		case r == '\\':
			esc = true
		case r == '%':
			if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

// Upsert implements Repo
func (m *Memory) Upsert(_ context.Context, s domain.Sighting) (domain.Product, error) {
	if s.Price < 0 {
		return domain.Product{}, perr.Validationf("price must be non-negative")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if p, ok := m.byURL[s.URL]; ok {
		p.Price = s.Price
		p.InStock = s.InStock
		p.UpdatedAt = now
		return *p, nil
	}
	m.nextID++
	p := &domain.Product{
		ID:              m.nextID,
		Title:           s.Title,
		NormalizedTitle: s.NormalizedTitle,
		Price:           s.Price,
		Currency:        s.Currency,
		StoreDomain:     s.StoreDomain,
		StoreName:       s.StoreName,
		URL:             s.URL,
		ImageURL:        s.ImageURL,
		Vendor:          s.Vendor,
		Category:        s.Category,
		InStock:         s.InStock,
		Source:          s.Source,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	m.products = append(m.products, p)
	m.byURL[s.URL] = p
	return *p, nil
}

// IncrementDemand implements Repo
func (m *Memory) IncrementDemand(_ context.Context, normalized string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.demand[normalized]; ok {
		d.SearchCount++
		d.LastSearched = m.now()
		return nil
	}
	m.demand[normalized] = &domain.Demand{NormalizedTitle: normalized, SearchCount: 1, LastSearched: m.now()}
	return nil
}

// HighDemand implements Repo
func (m *Memory) HighDemand(_ context.Context, limit int) ([]domain.Demand, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.Demand{}
	for _, d := range m.demand {
		if !d.HasResults {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SearchCount != out[j].SearchCount {
			return out[i].SearchCount > out[j].SearchCount
		}
		if !out[i].LastSearched.Equal(out[j].LastSearched) {
			return out[i].LastSearched.After(out[j].LastSearched)
		}
		return out[i].NormalizedTitle < out[j].NormalizedTitle
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ResolveDemand implements Repo
func (m *Memory) ResolveDemand(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, d := range m.demand {
		if d.HasResults {
			continue
		}
		for _, p := range m.products {
			if p.InStock && p.NormalizedTitle == d.NormalizedTitle {
				d.HasResults = true
				n++
				break
			}
		}
	}
	return n, nil
}

// CountProducts implements Repo
func (m *Memory) CountProducts(context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.products)), nil
}

// CountDistinctStores implements Repo
func (m *Memory) CountDistinctStores(context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := map[string]struct{}{}
	for _, p := range m.products {
		seen[p.StoreDomain] = struct{}{}
	}
	return int64(len(seen)), nil
}

// CountRecentlyUpdated implements Repo
func (m *Memory) CountRecentlyUpdated(_ context.Context, window time.Duration) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cutoff := m.now().Add(-window)
	var n int64
	for _, p := range m.products {
		if !p.UpdatedAt.Before(cutoff) {
			n++
		}
	}
	return n, nil
}

// UpsertStore implements Repo
func (m *Memory) UpsertStore(_ context.Context, s domain.Store) (domain.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.stores[s.Domain]
	if !ok {
		s.IsActive = true
		s.CreatedAt = m.now()
		m.stores[s.Domain] = &s
		return s, nil
	}
	if s.Name != "" {
		cur.Name = s.Name
	}
	if s.AffiliateNetwork != "" {
		cur.AffiliateNetwork = s.AffiliateNetwork
	}
	if s.AffiliateID != "" {
		cur.AffiliateID = s.AffiliateID
	}
	cur.Platform = s.Platform
	cur.ScrapeFrequencyHours = s.ScrapeFrequencyHours
	cur.IsActive = true
	return *cur, nil
}

// ListStores implements Repo
func (m *Memory) ListStores(context.Context) ([]domain.Store, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Store, 0, len(m.stores))
	for _, s := range m.stores {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Domain < out[j].Domain })
	return out, nil
}

// TouchStore implements Repo
func (m *Memory) TouchStore(_ context.Context, storeDomain string, productCount int, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stores[storeDomain]
	if !ok {
		return perr.NotFoundf("store %s not registered", storeDomain)
	}
	s.ProductCount = productCount
	s.LastScraped = ptime.Ptr(at)
	return nil
}

package service

import (
	"context"
	"slices"
	"strings"

	"pricehunter/internal/core/normalize"
	"pricehunter/internal/core/terms"
	perr "pricehunter/internal/platform/errors"
	"pricehunter/internal/services/catalog/domain"
	"pricehunter/internal/services/catalog/repo"
)

// UpsertBatch implements domain.IngestPort. The batch commits or fails as a whole;
// indexing afterwards is best effort. It returns the number of distinct urls written.
func (s *Svc) UpsertBatch(ctx context.Context, batch []domain.Sighting) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}
	rows := lockOrder(batch)
	saved := make([]domain.Product, 0, len(rows))
	err := s.tx(ctx, func(r repo.Repo) error {
		saved = saved[:0]
		for _, sg := range rows {
			p, err := r.Upsert(ctx, sg)
			if err != nil {
				return err
			}
			saved = append(saved, p)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if s.index != nil {
		if err := s.index.Index(ctx, saved); err != nil {
			s.logc(ctx).Warn().Err(err).Int("products", len(saved)).Msg("search indexing failed")
		}
	}
	return len(saved), nil
}

// lockOrder prepares the batch, keeps the last sighting per url and sorts by url.
// Concurrent batches then lock shared rows in the same order and cannot deadlock.
func lockOrder(batch []domain.Sighting) []domain.Sighting {
	last := make(map[string]int, len(batch))
	rows := make([]domain.Sighting, 0, len(batch))
	for _, sg := range batch {
		sg = prepare(sg)
		if i, ok := last[sg.URL]; ok {
			rows[i] = sg
			continue
		}
		last[sg.URL] = len(rows)
		rows = append(rows, sg)
	}
	slices.SortFunc(rows, func(a, b domain.Sighting) int { return strings.Compare(a.URL, b.URL) })
	return rows
}

// canonicalStore is the store domain form written to and matched against the catalog
func canonicalStore(d string) string { return strings.ToLower(strings.TrimSpace(d)) }

// prepare derives the normalized title and fills defaults
func prepare(sg domain.Sighting) domain.Sighting {
	sg.Title = strings.TrimSpace(sg.Title)
	sg.NormalizedTitle = normalize.Title(sg.Title)
	sg.StoreDomain = canonicalStore(sg.StoreDomain)
	if sg.Currency == "" {
		sg.Currency = "USD"
	}
	if sg.Source == "" {
		sg.Source = domain.SourceScrape
	}
	return sg
}

// ReportProducts implements domain.ServicePort. Incomplete items are skipped.
func (s *Svc) ReportProducts(ctx context.Context, in domain.ReportInput) (domain.ReportOutput, error) {
	out := domain.ReportOutput{Total: len(in.Products)}
	batch := make([]domain.Sighting, 0, len(in.Products))
	for _, it := range in.Products {
		if strings.TrimSpace(it.Title) == "" || it.Price == nil || *it.Price < 0 ||
			strings.TrimSpace(it.StoreDomain) == "" || strings.TrimSpace(it.URL) == "" {
			continue
		}
		inStock := true
		if it.InStock != nil {
			inStock = *it.InStock
		}
		batch = append(batch, domain.Sighting{
			Title:       it.Title,
			Price:       *it.Price,
			StoreDomain: it.StoreDomain,
			StoreName:   it.StoreName,
			URL:         it.URL,
			ImageURL:    it.ImageURL,
			Vendor:      it.Vendor,
			Category:    it.Category,
			InStock:     inStock,
			Source:      domain.SourceUserReport,
		})
	}
	n, err := s.UpsertBatch(ctx, batch)
	if err != nil {
		return domain.ReportOutput{}, err
	}
	out.Saved = n
	return out, nil
}

// Search implements domain.ServicePort: free text over the catalog, cheapest first, no store exclusion
func (s *Svc) Search(ctx context.Context, in domain.SearchQuery) (domain.SearchOutput, error) {
	q := strings.TrimSpace(in.Q)
	if q == "" {
		return domain.SearchOutput{}, perr.WithField(perr.Validationf("q is required"), "q")
	}
	limit := in.Limit
	if limit <= 0 {
		limit = s.searchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}
	out := domain.SearchOutput{Query: q, Results: []domain.Product{}}

	norm := normalize.Title(q)
	ts := terms.Significant(norm, terms.SearchMaxTerms, terms.SearchMinLen)
	if len(ts) == 0 {
		return out, nil
	}

	var rows []domain.Product
	var err error
	if s.searchViaIndex {
		rows, err = s.index.Search(ctx, terms.Query(ts), limit)
		if err != nil {
			return domain.SearchOutput{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "search backend unavailable")
		}
	} else {
		rows, err = s.repo.FindPattern(ctx, terms.Pattern(ts), "", limit)
		if err != nil {
			return domain.SearchOutput{}, err
		}
	}
	out.Results = append(out.Results, rows...)
	out.Count = len(out.Results)
	return out, nil
}

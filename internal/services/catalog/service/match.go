package service

import (
	"context"

	"pricehunter/internal/core/money"
	"pricehunter/internal/core/normalize"
	"pricehunter/internal/core/terms"
	"pricehunter/internal/services/catalog/domain"

	"github.com/google/uuid"
)

// FindAlternatives implements domain.ServicePort.
// Exact normalized-title matches win; the ordered term pattern runs only when there are none.
func (s *Svc) FindAlternatives(ctx context.Context, in domain.FindInput) (domain.FindOutput, error) {
	in.StoreDomain = canonicalStore(in.StoreDomain)
	out := domain.FindOutput{
		Query:        domain.QueryEcho{Title: in.Title, Price: in.Price, Store: in.StoreDomain},
		MatchType:    domain.MatchNone,
		Alternatives: []domain.Alternative{},
	}

	norm := normalize.Title(in.Title)
	if norm == "" {
		return out, nil
	}

	if in.Price != nil && in.URL != "" {
		s.learn(ctx, in)
	}

	rows, mt, err := s.match(ctx, norm, in.StoreDomain)
	if err != nil {
		return domain.FindOutput{}, err
	}

	out.MatchType = mt
	for _, p := range rows {
		out.Alternatives = append(out.Alternatives, domain.Alternative{
			Title:    p.Title,
			Price:    p.Price,
			Store:    p.StoreDomain,
			URL:      p.URL,
			ImageURL: p.ImageURL,
			Savings:  money.Savings(in.Price, p.Price),
		})
	}
	out.AlternativesCount = len(out.Alternatives)
	if out.AlternativesCount > 0 {
		c := out.Alternatives[0]
		out.Cheapest = &c
	} else {
		s.RecordMiss(ctx, in.Title)
	}

	s.emit(ctx, domain.LookupEvent{
		NormalizedTitle: norm,
		StoreDomain:     in.StoreDomain,
		MatchType:       out.MatchType,
		Alternatives:    out.AlternativesCount,
	})
	return out, nil
}

// match runs the two tiers. Rows come back cheapest first and are never re-sorted.
func (s *Svc) match(ctx context.Context, norm, storeDomain string) ([]domain.Product, domain.MatchType, error) {
	exact, err := s.repo.FindExact(ctx, norm, storeDomain, s.resultLimit)
	if err != nil {
		return nil, domain.MatchNone, err
	}
	if len(exact) > 0 {
		return exact, domain.MatchExact, nil
	}

	ts := terms.Significant(norm, terms.MatchMaxTerms, terms.MatchMinLen)
	if len(ts) == 0 {
		return nil, domain.MatchNone, nil
	}
	fuzzy, err := s.repo.FindPattern(ctx, terms.Pattern(ts), storeDomain, s.resultLimit)
	if err != nil {
		return nil, domain.MatchNone, err
	}
	return fuzzy, domain.MatchFuzzy, nil
}

// RecordMiss counts a lookup that found nothing. Failures are logged, never returned.
func (s *Svc) RecordMiss(ctx context.Context, rawTitle string) {
	norm := normalize.Title(rawTitle)
	if norm == "" {
		return
	}
	if err := s.repo.IncrementDemand(ctx, norm); err != nil {
		s.logc(ctx).Warn().Err(err).Str("normalized_title", norm).Msg("demand tracking failed")
	}
}

// learn stores the shopper's own sighting. A failure must not cost them the lookup.
func (s *Svc) learn(ctx context.Context, in domain.FindInput) {
	_, err := s.UpsertBatch(ctx, []domain.Sighting{{
		Title:       in.Title,
		Price:       *in.Price,
		StoreDomain: in.StoreDomain,
		URL:         in.URL,
		ImageURL:    in.ImageURL,
		InStock:     true,
		Source:      domain.SourceUserReport,
	}})
	if err != nil {
		s.logc(ctx).Warn().Err(err).Str("url", in.URL).Msg("learning from lookup failed")
	}
}

// emit reports the lookup within eventTimeout so a slow sink cannot hold the response
func (s *Svc) emit(ctx context.Context, ev domain.LookupEvent) {
	if s.events == nil {
		return
	}
	ev.ID = uuid.New()
	ev.At = s.now()
	ctx, cancel := context.WithTimeout(ctx, s.eventTimeout)
	defer cancel()
	if err := s.events.Lookup(ctx, ev); err != nil {
		s.logc(ctx).Warn().Err(err).Msg("lookup event dropped")
	}
}

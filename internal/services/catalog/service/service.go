// Package service contains catalog workflows: alternative matching, demand tracking and ingestion
package service

import (
	"context"
	"strings"
	"time"

	"pricehunter/internal/modkit/repokit"
	"pricehunter/internal/platform/logger"
	"pricehunter/internal/services/catalog/domain"
	"pricehunter/internal/services/catalog/repo"
)

// Service is the public service port
type Service interface {
	domain.ServicePort
	domain.IngestPort
}

// Policy defaults
const (
	DefaultResultLimit  = 10
	DefaultSearchLimit  = 20
	MaxSearchLimit      = 100
	DefaultDemandLimit  = 100
	MaxDemandLimit      = 500
	DefaultEventTimeout = 250 * time.Millisecond
)

// Options control service behavior
type Options struct {
	ResultLimit  int
	SearchLimit  int
	RecentWindow time.Duration

	// Index is optional; when set, upserted products are pushed to it
	Index domain.SearchIndex
	// SearchViaIndex serves Search from Index instead of the catalog pattern query
	SearchViaIndex bool

	// Events is optional; every lookup is reported to it
	Events domain.EventSink
	// EventTimeout bounds each report to Events
	EventTimeout time.Duration

	Log *logger.Logger
	Now func() time.Time
}

// Svc implements Service
type Svc struct {
	repo repo.Repo
	tx   func(ctx context.Context, fn func(r repo.Repo) error) error

	resultLimit    int
	searchLimit    int
	recentWindow   time.Duration
	index          domain.SearchIndex
	searchViaIndex bool
	events         domain.EventSink
	eventTimeout   time.Duration
	log            *logger.Logger
	now            func() time.Time
}

// New constructs the service over a repo with no transaction support, such as repo.Memory
func New(r repo.Repo, opt Options) *Svc {
	if r == nil {
		panic("catalog.Service requires a non nil Repo")
	}
	s := newSvc(opt)
	s.repo = r
	s.tx = func(_ context.Context, fn func(repo.Repo) error) error { return fn(r) }
	return s
}

// NewPG constructs the service over Postgres; batch upserts run in one transaction
func NewPG(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opt Options) *Svc {
	if db == nil {
		panic("catalog.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("catalog.Service requires a non nil Repo binder")
	}
	s := newSvc(opt)
	s.repo = repokit.MustBind(binder, db)
	s.tx = func(ctx context.Context, fn func(repo.Repo) error) error {
		return db.Tx(ctx, func(q repokit.Queryer) error { return fn(binder.Bind(q)) })
	}
	return s
}

func newSvc(opt Options) *Svc {
	s := &Svc{
		resultLimit:    opt.ResultLimit,
		searchLimit:    opt.SearchLimit,
		recentWindow:   opt.RecentWindow,
		index:          opt.Index,
		searchViaIndex: opt.SearchViaIndex && opt.Index != nil,
		events:         opt.Events,
		eventTimeout:   opt.EventTimeout,
		log:            opt.Log,
		now:            opt.Now,
	}
	if s.resultLimit <= 0 {
		s.resultLimit = DefaultResultLimit
	}
	if s.searchLimit <= 0 || s.searchLimit > MaxSearchLimit {
		s.searchLimit = DefaultSearchLimit
	}
	if s.recentWindow <= 0 {
		s.recentWindow = 24 * time.Hour
	}
	if s.eventTimeout <= 0 {
		s.eventTimeout = DefaultEventTimeout
	}
	if s.log == nil {
		s.log = logger.Named("catalog")
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// logc tags the service logger with the request id on ctx
func (s *Svc) logc(ctx context.Context) *logger.Logger {
	id := logger.RequestID(ctx)
	if id == "" {
		return s.log
	}
	l := s.log.With().Str("request_id", id).Logger()
	return &l
}

// Stats implements domain.ServicePort
func (s *Svc) Stats(ctx context.Context) (domain.Stats, error) {
	var st domain.Stats
	var err error
	if st.TotalProducts, err = s.repo.CountProducts(ctx); err != nil {
		return domain.Stats{}, err
	}
	if st.TotalStores, err = s.repo.CountDistinctStores(ctx); err != nil {
		return domain.Stats{}, err
	}
	if st.UpdatedRecently, err = s.repo.CountRecentlyUpdated(ctx, s.recentWindow); err != nil {
		return domain.Stats{}, err
	}
	return st, nil
}

// RegisterStore implements domain.ServicePort and domain.IngestPort
func (s *Svc) RegisterStore(ctx context.Context, in domain.StoreInput) (domain.Store, error) {
	st := domain.Store{
		Domain:               strings.ToLower(strings.TrimSpace(in.Domain)),
		Name:                 strings.TrimSpace(in.Name),
		Platform:             in.Platform,
		ScrapeFrequencyHours: in.ScrapeFrequencyHours,
		AffiliateNetwork:     in.AffiliateNetwork,
		AffiliateID:          in.AffiliateID,
	}
	if st.Platform == "" {
		st.Platform = "shopify"
	}
	if st.ScrapeFrequencyHours <= 0 {
		st.ScrapeFrequencyHours = 24
	}
	return s.repo.UpsertStore(ctx, st)
}

// ListStores implements domain.ServicePort
func (s *Svc) ListStores(ctx context.Context) ([]domain.Store, error) { return s.repo.ListStores(ctx) }

// TouchStore implements domain.IngestPort
func (s *Svc) TouchStore(ctx context.Context, storeDomain string, productCount int, at time.Time) error {
	return s.repo.TouchStore(ctx, storeDomain, productCount, at)
}

// HighDemand implements domain.ServicePort
func (s *Svc) HighDemand(ctx context.Context, limit int) ([]domain.Demand, error) {
	if limit <= 0 {
		limit = DefaultDemandLimit
	}
	if limit > MaxDemandLimit {
		limit = MaxDemandLimit
	}
	return s.repo.HighDemand(ctx, limit)
}

// ResolveDemand implements domain.IngestPort
func (s *Svc) ResolveDemand(ctx context.Context) (int64, error) { return s.repo.ResolveDemand(ctx) }

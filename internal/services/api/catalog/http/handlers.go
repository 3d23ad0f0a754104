// Package http provides http transport for the catalog
package http

import (
	stdhttp "net/http"
	"strconv"

	"pricehunter/internal/modkit/httpkit"
	perr "pricehunter/internal/platform/errors"
	"pricehunter/internal/platform/net/http/bind"
	"pricehunter/internal/platform/net/middleware"
	"pricehunter/internal/services/catalog/domain"
)

// Register mounts the public routes and, behind admin auth, the admin routes
func Register(r httpkit.Router, s domain.ServicePort, admin middleware.TokenPort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.FindInput](r, "/find-alternatives", h.findAlternatives)
	httpkit.PostJSON[domain.ReportInput](r, "/report-products", h.reportProducts)
	httpkit.Get(r, "/search", h.search)
	httpkit.Get(r, "/stats", h.stats)

	httpkit.Admin(r, admin, func(ar httpkit.Router) {
		ar.Route("/admin", func(ad httpkit.Router) {
			httpkit.PutJSON[domain.StoreInput](ad, "/stores", h.registerStore)
			httpkit.Get(ad, "/stores", h.listStores)
			httpkit.Get(ad, "/demand", h.demand)
		})
	})
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /find-alternatives Catalog findAlternatives
// @Summary Find the same product at other stores
// @Description Exact normalized-title matches first, ordered term matches only when there are none.
// @Tags catalog
// @Accept json
// @Produce json
// @Param payload body domain.FindInput true "Product being viewed"
// @Success 200 {object} domain.FindOutput "ok"
// @Failure 400 {object} httpkit.Envelope "validation error"
// @Failure 500 {object} httpkit.Envelope "internal error"
// @Router /find-alternatives [post]
func (h *handlers) findAlternatives(r *stdhttp.Request, in domain.FindInput) (any, error) {
	return h.svc.FindAlternatives(r.Context(), in)
}

// swagger:route POST /report-products Catalog reportProducts
// @Summary Report product sightings in bulk
// @Tags catalog
// @Accept json
// @Produce json
// @Param payload body domain.ReportInput true "Sightings"
// @Success 200 {object} domain.ReportOutput "ok"
// @Failure 400 {object} httpkit.Envelope "validation error"
// @Router /report-products [post]
func (h *handlers) reportProducts(r *stdhttp.Request, in domain.ReportInput) (any, error) {
	return h.svc.ReportProducts(r.Context(), in)
}

// swagger:route GET /search Catalog search
// @Summary Free text product search
// @Tags catalog
// @Produce json
// @Param q query string true "Search text"
// @Param limit query int false "Max results (1-100)"
// @Success 200 {object} domain.SearchOutput "ok"
// @Failure 400 {object} httpkit.Envelope "validation error"
// @Router /search [get]
func (h *handlers) search(r *stdhttp.Request) (any, error) {
	q := domain.SearchQuery{Q: r.URL.Query().Get("q")}
	limit, err := intParam(r, "limit")
	if err != nil {
		return nil, err
	}
	q.Limit = limit
	if err := bind.Validate(q); err != nil {
		return nil, err
	}
	return h.svc.Search(r.Context(), q)
}

// swagger:route GET /stats Catalog stats
// @Summary Catalog counters
// @Tags catalog
// @Produce json
// @Success 200 {object} domain.Stats "ok"
// @Router /stats [get]
func (h *handlers) stats(r *stdhttp.Request) (any, error) {
	return h.svc.Stats(r.Context())
}

// swagger:route PUT /admin/stores Admin registerStore
// @Summary Register or update a store
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.StoreInput true "Store"
// @Success 200 {object} domain.Store "ok"
// @Failure 401 {object} httpkit.Envelope "unauthorized"
// @Router /admin/stores [put]
func (h *handlers) registerStore(r *stdhttp.Request, in domain.StoreInput) (any, error) {
	return h.svc.RegisterStore(r.Context(), in)
}

// swagger:route GET /admin/stores Admin listStores
// @Summary List stores
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Store "ok"
// @Router /admin/stores [get]
func (h *handlers) listStores(r *stdhttp.Request) (any, error) {
	return h.svc.ListStores(r.Context())
}

// swagger:route GET /admin/demand Admin demand
// @Summary Most requested titles the catalog cannot answer
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max rows (default 100, max 500)"
// @Success 200 {array} domain.Demand "ok"
// @Router /admin/demand [get]
func (h *handlers) demand(r *stdhttp.Request) (any, error) {
	limit, err := intParam(r, "limit")
	if err != nil {
		return nil, err
	}
	return h.svc.HighDemand(r.Context(), limit)
}

// intParam reads an optional non-negative integer query parameter
func intParam(r *stdhttp.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, perr.WithField(perr.Validationf("%s must be a non-negative integer", name), name)
	}
	return v, nil
}

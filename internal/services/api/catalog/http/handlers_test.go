package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	phttp "pricehunter/internal/platform/net/http"
	"pricehunter/internal/platform/net/middleware"
	kit "pricehunter/internal/platform/testkit"
	"pricehunter/internal/services/catalog/domain"
	"pricehunter/internal/services/catalog/repo"
	"pricehunter/internal/services/catalog/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

func newRouter(t *testing.T) stdhttp.Handler {
	t.Helper()
	log := zerolog.Nop()
	svc := service.New(repo.NewMemory(nil), service.Options{Log: &log})
	_, err := svc.UpsertBatch(context.Background(), []domain.Sighting{
		{Title: "CeraVe Moisturizing Cream 16oz", Price: 18.99, StoreDomain: "target.com", URL: "https://target.com/c", InStock: true},
		{Title: "CeraVe Moisturizing Cream 16oz", Price: 16.99, StoreDomain: "amazon.com", URL: "https://amazon.com/c", InStock: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	m := chi.NewRouter()
	Register(phttp.AdaptChi(m), svc, middleware.StaticToken("s3cret"))
	return m
}

func do(h stdhttp.Handler, method, path, body string, hdr ...string) *httptest.ResponseRecorder {
	var req *stdhttp.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestFindAlternativesEndpoint(t *testing.T) {
	h := newRouter(t)
	rr := do(h, stdhttp.MethodPost, "/find-alternatives",
		`{"title":"CeraVe Moisturizing Cream 16oz","price":18.99,"store_domain":"target.com"}`)
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("code = %d body=%s", rr.Code, rr.Body.String())
	}
	out := kit.DecodeData[domain.FindOutput](t, rr.Body)
	if out.MatchType != domain.MatchExact || out.AlternativesCount != 1 || *out.Alternatives[0].Savings != "2.00" {
		t.Fatalf("out = %+v", out)
	}
	if out.Cheapest == nil || out.Cheapest.Store != "amazon.com" {
		t.Fatalf("cheapest = %+v", out.Cheapest)
	}
}

func TestFindAlternativesNullsWithoutPrice(t *testing.T) {
	h := newRouter(t)
	rr := do(h, stdhttp.MethodPost, "/find-alternatives", `{"title":"Unknown Gadget","store_domain":"target.com"}`)
	var env struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatal(err)
	}
	if string(env.Data["cheapest"]) != "null" || string(env.Data["alternatives"]) != "[]" {
		t.Fatalf("data = %s / %s", env.Data["cheapest"], env.Data["alternatives"])
	}
}

func TestFindAlternativesValidation(t *testing.T) {
	h := newRouter(t)
	cases := []struct {
		name, body, field string
	}{
		{"missing title", `{"store_domain":"target.com"}`, "title"},
		{"bad domain", `{"title":"x","store_domain":"Not A Domain"}`, "store_domain"},
		{"negative price", `{"title":"x","price":-1,"store_domain":"target.com"}`, "price"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rr := do(h, stdhttp.MethodPost, "/find-alternatives", c.body)
			if rr.Code != stdhttp.StatusBadRequest {
				t.Fatalf("code = %d body=%s", rr.Code, rr.Body.String())
			}
			kit.MustContain(t, rr.Body.String(), `"field":"`+c.field+`"`)
		})
	}
	rr := do(h, stdhttp.MethodPost, "/find-alternatives", `{"title":"x","store_domain":"a.com","extra":1}`)
	if rr.Code != stdhttp.StatusBadRequest {
		t.Fatalf("unknown field accepted: %d", rr.Code)
	}
}

func TestReportProductsEndpoint(t *testing.T) {
	h := newRouter(t)
	rr := do(h, stdhttp.MethodPost, "/report-products",
		`{"products":[{"title":"Lip Oil","price":9,"store_domain":"a.com","url":"https://a.com/l"},{"title":"broken"}]}`)
	out := kit.DecodeData[domain.ReportOutput](t, rr.Body)
	if out.Saved != 1 || out.Total != 2 {
		t.Fatalf("out = %+v", out)
	}
	if rr := do(h, stdhttp.MethodPost, "/report-products", `{}`); rr.Code != stdhttp.StatusBadRequest {
		t.Fatalf("missing products = %d", rr.Code)
	}
}

func TestSearchAndStatsEndpoints(t *testing.T) {
	h := newRouter(t)
	rr := do(h, stdhttp.MethodGet, "/search?q=cerave+cream&limit=1", "")
	out := kit.DecodeData[domain.SearchOutput](t, rr.Body)
	if out.Count != 1 || out.Results[0].StoreDomain != "amazon.com" {
		t.Fatalf("search = %+v", out)
	}
	if rr := do(h, stdhttp.MethodGet, "/search", ""); rr.Code != stdhttp.StatusBadRequest {
		t.Fatalf("missing q = %d", rr.Code)
	}
	if rr := do(h, stdhttp.MethodGet, "/search?q=x&limit=abc", ""); rr.Code != stdhttp.StatusBadRequest {
		t.Fatalf("bad limit = %d", rr.Code)
	}
	if rr := do(h, stdhttp.MethodGet, "/search?q=x&limit=101", ""); rr.Code != stdhttp.StatusBadRequest {
		t.Fatalf("limit over max = %d", rr.Code)
	}

	st := kit.DecodeData[domain.Stats](t, do(h, stdhttp.MethodGet, "/stats", "").Body)
	if st.TotalProducts != 2 || st.TotalStores != 2 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestAdminRoutes(t *testing.T) {
	h := newRouter(t)
	if rr := do(h, stdhttp.MethodGet, "/admin/stores", ""); rr.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("no token = %d", rr.Code)
	}
	auth := []string{"Authorization", "Bearer s3cret"}
	rr := do(h, stdhttp.MethodPut, "/admin/stores", `{"domain":"colourpop.com","name":"ColourPop"}`, auth...)
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("put = %d %s", rr.Code, rr.Body.String())
	}
	stores := kit.DecodeData[[]domain.Store](t, do(h, stdhttp.MethodGet, "/admin/stores", "", auth...).Body)
	if len(stores) != 1 || stores[0].Platform != "shopify" {
		t.Fatalf("stores = %+v", stores)
	}

	_ = do(h, stdhttp.MethodPost, "/find-alternatives", `{"title":"Glossier Boy Brow","store_domain":"glossier.com"}`)
	demand := kit.DecodeData[[]domain.Demand](t, do(h, stdhttp.MethodGet, "/admin/demand?limit=5", "", auth...).Body)
	if len(demand) != 1 || demand[0].NormalizedTitle != "glossier boy brow" {
		t.Fatalf("demand = %+v", demand)
	}
}

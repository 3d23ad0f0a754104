package modkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "pricehunter/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestBuildDefaults(t *testing.T) {
	b := Build(WithName("catalog"), WithPrefix("/catalog"))
	if b.Name != "catalog" || b.Prefix != "/catalog" || b.Ports != nil {
		t.Fatalf("built = %+v", b)
	}
	b.Register(nil)
}

func TestBuildMountAppliesMiddleware(t *testing.T) {
	tagged := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Module", "stores")
			next.ServeHTTP(w, r)
		})
	}
	b := Build(
		WithPrefix("/stores"),
		WithMiddlewares(tagged),
		WithPorts(42),
		WithRegister(func(r phttp.Router) {
			r.Get("/", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })
		}),
	)
	if b.Ports.(int) != 42 {
		t.Fatalf("ports = %v", b.Ports)
	}

	m := chi.NewRouter()
	b.Mount(phttp.AdaptChi(m))
	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/stores/", nil))
	if rr.Code != http.StatusAccepted || rr.Header().Get("X-Module") != "stores" {
		t.Fatalf("code=%d header=%q", rr.Code, rr.Header().Get("X-Module"))
	}
}

func TestBuildMountWithoutPrefixGroups(t *testing.T) {
	b := Build(WithRegister(func(r phttp.Router) {
		r.Get("/stats", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
	}))
	m := chi.NewRouter()
	b.Mount(phttp.AdaptChi(m))
	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/stats", nil))
	if rr.Code != http.StatusTeapot {
		t.Fatalf("code = %d", rr.Code)
	}
}

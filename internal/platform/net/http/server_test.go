package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pricehunter/internal/platform/config"

	"github.com/go-chi/chi/v5"
)

func jsonBody(s string) *strings.Reader { return strings.NewReader(s) }

func TestNewServerAddrAndOpts(t *testing.T) {
	t.Setenv("API_PORT", ":5055")
	called := false
	s := NewServer(config.New(), func(*chi.Mux) { called = true })
	if s.Addr() != ":5055" || !called {
		t.Fatalf("addr=%q opts called=%v", s.Addr(), called)
	}

	s.Router().Get("/ping", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { w.WriteHeader(204) })
	rr := httptest.NewRecorder()
	s.Router().Mux().ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, "/ping", nil))
	if rr.Code != 204 {
		t.Fatalf("ping = %d", rr.Code)
	}
}

func TestMountProfiler(t *testing.T) {
	m := chi.NewRouter()
	MountProfiler(AdaptChi(m), "/debug", true)
	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, "/debug/pprof/", nil))
	if rr.Code != 200 {
		t.Fatalf("pprof index = %d", rr.Code)
	}
}

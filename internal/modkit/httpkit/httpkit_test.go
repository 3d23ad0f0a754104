package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "pricehunter/internal/platform/net/http"
	"pricehunter/internal/platform/net/middleware"

	"github.com/go-chi/chi/v5"
)

func TestMountAPIV1WithAdminGroup(t *testing.T) {
	m := chi.NewRouter()
	MountAPIV1(phttp.AdaptChi(m), CommonStack(StackOptions{}), func(api Router) {
		Get(api, "/stats", func(*http.Request) (any, error) { return map[string]int{"total_products": 0}, nil })
		Admin(api, middleware.StaticToken("tok"), func(ar Router) {
			Get(ar, "/admin/demand", func(*http.Request) (any, error) { return []string{}, nil })
		})
	})

	cases := []struct {
		path, auth string
		want       int
	}{
		{"/api/v1/stats", "", http.StatusOK},
		{"/api/v1/admin/demand", "", http.StatusUnauthorized},
		{"/api/v1/admin/demand", "Bearer tok", http.StatusOK},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, tc.path, nil)
		if tc.auth != "" {
			r.Header.Set("Authorization", tc.auth)
		}
		rr := httptest.NewRecorder()
		m.ServeHTTP(rr, r)
		if rr.Code != tc.want {
			t.Fatalf("%s auth=%q: code %d, want %d", tc.path, tc.auth, rr.Code, tc.want)
		}
	}
}

func TestCommonStackThrottleOptional(t *testing.T) {
	base := len(CommonStack(StackOptions{}))
	if got := len(CommonStack(StackOptions{MaxInFlight: 64})); got != base+1 {
		t.Fatalf("stack len = %d, want %d", got, base+1)
	}
}

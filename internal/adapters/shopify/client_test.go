package shopify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	perr "pricehunter/internal/platform/errors"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *[]time.Duration) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewClient(Options{
		BaseURL: func(string) string { return srv.URL },
		RPS:     1000,
	})
	var slept []time.Duration
	c.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return c, &slept
}

func TestProductsPageDecodes(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products.json" || r.URL.Query().Get("limit") != "250" || r.URL.Query().Get("page") != "2" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
		if r.Header.Get("User-Agent") == "" {
			t.Errorf("missing user agent")
		}
		fmt.Fprint(w, `{"products":[{"title":"Lip Oil","handle":"lip-oil","vendor":"Glossier","product_type":"Lips",
			"variants":[{"price":"16.00","available":true}],"images":[{"src":"https://cdn/x.jpg"}]}]}`)
	})
	got, err := c.ProductsPage(context.Background(), "glossier.com", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Handle != "lip-oil" || got[0].Variants[0].Price != "16.00" || !*got[0].Variants[0].Available {
		t.Fatalf("got %+v", got)
	}
}

func TestRateLimitedRetriesAfterWait(t *testing.T) {
	var calls atomic.Int32
	c, slept := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"products":[]}`)
	})
	got, err := c.ProductsPage(context.Background(), "a.com", 1)
	if err != nil || len(got) != 0 {
		t.Fatalf("got %v err %v", got, err)
	}
	if calls.Load() != 2 || len(*slept) != 1 || (*slept)[0] != 5*time.Second {
		t.Fatalf("calls=%d slept=%v", calls.Load(), *slept)
	}
}

func TestRetryAfterHeaderHonoured(t *testing.T) {
	var calls atomic.Int32
	c, slept := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"products":[]}`)
	})
	if _, err := c.ProductsPage(context.Background(), "a.com", 1); err != nil {
		t.Fatal(err)
	}
	if (*slept)[0] != 2*time.Second {
		t.Fatalf("slept %v", *slept)
	}
}

func TestRetriesAreBounded(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	})
	_, err := c.ProductsPage(context.Background(), "a.com", 1)
	if perr.CodeOf(err) != perr.ErrorCodeTooManyRequests {
		t.Fatalf("err = %v", err)
	}
	if int(calls.Load()) != defaultMaxRetry+1 {
		t.Fatalf("calls = %d", calls.Load())
	}
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		code   perr.ErrorCode
	}{
		{"not shopify", http.StatusNotFound, perr.ErrorCodeNotFound},
		{"forbidden", http.StatusForbidden, perr.ErrorCodeUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(tc.status) })
			_, err := c.ProductsPage(context.Background(), "a.com", 1)
			if perr.CodeOf(err) != tc.code {
				t.Fatalf("err = %v code %v", err, perr.CodeOf(err))
			}
		})
	}

	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
	_, err := c.ProductsPage(context.Background(), "a.com", 1)
	var se *StatusError
	if !errors.As(err, &se) || se.HTTPStatus() != http.StatusTeapot {
		t.Fatalf("err = %v", err)
	}
}

func TestBadJSON(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) { fmt.Fprint(w, `{"products":`) })
	_, err := c.ProductsPage(context.Background(), "a.com", 1)
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("err = %v", err)
	}
}

func TestBackoffCaps(t *testing.T) {
	c := NewClient(Options{RetryBase: time.Second})
	if c.backoff(0) != time.Second || c.backoff(2) != 4*time.Second || c.backoff(10) != 30*time.Second {
		t.Fatalf("backoff %v %v %v", c.backoff(0), c.backoff(2), c.backoff(10))
	}
}

func TestURL(t *testing.T) {
	if got := URL("colourpop.com", "lippie-stix"); got != "https://colourpop.com/products/lippie-stix" {
		t.Fatalf("url = %s", got)
	}
}

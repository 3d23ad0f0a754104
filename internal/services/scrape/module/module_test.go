package module

import (
	"testing"
	"time"

	"pricehunter/internal/modkit"
	"pricehunter/internal/platform/config"
	"pricehunter/internal/services/catalog/repo"
	catsvc "pricehunter/internal/services/catalog/service"
)

func TestFromConfig(t *testing.T) {
	t.Setenv("CORE_SCRAPE_CONCURRENCY", "8")
	t.Setenv("CORE_SCRAPE_PAGE_DELAY", "1s")
	o := FromConfig(config.New())
	if o.Concurrency != 8 || o.PageDelay != time.Second || o.MaxPages != 10 || o.Timeout != 20*time.Second {
		t.Fatalf("opts = %+v", o)
	}
}

func TestNewExposesRunner(t *testing.T) {
	cat := catsvc.New(repo.NewMemory(nil), catsvc.Options{})
	m := New(modkit.Deps{Cfg: config.New()}, cat, Options{MaxPages: 2})
	if m.Name() != "scrape" || m.Scraper().Runner == nil {
		t.Fatalf("module = %+v", m)
	}
	if _, ok := m.Ports().(Ports); !ok {
		t.Fatalf("ports = %T", m.Ports())
	}
	var _ modkit.Module = m
}

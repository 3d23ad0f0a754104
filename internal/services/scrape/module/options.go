package module

import (
	"time"

	"pricehunter/internal/platform/config"
)

// Options controls the scraper
type Options struct {
	Concurrency int
	MaxPages    int
	PageDelay   time.Duration
	Timeout     time.Duration
	RatePerSec  int
	MaxRetries  int
	UserAgent   string
}

// FromConfig reads CORE_SCRAPE_*
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_SCRAPE_")
	return Options{
		Concurrency: c.MayInt("CONCURRENCY", 4),
		MaxPages:    c.MayInt("MAX_PAGES", 10),
		PageDelay:   c.MayDuration("PAGE_DELAY", 500*time.Millisecond),
		Timeout:     c.MayDuration("TIMEOUT", 20*time.Second),
		RatePerSec:  c.MayInt("RPS", 2),
		MaxRetries:  c.MayInt("MAX_RETRIES", 3),
		UserAgent:   c.MayString("USER_AGENT", ""),
	}
}

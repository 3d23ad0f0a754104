package module

import (
	"time"

	"pricehunter/internal/platform/config"
)

// Catalog backends
const (
	BackendPG     = "pg"
	BackendMemory = "memory"
)

// Search engines for free-text search
const (
	EnginePattern = "pattern"
	EngineMeili   = "meili"
)

// Options holds configuration settings for the catalog module
type Options struct {
	Backend      string
	ResultLimit  int
	SearchLimit  int
	RecentWindow time.Duration
	SearchEngine string
	MeiliIndex   string
}

// FromConfig reads CORE_CATALOG_* and SERVICE_MEILI_INDEX
func FromConfig(cfg config.Conf) Options {
	cc := cfg.Prefix("CORE_CATALOG_")
	return Options{
		Backend:      cc.MayEnum("BACKEND", BackendPG, BackendPG, BackendMemory),
		ResultLimit:  cc.MayInt("RESULT_LIMIT", 10),
		SearchLimit:  cc.MayInt("SEARCH_LIMIT", 20),
		RecentWindow: cc.MayDuration("RECENT_WINDOW", 24*time.Hour),
		SearchEngine: cc.MayEnum("SEARCH_ENGINE", EnginePattern, EnginePattern, EngineMeili),
		MeiliIndex:   cfg.Prefix("SERVICE_MEILI_").MayString("INDEX", "products"),
	}
}

package store

import (
	"pricehunter/internal/platform/config"
)

// Config aggregates per-backend settings
type Config struct {
	PG    PGConfig
	CH    CHConfig
	Meili MeiliConfig
}

// PGConfig configures the Postgres pool
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int
}

// CHConfig configures ClickHouse
type CHConfig struct {
	Enabled    bool
	DSN        string
	ClientName string // role reported in system.query_log
	ClientTag  string
}

// MeiliConfig configures Meilisearch
type MeiliConfig struct {
	Enabled bool
	URL     string
	APIKey  string
}

// FromConfig reads SERVICE_PGSQL_*, SERVICE_CLICKHOUSE_* and SERVICE_MEILI_*.
// A backend is enabled when its URL or DSN is set.
func FromConfig(cfg config.Conf, role string) Config {
	pg := cfg.Prefix("SERVICE_PGSQL_")
	chc := cfg.Prefix("SERVICE_CLICKHOUSE_")
	mc := cfg.Prefix("SERVICE_MEILI_")

	out := Config{
		PG: PGConfig{
			URL:         pg.MayString("URL", ""),
			MaxConns:    int32(pg.MayInt("MAX_CONNS", 10)),
			LogSQL:      pg.MayBool("LOG_SQL", false),
			SlowQueryMs: pg.MayInt("SLOW_MS", 200),
		},
		CH: CHConfig{
			DSN:        chc.MayString("DSN", ""),
			ClientName: role,
			ClientTag:  chc.MayString("CLIENT_TAG", "dev"),
		},
		Meili: MeiliConfig{
			URL:    mc.MayString("URL", ""),
			APIKey: mc.MayString("KEY", ""),
		},
	}
	out.PG.Enabled = out.PG.URL != ""
	out.CH.Enabled = out.CH.DSN != ""
	out.Meili.Enabled = out.Meili.URL != ""
	return out
}

package modkit

import (
	"pricehunter/internal/modkit/repokit"
	"pricehunter/internal/platform/config"
	"pricehunter/internal/platform/logger"
	"pricehunter/internal/platform/store"
)

// Deps are the shared dependencies handed to every module. Any store may be nil.
type Deps struct {
	Log   logger.Logger
	Cfg   config.Conf
	PG    repokit.TxRunner
	CH    store.Clickhouse
	Meili store.Search
}

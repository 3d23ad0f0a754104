package store

import (
	"context"
	"fmt"
	"time"

	"pricehunter/internal/platform/logger"
	chx "pricehunter/internal/platform/store/ch"
	"pricehunter/internal/platform/store/pg"
)

// ping retry schedule while Postgres starts alongside us
const (
	pgPingAttempts = 20
	pgPingTimeout  = 3 * time.Second
	pgBackoffStart = 150 * time.Millisecond
	pgBackoffMax   = 2 * time.Second
)

var sleep = time.Sleep

func openPG(ctx context.Context, cfg PGConfig, log logger.Logger) (*pgAdapter, error) {
	var tracer pg.QueryTracer
	if cfg.LogSQL {
		tracer = pg.Tracer(log)
	}
	p, err := pg.Open(ctx, pg.Config{URL: cfg.URL, MaxConns: cfg.MaxConns, SlowMs: cfg.SlowQueryMs}, tracer, nil)
	if err != nil {
		return nil, err
	}

	var lastErr error
	backoff := pgBackoffStart
	for i := 0; i < pgPingAttempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, pgPingTimeout)
		lastErr = p.Pool.Ping(pctx)
		cancel()
		if lastErr == nil {
			return newPGAdapter(p), nil
		}
		if ctx.Err() != nil {
			p.Close()
			return nil, ctx.Err()
		}
		log.Debug().Err(lastErr).Int("attempt", i+1).Msg("postgres not ready")
		sleep(backoff)
		backoff = min(backoff*2, pgBackoffMax)
	}
	p.Close()
	return nil, fmt.Errorf("ping failed after %d attempts: %w", pgPingAttempts, lastErr)
}

func openCH(ctx context.Context, cfg CHConfig) (Clickhouse, error) {
	return chx.Open(ctx, chx.Config{DSN: cfg.DSN, ClientName: cfg.ClientName, ClientTag: cfg.ClientTag})
}

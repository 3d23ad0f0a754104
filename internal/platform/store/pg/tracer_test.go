package pg

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"pricehunter/internal/platform/logger"
	kit "pricehunter/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestCompact(t *testing.T) {
	in := "SELECT id\n\t FROM products\n  WHERE url = $1"
	if got := compact(in); got != "SELECT id FROM products WHERE url = $1" {
		t.Fatalf("compact = %q", got)
	}
}

func TestTracerLevels(t *testing.T) {
	var buf bytes.Buffer
	tr := Tracer(zerolog.New(&buf).Level(zerolog.ErrorLevel))
	ctx := logger.WithRequest(context.Background(), "rid-9")

	tr.OnQuery(ctx, QueryEvent{SQL: "SELECT 1", Elapsed: time.Millisecond})
	tr.OnQuery(ctx, QueryEvent{SQL: "SELECT pg_sleep(1)", Elapsed: time.Second, Slow: true})
	tr.OnQuery(ctx, QueryEvent{SQL: "SELECT nope", Err: errors.New("column does not exist")})

	out := buf.String()
	kit.MustContain(t, out, `"level":"debug"`)
	kit.MustContain(t, out, `"level":"warn"`)
	kit.MustContain(t, out, `"level":"error"`)
	kit.MustContain(t, out, `"request_id":"rid-9"`)
}

package repokit

import (
	"context"
	"fmt"
	"time"
)

// Pinger is anything with a health ping
type Pinger interface {
	Ping(context.Context) error
}

// MustPing panics unless p answers within 5s (or ctx's own deadline)
func MustPing(ctx context.Context, name string, p Pinger) {
	if p == nil {
		panic(fmt.Sprintf("%s: nil dependency", name))
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	if err := p.Ping(ctx); err != nil {
		panic(fmt.Sprintf("%s ping failed: %v", name, err))
	}
}

package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "pricehunter/internal/platform/net/http"
	"pricehunter/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORSOrigins []string
	Timeout     time.Duration
	SlowRequest time.Duration
	// MaxInFlight caps concurrent requests; 0 disables the cap
	MaxInFlight int
}

// CommonStack is the middleware every API route runs behind
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	stack := []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RequestLogger,
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.SlowRequest}),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
	if o.MaxInFlight > 0 {
		stack = append(stack, middleware.Throttle(o.MaxInFlight))
	}
	return stack
}

// Admin wraps routes in bearer token auth, writing failures as envelopes
func Admin(r Router, p middleware.TokenPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(middleware.Auth(p, phttp.RespondError))
		fn(gr)
	})
}

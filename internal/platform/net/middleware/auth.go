package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perr "pricehunter/internal/platform/errors"
	pnet "pricehunter/internal/platform/net"
)

func pnetRequestID(r *http.Request) string { return pnet.RequestID(r.Context()) }

// TokenPort authenticates a request
type TokenPort interface {
	Check(r *http.Request) error
}

// StaticToken accepts "Authorization: Bearer <token>" matching a fixed token.
// An empty token rejects every request.
type StaticToken string

// Check implements TokenPort
func (s StaticToken) Check(r *http.Request) error {
	if s == "" {
		return perr.New(perr.ErrorCodeForbidden, "admin api disabled")
	}
	got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || subtle.ConstantTimeCompare([]byte(strings.TrimSpace(got)), []byte(s)) != 1 {
		return perr.Unauthorizedf("invalid bearer token")
	}
	return nil
}

// Auth rejects requests the port refuses, writing the error with write
func Auth(p TokenPort, write func(http.ResponseWriter, *http.Request, error)) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := p.Check(r); err != nil {
				write(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

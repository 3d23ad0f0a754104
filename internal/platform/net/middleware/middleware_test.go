package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "pricehunter/internal/platform/errors"
	kit "pricehunter/internal/platform/testkit"
)

func TestStaticToken(t *testing.T) {
	cases := []struct {
		name   string
		token  StaticToken
		header string
		code   perr.ErrorCode
		ok     bool
	}{
		{name: "match", token: "s3cret", header: "Bearer s3cret", ok: true},
		{name: "wrong", token: "s3cret", header: "Bearer nope", code: perr.ErrorCodeUnauthorized},
		{name: "no scheme", token: "s3cret", header: "s3cret", code: perr.ErrorCodeUnauthorized},
		{name: "disabled", token: "", header: "Bearer ", code: perr.ErrorCodeForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Authorization", tc.header)
			err := tc.token.Check(r)
			if tc.ok != (err == nil) {
				t.Fatalf("err = %v", err)
			}
			if !tc.ok && !perr.IsCode(err, tc.code) {
				t.Fatalf("code = %d", perr.CodeOf(err))
			}
		})
	}
}

func TestAuthBlocks(t *testing.T) {
	var wrote error
	h := Auth(StaticToken("x"), func(w http.ResponseWriter, _ *http.Request, err error) {
		wrote = err
		w.WriteHeader(http.StatusUnauthorized)
	})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("next must not run")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusUnauthorized || wrote == nil {
		t.Fatalf("code = %d err = %v", rr.Code, wrote)
	}
}

func TestRecoverJSON(t *testing.T) {
	h := RequestID()(RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(errors.New("boom"))
	})))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d", rr.Code)
	}
	kit.MustContain(t, rr.Body.String(), `"error":"internal error"`)
}

func TestCaptureWriter(t *testing.T) {
	rr := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rr, status: http.StatusOK}
	cw.WriteHeader(http.StatusTeapot)
	_, _ = cw.Write(bytes.Repeat([]byte("a"), 5))
	if cw.status != http.StatusTeapot || cw.bytes != 5 {
		t.Fatalf("captured %d/%d", cw.status, cw.bytes)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := CORS(CORSOptions{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	r := httptest.NewRequest(http.MethodOptions, "/api/v1/find-alternatives", nil)
	r.Header.Set("Origin", "https://www.target.com")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow origin = %q", got)
	}
}

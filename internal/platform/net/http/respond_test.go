package http

import (
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	perr "pricehunter/internal/platform/errors"
	"pricehunter/internal/platform/net"

	"github.com/go-chi/chi/v5"
)

func decode(t *testing.T, rr *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v body=%s", err, rr.Body.String())
	}
	return env
}

func TestHandleSuccessAndError(t *testing.T) {
	r := httptest.NewRequest(stdhttp.MethodGet, "/", nil)
	r = r.WithContext(net.WithRequestID(r.Context(), "rid-1"))

	rr := httptest.NewRecorder()
	Handle(func(*stdhttp.Request) Response { return Created(map[string]int{"saved": 1}) })(rr, r)
	env := decode(t, rr)
	if rr.Code != stdhttp.StatusCreated || env.RequestID != "rid-1" || env.Error != "" {
		t.Fatalf("created = %d %+v", rr.Code, env)
	}

	rr = httptest.NewRecorder()
	Handle(func(*stdhttp.Request) Response {
		return Error(perr.Wrap(errors.New("pq: relation missing"), perr.ErrorCodeDB, "find exact"))
	})(rr, r)
	env = decode(t, rr)
	if rr.Code != stdhttp.StatusInternalServerError || env.Error != "internal error" || env.Code != perr.ErrorCodeDB {
		t.Fatalf("db error = %d %+v", rr.Code, env)
	}
}

type echoIn struct {
	Q string `json:"q" validate:"required"`
}

func TestSugarMounts(t *testing.T) {
	m := chi.NewRouter()
	rt := AdaptChi(m)
	rt.Route("/api", func(r Router) {
		PostJSON(r, "/echo", func(_ *stdhttp.Request, in echoIn) (any, error) { return in.Q, nil })
		GetJSON(r, "/fail", func(*stdhttp.Request) (any, error) { return nil, perr.NotFoundf("no such store") })
	})

	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodPost, "/api/echo", jsonBody(`{"q":"cream"}`)))
	if env := decode(t, rr); rr.Code != 200 || env.Data != "cream" {
		t.Fatalf("echo = %d %+v", rr.Code, env)
	}

	rr = httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodPost, "/api/echo", jsonBody(`{}`)))
	if env := decode(t, rr); rr.Code != 400 || env.Field != "q" {
		t.Fatalf("validation = %d %+v", rr.Code, env)
	}

	rr = httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, "/api/fail", nil))
	if env := decode(t, rr); rr.Code != 404 || env.Error != "no such store" {
		t.Fatalf("not found = %d %+v", rr.Code, env)
	}
}

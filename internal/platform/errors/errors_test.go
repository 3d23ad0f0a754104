package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrorCodeValidation:      http.StatusBadRequest,
		ErrorCodeJSON:            http.StatusBadRequest,
		ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
		ErrorCodeNotFound:        http.StatusNotFound,
		ErrorCodeUnauthorized:    http.StatusUnauthorized,
		ErrorCodeTooManyRequests: http.StatusTooManyRequests,
		ErrorCodeUnavailable:     http.StatusServiceUnavailable,
		ErrorCodeDB:              http.StatusInternalServerError,
		ErrorCode(999):           http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := HTTPStatusCode(code); got != want {
			t.Fatalf("HTTPStatusCode(%d) = %d, want %d", code, got, want)
		}
	}
}

func TestWrapChain(t *testing.T) {
	cause := stderrs.New("dial tcp: refused")
	err := Wrapf(cause, ErrorCodeDB, "find exact %q", "cream")

	if !stderrs.Is(err, cause) {
		t.Fatalf("cause lost")
	}
	if Root(err) != cause {
		t.Fatalf("Root = %v", Root(err))
	}
	if !IsCode(err, ErrorCodeDB) {
		t.Fatalf("code = %d", CodeOf(err))
	}
	if CodeOf(cause) != ErrorCodeUnknown {
		t.Fatalf("foreign errors are unknown")
	}
}

func TestWireHidesInternalDetail(t *testing.T) {
	status, w := HTTP(Wrap(stderrs.New("relation products does not exist"), ErrorCodeDB, "find exact"))
	if status != http.StatusInternalServerError || w.Message != "internal error" {
		t.Fatalf("got %d %+v", status, w)
	}

	w = WireFrom(stderrs.New("raw driver text"))
	if w.Message != "internal error" || w.Code != ErrorCodeUnknown {
		t.Fatalf("foreign wire = %+v", w)
	}

	status, w = HTTP(WithField(Validationf("title is required"), "title"))
	if status != http.StatusBadRequest || w.Message != "title is required" || w.Field != "title" {
		t.Fatalf("validation wire = %d %+v", status, w)
	}

	if s, w := HTTP(nil); s != http.StatusOK || w != (Wire{}) {
		t.Fatalf("nil = %d %+v", s, w)
	}
}

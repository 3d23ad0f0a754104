package swaggerkit

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	phttp "pricehunter/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func get(t *testing.T, enabled bool, path string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	Mount(phttp.AdaptChi(r), enabled)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	return rr
}

func getSpec(t *testing.T) (int, map[string]any) {
	t.Helper()
	rr := get(t, true, docPath)
	var spec map[string]any
	_ = json.Unmarshal(rr.Body.Bytes(), &spec)
	return rr.Code, spec
}

func TestDocJSONIsOAS3WithServers(t *testing.T) {
	code, spec := getSpec(t)
	if code != stdhttp.StatusOK {
		t.Fatalf("code = %d", code)
	}
	if spec["openapi"] != "3.0.3" {
		t.Fatalf("openapi = %v", spec["openapi"])
	}
	servers, _ := spec["servers"].([]any)
	if len(servers) != 1 || servers[0].(map[string]any)["url"] != Base {
		t.Fatalf("servers = %v", spec["servers"])
	}
}

func TestMountRedirectsBareDocsPath(t *testing.T) {
	rr := get(t, true, "/api/docs")
	if rr.Code != stdhttp.StatusPermanentRedirect || rr.Header().Get("Location") != "/api/docs/" {
		t.Fatalf("code = %d location = %q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestMountDisabled(t *testing.T) {
	if rr := get(t, false, docPath); rr.Code != stdhttp.StatusNotFound {
		t.Fatalf("code = %d", rr.Code)
	}
}

// Package swaggerkit mounts Swagger UI and the OpenAPI document for the versioned API.
// The full document is compiled in with -tags swag; other builds serve a skeleton.
package swaggerkit

import (
	"net/http"

	phttp "pricehunter/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Base is where httpkit.MountAPIV1 serves the API. OAS3 carries it in servers.
const Base = "/api/v1"

const docPath = "/api/docs/doc.json"

// Mount registers the UI and document when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get(docPath, serveDocJSON())
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL(docPath),
	))
}

func writeDoc(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(body)
}

//go:build !swag

package swaggerkit

import (
	"fmt"
	"net/http"
)

var docReader = func() string {
	return fmt.Sprintf(`{"openapi":"3.0.3","info":{"title":"pricehunter API","version":"0.0.0"},"servers":[{"url":%q}],"paths":{}}`, Base)
}

// serveDocJSON serves the skeleton so the UI still loads without generated docs
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) { writeDoc(w, []byte(docReader())) }
}

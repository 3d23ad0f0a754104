//go:build swag

package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"pricehunter/internal/platform/config"
	perr "pricehunter/internal/platform/errors"
	phttp "pricehunter/internal/platform/net/http"
	docs "pricehunter/internal/services/api/docs"
)

// SpecMutator adjusts the parsed document before it is served
type SpecMutator func(map[string]any)

var mutators []SpecMutator

var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// Register adds a mutator. Call it from init.
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

// defaultError is an error response every matching operation documents
type defaultError struct {
	err     error
	applies func(op map[string]any) bool
}

// defaultErrors are rendered through perr.HTTP, the same path RespondError takes,
// so the examples show what the API actually writes
var defaultErrors = []defaultError{
	{
		err: perr.WithField(perr.Validationf("title is a required field"), "title"),
		applies: func(op map[string]any) bool {
			_, body := op["requestBody"]
			_, params := op["parameters"]
			return body || params
		},
	},
	{
		err: perr.Unauthorizedf("invalid bearer token"),
		applies: func(op map[string]any) bool {
			_, secured := op["security"]
			return secured
		},
	},
	{
		err:     perr.New(perr.ErrorCodeDB, "catalog query failed"),
		applies: func(map[string]any) bool { return true },
	},
}

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spec, err := buildSpec(docReader())
		if err != nil {
			phttp.RespondError(w, r, perr.Wrap(err, perr.ErrorCodeUnknown, "api doc parse"))
			return
		}
		body, err := json.Marshal(spec)
		if err != nil {
			phttp.RespondError(w, r, perr.Wrap(err, perr.ErrorCodeUnknown, "api doc encode"))
			return
		}
		writeDoc(w, body)
	}
}

func buildSpec(raw string) (map[string]any, error) {
	var spec map[string]any
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		return nil, err
	}

	// http-swagger renders 3.0 only
	delete(spec, "swagger")
	if v, _ := spec["openapi"].(string); !strings.HasPrefix(v, "3.0") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": Base}}
	}

	if v := config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", ""); v != "" {
		if info, ok := spec["info"].(map[string]any); ok {
			if title, ok := info["title"].(string); ok {
				info["title"] = title + " " + v
			}
		}
	}

	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = envelopeSchema()
	}
	for _, op := range operations(spec) {
		resps := child(op, "responses")
		for _, d := range defaultErrors {
			if !d.applies(op) {
				continue
			}
			status, resp := errorResponse(d.err)
			if _, exists := resps[status]; !exists {
				resps[status] = resp
			}
		}
	}

	for _, m := range mutators {
		m(spec)
	}
	return spec, nil
}

// envelopeSchema describes phttp.Envelope as written for errors
func envelopeSchema() map[string]any {
	str := map[string]any{"type": "string"}
	return map[string]any{
		"type":        "object",
		"description": "Error envelope",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      str,
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       str,
			"field":       str,
			"request_id":  str,
		},
		"required": []any{"status_code", "status"},
	}
}

func errorResponse(err error) (string, map[string]any) {
	status, wr := perr.HTTP(err)
	example := map[string]any{
		"status_code": status,
		"status":      http.StatusText(status),
		"code":        int(wr.Code),
		"error":       wr.Message,
		"request_id":  "pricehunter/abc-000001",
	}
	if wr.Field != "" {
		example["field"] = wr.Field
	}
	return strconv.Itoa(status), map[string]any{
		"description": http.StatusText(status),
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": example,
			},
		},
	}
}

func operations(spec map[string]any) []map[string]any {
	paths, _ := spec["paths"].(map[string]any)
	var ops []map[string]any
	for _, p := range paths {
		node, _ := p.(map[string]any)
		for _, v := range node {
			if op, ok := v.(map[string]any); ok {
				ops = append(ops, op)
			}
		}
	}
	return ops
}

// child returns m[key] as a map, creating it when missing
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

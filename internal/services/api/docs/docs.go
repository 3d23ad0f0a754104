// Package docs holds the OpenAPI document served at /api/docs
package docs

//go:generate swag init --v3.1 -g ../api.go -d ../,../catalog/http,../meta/http,../../catalog/domain -o . --instanceName api

import "github.com/swaggo/swag/v2"

const docTemplate = `{
  "openapi": "3.1.0",
  "info": {
    "title": "{{.Title}}",
    "description": "{{.Description}}",
    "version": "{{.Version}}"
  },
  "paths": {
    "/find-alternatives": {
      "post": {
        "tags": ["catalog"],
        "summary": "Find the same product at other stores",
        "operationId": "findAlternatives",
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.FindInput"}}}
        },
        "responses": {
          "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.FindOutput"}}}}
        }
      }
    },
    "/report-products": {
      "post": {
        "tags": ["catalog"],
        "summary": "Report product sightings in bulk",
        "operationId": "reportProducts",
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.ReportInput"}}}
        },
        "responses": {
          "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.ReportOutput"}}}}
        }
      }
    },
    "/search": {
      "get": {
        "tags": ["catalog"],
        "summary": "Free text product search",
        "operationId": "search",
        "parameters": [
          {"name": "q", "in": "query", "required": true, "schema": {"type": "string"}},
          {"name": "limit", "in": "query", "schema": {"type": "integer", "minimum": 1, "maximum": 100}}
        ],
        "responses": {
          "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.SearchOutput"}}}}
        }
      }
    },
    "/stats": {
      "get": {
        "tags": ["catalog"],
        "summary": "Catalog counters",
        "operationId": "stats",
        "responses": {
          "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.Stats"}}}}
        }
      }
    },
    "/admin/stores": {
      "get": {
        "tags": ["admin"],
        "summary": "List tracked stores",
        "operationId": "listStores",
        "security": [{"BearerAuth": []}],
        "responses": {
          "200": {"description": "ok", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/domain.Store"}}}}}
        }
      },
      "put": {
        "tags": ["admin"],
        "summary": "Register or update a tracked store",
        "operationId": "registerStore",
        "security": [{"BearerAuth": []}],
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.StoreInput"}}}
        },
        "responses": {
          "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.Store"}}}}
        }
      }
    },
    "/admin/demand": {
      "get": {
        "tags": ["admin"],
        "summary": "Most searched titles without results",
        "operationId": "highDemand",
        "security": [{"BearerAuth": []}],
        "parameters": [
          {"name": "limit", "in": "query", "schema": {"type": "integer", "minimum": 1, "maximum": 500}}
        ],
        "responses": {
          "200": {"description": "ok", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/domain.Demand"}}}}}
        }
      }
    },
    "/meta/health": {"get": {"tags": ["Meta"], "summary": "Health check", "operationId": "metaHealth", "responses": {"200": {"description": "ok"}}}},
    "/meta/ready": {"get": {"tags": ["Meta"], "summary": "Readiness probe with dependency checks", "operationId": "metaReady", "responses": {"200": {"description": "ok"}}}},
    "/meta/version": {"get": {"tags": ["Meta"], "summary": "Build and version info", "operationId": "metaVersion", "responses": {"200": {"description": "ok"}}}},
    "/meta/service": {"get": {"tags": ["Meta"], "summary": "Service info and uptime", "operationId": "metaService", "responses": {"200": {"description": "ok"}}}}
  },
  "components": {
    "securitySchemes": {
      "BearerAuth": {"type": "http", "scheme": "bearer"}
    },
    "schemas": {
      "domain.FindInput": {
        "type": "object",
        "required": ["title", "store_domain"],
        "properties": {
          "title": {"type": "string", "maxLength": 500, "example": "CeraVe Moisturizing Cream 16oz"},
          "price": {"type": "number", "minimum": 0, "example": 18.99},
          "store_domain": {"type": "string", "example": "target.com"},
          "url": {"type": "string"},
          "image_url": {"type": "string"}
        }
      },
      "domain.Alternative": {
        "type": "object",
        "properties": {
          "title": {"type": "string"},
          "price": {"type": "number"},
          "store": {"type": "string"},
          "url": {"type": "string"},
          "image_url": {"type": "string"},
          "savings": {"type": "string", "nullable": true, "example": "2.00"}
        }
      },
      "domain.FindOutput": {
        "type": "object",
        "properties": {
          "query": {"type": "object"},
          "match_type": {"type": "string", "enum": ["exact", "fuzzy", "none"]},
          "alternatives_count": {"type": "integer"},
          "alternatives": {"type": "array", "items": {"$ref": "#/components/schemas/domain.Alternative"}},
          "cheapest": {"$ref": "#/components/schemas/domain.Alternative"}
        }
      },
      "domain.ReportInput": {
        "type": "object",
        "required": ["products"],
        "properties": {
          "products": {"type": "array", "maxItems": 1000, "items": {"type": "object"}}
        }
      },
      "domain.ReportOutput": {
        "type": "object",
        "properties": {
          "saved": {"type": "integer"},
          "total": {"type": "integer"}
        }
      },
      "domain.Product": {
        "type": "object",
        "properties": {
          "id": {"type": "integer"},
          "title": {"type": "string"},
          "normalized_title": {"type": "string"},
          "price": {"type": "number"},
          "currency": {"type": "string"},
          "store_domain": {"type": "string"},
          "url": {"type": "string"},
          "in_stock": {"type": "boolean"}
        }
      },
      "domain.SearchOutput": {
        "type": "object",
        "properties": {
          "query": {"type": "string"},
          "count": {"type": "integer"},
          "results": {"type": "array", "items": {"$ref": "#/components/schemas/domain.Product"}}
        }
      },
      "domain.Stats": {
        "type": "object",
        "properties": {
          "total_products": {"type": "integer"},
          "total_stores": {"type": "integer"},
          "products_updated_24h": {"type": "integer"}
        }
      },
      "domain.StoreInput": {
        "type": "object",
        "required": ["domain"],
        "properties": {
          "domain": {"type": "string", "example": "colourpop.com"},
          "name": {"type": "string"},
          "platform": {"type": "string", "enum": ["shopify", "custom"]},
          "scrape_frequency_hours": {"type": "integer", "minimum": 1, "maximum": 720}
        }
      },
      "domain.Store": {
        "type": "object",
        "properties": {
          "domain": {"type": "string"},
          "name": {"type": "string"},
          "platform": {"type": "string"},
          "product_count": {"type": "integer"},
          "last_scraped": {"type": "string", "format": "date-time", "nullable": true},
          "scrape_frequency_hours": {"type": "integer"},
          "is_active": {"type": "boolean"}
        }
      },
      "domain.Demand": {
        "type": "object",
        "properties": {
          "normalized_title": {"type": "string"},
          "search_count": {"type": "integer"},
          "last_searched": {"type": "string", "format": "date-time"},
          "has_results": {"type": "boolean"}
        }
      }
    }
  }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Title:            "pricehunter API",
	Description:      "Cross-store price comparison: title normalization and alternative matching.",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

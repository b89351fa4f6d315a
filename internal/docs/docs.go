// Package docs contains the generated Swagger specification.
// Regenerate with: swag init -g cmd/api/main.go -o internal/docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/financial-overview": {
            "get": {
                "produces": ["application/json"],
                "tags": ["overview"],
                "summary": "Get financial overview",
                "parameters": [
                    {"type": "string", "name": "date_start", "in": "query"},
                    {"type": "string", "name": "date_end", "in": "query"}
                ],
                "responses": {"200": {"description": "Financial overview"}}
            }
        },
        "/transactions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "List transactions",
                "parameters": [
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"},
                    {"type": "string", "name": "type", "in": "query"},
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "string", "name": "date_start", "in": "query"},
                    {"type": "string", "name": "date_end", "in": "query"}
                ],
                "responses": {"200": {"description": "Transaction page"}}
            }
        },
        "/sync": {
            "post": {
                "produces": ["application/json"],
                "tags": ["sync"],
                "summary": "Trigger reconciliation",
                "responses": {"200": {"description": "Sync result counts"}}
            }
        },
        "/cash-flow-forecast": {
            "get": {
                "produces": ["application/json"],
                "tags": ["forecast"],
                "summary": "Get cash-flow forecast",
                "parameters": [{"type": "integer", "name": "days", "in": "query"}],
                "responses": {"200": {"description": "Projection series"}}
            }
        },
        "/cash-flow-summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["forecast"],
                "summary": "Get cash-flow summary",
                "responses": {"200": {"description": "Forecast summary"}}
            }
        },
        "/command-center-stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Get command-center stats",
                "parameters": [{"type": "string", "name": "filter", "in": "query"}],
                "responses": {"200": {"description": "Command-center stats"}}
            }
        },
        "/command-center-stats/export": {
            "get": {
                "produces": ["text/csv"],
                "tags": ["stats"],
                "summary": "Export command-center stats as CSV",
                "parameters": [{"type": "string", "name": "filter", "in": "query"}],
                "responses": {"200": {"description": "CSV data"}}
            }
        },
        "/financial-snapshot": {
            "post": {
                "produces": ["application/json"],
                "tags": ["snapshots"],
                "summary": "Save financial snapshot",
                "responses": {"200": {"description": "Persisted snapshot"}}
            }
        },
        "/financial-snapshots": {
            "get": {
                "produces": ["application/json"],
                "tags": ["snapshots"],
                "summary": "Get financial snapshots",
                "parameters": [
                    {"type": "string", "name": "from", "in": "query", "required": true},
                    {"type": "string", "name": "to", "in": "query", "required": true},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "Paginated snapshots"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Fincore API",
	Description:      "Fincore is a back-office financial aggregation service: it reconciles bank accounts and transactions from a banking provider, categorizes activity, and serves overview, forecast and command-center views.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Package docs holds the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/table": {
            "get": {
                "produces": ["application/json"],
                "tags": ["table"],
                "summary": "Current view",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RenderedView"}}
                }
            }
        },
        "/api/v1/table/sort": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["table"],
                "summary": "Sort table",
                "parameters": [
                    {"description": "Sort column", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SortRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RenderedView"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/table/page": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["table"],
                "summary": "Turn page",
                "parameters": [
                    {"description": "Direction", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.PageRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RenderedView"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/table/page-size": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["table"],
                "summary": "Set page size",
                "parameters": [
                    {"description": "Rows per page", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.PageSizeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RenderedView"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/entries/refresh": {
            "post": {
                "produces": ["application/json"],
                "tags": ["entries"],
                "summary": "Reload entries",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RenderedView"}},
                    "502": {"description": "error, view", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/v1/entries/{id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["entries"],
                "summary": "Delete entry",
                "parameters": [
                    {"type": "string", "description": "Entry id (photo file stem)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RenderedView"}},
                    "502": {"description": "error, backend_status, backend_body", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/v1/charts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["charts"],
                "summary": "Chart series",
                "parameters": [
                    {"enum": ["full", "30d", "7d_weekly", "daily", "tod", "avg_compare"], "type": "string", "description": "View mode", "name": "view", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ChartData"}}
                }
            }
        },
        "/api/v1/charts/view": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["charts"],
                "summary": "Set chart view",
                "parameters": [
                    {"description": "View mode", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ViewRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RenderedView"}}
                }
            }
        },
        "/api/v1/charts/{panel}/png": {
            "get": {
                "produces": ["image/png"],
                "tags": ["charts"],
                "summary": "Chart image",
                "parameters": [
                    {"enum": ["bp", "pulse", "temp"], "type": "string", "description": "Panel", "name": "panel", "in": "path", "required": true},
                    {"enum": ["full", "30d", "7d_weekly", "daily", "tod", "avg_compare"], "type": "string", "description": "View mode", "name": "view", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/export/page": {
            "get": {
                "produces": ["text/csv"],
                "tags": ["export"],
                "summary": "Export visible page",
                "responses": {
                    "200": {"description": "vital_page.csv", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/export/all": {
            "get": {
                "produces": ["text/csv"],
                "tags": ["export"],
                "summary": "Export all entries",
                "responses": {
                    "200": {"description": "vital_all.csv", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/capture": {
            "get": {
                "produces": ["application/json"],
                "tags": ["capture"],
                "summary": "Capture workflow status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/capture.Status"}}
                }
            },
            "post": {
                "produces": ["application/json"],
                "tags": ["capture"],
                "summary": "Capture the next photo",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/capture.Status"}},
                    "409": {"description": "all photos captured", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "no camera", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/v1/capture/submit": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["capture"],
                "summary": "Submit entry",
                "parameters": [
                    {"description": "Vitals", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SubmitRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/capture.Status"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "nothing captured", "schema": {"type": "object", "additionalProperties": true}},
                    "502": {"description": "backend rejected the entry", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/v1/activity": {
            "get": {
                "produces": ["application/json"],
                "tags": ["activity"],
                "summary": "Activity log",
                "parameters": [
                    {"type": "string", "example": "2025-08-01", "description": "Start of range", "name": "from", "in": "query"},
                    {"type": "string", "example": "2025-08-31", "description": "End of range. Date-only treated as end of day.", "name": "to", "in": "query"},
                    {"enum": ["RELOAD", "LOAD_FAILED", "DELETE", "DELETE_FAILED", "CAPTURE", "SUBMIT", "SUBMIT_FAILED", "EXPORT"], "type": "string", "description": "Event type", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, events", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "capture.Status": {
            "type": "object",
            "properties": {
                "step": {"type": "integer"},
                "progress": {"type": "string", "example": "2 / 4 captured"},
                "button_label": {"type": "string", "example": "Capture Right"},
                "disabled": {"type": "boolean"},
                "captured": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handlers.PageRequest": {
            "type": "object",
            "required": ["action"],
            "properties": {
                "action": {"type": "string", "enum": ["next", "prev"], "example": "next"}
            }
        },
        "handlers.PageSizeRequest": {
            "type": "object",
            "required": ["page_size"],
            "properties": {
                "page_size": {"type": "integer", "minimum": 1, "example": 25}
            }
        },
        "handlers.SortRequest": {
            "type": "object",
            "required": ["key"],
            "properties": {
                "key": {"description": "One of timestamp_nanos, sys, dia, pulse, temp_c", "type": "string", "example": "sys"}
            }
        },
        "handlers.SubmitRequest": {
            "type": "object",
            "properties": {
                "combined": {"description": "Also upload the side-by-side composite of all captures", "type": "boolean", "example": true},
                "dia": {"type": "string", "example": "80"},
                "pulse": {"type": "string", "example": "64"},
                "sys": {"type": "string", "example": "120"},
                "temp": {"type": "string", "example": "36.6"}
            }
        },
        "handlers.ViewRequest": {
            "type": "object",
            "properties": {
                "view": {"description": "One of full, 30d, 7d_weekly, daily, tod, avg_compare; anything else selects full", "type": "string", "example": "daily"}
            }
        },
        "models.ChartData": {
            "type": "object",
            "properties": {
                "view": {"type": "string"},
                "labels": {"type": "array", "items": {"type": "string"}},
                "sys": {"type": "array", "items": {"type": "number"}},
                "dia": {"type": "array", "items": {"type": "number"}},
                "pulse": {"type": "array", "items": {"type": "number"}},
                "temp_c": {"type": "array", "items": {"type": "number"}},
                "extra": {"type": "array", "items": {"$ref": "#/definitions/models.Series"}}
            }
        },
        "models.Series": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "metric": {"type": "string"},
                "data": {"type": "array", "items": {"type": "number"}}
            }
        },
        "models.TableState": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "sort_key": {"type": "string"},
                "sort_dir": {"type": "string"}
            }
        },
        "models.Row": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "path": {"type": "string"},
                "sys": {"type": "number"},
                "dia": {"type": "number"},
                "pulse": {"type": "number"},
                "temp_c": {"type": "number"},
                "timestamp_nanos": {"type": "integer"},
                "when": {"type": "string"},
                "age": {"type": "string"}
            }
        },
        "models.Table": {
            "type": "object",
            "properties": {
                "state": {"$ref": "#/definitions/models.TableState"},
                "rows": {"type": "array", "items": {"$ref": "#/definitions/models.Row"}},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "models.GalleryItem": {
            "type": "object",
            "properties": {
                "path": {"type": "string"},
                "when": {"type": "string"}
            }
        },
        "models.RenderedView": {
            "type": "object",
            "properties": {
                "version": {"type": "integer"},
                "notice": {"type": "string"},
                "table": {"$ref": "#/definitions/models.Table"},
                "chart": {"$ref": "#/definitions/models.ChartData"},
                "gallery": {"type": "array", "items": {"$ref": "#/definitions/models.GalleryItem"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Vital Dashboard API",
	Description:      "Table, charts, CSV export and photo capture for the vital-sign tracker.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

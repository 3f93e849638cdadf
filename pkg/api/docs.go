package api

import (
	"net/http"

	"github.com/swaggo/swag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// SwaggerInfo describes the API for /swagger. The template is kept by hand
// next to the routes it documents.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "AION2 Localization API",
	Description:      "Decode and encode AION2 localization containers and browse archived snapshots.",
	InfoInstanceName: swag.Name,
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

const swaggerIndex = `<!DOCTYPE html>
<html>
<head>
	<title>AION2 Localization API</title>
	<link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui.css" />
</head>
<body>
	<div id="swagger-ui"></div>
	<script src="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui-bundle.js"></script>
	<script>
	  window.onload = function() {
	    SwaggerUIBundle({
	      url: '/swagger/swagger.json',
	      dom_id: '#swagger-ui',
	      presets: [
	        SwaggerUIBundle.presets.apis,
	        SwaggerUIBundle.presets.standalone
	      ]
	    });
	  };
	</script>
</body>
</html>`

// handleSwagger serves the UI page and the registered document as JSON or YAML
func (s *Server) handleSwagger(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/swagger/", "/swagger/index.html":
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerIndex))
	case "/swagger/swagger.json", "/swagger/doc.json":
		doc, err := swag.ReadDoc(swag.Name)
		if err != nil {
			s.logger.Error("failed to generate swagger doc", zap.Error(err))
			http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	case "/swagger/swagger.yaml":
		doc, err := swag.ReadDoc(swag.Name)
		if err != nil {
			s.logger.Error("failed to generate swagger doc", zap.Error(err))
			http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
			return
		}
		// JSON is a YAML subset, so a decode and re-encode converts it
		var tree interface{}
		if err := yaml.Unmarshal([]byte(doc), &tree); err != nil {
			s.logger.Error("failed to convert swagger doc", zap.Error(err))
			http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
			return
		}
		out, err := yaml.Marshal(tree)
		if err != nil {
			s.logger.Error("failed to convert swagger doc", zap.Error(err))
			http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(out)
	default:
		http.NotFound(w, r)
	}
}

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{.Description}}",
        "version": "{{.Version}}"
    },
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "in": "header",
            "name": "X-API-Key"
        }
    },
    "security": [{"ApiKeyAuth": []}],
    "paths": {
        "/health": {
            "get": {
                "summary": "Service health",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Service is up", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "401": {"description": "Missing or invalid API key", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/decode": {
            "post": {
                "summary": "Decode a container into interchange entries",
                "consumes": ["application/octet-stream"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "container", "in": "body", "required": true, "schema": {"type": "string", "format": "binary"}}
                ],
                "responses": {
                    "200": {"description": "Entries, header and diagnostics", "schema": {"$ref": "#/definitions/DecodeResponse"}},
                    "400": {"description": "Empty body", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "413": {"description": "Body too large", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/encode": {
            "post": {
                "summary": "Encode interchange entries into a container",
                "consumes": ["application/json"],
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"name": "entries", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/Entry"}}},
                    {"name": "keep_empty", "in": "query", "type": "boolean", "description": "Write entries without a translation using their original value"}
                ],
                "responses": {
                    "200": {"description": "Container bytes", "schema": {"type": "string", "format": "binary"}},
                    "400": {"description": "Malformed document", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/snapshots": {
            "get": {
                "summary": "List archived snapshots",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Snapshot metadata, oldest first", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/snapshots/{ref}": {
            "get": {
                "summary": "Fetch a snapshot by id or newest by name",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "ref", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Snapshot metadata and entries", "schema": {"$ref": "#/definitions/SnapshotResponse"}},
                    "404": {"description": "Snapshot not found", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/snapshots/{ref}/search": {
            "get": {
                "summary": "Search the entries of a snapshot",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "ref", "in": "path", "required": true, "type": "string"},
                    {"name": "q", "in": "query", "type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Field query such as Key^=NpcTalk_"},
                    {"name": "limit", "in": "query", "type": "integer", "description": "Maximum results"}
                ],
                "responses": {
                    "200": {"description": "Matching entries", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "400": {"description": "Invalid query or limit", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "404": {"description": "Snapshot not found", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "object"},
                "error": {"type": "string"}
            }
        },
        "Entry": {
            "type": "object",
            "properties": {
                "Key": {"type": "string"},
                "Value": {"type": "string"},
                "Key_Type": {"type": "string", "enum": ["UTF-8", "UTF-16"]},
                "Russian_Value": {"type": "string"},
                "Russian_Data_Type": {"description": "0 for UTF-8, 1 for UTF-16LE, empty when unset"}
            }
        },
        "Diagnostic": {
            "type": "object",
            "properties": {
                "offset": {"type": "integer"},
                "kind": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "HeaderInfo": {
            "type": "object",
            "properties": {
                "tag": {"type": "integer"},
                "signature": {"type": "string"},
                "trailer": {"type": "integer"},
                "standard": {"type": "boolean"}
            }
        },
        "DecodeResponse": {
            "type": "object",
            "properties": {
                "header": {"$ref": "#/definitions/HeaderInfo"},
                "entries": {"type": "array", "items": {"$ref": "#/definitions/Entry"}},
                "diagnostics": {"type": "array", "items": {"$ref": "#/definitions/Diagnostic"}}
            }
        },
        "SnapshotMeta": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "source": {"type": "string"},
                "created": {"type": "string", "format": "date-time"},
                "entries": {"type": "integer"}
            }
        },
        "SnapshotResponse": {
            "type": "object",
            "properties": {
                "meta": {"$ref": "#/definitions/SnapshotMeta"},
                "entries": {"type": "array", "items": {"$ref": "#/definitions/Entry"}}
            }
        }
    }
}`

package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Concurrent Transactions API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Concurrent Transactions API",
    "version": "1.0.0"
  },
  "paths": {
    "/accounts": {
      "post": {
        "summary": "Create account",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["number"],
                "properties": {
                  "number": {"type": "integer", "minimum": 1},
                  "balance": {"type": "number", "minimum": 0}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Created"},
          "400": {"description": "Validation error"},
          "409": {"description": "Account number already exists"},
          "500": {"description": "Server error"}
        }
      },
      "get": {
        "summary": "List accounts ordered by number",
        "parameters": [
          {"name": "page", "in": "query", "schema": {"type": "integer", "minimum": 1, "default": 1}},
          {"name": "pageSize", "in": "query", "schema": {"type": "integer", "minimum": 1, "default": 30}}
        ],
        "responses": {
          "200": {"description": "Paginated accounts"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/accounts/{number}": {
      "get": {
        "summary": "Get account by number",
        "parameters": [
          {"name": "number", "in": "path", "required": true, "schema": {"type": "integer"}}
        ],
        "responses": {
          "200": {"description": "Account fetched"},
          "404": {"description": "Account not found"},
          "500": {"description": "Server error"}
        }
      },
      "delete": {
        "summary": "Delete account",
        "parameters": [
          {"name": "number", "in": "path", "required": true, "schema": {"type": "integer"}}
        ],
        "responses": {
          "200": {"description": "Account deleted"},
          "404": {"description": "Account not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/transactions": {
      "post": {
        "summary": "Execute a movement (deposit, withdrawal or transfer)",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["kind", "sourceAccount", "amount"],
                "properties": {
                  "kind": {"type": "string", "enum": ["DEPOSIT", "WITHDRAWAL", "TRANSFER"]},
                  "sourceAccount": {"type": "integer"},
                  "destinationAccount": {"type": "integer"},
                  "amount": {"type": "number", "exclusiveMinimum": 0}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Transaction created"},
          "400": {"description": "Validation error"},
          "404": {"description": "Account not found"},
          "409": {"description": "Serialization conflict, retry later"},
          "422": {"description": "Insufficient funds"},
          "500": {"description": "Server error"}
        }
      },
      "get": {
        "summary": "List transactions ordered by timestamp descending",
        "parameters": [
          {"name": "kind", "in": "query", "schema": {"type": "string"}, "description": "Comma-separated set of kinds"},
          {"name": "sourceAccount", "in": "query", "schema": {"type": "integer"}},
          {"name": "destinationAccount", "in": "query", "schema": {"type": "integer"}},
          {"name": "startDate", "in": "query", "schema": {"type": "string", "format": "date-time"}},
          {"name": "endDate", "in": "query", "schema": {"type": "string", "format": "date-time"}},
          {"name": "page", "in": "query", "schema": {"type": "integer", "minimum": 1, "default": 1}},
          {"name": "pageSize", "in": "query", "schema": {"type": "integer", "minimum": 1, "default": 100}}
        ],
        "responses": {
          "200": {"description": "Paginated transactions"},
          "400": {"description": "Invalid query"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/transactions/{id}": {
      "get": {
        "summary": "Get transaction by id",
        "parameters": [
          {"name": "id", "in": "path", "required": true, "schema": {"type": "integer"}}
        ],
        "responses": {
          "200": {"description": "Transaction fetched"},
          "404": {"description": "Transaction not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/health": {
      "get": {
        "summary": "Liveness probe",
        "responses": {
          "200": {"description": "Service is up"}
        }
      }
    }
  }
}`

// Package docs holds the OpenAPI document served under /swagger/.
// Regenerate with: swag init -g cmd/api/main.go -o internal/docs
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
        "/api/all-exchanges": {
            "get": {
                "description": "Fetches every configured pair concurrently and returns those that reported, keyed by \"exchange-asset\" (or bare exchange in single-asset deployments). Failed pairs are omitted.",
                "produces": ["application/json"],
                "tags": ["exchanges"],
                "summary": "Merged P2P metrics",
                "responses": {
                    "200": {
                        "description": "Reporting pairs",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {"$ref": "#/definitions/dto.ExchangeMetrics"}
                        }
                    },
                    "500": {
                        "description": "Aggregation failed",
                        "schema": {"$ref": "#/definitions/dto.ErrorResponse"}
                    }
                }
            }
        },
        "/api/stream": {
            "get": {
                "description": "Upgrades to WebSocket and pushes a merged snapshot on connect and on every refresh interval.",
                "tags": ["exchanges"],
                "summary": "Merged snapshot stream",
                "responses": {
                    "101": {
                        "description": "Switching protocols",
                        "schema": {"$ref": "#/definitions/dto.StreamMessage"}
                    }
                }
            }
        },
        "/api/{exchange}-{asset}": {
            "get": {
                "description": "Calls the exchange's public P2P endpoint once and returns normalized metrics. The \"p2p\" suffix is an alias for USDC.",
                "produces": ["application/json"],
                "tags": ["exchanges"],
                "summary": "P2P metrics for one exchange/asset pair",
                "parameters": [
                    {"enum": ["binance", "bybit", "okx", "kucoin"], "type": "string", "description": "Exchange id", "name": "exchange", "in": "path", "required": true},
                    {"enum": ["p2p", "usdc", "usdt"], "type": "string", "description": "Asset", "name": "asset", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Normalized metrics", "schema": {"$ref": "#/definitions/dto.ExchangeMetrics"}},
                    "404": {"description": "No listings, authentication required, or unknown pair", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Exchange unreachable or unexpected reply", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Same as GET; the request body is ignored.",
                "produces": ["application/json"],
                "tags": ["exchanges"],
                "summary": "P2P metrics for one exchange/asset pair",
                "parameters": [
                    {"enum": ["binance", "bybit", "okx", "kucoin"], "type": "string", "description": "Exchange id", "name": "exchange", "in": "path", "required": true},
                    {"enum": ["p2p", "usdc", "usdt"], "type": "string", "description": "Asset", "name": "asset", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Normalized metrics", "schema": {"$ref": "#/definitions/dto.ExchangeMetrics"}},
                    "404": {"description": "No listings, authentication required, or unknown pair", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Exchange unreachable or unexpected reply", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Verifies that the service is running. Does not call any exchange.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Basic health check",
                "responses": {
                    "200": {"description": "Service is running", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "description": "Standard error response for endpoints",
            "type": "object",
            "required": ["error"],
            "properties": {
                "code": {"type": "string", "example": "NO_DATA"},
                "details": {"type": "string", "example": "provider unreachable: HTTP 502"},
                "error": {"type": "string", "example": "No data available from Binance"}
            }
        },
        "dto.ExchangeMetrics": {
            "description": "Normalized P2P order-book metrics for one exchange/asset pair",
            "type": "object",
            "properties": {
                "asset": {"type": "string", "enum": ["USDC", "USDT"], "example": "USDT"},
                "avgPrice": {"type": "number", "example": 1.0012},
                "exchange": {"type": "string", "enum": ["binance", "bybit", "okx", "kucoin"], "example": "binance"},
                "note": {"type": "string", "example": "Simulated data - API requires authentication"},
                "orders": {"type": "integer", "example": 20},
                "timestamp": {"type": "string", "example": "2026-01-01T10:30:00Z"},
                "volume": {"type": "number", "example": 152340.5}
            }
        },
        "dto.HealthResponse": {
            "description": "Health check response",
            "type": "object",
            "required": ["status", "timestamp"],
            "properties": {
                "status": {"type": "string", "example": "ok"},
                "timestamp": {"type": "string", "example": "2026-01-01T10:30:00Z"}
            }
        },
        "dto.StreamMessage": {
            "description": "Merged snapshot pushed over /api/stream",
            "type": "object",
            "properties": {
                "data": {"type": "object", "additionalProperties": {"$ref": "#/definitions/dto.ExchangeMetrics"}},
                "error": {"type": "string"},
                "timestamp": {"type": "string"},
                "type": {"type": "string", "enum": ["snapshot", "error"], "example": "snapshot"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:3001",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "P2P Volume Tracker API",
	Description:      "Aggregates public P2P order-book snapshots from Binance, Bybit, OKX and KuCoin for USDC and USDT against USD.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Package docs 註冊 /swagger/* 使用的 OpenAPI 文件，內容需與 handler 上的 swag 註解保持一致
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
        "/": {
            "get": {
                "description": "GET / 回傳 hello.html；GET /sleep 延遲後回傳 hello.html；GET /favicon.ico 回傳 SVG；其餘回 404.html",
                "produces": ["text/html"],
                "tags": ["site"],
                "summary": "Static site",
                "responses": {
                    "200": {"description": "page", "schema": {"type": "string"}},
                    "404": {"description": "not found page", "schema": {"type": "string"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.HTTPError"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.HTTPError"}}
                }
            }
        },
        "/api/admin/cache/purge": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "清除頁面快取",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PurgeResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.HTTPError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.HTTPError"}}
                }
            }
        },
        "/api/admin/shutdown": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "停止接受新連線，等待 worker pool 內所有任務完成後結束",
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "關閉服務",
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.HTTPError"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.HTTPError"}}
                }
            }
        },
        "/api/admin/token": {
            "post": {
                "description": "以管理員密碼驗證，回傳存取令牌與到期時間",
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "取得管理員令牌",
                "parameters": [
                    {"type": "string", "description": "管理員密碼", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AdminTokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.HTTPError"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.HTTPError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.HTTPError"}}
                }
            }
        },
        "/api/hits": {
            "get": {
                "description": "依 access log 統計各路徑請求次數",
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Path hit counts",
                "parameters": [
                    {"type": "integer", "description": "最多回傳幾筆 (0 = 不限)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.PathHitsResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.HTTPError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.HTTPError"}}
                }
            }
        },
        "/api/ping": {
            "get": {
                "description": "回傳 pong 與 worker 數量，並檢查資料庫與快取（若有設定）",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health Check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PingResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.HTTPError"}}
                }
            }
        }
    },
    "definitions": {
        "dto.AdminTokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string", "example": "eyJhbGciOi..."},
                "expires_at": {"type": "string", "example": "2025-05-09T15:04:05Z"},
                "token_type": {"type": "string", "example": "Bearer"}
            }
        },
        "dto.HTTPError": {
            "type": "object",
            "properties": {
                "message": {"description": "message 錯誤描述", "type": "string"}
            }
        },
        "dto.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "shutting down"}
            }
        },
        "dto.PathHitsResponse": {
            "type": "object",
            "properties": {
                "hits": {"type": "integer", "example": 42},
                "last_seen": {"type": "string", "example": "2025-05-09T15:04:05Z"},
                "path": {"type": "string", "example": "/"}
            }
        },
        "dto.PingResponse": {
            "type": "object",
            "properties": {
                "alive": {"type": "integer", "example": 4},
                "message": {"type": "string", "example": "pong"},
                "workers": {"type": "integer", "example": 4}
            }
        },
        "dto.PurgeResponse": {
            "type": "object",
            "properties": {
                "purged": {"type": "integer", "example": 3}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:7878",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Hello Web API",
	Description:      "以固定大小 worker pool 處理請求的靜態網站伺服器",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

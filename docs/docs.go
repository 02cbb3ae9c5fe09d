// Package docs holds the OpenAPI description served under /swagger.
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
        "/requests/documents": {
            "get": {
                "produces": ["application/json"],
                "summary": "List generated documents for a request",
                "parameters": [
                    {"type": "string", "description": "request id (echoed)", "name": "requestId", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.failurePayload"}}
                }
            },
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "summary": "Upload a document or image",
                "parameters": [
                    {"type": "file", "description": "jpeg, png or pdf, up to 25 MiB", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.uploadResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.failurePayload"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/handler.failurePayload"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/handler.failurePayload"}}
                }
            }
        },
        "/requests/documents/{documentId}": {
            "delete": {
                "produces": ["application/json"],
                "summary": "Confirm deletion of a document",
                "parameters": [
                    {"type": "string", "description": "document id", "name": "documentId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.failurePayload"}}
                }
            }
        },
        "/api/registro/cat_docs/{catId}": {
            "get": {
                "produces": ["application/json"],
                "summary": "List catalog documents for a category",
                "parameters": [
                    {"type": "string", "description": "category id (echoed)", "name": "catId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.failurePayload"}}
                }
            }
        },
        "/api/registro/photos/{photoId}": {
            "get": {
                "produces": ["application/json"],
                "summary": "Get a generated photo",
                "parameters": [
                    {"type": "string", "description": "photo id (echoed)", "name": "photoId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.failurePayload"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "summary": "Confirm deletion of a photo",
                "parameters": [
                    {"type": "string", "description": "photo id", "name": "photoId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.failurePayload"}}
                }
            }
        }
    },
    "definitions": {
        "handler.failurePayload": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "handler.messageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "handler.uploadResponse": {
            "type": "object",
            "properties": {
                "fileId": {"type": "string"},
                "fileName": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "handler.listResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "result": {"type": "object", "additionalProperties": true},
                "success": {"type": "boolean"}
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
	Title:            "Document Registration API",
	Description:      "Mock backend for document registration uploads and catalog lookups.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

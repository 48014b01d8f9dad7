// Package docs registers the OpenAPI description served under /swagger.
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
    "securityDefinitions": {
        "session": {"type": "apiKey", "in": "header", "name": "Cookie"}
    },
    "security": [{"session": []}],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"], "summary": "Log in and receive the session cookie", "security": [],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/UserEnvelope"}}, "401": {"$ref": "#/responses/Error"}, "429": {"$ref": "#/responses/Error"}}
            }
        },
        "/auth/logout": {
            "post": {"tags": ["auth"], "summary": "End the session and clear the cookie", "security": [], "responses": {"200": {"description": "OK"}}}
        },
        "/auth/me": {
            "get": {"tags": ["auth"], "summary": "Current user", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/UserEnvelope"}}, "401": {"$ref": "#/responses/Error"}}}
        },
        "/dashboard/stats": {
            "get": {"tags": ["dashboard"], "summary": "Aggregate counts and current month revenue", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DashboardStats"}}}}
        },
        "/properties": {
            "get": {"tags": ["properties"], "summary": "List properties", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["properties"], "summary": "Create a property", "responses": {"201": {"description": "Created"}, "400": {"$ref": "#/responses/Error"}}}
        },
        "/properties/{id}": {
            "parameters": [{"$ref": "#/parameters/id"}],
            "get": {"tags": ["properties"], "summary": "Property with contracts and maintenance requests", "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/responses/Error"}}},
            "put": {"tags": ["properties"], "summary": "Update a property", "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/responses/Error"}}},
            "delete": {"tags": ["properties"], "summary": "Delete a property", "responses": {"204": {"description": "No Content"}, "409": {"$ref": "#/responses/Error"}}}
        },
        "/properties/{id}/image": {
            "parameters": [{"$ref": "#/parameters/id"}],
            "get": {"tags": ["properties"], "summary": "Redirect to the property image", "responses": {"302": {"description": "Found"}, "404": {"$ref": "#/responses/Error"}}},
            "post": {
                "tags": ["properties"], "summary": "Upload the property image", "consumes": ["multipart/form-data"],
                "parameters": [{"in": "formData", "name": "image", "type": "file", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"$ref": "#/responses/Error"}, "503": {"$ref": "#/responses/Error"}}
            }
        },
        "/tenants": {
            "get": {"tags": ["tenants"], "summary": "List tenants", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["tenants"], "summary": "Create a tenant", "responses": {"201": {"description": "Created"}, "409": {"$ref": "#/responses/Error"}}}
        },
        "/tenants/{id}": {
            "parameters": [{"$ref": "#/parameters/id"}],
            "get": {"tags": ["tenants"], "summary": "Get a tenant", "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/responses/Error"}}},
            "put": {"tags": ["tenants"], "summary": "Update a tenant", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["tenants"], "summary": "Delete a tenant", "responses": {"204": {"description": "No Content"}}}
        },
        "/contracts": {
            "get": {"tags": ["contracts"], "summary": "List contracts with property and tenant", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["contracts"], "summary": "Create a contract and mark the property rented", "responses": {"201": {"description": "Created"}, "400": {"$ref": "#/responses/Error"}}}
        },
        "/contracts/{id}": {
            "parameters": [{"$ref": "#/parameters/id"}],
            "get": {"tags": ["contracts"], "summary": "Contract with property, tenant and invoices", "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/responses/Error"}}},
            "put": {"tags": ["contracts"], "summary": "Update a contract", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["contracts"], "summary": "Delete a contract and mark the property available", "responses": {"204": {"description": "No Content"}}}
        },
        "/invoices": {
            "get": {"tags": ["invoices"], "summary": "List invoices", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["invoices"], "summary": "Create an invoice", "responses": {"201": {"description": "Created"}, "409": {"$ref": "#/responses/Error"}}}
        },
        "/invoices/{id}": {
            "parameters": [{"$ref": "#/parameters/id"}],
            "get": {"tags": ["invoices"], "summary": "Invoice with contract and payments", "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/responses/Error"}}},
            "put": {"tags": ["invoices"], "summary": "Update an invoice", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["invoices"], "summary": "Delete an invoice", "responses": {"204": {"description": "No Content"}}}
        },
        "/invoices/{id}/pdf": {
            "parameters": [{"$ref": "#/parameters/id"}],
            "get": {"tags": ["invoices"], "summary": "Invoice as PDF", "produces": ["application/pdf"], "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/responses/Error"}}}
        },
        "/maintenance": {
            "get": {"tags": ["maintenance"], "summary": "List maintenance requests", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["maintenance"], "summary": "Create a maintenance request", "responses": {"201": {"description": "Created"}}}
        },
        "/maintenance/{id}": {
            "parameters": [{"$ref": "#/parameters/id"}],
            "get": {"tags": ["maintenance"], "summary": "Get a maintenance request", "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/responses/Error"}}},
            "put": {"tags": ["maintenance"], "summary": "Update a maintenance request", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["maintenance"], "summary": "Delete a maintenance request", "responses": {"204": {"description": "No Content"}}}
        },
        "/payments": {
            "get": {"tags": ["payments"], "summary": "List payments", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["payments"], "summary": "Record a payment, settling the invoice when it covers the amount", "responses": {"201": {"description": "Created"}, "400": {"$ref": "#/responses/Error"}}}
        },
        "/payments/{id}": {
            "parameters": [{"$ref": "#/parameters/id"}],
            "get": {"tags": ["payments"], "summary": "Payment with invoice chain", "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/responses/Error"}}},
            "put": {"tags": ["payments"], "summary": "Update a payment", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["payments"], "summary": "Delete a payment", "responses": {"204": {"description": "No Content"}}}
        },
        "/admin/users": {
            "get": {"tags": ["users"], "summary": "List users", "responses": {"200": {"description": "OK"}, "403": {"$ref": "#/responses/Error"}}},
            "post": {"tags": ["users"], "summary": "Create a user", "responses": {"201": {"description": "Created"}, "409": {"$ref": "#/responses/Error"}}}
        },
        "/admin/users/{id}": {
            "parameters": [{"$ref": "#/parameters/id"}],
            "get": {"tags": ["users"], "summary": "Get a user", "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/responses/Error"}}},
            "put": {"tags": ["users"], "summary": "Update a user", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["users"], "summary": "Delete a user", "responses": {"204": {"description": "No Content"}}}
        }
    },
    "parameters": {
        "id": {"in": "path", "name": "id", "type": "integer", "required": true}
    },
    "responses": {
        "Error": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
    },
    "definitions": {
        "LoginRequest": {
            "type": "object", "required": ["username", "password"],
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "UserEnvelope": {
            "type": "object",
            "properties": {"user": {"type": "object"}}
        },
        "DashboardStats": {
            "type": "object",
            "properties": {
                "totalProperties": {"type": "integer"},
                "activeTenants": {"type": "integer"},
                "activeContracts": {"type": "integer"},
                "pendingMaintenance": {"type": "integer"},
                "monthlyRevenue": {"type": "number"}
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Property Manager API",
	Description:      "Back office API for properties, tenants, contracts, invoices, payments and maintenance.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

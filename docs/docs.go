// Package docs registers the OpenAPI description served at /swagger.
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
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Create an account"
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in"
            }
        },
        "/splits": {
            "post": {
                "tags": ["splits"],
                "summary": "Compute a split"
            }
        },
        "/sessions": {
            "get": {
                "tags": ["sessions"],
                "summary": "List past sessions"
            },
            "post": {
                "tags": ["sessions"],
                "summary": "Record a session"
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Billsplit API",
	Description:      "Split a shared bill evenly or by custom amounts and keep a per-user session history.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

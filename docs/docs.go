// Package docs holds the OpenAPI document served under /swagger. It mirrors
// the annotations in main.go and handlers/; keep them in step, or rebuild it
// with `make swagger`.
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
                "description": "Returns a constant greeting while the process is serving requests",
                "produces": [
                    "text/plain"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Liveness greeting",
                "responses": {
                    "200": {
                        "description": "Hello World",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "description": "Reports the status declared in health.txt. Ok and Degraded keep the\nservice in rotation; Down and Unknown (missing or invalid file) do not.",
                "produces": [
                    "text/plain"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Service health",
                "responses": {
                    "200": {
                        "description": "Ok or Degraded",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "503": {
                        "description": "Down or Unknown",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/metadata": {
            "get": {
                "description": "Returns the version, description and source revision of the running build",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "metadata"
                ],
                "summary": "Build metadata",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/types.Metadata"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "types.Metadata": {
            "type": "object",
            "properties": {
                "description": {
                    "description": "Human readable description of the purpose of this application.",
                    "type": "string",
                    "example": "Pett health and metadata server"
                },
                "last_commit_sha": {
                    "description": "Revision the binary was built from, as resolved by git describe.",
                    "type": "string",
                    "example": "v0.3.0-2-g1a2b3c4"
                },
                "version": {
                    "description": "Version of this application.",
                    "type": "string",
                    "example": "0.3.0"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pett Server API",
	Description:      "Greeting, health probe and build metadata endpoints.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

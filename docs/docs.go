// Package docs registers the OpenAPI document served under /swagger/.
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
        "/events": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List cleanup events",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.EventListSuccessResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Create a cleanup event",
                "parameters": [
                    {"description": "Event data", "name": "event", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.CreateEventRequest"}}
                ],
                "responses": {
                    "201": {"description": "data contains the created event", "schema": {"$ref": "#/definitions/controllers.EventSuccessResponse"}},
                    "303": {"description": "form submission accepted"},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{eventID}/join": {
            "post": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Join an event",
                "parameters": [{"type": "integer", "description": "Event ID", "name": "eventID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.EventSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{eventID}/share": {
            "post": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Share an event",
                "parameters": [{"type": "integer", "description": "Event ID", "name": "eventID", "in": "path", "required": true}],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/crews": {
            "get": {
                "produces": ["application/json"],
                "tags": ["crews"],
                "summary": "List crews",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.CrewListSuccessResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["crews"],
                "summary": "Create a crew",
                "parameters": [
                    {"description": "Crew data", "name": "crew", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.CreateCrewRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.CrewSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/crews/{crewID}/join": {
            "post": {
                "produces": ["application/json"],
                "tags": ["crews"],
                "summary": "Join a crew",
                "parameters": [{"type": "integer", "description": "Crew ID", "name": "crewID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.CrewSuccessResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Current identity",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.IdentitySuccessResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Set the current user",
                "parameters": [
                    {"description": "Display name", "name": "me", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.UpdateMeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.IdentitySuccessResponse"}}
                }
            }
        },
        "/fragments/{name}": {
            "get": {
                "produces": ["text/html"],
                "tags": ["views"],
                "summary": "Rendered region",
                "parameters": [{"enum": ["events", "crews", "weather"], "type": "string", "description": "Region name", "name": "name", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "HTML fragment", "schema": {"type": "string"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/map": {
            "get": {
                "produces": ["application/json"],
                "tags": ["views"],
                "summary": "Map layers",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            }
        },
        "/notifications": {
            "get": {
                "produces": ["application/json"],
                "tags": ["views"],
                "summary": "Visible notifications",
                "responses": {"200": {"description": "data is a list of toasts", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            }
        }
    },
    "definitions": {
        "controllers.CreateEventRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "date": {"type": "string", "example": "2025-03-01T09:00"},
                "location": {"type": "string"},
                "description": {"type": "string"},
                "crewSize": {"type": "integer"}
            }
        },
        "controllers.CreateCrewRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "location": {"type": "string"}
            }
        },
        "controllers.UpdateMeRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}}
        },
        "controllers.EventSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.Event"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.EventListSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/domain.Event"}},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.CrewSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.Crew"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.CrewListSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/domain.Crew"}},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.IdentitySuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.Identity"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "domain.Event": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "date": {"type": "string"},
                "location": {"type": "string"},
                "description": {"type": "string"},
                "crewSize": {"type": "integer"},
                "createdBy": {"type": "string"},
                "joined": {"type": "array", "items": {"type": "string"}},
                "lat": {"type": "number"},
                "lng": {"type": "number"}
            }
        },
        "domain.Crew": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "location": {"type": "string"},
                "members": {"type": "array", "items": {"type": "string"}},
                "createdAt": {"type": "string"}
            }
        },
        "domain.Location": {
            "type": "object",
            "properties": {
                "lat": {"type": "number"},
                "lng": {"type": "number"}
            }
        },
        "domain.Identity": {
            "type": "object",
            "properties": {
                "currentUser": {"type": "string"},
                "actor": {"type": "string"},
                "userCrew": {"type": "integer"},
                "userLocation": {"$ref": "#/definitions/domain.Location"}
            }
        },
        "helpers.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/helpers.APIError"}
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
	Title:            "ShoreSquad API",
	Description:      "Beach cleanup events and crews.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

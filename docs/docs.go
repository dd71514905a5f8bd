// Package docs holds the Swagger document served under /swagger.
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
        "/participants": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["participants"],
                "summary": "Participant table view",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TableView"}},
                    "401": {"description": "Unauthorized"}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["participants"],
                "summary": "Add a participant",
                "parameters": [
                    {"description": "Login and role", "name": "body", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/services.AddParticipantInput"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/participants/roles": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["participants"],
                "summary": "Assignable roles with tooltips",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/participants/export": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["participants"],
                "summary": "Export the participant table to object storage",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/services.ExportResult"}},
                    "503": {"description": "Service Unavailable"}
                }
            }
        },
        "/participants/{participantID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["participants"],
                "summary": "Get a participant",
                "parameters": [{"type": "integer", "description": "Participant ID", "name": "participantID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["participants"],
                "summary": "Edit a participant",
                "parameters": [
                    {"type": "integer", "description": "Participant ID", "name": "participantID", "in": "path", "required": true},
                    {"description": "Changed fields", "name": "body", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/services.UpdateParticipantInput"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "422": {"description": "Unprocessable Entity"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["participants"],
                "summary": "Delete a participant",
                "parameters": [{"type": "integer", "description": "Participant ID", "name": "participantID", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        }
    },
    "definitions": {
        "models.Banner": {
            "type": "object",
            "properties": {"key": {"type": "string"}, "message": {"type": "string"}}
        },
        "models.Column": {
            "type": "object",
            "properties": {"header": {"type": "string"}, "key": {"type": "string"}, "sortable": {"type": "boolean"}}
        },
        "models.Participant": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "full_name": {"type": "string"},
                "email_on_review": {"type": "boolean"},
                "email_on_submission": {"type": "boolean"},
                "email_on_review_of_review": {"type": "boolean"},
                "take_quiz": {"type": "boolean"},
                "role": {"type": "object", "properties": {"id": {"type": "integer"}, "name": {"type": "string"}}},
                "parent": {"type": "object", "properties": {"id": {"type": "integer"}, "name": {"type": "string"}}},
                "institution": {"type": "object", "properties": {"id": {"type": "integer"}, "name": {"type": "string"}}}
            }
        },
        "models.TableView": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "schema_version": {"type": "integer"},
                "columns": {"type": "array", "items": {"$ref": "#/definitions/models.Column"}},
                "rows": {"type": "array", "items": {"$ref": "#/definitions/models.Participant"}},
                "column_visibility": {"type": "object", "additionalProperties": {"type": "boolean"}},
                "banners": {"type": "array", "items": {"$ref": "#/definitions/models.Banner"}}
            }
        },
        "services.AddParticipantInput": {
            "type": "object",
            "properties": {"login": {"type": "string"}, "role": {"type": "string", "enum": ["participant", "reader", "reviewer", "submitter", "mentor"]}}
        },
        "services.UpdateParticipantInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "full_name": {"type": "string"},
                "role": {"type": "string"},
                "parent_name": {"type": "string"},
                "email_on_review": {"type": "boolean"},
                "email_on_submission": {"type": "boolean"},
                "email_on_review_of_review": {"type": "boolean"},
                "take_quiz": {"type": "boolean"}
            }
        },
        "services.ExportResult": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "url": {"type": "string"},
                "etag": {"type": "string"},
                "count": {"type": "integer"},
                "exported_at": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Participants Admin API",
	Description:      "Add, edit, delete and view course participants.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

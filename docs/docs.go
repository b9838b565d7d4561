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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/api/applications/{jobId}": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["applications"],
                "summary": "Apply for a job",
                "parameters": [
                    {"type": "string", "description": "Job ID", "name": "jobId", "in": "path", "required": true},
                    {"type": "string", "description": "Cover letter", "name": "coverLetter", "in": "formData"},
                    {"type": "file", "description": "Resume document", "name": "resume", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.applicationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/applications/status/{applicationId}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["applications"],
                "summary": "Change the review status of an application",
                "parameters": [
                    {"type": "string", "description": "Application ID", "name": "applicationId", "in": "path", "required": true},
                    {"description": "New status and optional notes", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.updateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.applicationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/applications/job/{jobId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["applications"],
                "summary": "List the applications of a job",
                "parameters": [
                    {"type": "string", "description": "Job ID", "name": "jobId", "in": "path", "required": true},
                    {"type": "integer", "description": "Page size, 0 for all", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Rows to skip", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.applicationListResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/applications/my-applications": {
            "get": {
                "produces": ["application/json"],
                "tags": ["applications"],
                "summary": "List the caller's applications",
                "parameters": [
                    {"type": "integer", "description": "Page size, 0 for all", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Rows to skip", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.applicationListResponse"}}
                }
            }
        },
        "/api/applications/by-email/{email}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["applications"],
                "summary": "List the applications of the user registered under an email",
                "parameters": [
                    {"type": "string", "description": "Applicant email", "name": "email", "in": "path", "required": true},
                    {"type": "integer", "description": "Page size, 0 for all", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Rows to skip", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.applicationListResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/applications/resume/{applicationId}": {
            "get": {
                "produces": ["application/octet-stream"],
                "tags": ["applications"],
                "summary": "Download the resume attached to an application",
                "parameters": [
                    {"type": "string", "description": "Application ID", "name": "applicationId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Store connectivity check",
                "security": [],
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"}
                    }
                }
            }
        },
        "handler.updateStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["applied", "viewed", "shortlisted", "rejected", "hired"]},
                "notes": {"type": "string"}
            }
        },
        "handler.applicationResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "application": {"$ref": "#/definitions/model.Application"}
            }
        },
        "handler.applicationListResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "applications": {"type": "array", "items": {"$ref": "#/definitions/model.Application"}},
                "user": {"$ref": "#/definitions/model.UserSummary"}
            }
        },
        "model.Application": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "job_id": {"type": "string"},
                "applicant_id": {"type": "string"},
                "cover_letter": {"type": "string"},
                "resume": {
                    "type": "object",
                    "properties": {
                        "content_type": {"type": "string"},
                        "filename": {"type": "string"},
                        "size": {"type": "integer"}
                    }
                },
                "status": {"type": "string"},
                "notes": {"type": "string"},
                "applied_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"},
                "applicant": {"type": "object"},
                "job": {"type": "object"}
            }
        },
        "model.UserSummary": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"}
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
	Title:            "Job Application API",
	Description:      "Application lifecycle for the jobs platform: submissions, review status, listings and resume delivery.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

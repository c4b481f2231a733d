// Package swagger holds the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs/swagger
package swagger

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
        "/v1/profile": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Profile"],
                "summary": "Get profile",
                "responses": {"200": {"description": "OK"}}
            },
            "patch": {
                "produces": ["application/json"],
                "tags": ["Profile"],
                "summary": "Update profile",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/chat/messages": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Send a chat message",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/chat/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Get the open chat session",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/chat/sessions/{session_id}/messages": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "List session messages",
                "parameters": [{"type": "string", "name": "session_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/chat/sessions/{session_id}/end": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "End a chat session",
                "parameters": [{"type": "string", "name": "session_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/chat/reset": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Reset the conversation",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/chat/state": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Get conversation state",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/chat/state/schema": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "JSON schema of the conversation state",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/journal/entries": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Journal"],
                "summary": "Write a journal entry",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/journal/entries/recent": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Journal"],
                "summary": "List recent entries",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/journal/entries/{entry_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Journal"],
                "summary": "Get an entry",
                "parameters": [{"type": "string", "name": "entry_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/journal/entries/{entry_id}/follow-ups": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Journal"],
                "summary": "Answer follow-up questions",
                "parameters": [{"type": "string", "name": "entry_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/journal/follow-ups/{followup_id}/link": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Journal"],
                "summary": "Link a followup to its synthesized entry",
                "parameters": [{"type": "string", "name": "followup_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/journal/search": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Journal"],
                "summary": "Similarity search",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/journal/archive": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Journal"],
                "summary": "Archive old entries",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/journal/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Journal"],
                "summary": "Get the pending follow-up interview",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/meditation/stages": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Meditation"],
                "summary": "List meditation stages",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/meditation/stages/{stage_id}/content": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Meditation"],
                "summary": "Guided text for a stage",
                "parameters": [{"type": "string", "name": "stage_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/meditation/sessions": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Meditation"],
                "summary": "Start or resume a session",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/meditation/sessions/{session_id}/stage": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Meditation"],
                "summary": "Record stage progress",
                "parameters": [{"type": "string", "name": "session_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/meditation/sessions/{session_id}/complete": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Meditation"],
                "summary": "Complete a session",
                "parameters": [{"type": "string", "name": "session_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/meditation/sessions/{session_id}/reflections": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Meditation"],
                "summary": "Share a reflection",
                "parameters": [{"type": "string", "name": "session_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "get": {
                "produces": ["application/json"],
                "tags": ["Meditation"],
                "summary": "List reflections",
                "parameters": [{"type": "string", "name": "session_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
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
	Title:            "Mirror API",
	Description:      "Journal, mentor chat and guided meditation service",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

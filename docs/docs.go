// Package docs registers the OpenAPI description served under /swagger.
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
        "/stats": {
            "get": {"tags": ["stats"], "summary": "Today's metrics", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["stats"], "summary": "Update metrics", "consumes": ["application/json"], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/stats/water": {
            "post": {"tags": ["stats"], "summary": "Add or remove water", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/stats/caffeine": {
            "post": {"tags": ["stats"], "summary": "Add one caffeine dose", "responses": {"200": {"description": "OK"}}}
        },
        "/stats/sleep-window": {
            "put": {"tags": ["stats"], "summary": "Set bed and wake time", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/habits": {
            "get": {"tags": ["habits"], "summary": "List habits with weekly progress", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["habits"], "summary": "Create a habit", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/habits/{id}": {
            "get": {"tags": ["habits"], "summary": "Get a habit", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["habits"], "summary": "Update a habit", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["habits"], "summary": "Delete a habit", "description": "Requires confirm=true; otherwise answers 409.", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "boolean", "name": "confirm", "in": "query"}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}
        },
        "/habits/{id}/toggle": {
            "post": {"tags": ["habits"], "summary": "Toggle completion for a date", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/tasks": {
            "get": {"tags": ["tasks"], "summary": "List tasks", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["tasks"], "summary": "Create a task", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/tasks/day": {
            "get": {"tags": ["tasks"], "summary": "Tasks planned for a day", "parameters": [{"type": "string", "name": "date", "in": "query"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/tasks/{id}": {
            "get": {"tags": ["tasks"], "summary": "Get a task", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["tasks"], "summary": "Update a task", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["tasks"], "summary": "Delete a task", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/tasks/{id}/toggle": {
            "post": {"tags": ["tasks"], "summary": "Toggle completion", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/books": {
            "get": {"tags": ["books"], "summary": "List reading items", "parameters": [{"type": "string", "name": "status", "in": "query"}, {"type": "string", "name": "q", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["books"], "summary": "Add a reading item", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/books/monthly": {
            "get": {"tags": ["books"], "summary": "Monthly reading progress", "responses": {"200": {"description": "OK"}}}
        },
        "/books/goal": {
            "get": {"tags": ["books"], "summary": "Monthly reading goal", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["books"], "summary": "Set the monthly reading goal", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/books/{id}": {
            "get": {"tags": ["books"], "summary": "Get a reading item", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["books"], "summary": "Update a reading item", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["books"], "summary": "Delete a reading item", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "boolean", "name": "confirm", "in": "query"}], "responses": {"204": {"description": "No Content"}, "409": {"description": "Conflict"}}}
        },
        "/analytics/week": {
            "get": {"tags": ["analytics"], "summary": "Seven day window", "parameters": [{"type": "integer", "name": "offset", "in": "query"}, {"type": "string", "name": "metric", "in": "query"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/analytics/month": {
            "get": {"tags": ["analytics"], "summary": "Calendar month window", "parameters": [{"type": "integer", "name": "offset", "in": "query"}, {"type": "string", "name": "metric", "in": "query"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/analytics/year": {
            "get": {"tags": ["analytics"], "summary": "Calendar year window", "parameters": [{"type": "integer", "name": "offset", "in": "query"}, {"type": "string", "name": "metric", "in": "query"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/analytics/score": {
            "get": {"tags": ["analytics"], "summary": "Performance score", "responses": {"200": {"description": "OK"}}}
        },
        "/analytics/overview": {
            "get": {"tags": ["analytics"], "summary": "Score, reading progress and habits", "responses": {"200": {"description": "OK"}}}
        },
        "/insights/{variant}": {
            "post": {"tags": ["insights"], "summary": "Generate an insight", "parameters": [{"type": "string", "name": "variant", "in": "path", "required": true, "enum": ["wellness", "hydration", "sleep"]}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/insights/last": {
            "get": {"tags": ["insights"], "summary": "Last cached wellness insight", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/profile": {
            "get": {"tags": ["profile"], "summary": "Current profile", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "post": {"tags": ["profile"], "summary": "Log in with a display name", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}},
            "put": {"tags": ["profile"], "summary": "Update the profile", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["profile"], "summary": "Log out", "parameters": [{"type": "boolean", "name": "confirm", "in": "query"}], "responses": {"204": {"description": "No Content"}, "409": {"description": "Conflict"}}}
        },
        "/profile/categories": {
            "get": {"tags": ["profile"], "summary": "Habit categories", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["profile"], "summary": "Add a custom category", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/preferences": {
            "get": {"tags": ["profile"], "summary": "Display preferences", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["profile"], "summary": "Set display preferences", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/data": {
            "delete": {"tags": ["data"], "summary": "Wipe every stored document", "parameters": [{"type": "boolean", "name": "confirm", "in": "query"}], "responses": {"204": {"description": "No Content"}, "409": {"description": "Conflict"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Kanso Wellness API",
	Description:      "Local wellness tracker: daily metrics, habits, tasks, reading and insights.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

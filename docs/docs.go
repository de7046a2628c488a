// Package docs is the swaggo OpenAPI registration for the document shell API.
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
        "/documents": {
            "get": {
                "summary": "List documents matching the filter",
                "parameters": [
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "string", "name": "category", "in": "query"},
                    {"type": "string", "name": "tag", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "summary": "Upload PDF files under a category",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"type": "file", "name": "files", "in": "formData", "required": true},
                    {"type": "string", "name": "category", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "207": {"description": "Some files failed"},
                    "409": {"description": "Another operation is in progress"},
                    "502": {"description": "Every file failed"}
                }
            }
        },
        "/documents/{id}": {
            "get": {"summary": "Get a document", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"summary": "Update the description", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"summary": "Delete a document and its file", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/documents/{id}/tags": {"post": {"summary": "Add a tag", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/documents/{id}/tags/{tag}": {"delete": {"summary": "Remove a tag", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "string", "name": "tag", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/documents/{id}/links": {"post": {"summary": "Add a reference link", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}}}},
        "/documents/{id}/links/{linkId}": {"delete": {"summary": "Remove a reference link", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "string", "name": "linkId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/documents/{id}/open": {"post": {"summary": "Open the file", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "422": {"description": "No recorded path"}}}},
        "/documents/{id}/select": {"post": {"summary": "Select a document", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/selection": {
            "get": {"summary": "Get the selected document", "responses": {"200": {"description": "OK"}, "404": {"description": "Nothing selected"}}},
            "delete": {"summary": "Clear the selection", "responses": {"204": {"description": "No Content"}}}
        },
        "/document-number": {"get": {"summary": "Preview the next document number", "parameters": [{"type": "string", "name": "category", "in": "query", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/uploads": {
            "get": {"summary": "Get the pending upload", "responses": {"200": {"description": "OK"}, "404": {"description": "Nothing pending"}}},
            "post": {"summary": "Stage an upload batch", "consumes": ["multipart/form-data"], "responses": {"201": {"description": "Created"}}},
            "delete": {"summary": "Cancel the pending upload", "responses": {"204": {"description": "No Content"}}}
        },
        "/uploads/confirm": {"post": {"summary": "Upload the staged batch", "responses": {"201": {"description": "Created"}, "207": {"description": "Some files failed"}}}},
        "/categories": {"get": {"summary": "Categories with document counts", "responses": {"200": {"description": "OK"}}}},
        "/tags": {"get": {"summary": "Distinct tags", "responses": {"200": {"description": "OK"}}}},
        "/stats": {"get": {"summary": "Document count and total size", "responses": {"200": {"description": "OK"}}}},
        "/storage": {
            "get": {"summary": "Active and available storage strategies", "responses": {"200": {"description": "OK"}}},
            "put": {"summary": "Switch the storage strategy", "responses": {"200": {"description": "OK"}, "400": {"description": "Unknown strategy"}}}
        },
        "/health": {"get": {"summary": "Dependency health", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}},
        "/healthz": {"get": {"summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Document Shelf API",
	Description:      "Categorized PDF metadata organizer over browser, remote and local storage.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Package docs is generated by swaggo/swag from the handler annotations.
package docs

import "github.com/swaggo/swag"

// InstanceName is the swag instance the UI at /swagger/ reads.
const InstanceName = "attendance"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "url": "http://www.swagger.io/support",
            "email": "support@swagger.io"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object"}}
                }
            }
        },
        "/enroll": {
            "get": {
                "produces": ["text/html"],
                "tags": ["Student"],
                "summary": "Enrollment form with the location button",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/validate": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["text/html"],
                "tags": ["Student"],
                "summary": "Look the student up and show the verify page",
                "parameters": [
                    {"type": "string", "description": "Enrollment number", "name": "enrollment", "in": "formData", "required": true},
                    {"type": "string", "description": "Latitude", "name": "latitude", "in": "formData", "required": true},
                    {"type": "string", "description": "Longitude", "name": "longitude", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/submit_code": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["text/html"],
                "tags": ["Student"],
                "summary": "Check the lecture code",
                "parameters": [
                    {"type": "string", "description": "Verified ticket", "name": "ticket", "in": "formData", "required": true},
                    {"type": "string", "description": "Six digit lecture code", "name": "code", "in": "formData", "required": true}
                ],
                "responses": {
                    "303": {"description": "See Other"},
                    "401": {"description": "Unauthorized"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/lecture": {
            "get": {
                "produces": ["text/html"],
                "tags": ["Student"],
                "summary": "Lecture page with the mark attendance action",
                "parameters": [
                    {"type": "string", "description": "Admitted ticket", "name": "ticket", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/mark_attendance": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Student"],
                "summary": "Mark attendance",
                "parameters": [
                    {"type": "string", "description": "Admitted ticket", "name": "ticket", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "status is success or already", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/get_attendance": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Student"],
                "summary": "Attendance of the running lecture",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.AttendanceRecord"}}}
                }
            }
        },
        "/admin": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["text/html"],
                "tags": ["Admin"],
                "summary": "Lecture control page",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            },
            "post": {
                "security": [{"BasicAuth": []}],
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["Admin"],
                "summary": "Start a lecture unless one is already running",
                "parameters": [
                    {"type": "string", "description": "Lecture topic", "name": "topic", "in": "formData"},
                    {"type": "string", "description": "Lecture date", "name": "date", "in": "formData"}
                ],
                "responses": {"303": {"description": "See Other"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/invalidate": {
            "get": {
                "security": [{"BasicAuth": []}],
                "tags": ["Admin"],
                "summary": "End the running lecture",
                "responses": {"303": {"description": "See Other"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/reset": {
            "get": {
                "security": [{"BasicAuth": []}],
                "tags": ["Admin"],
                "summary": "Clear attendance of the running lecture",
                "responses": {"303": {"description": "See Other"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/download": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["Admin"],
                "summary": "Download attendance as XLSX",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/download.pdf": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/pdf"],
                "tags": ["Admin"],
                "summary": "Download attendance as PDF",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/ws/attendance": {
            "get": {
                "security": [{"BasicAuth": []}],
                "tags": ["Admin"],
                "summary": "Live attendance feed",
                "responses": {"101": {"description": "Switching Protocols"}, "401": {"description": "Unauthorized"}}
            }
        }
    },
    "definitions": {
        "models.AttendanceRecord": {
            "type": "object",
            "properties": {
                "Enrollment": {"type": "string"},
                "Name": {"type": "string"},
                "Latitude": {"type": "number"},
                "Longitude": {"type": "number"},
                "Section": {"type": "string"},
                "Course": {"type": "string"},
                "MarkedAt": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BasicAuth": {"type": "basic"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:7860",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Geo Attendance API",
	Description:      "Classroom check-in: students confirm their enrollment and location, enter the lecture code and mark attendance. Lecturers start lectures, watch attendance live and export it.",
	InfoInstanceName: InstanceName,
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Package docs holds the OpenAPI description served at /swagger/.
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
		"/auth/login": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Log in and start a session",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.SessionResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.LoginRequest"
						}
					}
				]
			}
		},
		"/auth/signup": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Register a student account",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.UserResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.StudentSignupRequest"
						}
					}
				]
			}
		},
		"/auth/admin/signup": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Register an admin account",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.UserResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.StaffSignupRequest"
						}
					}
				]
			}
		},
		"/auth/advisor/signup": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Register an advisor account",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.UserResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.StaffSignupRequest"
						}
					}
				]
			}
		},
		"/auth/logout": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "End the session",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/auth/session": {
			"get": {
				"tags": [
					"auth"
				],
				"summary": "Describe the current session",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.SessionResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		},
		"/courses": {
			"get": {
				"tags": [
					"courses"
				],
				"summary": "List the course catalog",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/model.Course"
							}
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		},
		"/student/register-courses": {
			"post": {
				"tags": [
					"student"
				],
				"summary": "Register for courses",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.RegisterCoursesResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.RegisterCoursesRequest"
						}
					}
				]
			}
		},
		"/student/courses": {
			"get": {
				"tags": [
					"student"
				],
				"summary": "List my registered courses",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/service.Enrollment"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		},
		"/student/messages": {
			"get": {
				"tags": [
					"messages"
				],
				"summary": "List my messages",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.ConversationResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"tags": [
					"messages"
				],
				"summary": "Send a message",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/model.Message"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.SendMessageRequest"
						}
					}
				]
			}
		},
		"/advisor/messages": {
			"get": {
				"tags": [
					"messages"
				],
				"summary": "List my messages",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.ConversationResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"tags": [
					"messages"
				],
				"summary": "Send a message",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/model.Message"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.SendMessageRequest"
						}
					}
				]
			}
		},
		"/admin/courses": {
			"get": {
				"tags": [
					"admin"
				],
				"summary": "List the course catalog",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/model.Course"
							}
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"tags": [
					"admin"
				],
				"summary": "Add a course to the catalog",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/model.Course"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.CreateCourseRequest"
						}
					}
				]
			}
		},
		"/admin/courses/import": {
			"post": {
				"tags": [
					"admin"
				],
				"summary": "Import a course catalog",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.ImportCoursesResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.ImportCoursesRequest"
						}
					}
				]
			}
		},
		"/admin/messages": {
			"get": {
				"tags": [
					"admin"
				],
				"summary": "List recent messages across the platform",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/model.Message"
							}
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "Maximum messages (default 20, max 100)",
						"name": "limit",
						"in": "query"
					}
				]
			}
		},
		"/students": {
			"get": {
				"tags": [
					"staff"
				],
				"summary": "List students with their registered courses",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/service.StudentSummary"
							}
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"errors.ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				},
				"code": {
					"type": "string"
				}
			}
		},
		"auth.Identity": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"role": {
					"type": "string"
				},
				"matric_number": {
					"type": "string"
				}
			}
		},
		"model.Course": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"code": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"credits": {
					"type": "integer"
				},
				"created_at": {
					"type": "string"
				},
				"updated_at": {
					"type": "string"
				}
			}
		},
		"model.Registration": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"student_id": {
					"type": "string"
				},
				"course_id": {
					"type": "string"
				},
				"created_at": {
					"type": "string"
				},
				"course": {
					"$ref": "#/definitions/model.Course"
				}
			}
		},
		"model.User": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"role": {
					"type": "string"
				},
				"matric_number": {
					"type": "string"
				},
				"created_at": {
					"type": "string"
				}
			}
		},
		"model.Message": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"sender_id": {
					"type": "string"
				},
				"recipient_id": {
					"type": "string"
				},
				"content": {
					"type": "string"
				},
				"created_at": {
					"type": "string"
				},
				"sender": {
					"$ref": "#/definitions/model.User"
				},
				"recipient": {
					"$ref": "#/definitions/model.User"
				}
			}
		},
		"handler.LoginRequest": {
			"type": "object",
			"required": [
				"email",
				"password"
			],
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"userType": {
					"type": "string",
					"enum": [
						"student",
						"admin",
						"advisor"
					]
				}
			}
		},
		"handler.StudentSignupRequest": {
			"type": "object",
			"required": [
				"name",
				"email",
				"password",
				"matricNumber"
			],
			"properties": {
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"matricNumber": {
					"type": "string"
				}
			}
		},
		"handler.StaffSignupRequest": {
			"type": "object",
			"required": [
				"name",
				"email",
				"password",
				"adminCode"
			],
			"properties": {
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"adminCode": {
					"type": "string"
				}
			}
		},
		"handler.SessionResponse": {
			"type": "object",
			"properties": {
				"user": {
					"$ref": "#/definitions/auth.Identity"
				},
				"expires_at": {
					"type": "string"
				}
			}
		},
		"handler.UserResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"user": {
					"$ref": "#/definitions/auth.Identity"
				}
			}
		},
		"handler.RegisterCoursesRequest": {
			"type": "object",
			"properties": {
				"courseIds": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		},
		"handler.RegisterCoursesResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"registrations": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/model.Registration"
					}
				}
			}
		},
		"handler.SendMessageRequest": {
			"type": "object",
			"required": [
				"recipientId",
				"content"
			],
			"properties": {
				"recipientId": {
					"type": "string"
				},
				"content": {
					"type": "string"
				}
			}
		},
		"handler.ConversationResponse": {
			"type": "object",
			"properties": {
				"messages": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/model.Message"
					}
				},
				"contacts": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/model.User"
					}
				}
			}
		},
		"handler.CreateCourseRequest": {
			"type": "object",
			"required": [
				"code",
				"title",
				"credits"
			],
			"properties": {
				"code": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"credits": {
					"type": "integer",
					"minimum": 1,
					"maximum": 6
				}
			}
		},
		"catalog.Entry": {
			"type": "object",
			"properties": {
				"code": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"credits": {
					"type": "integer"
				}
			}
		},
		"handler.ImportCoursesRequest": {
			"type": "object",
			"properties": {
				"courses": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/catalog.Entry"
					}
				},
				"url": {
					"type": "string"
				}
			}
		},
		"handler.ImportCoursesResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"count": {
					"type": "integer"
				}
			}
		},
		"service.Enrollment": {
			"type": "object",
			"properties": {
				"registrations": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/model.Registration"
					}
				},
				"total_credits": {
					"type": "integer"
				},
				"credit_ceiling": {
					"type": "integer"
				}
			}
		},
		"service.CourseSummary": {
			"type": "object",
			"properties": {
				"code": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"credits": {
					"type": "integer"
				}
			}
		},
		"service.StudentSummary": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"matric_number": {
					"type": "string"
				},
				"created_at": {
					"type": "string"
				},
				"courses": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/service.CourseSummary"
					}
				},
				"total_credits": {
					"type": "integer"
				}
			}
		}
	},
	"securityDefinitions": {
		"SessionCookie": {
			"type": "apiKey",
			"name": "session",
			"in": "cookie"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:		  "1.0",
	Host:			 "localhost:8080",
	BasePath:		 "/api",
	Schemes:		  []string{},
	Title:			"Academic Advising API",
	Description:	  "Course registration under a 24 credit limit, student and advisor messaging, and catalog administration. Sessions live in the HttpOnly session cookie.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:		"{{",
	RightDelim:	   "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

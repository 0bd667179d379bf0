package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "studentools API",
        "description": "Student utilities: timetable generation, GPA, citations, unit conversion, feedback",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Timetable", "description": "Automatic timetable generation and export"},
        {"name": "GPA", "description": "Credit-weighted GPA calculation"},
        {"name": "Citations", "description": "Citation formatting from DOI, URL, or title"},
        {"name": "Units", "description": "Measurement unit conversion"},
        {"name": "Feedback", "description": "User feedback intake"}
    ],
    "paths": {
        "/timetable/generate": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Generate a weekly timetable",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload"},
                    "422": {"description": "Search aborted"}
                }
            }
        },
        "/timetable/conflicts": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Detect overlaps among manually entered courses",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ConflictCheckRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetable/proposals/{id}/export": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Export a stored timetable proposal",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["pdf", "csv", "ics", "png"]}
                ],
                "responses": {
                    "200": {"description": "Rendered file"},
                    "404": {"description": "Proposal not found or expired"}
                }
            }
        },
        "/gpa/calculate": {
            "post": {
                "tags": ["GPA"],
                "summary": "Compute a credit-weighted GPA",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GPARequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/gpa/scales": {
            "get": {
                "tags": ["GPA"],
                "summary": "List supported grading scales",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/citations/generate": {
            "post": {
                "tags": ["Citations"],
                "summary": "Format a citation from a DOI, URL, or paper title",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CitationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No matching publication"},
                    "502": {"description": "CrossRef unavailable"}
                }
            }
        },
        "/units/convert": {
            "post": {
                "tags": ["Units"],
                "summary": "Convert a value between measurement units",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ConvertRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/units/catalog": {
            "get": {
                "tags": ["Units"],
                "summary": "List supported units per category",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/feedback": {
            "post": {
                "tags": ["Feedback"],
                "summary": "Submit user feedback",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FeedbackRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "GenerateTimetableRequest": {
            "type": "object",
            "properties": {
                "courses": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/CourseRequest"}
                },
                "constraints": {"$ref": "#/definitions/TimeConstraintsRequest"},
                "fixedEvents": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/FixedEventRequest"}
                },
                "preferences": {"$ref": "#/definitions/TimetablePreferences"}
            },
            "required": ["courses", "constraints"]
        },
        "CourseRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "duration": {"type": "integer"},
                "preferredDays": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["name", "duration"]
        },
        "TimeConstraintsRequest": {
            "type": "object",
            "properties": {
                "startTime": {"type": "string"},
                "endTime": {"type": "string"},
                "freePeriods": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/FreePeriodRequest"}
                }
            },
            "required": ["startTime", "endTime"]
        },
        "FreePeriodRequest": {
            "type": "object",
            "properties": {
                "day": {"type": "string"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"}
            },
            "required": ["day", "startTime", "endTime"]
        },
        "FixedEventRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "day": {"type": "string"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"}
            },
            "required": ["name", "day", "startTime", "endTime"]
        },
        "TimetablePreferences": {
            "type": "object",
            "properties": {
                "compactSchedule": {"type": "boolean"},
                "preferredDays": {"type": "array", "items": {"type": "string"}},
                "maxHoursPerDay": {"type": "integer"},
                "minBreakDuration": {"type": "integer"},
                "maxSessionDuration": {"type": "integer"}
            }
        },
        "ConflictCheckRequest": {
            "type": "object",
            "properties": {
                "courses": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/ManualCourseRequest"}
                }
            },
            "required": ["courses"]
        },
        "ManualCourseRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "days": {"type": "array", "items": {"type": "string"}},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"}
            },
            "required": ["name", "days", "startTime", "endTime"]
        },
        "GPARequest": {
            "type": "object",
            "properties": {
                "courses": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/GPACourse"}
                },
                "scaleType": {"type": "string", "enum": ["4.0", "5.0"]}
            },
            "required": ["courses"]
        },
        "GPACourse": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "grade": {"type": "string"},
                "credits": {"type": "number"}
            },
            "required": ["grade", "credits"]
        },
        "CitationRequest": {
            "type": "object",
            "properties": {
                "input": {"type": "string"},
                "style": {"type": "string", "enum": ["apa", "ieee", "harvard"]},
                "sourceType": {"type": "string", "enum": ["journal", "website", "book"]},
                "metadata": {"type": "object"}
            },
            "required": ["input"]
        },
        "ConvertRequest": {
            "type": "object",
            "properties": {
                "category": {"type": "string", "enum": ["length", "weight", "temperature"]},
                "value": {"type": "number"},
                "fromUnit": {"type": "string"},
                "toUnit": {"type": "string"}
            },
            "required": ["category", "fromUnit", "toUnit"]
        },
        "FeedbackRequest": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["bug", "feature", "general", "other"]},
                "message": {"type": "string"},
                "email": {"type": "string"}
            },
            "required": ["message"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}

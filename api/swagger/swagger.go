package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Gradebook API",
        "description": "Grade computation engine: subject totals, grade points, semester GPA and CGPA",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Grades", "description": "Student grade records and computation"},
        {"name": "Grade Config", "description": "Assessment weighting policy"},
        {"name": "Students", "description": "Student directory"},
        {"name": "System", "description": "Health and metrics"}
    ],
    "paths": {
        "/grades/config": {
            "get": {
                "tags": ["Grade Config"],
                "summary": "Get grading configuration",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/GradeConfig"}}
                }
            },
            "put": {
                "tags": ["Grade Config"],
                "summary": "Replace grading configuration",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GradeConfig"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/GradeConfig"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grades/config/normalize": {
            "post": {
                "tags": ["Grade Config"],
                "summary": "Rescale weights to sum to 1",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GradeConfig"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/GradeConfig"}}
                }
            }
        },
        "/grades/compute": {
            "post": {
                "tags": ["Grades"],
                "summary": "Compute a record without saving it",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentGradesRecord"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/StudentGradesRecord"}}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Student"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/grades": {
            "get": {
                "tags": ["Grades"],
                "summary": "Get a student's grade record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/StudentGradesRecord"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Grades"],
                "summary": "Replace a student's grade record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentGradesRecord"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/StudentGradesRecord"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "patch": {
                "tags": ["Grades"],
                "summary": "Apply editor operations and save",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GradeEditRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/StudentGradesRecord"}},
                    "400": {"description": "Invalid edit", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/grades/seed": {
            "post": {
                "tags": ["Grades"],
                "summary": "Seed the demonstration record when none exists",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/StudentGradesRecord"}}
                }
            }
        },
        "/students/{id}/grades/semesters/{number}": {
            "get": {
                "tags": ["Grades"],
                "summary": "Get one semester by number",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "number", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SemesterGrades"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/grades/export": {
            "get": {
                "tags": ["Grades"],
                "summary": "Download a transcript",
                "produces": ["text/csv", "application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf", "xlsx"]}
                ],
                "responses": {
                    "200": {"description": "File"}
                }
            }
        },
        "/system/metrics": {
            "get": {
                "tags": ["System"],
                "summary": "Metrics summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "GradeConfig": {
            "type": "object",
            "properties": {
                "midtermWeights": {"type": "array", "items": {"type": "number"}},
                "endSemWeight": {"type": "number"}
            },
            "required": ["midtermWeights", "endSemWeight"]
        },
        "AssessmentBreakdown": {
            "type": "object",
            "properties": {
                "midterms": {"type": "array", "items": {"type": "number"}},
                "endSem": {"type": "number"}
            }
        },
        "SubjectGrade": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "name": {"type": "string"},
                "credits": {"type": "number"},
                "assessments": {"$ref": "#/definitions/AssessmentBreakdown"},
                "totalScore": {"type": "number"},
                "gradePoints": {"type": "number"}
            }
        },
        "SemesterGrades": {
            "type": "object",
            "properties": {
                "semesterNumber": {"type": "integer"},
                "subjects": {"type": "array", "items": {"$ref": "#/definitions/SubjectGrade"}},
                "semesterGPA": {"type": "number"}
            }
        },
        "StudentGradesRecord": {
            "type": "object",
            "properties": {
                "userId": {"type": "string"},
                "semesters": {"type": "array", "items": {"$ref": "#/definitions/SemesterGrades"}},
                "cgpa": {"type": "number"}
            }
        },
        "GradeEdit": {
            "type": "object",
            "properties": {
                "op": {"type": "string", "enum": ["add_semester", "remove_semester", "add_subject", "remove_subject", "update_subject", "set_assessment"]},
                "semesterIndex": {"type": "integer"},
                "subjectIndex": {"type": "integer"},
                "code": {"type": "string"},
                "name": {"type": "string"},
                "credits": {"type": "number"},
                "kind": {"type": "string", "enum": ["mt1", "mt2", "end"]},
                "value": {"type": "number"}
            },
            "required": ["op"]
        },
        "GradeEditRequest": {
            "type": "object",
            "properties": {
                "edits": {"type": "array", "items": {"$ref": "#/definitions/GradeEdit"}}
            },
            "required": ["edits"]
        },
        "Student": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "role": {"type": "string"},
                "isActive": {"type": "boolean"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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

package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Academia API",
        "description": "API de gestão de cursos técnicos, alunos, matrículas e presenças",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Registro e autenticação de usuários"},
        {"name": "Courses", "description": "Catálogo de cursos com módulos e células"},
        {"name": "Modules", "description": "Módulos e matrículas de alunos"},
        {"name": "Cells", "description": "Células e controle de presença"},
        {"name": "Students", "description": "Cadastro e progresso de alunos"},
        {"name": "Reports", "description": "Relatórios assíncronos de presença e progresso"}
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email já cadastrado"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Credenciais inválidas"}
                }
            }
        },
        "/cursos": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Create course with nested modules and cells",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/cursos/{id}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Curso não encontrado"}
                }
            },
            "put": {
                "tags": ["Courses"],
                "summary": "Replace course hierarchy",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Courses"],
                "summary": "Delete course and dependents",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/modulos": {
            "get": {
                "tags": ["Modules"],
                "summary": "List modules",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/modulos/{id}": {
            "get": {
                "tags": ["Modules"],
                "summary": "Get module",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/modulos/{id}/habilitar": {
            "put": {
                "tags": ["Modules"],
                "summary": "Enable module for student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EnableModuleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/modulos/{id}/concluir": {
            "put": {
                "tags": ["Modules"],
                "summary": "Complete module for student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CompleteModuleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Matrícula não encontrada"}
                }
            }
        },
        "/celulas": {
            "get": {
                "tags": ["Cells"],
                "summary": "List cells",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/celulas/{id}": {
            "get": {
                "tags": ["Cells"],
                "summary": "Get cell",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Cells"],
                "summary": "Update cell",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CellInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Célula não encontrada"}
                }
            }
        },
        "/celulas/modulo/{moduloId}": {
            "get": {
                "tags": ["Cells"],
                "summary": "List cells of a module",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "moduloId", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/celulas/{id}/presencas": {
            "get": {
                "tags": ["Cells"],
                "summary": "List attendances of a cell",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Cells"],
                "summary": "Register attendance",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AttendanceInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/alunos": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Create student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "CPF já cadastrado"}
                }
            }
        },
        "/alunos/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get student with enrollments",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Aluno não encontrado"}
                }
            },
            "put": {
                "tags": ["Students"],
                "summary": "Update student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete student and dependents",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/alunos/{id}/progresso": {
            "put": {
                "tags": ["Students"],
                "summary": "Bulk update module progress",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProgressRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/relatorios": {
            "post": {
                "tags": ["Reports"],
                "summary": "Queue report generation",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateReportRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/relatorios/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Check report status",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Acesso negado"},
                    "404": {"description": "Relatório não encontrado"}
                }
            }
        },
        "/relatorios/download/{token}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download generated report",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Arquivo do relatório"},
                    "403": {"description": "Link de download inválido ou expirado"}
                }
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "nome": {"type": "string"},
                "email": {"type": "string"},
                "senha": {"type": "string"},
                "role": {"type": "string", "enum": ["ADMIN", "INSTRUTOR", "ALUNO"]}
            },
            "required": ["nome", "email", "senha"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "senha": {"type": "string"}
            },
            "required": ["email", "senha"]
        },
        "CourseInput": {
            "type": "object",
            "properties": {
                "nome": {"type": "string"},
                "descricao": {"type": "string"},
                "cargaHorariaTotal": {"type": "number"},
                "preRequisitos": {"type": "string"},
                "materialNecessario": {"type": "string"},
                "modulos": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/ModuleInput"}
                }
            },
            "required": ["nome", "cargaHorariaTotal"]
        },
        "ModuleInput": {
            "type": "object",
            "properties": {
                "nome": {"type": "string"},
                "descricao": {"type": "string"},
                "cargaHoraria": {"type": "number"},
                "celulas": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/CellInput"}
                }
            },
            "required": ["nome"]
        },
        "CellInput": {
            "type": "object",
            "properties": {
                "nome": {"type": "string"},
                "descricao": {"type": "string"},
                "cargaHoraria": {"type": "number"},
                "siglaTecnica": {"type": "string"}
            },
            "required": ["nome"]
        },
        "StudentInput": {
            "type": "object",
            "properties": {
                "nome": {"type": "string"},
                "cpf": {"type": "string"},
                "email": {"type": "string"},
                "telefone": {"type": "string"},
                "idade": {"type": "integer"},
                "usaOculos": {"type": "boolean"},
                "destroCanhoto": {"type": "string", "enum": ["DESTRO", "CANHOTO"]},
                "cursoId": {"type": "integer"},
                "modulos": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/EnrollmentInput"}
                }
            },
            "required": ["nome", "cpf", "cursoId"]
        },
        "EnrollmentInput": {
            "type": "object",
            "properties": {
                "moduloId": {"type": "integer"},
                "dataInicio": {"type": "string"},
                "dataTermino": {"type": "string"}
            },
            "required": ["moduloId"]
        },
        "EnableModuleRequest": {
            "type": "object",
            "properties": {
                "alunoId": {"type": "integer"},
                "status": {"type": "string", "enum": ["PENDENTE", "EM_ANDAMENTO", "CONCLUIDO"]}
            },
            "required": ["alunoId"]
        },
        "CompleteModuleRequest": {
            "type": "object",
            "properties": {
                "alunoId": {"type": "integer"},
                "dataTermino": {"type": "string"}
            },
            "required": ["alunoId"]
        },
        "ProgressRequest": {
            "type": "object",
            "properties": {
                "modulosStatus": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/ProgressItem"}
                }
            },
            "required": ["modulosStatus"]
        },
        "ProgressItem": {
            "type": "object",
            "properties": {
                "moduloId": {"type": "integer"},
                "status": {"type": "string", "enum": ["PENDENTE", "EM_ANDAMENTO", "CONCLUIDO"]},
                "dataInicio": {"type": "string"},
                "dataTermino": {"type": "string"}
            },
            "required": ["moduloId", "status"]
        },
        "AttendanceInput": {
            "type": "object",
            "properties": {
                "alunoId": {"type": "integer"},
                "presente": {"type": "boolean"},
                "horasFeitas": {"type": "number"}
            },
            "required": ["alunoId"]
        },
        "CreateReportRequest": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["attendance", "progress"]},
                "cursoId": {"type": "integer"},
                "alunoId": {"type": "integer"},
                "format": {"type": "string", "enum": ["csv", "pdf"]}
            },
            "required": ["type", "cursoId", "format"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "totalCount": {"type": "integer"}
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

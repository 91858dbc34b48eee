// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import "net/http"

// Kind is a machine-readable error category. Handlers map kinds to HTTP
// status codes; clients branch on the kind, never on the message text.
type Kind string

const (
	KindValidacion    Kind = "validacion"
	KindNoEncontrado  Kind = "no_encontrado"
	KindConflicto     Kind = "conflicto"
	KindEstadoInvalido Kind = "estado_invalido"
	KindNoAutorizado  Kind = "no_autorizado"
	KindInterno       Kind = "interno"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Kind   Kind   `json:"kind"`
	Detail string `json:"detail"`
}

func (e *APIError) Error() string { return e.Detail }

func New(kind Kind, msg string) *APIError {
	return &APIError{Kind: kind, Detail: msg}
}

func Validacion(msg string) *APIError     { return New(KindValidacion, msg) }
func NoEncontrado(msg string) *APIError   { return New(KindNoEncontrado, msg) }
func Conflicto(msg string) *APIError      { return New(KindConflicto, msg) }
func EstadoInvalido(msg string) *APIError { return New(KindEstadoInvalido, msg) }
func NoAutorizado(msg string) *APIError   { return New(KindNoAutorizado, msg) }

// Interno never carries the underlying error text.
func Interno() *APIError { return New(KindInterno, "Error interno del servidor") }

// Status maps the kind to its HTTP status code.
func (e *APIError) Status() int {
	switch e.Kind {
	case KindValidacion, KindEstadoInvalido:
		return http.StatusBadRequest
	case KindNoEncontrado:
		return http.StatusNotFound
	case KindConflicto:
		return http.StatusConflict
	case KindNoAutorizado:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Kind   Kind              `json:"kind"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Kind: KindValidacion, Detail: "Error de validacion", Fields: fields}
}

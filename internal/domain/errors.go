package domain

import (
	"errors"
	"fmt"
)

// Kind clasifica los errores de dominio. Es un conjunto cerrado: la capa HTTP
// traduce cada Kind a un status una sola vez (ver interfaces/http/errors.go).
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindAlreadyExists
	KindNotEmpty
	KindInvalidInput
	KindUnauthorized
	KindForbidden
	KindMalformed
)

// String devuelve el código estable usado en el sobre de error HTTP.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NOT_FOUND"
	case KindAlreadyExists:
		return "ALREADY_EXISTS"
	case KindNotEmpty:
		return "NOT_EMPTY"
	case KindInvalidInput:
		return "INVALID_INPUT"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindForbidden:
		return "FORBIDDEN"
	case KindMalformed:
		return "MALFORMED_REQUEST"
	default:
		return "INTERNAL"
	}
}

// Error es un error de dominio con clase y mensaje apto para el cliente.
// Err conserva la causa (si existe) para logs; nunca se expone por HTTP.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is compara por Kind, de modo que errors.Is(err, ErrNotFound) funciona con
// cualquier error de dominio de esa clase, sin importar el mensaje.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinelas por clase (sin dependencias externas).
var (
	ErrNotFound     = &Error{Kind: KindNotFound, Message: "recurso no encontrado"}
	ErrDuplicate    = &Error{Kind: KindAlreadyExists, Message: "recurso duplicado"}
	ErrNotEmpty     = &Error{Kind: KindNotEmpty, Message: "el recurso tiene elementos asociados"}
	ErrInvalidInput = &Error{Kind: KindInvalidInput, Message: "entrada inválida"}
	ErrUnauthorized = &Error{Kind: KindUnauthorized, Message: "no autorizado"}
	ErrForbidden    = &Error{Kind: KindForbidden, Message: "acceso denegado"}
	ErrMalformed    = &Error{Kind: KindMalformed, Message: "petición mal formada"}
)

// NewError construye un error de dominio con mensaje formateado.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf atajo para KindNotFound.
func NotFoundf(format string, args ...any) *Error {
	return NewError(KindNotFound, format, args...)
}

// AlreadyExistsf atajo para KindAlreadyExists.
func AlreadyExistsf(format string, args ...any) *Error {
	return NewError(KindAlreadyExists, format, args...)
}

// InvalidInputf atajo para KindInvalidInput.
func InvalidInputf(format string, args ...any) *Error {
	return NewError(KindInvalidInput, format, args...)
}

// Malformedf atajo para KindMalformed.
func Malformedf(format string, args ...any) *Error {
	return NewError(KindMalformed, format, args...)
}

// KindOf devuelve la clase de err; KindInternal si no es un error de dominio.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// MessageOf devuelve el mensaje de dominio de err, o "" si no es de dominio.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}

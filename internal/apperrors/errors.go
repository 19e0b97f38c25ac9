// Package apperrors defines the closed set of domain error kinds shared by
// every service layer. Services return these as-is; anything else is wrapped
// at the service boundary so storage internals never reach the transport.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindAccessDenied
	KindConflict
	KindTimeout
	KindUnavailable
	KindCodeGeneration
)

// Machine-readable codes, stable across releases.
const (
	CodeInvalidInput     = "INVALID_INPUT"
	CodeNotFound         = "URL_NOT_FOUND"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeAccessDenied     = "ACCESS_DENIED"
	CodeConflict         = "CODE_ALREADY_EXISTS"
	CodeTimeout          = "DATABASE_TIMEOUT"
	CodeUnavailable      = "SERVICE_UNAVAILABLE"
	CodeGenerationFailed = "CODE_GENERATION_FAILED"
	CodeInternal         = "INTERNAL_ERROR"
)

type Error struct {
	Kind    Kind
	Code    string
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

// Is lets errors.Is match two domain errors by kind, so sentinel-style
// comparisons like errors.Is(err, apperrors.NotFound("")) work in tests.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Code: CodeInvalidInput, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Code: CodeNotFound, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Code: CodeUnauthorized, Message: message}
}

func AccessDenied(message string) *Error {
	return &Error{Kind: KindAccessDenied, Code: CodeAccessDenied, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Code: CodeConflict, Message: message}
}

func Timeout(operation string) *Error {
	return &Error{Kind: KindTimeout, Code: CodeTimeout, Message: operation + " timed out"}
}

func Unavailable(message string) *Error {
	return &Error{Kind: KindUnavailable, Code: CodeUnavailable, Message: message}
}

func CodeGeneration(message string) *Error {
	return &Error{Kind: KindCodeGeneration, Code: CodeGenerationFailed, Message: message}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Code: CodeInternal, Message: message, Err: err}
}

// KindOf reports the kind carried by err, or KindInternal for any error
// that did not originate from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsDomain reports whether err is a classified domain error.
func IsDomain(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// HTTPStatus maps an error kind to its fixed transport status.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindAccessDenied:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindTimeout, KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

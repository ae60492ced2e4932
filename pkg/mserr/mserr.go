package mserr

import (
	"errors"
	"fmt"
)

// Code represents a stable error category that callers can switch on.
type Code string

const (
	CodeUnknown          Code = "unknown"
	CodeUnauthorized     Code = "unauthorized"
	CodePermissionDenied Code = "permission_denied"
	CodeNotFound         Code = "not_found"
	CodeValidation       Code = "validation"
	CodeUpstream         Code = "upstream"
	CodeConflict         Code = "conflict"
)

// FieldError names one rejected input field.
type FieldError struct {
	Field   string
	Message string
}

// Error is a simple value type that carries a Code plus the underlying error.
// Validation errors additionally carry per-field messages.
type Error struct {
	Code   Code
	Fields []FieldError
	err    error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.err == nil {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Message returns the wrapped error's text without the code prefix.
func (e *Error) Message() string {
	if e == nil || e.err == nil {
		return ""
	}
	return e.err.Error()
}

// New wraps an error with the provided code. If err is nil a nil is returned.
func New(code Code, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, err: err}
}

// PermissionDenied builds a permission error with a user-facing message.
func PermissionDenied(msg string) error {
	return &Error{Code: CodePermissionDenied, err: errors.New(msg)}
}

// NotFound builds a not-found error for the named resource kind.
func NotFound(kind string) error {
	return &Error{Code: CodeNotFound, err: fmt.Errorf("%s not found", kind)}
}

// Conflict reports a request that is valid but clashes with the resource's
// current state.
func Conflict(msg string) error {
	return &Error{Code: CodeConflict, err: errors.New(msg)}
}

// Unauthorized builds an error for requests without a usable principal.
func Unauthorized(msg string) error {
	return &Error{Code: CodeUnauthorized, err: errors.New(msg)}
}

// Validation builds a validation error from one or more field errors.
func Validation(fields ...FieldError) error {
	return &Error{Code: CodeValidation, Fields: fields, err: errors.New("validation failed")}
}

// Upstream wraps a failure from an external service.
func Upstream(service string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: CodeUpstream, err: fmt.Errorf("%s: %w", service, err)}
}

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode helps callers compare codes without type assertions.
func IsCode(err error, code Code) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) == code
}

// Package errors provides coded errors for the clipgen service. Codes map
// the failure taxonomy of the video generation pipeline onto HTTP statuses.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents an error code for categorization.
type Code string

const (
	CodeInternal      Code = "INTERNAL_ERROR"
	CodeValidation    Code = "VALIDATION_ERROR"
	CodeNotFound      Code = "NOT_FOUND"
	CodeAlreadyExists Code = "ALREADY_EXISTS"
	// CodeUpload marks a failure to persist bytes to object storage. It is
	// request-level for the uploaded image and per-variant for videos.
	CodeUpload Code = "UPLOAD_FAILED"
	// CodeProvider marks a failed generation call: non-2xx response, wrong
	// content type, or transport error.
	CodeProvider    Code = "PROVIDER_ERROR"
	CodeUnavailable Code = "UNAVAILABLE"
)

// Error is a coded error with optional operation and context fields.
type Error struct {
	Code    Code
	Message string
	// Op is the operation that failed (e.g. "worker.generate").
	Op     string
	Err    error
	Fields map[string]any
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	if e.Code != "" {
		b.WriteString("[")
		b.WriteString(string(e.Code))
		b.WriteString("] ")
	}
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WithField adds a context field to the error.
func (e *Error) WithField(key string, value any) *Error {
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	e.Fields[key] = value
	return e
}

// HTTPStatus returns the appropriate HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeValidation:
		return 400
	case CodeNotFound:
		return 404
	case CodeAlreadyExists:
		return 409
	case CodeUpload, CodeProvider:
		return 502
	case CodeUnavailable:
		return 503
	default:
		return 500
	}
}

// New creates a new error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a new error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with additional context, preserving the code
// when the cause is already a coded error.
func Wrap(err error, op string, message string) *Error {
	if err == nil {
		return nil
	}
	code := CodeInternal
	var e *Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return &Error{Code: code, Message: message, Op: op, Err: err}
}

// WrapWithCode wraps an error with a specific code.
func WrapWithCode(err error, code Code, op string, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Op: op, Err: err}
}

// NotFound creates a not found error.
func NotFound(resource string, id string) *Error {
	return New(CodeNotFound, fmt.Sprintf("%s not found: %s", resource, id)).
		WithField("resource", resource).
		WithField("id", id)
}

// AlreadyExists creates an already exists error.
func AlreadyExists(resource string, id string) *Error {
	return New(CodeAlreadyExists, fmt.Sprintf("%s already exists: %s", resource, id)).
		WithField("resource", resource).
		WithField("id", id)
}

// Validation creates a validation error.
func Validation(message string) *Error {
	return New(CodeValidation, message)
}

// Upload creates an upload failure error.
func Upload(message string) *Error {
	return New(CodeUpload, message)
}

// Provider creates a generation provider error.
func Provider(message string) *Error {
	return New(CodeProvider, message)
}

// Providerf creates a generation provider error with a formatted message.
func Providerf(format string, args ...any) *Error {
	return Newf(CodeProvider, format, args...)
}

// GetCode extracts the error code from an error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// GetHTTPStatus extracts the HTTP status from an error.
func GetHTTPStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatus()
	}
	return 500
}

// GetFields extracts context fields from an error.
func GetFields(err error) map[string]any {
	var e *Error
	if errors.As(err, &e) && e.Fields != nil {
		return e.Fields
	}
	return nil
}

// IsCode checks if an error has a specific code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return IsCode(err, CodeNotFound)
}

// IsAlreadyExists checks if an error is an already exists error.
func IsAlreadyExists(err error) bool {
	return IsCode(err, CodeAlreadyExists)
}

// As is a convenience wrapper for errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is is a convenience wrapper for errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Package apperr defines the error taxonomy shared by services and handlers.
// Expected business failures travel as *Error values; anything else is
// treated as an internal failure at the HTTP boundary.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error
type Kind string

const (
	KindNotFound      Kind = "NOT_FOUND"
	KindValidation    Kind = "VALIDATION_FAILED"
	KindConflict      Kind = "CONFLICT"
	KindInvalidState  Kind = "INVALID_STATE"
	KindInvalidTenant Kind = "INVALID_TENANT"
	KindUnauthorized  Kind = "UNAUTHORIZED"
)

// Error is an expected business failure with a user-facing message.
// Fields carries per-field violations for API consumers; Message is the
// first violated rule.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause, if any
func (e *Error) Unwrap() error {
	return e.cause
}

// WithCause attaches an underlying error
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// WithField records a field-level violation
func (e *Error) WithField(field, message string) *Error {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
	return e
}

// NotFound creates a not-found error
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Validation creates a validation error
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Conflict creates a conflict error
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// InvalidState creates an invalid-state error. These indicate workflow
// sequencing bugs rather than bad input.
func InvalidState(message string) *Error {
	return &Error{Kind: KindInvalidState, Message: message}
}

// InvalidTenant creates an invalid-tenant error
func InvalidTenant(message string) *Error {
	return &Error{Kind: KindInvalidTenant, Message: message}
}

// Unauthorized creates an unauthorized error
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// KindOf returns the kind of err, or an empty kind for non-application errors
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsKind reports whether err is an application error of the given kind
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// FieldsOf returns the field violations of err, or nil
func FieldsOf(err error) map[string]string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Fields
	}
	return nil
}

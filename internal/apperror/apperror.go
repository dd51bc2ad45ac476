// Package apperror defines the errors that carry an HTTP status and a message
// that is safe to show to clients.
package apperror

import (
	"errors"
	"fmt"
	"net/http"

	pkgerrors "github.com/pkg/errors"
)

// FieldError is one failed validation rule.
type FieldError struct {
	Type     string `json:"type"`
	Value    any    `json:"value,omitempty"`
	Message  string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

// Error is an operational error: an expected failure such as a missing record
// or a rejected request.
type Error struct {
	Status  int
	Message string
	Fields  []FieldError
	cause   error
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the stack-carrying cause.
func (e *Error) Unwrap() error { return e.cause }

// StatusText maps an HTTP status to the response status word.
func StatusText(code int) string {
	if code >= 400 && code < 500 {
		return "fail"
	}
	return "error"
}

// New returns an operational error with the given status.
func New(status int, message string) *Error {
	return &Error{
		Status:  status,
		Message: message,
		cause:   pkgerrors.New(message),
	}
}

func BadRequest(message string) *Error   { return New(http.StatusBadRequest, message) }
func Unauthorized(message string) *Error { return New(http.StatusUnauthorized, message) }
func Forbidden(message string) *Error    { return New(http.StatusForbidden, message) }
func NotFound(message string) *Error     { return New(http.StatusNotFound, message) }
func Conflict(message string) *Error     { return New(http.StatusConflict, message) }

// Validation aggregates field errors into a single 400. The message is the
// first field's message.
func Validation(fields []FieldError) *Error {
	msg := "Validation failed"
	if len(fields) > 0 {
		msg = fields[0].Message
	}
	e := New(http.StatusBadRequest, msg)
	e.Fields = fields
	return e
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Stack renders err with a stack trace. Errors without one get the stack of
// the caller.
func Stack(err error) string {
	type stackTracer interface {
		StackTrace() pkgerrors.StackTrace
	}
	var st stackTracer
	if errors.As(err, &st) {
		return fmt.Sprintf("%s%+v", err.Error(), st.StackTrace())
	}
	return fmt.Sprintf("%+v", pkgerrors.WithStack(err))
}

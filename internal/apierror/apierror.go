// Package apierror defines the typed failure value every layer reports with.
// An *Error carries the HTTP status the transport boundary should answer with,
// so handlers never format failure responses themselves; they return the error
// and the central error handler serializes it.
package apierror

import (
	"errors"
	"net/http"
)

// Kind tags the failure category independently of the status code.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindAuthentication Kind = "authentication"
	KindAuthorization  Kind = "authorization"
	KindNotFound       Kind = "not_found"
	KindUpstream       Kind = "upstream"
	KindInternal       Kind = "internal"
)

// Error is the structured failure value. Construction never fails; a zero
// message falls back to a generic one at serialization time.
type Error struct {
	Kind       Kind     `json:"kind"`
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Details    []string `json:"errors,omitempty"`
	cause      error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return "something went wrong"
	}
	return e.Message
}

// Unwrap exposes the wrapped cause to errors.Is/As chains.
func (e *Error) Unwrap() error { return e.cause }

// WithCause attaches the underlying error for logs without leaking it to the
// response payload.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// WithDetails appends detail strings for the response's errors field.
func (e *Error) WithDetails(details ...string) *Error {
	e.Details = append(e.Details, details...)
	return e
}

func newError(kind Kind, status int, message string) *Error {
	return &Error{Kind: kind, StatusCode: status, Message: message}
}

// BadRequest reports malformed or missing input.
func BadRequest(message string) *Error {
	return newError(KindValidation, http.StatusBadRequest, message)
}

// Unauthenticated reports a missing or invalid credential.
func Unauthenticated(message string) *Error {
	return newError(KindAuthentication, http.StatusUnauthorized, message)
}

// Forbidden reports an authenticated caller acting on a resource it does not own.
func Forbidden(message string) *Error {
	return newError(KindAuthorization, http.StatusForbidden, message)
}

// NotFound reports a missing entity.
func NotFound(message string) *Error {
	return newError(KindNotFound, http.StatusNotFound, message)
}

// Upstream reports a persistent-store or remote-store failure.
func Upstream(message string, cause error) *Error {
	return newError(KindUpstream, http.StatusBadGateway, message).WithCause(cause)
}

// Internal reports an unexpected failure.
func Internal(message string, cause error) *Error {
	return newError(KindInternal, http.StatusInternalServerError, message).WithCause(cause)
}

// From extracts an *Error from err, or nil if none is in the chain.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

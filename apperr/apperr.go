// Package apperr defines the error kinds surfaced by the API and the HTTP
// status each one maps to.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindForbidden
	KindValidation
	KindNotFound
	KindConflict
	KindStoreUnavailable
	KindStoreFailure
	KindTooManyRequests
)

// Status returns the HTTP status for the kind.
func (k Kind) Status() int {
	switch k {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation, KindConflict, KindStoreFailure:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindStoreUnavailable:
		return http.StatusServiceUnavailable
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a kind, a client-facing message and optional details that
// are rendered under "errors" in the response envelope.
type Error struct {
	Kind    Kind
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Validation reports rejected input; details is usually a field→reason map.
func Validation(msg string, details any) *Error {
	return &Error{Kind: KindValidation, Message: msg, Details: details}
}

// StoreFailure wraps an unexpected store error. The wrapped error's text is
// exposed as details, mirroring how schema errors are surfaced.
func StoreFailure(msg string, err error) *Error {
	e := &Error{Kind: KindStoreFailure, Message: msg, Err: err}
	if err != nil {
		e.Details = err.Error()
	}
	return e
}

// From converts any error into an *Error, treating unknown errors as store
// failures since the store is the only fallible collaborator.
func From(err error, fallback string) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return StoreFailure(fallback, err)
}

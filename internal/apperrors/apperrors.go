// Package apperrors defines the errors handlers turn into HTTP responses.
package apperrors

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindAuth
	KindNotFound
	KindNotAuthor
	KindConflict
	KindTooLarge
)

// Error is a user-facing failure with a status and a stable code.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindNotAuthor:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func Validation(code, msg string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: msg}
}

func Unauthorized() *Error {
	return &Error{Kind: KindAuth, Code: "unauthorized", Message: "Unauthorized"}
}

func NotFound(code, msg string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: msg}
}

func NotAuthor() *Error {
	return &Error{Kind: KindNotAuthor, Code: "not_author", Message: "You are not the author"}
}

func Conflict(code, msg string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: msg}
}

// TooLarge reports a request body over the configured limit.
func TooLarge(err error) *Error {
	return &Error{Kind: KindTooLarge, Code: "payload_too_large", Message: "Request body too large", Err: err}
}

// Unexpected wraps err behind a generic message; err is logged, never sent.
func Unexpected(msg string, err error) *Error {
	return &Error{Kind: KindUnexpected, Code: "internal", Message: msg, Err: err}
}

// From returns the *Error in err's chain, or an Unexpected wrapping err.
func From(err error, fallbackMsg string) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Unexpected(fallbackMsg, err)
}

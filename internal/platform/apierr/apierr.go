package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation   = "validation_error"
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
	CodeUnauthorized = "unauthorized"
	CodeRateLimited  = "rate_limited"
	CodeInternal     = "internal_error"
)

// authFailedMessage is the only text an AuthError ever carries.
const authFailedMessage = "authentication failed"

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Validation reports a missing or malformed field. The message is shown to the caller.
func Validation(format string, args ...any) *Error {
	return New(http.StatusBadRequest, CodeValidation, fmt.Errorf(format, args...))
}

// NotFound is deliberately generic: it never says whether the record exists
// under another owner.
func NotFound(entity string) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf("%s not found", entity))
}

func Conflict(format string, args ...any) *Error {
	return New(http.StatusConflict, CodeConflict, fmt.Errorf(format, args...))
}

// Auth returns the uniform authentication failure. Callers cannot tell a bad
// password from an expired or tampered token.
func Auth() *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, errors.New(authFailedMessage))
}

func RateLimited(msg string) *Error {
	return New(http.StatusTooManyRequests, CodeRateLimited, errors.New(msg))
}

func hasCode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

func IsValidation(err error) bool { return hasCode(err, CodeValidation) }
func IsNotFound(err error) bool   { return hasCode(err, CodeNotFound) }
func IsConflict(err error) bool   { return hasCode(err, CodeConflict) }
func IsAuth(err error) bool       { return hasCode(err, CodeUnauthorized) }

// StatusOf maps any error to an HTTP status and code; unknown errors are 500s.
func StatusOf(err error) (int, string) {
	var e *Error
	if errors.As(err, &e) && e.Status != 0 {
		return e.Status, e.Code
	}
	return http.StatusInternalServerError, CodeInternal
}

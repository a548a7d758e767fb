// Package apperr is the single error-translation layer: handlers return
// typed errors and the HTTPErrorHandler in handler.go turns them into
// the caller-visible outcome (JSON body or legacy redirect-with-message).
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindConflict
	KindValidation
	KindUpstream
)

type Error struct {
	Kind Kind
	Code string // stable machine code, e.g. STUDENT_NOT_FOUND
	Msg  string // human-readable message
	// Fields holds per-field validation messages when Kind == KindValidation.
	Fields map[string]string
	// LoginPath, when set on an unauthorized error, tells the error
	// handler where to redirect a browser request.
	LoginPath string
	Err       error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(code, msg string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Msg: msg}
}

func Unauthorized(loginPath string) *Error {
	return &Error{Kind: KindUnauthorized, Code: "UNAUTHORIZED", Msg: "login required", LoginPath: loginPath}
}

func Forbidden() *Error {
	return &Error{Kind: KindForbidden, Code: "FORBIDDEN", Msg: "permission denied"}
}

func Conflict(code, msg string) *Error {
	return &Error{Kind: KindConflict, Code: code, Msg: msg}
}

func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Code: "VALIDATION", Msg: "invalid input", Fields: fields}
}

func ValidationMsg(code, msg string) *Error {
	return &Error{Kind: KindValidation, Code: code, Msg: msg}
}

// Upstream wraps a database or other infrastructure failure. The cause
// is logged server-side and never shown to the caller.
func Upstream(err error) *Error {
	return &Error{Kind: KindUpstream, Code: "INTERNAL", Msg: "internal error", Err: err}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

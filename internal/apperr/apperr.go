// Package apperr defines the error taxonomy shared by the services and the
// HTTP boundary. Every business-rule violation is an *Error carrying a Kind
// that maps to exactly one HTTP status.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindMethodNotAllowed
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	default:
		return "internal"
	}
}

// StatusCode returns the HTTP status for the kind.
func (k Kind) StatusCode() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Kind    Kind
	Message string
	Details []FieldError
	Err     error

	pcs []uintptr
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) StatusCode() int { return e.Kind.StatusCode() }

// Stack returns the call stack captured where the error was created, one
// "function file:line" entry per frame.
func (e *Error) Stack() []string {
	if len(e.pcs) == 0 {
		return nil
	}
	frames := runtime.CallersFrames(e.pcs)
	var out []string
	for {
		f, more := frames.Next()
		out = append(out, fmt.Sprintf("%s %s:%d", f.Function, f.File, f.Line))
		if !more {
			break
		}
	}
	return out
}

func newError(kind Kind, msg string, err error, details []FieldError) *Error {
	var pcs [32]uintptr
	n := runtime.Callers(3, pcs[:])
	return &Error{Kind: kind, Message: msg, Err: err, Details: details, pcs: pcs[:n]}
}

func Validation(msg string, details ...FieldError) *Error {
	return newError(KindValidation, msg, nil, details)
}

func Authentication(msg string) *Error {
	return newError(KindAuthentication, msg, nil, nil)
}

func Authorization(msg string) *Error {
	return newError(KindAuthorization, msg, nil, nil)
}

func NotFound(msg string) *Error {
	return newError(KindNotFound, msg, nil, nil)
}

func MethodNotAllowed(msg string) *Error {
	return newError(KindMethodNotAllowed, msg, nil, nil)
}

// Internal wraps an unexpected infrastructure failure.
func Internal(err error) *Error {
	return newError(KindInternal, "internal error", err, nil)
}

// Internalf wraps err with a short description of the failed step.
func Internalf(err error, format string, args ...any) *Error {
	return newError(KindInternal, fmt.Sprintf(format, args...), err, nil)
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}

// Fields collects field errors; the zero value is ready to use.
type Fields []FieldError

func (f *Fields) Add(field, msg string) {
	*f = append(*f, FieldError{Field: field, Message: msg})
}

// Err returns a validation error listing every collected field, or nil.
func (f Fields) Err() error {
	if len(f) == 0 {
		return nil
	}
	return newError(KindValidation, "Validation error", nil, f)
}

func (f Fields) String() string {
	parts := make([]string, 0, len(f))
	for _, fe := range f {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

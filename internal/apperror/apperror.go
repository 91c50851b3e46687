// Package apperror defines the closed set of failure kinds the API reports
// and the HTTP status each one maps to.
package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies a failure.
type Kind int

const (
	InternalServer Kind = iota
	Validation
	NotFound
	Unauthorized
)

// FallbackMessage is reported for errors that carry no kind of their own.
const FallbackMessage = "An unexpected error occurred"

func (k Kind) Status() int {
	switch k {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Unauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Name is the error name written into the response envelope.
func (k Kind) Name() string {
	switch k {
	case Validation:
		return "ValidationError"
	case NotFound:
		return "NotFoundError"
	case Unauthorized:
		return "UnauthorizedError"
	default:
		return "InternalServerError"
	}
}

func (k Kind) DefaultMessage() string {
	switch k {
	case Validation:
		return "Validation error"
	case NotFound:
		return "Resource not found"
	case Unauthorized:
		return "Unauthorized access"
	default:
		return "Internal server error"
	}
}

func (k Kind) String() string { return k.Name() }

// Error is a classified failure. Message is safe to show to clients; Err is
// the underlying cause and is only logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.Name() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.Name() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status for the error's kind.
func (e *Error) Status() int { return e.Kind.Status() }

// New returns an error of the given kind. An empty message is replaced by the
// kind's default.
func New(kind Kind, msg string) *Error {
	if msg == "" {
		msg = kind.DefaultMessage()
	}
	return &Error{Kind: kind, Message: msg}
}

// Wrap is New with an underlying cause attached.
func Wrap(kind Kind, msg string, err error) *Error {
	e := New(kind, msg)
	e.Err = err
	return e
}

func NewValidation(msg string) *Error   { return New(Validation, msg) }
func NewNotFound(msg string) *Error     { return New(NotFound, msg) }
func NewUnauthorized(msg string) *Error { return New(Unauthorized, msg) }

func NewInternal(msg string, err error) *Error { return Wrap(InternalServer, msg, err) }

// From classifies any error. Errors that do not wrap an *Error become an
// InternalServer error with FallbackMessage. From(nil) returns nil.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return &Error{Kind: InternalServer, Message: FallbackMessage, Err: err}
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

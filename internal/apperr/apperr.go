// Package apperr defines the error taxonomy shared by the repository, service and HTTP layers.
//
// Every failure that crosses a layer boundary is an *Error carrying a Kind. Callers test
// for a category with errors.Is against the sentinel values (ErrNotFound, ErrForbidden, ...)
// and the HTTP layer maps the Kind to a status code and a stable machine-readable code.
package apperr

import "errors"

// Kind is a stable, machine-distinguishable failure category.
type Kind string

const (
	KindValidation        Kind = "VALIDATION_ERROR"
	KindMissingAttachment Kind = "MISSING_ATTACHMENT"
	KindNotEligible       Kind = "NOT_ELIGIBLE"
	KindDuplicate         Kind = "DUPLICATE_APPLICATION"
	KindNotFound          Kind = "NOT_FOUND"
	KindForbidden         Kind = "FORBIDDEN"
	KindUnauthorized      Kind = "UNAUTHORIZED"
	KindRateLimited       Kind = "RATE_LIMITED"
	KindPersistence       Kind = "PERSISTENCE_ERROR"
)

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrValidation        = &Error{Kind: KindValidation}
	ErrMissingAttachment = &Error{Kind: KindMissingAttachment}
	ErrNotEligible       = &Error{Kind: KindNotEligible}
	ErrDuplicate         = &Error{Kind: KindDuplicate}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrForbidden         = &Error{Kind: KindForbidden}
	ErrUnauthorized      = &Error{Kind: KindUnauthorized}
	ErrRateLimited       = &Error{Kind: KindRateLimited}
	ErrPersistence       = &Error{Kind: KindPersistence}
)

// Error is a categorized failure with a message that is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// New creates a categorized error. cause may be nil.
func New(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a sentinel (message-less) *Error of the same Kind,
// or the very same value.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t == e {
		return true
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// MessageOf returns the client-safe message of the first *Error in err's chain.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return ""
}

func Validation(message string) *Error { return New(KindValidation, message, nil) }

func NotFound(message string) *Error { return New(KindNotFound, message, nil) }

func Forbidden(message string) *Error { return New(KindForbidden, message, nil) }

func NotEligible(message string) *Error { return New(KindNotEligible, message, nil) }

func Duplicate(message string, cause error) *Error { return New(KindDuplicate, message, cause) }

// Persistence wraps a store I/O failure.
func Persistence(message string, cause error) *Error { return New(KindPersistence, message, cause) }

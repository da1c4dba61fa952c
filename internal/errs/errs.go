// Package errs defines the error type returned across service boundaries.
//
// Callers receive a generic message and a Kind to branch on. The database
// error that caused it is kept as Cause for server-side logging only; the
// Reason field carries a coarse classification that is safe to expose.
package errs

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindFetchFailed  Kind = "fetch_failed"
	KindSeedFailed   Kind = "seed_failed"
	KindNotFound     Kind = "not_found"
	KindInvalidInput Kind = "invalid_input"
)

// Reason classifies the underlying cause without exposing driver details.
type Reason string

const (
	ReasonUnknown     Reason = "unknown"
	ReasonUnavailable Reason = "unavailable"
	ReasonConstraint  Reason = "constraint"
	ReasonCanceled    Reason = "canceled"
)

type Error struct {
	Kind    Kind
	Op      string
	Message string
	Reason  Reason
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Status maps the kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// FetchFailed builds the error every query operation returns on a
// database failure: "failed to fetch <entity>".
func FetchFailed(op, entity string, reason Reason, cause error) *Error {
	return &Error{
		Kind:    KindFetchFailed,
		Op:      op,
		Message: "failed to fetch " + entity,
		Reason:  reason,
		Cause:   cause,
	}
}

func SeedFailed(op string, reason Reason, cause error) *Error {
	return &Error{
		Kind:    KindSeedFailed,
		Op:      op,
		Message: "failed to seed database",
		Reason:  reason,
		Cause:   cause,
	}
}

func NotFound(op, message string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: message, Reason: ReasonUnknown}
}

func InvalidInput(op, message string) *Error {
	return &Error{Kind: KindInvalidInput, Op: op, Message: message, Reason: ReasonUnknown}
}

// KindOf reports the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

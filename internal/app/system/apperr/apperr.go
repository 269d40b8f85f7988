// Package apperr defines the error taxonomy the HTTP layer renders from.
//
// Five kinds cover every failure the service produces:
//   - Validation: missing or malformed input, rejected before touching the store
//   - NotFound: a referenced user/group/message does not exist
//   - Permission: a role/relationship check failed; never retried
//   - Constraint: a uniqueness or invariant breach; original state unchanged
//   - Infrastructure: the store is unavailable; transient
//
// Stores and policies return these; handlers pass them to httpjson.Error,
// which maps each kind to a status code. Kinds survive wrapping, so
// fmt.Errorf("...: %w", err) keeps the classification.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindPermission
	KindConstraint
	KindInfrastructure
)

// Error is a classified application error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // optional cause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Validation creates a validation error.
func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Permission creates a permission-denied error. The message must name the
// unmet condition so clients can show a meaningful denial.
func Permission(format string, args ...any) error {
	return &Error{Kind: KindPermission, Msg: fmt.Sprintf(format, args...)}
}

// Constraint creates a constraint-violation error.
func Constraint(format string, args ...any) error {
	return &Error{Kind: KindConstraint, Msg: fmt.Sprintf(format, args...)}
}

// Infra wraps a store/driver failure as an infrastructure error.
func Infra(msg string, err error) error {
	return &Error{Kind: KindInfrastructure, Msg: msg, Err: err}
}

// KindOf extracts the kind from an error chain. Unclassified errors report
// KindUnknown; httpjson treats those as internal failures.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// Message returns the classified message without the wrapped cause, for
// client-facing bodies. Falls back to err.Error() for unclassified errors.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Msg
	}
	return err.Error()
}

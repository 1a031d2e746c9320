// Package apperr carries the failure taxonomy of the post lifecycle. Every
// operation returns an *Error whose Kind the HTTP boundary maps to a status
// code, so internal failures keep their category instead of collapsing into
// one generic message.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Unknown Kind = iota
	Unauthorized
	NotFound
	Forbidden
	Validation
	Staging
	Storage
	Persistence
)

func (k Kind) String() string {
	switch k {
	case Unauthorized:
		return "unauthorized"
	case NotFound:
		return "not_found"
	case Forbidden:
		return "forbidden"
	case Validation:
		return "validation"
	case Staging:
		return "staging_failure"
	case Storage:
		return "external_storage_failure"
	case Persistence:
		return "persistence_failure"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an *Error without an underlying cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the failure kind from anywhere in the wrap chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

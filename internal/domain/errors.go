package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies workflow failures.
type ErrorKind int

const (
	KindUnexpected ErrorKind = iota
	KindInvalidArgument
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	default:
		return "unexpected"
	}
}

// Error is the single error type returned by workflows. Entity is set for KindNotFound.
type Error struct {
	Kind    ErrorKind
	Entity  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// InvalidArgument reports a malformed or missing identifier or body field.
func InvalidArgument(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports that the referenced entity ("user", "category", "blog") does not exist.
func NotFound(entity string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Entity:  entity,
		Message: capitalize(entity) + " not found",
	}
}

// Unexpected wraps a store or infrastructure failure.
func Unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Err: err}
}

// KindOf returns the kind carried by err. Errors that are not *Error are unexpected.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnexpected
}

// IsNotFound reports whether err is a NotFound for the given entity.
func IsNotFound(err error, entity string) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == KindNotFound && de.Entity == entity
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

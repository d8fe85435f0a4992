// Package failure provides typed application errors with stable string
// codes, used at transport boundaries to map errors to responses.
package failure

import (
	"errors"
	"fmt"
)

type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

type kind int

const (
	kindInternal kind = iota
	kindInvalidArgument
	kindNotFound
	kindConflict
	kindTimeout
)

// Error is a classified error with a machine-readable code and a
// human-readable description safe to expose to clients.
type Error struct {
	kind        kind
	code        ErrorCode
	description string
	message     string
	cause       error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}

	return e.message
}

func (e *Error) Unwrap() error {
	return e.cause
}

type Option func(*Error)

func WithCode(code ErrorCode) Option {
	return func(e *Error) {
		e.code = code
	}
}

func WithDescription(description string) Option {
	return func(e *Error) {
		e.description = description
	}
}

func newError(k kind, message string, opts ...Option) *Error {
	e := &Error{
		kind:    k,
		message: message,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func NewInternalError(message string, opts ...Option) *Error {
	return newError(kindInternal, message, opts...)
}

func NewInvalidArgumentError(message string, opts ...Option) *Error {
	return newError(kindInvalidArgument, message, opts...)
}

func NewInvalidArgumentErrorFromError(err error, opts ...Option) *Error {
	e := newError(kindInvalidArgument, err.Error(), opts...)
	e.cause = err

	return e
}

func NewNotFoundError(message string, opts ...Option) *Error {
	return newError(kindNotFound, message, opts...)
}

func NewConflictError(message string, opts ...Option) *Error {
	return newError(kindConflict, message, opts...)
}

func NewTimeoutError(message string, opts ...Option) *Error {
	return newError(kindTimeout, message, opts...)
}

func isKind(err error, k kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.kind == k
	}

	return false
}

func IsInvalidArgumentError(err error) bool { return isKind(err, kindInvalidArgument) }
func IsNotFoundError(err error) bool        { return isKind(err, kindNotFound) }
func IsConflictError(err error) bool        { return isKind(err, kindConflict) }
func IsTimeoutError(err error) bool         { return isKind(err, kindTimeout) }

// Code extracts the error code, or an empty code when err is not an *Error.
func Code(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}

	return ""
}

// Description extracts the client-safe description, falling back to an
// empty string for unclassified errors.
func Description(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.description
	}

	return ""
}

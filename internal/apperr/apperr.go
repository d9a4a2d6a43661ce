// Package apperr defines the error kinds public operations fail with.
// Handlers map kinds to HTTP status codes; internal store and cache
// failures are never surfaced to clients.
package apperr

import "errors"

// Kind classifies a client-visible failure.
type Kind int

const (
	// KindNotFound means a referenced entity is absent.
	KindNotFound Kind = iota
	// KindAuthorization means the caller lacks rights on the resource.
	KindAuthorization
	// KindInvariant means a business rule was violated, such as a write
	// that should have affected exactly one row affecting zero.
	KindInvariant
)

// Error is a sentinel carrying a kind and a stable client-facing message.
type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Kind reports the failure classification.
func (e *Error) Kind() Kind { return e.kind }

// NotFound builds a NotFound-kind sentinel.
func NotFound(msg string) *Error { return &Error{kind: KindNotFound, msg: msg} }

// Authorization builds an Authorization-kind sentinel.
func Authorization(msg string) *Error { return &Error{kind: KindAuthorization, msg: msg} }

// Invariant builds an Invariant-kind sentinel.
func Invariant(msg string) *Error { return &Error{kind: KindInvariant, msg: msg} }

// IsNotFound reports whether err is (or wraps) a NotFound-kind error.
func IsNotFound(err error) bool { return isKind(err, KindNotFound) }

// IsAuthorization reports whether err is (or wraps) an Authorization-kind error.
func IsAuthorization(err error) bool { return isKind(err, KindAuthorization) }

// IsInvariant reports whether err is (or wraps) an Invariant-kind error.
func IsInvariant(err error) bool { return isKind(err, KindInvariant) }

func isKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.kind == kind
}

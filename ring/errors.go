package ring

import (
	"errors"
	"fmt"
)

// Error represents a structural failure of a single ring operation.
//
// Structural errors abort the operation immediately and are surfaced to
// the caller; they are never silently swallowed. Alternation violations
// are deliberately NOT structural errors - they are recorded in the
// transition journal and queried via Violations(), because the domain
// needs to inspect where and how often alternation broke rather than
// stop at the first break. The only exception is strict mode, where the
// violation is additionally returned as an *Error with CodeValidation.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Op names the operation that failed ("append", "remove", ...).
	Op string

	// Message is a human-readable description.
	Message string
}

// Code categorizes ring errors.
type Code string

const (
	// CodeInvalidArgument indicates a malformed argument such as a
	// non-positive pattern length or a negative traversal count.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// CodeNotFound indicates a handle that is stale or was never issued
	// by this ring.
	CodeNotFound Code = "NOT_FOUND"

	// CodeEmptyRing indicates an operation that is undefined on a ring
	// with zero nodes (head lookup, traversal, sequence validation).
	CodeEmptyRing Code = "EMPTY_RING"

	// CodeValidation indicates an alternation violation returned from a
	// strict-mode append. The node was still appended and the journal
	// still records the transition.
	CodeValidation Code = "VALIDATION_VIOLATION"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is supports errors.Is comparison by code.
// Two *Error values match if their codes match.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

func newError(code Code, op, format string, args ...any) *Error {
	return &Error{Code: code, Op: op, Message: fmt.Sprintf(format, args...)}
}

// IsInvalidArgument reports whether err carries CodeInvalidArgument.
func IsInvalidArgument(err error) bool { return hasCode(err, CodeInvalidArgument) }

// IsNotFound reports whether err carries CodeNotFound.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsEmptyRing reports whether err carries CodeEmptyRing.
func IsEmptyRing(err error) bool { return hasCode(err, CodeEmptyRing) }

// IsValidation reports whether err carries CodeValidation.
func IsValidation(err error) bool { return hasCode(err, CodeValidation) }

func hasCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// Package textropeerr defines the error kinds returned across the
// textrope engine. Every fallible operation returns a plain error
// wrapping one of these kinds rather than panicking, per the engine's
// failure semantics: index-bounds and allocation failures are values,
// not control flow.
package textropeerr

import (
	"errors"
	"fmt"
)

// Kind identifies the category of a textrope error.
type Kind int

const (
	// OutOfMemory is returned by any operation that would need to
	// allocate beyond a hard limit (e.g. the memory region registry).
	OutOfMemory Kind = iota
	// InvalidIndex is returned when a leaf or character index is
	// negative or beyond the structure's length.
	InvalidIndex
	// InvalidMemID is returned when a mem_id refers to an unregistered
	// memory region.
	InvalidMemID
	// InvalidDimensions is returned when a byte or column range is
	// malformed (end before start, or out of bounds for its region).
	InvalidDimensions
	// OutOfBounds is returned when a weight-based cut falls inside a
	// zero-width marker and the caller requested non-boundary-inclusive
	// semantics.
	OutOfBounds
)

func (k Kind) String() string {
	switch k {
	case OutOfMemory:
		return "out of memory"
	case InvalidIndex:
		return "invalid index"
	case InvalidMemID:
		return "invalid mem_id"
	case InvalidDimensions:
		return "invalid dimensions"
	case OutOfBounds:
		return "out of bounds"
	default:
		return "unknown error"
	}
}

// Error is a textrope error: a Kind plus a human-readable message.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// New constructs an *Error of the given kind.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Is reports whether err is (or wraps) a textrope error of kind k,
// mirroring the errors.Is convention.
func Is(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}

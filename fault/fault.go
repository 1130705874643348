// Package fault classifies ledger errors so callers can tell a bad argument
// from an illegal state transition without parsing message text.
package fault

import (
	"errors"
	"fmt"
)

// Kind is the classification of a failed operation.  Kinds are errors in
// their own right, so errors.Is(err, fault.InvalidState) works on anything
// produced by this package.
type Kind int

const (
	// InvalidInput means the caller supplied malformed data.
	InvalidInput Kind = iota + 1
	// InvalidState means the operation is illegal for the current player
	// lifecycle state.
	InvalidState
	// InvalidOperation means the operation does not apply to this
	// tournament type.
	InvalidOperation
	// NotFound means a referenced object does not exist.  It also matches
	// InvalidInput, since an unknown id is malformed input to the ledger.
	NotFound
)

var kindNames = map[Kind]string{
	InvalidInput:     "invalid input",
	InvalidState:     "invalid state",
	InvalidOperation: "invalid operation",
	NotFound:         "not found",
}

func (k Kind) Error() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("fault(%d)", int(k))
}

func (k Kind) String() string {
	return k.Error()
}

// Error is an error tagged with a Kind.
type Error struct {
	kind Kind
	err  error
}

// Errorf builds an Error of the given kind.  %w in f is honored.
func Errorf(kind Kind, f string, more ...any) *Error {
	return &Error{
		kind: kind,
		err:  fmt.Errorf(f, more...),
	}
}

// New tags an existing error.
func New(kind Kind, err error) *Error {
	return &Error{
		kind: kind,
		err:  err,
	}
}

func (e *Error) Error() string {
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

// Kind reports the classification.
func (e *Error) Kind() Kind {
	return e.kind
}

// Is lets errors.Is match an Error against a bare Kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	if !ok {
		return false
	}
	if k == e.kind {
		return true
	}
	return e.kind == NotFound && k == InvalidInput
}

// KindOf returns the Kind of err, or zero if err was not produced here.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return 0
}

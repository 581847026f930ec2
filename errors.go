package jsonpath

import (
	"errors"
	"fmt"

	"github.com/arborio/jsonpath/parser"
	"github.com/arborio/jsonpath/spec"
)

// Sentinel errors identifying the broad category of a failure, usable with
// errors.Is against any error returned by this package.
var (
	// ErrSyntax indicates a query failed to parse: invalid grammar,
	// malformed literals, or integers outside the ±(2^53-1) bound.
	ErrSyntax = errors.New("jsonpath: syntax error")
	// ErrName indicates a query referenced an unregistered function
	// extension.
	ErrName = errors.New("jsonpath: unknown function")
	// ErrType indicates a query called a function with arguments that
	// don't satisfy its declared parameter types.
	ErrType = errors.New("jsonpath: invalid function arguments")
)

// CompileError wraps a query compilation failure together with the sentinel
// naming its category. Where the parser reports the position of the
// failure, it appears in the error message; CompileError has no separate
// offset field.
type CompileError struct {
	err error
	kind error
}

// Error returns the underlying parse error's message.
func (e *CompileError) Error() string { return e.err.Error() }

// Unwrap returns both the underlying parser error and the sentinel
// (ErrSyntax, ErrName, or ErrType) identifying its category, so
// errors.Is works against either.
func (e *CompileError) Unwrap() []error { return []error{e.err, e.kind} }

// newCompileError classifies err, returned by [parser.Parse], into a
// CompileError carrying the appropriate sentinel.
func newCompileError(err error) *CompileError {
	switch {
	case errors.Is(err, spec.ErrUnregistered):
		return &CompileError{err: err, kind: ErrName}
	case errors.Is(err, spec.ErrInvalidArgs):
		return &CompileError{err: err, kind: ErrType}
	case errors.Is(err, parser.ErrPathParse):
		return &CompileError{err: err, kind: ErrSyntax}
	default:
		return &CompileError{err: fmt.Errorf("%w: %w", ErrSyntax, err), kind: ErrSyntax}
	}
}

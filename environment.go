// Package jsonpath implements [RFC 9535] JSONPath query expressions: parse
// a query with [Compile] and evaluate it against a JSON-like document with
// [Query.Find] or [Query.FindIter].
//
// [RFC 9535]: https://www.rfc-editor.org/rfc/rfc9535.html
package jsonpath

import (
	"github.com/arborio/jsonpath/parser"
	"github.com/arborio/jsonpath/registry"
	"github.com/arborio/jsonpath/spec"
)

// Environment owns a function extension [registry.Registry] and a set of
// evaluation options, and compiles query text against them. Environments
// are independent of one another: registering a function on one has no
// effect on any other, unlike a package-level function table.
//
// The zero value is not usable; create an Environment with [NewEnvironment].
type Environment struct {
	reg              *registry.Registry
	nondeterministic bool
}

// Option configures an Environment returned by [NewEnvironment].
type Option func(*Environment)

// WithNondeterministicOrder causes queries compiled against this
// Environment to traverse object members in an arbitrary per-call order
// instead of insertion order, matching implementations that don't preserve
// object member order.
func WithNondeterministicOrder() Option {
	return func(e *Environment) { e.nondeterministic = true }
}

// NewEnvironment returns a new Environment loaded with the RFC 9535-required
// function extensions (length, count, value, match, search), configured
// with opts.
func NewEnvironment(opts ...Option) *Environment {
	env := &Environment{reg: registry.New()}
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// WithFunction registers a custom function extension on e. See
// [registry.Registry.Register] for parameter details. Returns an error if
// name is already registered.
func (e *Environment) WithFunction(
	name string,
	resultType spec.ExpressionType,
	validate spec.Validator,
	evaluate spec.Evaluator,
) error {
	return e.reg.Register(name, resultType, validate, evaluate)
}

// Nondeterministic reports whether e is configured for nondeterministic
// object-member traversal order. Satisfies [spec.EvalContext].
func (e *Environment) Nondeterministic() bool { return e.nondeterministic }

// Compile parses path against e's registered functions and returns the
// resulting [Query]. Returns a [*CompileError] on any parse failure.
func (e *Environment) Compile(path string) (*Query, error) {
	q, err := parser.Parse(e.reg, path)
	if err != nil {
		return nil, newCompileError(err)
	}
	return &Query{q: q, env: e}, nil
}

// Compile parses path using a fresh [Environment] configured with
// [NewEnvironment]'s defaults, and returns the resulting [Query]. A
// convenience for callers who don't need custom function extensions or
// options.
func Compile(path string) (*Query, error) {
	return NewEnvironment().Compile(path)
}

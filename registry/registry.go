// Package registry provides an RFC 9535 JSONPath function extension
// registry, used by [github.com/arborio/jsonpath] to resolve function calls
// at parse time and evaluate them at query time.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/arborio/jsonpath/spec"
)

// Registry maintains a set of JSONPath function extensions, both the
// RFC 9535-required functions and any custom functions registered with
// [Registry.Register]. Unlike a package-level function table, a Registry is
// owned by a single [github.com/arborio/jsonpath.Environment], so different
// Environments in the same process can register different functions without
// interfering with one another.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]*spec.FuncExtension
}

// New returns a new Registry loaded with the RFC 9535-mandated function
// extensions:
//
//   - length
//   - count
//   - value
//   - match
//   - search
func New() *Registry {
	return &Registry{
		funcs: map[string]*spec.FuncExtension{
			"length": spec.Extension("length", spec.ValueExpr, checkLengthArgs, lengthFunc),
			"count":  spec.Extension("count", spec.ValueExpr, checkCountArgs, countFunc),
			"value":  spec.Extension("value", spec.ValueExpr, checkValueArgs, valueFunc),
			"match":  spec.Extension("match", spec.LogicalExpr, checkMatchArgs, matchFunc),
			"search": spec.Extension("search", spec.LogicalExpr, checkSearchArgs, searchFunc),
		},
	}
}

// ErrRegister is wrapped by the errors returned from [Registry.Register].
var ErrRegister = errors.New("jsonpath: register")

// Register adds a custom function extension to r. name is the name used to
// call the function in JSONPath queries; resultType is its declared
// ExpressionType; validate runs at parse time to check argument expressions;
// evaluate runs the function at query time.
//
// Returns an error wrapping [ErrRegister] if validate or evaluate is nil, or
// if name is already registered.
func (r *Registry) Register(
	name string,
	resultType spec.ExpressionType,
	validate spec.Validator,
	evaluate spec.Evaluator,
) error {
	if validate == nil {
		return fmt.Errorf("%w: validate is nil", ErrRegister)
	}
	if evaluate == nil {
		return fmt.Errorf("%w: evaluate is nil", ErrRegister)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.funcs[name]; dup {
		return fmt.Errorf("%w: %s is already registered", ErrRegister, name)
	}
	r.funcs[name] = spec.Extension(name, resultType, validate, evaluate)
	return nil
}

// Get returns the function extension named name, or nil if none is
// registered. Satisfies [spec.FuncLookup].
func (r *Registry) Get(name string) *spec.FuncExtension {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.funcs[name]
}

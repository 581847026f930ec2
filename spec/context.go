package spec

// EvalContext carries evaluation-time configuration consulted while
// resolving selectors and filter expressions over a document. An
// Environment (see the root jsonpath package) implements EvalContext.
type EvalContext interface {
	// Nondeterministic reports whether wildcard and descendant traversal
	// over object members should use an arbitrary per-call permutation
	// instead of insertion order.
	Nondeterministic() bool
}

// deterministicContext is the zero-value EvalContext used when none is
// supplied, e.g. from tests that exercise selectors directly.
type deterministicContext struct{}

// Nondeterministic always returns false. Defined by [EvalContext].
func (deterministicContext) Nondeterministic() bool { return false }

// Deterministic is a shared EvalContext that always selects in insertion
// order.
var Deterministic EvalContext = deterministicContext{} //nolint:gochecknoglobals

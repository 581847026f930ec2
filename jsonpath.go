package jsonpath

import (
	"iter"

	"github.com/arborio/jsonpath/spec"
)

// Query is a compiled RFC 9535 JSONPath query, bound to the [Environment]
// it was compiled against (and so to that Environment's registered function
// extensions and traversal options).
type Query struct {
	q   *spec.PathQuery
	env *Environment
}

// String returns the canonical string representation of q.
func (q *Query) String() string { return q.q.String() }

// IsSingular reports whether q is a singular query: every segment selects
// at most one child, so [Query.Find] returns at most one value.
func (q *Query) IsSingular() bool { return q.q.SingularQuery() }

// Select evaluates q against input, a JSON-like value built from nil,
// bool, string, float64/int/int64, []any, and [github.com/arborio/jsonpath/spec.Object],
// and returns the matched values in query order.
func (q *Query) Select(input any) []any {
	return q.q.Select(nil, input, q.env)
}

// Find evaluates q against input and returns the matched values together
// with each one's location, as a [spec.NodeList].
func (q *Query) Find(input any) spec.NodeList {
	return q.q.ResolveNodes(spec.NewRootNode(input), q.env)
}

// FindOne evaluates q against input and returns its first matched node and
// true, or nil and false if q selected nothing.
func (q *Query) FindOne(input any) (*spec.Node, bool) {
	nodes := q.Find(input)
	if len(nodes) == 0 {
		return nil, false
	}
	return nodes[0], true
}

// FindIter evaluates q against input and returns an iterator over the
// matched nodes. The full [spec.NodeList] is computed by [Query.Find]
// before the iterator is returned, so evaluation is not lazy: stopping the
// iteration early does not shorten the evaluation.
func (q *Query) FindIter(input any) iter.Seq[*spec.Node] {
	nodes := q.Find(input)
	return func(yield func(*spec.Node) bool) {
		for _, n := range nodes {
			if !yield(n) {
				return
			}
		}
	}
}

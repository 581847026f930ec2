package spec

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
)

// stringWriter defines the interface for JSONPath AST nodes to write string
// representations of themselves to a string buffer.
type stringWriter interface {
	fmt.Stringer
	writeTo(buf *strings.Builder)
}

// Selector represents a single selector in an RFC 9535 JSONPath query, as
// defined by [RFC 9535 Section 2.3].
//
// [RFC 9535 Section 2.3]: https://www.rfc-editor.org/rfc/rfc9535.html#name-selectors
type Selector interface {
	stringWriter

	// Select selects values from current and/or root and returns them.
	// Used to evaluate path references inside filter expressions, where
	// only values (not normalized paths) are needed.
	Select(current, root any, ctx EvalContext) []any

	// ResolveNodes selects child Nodes of parent and returns them with
	// their locations. Used by the top-level query pipeline.
	ResolveNodes(parent *Node, ctx EvalContext) []*Node

	// isSingular returns true for selectors that can select at most one
	// value.
	isSingular() bool
}

// Name is a member-name selector, e.g. .name or ["name"], as defined by
// [RFC 9535 Section 2.3.1].
//
// [RFC 9535 Section 2.3.1]: https://www.rfc-editor.org/rfc/rfc9535.html#name-name-selector
type Name string

func (Name) isSingular() bool { return true }

// String returns the quoted string representation of n.
func (n Name) String() string { return strconv.Quote(string(n)) }

func (n Name) writeTo(buf *strings.Builder) { buf.WriteString(n.String()) }

// Select selects n from input and returns it as a single value in a slice.
// Returns an empty slice if input is not an object or doesn't contain n.
func (n Name) Select(input, _ any, _ EvalContext) []any {
	if obj, ok := input.(*Object); ok {
		if val, ok := obj.Get(string(n)); ok {
			return []any{val}
		}
	}
	return make([]any, 0)
}

// ResolveNodes selects n from parent.Value() and returns it as a single
// child Node in a slice, or an empty slice if parent is not an object or
// doesn't contain n.
func (n Name) ResolveNodes(parent *Node, _ EvalContext) []*Node {
	if obj, ok := parent.Value().(*Object); ok {
		if val, ok := obj.Get(string(n)); ok {
			return []*Node{newChild(parent, val, string(n))}
		}
	}
	return make([]*Node, 0)
}

// WildcardSelector is a wildcard selector, e.g. * or [*], as defined by
// [RFC 9535 Section 2.3.2].
//
// [RFC 9535 Section 2.3.2]: https://www.rfc-editor.org/rfc/rfc9535.html#name-wildcard-selector
type WildcardSelector struct{}

//nolint:gochecknoglobals
var wc = WildcardSelector{}

// Wildcard returns the WildcardSelector singleton.
func Wildcard() WildcardSelector { return wc }

func (WildcardSelector) writeTo(buf *strings.Builder) { buf.WriteByte('*') }

// String returns "*".
func (WildcardSelector) String() string { return "*" }

func (WildcardSelector) isSingular() bool { return false }

// Select selects the values from input and returns them in a slice, in
// insertion order for objects unless ctx requests nondeterministic order.
// Returns an empty slice if input is not an array or object.
func (WildcardSelector) Select(input, _ any, ctx EvalContext) []any {
	switch val := input.(type) {
	case []any:
		return append([]any(nil), val...)
	case *Object:
		keys := orderedKeys(val, ctx)
		vals := make([]any, len(keys))
		for i, k := range keys {
			v, _ := val.Get(k)
			vals[i] = v
		}
		return vals
	}
	return make([]any, 0)
}

// ResolveNodes selects the values from parent.Value() and returns them as
// child Nodes, in insertion order for objects unless ctx requests
// nondeterministic order. Returns an empty slice if the parent value is not
// an array or object.
func (WildcardSelector) ResolveNodes(parent *Node, ctx EvalContext) []*Node {
	switch val := parent.Value().(type) {
	case []any:
		nodes := make([]*Node, len(val))
		for i, v := range val {
			nodes[i] = newChild(parent, v, i)
		}
		return nodes
	case *Object:
		keys := orderedKeys(val, ctx)
		nodes := make([]*Node, len(keys))
		for i, k := range keys {
			v, _ := val.Get(k)
			nodes[i] = newChild(parent, v, k)
		}
		return nodes
	}
	return make([]*Node, 0)
}

// orderedKeys returns obj's keys in insertion order, or in an arbitrary
// per-call permutation if ctx.Nondeterministic() is true.
func orderedKeys(obj *Object, ctx EvalContext) []string {
	keys := obj.Keys()
	if ctx != nil && ctx.Nondeterministic() {
		shuffled := append([]string(nil), keys...)
		rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		return shuffled
	}
	return keys
}

// Index is an array-index selector, e.g. [3], as defined by
// [RFC 9535 Section 2.3.3].
//
// [RFC 9535 Section 2.3.3]: https://www.rfc-editor.org/rfc/rfc9535.html#name-index-selector
type Index int

func (Index) isSingular() bool { return true }

func (i Index) writeTo(buf *strings.Builder) { buf.WriteString(i.String()) }

// String returns a string representation of i.
func (i Index) String() string { return strconv.FormatInt(int64(i), 10) }

// Select selects i from input and returns it as a single value in a slice.
// Negative i is normalized relative to input's length. Returns an empty
// slice if input is not an array or i is out of bounds.
func (i Index) Select(input, _ any, _ EvalContext) []any {
	if val, ok := input.([]any); ok {
		if idx, ok := i.normalize(len(val)); ok {
			return []any{val[idx]}
		}
	}
	return make([]any, 0)
}

// ResolveNodes selects i from parent.Value() and returns it as a single
// child Node in a slice. Returns an empty slice if the parent value is not
// an array or i is out of bounds.
func (i Index) ResolveNodes(parent *Node, _ EvalContext) []*Node {
	if val, ok := parent.Value().([]any); ok {
		if idx, ok := i.normalize(len(val)); ok {
			return []*Node{newChild(parent, val[idx], idx)}
		}
	}
	return make([]*Node, 0)
}

// normalize resolves i against an array of length, adding length for
// negative indexes, and reports whether the result is in bounds.
func (i Index) normalize(length int) (int, bool) {
	idx := int(i)
	if idx < 0 {
		idx += length
	}
	if idx < 0 || idx >= length {
		return 0, false
	}
	return idx, true
}

// SliceSelector is an array-slice selector, e.g. [0:100:5], as defined by
// [RFC 9535 Section 2.3.4].
//
// [RFC 9535 Section 2.3.4]: https://www.rfc-editor.org/rfc/rfc9535.html#name-array-slice-selector
type SliceSelector struct {
	start int
	end   int
	step  int
}

func (SliceSelector) isSingular() bool { return false }

// Slice creates a new SliceSelector. Pass up to three *int arguments (or
// nil) for start, end, and step; omitted arguments use RFC 9535 defaults,
// which depend on the sign of step.
func Slice(args ...*int) SliceSelector {
	const (
		startArg = 0
		endArg   = 1
		stepArg  = 2
	)
	s := SliceSelector{0, math.MaxInt, 1}
	if len(args) > stepArg && args[stepArg] != nil {
		s.step = *args[stepArg]
	}
	switch {
	case s.step < 0:
		s.start, s.end = math.MaxInt, math.MinInt
	case s.step == 0:
		s.start, s.end = 0, 0
	}
	if len(args) > startArg && args[startArg] != nil {
		s.start = *args[startArg]
	}
	if len(args) > endArg && args[endArg] != nil {
		s.end = *args[endArg]
	}
	return s
}

func (s SliceSelector) writeTo(buf *strings.Builder) {
	if s.start != 0 && (s.step >= 0 || s.start != math.MaxInt) {
		buf.WriteString(strconv.FormatInt(int64(s.start), 10))
	}
	buf.WriteByte(':')
	if s.end != math.MaxInt && (s.step >= 0 || s.end != math.MinInt) {
		buf.WriteString(strconv.FormatInt(int64(s.end), 10))
	}
	if s.step != 1 {
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatInt(int64(s.step), 10))
	}
}

// String returns a string representation of s.
func (s SliceSelector) String() string {
	buf := new(strings.Builder)
	s.writeTo(buf)
	return buf.String()
}

// Start returns the configured start bound.
func (s SliceSelector) Start() int { return s.start }

// End returns the configured end bound.
func (s SliceSelector) End() int { return s.end }

// Step returns the configured step.
func (s SliceSelector) Step() int { return s.step }

// Select selects and returns the values from input at the indexes s
// describes. Returns an empty slice if input is not an array.
func (s SliceSelector) Select(input, _ any, _ EvalContext) []any {
	if val, ok := input.([]any); ok {
		res := make([]any, 0, len(val))
		for _, idx := range s.indexes(len(val)) {
			res = append(res, val[idx])
		}
		return res
	}
	return make([]any, 0)
}

// ResolveNodes selects and returns the child Nodes of parent at the
// indexes s describes. Returns an empty slice if the parent value is not
// an array.
func (s SliceSelector) ResolveNodes(parent *Node, _ EvalContext) []*Node {
	if val, ok := parent.Value().([]any); ok {
		idxs := s.indexes(len(val))
		res := make([]*Node, 0, len(idxs))
		for _, idx := range idxs {
			res = append(res, newChild(parent, val[idx], idx))
		}
		return res
	}
	return make([]*Node, 0)
}

// indexes returns, in traversal order, the indexes s selects from an array
// of the given length.
func (s SliceSelector) indexes(length int) []int {
	lower, upper := s.Bounds(length)
	idxs := make([]int, 0, length)
	switch {
	case s.step > 0:
		for i := lower; i < upper; i += s.step {
			idxs = append(idxs, i)
		}
	case s.step < 0:
		for i := upper; lower < i; i += s.step {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// Bounds returns the lower and upper bounds for selecting from an array of
// length, per [RFC 9535 Section 2.3.4.2.2].
//
// [RFC 9535 Section 2.3.4.2.2]: https://www.rfc-editor.org/rfc/rfc9535.html#section-2.3.4.2.2
func (s SliceSelector) Bounds(length int) (int, int) {
	start := normalizeIndex(s.start, length)
	end := normalizeIndex(s.end, length)
	switch {
	case s.step > 0:
		return max(min(start, length), 0), max(min(end, length), 0)
	case s.step < 0:
		return max(min(end, length-1), -1), max(min(start, length-1), -1)
	default:
		return 0, 0
	}
}

// normalizeIndex normalizes index i relative to an array of length.
func normalizeIndex(i, length int) int {
	if i >= 0 {
		return i
	}
	return length + i
}

// FilterSelector is a filter selector, e.g. ?@.a > 1, as defined by
// [RFC 9535 Section 2.3.5].
//
// [RFC 9535 Section 2.3.5]: https://www.rfc-editor.org/rfc/rfc9535.html#name-filter-selector
type FilterSelector struct {
	LogicalOr
}

// Filter returns a new FilterSelector that ORs the evaluation of each expr.
func Filter(expr ...LogicalAnd) *FilterSelector {
	return &FilterSelector{LogicalOr: expr}
}

// String returns a string representation of f.
func (f *FilterSelector) String() string {
	buf := new(strings.Builder)
	f.writeTo(buf)
	return buf.String()
}

func (f *FilterSelector) writeTo(buf *strings.Builder) {
	buf.WriteRune('?')
	f.LogicalOr.writeTo(buf)
}

func (f *FilterSelector) isSingular() bool { return false }

// Select selects and returns the values that f's expression accepts from
// current, which must be an array or object.
func (f *FilterSelector) Select(current, root any, ctx EvalContext) []any {
	ret := []any{}
	switch current := current.(type) {
	case []any:
		for _, v := range current {
			if f.testFilter(v, root, ctx) {
				ret = append(ret, v)
			}
		}
	case *Object:
		for _, k := range orderedKeys(current, ctx) {
			v, _ := current.Get(k)
			if f.testFilter(v, root, ctx) {
				ret = append(ret, v)
			}
		}
	}
	return ret
}

// ResolveNodes selects and returns the child Nodes of parent that f's
// expression accepts.
func (f *FilterSelector) ResolveNodes(parent *Node, ctx EvalContext) []*Node {
	ret := []*Node{}
	switch current := parent.Value().(type) {
	case []any:
		for i, v := range current {
			if f.testFilter(v, parent.Root(), ctx) {
				ret = append(ret, newChild(parent, v, i))
			}
		}
	case *Object:
		for _, k := range orderedKeys(current, ctx) {
			v, _ := current.Get(k)
			if f.testFilter(v, parent.Root(), ctx) {
				ret = append(ret, newChild(parent, v, k))
			}
		}
	}
	return ret
}

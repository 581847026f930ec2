package spec

import "strings"

// Segment is a single segment of a JSONPath query, as defined by
// [RFC 9535 Section 1.4.2]: a list of selectors applied either to each
// input node directly (a child segment) or to each input node and all of
// its descendants (a descendant segment).
//
// [RFC 9535 Section 1.4.2]: https://www.rfc-editor.org/rfc/rfc9535.html#name-segments
type Segment struct {
	selectors  []Selector
	descendant bool
}

// Child creates a Segment that applies sel to each input node directly.
func Child(sel ...Selector) *Segment {
	return &Segment{selectors: sel}
}

// Descendant creates a Segment that applies sel to each input node and,
// pre-order, to every one of its descendants.
func Descendant(sel ...Selector) *Segment {
	return &Segment{selectors: sel, descendant: true}
}

// Selectors returns s's selectors.
func (s *Segment) Selectors() []Selector { return s.selectors }

// IsDescendant returns true if s is a [Descendant] segment.
func (s *Segment) IsDescendant() bool { return s.descendant }

// String returns the string representation of s: "[<selectors>]" for a
// child segment, "..[<selectors>]" for a descendant segment.
func (s *Segment) String() string {
	buf := new(strings.Builder)
	s.writeTo(buf)
	return buf.String()
}

func (s *Segment) writeTo(buf *strings.Builder) {
	if s.descendant {
		buf.WriteString("..")
	}
	buf.WriteByte('[')
	for i, sel := range s.selectors {
		if i > 0 {
			buf.WriteByte(',')
		}
		sel.writeTo(buf)
	}
	buf.WriteByte(']')
}

// Select applies s's selectors to current (and, for a descendant segment,
// to every descendant of current), returning the matched values. Used to
// evaluate path references inside filter expressions.
func (s *Segment) Select(current, root any, ctx EvalContext) []any {
	ret := []any{}
	for _, sel := range s.selectors {
		ret = append(ret, sel.Select(current, root, ctx)...)
	}
	if s.descendant {
		ret = append(ret, s.descend(current, root, ctx)...)
	}
	return ret
}

func (s *Segment) descend(current, root any, ctx EvalContext) []any {
	ret := []any{}
	switch val := current.(type) {
	case []any:
		for _, v := range val {
			ret = append(ret, s.Select(v, root, ctx)...)
		}
	case *Object:
		for _, k := range orderedKeys(val, ctx) {
			v, _ := val.Get(k)
			ret = append(ret, s.Select(v, root, ctx)...)
		}
	}
	return ret
}

// ResolveNodes applies s's selectors to parent (and, for a descendant
// segment, to every descendant of parent, visited pre-order), returning
// the matched child Nodes.
func (s *Segment) ResolveNodes(parent *Node, ctx EvalContext) []*Node {
	ret := []*Node{}
	for _, sel := range s.selectors {
		ret = append(ret, sel.ResolveNodes(parent, ctx)...)
	}
	if s.descendant {
		ret = append(ret, s.descendNodes(parent, ctx)...)
	}
	return ret
}

func (s *Segment) descendNodes(parent *Node, ctx EvalContext) []*Node {
	ret := []*Node{}
	switch val := parent.Value().(type) {
	case []any:
		for i, v := range val {
			child := newChild(parent, v, i)
			ret = append(ret, s.ResolveNodes(child, ctx)...)
		}
	case *Object:
		for _, k := range orderedKeys(val, ctx) {
			v, _ := val.Get(k)
			child := newChild(parent, v, k)
			ret = append(ret, s.ResolveNodes(child, ctx)...)
		}
	}
	return ret
}

// isSingular returns true if s selects at most one node: a child segment
// with exactly one Name or Index selector.
func (s *Segment) isSingular() bool {
	if s.descendant || len(s.selectors) != 1 {
		return false
	}
	return s.selectors[0].isSingular()
}

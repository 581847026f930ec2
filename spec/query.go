package spec

import "strings"

// PathQuery represents a compiled RFC 9535 JSONPath expression: a root or
// relative marker followed by zero or more segments.
type PathQuery struct {
	segments []*Segment
	root     bool
}

// NewQuery returns a new PathQuery. root is true for an absolute ($...)
// query, false for a relative (@...) query as found inside filter
// expressions.
func NewQuery(root bool, segments []*Segment) *PathQuery {
	return &PathQuery{root: root, segments: segments}
}

// Segments returns q's segments.
func (q *PathQuery) Segments() []*Segment { return q.segments }

// IsRoot returns true if q is an absolute ($...) query.
func (q *PathQuery) IsRoot() bool { return q.root }

// String returns the canonical string representation of q.
func (q *PathQuery) String() string {
	buf := new(strings.Builder)
	if q.root {
		buf.WriteRune('$')
	} else {
		buf.WriteRune('@')
	}
	for _, s := range q.segments {
		buf.WriteString(s.String())
	}
	return buf.String()
}

// Select applies q's segments to current or root and returns the matched
// values, without constructing Nodes or normalized paths. Used to evaluate
// path references inside filter expressions.
func (q *PathQuery) Select(current, root any, ctx EvalContext) []any {
	res := []any{current}
	if q.root {
		res = []any{root}
	}
	for _, seg := range q.segments {
		segRes := []any{}
		for _, v := range res {
			segRes = append(segRes, seg.Select(v, root, ctx)...)
		}
		res = segRes
	}
	return res
}

// ResolveNodes applies q's segments starting from start and returns the
// matched Nodes, each carrying its normalized path from the document root.
func (q *PathQuery) ResolveNodes(start *Node, ctx EvalContext) NodeList {
	nodes := NodeList{start}
	for _, seg := range q.segments {
		next := NodeList{}
		for _, n := range nodes {
			next = append(next, seg.ResolveNodes(n, ctx)...)
		}
		nodes = next
	}
	return nodes
}

// isSingular returns true if q always selects at most one value. Defined
// so q can be converted to a [SingularQueryExpr].
func (q *PathQuery) isSingular() bool {
	for _, s := range q.segments {
		if !s.isSingular() {
			return false
		}
	}
	return true
}

// Singular returns a SingularQueryExpr for q if [PathQuery.isSingular]
// holds, or nil otherwise.
func (q *PathQuery) Singular() *SingularQueryExpr {
	if q.isSingular() {
		return singular(q)
	}
	return nil
}

// Expression returns a SingularQueryExpr for q if it's singular, and
// otherwise a FilterQueryExpr.
func (q *PathQuery) Expression() FunctionExprArg {
	if q.isSingular() {
		return singular(q)
	}
	return FilterQuery(q)
}

func singular(q *PathQuery) *SingularQueryExpr {
	selectors := make([]Selector, len(q.segments))
	for i, s := range q.segments {
		selectors[i] = s.selectors[0]
	}
	return &SingularQueryExpr{selectors: selectors, relative: !q.root}
}

// SingularQuery returns true if q is a singular query: every segment is a
// child segment with exactly one Name or Index selector.
func (q *PathQuery) SingularQuery() bool { return q.isSingular() }

// Empty returns true if q has no segments (the root-only query).
func (q *PathQuery) Empty() bool { return len(q.segments) == 0 }

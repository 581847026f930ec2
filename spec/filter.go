package spec

import "strings"

// BasicExpr defines the basic interface for filter expressions.
// Implementations: [ComparisonExpr], [TestExpr], [NotTestExpr], [FunctionExpr],
// [LogicalAnd], [LogicalOr], [ParenExpr], [NotParenExpr].
type BasicExpr interface {
	stringWriter
	// testFilter executes the expression against current and root and
	// returns its truthiness.
	testFilter(current, root any, ctx EvalContext) bool
}

// LogicalAnd is a list of one or more expressions ANDed together by &&.
// Evaluates true if all of its expressions evaluate true, short-circuiting
// on the first false.
type LogicalAnd []BasicExpr

// And creates a LogicalAnd of all expr.
func And(expr ...BasicExpr) LogicalAnd { return LogicalAnd(expr) }

// String returns the string representation of la.
func (la LogicalAnd) String() string {
	var buf strings.Builder
	la.writeTo(&buf)
	return buf.String()
}

func (la LogicalAnd) testFilter(current, root any, ctx EvalContext) bool {
	for _, e := range la {
		if !e.testFilter(current, root, ctx) {
			return false
		}
	}
	return true
}

func (la LogicalAnd) writeTo(buf *strings.Builder) {
	for i, e := range la {
		e.writeTo(buf)
		if i < len(la)-1 {
			buf.WriteString(" && ")
		}
	}
}

// LogicalOr is a list of one or more [LogicalAnd] expressions ORed together
// by ||. Evaluates true if any evaluates true, short-circuiting on the
// first true.
type LogicalOr []LogicalAnd

// Or returns a LogicalOr of all expr.
func Or(expr ...LogicalAnd) LogicalOr { return LogicalOr(expr) }

// String returns the string representation of lo.
func (lo LogicalOr) String() string {
	var buf strings.Builder
	lo.writeTo(&buf)
	return buf.String()
}

func (lo LogicalOr) testFilter(current, root any, ctx EvalContext) bool {
	for _, e := range lo {
		if e.testFilter(current, root, ctx) {
			return true
		}
	}
	return false
}

func (lo LogicalOr) writeTo(buf *strings.Builder) {
	for i, e := range lo {
		e.writeTo(buf)
		if i < len(lo)-1 {
			buf.WriteString(" || ")
		}
	}
}

// execute evaluates lo and returns a LogicalType. Defined by the
// [FunctionExprArg] interface so a parenthesized expression can be passed
// to a LOGICAL-typed function argument.
func (lo LogicalOr) execute(current, root any, ctx EvalContext) PathValue {
	return LogicalFrom(lo.testFilter(current, root, ctx))
}

// ResultType returns FuncLogical. Defined by the [FunctionExprArg] interface.
func (lo LogicalOr) ResultType() FuncType { return FuncLogical }

// ParenExpr is a parenthesized grouping of a [LogicalOr].
type ParenExpr struct {
	LogicalOr
}

// Paren returns a new ParenExpr that ORs the results of each expr.
func Paren(expr ...LogicalAnd) *ParenExpr {
	return &ParenExpr{LogicalOr: LogicalOr(expr)}
}

func (p *ParenExpr) writeTo(buf *strings.Builder) {
	buf.WriteRune('(')
	p.LogicalOr.writeTo(buf)
	buf.WriteRune(')')
}

// String returns the string representation of p.
func (p *ParenExpr) String() string {
	var buf strings.Builder
	p.writeTo(&buf)
	return buf.String()
}

// NotParenExpr is a negated parenthesized grouping of a [LogicalOr].
type NotParenExpr struct {
	LogicalOr
}

// NotParen returns a new NotParenExpr that ORs each expr before negating.
func NotParen(expr ...LogicalAnd) *NotParenExpr {
	return &NotParenExpr{LogicalOr: LogicalOr(expr)}
}

func (np *NotParenExpr) writeTo(buf *strings.Builder) {
	buf.WriteString("!(")
	np.LogicalOr.writeTo(buf)
	buf.WriteRune(')')
}

// String returns the string representation of np.
func (np *NotParenExpr) String() string {
	var buf strings.Builder
	np.writeTo(&buf)
	return buf.String()
}

func (np *NotParenExpr) testFilter(current, root any, ctx EvalContext) bool {
	return !np.LogicalOr.testFilter(current, root, ctx)
}

// TestExpr is a [PathQuery] used as a filter expression, which in that
// context tests true if the query selects at least one node, per
// [RFC 9535 Section 2.3.5.2.1] (the "test expression" coercion rule).
//
// [RFC 9535 Section 2.3.5.2.1]: https://www.rfc-editor.org/rfc/rfc9535.html#section-2.3.5.2.1
type TestExpr struct {
	*PathQuery
}

// Test creates a new TestExpr for q.
func Test(q *PathQuery) *TestExpr { return &TestExpr{PathQuery: q} }

func (e *TestExpr) testFilter(current, root any, ctx EvalContext) bool {
	return len(e.Select(current, root, ctx)) > 0
}

func (e *TestExpr) writeTo(buf *strings.Builder) { buf.WriteString(e.String()) }

// NotTestExpr is a negated [PathQuery] used as a filter expression, which
// tests true if the query selects no nodes.
type NotTestExpr struct {
	*PathQuery
}

// NotTest creates a new NotTestExpr for q.
func NotTest(q *PathQuery) *NotTestExpr { return &NotTestExpr{PathQuery: q} }

func (ne *NotTestExpr) writeTo(buf *strings.Builder) {
	buf.WriteRune('!')
	buf.WriteString(ne.String())
}

func (ne *NotTestExpr) testFilter(current, root any, ctx EvalContext) bool {
	return len(ne.Select(current, root, ctx)) == 0
}

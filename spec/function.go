package spec

import (
	"errors"
	"fmt"
	"strings"
)

// ExpressionType is one of the three filter-expression type-system values
// defined by [RFC 9535 Section 2.4.1]: a function's declared argument and
// return types must be one of these.
//
// [RFC 9535 Section 2.4.1]: https://www.rfc-editor.org/rfc/rfc9535.html#name-type-system-for-function-e
type ExpressionType uint8

const (
	// ValueExpr is the type of a single JSON value (or [Nothing]).
	ValueExpr ExpressionType = iota + 1
	// LogicalExpr is the type of a boolean.
	LogicalExpr
	// NodesExpr is the type of a list of nodes.
	NodesExpr
)

// FuncType classifies the expression passed as a function argument or
// produced as an expression's result, used to validate that it can supply
// an expected [ExpressionType].
type FuncType uint8

const (
	// FuncLiteral is a literal JSON value.
	FuncLiteral FuncType = iota + 1
	// FuncSingularQuery is a singular path query.
	FuncSingularQuery
	// FuncValue is a ValueExpr-typed function return.
	FuncValue
	// FuncNodeList is a node list, from a filter-query argument or a
	// NodesExpr-returning function.
	FuncNodeList
	// FuncLogical is a boolean, from a logical expression or a
	// LogicalExpr-returning function.
	FuncLogical
)

// ConvertsTo returns true if an expression of type ft can supply an
// argument of the expected expression type et.
func (ft FuncType) ConvertsTo(et ExpressionType) bool {
	switch ft {
	case FuncLiteral, FuncValue:
		return et == ValueExpr
	case FuncSingularQuery:
		return true
	case FuncNodeList:
		return et != ValueExpr
	case FuncLogical:
		return et == LogicalExpr
	default:
		return false
	}
}

// PathValue is the interface implemented by the three filter-expression
// result types: [*ValueType], [LogicalType], and [NodesType].
type PathValue interface {
	stringWriter
	// ExpressionType returns the value's ExpressionType.
	ExpressionType() ExpressionType
	// FuncType returns the value's FuncType.
	FuncType() FuncType
}

// NodesType is a JSONPath value representing a node list: the values
// selected by a non-singular path query or a NODES-typed function.
type NodesType []any

// ExpressionType returns NodesExpr. Defined by [PathValue].
func (NodesType) ExpressionType() ExpressionType { return NodesExpr }

// FuncType returns FuncNodeList. Defined by [PathValue].
func (NodesType) FuncType() FuncType { return FuncNodeList }

func (NodesType) writeTo(buf *strings.Builder) { buf.WriteString("NodesType") }

// String returns "NodesType".
func (NodesType) String() string { return "NodesType" }

// NodesFrom converts value to a NodesType. Panics if value isn't a
// NodesType, a *ValueType, or nil.
func NodesFrom(value PathValue) NodesType {
	switch v := value.(type) {
	case NodesType:
		return v
	case *ValueType:
		if v == nil || IsNothing(v.any) {
			return NodesType{}
		}
		return NodesType{v.any}
	case nil:
		return NodesType{}
	default:
		panic(fmt.Sprintf("jsonpath: unexpected argument of type %T", v))
	}
}

// LogicalType represents a filter-expression boolean result.
type LogicalType uint8

const (
	// LogicalFalse is the LogicalType false value.
	LogicalFalse LogicalType = iota
	// LogicalTrue is the LogicalType true value.
	LogicalTrue
)

// Bool returns the bool equivalent of lt.
func (lt LogicalType) Bool() bool { return lt == LogicalTrue }

// ExpressionType returns LogicalExpr. Defined by [PathValue].
func (LogicalType) ExpressionType() ExpressionType { return LogicalExpr }

// FuncType returns FuncLogical. Defined by [PathValue].
func (LogicalType) FuncType() FuncType { return FuncLogical }

func (lt LogicalType) writeTo(buf *strings.Builder) { buf.WriteString(lt.String()) }

// String returns "true" or "false".
func (lt LogicalType) String() string {
	if lt == LogicalTrue {
		return "true"
	}
	return "false"
}

// LogicalFrom converts value to a LogicalType.
func LogicalFrom(value any) LogicalType {
	switch v := value.(type) {
	case LogicalType:
		return v
	case NodesType:
		return boolToLogical(len(v) > 0)
	case bool:
		return boolToLogical(v)
	case nil:
		return LogicalFalse
	default:
		panic(fmt.Sprintf("jsonpath: unexpected argument of type %T", v))
	}
}

func boolToLogical(b bool) LogicalType {
	if b {
		return LogicalTrue
	}
	return LogicalFalse
}

// ValueType wraps a single JSON-like value (string, number, bool, nil,
// []any, *Object) or the [Nothing] sentinel.
type ValueType struct {
	any
}

// Value returns a new *ValueType wrapping val.
func Value(val any) *ValueType { return &ValueType{val} }

// Value returns vt's underlying value.
func (vt *ValueType) Value() any { return vt.any }

// ExpressionType returns ValueExpr. Defined by [PathValue].
func (*ValueType) ExpressionType() ExpressionType { return ValueExpr }

// FuncType returns FuncValue. Defined by [PathValue].
func (*ValueType) FuncType() FuncType { return FuncValue }

// ValueFrom converts value to a *ValueType. Panics for any other PathValue
// kind.
func ValueFrom(value PathValue) *ValueType {
	switch v := value.(type) {
	case *ValueType:
		return v
	case nil:
		return &ValueType{Nothing}
	default:
		panic(fmt.Sprintf("jsonpath: unexpected argument of type %T", value))
	}
}

// testFilter returns true if vt's underlying value is truthy, per the JSON
// coercion rules used when a value expression is tested directly. Defined
// by [BasicExpr].
func (vt *ValueType) testFilter(_, _ any, _ EvalContext) bool {
	return truthy(vt.any)
}

func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case nothingType:
		return false
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}

func (vt *ValueType) writeTo(buf *strings.Builder) { buf.WriteString("ValueType") }

// String returns "ValueType".
func (*ValueType) String() string { return "ValueType" }

// Validator validates the argument expressions passed to a function
// extension at compile time.
type Validator func(args []FunctionExprArg) error

// Evaluator evaluates a function extension's arguments and returns its
// result.
type Evaluator func(args []PathValue) PathValue

// FuncExtension defines a JSONPath function extension, as registered with a
// [github.com/arborio/jsonpath/registry.Registry].
type FuncExtension struct {
	// Name is the function's name as used in JSONPath queries.
	Name string
	// ReturnType is the ExpressionType of the function's result.
	ReturnType ExpressionType
	// Validate runs at parse time to check that args are well-typed for
	// this function.
	Validate Validator
	// Evaluate runs the function against args and returns its result.
	Evaluate Evaluator
}

// Extension creates a new FuncExtension.
func Extension(name string, ret ExpressionType, validate Validator, evaluate Evaluator) *FuncExtension {
	return &FuncExtension{Name: name, ReturnType: ret, Validate: validate, Evaluate: evaluate}
}

// FunctionExprArg defines the interface for function argument expressions.
type FunctionExprArg interface {
	stringWriter
	execute(current, root any, ctx EvalContext) PathValue
	// ResultType returns the FuncType describing this argument expression's
	// result.
	ResultType() FuncType
}

// LiteralArg is a literal JSON value (excluding objects and arrays) used as
// a function argument or comparison operand.
type LiteralArg struct {
	literal any
}

// Literal creates a new LiteralArg.
func Literal(lit any) *LiteralArg { return &LiteralArg{lit} }

// Value returns la's underlying literal value.
func (la *LiteralArg) Value() any { return la.literal }

func (la *LiteralArg) execute(_, _ any, _ EvalContext) PathValue {
	return &ValueType{la.literal}
}

// ResultType returns FuncLiteral. Defined by [FunctionExprArg].
func (la *LiteralArg) ResultType() FuncType { return FuncLiteral }

func (la *LiteralArg) writeTo(buf *strings.Builder) {
	if la.literal == nil {
		buf.WriteString("null")
	} else {
		fmt.Fprintf(buf, "%#v", la.literal)
	}
}

// String returns the string representation of la.
func (la *LiteralArg) String() string {
	var buf strings.Builder
	la.writeTo(&buf)
	return buf.String()
}

func (la *LiteralArg) asValue(_, _ any, _ EvalContext) PathValue {
	return &ValueType{la.literal}
}

// SingularQueryExpr is a path query known at parse time to select at most
// one node, usable as a ValueExpr-typed function argument or comparison
// operand.
type SingularQueryExpr struct {
	relative  bool
	selectors []Selector
}

// SingularQuery creates a new SingularQueryExpr. root is true for an
// absolute ($...) query, false for a relative (@...) query.
func SingularQuery(root bool, selectors []Selector) *SingularQueryExpr {
	return &SingularQueryExpr{relative: !root, selectors: selectors}
}

func (sq *SingularQueryExpr) execute(current, root any, ctx EvalContext) PathValue {
	target := root
	if sq.relative {
		target = current
	}

	for _, sel := range sq.selectors {
		res := sel.Select(target, root, ctx)
		if len(res) == 0 {
			return &ValueType{Nothing}
		}
		target = res[0]
	}
	return &ValueType{target}
}

// ResultType returns FuncSingularQuery. Defined by [FunctionExprArg].
func (*SingularQueryExpr) ResultType() FuncType { return FuncSingularQuery }

func (sq *SingularQueryExpr) asValue(current, root any, ctx EvalContext) PathValue {
	return sq.execute(current, root, ctx)
}

func (sq *SingularQueryExpr) writeTo(buf *strings.Builder) {
	if sq.relative {
		buf.WriteRune('@')
	} else {
		buf.WriteRune('$')
	}
	for _, seg := range sq.selectors {
		buf.WriteRune('[')
		seg.writeTo(buf)
		buf.WriteRune(']')
	}
}

// String returns the string representation of sq.
func (sq *SingularQueryExpr) String() string {
	var buf strings.Builder
	sq.writeTo(&buf)
	return buf.String()
}

// FilterQueryExpr is a (possibly non-singular) path query used as a
// function argument or test expression.
type FilterQueryExpr struct {
	*PathQuery
}

// FilterQuery creates a new FilterQueryExpr for q.
func FilterQuery(q *PathQuery) *FilterQueryExpr { return &FilterQueryExpr{q} }

func (fq *FilterQueryExpr) execute(current, root any, ctx EvalContext) PathValue {
	return NodesType(fq.Select(current, root, ctx))
}

// ResultType returns FuncSingularQuery if fq is a singular query, else
// FuncNodeList. Defined by [FunctionExprArg].
func (fq *FilterQueryExpr) ResultType() FuncType {
	if fq.isSingular() {
		return FuncSingularQuery
	}
	return FuncNodeList
}

func (fq *FilterQueryExpr) writeTo(buf *strings.Builder) {
	buf.WriteString(fq.PathQuery.String())
}

// FunctionExpr is a function call expression: a named function applied to
// argument expressions.
type FunctionExpr struct {
	args []FunctionExprArg
	fn   *FuncExtension
}

// Errors returned while building a FunctionExpr.
var (
	// ErrUnregistered is returned by NewFunctionExpr for an unknown
	// function name.
	ErrUnregistered = errors.New("jsonpath: unknown function")
	// ErrInvalidArgs is returned by NewFunctionExpr when args fail the
	// function's Validate check.
	ErrInvalidArgs = errors.New("jsonpath: invalid arguments to function")
)

// NewFunctionExpr creates a new FunctionExpr calling the function named
// name, registered on reg, with args. Returns an error if the function is
// unregistered or args are invalid.
func NewFunctionExpr(reg FuncLookup, name string, args []FunctionExprArg) (*FunctionExpr, error) {
	fn := reg.Get(name)
	if fn == nil {
		return nil, fmt.Errorf("%w: %s()", ErrUnregistered, name)
	}
	if err := fn.Validate(args); err != nil {
		return nil, fmt.Errorf("%w: %s(): %w", ErrInvalidArgs, name, err)
	}
	return &FunctionExpr{args: args, fn: fn}, nil
}

// FuncLookup is implemented by a function registry capable of looking up a
// [FuncExtension] by name.
type FuncLookup interface {
	Get(name string) *FuncExtension
}

func (fe *FunctionExpr) writeTo(buf *strings.Builder) {
	buf.WriteString(fe.fn.Name + "(")
	for i, arg := range fe.args {
		arg.writeTo(buf)
		if i < len(fe.args)-1 {
			buf.WriteString(", ")
		}
	}
	buf.WriteRune(')')
}

// String returns the string representation of fe.
func (fe *FunctionExpr) String() string {
	var buf strings.Builder
	fe.writeTo(&buf)
	return buf.String()
}

func (fe *FunctionExpr) execute(current, root any, ctx EvalContext) PathValue {
	res := make([]PathValue, len(fe.args))
	for i, a := range fe.args {
		res[i] = a.execute(current, root, ctx)
	}
	return fe.fn.Evaluate(res)
}

// ResultType returns the FuncType corresponding to the registered
// function's declared ReturnType. Defined by [FunctionExprArg].
func (fe *FunctionExpr) ResultType() FuncType {
	switch fe.fn.ReturnType {
	case LogicalExpr:
		return FuncLogical
	case NodesExpr:
		return FuncNodeList
	default:
		return FuncValue
	}
}

func (fe *FunctionExpr) asValue(current, root any, ctx EvalContext) PathValue {
	return fe.execute(current, root, ctx)
}

// testFilter executes fe and returns its truthiness: non-empty for
// NodesType, the underlying bool for LogicalType, and truthy-JSON for
// *ValueType. Defined by [BasicExpr].
func (fe *FunctionExpr) testFilter(current, root any, ctx EvalContext) bool {
	switch res := fe.execute(current, root, ctx).(type) {
	case NodesType:
		return len(res) > 0
	case *ValueType:
		return res.testFilter(current, root, ctx)
	case LogicalType:
		return res.Bool()
	default:
		return false
	}
}

// NotFuncExpr negates the truthiness of a [FunctionExpr] (a "!func()"
// filter expression).
type NotFuncExpr struct {
	*FunctionExpr
}

func (nf NotFuncExpr) testFilter(current, root any, ctx EvalContext) bool {
	return !nf.FunctionExpr.testFilter(current, root, ctx)
}

func (nf NotFuncExpr) writeTo(buf *strings.Builder) {
	buf.WriteRune('!')
	nf.FunctionExpr.writeTo(buf)
}

// String returns the string representation of nf.
func (nf NotFuncExpr) String() string {
	var buf strings.Builder
	nf.writeTo(&buf)
	return buf.String()
}

package spec

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// CompOp defines the JSONPath filter comparison operators, per
// [RFC 9535 Section 2.3.5.2.2].
//
// [RFC 9535 Section 2.3.5.2.2]: https://www.rfc-editor.org/rfc/rfc9535.html#section-2.3.5.2.2
type CompOp uint8

const (
	// EqualTo is the == operator.
	EqualTo CompOp = iota + 1
	// NotEqualTo is the != operator.
	NotEqualTo
	// LessThan is the < operator.
	LessThan
	// GreaterThan is the > operator.
	GreaterThan
	// LessThanEqualTo is the <= operator.
	LessThanEqualTo
	// GreaterThanEqualTo is the >= operator.
	GreaterThanEqualTo
)

// String returns the operator's source-syntax spelling.
func (op CompOp) String() string {
	switch op {
	case EqualTo:
		return "=="
	case NotEqualTo:
		return "!="
	case LessThan:
		return "<"
	case GreaterThan:
		return ">"
	case LessThanEqualTo:
		return "<="
	case GreaterThanEqualTo:
		return ">="
	default:
		return "?"
	}
}

// CompVal defines the interface for comparable operands in a
// [ComparisonExpr]. Implemented by [LiteralArg], [SingularQueryExpr], and
// [FunctionExpr].
type CompVal interface {
	stringWriter
	asValue(current, root any, ctx EvalContext) PathValue
}

// ComparisonExpr compares two operands with a [CompOp].
type ComparisonExpr struct {
	left  CompVal
	op    CompOp
	right CompVal
}

// Comparison creates a new ComparisonExpr comparing left and right with op.
func Comparison(left CompVal, op CompOp, right CompVal) *ComparisonExpr {
	return &ComparisonExpr{left, op, right}
}

func (ce *ComparisonExpr) writeTo(buf *strings.Builder) {
	ce.left.writeTo(buf)
	fmt.Fprintf(buf, " %v ", ce.op)
	ce.right.writeTo(buf)
}

// String returns the string representation of ce.
func (ce *ComparisonExpr) String() string {
	var buf strings.Builder
	ce.writeTo(&buf)
	return buf.String()
}

// testFilter evaluates ce's operands and compares them per ce.op. Defined
// by [BasicExpr].
func (ce *ComparisonExpr) testFilter(current, root any, ctx EvalContext) bool {
	left := asValue(ce.left, current, root, ctx)
	right := asValue(ce.right, current, root, ctx)
	switch ce.op {
	case EqualTo:
		return equalTo(left, right)
	case NotEqualTo:
		return !equalTo(left, right)
	case LessThan:
		return sameType(left, right) && lessThan(left, right)
	case GreaterThan:
		return sameType(left, right) && !lessThan(left, right) && !equalTo(left, right)
	case LessThanEqualTo:
		return sameType(left, right) && (lessThan(left, right) || equalTo(left, right))
	case GreaterThanEqualTo:
		return sameType(left, right) && !lessThan(left, right)
	default:
		panic(fmt.Sprintf("jsonpath: unknown comparison operator %v", ce.op))
	}
}

// asValue evaluates cv to a *ValueType, reducing a one-node NodesType result
// down to its single value (RFC 9535 §2.3.5.1: comparison operands are
// always singular-query-typed).
func asValue(cv CompVal, current, root any, ctx EvalContext) *ValueType {
	switch v := cv.asValue(current, root, ctx).(type) {
	case *ValueType:
		return v
	case NodesType:
		if len(v) == 1 {
			return &ValueType{v[0]}
		}
		return &ValueType{Nothing}
	case LogicalType:
		return &ValueType{v.Bool()}
	default:
		return &ValueType{Nothing}
	}
}

// equalTo implements the == relation from [RFC 9535 Section 2.3.5.2.2]:
// Nothing equals only Nothing; otherwise structural JSON equality, with
// numeric kinds compared as float64.
//
// [RFC 9535 Section 2.3.5.2.2]: https://www.rfc-editor.org/rfc/rfc9535.html#section-2.3.5.2.2
func equalTo(left, right *ValueType) bool {
	leftNothing, rightNothing := IsNothing(left.any), IsNothing(right.any)
	if leftNothing || rightNothing {
		return leftNothing && rightNothing
	}
	return valueEqualTo(left.any, right.any)
}

// toFloat converts val to a float64 if it's a numeric JSON value, including
// a json.Number as produced by decoding a document with UseNumber.
func toFloat(val any) (float64, bool) {
	switch val := val.(type) {
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case float64:
		return val, true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func valueEqualTo(left, right any) bool {
	if left, ok := toFloat(left); ok {
		if right, ok := toFloat(right); ok {
			return left == right
		}
		return false
	}
	return reflect.DeepEqual(left, right)
}

// lessThan implements the < relation, defined only between two numbers or
// two strings.
func lessThan(left, right *ValueType) bool {
	if IsNothing(left.any) || IsNothing(right.any) {
		return false
	}
	return valueLessThan(left.any, right.any)
}

func valueLessThan(left, right any) bool {
	if left, ok := toFloat(left); ok {
		if right, ok := toFloat(right); ok {
			return left < right
		}
		return false
	}
	if left, ok := left.(string); ok {
		if right, ok := right.(string); ok {
			return left < right
		}
	}
	return false
}

// sameType returns true if left and right are of comparable JSON kinds
// (both numeric, both strings, both bools, or otherwise identical Go
// types). Nothing is never sameType as anything, including itself, so
// ordering comparisons against Nothing are always false.
func sameType(left, right *ValueType) bool {
	if IsNothing(left.any) || IsNothing(right.any) {
		return false
	}
	if _, ok := toFloat(left.any); ok {
		_, ok := toFloat(right.any)
		return ok
	}
	return reflect.TypeOf(left.any) == reflect.TypeOf(right.any)
}

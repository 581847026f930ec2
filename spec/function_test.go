package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRegistry struct {
	funcs map[string]*FuncExtension
}

func (r stubRegistry) Get(name string) *FuncExtension { return r.funcs[name] }

func noopValidate([]FunctionExprArg) error { return nil }
func noopEvaluate([]PathValue) PathValue   { return Value("ok") }

func TestValueTypeTestFilter(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		val  any
		want bool
	}{
		{"nil", nil, false},
		{"nothing", Nothing, false},
		{"true", true, true},
		{"false", false, false},
		{"zero_int", 0, false},
		{"nonzero_int", 5, true},
		{"zero_float", 0.0, false},
		{"string", "x", true},
		{"empty_string", "", true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			vt := Value(tc.val)
			assert.Equal(t, tc.want, vt.testFilter(nil, nil, Deterministic))
		})
	}
}

func TestLogicalFrom(t *testing.T) {
	t.Parallel()

	assert.Equal(t, LogicalTrue, LogicalFrom(true))
	assert.Equal(t, LogicalFalse, LogicalFrom(false))
	assert.Equal(t, LogicalFalse, LogicalFrom(nil))
	assert.Equal(t, LogicalTrue, LogicalFrom(NodesType{1}))
	assert.Equal(t, LogicalFalse, LogicalFrom(NodesType{}))
}

func TestNodesFrom(t *testing.T) {
	t.Parallel()

	assert.Equal(t, NodesType{1, 2}, NodesFrom(NodesType{1, 2}))
	assert.Equal(t, NodesType{"x"}, NodesFrom(Value("x")))
	assert.Equal(t, NodesType{}, NodesFrom(Value(Nothing)))
	assert.Equal(t, NodesType{}, NodesFrom(nil))
}

func TestFuncTypeConvertsTo(t *testing.T) {
	t.Parallel()

	assert.True(t, FuncLiteral.ConvertsTo(ValueExpr))
	assert.False(t, FuncLiteral.ConvertsTo(LogicalExpr))
	assert.True(t, FuncSingularQuery.ConvertsTo(ValueExpr))
	assert.True(t, FuncSingularQuery.ConvertsTo(NodesExpr))
	assert.True(t, FuncNodeList.ConvertsTo(NodesExpr))
	assert.False(t, FuncNodeList.ConvertsTo(ValueExpr))
	assert.True(t, FuncLogical.ConvertsTo(LogicalExpr))
	assert.False(t, FuncLogical.ConvertsTo(ValueExpr))
}

func TestNewFunctionExpr(t *testing.T) {
	t.Parallel()

	reg := stubRegistry{funcs: map[string]*FuncExtension{
		"echo": Extension("echo", ValueExpr, noopValidate, noopEvaluate),
	}}

	fe, err := NewFunctionExpr(reg, "echo", []FunctionExprArg{Literal("hi")})
	require.NoError(t, err)
	assert.Equal(t, `echo("hi")`, fe.String())

	_, err = NewFunctionExpr(reg, "missing", nil)
	assert.ErrorIs(t, err, ErrUnregistered)

	rejecting := stubRegistry{funcs: map[string]*FuncExtension{
		"bad": Extension("bad", ValueExpr, func([]FunctionExprArg) error {
			return assert.AnError
		}, noopEvaluate),
	}}
	_, err = NewFunctionExpr(rejecting, "bad", nil)
	assert.ErrorIs(t, err, ErrInvalidArgs)
}

func TestFunctionExprExecuteAndTestFilter(t *testing.T) {
	t.Parallel()

	reg := stubRegistry{funcs: map[string]*FuncExtension{
		"echo": Extension("echo", ValueExpr, noopValidate, noopEvaluate),
	}}
	fe, err := NewFunctionExpr(reg, "echo", nil)
	require.NoError(t, err)

	assert.True(t, fe.testFilter(nil, nil, Deterministic))

	nf := NotFuncExpr{FunctionExpr: fe}
	assert.False(t, nf.testFilter(nil, nil, Deterministic))
	assert.Equal(t, `!echo()`, nf.String())
}

func TestSingularQueryExprExecute(t *testing.T) {
	t.Parallel()

	obj := NewObject()
	obj.Set("a", 5)

	sq := SingularQuery(false, []Selector{Name("a")})
	got := sq.execute(obj, nil, Deterministic)
	vt, ok := got.(*ValueType)
	require.True(t, ok)
	assert.Equal(t, 5, vt.Value())
	assert.Equal(t, `@["a"]`, sq.String())

	missing := SingularQuery(false, []Selector{Name("missing")})
	got = missing.execute(obj, nil, Deterministic)
	vt, ok = got.(*ValueType)
	require.True(t, ok)
	assert.True(t, IsNothing(vt.Value()))
}

func TestFilterQueryExprResultType(t *testing.T) {
	t.Parallel()

	singQuery := NewQuery(false, []*Segment{Child(Name("a"))})
	fq := FilterQuery(singQuery)
	assert.Equal(t, FuncSingularQuery, fq.ResultType())

	multiQuery := NewQuery(false, []*Segment{Child(Wildcard())})
	fq = FilterQuery(multiQuery)
	assert.Equal(t, FuncNodeList, fq.ResultType())
}

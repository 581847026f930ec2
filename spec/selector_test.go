package spec

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectorInterface(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		tok  any
	}{
		{"name", Name("hi")},
		{"index", Index(42)},
		{"slice", Slice()},
		{"wildcard", Wildcard()},
		{"filter", Filter(nil)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Implements(t, (*Selector)(nil), tc.tok)
		})
	}
}

func TestSelectorString(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		tok  Selector
		str  string
		sing bool
	}{
		{"name", Name("hi"), `"hi"`, true},
		{"name_quote", Name(`hi "there"`), `"hi \"there\""`, true},
		{"name_digits", Name("42"), `"42"`, true},
		{"index", Index(42), "42", true},
		{"index_big", Index(math.MaxUint32), "4294967295", true},
		{"index_zero", Index(0), "0", true},
		{"wildcard", Wildcard(), "*", false},
		{"slice_0_4", Slice(intp(0), intp(4)), ":4", false},
		{"slice_4_5", Slice(intp(4), intp(5)), "4:5", false},
		{"slice_end_42", Slice(nil, intp(42)), ":42", false},
		{"slice_start_4", Slice(intp(4)), "4:", false},
		{"slice_start_end_step", Slice(intp(4), intp(7), intp(2)), "4:7:2", false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.str, tc.tok.String())
			assert.Equal(t, tc.sing, tc.tok.isSingular())
		})
	}
}

func TestNameSelect(t *testing.T) {
	t.Parallel()

	obj := NewObject()
	obj.Set("a", 1)
	obj.Set("b", "two")

	assert.Equal(t, []any{1}, Name("a").Select(obj, nil, Deterministic))
	assert.Equal(t, []any{}, Name("missing").Select(obj, nil, Deterministic))
	assert.Equal(t, []any{}, Name("a").Select([]any{1, 2}, nil, Deterministic))
}

func TestNameResolveNodes(t *testing.T) {
	t.Parallel()

	obj := NewObject()
	obj.Set("a", 1)
	root := NewRootNode(obj)

	nodes := Name("a").ResolveNodes(root, Deterministic)
	require := assert.New(t)
	require.Len(nodes, 1)
	require.Equal(1, nodes[0].Value())
	require.Equal(`$['a']`, nodes[0].Path())

	assert.Empty(t, Name("missing").ResolveNodes(root, Deterministic))
}

func TestWildcardSelect(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []any{1, 2, 3}, Wildcard().Select([]any{1, 2, 3}, nil, Deterministic))

	obj := NewObject()
	obj.Set("a", 1)
	obj.Set("b", 2)
	assert.Equal(t, []any{1, 2}, Wildcard().Select(obj, nil, Deterministic))

	assert.Empty(t, Wildcard().Select("not a container", nil, Deterministic))
}

func TestIndexSelect(t *testing.T) {
	t.Parallel()

	arr := []any{"a", "b", "c"}
	assert.Equal(t, []any{"a"}, Index(0).Select(arr, nil, Deterministic))
	assert.Equal(t, []any{"c"}, Index(-1).Select(arr, nil, Deterministic))
	assert.Empty(t, Index(5).Select(arr, nil, Deterministic))
	assert.Empty(t, Index(-5).Select(arr, nil, Deterministic))
}

func TestSliceSelect(t *testing.T) {
	t.Parallel()

	arr := []any{0, 1, 2, 3, 4, 5}

	for _, tc := range []struct {
		name string
		sel  SliceSelector
		want []any
	}{
		{"default", Slice(), arr},
		{"start_end", Slice(intp(1), intp(3)), []any{1, 2}},
		{"neg_step", Slice(intp(4), intp(0), intp(-1)), []any{4, 3, 2, 1}},
		{"step_2", Slice(intp(0), intp(6), intp(2)), []any{0, 2, 4}},
		{"zero_step", Slice(intp(0), intp(6), intp(0)), []any{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.sel.Select(arr, nil, Deterministic))
		})
	}
}

func TestFilterSelect(t *testing.T) {
	t.Parallel()

	arr := []any{1, 2, 3, 4}
	f := Filter(And(Comparison(SingularQuery(false, nil), GreaterThan, Literal(2))))
	// SingularQuery with no selectors returns current itself.
	assert.Equal(t, []any{3, 4}, f.Select(arr, nil, Deterministic))
}

func TestOrderedKeysNondeterministic(t *testing.T) {
	t.Parallel()

	obj := NewObject()
	for i := range 20 {
		obj.Set(string(rune('a'+i)), i)
	}

	ctx := nondeterministicCtx{}

	orderings := map[string]bool{}
	for range 20 {
		keys := orderedKeys(obj, ctx)
		assert.ElementsMatch(t, obj.Keys(), keys)
		orderings[fmt.Sprint(keys)] = true
	}
	assert.GreaterOrEqual(t, len(orderings), 2,
		"orderedKeys should produce more than one distinct ordering across repeated calls")
}

// intp returns a pointer to i, for passing slice bounds to Slice.
func intp(i int) *int { return &i }

type nondeterministicCtx struct{}

func (nondeterministicCtx) Nondeterministic() bool { return true }

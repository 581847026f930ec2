package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborio/jsonpath/registry"
	"github.com/arborio/jsonpath/spec"
)

func TestParseRoundTripsCanonicalForm(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	for _, src := range []string{
		`$`,
		`$.store.book[*].author`,
		`$..author`,
		`$.store.*`,
		`$.store..price`,
		`$..book[2]`,
		`$..book[-1]`,
		`$..book[0,1]`,
		`$..book[:2]`,
		`$..book[?@.isbn]`,
		`$..book[?@.price<10]`,
		`$..*`,
	} {
		t.Run(src, func(t *testing.T) {
			t.Parallel()
			q, err := Parse(reg, src)
			require.NoError(t, err)
			assert.NotNil(t, q)
		})
	}
}

func TestParseSimpleChildSegments(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	q, err := Parse(reg, "$.store.book")
	require.NoError(t, err)

	segs := q.Segments()
	require.Len(t, segs, 2)
	assert.Equal(t, `["store"]`, segs[0].String())
	assert.Equal(t, `["book"]`, segs[1].String())
	assert.True(t, q.IsRoot())
}

func TestParseBracketSelectors(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	q, err := Parse(reg, `$['a', 2, 1:3, *]`)
	require.NoError(t, err)

	segs := q.Segments()
	require.Len(t, segs, 1)
	assert.Equal(t, `["a",2,1:3,*]`, segs[0].String())
}

func TestParseDescendantSegment(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	q, err := Parse(reg, "$..book")
	require.NoError(t, err)

	segs := q.Segments()
	require.Len(t, segs, 1)
	assert.True(t, segs[0].IsDescendant())
}

func TestParseFilterComparison(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	q, err := Parse(reg, `$.book[?@.price < 10]`)
	require.NoError(t, err)
	assert.Equal(t, `$["book"][?@["price"] < 10]`, q.String())
}

func TestParseFilterLogical(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	q, err := Parse(reg, `$.book[?@.price < 10 && @.category == "fiction"]`)
	require.NoError(t, err)
	assert.Contains(t, q.String(), "&&")
}

func TestParseFunctionCall(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	q, err := Parse(reg, `$.book[?length(@.title) > 10]`)
	require.NoError(t, err)
	assert.Contains(t, q.String(), "length(")
}

func TestParseUnknownFunctionErrors(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	_, err := Parse(reg, `$.book[?bogus(@.title) > 10]`)
	assert.ErrorIs(t, err, spec.ErrUnregistered)
}

func TestParseInvalidSyntaxErrors(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	for _, src := range []string{
		``,
		`no-dollar`,
		`$[`,
		`$.store[`,
		`$[01]`,
		`$["unterminated]`,
	} {
		_, err := Parse(reg, src)
		assert.Error(t, err, "source %q", src)
		assert.ErrorIs(t, err, ErrPathParse)
	}
}

func TestParseTrailingGarbageErrors(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	_, err := Parse(reg, `$.a}`)
	assert.Error(t, err)
}

func TestParseIndexOutOfRange(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	_, err := Parse(reg, `$[99999999999999999999]`)
	assert.Error(t, err)
}

func TestParseSingularQueryInComparison(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	q, err := Parse(reg, `$.book[?@.price == $.limit]`)
	require.NoError(t, err)
	assert.Contains(t, q.String(), "==")
}

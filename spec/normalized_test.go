package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizedPathString(t *testing.T) {
	t.Parallel()

	loc := (*Location)(nil).Push("store").Push("book").Push(0).Push("title")
	np := newNormalizedPath(loc)
	assert.Equal(t, `$['store']['book'][0]['title']`, np.String())
}

func TestNormalizedPathStringEscaping(t *testing.T) {
	t.Parallel()

	loc := (*Location)(nil).Push("a'b")
	np := newNormalizedPath(loc)
	assert.Equal(t, `$['a\'b']`, np.String())

	loc = (*Location)(nil).Push("line\nbreak")
	np = newNormalizedPath(loc)
	assert.Equal(t, `$['line\nbreak']`, np.String())
}

func TestNormalizedPathMarshalText(t *testing.T) {
	t.Parallel()

	loc := (*Location)(nil).Push("a")
	np := newNormalizedPath(loc)
	text, err := np.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "$['a']", string(text))
}

func TestNormalizedPathCompare(t *testing.T) {
	t.Parallel()

	a := NormalizedPath{"a"}
	b := NormalizedPath{"b"}
	assert.Negative(t, a.Compare(b))
	assert.Positive(t, b.Compare(a))
	assert.Zero(t, a.Compare(a))

	idx := NormalizedPath{0}
	name := NormalizedPath{"a"}
	assert.Negative(t, idx.Compare(name))
	assert.Positive(t, name.Compare(idx))

	short := NormalizedPath{"a"}
	longer := NormalizedPath{"a", "b"}
	assert.Negative(t, short.Compare(longer))
	assert.Positive(t, longer.Compare(short))
}

func TestLocationKeysAndLen(t *testing.T) {
	t.Parallel()

	var root *Location
	assert.Equal(t, 0, root.Len())
	assert.Empty(t, root.Keys())

	loc := root.Push("a").Push(1)
	assert.Equal(t, 2, loc.Len())
	assert.Equal(t, []any{"a", 1}, loc.Keys())

	key, ok := loc.Last()
	assert.True(t, ok)
	assert.Equal(t, 1, key)

	_, ok = root.Last()
	assert.False(t, ok)
}

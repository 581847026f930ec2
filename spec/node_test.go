package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootNode(t *testing.T) {
	t.Parallel()

	root := NewRootNode("hello")
	assert.Equal(t, "hello", root.Value())
	assert.Equal(t, "hello", root.Root())
	assert.Nil(t, root.Parent())
	assert.Equal(t, "$", root.Path())
}

func TestNodeChildPath(t *testing.T) {
	t.Parallel()

	obj := NewObject()
	arr := []any{1, 2, 3}
	obj.Set("items", arr)
	root := NewRootNode(obj)

	itemsNode := newChild(root, arr, "items")
	elemNode := newChild(itemsNode, 2, 1)

	assert.Equal(t, `$['items']`, itemsNode.Path())
	assert.Equal(t, `$['items'][1]`, elemNode.Path())
	assert.Same(t, root, elemNode.Parent().Parent())
	assert.Equal(t, obj, elemNode.Root())
}

func TestNodeSetValueWritesThrough(t *testing.T) {
	t.Parallel()

	obj := NewObject()
	obj.Set("a", 1)
	root := NewRootNode(obj)
	child := newChild(root, 1, "a")

	require.NoError(t, child.SetValue(2))
	got, ok := obj.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, got)
	assert.Equal(t, 2, child.Value())
}

func TestNodeSetValueArray(t *testing.T) {
	t.Parallel()

	arr := []any{"a", "b", "c"}
	root := NewRootNode(arr)
	child := newChild(root, "b", 1)

	require.NoError(t, child.SetValue("z"))
	assert.Equal(t, "z", arr[1])
}

func TestNodeSetValueErrors(t *testing.T) {
	t.Parallel()

	obj := NewObject()
	root := NewRootNode(obj)
	child := newChild(root, 1, "missing")

	err := child.SetValue(5)
	assert.Error(t, err)

	arr := []any{1}
	arrRoot := NewRootNode(arr)
	arrChild := newChild(arrRoot, 1, 5)
	assert.Error(t, arrChild.SetValue(9))
}

func TestNodeSetValueRootDoesNotRewriteCaller(t *testing.T) {
	t.Parallel()

	root := NewRootNode(42)
	require.NoError(t, root.SetValue(43))
	assert.Equal(t, 43, root.Value())
}

func TestNodeListHelpers(t *testing.T) {
	t.Parallel()

	obj := NewObject()
	obj.Set("a", 1)
	obj.Set("b", 2)
	root := NewRootNode(obj)
	nodes := NodeList{
		newChild(root, 1, "a"),
		newChild(root, 2, "b"),
	}

	assert.Equal(t, []any{1, 2}, nodes.Values())
	assert.Equal(t, []string{`$['a']`, `$['b']`}, nodes.Paths())
	assert.Equal(t, []Item{
		{Path: `$['a']`, Value: 1},
		{Path: `$['b']`, Value: 2},
	}, nodes.Items())
	assert.False(t, nodes.Empty())
	assert.True(t, NodeList{}.Empty())
}

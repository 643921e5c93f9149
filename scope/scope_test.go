package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSearchesAncestors(t *testing.T) {
	c := NewChain[string, int](Strings{})
	c.Root().SetLocal("x", 1)
	inner := c.Enter("block")

	v, ok := inner.Get("x")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = inner.GetLocal("x")
	assert.False(t, ok)

	_, ok = inner.Get("missing")
	assert.False(t, ok, "unbound keys are not an error")
}

func TestLookupReturnsOwner(t *testing.T) {
	c := NewChain[string, int](Strings{})
	c.Root().SetLocal("x", 1)
	mid := c.Enter("method", Bind("y", 2))
	c.Enter("block")

	_, owner, ok := c.Current().Lookup("y")
	require.True(t, ok)
	assert.Same(t, mid, owner)

	_, owner, ok = c.Current().Lookup("x")
	require.True(t, ok)
	assert.Same(t, c.Root(), owner)
}

func TestSetNearest(t *testing.T) {
	c := NewChain[string, int](Strings{})
	c.Root().SetLocal("x", 1)
	inner := c.Enter("block")

	inner.SetNearest("x", 5)
	v, _ := c.Root().GetLocal("x")
	assert.Equal(t, 5, v, "existing binding is written where it lives")
	assert.Equal(t, 0, inner.Len())

	inner.SetNearest("z", 9)
	_, ok := c.Root().GetLocal("z")
	assert.False(t, ok)
	v, ok = inner.GetLocal("z")
	require.True(t, ok)
	assert.Equal(t, 9, v)
}

func TestLeaveDiscardsBindings(t *testing.T) {
	c := NewChain[string, int](Strings{})
	c.Enter("first").SetLocal("i", 1)
	c.Leave()
	assert.False(t, c.Current().Has("i"))

	c.Enter("second").SetLocal("i", 2)
	v, ok := c.Current().Get("i")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	c.Leave()

	_, ok = c.Current().Get("i")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Depth())
}

func TestLeaveAtRootIsNoop(t *testing.T) {
	c := NewChain[string, int](Strings{})
	assert.Same(t, c.Root(), c.Leave())
	assert.Same(t, c.Root(), c.Current())
}

// prefixKeyer treats keys sharing their first byte as equal, which mimics
// keys with a loose equality relation.
type prefixKeyer struct{}

func (prefixKeyer) Hash(k string) uint64   { return HashString(k[:1]) }
func (prefixKeyer) Equal(a, b string) bool { return a[:1] == b[:1] }

func TestCustomKeyer(t *testing.T) {
	s := New[string, int]("root", prefixKeyer{})
	s.SetLocal("apple", 1)
	s.SetLocal("avocado", 2)
	assert.Equal(t, 1, s.Len(), "equal keys overwrite")

	v, ok := s.Get("almond")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	s.SetLocal("banana", 3)
	var keys []string
	for k := range s.All() {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"avocado", "banana"}, keys)
}

func TestSwapRestoresCurrent(t *testing.T) {
	c := NewChain[string, int](Strings{})
	def := c.Enter("method")
	def.SetLocal("local", 1)
	c.Leave()
	caller := c.Enter("caller")

	prev := c.Swap(def)
	assert.Same(t, caller, prev)
	body := c.Enter("call")
	_, ok := body.Get("local")
	assert.True(t, ok, "entered scope sees the swapped-in parent")
	c.Leave()
	c.Swap(prev)
	assert.Same(t, caller, c.Current())
}

func TestRestoreRollsBackInPlace(t *testing.T) {
	root := New[string, int]("global", Strings{})
	root.SetLocal("a", 1)
	child := root.Child("method")
	saved := root.Save()

	root.SetLocal("a", 2)
	root.SetLocal("b", 3)
	root.Restore(saved)

	v, ok := child.Get("a")
	require.True(t, ok, "child still resolves through the restored parent")
	assert.Equal(t, 1, v)
	assert.False(t, root.Has("b"))
	assert.Equal(t, 1, root.Len())

	root.SetLocal("c", 4)
	root.Restore(saved)
	assert.False(t, root.Has("c"), "saved bindings are reusable")
}

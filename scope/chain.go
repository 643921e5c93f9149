package scope

// Chain tracks the current scope of a walk. Entering pushes a child scope,
// leaving moves back to the parent.
type Chain[K, V any] struct {
	root    *Scope[K, V]
	current *Scope[K, V]
}

// NewChain creates a chain whose root scope is named "root".
func NewChain[K, V any](keyer Keyer[K]) *Chain[K, V] {
	root := New[K, V]("root", keyer)
	return &Chain[K, V]{root: root, current: root}
}

// Root returns the global scope.
func (c *Chain[K, V]) Root() *Scope[K, V] { return c.root }

// Current returns the innermost scope.
func (c *Chain[K, V]) Current() *Scope[K, V] { return c.current }

// Depth returns how many scopes separate the current scope from the root.
func (c *Chain[K, V]) Depth() int {
	n := 0
	for s := c.current; s.parent != nil; s = s.parent {
		n++
	}
	return n
}

// Enter pushes a new scope seeded with the given bindings and returns it.
func (c *Chain[K, V]) Enter(name string, seed ...Binding[K, V]) *Scope[K, V] {
	child := c.current.Child(name)
	for _, b := range seed {
		child.SetLocal(b.Key, b.Value)
	}
	c.current = child
	return child
}

// Leave pops the current scope and returns the new current scope. Leaving
// the root is a no-op.
func (c *Chain[K, V]) Leave() *Scope[K, V] {
	if c.current.parent != nil {
		c.current = c.current.parent
	}
	return c.current
}

// Binding is a key/value pair used to seed a scope.
type Binding[K, V any] struct {
	Key   K
	Value V
}

// Bind builds a Binding.
func Bind[K, V any](k K, v V) Binding[K, V] {
	return Binding[K, V]{Key: k, Value: v}
}

// Swap makes s the current scope and returns the previous current scope.
// Calling Swap again with the returned scope restores the chain.
func (c *Chain[K, V]) Swap(s *Scope[K, V]) *Scope[K, V] {
	prev := c.current
	c.current = s
	return prev
}

// Package scope implements the parent-linked symbol environments shared by
// the analyzer, optimizer and interpreter.
//
// A single generic container serves every key/value instantiation (names to
// types, names to values, signatures to methods). Keys are hashed and
// compared through a Keyer so that keys with a custom notion of equality can
// be stored: entries live in hash buckets that are scanned linearly with
// Keyer.Equal.
package scope

import (
	"hash/maphash"
	"iter"
	"slices"
)

// Keyer hashes and compares keys. Keys that are Equal must have the same
// Hash.
type Keyer[K any] interface {
	Hash(k K) uint64
	Equal(a, b K) bool
}

var seed = maphash.MakeSeed()

// Strings is the Keyer for plain string keys.
type Strings struct{}

func (Strings) Hash(k string) uint64   { return maphash.String(seed, k) }
func (Strings) Equal(a, b string) bool { return a == b }

// HashString exposes the package seed so other Keyer implementations hash
// consistently with Strings.
func HashString(s string) uint64 { return maphash.String(seed, s) }

type entry[K, V any] struct {
	key   K
	value V
}

// Scope is one lexical region: a local table plus a link to its parent.
type Scope[K, V any] struct {
	name    string
	parent  *Scope[K, V]
	keyer   Keyer[K]
	buckets map[uint64][]entry[K, V]
	order   []uint64
	size    int
}

// New creates a root scope.
func New[K, V any](name string, keyer Keyer[K]) *Scope[K, V] {
	return &Scope[K, V]{name: name, keyer: keyer, buckets: make(map[uint64][]entry[K, V])}
}

// Child creates a scope nested inside s.
func (s *Scope[K, V]) Child(name string) *Scope[K, V] {
	c := New[K, V](name, s.keyer)
	c.parent = s
	return c
}

// Name returns the label the scope was created with.
func (s *Scope[K, V]) Name() string { return s.name }

// Parent returns the enclosing scope, or nil at the root.
func (s *Scope[K, V]) Parent() *Scope[K, V] { return s.parent }

// Len returns the number of local bindings.
func (s *Scope[K, V]) Len() int { return s.size }

func (s *Scope[K, V]) index(k K) (uint64, int) {
	h := s.keyer.Hash(k)
	for i, e := range s.buckets[h] {
		if s.keyer.Equal(e.key, k) {
			return h, i
		}
	}
	return h, -1
}

// GetLocal looks k up in this scope only.
func (s *Scope[K, V]) GetLocal(k K) (V, bool) {
	h, i := s.index(k)
	if i < 0 {
		var zero V
		return zero, false
	}
	return s.buckets[h][i].value, true
}

// Get looks k up in this scope, then in each ancestor.
func (s *Scope[K, V]) Get(k K) (V, bool) {
	v, _, ok := s.Lookup(k)
	return v, ok
}

// Lookup is like Get but also returns the scope that owns the binding.
func (s *Scope[K, V]) Lookup(k K) (V, *Scope[K, V], bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.GetLocal(k); ok {
			return v, cur, true
		}
	}
	var zero V
	return zero, nil, false
}

// Has reports whether k is bound here or in an ancestor.
func (s *Scope[K, V]) Has(k K) bool {
	_, _, ok := s.Lookup(k)
	return ok
}

// SetLocal inserts or overwrites k in this scope only.
func (s *Scope[K, V]) SetLocal(k K, v V) {
	h, i := s.index(k)
	if i >= 0 {
		s.buckets[h][i] = entry[K, V]{key: k, value: v}
		return
	}
	if len(s.buckets[h]) == 0 {
		s.order = append(s.order, h)
	}
	s.buckets[h] = append(s.buckets[h], entry[K, V]{key: k, value: v})
	s.size++
}

// SetNearest overwrites k in the closest scope that binds it, or inserts it
// locally when no scope does.
func (s *Scope[K, V]) SetNearest(k K, v V) {
	if _, owner, ok := s.Lookup(k); ok {
		owner.SetLocal(k, v)
		return
	}
	s.SetLocal(k, v)
}

// All iterates the local bindings in insertion order of their hash buckets.
func (s *Scope[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, h := range s.order {
			for _, e := range s.buckets[h] {
				if !yield(e.key, e.value) {
					return
				}
			}
		}
	}
}

// Saved is a copy of the local bindings of one scope.
type Saved[K, V any] struct {
	buckets map[uint64][]entry[K, V]
	order   []uint64
	size    int
}

// Save copies the local bindings of s.
func (s *Scope[K, V]) Save() Saved[K, V] {
	return Saved[K, V]{buckets: cloneBuckets(s.buckets), order: slices.Clone(s.order), size: s.size}
}

// Restore replaces the local bindings of s with saved. s keeps its
// identity, so child scopes created before the call stay linked to it.
func (s *Scope[K, V]) Restore(saved Saved[K, V]) {
	s.buckets = cloneBuckets(saved.buckets)
	s.order = slices.Clone(saved.order)
	s.size = saved.size
}

func cloneBuckets[K, V any](in map[uint64][]entry[K, V]) map[uint64][]entry[K, V] {
	out := make(map[uint64][]entry[K, V], len(in))
	for h, b := range in {
		out[h] = slices.Clone(b)
	}
	return out
}

// Package types holds the value-type descriptors ("providers") of the
// SandScript engine and the process-wide registry they live in.
//
// The registry is append-only: providers are registered during program
// initialisation and read concurrently afterwards.
package types

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// BinaryFunc applies a binary operator to two runtime values.
type BinaryFunc func(left, right any) (any, error)

// UnaryFunc applies a unary operator to a runtime value.
type UnaryFunc func(operand any) (any, error)

// Provider describes one value type: its names, backing Go type, operator
// table, equality and default value.
type Provider interface {
	// Name is the human readable name (e.g. "Boolean").
	Name() string
	// Identifier is the source-level keyword (e.g. "bool"). May be empty for
	// types that cannot be declared in scripts.
	Identifier() string
	// Backing is the Go type runtime values of this provider use.
	Backing() reflect.Type
	Binary(op Operator) (BinaryFunc, bool)
	Unary(op Operator) (UnaryFunc, bool)
	Equal(a, b any) bool
	Default() any
}

// Callable is implemented by method values so they can be classified as
// the Method type without this package knowing their concrete type.
type Callable interface {
	SameCallable(other Callable) bool
}

var (
	// ErrDuplicateProvider is returned when a provider reuses a registered
	// name or identifier.
	ErrDuplicateProvider = errors.New("duplicate type provider")
)

var registry = struct {
	sync.RWMutex
	providers []Provider
}{
	providers: []Provider{Nothing, Variable, Boolean, Character, Number, Method, String},
}

// Register appends a provider to the registry. Registering a provider whose
// name or identifier is already taken is a configuration error.
func Register(p Provider) error {
	registry.Lock()
	defer registry.Unlock()
	for _, existing := range registry.providers {
		if existing == p {
			return nil
		}
		if existing.Name() == p.Name() {
			return fmt.Errorf("%w: name %q", ErrDuplicateProvider, p.Name())
		}
		if p.Identifier() != "" && existing.Identifier() == p.Identifier() {
			return fmt.Errorf("%w: identifier %q", ErrDuplicateProvider, p.Identifier())
		}
	}
	registry.providers = append(registry.providers, p)
	return nil
}

// MustRegister is like Register but panics on error. Meant for init().
func MustRegister(p Provider) {
	if err := Register(p); err != nil {
		panic(err)
	}
}

// All returns a snapshot of every registered provider in registration order.
func All() []Provider {
	registry.RLock()
	defer registry.RUnlock()
	out := make([]Provider, len(registry.providers))
	copy(out, registry.providers)
	return out
}

func find(match func(Provider) bool) (Provider, bool) {
	registry.RLock()
	defer registry.RUnlock()
	for _, p := range registry.providers {
		if match(p) {
			return p, true
		}
	}
	return nil, false
}

// ByName looks a provider up by its human readable name.
func ByName(name string) (Provider, bool) {
	return find(func(p Provider) bool { return p.Name() == name })
}

// ByIdentifier looks a provider up by its source-level identifier.
func ByIdentifier(ident string) (Provider, bool) {
	if ident == "" {
		return nil, false
	}
	return find(func(p Provider) bool { return p.Identifier() == ident })
}

// ByBacking looks a provider up by the Go type backing its values.
func ByBacking(t reflect.Type) (Provider, bool) {
	if t == nil {
		return Nothing, true
	}
	if t.Implements(callableType) {
		return Method, true
	}
	return find(func(p Provider) bool { return p.Backing() == t })
}

// Of returns the provider of a runtime value. nil maps to Nothing.
func Of(v any) (Provider, bool) {
	if v == nil {
		return Nothing, true
	}
	if _, ok := v.(Callable); ok {
		return Method, true
	}
	return ByBacking(reflect.TypeOf(v))
}

// Compatible is the loose type check: actual satisfies expected when they
// are the same provider or either one is the wildcard.
func Compatible(actual, expected Provider) bool {
	return actual == expected || actual == Variable || expected == Variable
}

// Package interop connects host Go code and scripts: method signatures,
// native and script methods, native variable bindings, and the process-wide
// registry of natives every script starts with.
//
// Registration happens during program initialisation (typically from
// init functions in the modules packages). The registry is safe for
// concurrent reads afterwards.
package interop

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrDuplicate is returned when a method signature or variable name is
// already registered.
var ErrDuplicate = errors.New("already registered")

var registry = struct {
	sync.RWMutex
	methods   []*Method
	variables []*Variable
}{}

// RegisterMethod adds a native method.
func RegisterMethod(m *Method) error {
	if !m.IsNative() {
		return fmt.Errorf("method %s: only native methods can be registered", m.Name)
	}
	registry.Lock()
	defer registry.Unlock()
	sig := m.Signature()
	for _, existing := range registry.methods {
		if existing.Signature().Equal(sig) {
			return fmt.Errorf("method %s: %w", sig, ErrDuplicate)
		}
	}
	registry.methods = append(registry.methods, m)
	return nil
}

// RegisterVariable adds a native variable.
func RegisterVariable(v *Variable) error {
	registry.Lock()
	defer registry.Unlock()
	for _, existing := range registry.variables {
		if existing.Name == v.Name {
			return fmt.Errorf("variable %s: %w", v.Name, ErrDuplicate)
		}
	}
	registry.variables = append(registry.variables, v)
	return nil
}

// MustBind binds fn with Bind, attaches doc and registers the result.
// It panics on error and is meant for init functions.
func MustBind(name, doc string, fn any) *Method {
	m, err := Bind(name, fn)
	if err != nil {
		panic(err)
	}
	m.Doc = doc
	if err := RegisterMethod(m); err != nil {
		panic(err)
	}
	return m
}

// Methods returns a snapshot of the registered native methods.
func Methods() []*Method {
	registry.RLock()
	defer registry.RUnlock()
	out := make([]*Method, len(registry.methods))
	copy(out, registry.methods)
	return out
}

// Variables returns a snapshot of the registered native variables.
func Variables() []*Variable {
	registry.RLock()
	defer registry.RUnlock()
	out := make([]*Variable, len(registry.variables))
	copy(out, registry.variables)
	return out
}

// MethodsNamed returns every overload registered under name.
func MethodsNamed(name string) []*Method {
	var out []*Method
	for _, m := range Methods() {
		if m.Name == name {
			out = append(out, m)
		}
	}
	return out
}

// MethodNames returns the sorted, de-duplicated names of registered methods.
func MethodNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range Methods() {
		if !seen[m.Name] {
			seen[m.Name] = true
			names = append(names, m.Name)
		}
	}
	sort.Strings(names)
	return names
}

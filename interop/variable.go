package interop

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/rubiojr/sandscript/types"
)

var (
	// ErrUnreadable is returned when reading a variable that cannot be read.
	ErrUnreadable = errors.New("variable is not readable")
	// ErrUnwritable is returned when writing a variable that cannot be
	// written.
	ErrUnwritable = errors.New("variable is not writable")
	// ErrValueType is returned when a value of the wrong type is written to
	// a variable.
	ErrValueType = errors.New("value type mismatch")
)

// Accessor backs a native variable. A nil Get or Set means the underlying
// storage does not support that direction.
type Accessor struct {
	Get func() any
	Set func(v any)
}

// Variable binds host data into scripts. Reads and writes go through the
// accessor instead of a scope slot.
type Variable struct {
	Name     string
	Type     types.Provider
	CanRead  bool
	CanWrite bool
	Doc      string

	acc Accessor
}

// NewVariable builds a native variable. Requesting a capability the
// accessor cannot provide is an error.
func NewVariable(name string, typ types.Provider, acc Accessor, canRead, canWrite bool) (*Variable, error) {
	if !registered(typ) || typ == types.Nothing || typ == types.Variable {
		return nil, fmt.Errorf("variable %s: %w", name, ErrValueType)
	}
	if canRead && acc.Get == nil {
		return nil, fmt.Errorf("variable %s: %w", name, ErrUnreadable)
	}
	if canWrite && acc.Set == nil {
		return nil, fmt.Errorf("variable %s: %w", name, ErrUnwritable)
	}
	return &Variable{Name: name, Type: typ, CanRead: canRead, CanWrite: canWrite, acc: acc}, nil
}

// BindVariable exposes *ptr as a native variable whose type is the
// provider backed by T.
func BindVariable[T any](name string, ptr *T, canRead, canWrite bool) (*Variable, error) {
	typ, ok := types.ByBacking(reflect.TypeFor[T]())
	if !ok {
		return nil, fmt.Errorf("variable %s: %w", name, ErrValueType)
	}
	return NewVariable(name, typ, Accessor{
		Get: func() any { return *ptr },
		Set: func(v any) { *ptr = v.(T) },
	}, canRead, canWrite)
}

// Constant exposes a read-only value.
func Constant(name string, v any) (*Variable, error) {
	typ, ok := types.Of(v)
	if !ok {
		return nil, fmt.Errorf("constant %s: %w", name, ErrValueType)
	}
	return NewVariable(name, typ, Accessor{Get: func() any { return v }}, true, false)
}

// Get reads the variable.
func (v *Variable) Get() (any, error) {
	if !v.CanRead {
		return nil, fmt.Errorf("%s: %w", v.Name, ErrUnreadable)
	}
	return v.acc.Get(), nil
}

// Set writes the variable. The value must be of the variable's type.
func (v *Variable) Set(x any) error {
	if !v.CanWrite {
		return fmt.Errorf("%s: %w", v.Name, ErrUnwritable)
	}
	if got, ok := types.Of(x); !ok || got != v.Type {
		return fmt.Errorf("%s: %w: want %s, got %T", v.Name, ErrValueType, v.Type.Name(), x)
	}
	v.acc.Set(x)
	return nil
}

package interop

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/rubiojr/sandscript/ast"
	"github.com/rubiojr/sandscript/types"
)

var (
	// ErrReturnType is returned when a native method's return type is not a
	// registered provider.
	ErrReturnType = errors.New("unsupported return type")
	// ErrHostParam is returned when a bound Go function does not take the
	// Host handle as its first parameter.
	ErrHostParam = errors.New("first parameter must be the host handle")
	// ErrParamType is returned when a parameter type is not a registered
	// provider.
	ErrParamType = errors.New("unsupported parameter type")
	// ErrArgument is returned when a native method is invoked with
	// arguments that do not fit its parameters.
	ErrArgument = errors.New("bad argument")
)

// Host is the handle native methods receive. It lets them call back into
// the script that invoked them.
type Host interface {
	Call(method string, args ...any) (any, error)
}

// NativeFunc is the implementation of a native method. args holds one value
// per script-visible parameter.
type NativeFunc func(h Host, args []any) (any, error)

// Param is a named, typed method parameter.
type Param struct {
	Name string
	Type types.Provider
}

// Method is a callable visible to scripts. It is either backed by a Go
// function (native) or by a method declaration in a script.
type Method struct {
	Name   string
	Return types.Provider
	Params []Param
	Doc    string

	native NativeFunc
	decl   *ast.MethodDeclaration
}

// NewNative builds a native method from an explicit description.
func NewNative(name string, ret types.Provider, params []Param, fn NativeFunc) (*Method, error) {
	if fn == nil {
		return nil, fmt.Errorf("method %s: nil implementation", name)
	}
	if !registered(ret) {
		return nil, fmt.Errorf("method %s: %w", name, ErrReturnType)
	}
	for _, p := range params {
		if !registered(p.Type) || p.Type == types.Nothing {
			return nil, fmt.Errorf("method %s: parameter %s: %w", name, p.Name, ErrParamType)
		}
	}
	return &Method{Name: name, Return: ret, Params: params, native: fn}, nil
}

// NewScript builds a method from its declaration. The declaration's types
// are already resolved by the parser.
func NewScript(decl *ast.MethodDeclaration) *Method {
	params := make([]Param, len(decl.Params))
	for i, p := range decl.Params {
		params[i] = Param{Name: p.Name, Type: p.Type.Provider}
	}
	return &Method{Name: decl.Name, Return: decl.Return.Provider, Params: params, decl: decl}
}

func registered(p types.Provider) bool {
	if p == nil {
		return false
	}
	got, ok := types.ByName(p.Name())
	return ok && got == p
}

// Signature derives the method's dispatch key.
func (m *Method) Signature() Signature {
	params := make([]types.Provider, len(m.Params))
	for i, p := range m.Params {
		params[i] = p.Type
	}
	return Signature{Name: m.Name, Params: params}
}

// IsNative reports whether the method is backed by Go code.
func (m *Method) IsNative() bool { return m.native != nil }

// Declaration returns the script declaration, or nil for native methods.
func (m *Method) Declaration() *ast.MethodDeclaration { return m.decl }

// CallNative runs a native method. Arguments are checked against the
// declared parameter types first.
func (m *Method) CallNative(h Host, args []any) (any, error) {
	if m.native == nil {
		return nil, fmt.Errorf("%s is not a native method", m.Name)
	}
	if len(args) != len(m.Params) {
		return nil, fmt.Errorf("%s: %w: want %d arguments, got %d", m.Name, ErrArgument, len(m.Params), len(args))
	}
	for i, a := range args {
		want := m.Params[i].Type
		if want == types.Variable {
			continue
		}
		if got, ok := types.Of(a); !ok || got != want {
			return nil, fmt.Errorf("%s: %w: parameter %s wants %s, got %T", m.Name, ErrArgument, m.Params[i].Name, want.Name(), a)
		}
	}
	v, err := m.native(h, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Name, err)
	}
	return v, nil
}

// SameCallable implements types.Callable.
func (m *Method) SameCallable(other types.Callable) bool {
	o, ok := other.(*Method)
	return ok && m.IsNative() == o.IsNative() && m.Signature().Equal(o.Signature())
}

func (m *Method) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s(", m.Return.Identifier(), m.Name)
	for i, p := range m.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Type.Identifier())
		if p.Name != "" {
			sb.WriteByte(' ')
			sb.WriteString(p.Name)
		}
	}
	sb.WriteByte(')')
	return sb.String()
}

var (
	hostType  = reflect.TypeFor[Host]()
	valueType = reflect.TypeFor[Value]()
	errorType = reflect.TypeFor[error]()
)

// Bind builds a native method from a Go function using reflection. fn must
// take a Host as its first parameter followed by parameters whose types
// are backed by registered providers (or Value, the wildcard). It may
// return nothing, a value, an error, or a value and an error.
func Bind(name string, fn any) (*Method, error) {
	fv := reflect.ValueOf(fn)
	ft := fv.Type()
	if ft.Kind() != reflect.Func {
		return nil, fmt.Errorf("method %s: %T is not a function", name, fn)
	}
	if ft.IsVariadic() {
		return nil, fmt.Errorf("method %s: variadic functions: %w", name, ErrParamType)
	}

	ret, returnsErr, err := bindReturn(ft)
	if err != nil {
		return nil, fmt.Errorf("method %s: %w", name, err)
	}

	if ft.NumIn() == 0 || ft.In(0) != hostType {
		return nil, fmt.Errorf("method %s: %w", name, ErrHostParam)
	}
	params := make([]Param, 0, ft.NumIn()-1)
	for i := 1; i < ft.NumIn(); i++ {
		p, ok := providerFor(ft.In(i))
		if !ok || p == types.Nothing {
			return nil, fmt.Errorf("method %s: parameter %d (%s): %w", name, i, ft.In(i), ErrParamType)
		}
		params = append(params, Param{Name: fmt.Sprintf("arg%d", i), Type: p})
	}

	call := func(h Host, args []any) (any, error) {
		in := make([]reflect.Value, ft.NumIn())
		in[0] = reflect.ValueOf(&h).Elem()
		for i, a := range args {
			pt := ft.In(i + 1)
			if pt == valueType {
				in[i+1] = reflect.ValueOf(ValueOf(a))
				continue
			}
			in[i+1] = reflect.ValueOf(a)
		}
		out := fv.Call(in)
		if returnsErr {
			if e := out[len(out)-1]; !e.IsNil() {
				return nil, e.Interface().(error)
			}
			out = out[:len(out)-1]
		}
		if len(out) == 0 {
			return nil, nil
		}
		v := out[0].Interface()
		if w, ok := v.(Value); ok {
			return w.Any(), nil
		}
		return v, nil
	}
	return &Method{Name: name, Return: ret, Params: params, native: call}, nil
}

func bindReturn(ft reflect.Type) (types.Provider, bool, error) {
	switch ft.NumOut() {
	case 0:
		return types.Nothing, false, nil
	case 1:
		if ft.Out(0) == errorType {
			return types.Nothing, true, nil
		}
		p, ok := providerFor(ft.Out(0))
		if !ok {
			return nil, false, ErrReturnType
		}
		return p, false, nil
	case 2:
		if ft.Out(1) != errorType {
			return nil, false, ErrReturnType
		}
		p, ok := providerFor(ft.Out(0))
		if !ok {
			return nil, false, ErrReturnType
		}
		return p, true, nil
	default:
		return nil, false, ErrReturnType
	}
}

func providerFor(t reflect.Type) (types.Provider, bool) {
	if t == valueType {
		return types.Variable, true
	}
	if t.Kind() == reflect.Interface {
		return nil, false
	}
	return types.ByBacking(t)
}

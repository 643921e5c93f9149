package modules

import (
	"fmt"
	"sort"

	"github.com/rubiojr/sandscript/interop"
)

// FuncDef describes a native method exposed by a module.
type FuncDef struct {
	// Name is the method name inside the module (e.g. "abs", "encode").
	Name string
	// Fn is a Go function accepted by interop.Bind: a Host first, then
	// parameters backed by registered types.
	Fn any
	// ArgNames names the script-visible parameters for documentation.
	ArgNames []string
	Doc      string
}

// Module groups native methods under a name.
type Module struct {
	Name string
	Doc  string
	// Global exposes functions under their bare names. Otherwise scripts
	// call them as <module>_<name>.
	Global bool
	Funcs  []FuncDef

	methods []*interop.Method
}

var registry = make(map[string]*Module)

// Register binds every function of m and registers it as a native method.
// It panics on a function that cannot be bound or a name already taken;
// both are programming errors surfaced at init.
func Register(m *Module) {
	if err := register(m); err != nil {
		panic(err)
	}
}

func register(m *Module) error {
	if _, ok := registry[m.Name]; ok {
		return fmt.Errorf("module %s: %w", m.Name, interop.ErrDuplicate)
	}
	methods := make([]*interop.Method, 0, len(m.Funcs))
	for _, f := range m.Funcs {
		meth, err := interop.Bind(m.MethodName(f.Name), f.Fn)
		if err != nil {
			return fmt.Errorf("module %s: %w", m.Name, err)
		}
		meth.Doc = f.Doc
		for i, name := range f.ArgNames {
			if i < len(meth.Params) {
				meth.Params[i].Name = name
			}
		}
		methods = append(methods, meth)
	}
	for _, meth := range methods {
		if err := interop.RegisterMethod(meth); err != nil {
			return fmt.Errorf("module %s: %w", m.Name, err)
		}
	}
	m.methods = methods
	registry[m.Name] = m
	return nil
}

// MethodName returns the name scripts use to call the module function fn.
func (m *Module) MethodName(fn string) string {
	if m.Global {
		return fn
	}
	return m.Name + "_" + fn
}

// Methods returns the native methods registered for m.
func (m *Module) Methods() []*interop.Method { return m.methods }

// Get returns a registered module by name.
func Get(name string) (*Module, bool) {
	m, ok := registry[name]
	return m, ok
}

// IsModule returns true if name is a registered module.
func IsModule(name string) bool {
	_, ok := registry[name]
	return ok
}

// LookupFunc resolves a module function to its native method.
func LookupFunc(module, funcName string) (*interop.Method, bool) {
	m, ok := registry[module]
	if !ok {
		return nil, false
	}
	for i, f := range m.Funcs {
		if f.Name == funcName && i < len(m.methods) {
			return m.methods[i], true
		}
	}
	return nil, false
}

// Names returns sorted names of all registered modules.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

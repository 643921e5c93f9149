// Package interpreter executes analyzed programs by walking the tree.
//
// Values are plain Go values (float64, string, rune, bool, *interop.Method,
// nil for Nothing). Operators dispatch on the runtime type of their left
// operand. Control flow is threaded through an explicit result that marks
// a pending return, so every scope entered is left on every path.
package interpreter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rubiojr/sandscript/ast"
	"github.com/rubiojr/sandscript/diag"
	"github.com/rubiojr/sandscript/interop"
	"github.com/rubiojr/sandscript/scope"
	"github.com/rubiojr/sandscript/types"
	"modernc.org/token"
)

// MaxDepth bounds nested script method calls.
const MaxDepth = 4096

// ErrDepth is returned when script calls nest deeper than MaxDepth.
var ErrDepth = errors.New("call depth exceeded")

// Error is a runtime fault raised while executing a node.
type Error struct {
	Pos token.Position
	Err error
}

func (e *Error) Error() string {
	if !e.Pos.IsValid() {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s at %d:%d", e.Err, e.Pos.Line, e.Pos.Column)
}

func (e *Error) Unwrap() error { return e.Err }

// result is the outcome of executing a statement. returning is set once a
// return statement ran and the enclosing method call has not consumed it.
type result struct {
	value     any
	returning bool
}

// closure records where a script method was declared so its body runs in
// that scope.
type closure struct {
	vars    *scope.Scope[string, any]
	methods *scope.Scope[interop.Signature, *interop.Method]
}

// Interpreter holds the runtime scopes. They persist across Run calls.
type Interpreter struct {
	vars    *scope.Chain[string, any]
	methods *interop.MethodScope
	defs    map[*ast.MethodDeclaration]closure
	host    interop.Host
	depth   int

	report *diag.Report
	log    *slog.Logger
}

// New creates an interpreter seeded with every registered native method and
// variable. Native methods receive host as their handle; when host is nil
// the interpreter itself is used. A nil logger discards output.
func New(host interop.Host, log *slog.Logger) *Interpreter {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	in := &Interpreter{
		vars:    scope.NewChain[string, any](scope.Strings{}),
		methods: interop.NewMethodScope(),
		defs:    make(map[*ast.MethodDeclaration]closure),
		host:    host,
		report:  diag.NewReport("interpreter"),
		log:     log,
	}
	if in.host == nil {
		in.host = in
	}
	for _, v := range interop.Variables() {
		in.vars.Root().SetLocal(v.Name, v)
	}
	return in
}

// Run executes prog at global scope. It returns the value of a top-level
// return statement, or nil. ok is false when a runtime fault aborted the
// run; the fault is recorded in Report.
func (in *Interpreter) Run(prog *ast.Program) (v any, ok bool) {
	in.report.Reset()
	in.depth = 0
	defer func() {
		if r := recover(); r != nil {
			in.report.Errorf(diag.CodeRuntime, prog.Pos(), "panic: %v", r)
			v, ok = nil, false
		}
		in.vars.Swap(in.vars.Root())
		in.methods.Swap(in.methods.Root())
	}()

	res, err := in.exec(prog)
	if err != nil {
		pos := prog.Pos()
		var rerr *Error
		if errors.As(err, &rerr) {
			pos = rerr.Pos
			err = rerr.Err
		}
		in.report.Errorf(diag.CodeRuntime, pos, "%v", err)
		return nil, false
	}
	return res.value, true
}

// Report returns the diagnostics of the last Run.
func (in *Interpreter) Report() *diag.Report { return in.report }

// Define binds a global value. Methods also become callable by signature.
func (in *Interpreter) Define(name string, v any) {
	in.vars.Root().SetLocal(name, v)
	if m, ok := v.(*interop.Method); ok {
		in.methods.Root().SetLocal(m.Signature(), m)
	}
}

// Checkpoint holds the global bindings of an interpreter.
type Checkpoint struct {
	vars    scope.Saved[string, any]
	methods scope.Saved[interop.Signature, *interop.Method]
}

// Checkpoint saves the global variables and methods.
func (in *Interpreter) Checkpoint() Checkpoint {
	return Checkpoint{vars: in.vars.Root().Save(), methods: in.methods.Root().Save()}
}

// Rollback restores the globals saved in cp, undoing declarations and
// assignments made since.
func (in *Interpreter) Rollback(cp Checkpoint) {
	in.vars.Root().Restore(cp.vars)
	in.methods.Root().Restore(cp.methods)
}

// Has reports whether name is bound in the global scope.
func (in *Interpreter) Has(name string) bool {
	_, ok := in.vars.Root().GetLocal(name)
	return ok
}

// Globals snapshots the global scope. Native variables are read through
// their accessor; unreadable ones are skipped.
func (in *Interpreter) Globals() map[string]interop.Value {
	out := make(map[string]interop.Value)
	for name, v := range in.vars.Root().All() {
		if nv, ok := v.(*interop.Variable); ok {
			if !nv.CanRead {
				continue
			}
			got, err := nv.Get()
			if err != nil {
				continue
			}
			v = got
		}
		out[name] = interop.ValueOf(v)
	}
	return out
}

// Resolve finds the method name accepts args with their runtime types.
func (in *Interpreter) Resolve(name string, args []any) (*interop.Method, error) {
	argTypes := make([]types.Provider, len(args))
	for i, a := range args {
		t, ok := types.Of(a)
		if !ok {
			return nil, fmt.Errorf("argument %d of %s: %w: %T", i+1, name, interop.ErrArgument, a)
		}
		argTypes[i] = t
	}
	sig := interop.NewSignature(name, argTypes...)
	m, ok := in.methods.Current().Get(sig)
	if !ok {
		return nil, fmt.Errorf("undefined method %s", sig)
	}
	return m, nil
}

// Call resolves and invokes a method by name. It makes the interpreter an
// interop.Host.
func (in *Interpreter) Call(name string, args ...any) (any, error) {
	m, err := in.Resolve(name, args)
	if err != nil {
		return nil, err
	}
	return in.Invoke(m, args)
}

// Invoke runs a native or script method with already evaluated arguments.
func (in *Interpreter) Invoke(m *interop.Method, args []any) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic: %v", m.Name, r)
		}
	}()
	if m.IsNative() {
		return m.CallNative(in.host, args)
	}
	if len(args) != len(m.Params) {
		return nil, fmt.Errorf("%s: %w: want %d arguments, got %d", m.Name, interop.ErrArgument, len(m.Params), len(args))
	}
	return in.callScript(m, args)
}

// callScript runs the body of a script method in a fresh scope nested in
// the scope the method was declared in.
func (in *Interpreter) callScript(m *interop.Method, args []any) (any, error) {
	if in.depth >= MaxDepth {
		return nil, fmt.Errorf("%s: %w", m.Name, ErrDepth)
	}
	in.depth++
	defer func() { in.depth-- }()

	decl := m.Declaration()
	def, ok := in.defs[decl]
	if !ok {
		def = closure{vars: in.vars.Root(), methods: in.methods.Root()}
	}
	prevVars := in.vars.Swap(def.vars)
	prevMethods := in.methods.Swap(def.methods)
	defer func() {
		in.vars.Swap(prevVars)
		in.methods.Swap(prevMethods)
	}()

	bindings := make([]scope.Binding[string, any], len(args))
	for i, a := range args {
		bindings[i] = scope.Bind[string, any](m.Params[i].Name, a)
	}
	in.vars.Enter("method "+m.Name, bindings...)
	in.methods.Enter("method " + m.Name)
	defer func() {
		in.vars.Leave()
		in.methods.Leave()
	}()

	in.log.Debug("call", "method", m.Signature().String(), "depth", in.depth)
	res, err := in.exec(decl.Body)
	if err != nil {
		return nil, err
	}
	if res.returning {
		return res.value, nil
	}
	return nil, nil
}

func (in *Interpreter) errorf(n ast.Node, format string, args ...any) error {
	return &Error{Pos: n.Pos(), Err: fmt.Errorf(format, args...)}
}

// wrap attaches the position of n to err unless err already carries one.
func wrap(n ast.Node, err error) error {
	var rerr *Error
	if errors.As(err, &rerr) {
		return err
	}
	return &Error{Pos: n.Pos(), Err: err}
}

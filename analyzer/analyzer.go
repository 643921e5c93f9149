// Package analyzer implements the semantic analysis stage: a single walk
// over the program that resolves every name, computes the static type of
// every expression and reports problems as diagnostics.
//
// The walk pushes the type each subexpression is expected to have, so
// mismatches are reported at the leaf that causes them. Analysis keeps
// going after an error to surface as many problems as possible per run.
package analyzer

import (
	"io"
	"log/slog"

	"github.com/rubiojr/sandscript/ast"
	"github.com/rubiojr/sandscript/diag"
	"github.com/rubiojr/sandscript/interop"
	"github.com/rubiojr/sandscript/scope"
	"github.com/rubiojr/sandscript/types"
	"modernc.org/token"
)

// Analyzer checks programs. Its scopes persist across Analyze calls so
// that a script can be fed one program after another.
type Analyzer struct {
	types   *scope.Chain[string, types.Provider]
	methods *interop.MethodScope
	natives *scope.Chain[string, *interop.Variable]

	expected []types.Provider
	returns  []types.Provider
	calls    map[*ast.MethodCall][]types.Provider

	report *diag.Report
	log    *slog.Logger
}

// New creates an analyzer seeded with every registered native method and
// variable. A nil logger discards output.
func New(log *slog.Logger) *Analyzer {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	a := &Analyzer{
		types:   scope.NewChain[string, types.Provider](scope.Strings{}),
		methods: interop.NewMethodScope(),
		natives: scope.NewChain[string, *interop.Variable](scope.Strings{}),
		report:  diag.NewReport("analyzer"),
		log:     log,
	}
	for _, v := range interop.Variables() {
		a.types.Root().SetLocal(v.Name, v.Type)
		a.natives.Root().SetLocal(v.Name, v)
	}
	return a
}

// Analyze walks prog and returns a copy whose method calls carry the static
// types of their arguments. ok is false when errors were reported. The
// input program is not modified.
func (a *Analyzer) Analyze(prog *ast.Program) (*ast.Program, bool) {
	a.report.Reset()
	a.expected = a.expected[:0]
	a.returns = a.returns[:0]
	a.calls = make(map[*ast.MethodCall][]types.Provider)

	a.visitStatements(prog.Body)

	f := ast.NewFactory()
	out := ast.Rewrite(prog, func(orig, n ast.Node) ast.Node {
		c, ok := orig.(*ast.MethodCall)
		if !ok {
			return n
		}
		if argTypes, ok := a.calls[c]; ok {
			return f.CallWithTypes(n.(*ast.MethodCall), argTypes)
		}
		return n
	}).(*ast.Program)

	a.log.Debug("analyzed", "file", prog.SourceFile, "calls", len(a.calls), "entries", len(a.report.Entries))
	return out, !a.report.HasErrors()
}

// Report returns the diagnostics of the last Analyze call.
func (a *Analyzer) Report() *diag.Report { return a.report }

// Lookup returns the static type bound to name in the global scope.
func (a *Analyzer) Lookup(name string) (types.Provider, bool) {
	return a.types.Root().Get(name)
}

// Declare binds a global name to a type.
func (a *Analyzer) Declare(name string, t types.Provider) {
	a.types.Root().SetLocal(name, t)
}

// DeclareMethod makes m resolvable from every scope.
func (a *Analyzer) DeclareMethod(m *interop.Method) {
	a.methods.Root().SetLocal(m.Signature(), m)
}

// Checkpoint holds the global bindings of an analyzer.
type Checkpoint struct {
	types   scope.Saved[string, types.Provider]
	methods scope.Saved[interop.Signature, *interop.Method]
	natives scope.Saved[string, *interop.Variable]
}

// Checkpoint saves the global declarations.
func (a *Analyzer) Checkpoint() Checkpoint {
	return Checkpoint{
		types:   a.types.Root().Save(),
		methods: a.methods.Root().Save(),
		natives: a.natives.Root().Save(),
	}
}

// Rollback discards every global declared since cp was taken.
func (a *Analyzer) Rollback(cp Checkpoint) {
	a.types.Root().Restore(cp.types)
	a.methods.Root().Restore(cp.methods)
	a.natives.Root().Restore(cp.natives)
}

func (a *Analyzer) enter(name string) {
	a.types.Enter(name)
	a.methods.Enter(name)
	a.natives.Enter(name)
}

func (a *Analyzer) leave() {
	a.types.Leave()
	a.methods.Leave()
	a.natives.Leave()
}

// expect visits n with t pushed as the expected type.
func (a *Analyzer) expect(n ast.Node, t types.Provider) types.Provider {
	a.expected = append(a.expected, t)
	defer func() { a.expected = a.expected[:len(a.expected)-1] }()
	return a.visit(n)
}

// verify reports a mismatch when actual does not satisfy the innermost
// expected type.
func (a *Analyzer) verify(actual types.Provider, pos token.Position) {
	if len(a.expected) == 0 {
		return
	}
	want := a.expected[len(a.expected)-1]
	if !types.Compatible(actual, want) {
		a.report.Errorf(diag.CodeTypeMismatch, pos, "type mismatch: expected %s, got %s", want.Name(), actual.Name())
	}
}

// native returns the host binding for name when name resolves to the
// global native variable rather than a script declaration.
func (a *Analyzer) native(name string) (*interop.Variable, bool) {
	_, owner, ok := a.types.Current().Lookup(name)
	if !ok || owner != a.types.Root() {
		return nil, false
	}
	return a.natives.Root().Get(name)
}

func (a *Analyzer) visit(n ast.Node) types.Provider {
	switch n := n.(type) {
	case *ast.Program:
		a.visitStatements(n.Body)
	case *ast.Block:
		a.enter("block")
		defer a.leave()
		a.visitStatements(n.Body)
	case *ast.VariableDeclaration:
		a.visitDeclaration(n)
	case *ast.Assignment:
		a.visitAssignment(n)
	case *ast.If:
		a.expect(n.Cond, types.Boolean)
		a.visitStatement(n.Then)
		a.visitStatement(n.Else)
	case *ast.While:
		a.expect(n.Cond, types.Boolean)
		a.visitStatement(n.Body)
	case *ast.DoWhile:
		a.visitStatement(n.Body)
		a.expect(n.Cond, types.Boolean)
	case *ast.For:
		a.visitFor(n)
	case *ast.Return:
		a.visitReturn(n)
	case *ast.MethodDeclaration:
		a.visitMethodDeclaration(n)
	case *ast.MethodCall:
		return a.visitCall(n)
	case *ast.BinaryOperator:
		return a.visitBinary(n)
	case *ast.UnaryOperator:
		return a.visitUnary(n)
	case *ast.Literal:
		a.verify(n.Type, n.Pos())
		return n.Type
	case *ast.Variable:
		return a.visitVariable(n)
	case *ast.NoOperation, *ast.Comment, *ast.Whitespace, nil:
	default:
		a.report.Errorf(diag.CodeUnexpectedToken, n.Pos(), "unexpected %s", ast.Label(n))
	}
	return types.Nothing
}

func (a *Analyzer) visitStatements(body []ast.Node) {
	for _, s := range body {
		a.visitStatement(s)
	}
}

// visitStatement visits s with no constraint on its result.
func (a *Analyzer) visitStatement(s ast.Node) {
	a.expect(s, types.Variable)
}

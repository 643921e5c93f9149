package analyzer

import (
	"strings"

	"github.com/rubiojr/sandscript/ast"
	"github.com/rubiojr/sandscript/diag"
	"github.com/rubiojr/sandscript/interop"
	"github.com/rubiojr/sandscript/types"
)

func (a *Analyzer) visitDeclaration(n *ast.VariableDeclaration) {
	declared := n.Type.Provider
	resolved := declared
	if n.Default != nil {
		t := a.expect(n.Default, declared)
		if declared == types.Variable {
			resolved = t
		}
	}
	if resolved == types.Nothing || resolved == types.Variable {
		a.report.Errorf(diag.CodeMissingType, n.Pos(), "cannot infer a concrete type for %s", names(n))
		resolved = types.Variable
	} else {
		a.verify(resolved, n.Pos())
	}

	for _, v := range n.Names {
		if _, owner, ok := a.types.Current().Lookup(v.Name); ok {
			a.report.Errorf(diag.CodeRedefined, v.Pos(), "%s is already declared in scope %s", v.Name, owner.Name())
			continue
		}
		a.types.Current().SetLocal(v.Name, resolved)
	}
}

func names(n *ast.VariableDeclaration) string {
	out := make([]string, len(n.Names))
	for i, v := range n.Names {
		out[i] = v.Name
	}
	return strings.Join(out, ", ")
}

func (a *Analyzer) visitAssignment(n *ast.Assignment) {
	name := n.Target.Name
	target, ok := a.types.Current().Get(name)
	if !ok {
		a.report.Errorf(diag.CodeUndefined, n.Target.Pos(), "undefined variable %s", name)
		a.expect(n.Value, types.Variable)
		return
	}
	if v, ok := a.native(name); ok {
		if !v.CanWrite {
			a.report.Errorf(diag.CodeUnwritable, n.Target.Pos(), "%s cannot be written", name)
		}
		if n.Op != types.OpNone && !v.CanRead {
			a.report.Errorf(diag.CodeUnreadable, n.Target.Pos(), "%s cannot be read", name)
		}
	}
	if n.Op != types.OpNone && target != types.Variable {
		if _, ok := target.Binary(n.Op); !ok {
			a.report.Errorf(diag.CodeUnsupportedOperator, n.Pos(), "operator %s= is not supported for %s", n.Op, target.Name())
		}
	}
	a.expect(n.Value, target)
}

func (a *Analyzer) visitFor(n *ast.For) {
	a.enter("for")
	defer a.leave()
	if n.Init != nil {
		a.expect(n.Init, types.Number)
	}
	a.expect(n.Cond, types.Boolean)
	if n.Step != nil {
		a.visitStatement(n.Step)
	}
	a.visitStatement(n.Body)
}

func (a *Analyzer) visitReturn(n *ast.Return) {
	frame := types.Variable
	if len(a.returns) > 0 {
		frame = a.returns[len(a.returns)-1]
	}
	if ast.IsNoOp(n.Value) {
		if frame != types.Nothing && frame != types.Variable {
			a.report.Errorf(diag.CodeTypeMismatch, n.Pos(), "missing return value of type %s", frame.Name())
		}
		return
	}
	a.expect(n.Value, frame)
}

func (a *Analyzer) visitMethodDeclaration(n *ast.MethodDeclaration) {
	m := interop.NewScript(n)
	sig := m.Signature()
	if _, owner, ok := a.methods.Current().Lookup(sig); ok {
		a.report.Errorf(diag.CodeRedefined, n.Pos(), "method %s is already defined in scope %s", sig, owner.Name())
	} else {
		a.methods.Current().SetLocal(sig, m)
	}

	a.enter("method " + n.Name)
	defer a.leave()
	for _, p := range n.Params {
		if t := p.Type.Provider; t == types.Nothing {
			a.report.Errorf(diag.CodeMissingType, p.Pos(), "parameter %s cannot be void", p.Name)
		}
		if _, ok := a.types.Current().GetLocal(p.Name); ok {
			a.report.Errorf(diag.CodeRedefined, p.Pos(), "parameter %s is declared twice", p.Name)
		}
		a.types.Current().SetLocal(p.Name, p.Type.Provider)
	}

	a.returns = append(a.returns, m.Return)
	defer func() { a.returns = a.returns[:len(a.returns)-1] }()
	a.visitStatement(n.Body)
	if m.Return != types.Nothing && !alwaysReturns(n.Body) {
		a.report.Errorf(diag.CodeMissingReturn, n.Pos(), "method %s can end without returning %s", sig, m.Return.Name())
	}
}

// alwaysReturns reports whether every path through n ends in a return.
// A while loop whose condition is the literal true only exits by
// returning.
func alwaysReturns(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.Return:
		return true
	case *ast.Block:
		for _, s := range n.Body {
			if alwaysReturns(s) {
				return true
			}
		}
	case *ast.If:
		return alwaysReturns(n.Then) && alwaysReturns(n.Else)
	case *ast.DoWhile:
		return alwaysReturns(n.Body)
	case *ast.While:
		lit, ok := n.Cond.(*ast.Literal)
		return ok && lit.Value == true
	}
	return false
}

// overloads returns every method visible from the current scope whose name
// is name.
func (a *Analyzer) overloads(name string) []*interop.Method {
	var out []*interop.Method
	for s := a.methods.Current(); s != nil; s = s.Parent() {
		for sig, m := range s.All() {
			if sig.Name == name {
				out = append(out, m)
			}
		}
	}
	return out
}

package analyzer

import (
	"github.com/rubiojr/sandscript/ast"
	"github.com/rubiojr/sandscript/diag"
	"github.com/rubiojr/sandscript/interop"
	"github.com/rubiojr/sandscript/types"
)

func (a *Analyzer) visitVariable(n *ast.Variable) types.Provider {
	t, ok := a.types.Current().Get(n.Name)
	if !ok {
		a.report.Errorf(diag.CodeUndefined, n.Pos(), "undefined variable %s", n.Name)
		return types.Variable
	}
	if v, ok := a.native(n.Name); ok && !v.CanRead {
		a.report.Errorf(diag.CodeUnreadable, n.Pos(), "%s cannot be read", n.Name)
	}
	a.verify(t, n.Pos())
	return t
}

func (a *Analyzer) visitBinary(n *ast.BinaryOperator) types.Provider {
	left := a.expect(n.Left, types.Variable)
	want := left
	if left == types.Nothing {
		want = types.Variable
	}
	a.expect(n.Right, want)

	if left != types.Variable {
		if _, ok := left.Binary(n.Op); !ok {
			a.report.Errorf(diag.CodeUnsupportedOperator, n.Pos(), "operator %s is not supported for %s", n.Op, left.Name())
		}
	}
	result := left
	if t := n.Op.ResultType(); t != nil {
		result = t
	}
	a.verify(result, n.Pos())
	return result
}

func (a *Analyzer) visitUnary(n *ast.UnaryOperator) types.Provider {
	operand := a.expect(n.Operand, types.Variable)
	if operand != types.Variable {
		if _, ok := operand.Unary(n.Op); !ok {
			a.report.Errorf(diag.CodeUnsupportedOperator, n.Pos(), "operator %s is not supported for %s", n.Op, operand.Name())
		}
	}
	result := operand
	if t := n.Op.ResultType(); t != nil {
		result = t
	}
	a.verify(result, n.Pos())
	return result
}

// visitCall resolves the callee from the argument types, then checks each
// argument type against the parameter it binds to. Arguments are walked
// once; expectations only matter at the root of each argument.
func (a *Analyzer) visitCall(n *ast.MethodCall) types.Provider {
	argTypes := make([]types.Provider, len(n.Args))
	for i, arg := range n.Args {
		argTypes[i] = a.expect(arg, types.Variable)
	}
	a.calls[n] = argTypes

	sig := interop.NewSignature(n.Name, argTypes...)
	m, ok := a.methods.Current().Get(sig)
	if !ok {
		a.unresolved(n, sig)
		return types.Variable
	}
	a.verify(m.Return, n.Pos())

	for i, arg := range n.Args {
		if want := m.Params[i].Type; !types.Compatible(argTypes[i], want) {
			a.report.Errorf(diag.CodeTypeMismatch, arg.Pos(), "type mismatch: expected %s, got %s", want.Name(), argTypes[i].Name())
		}
	}
	return m.Return
}

func (a *Analyzer) unresolved(n *ast.MethodCall, sig interop.Signature) {
	candidates := a.overloads(n.Name)
	if len(candidates) == 0 {
		a.report.Errorf(diag.CodeUndefined, n.Pos(), "undefined method %s", sig)
		return
	}
	for _, m := range candidates {
		if len(m.Params) == len(n.Args) {
			a.report.Errorf(diag.CodeUndefined, n.Pos(), "no method %s matches %s", n.Name, sig)
			return
		}
	}
	a.report.Errorf(diag.CodeArgumentCount, n.Pos(), "method %s expects %d arguments, got %d", n.Name, len(candidates[0].Params), len(n.Args))
}

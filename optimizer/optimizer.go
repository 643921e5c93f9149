// Package optimizer folds constants and removes dead code.
//
// One Optimize call is one pass. A pass counts its rewrites; the engine
// repeats passes until a pass makes no change. Rewrites never mutate the
// input tree and unchanged subtrees are shared with it.
//
// Loops whose body folds away are removed even when their condition calls
// a method. Conditions are assumed free of side effects.
package optimizer

import (
	"io"
	"log/slog"

	"github.com/rubiojr/sandscript/ast"
	"github.com/rubiojr/sandscript/diag"
	"github.com/rubiojr/sandscript/interop"
	"github.com/rubiojr/sandscript/scope"
	"github.com/rubiojr/sandscript/types"
)

// Optimizer rewrites programs one pass at a time.
type Optimizer struct {
	f       *ast.Factory
	removed *scope.Chain[interop.Signature, bool]
	changes int
	report  *diag.Report
	log     *slog.Logger
}

// New creates an optimizer. A nil logger discards output.
func New(log *slog.Logger) *Optimizer {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Optimizer{f: ast.NewFactory(), report: diag.NewReport("optimizer"), log: log}
}

// Optimize runs one pass over prog and returns the rewritten program and
// the number of rewrites performed. A failed fold is reported and leaves
// the subtree as it was.
func (o *Optimizer) Optimize(prog *ast.Program) (out *ast.Program, changes int) {
	o.report.Reset()
	o.changes = 0
	o.removed = scope.NewChain[interop.Signature, bool](interop.SignatureKeyer{})

	body, changed := o.statements(prog.Body)
	out = prog
	if changed {
		out = o.f.ProgramFrom(prog, body)
	}
	o.log.Debug("optimizer pass", "file", prog.SourceFile, "changes", o.changes)
	return out, o.changes
}

// Report returns the diagnostics of the last pass.
func (o *Optimizer) Report() *diag.Report { return o.report }

func (o *Optimizer) change(n ast.Node) ast.Node {
	o.changes++
	return n
}

func (o *Optimizer) noop(n ast.Node) ast.Node {
	return o.change(o.f.NoOp(n.Pos()))
}

// statements optimizes a statement list and drops every statement that
// reduced to a NoOperation. changed reports whether the list differs from
// body.
func (o *Optimizer) statements(body []ast.Node) (out []ast.Node, changed bool) {
	out, mapped := ast.MapNodes(body, o.visit)
	out, dropped := ast.DropNoOps(out)
	if dropped {
		o.changes++
	}
	return out, mapped || dropped
}

func (o *Optimizer) visit(n ast.Node) ast.Node {
	switch n := n.(type) {
	case *ast.Block:
		o.removed.Enter("block")
		defer o.removed.Leave()
		body, changed := o.statements(n.Body)
		if len(body) == 0 {
			return o.noop(n)
		}
		if changed {
			return o.f.BlockWithBody(n, body)
		}
	case *ast.VariableDeclaration:
		if n.Default != nil {
			if d := o.visit(n.Default); d != n.Default {
				return o.f.DeclarationWithDefault(n, d)
			}
		}
	case *ast.Assignment:
		if v := o.visit(n.Value); v != n.Value {
			return o.f.AssignmentWithValue(n, v)
		}
	case *ast.Return:
		if v := o.visit(n.Value); v != n.Value {
			return o.f.ReturnWithValue(n, v)
		}
	case *ast.BinaryOperator:
		return o.visitBinary(n)
	case *ast.UnaryOperator:
		return o.visitUnary(n)
	case *ast.If:
		return o.visitIf(n)
	case *ast.While:
		return o.visitWhile(n)
	case *ast.DoWhile:
		return o.visitDoWhile(n)
	case *ast.For:
		return o.visitFor(n)
	case *ast.MethodDeclaration:
		return o.visitMethodDeclaration(n)
	case *ast.MethodCall:
		return o.visitCall(n)
	case *ast.Comment, *ast.Whitespace:
		return o.f.NoOp(n.Pos())
	}
	return n
}

func (o *Optimizer) visitBinary(n *ast.BinaryOperator) ast.Node {
	left, right := o.visit(n.Left), o.visit(n.Right)
	l, lok := left.(*ast.Literal)
	r, rok := right.(*ast.Literal)
	if lok && rok {
		if fn, ok := l.Type.Binary(n.Op); ok {
			if v, ok := o.fold(n, func() (any, error) { return fn(l.Value, r.Value) }); ok {
				return o.change(o.f.Literal(n.Pos(), v))
			}
		}
	}
	if left != n.Left || right != n.Right {
		return o.f.BinaryWithOperands(n, left, right)
	}
	return n
}

func (o *Optimizer) visitUnary(n *ast.UnaryOperator) ast.Node {
	operand := o.visit(n.Operand)
	if lit, ok := operand.(*ast.Literal); ok {
		if fn, ok := lit.Type.Unary(n.Op); ok {
			if v, ok := o.fold(n, func() (any, error) { return fn(lit.Value) }); ok {
				return o.change(o.f.Literal(n.Pos(), v))
			}
		}
	}
	if operand != n.Operand {
		return o.f.UnaryWithOperand(n, operand)
	}
	return n
}

// fold evaluates an operator function at optimization time. Failures are
// reported instead of propagated.
func (o *Optimizer) fold(n ast.Node, eval func() (any, error)) (v any, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			o.report.Errorf(diag.CodeOptimizer, n.Pos(), "folding %s: %v", ast.Label(n), r)
			ok = false
		}
	}()
	v, err := eval()
	if err != nil {
		o.report.Errorf(diag.CodeOptimizer, n.Pos(), "folding %s: %v", ast.Label(n), err)
		return nil, false
	}
	if _, known := types.Of(v); !known {
		o.report.Errorf(diag.CodeOptimizer, n.Pos(), "folding %s: result %T has no type", ast.Label(n), v)
		return nil, false
	}
	return v, true
}

// isFalse reports whether n is the literal false.
func isFalse(n ast.Node) bool {
	lit, ok := n.(*ast.Literal)
	if !ok {
		return false
	}
	b, ok := lit.Value.(bool)
	return ok && !b
}

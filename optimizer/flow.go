package optimizer

import (
	"github.com/rubiojr/sandscript/ast"
	"github.com/rubiojr/sandscript/interop"
)

func (o *Optimizer) visitIf(n *ast.If) ast.Node {
	cond := o.visit(n.Cond)
	els := o.visit(n.Else)
	if isFalse(cond) {
		return o.change(els)
	}
	then := o.visit(n.Then)
	if lit, ok := cond.(*ast.Literal); ok && lit.Value == true {
		return o.change(then)
	}
	if ast.IsNoOp(then) && ast.IsNoOp(els) {
		return o.noop(n)
	}
	if cond != n.Cond || then != n.Then || els != n.Else {
		return o.f.IfWithBranches(n, cond, then, els)
	}
	return n
}

func (o *Optimizer) visitWhile(n *ast.While) ast.Node {
	cond := o.visit(n.Cond)
	if isFalse(cond) {
		return o.noop(n)
	}
	body := o.visit(n.Body)
	if ast.IsNoOp(body) {
		return o.noop(n)
	}
	if cond != n.Cond || body != n.Body {
		return o.f.WhileWith(n, cond, body)
	}
	return n
}

// visitDoWhile turns a loop whose condition is false into its body, which
// runs exactly once.
func (o *Optimizer) visitDoWhile(n *ast.DoWhile) ast.Node {
	cond := o.visit(n.Cond)
	body := o.visit(n.Body)
	if isFalse(cond) {
		return o.change(body)
	}
	if ast.IsNoOp(body) {
		return o.noop(n)
	}
	if cond != n.Cond || body != n.Body {
		return o.f.DoWhileWith(n, body, cond)
	}
	return n
}

func (o *Optimizer) visitFor(n *ast.For) ast.Node {
	o.removed.Enter("for")
	defer o.removed.Leave()

	init := n.Init
	if init != nil {
		init = o.visit(init).(*ast.VariableDeclaration)
	}
	cond := o.visit(n.Cond)
	if isFalse(cond) || firstCheckFails(init, cond) {
		return o.noop(n)
	}
	body := o.visit(n.Body)
	if ast.IsNoOp(body) {
		return o.noop(n)
	}
	step := n.Step
	if step != nil {
		step = o.visit(step).(*ast.Assignment)
	}
	if init != n.Init || cond != n.Cond || step != n.Step || body != n.Body {
		return o.f.ForWith(n, init, cond, step, body)
	}
	return n
}

// firstCheckFails evaluates the loop condition against the counter's
// initial value when both are constant. It reports true only when the
// loop provably never runs.
func firstCheckFails(init *ast.VariableDeclaration, cond ast.Node) (fails bool) {
	if init == nil || len(init.Names) != 1 {
		return false
	}
	start, ok := init.Default.(*ast.Literal)
	if !ok {
		return false
	}
	bin, ok := cond.(*ast.BinaryOperator)
	if !ok {
		return false
	}
	counter := init.Names[0].Name
	operand := func(n ast.Node) *ast.Literal {
		switch n := n.(type) {
		case *ast.Literal:
			return n
		case *ast.Variable:
			if n.Name == counter {
				return start
			}
		}
		return nil
	}
	l, r := operand(bin.Left), operand(bin.Right)
	if l == nil || r == nil {
		return false
	}
	fn, ok := l.Type.Binary(bin.Op)
	if !ok {
		return false
	}
	defer func() {
		if recover() != nil {
			fails = false
		}
	}()
	v, err := fn(l.Value, r.Value)
	return err == nil && v == false
}

// visitMethodDeclaration removes nested methods whose body folds away and
// records their signature so later calls in the same pass vanish too.
// Global methods stay: the host may still call them.
func (o *Optimizer) visitMethodDeclaration(n *ast.MethodDeclaration) ast.Node {
	nested := o.removed.Depth() > 0
	o.removed.Enter("method " + n.Name)
	body := o.visit(n.Body)
	o.removed.Leave()

	if ast.IsNoOp(body) && nested {
		o.removed.Current().SetLocal(interop.NewScript(n).Signature(), true)
		return o.noop(n)
	}
	if body != n.Body {
		return o.f.MethodWithBody(n, body)
	}
	return n
}

func (o *Optimizer) visitCall(n *ast.MethodCall) ast.Node {
	if len(n.ArgTypes) == len(n.Args) {
		sig := interop.NewSignature(n.Name, n.ArgTypes...)
		if _, ok := o.removed.Current().Get(sig); ok {
			return o.noop(n)
		}
	}
	if args, ok := ast.MapNodes(n.Args, o.visit); ok {
		return o.f.CallWithArgs(n, args)
	}
	return n
}

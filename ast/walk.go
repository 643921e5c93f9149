package ast

// Children returns the direct children of n in source order. Nil children
// are skipped.
func Children(n Node) []Node {
	var out []Node
	add := func(ns ...Node) {
		for _, c := range ns {
			if c != nil && !isNilPtr(c) {
				out = append(out, c)
			}
		}
	}
	switch n := n.(type) {
	case *Program:
		add(n.Body...)
	case *Block:
		add(n.Body...)
	case *VariableDeclaration:
		add(n.Type)
		for _, v := range n.Names {
			add(v)
		}
		add(n.Default)
	case *Assignment:
		add(n.Target, n.Value)
	case *BinaryOperator:
		add(n.Left, n.Right)
	case *UnaryOperator:
		add(n.Operand)
	case *If:
		add(n.Cond, n.Then, n.Else)
	case *While:
		add(n.Cond, n.Body)
	case *DoWhile:
		add(n.Body, n.Cond)
	case *For:
		add(n.Init, n.Cond, n.Step, n.Body)
	case *Return:
		add(n.Value)
	case *MethodDeclaration:
		add(n.Return)
		for _, p := range n.Params {
			add(p)
		}
		add(n.Body)
	case *Parameter:
		add(n.Type)
	case *MethodCall:
		add(n.Args...)
	}
	return out
}

// isNilPtr catches typed nil pointers stored in Node fields, such as a For
// without an initializer.
func isNilPtr(n Node) bool {
	switch n := n.(type) {
	case *VariableDeclaration:
		return n == nil
	case *Assignment:
		return n == nil
	case *VariableType:
		return n == nil
	case *Variable:
		return n == nil
	}
	return false
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the current node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}

// Rewrite rebuilds the tree bottom-up, replacing each node with fn's result.
// fn receives the original node and its rebuilt form, which is the original
// itself when no descendant changed. Unchanged subtrees are shared with the
// input, which is never mutated. Declaration parts (types, names,
// parameters) are rewritten only through their owning node.
func Rewrite(n Node, fn func(orig, rebuilt Node) Node) Node {
	if n == nil {
		return nil
	}
	orig := n
	f := NewFactory()
	rw := func(c Node) Node { return Rewrite(c, fn) }
	switch x := n.(type) {
	case *Program:
		if body, ok := MapNodes(x.Body, rw); ok {
			n = f.ProgramFrom(x, body)
		}
	case *Block:
		if body, ok := MapNodes(x.Body, rw); ok {
			n = f.BlockWithBody(x, body)
		}
	case *VariableDeclaration:
		if x.Default != nil {
			if d := rw(x.Default); d != x.Default {
				n = f.DeclarationWithDefault(x, d)
			}
		}
	case *Assignment:
		if v := rw(x.Value); v != x.Value {
			n = f.AssignmentWithValue(x, v)
		}
	case *BinaryOperator:
		l, r := rw(x.Left), rw(x.Right)
		if l != x.Left || r != x.Right {
			n = f.BinaryWithOperands(x, l, r)
		}
	case *UnaryOperator:
		if o := rw(x.Operand); o != x.Operand {
			n = f.UnaryWithOperand(x, o)
		}
	case *If:
		c, t, e := rw(x.Cond), rw(x.Then), rw(x.Else)
		if c != x.Cond || t != x.Then || e != x.Else {
			n = f.IfWithBranches(x, c, t, e)
		}
	case *While:
		c, b := rw(x.Cond), rw(x.Body)
		if c != x.Cond || b != x.Body {
			n = f.WhileWith(x, c, b)
		}
	case *DoWhile:
		b, c := rw(x.Body), rw(x.Cond)
		if c != x.Cond || b != x.Body {
			n = f.DoWhileWith(x, b, c)
		}
	case *For:
		init, step := x.Init, x.Step
		if init != nil {
			if r, ok := rw(init).(*VariableDeclaration); ok {
				init = r
			}
		}
		if step != nil {
			if r, ok := rw(step).(*Assignment); ok {
				step = r
			}
		}
		c, b := rw(x.Cond), rw(x.Body)
		if init != x.Init || step != x.Step || c != x.Cond || b != x.Body {
			n = f.ForWith(x, init, c, step, b)
		}
	case *Return:
		if v := rw(x.Value); v != x.Value {
			n = f.ReturnWithValue(x, v)
		}
	case *MethodDeclaration:
		if b := rw(x.Body); b != x.Body {
			n = f.MethodWithBody(x, b)
		}
	case *MethodCall:
		if args, ok := MapNodes(x.Args, rw); ok {
			n = f.CallWithArgs(x, args)
		}
	}
	return fn(orig, n)
}

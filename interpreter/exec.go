package interpreter

import (
	"github.com/rubiojr/sandscript/ast"
	"github.com/rubiojr/sandscript/interop"
	"github.com/rubiojr/sandscript/types"
)

func (in *Interpreter) exec(n ast.Node) (result, error) {
	switch n := n.(type) {
	case *ast.Program:
		return in.execStatements(n.Body)
	case *ast.Block:
		in.enter("block")
		defer in.leave()
		return in.execStatements(n.Body)
	case *ast.VariableDeclaration:
		return result{}, in.execDeclaration(n)
	case *ast.Assignment:
		return result{}, in.execAssignment(n)
	case *ast.If:
		ok, err := in.condition(n.Cond)
		if err != nil {
			return result{}, err
		}
		if ok {
			return in.exec(n.Then)
		}
		return in.exec(n.Else)
	case *ast.While:
		for {
			ok, err := in.condition(n.Cond)
			if err != nil || !ok {
				return result{}, err
			}
			if res, err := in.exec(n.Body); err != nil || res.returning {
				return res, err
			}
		}
	case *ast.DoWhile:
		for {
			if res, err := in.exec(n.Body); err != nil || res.returning {
				return res, err
			}
			ok, err := in.condition(n.Cond)
			if err != nil || !ok {
				return result{}, err
			}
		}
	case *ast.For:
		return in.execFor(n)
	case *ast.Return:
		v, err := in.eval(n.Value)
		if err != nil {
			return result{}, err
		}
		return result{value: v, returning: true}, nil
	case *ast.MethodDeclaration:
		m := interop.NewScript(n)
		in.methods.Current().SetLocal(m.Signature(), m)
		in.vars.Current().SetLocal(m.Signature().String(), m)
		in.defs[n] = closure{vars: in.vars.Current(), methods: in.methods.Current()}
		return result{}, nil
	default:
		v, err := in.eval(n)
		return result{value: v}, err
	}
}

func (in *Interpreter) enter(name string) {
	in.vars.Enter(name)
	in.methods.Enter(name)
}

func (in *Interpreter) leave() {
	in.vars.Leave()
	in.methods.Leave()
}

// execStatements runs body in order and stops at the first pending return.
func (in *Interpreter) execStatements(body []ast.Node) (result, error) {
	for _, s := range body {
		res, err := in.exec(s)
		if err != nil || res.returning {
			return res, err
		}
	}
	return result{}, nil
}

func (in *Interpreter) execFor(n *ast.For) (result, error) {
	in.enter("for")
	defer in.leave()
	if n.Init != nil {
		if err := in.execDeclaration(n.Init); err != nil {
			return result{}, err
		}
	}
	for {
		ok, err := in.condition(n.Cond)
		if err != nil || !ok {
			return result{}, err
		}
		if res, err := in.exec(n.Body); err != nil || res.returning {
			return res, err
		}
		if n.Step != nil {
			if err := in.execAssignment(n.Step); err != nil {
				return result{}, err
			}
		}
	}
}

func (in *Interpreter) execDeclaration(n *ast.VariableDeclaration) error {
	var v any
	if n.Default != nil {
		var err error
		if v, err = in.eval(n.Default); err != nil {
			return err
		}
	} else {
		v = n.Type.Provider.Default()
	}
	for _, name := range n.Names {
		in.vars.Current().SetLocal(name.Name, v)
	}
	return nil
}

// execAssignment writes to the scope that owns the target, or through the
// accessor when the target is a native variable.
func (in *Interpreter) execAssignment(n *ast.Assignment) error {
	name := n.Target.Name
	cur, owner, ok := in.vars.Current().Lookup(name)
	if !ok {
		return in.errorf(n.Target, "undefined variable %s", name)
	}
	native, isNative := cur.(*interop.Variable)

	rhs, err := in.eval(n.Value)
	if err != nil {
		return err
	}
	v := rhs
	if n.Op != types.OpNone {
		if isNative {
			if cur, err = native.Get(); err != nil {
				return wrap(n, err)
			}
		}
		if v, err = in.binary(n, n.Op, cur, rhs); err != nil {
			return err
		}
	}

	if isNative {
		if err := native.Set(v); err != nil {
			return wrap(n, err)
		}
		return nil
	}
	owner.SetLocal(name, v)
	return nil
}

// condition evaluates a loop or branch condition.
func (in *Interpreter) condition(n ast.Node) (bool, error) {
	v, err := in.eval(n)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, in.errorf(n, "condition is %s, not Boolean", typeName(v))
	}
	return b, nil
}

func (in *Interpreter) eval(n ast.Node) (any, error) {
	switch n := n.(type) {
	case *ast.Literal:
		return n.Value, nil
	case *ast.Variable:
		v, ok := in.vars.Current().Get(n.Name)
		if !ok {
			return nil, in.errorf(n, "undefined variable %s", n.Name)
		}
		if native, ok := v.(*interop.Variable); ok {
			got, err := native.Get()
			if err != nil {
				return nil, wrap(n, err)
			}
			return got, nil
		}
		return v, nil
	case *ast.BinaryOperator:
		l, err := in.eval(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := in.eval(n.Right)
		if err != nil {
			return nil, err
		}
		return in.binary(n, n.Op, l, r)
	case *ast.UnaryOperator:
		v, err := in.eval(n.Operand)
		if err != nil {
			return nil, err
		}
		t, _ := types.Of(v)
		var fn types.UnaryFunc
		if t != nil {
			fn, _ = t.Unary(n.Op)
		}
		if fn == nil {
			return nil, in.errorf(n, "operator %s is not supported for %s", n.Op, typeName(v))
		}
		out, err := fn(v)
		if err != nil {
			return nil, wrap(n, err)
		}
		return out, nil
	case *ast.MethodCall:
		return in.evalCall(n)
	case *ast.NoOperation, *ast.Comment, *ast.Whitespace, nil:
		return nil, nil
	}
	return nil, in.errorf(n, "cannot evaluate %s", ast.Label(n))
}

func (in *Interpreter) binary(n ast.Node, op types.Operator, l, r any) (any, error) {
	t, _ := types.Of(l)
	var fn types.BinaryFunc
	if t != nil {
		fn, _ = t.Binary(op)
	}
	if fn == nil {
		return nil, in.errorf(n, "operator %s is not supported for %s", op, typeName(l))
	}
	v, err := fn(l, r)
	if err != nil {
		return nil, wrap(n, err)
	}
	return v, nil
}

// evalCall resolves the callee from the static argument types when the
// analyzer recorded them, otherwise from the runtime argument types.
func (in *Interpreter) evalCall(n *ast.MethodCall) (any, error) {
	var m *interop.Method
	if len(n.ArgTypes) == len(n.Args) {
		sig := interop.NewSignature(n.Name, n.ArgTypes...)
		var ok bool
		if m, ok = in.methods.Current().Get(sig); !ok {
			return nil, in.errorf(n, "undefined method %s", sig)
		}
	}
	args := make([]any, len(n.Args))
	for i, a := range n.Args {
		v, err := in.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	if m == nil {
		var err error
		if m, err = in.Resolve(n.Name, args); err != nil {
			return nil, wrap(n, err)
		}
	}
	v, err := in.Invoke(m, args)
	if err != nil {
		return nil, wrap(n, err)
	}
	return v, nil
}

func typeName(v any) string {
	if t, ok := types.Of(v); ok {
		return t.Name()
	}
	return "unknown"
}

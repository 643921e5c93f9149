package types

import (
	"fmt"
	"math"
	"reflect"
)

// Built-in providers. Several components compare against these by identity.
var (
	Nothing   Provider = nothingType{}
	Variable  Provider = variableType{}
	Boolean   Provider = booleanType{}
	Character Provider = characterType{}
	Number    Provider = numberType{}
	String    Provider = stringType{}
	Method    Provider = methodType{}
)

var callableType = reflect.TypeFor[Callable]()

// OperandError reports a runtime operand whose type does not fit the operator.
type OperandError struct {
	Type    string
	Op      Operator
	Operand any
}

func (e *OperandError) Error() string {
	return fmt.Sprintf("%s operator %s: unsupported operand %v (%T)", e.Type, e.Op, e.Operand, e.Operand)
}

// --- Nothing ---

type nothingType struct{}

func (nothingType) Name() string                       { return "Nothing" }
func (nothingType) Identifier() string                 { return "void" }
func (nothingType) Backing() reflect.Type              { return nil }
func (nothingType) Binary(Operator) (BinaryFunc, bool) { return nil, false }
func (nothingType) Unary(Operator) (UnaryFunc, bool)   { return nil, false }
func (nothingType) Equal(a, b any) bool                { return a == nil && b == nil }
func (nothingType) Default() any                       { return nil }
func (nothingType) String() string                     { return "Nothing" }

// --- Variable (wildcard) ---

type variableType struct{}

func (variableType) Name() string                       { return "Variable" }
func (variableType) Identifier() string                 { return "var" }
func (variableType) Backing() reflect.Type              { return reflect.TypeFor[any]() }
func (variableType) Binary(Operator) (BinaryFunc, bool) { return nil, false }
func (variableType) Unary(Operator) (UnaryFunc, bool)   { return nil, false }
func (variableType) Default() any                       { return nil }
func (variableType) String() string                     { return "Any" }

func (variableType) Equal(a, b any) bool {
	if a == nil {
		return b == nil
	}
	if p, ok := Of(a); ok {
		return p.Equal(a, b)
	}
	return a == b
}

// --- Boolean ---

type booleanType struct{}

func (booleanType) Name() string          { return "Boolean" }
func (booleanType) Identifier() string    { return "bool" }
func (booleanType) Backing() reflect.Type { return reflect.TypeFor[bool]() }
func (booleanType) Default() any          { return false }
func (booleanType) String() string        { return "Boolean" }

func (booleanType) Equal(a, b any) bool {
	x, ok1 := a.(bool)
	y, ok2 := b.(bool)
	return ok1 && ok2 && x == y
}

func (t booleanType) Binary(op Operator) (BinaryFunc, bool) {
	switch op {
	case OpAnd:
		return boolBinary(op, func(a, b bool) any { return a && b }), true
	case OpOr:
		return boolBinary(op, func(a, b bool) any { return a || b }), true
	case OpEq:
		return boolBinary(op, func(a, b bool) any { return a == b }), true
	case OpNotEq:
		return boolBinary(op, func(a, b bool) any { return a != b }), true
	}
	return nil, false
}

func (booleanType) Unary(op Operator) (UnaryFunc, bool) {
	if op != OpNot {
		return nil, false
	}
	return func(v any) (any, error) {
		b, ok := v.(bool)
		if !ok {
			return nil, &OperandError{Type: "Boolean", Op: op, Operand: v}
		}
		return !b, nil
	}, true
}

func boolBinary(op Operator, fn func(a, b bool) any) BinaryFunc {
	return func(l, r any) (any, error) {
		a, ok := l.(bool)
		if !ok {
			return nil, &OperandError{Type: "Boolean", Op: op, Operand: l}
		}
		b, ok := r.(bool)
		if !ok {
			return nil, &OperandError{Type: "Boolean", Op: op, Operand: r}
		}
		return fn(a, b), nil
	}
}

// --- Character ---

type characterType struct{}

func (characterType) Name() string                     { return "Character" }
func (characterType) Identifier() string               { return "char" }
func (characterType) Backing() reflect.Type            { return reflect.TypeFor[rune]() }
func (characterType) Unary(Operator) (UnaryFunc, bool) { return nil, false }
func (characterType) Default() any                     { return rune(0) }
func (characterType) String() string                   { return "Character" }

func (characterType) Equal(a, b any) bool {
	x, ok1 := a.(rune)
	y, ok2 := b.(rune)
	return ok1 && ok2 && x == y
}

func (characterType) Binary(op Operator) (BinaryFunc, bool) {
	var fn func(a, b rune) any
	switch op {
	case OpEq:
		fn = func(a, b rune) any { return a == b }
	case OpNotEq:
		fn = func(a, b rune) any { return a != b }
	default:
		return nil, false
	}
	return func(l, r any) (any, error) {
		a, ok := l.(rune)
		if !ok {
			return nil, &OperandError{Type: "Character", Op: op, Operand: l}
		}
		b, ok := r.(rune)
		if !ok {
			return nil, &OperandError{Type: "Character", Op: op, Operand: r}
		}
		return fn(a, b), nil
	}, true
}

// --- Number ---

type numberType struct{}

func (numberType) Name() string          { return "Number" }
func (numberType) Identifier() string    { return "number" }
func (numberType) Backing() reflect.Type { return reflect.TypeFor[float64]() }
func (numberType) Default() any          { return float64(0) }
func (numberType) String() string        { return "Number" }

func (numberType) Equal(a, b any) bool {
	x, ok1 := a.(float64)
	y, ok2 := b.(float64)
	return ok1 && ok2 && x == y
}

func (numberType) Binary(op Operator) (BinaryFunc, bool) {
	var fn func(a, b float64) any
	switch op {
	case OpAdd:
		fn = func(a, b float64) any { return a + b }
	case OpSub:
		fn = func(a, b float64) any { return a - b }
	case OpMul:
		fn = func(a, b float64) any { return a * b }
	case OpDiv:
		fn = func(a, b float64) any { return a / b }
	case OpMod:
		fn = func(a, b float64) any { return math.Mod(a, b) }
	case OpEq:
		fn = func(a, b float64) any { return a == b }
	case OpNotEq:
		fn = func(a, b float64) any { return a != b }
	case OpLess:
		fn = func(a, b float64) any { return a < b }
	case OpGreater:
		fn = func(a, b float64) any { return a > b }
	case OpLessEq:
		fn = func(a, b float64) any { return a <= b }
	case OpGreaterEq:
		fn = func(a, b float64) any { return a >= b }
	default:
		return nil, false
	}
	return func(l, r any) (any, error) {
		a, ok := l.(float64)
		if !ok {
			return nil, &OperandError{Type: "Number", Op: op, Operand: l}
		}
		b, ok := r.(float64)
		if !ok {
			return nil, &OperandError{Type: "Number", Op: op, Operand: r}
		}
		return fn(a, b), nil
	}, true
}

func (numberType) Unary(op Operator) (UnaryFunc, bool) {
	var fn func(float64) float64
	switch op {
	case OpNegate:
		fn = func(v float64) float64 { return -v }
	case OpPlus:
		fn = func(v float64) float64 { return v }
	default:
		return nil, false
	}
	return func(v any) (any, error) {
		n, ok := v.(float64)
		if !ok {
			return nil, &OperandError{Type: "Number", Op: op, Operand: v}
		}
		return fn(n), nil
	}, true
}

// --- String ---

type stringType struct{}

func (stringType) Name() string                     { return "String" }
func (stringType) Identifier() string               { return "string" }
func (stringType) Backing() reflect.Type            { return reflect.TypeFor[string]() }
func (stringType) Unary(Operator) (UnaryFunc, bool) { return nil, false }
func (stringType) Default() any                     { return "" }
func (stringType) String() string                   { return "String" }

func (stringType) Equal(a, b any) bool {
	x, ok1 := a.(string)
	y, ok2 := b.(string)
	return ok1 && ok2 && x == y
}

func (stringType) Binary(op Operator) (BinaryFunc, bool) {
	var fn func(a, b string) any
	switch op {
	case OpAdd:
		fn = func(a, b string) any { return a + b }
	case OpEq:
		fn = func(a, b string) any { return a == b }
	case OpNotEq:
		fn = func(a, b string) any { return a != b }
	default:
		return nil, false
	}
	return func(l, r any) (any, error) {
		a, ok := l.(string)
		if !ok {
			return nil, &OperandError{Type: "String", Op: op, Operand: l}
		}
		b, ok := r.(string)
		if !ok {
			return nil, &OperandError{Type: "String", Op: op, Operand: r}
		}
		return fn(a, b), nil
	}, true
}

// --- Method ---

type methodType struct{}

func (methodType) Name() string                       { return "Method" }
func (methodType) Identifier() string                 { return "" }
func (methodType) Backing() reflect.Type              { return callableType }
func (methodType) Binary(Operator) (BinaryFunc, bool) { return nil, false }
func (methodType) Unary(Operator) (UnaryFunc, bool)   { return nil, false }
func (methodType) Default() any                       { return nil }
func (methodType) String() string                     { return "Method" }

func (methodType) Equal(a, b any) bool {
	x, ok1 := a.(Callable)
	y, ok2 := b.(Callable)
	return ok1 && ok2 && x.SameCallable(y)
}

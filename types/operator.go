package types

// Operator identifies a binary or unary operator. Each provider maps the
// operators it supports to a function through an explicit switch.
type Operator int

const (
	OpNone Operator = iota

	// Binary operators.
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNotEq
	OpLess
	OpGreater
	OpLessEq
	OpGreaterEq
	OpAnd
	OpOr

	// Unary operators.
	OpNot
	OpNegate
	OpPlus
)

var operatorSymbols = [...]string{
	OpNone:      "",
	OpAdd:       "+",
	OpSub:       "-",
	OpMul:       "*",
	OpDiv:       "/",
	OpMod:       "%",
	OpEq:        "==",
	OpNotEq:     "!=",
	OpLess:      "<",
	OpGreater:   ">",
	OpLessEq:    "<=",
	OpGreaterEq: ">=",
	OpAnd:       "&&",
	OpOr:        "||",
	OpNot:       "!",
	OpNegate:    "-",
	OpPlus:      "+",
}

// String returns the source symbol of the operator.
func (op Operator) String() string {
	if op < 0 || int(op) >= len(operatorSymbols) {
		return "?"
	}
	return operatorSymbols[op]
}

// IsUnary reports whether op only takes a single operand.
func (op Operator) IsUnary() bool {
	return op == OpNot || op == OpNegate || op == OpPlus
}

// ResultType returns the fixed result type of the operator, or nil when the
// result has the type of its (left) operand.
func (op Operator) ResultType() Provider {
	switch op {
	case OpEq, OpNotEq, OpLess, OpGreater, OpLessEq, OpGreaterEq, OpAnd, OpOr, OpNot:
		return Boolean
	}
	return nil
}

// BinaryFromSymbol maps a binary operator symbol to its Operator.
func BinaryFromSymbol(sym string) (Operator, bool) {
	for op := OpAdd; op <= OpOr; op++ {
		if operatorSymbols[op] == sym {
			return op, true
		}
	}
	return OpNone, false
}

// UnaryFromSymbol maps a prefix operator symbol to its Operator.
func UnaryFromSymbol(sym string) (Operator, bool) {
	switch sym {
	case "!":
		return OpNot, true
	case "-":
		return OpNegate, true
	case "+":
		return OpPlus, true
	}
	return OpNone, false
}

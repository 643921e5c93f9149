package ast

import (
	"github.com/rubiojr/sandscript/types"
	"modernc.org/token"
)

// Factory centralizes AST node creation for the parser and rewrite passes.
// Rewritten nodes keep the position of the node they replace.
type Factory struct{}

// NewFactory returns a new Factory.
func NewFactory() *Factory { return &Factory{} }

// NoOp creates a NoOperation at pos.
func (f *Factory) NoOp(pos token.Position) *NoOperation {
	return &NoOperation{Base{pos}}
}

// Literal creates a Literal typed by the provider of value.
func (f *Factory) Literal(pos token.Position, value any) *Literal {
	p, ok := types.Of(value)
	if !ok {
		p = types.Nothing
	}
	return &Literal{Base: Base{pos}, Value: value, Type: p}
}

// Type creates a VariableType for a resolved provider.
func (f *Factory) Type(pos token.Position, p types.Provider) *VariableType {
	return &VariableType{Base: Base{pos}, Name: p.Identifier(), Provider: p}
}

// --- Copy helpers ---

// ProgramFrom creates a new Program copying metadata from src with a new body.
func (f *Factory) ProgramFrom(src *Program, body []Node) *Program {
	return &Program{Base: src.Base, Body: body, SourceFile: src.SourceFile}
}

// BlockWithBody creates a Block at the position of src with a new body.
func (f *Factory) BlockWithBody(src *Block, body []Node) *Block {
	return &Block{Base: src.Base, Body: body}
}

// BinaryWithOperands creates a shallow copy of a BinaryOperator with new operands.
func (f *Factory) BinaryWithOperands(src *BinaryOperator, left, right Node) *BinaryOperator {
	cp := *src
	cp.Left, cp.Right = left, right
	return &cp
}

// UnaryWithOperand creates a shallow copy of a UnaryOperator with a new operand.
func (f *Factory) UnaryWithOperand(src *UnaryOperator, operand Node) *UnaryOperator {
	cp := *src
	cp.Operand = operand
	return &cp
}

// IfWithBranches creates a shallow copy of an If with new children.
func (f *Factory) IfWithBranches(src *If, cond, then, els Node) *If {
	cp := *src
	cp.Cond, cp.Then, cp.Else = cond, then, els
	return &cp
}

// WhileWith creates a shallow copy of a While with new children.
func (f *Factory) WhileWith(src *While, cond, body Node) *While {
	cp := *src
	cp.Cond, cp.Body = cond, body
	return &cp
}

// DoWhileWith creates a shallow copy of a DoWhile with new children.
func (f *Factory) DoWhileWith(src *DoWhile, body, cond Node) *DoWhile {
	cp := *src
	cp.Body, cp.Cond = body, cond
	return &cp
}

// ForWith creates a shallow copy of a For with new children.
func (f *Factory) ForWith(src *For, init *VariableDeclaration, cond Node, step *Assignment, body Node) *For {
	cp := *src
	cp.Init, cp.Cond, cp.Step, cp.Body = init, cond, step, body
	return &cp
}

// DeclarationWithDefault creates a shallow copy of a VariableDeclaration
// with a new default expression.
func (f *Factory) DeclarationWithDefault(src *VariableDeclaration, def Node) *VariableDeclaration {
	cp := *src
	cp.Default = def
	return &cp
}

// AssignmentWithValue creates a shallow copy of an Assignment with a new value.
func (f *Factory) AssignmentWithValue(src *Assignment, value Node) *Assignment {
	cp := *src
	cp.Value = value
	return &cp
}

// ReturnWithValue creates a shallow copy of a Return with a new value.
func (f *Factory) ReturnWithValue(src *Return, value Node) *Return {
	cp := *src
	cp.Value = value
	return &cp
}

// MethodWithBody creates a shallow copy of a MethodDeclaration with a new body.
func (f *Factory) MethodWithBody(src *MethodDeclaration, body Node) *MethodDeclaration {
	cp := *src
	cp.Body = body
	return &cp
}

// CallWithArgs creates a shallow copy of a MethodCall with new arguments.
func (f *Factory) CallWithArgs(src *MethodCall, args []Node) *MethodCall {
	cp := *src
	cp.Args = args
	return &cp
}

// CallWithTypes creates a shallow copy of a MethodCall annotated with the
// static types of its arguments.
func (f *Factory) CallWithTypes(src *MethodCall, argTypes []types.Provider) *MethodCall {
	cp := *src
	cp.ArgTypes = argTypes
	return &cp
}

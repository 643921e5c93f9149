// Package ast defines the SandScript syntax tree.
//
// The node set is closed: every node type lives in this package and
// implements the unexported node method. Trees are treated as immutable
// once built; passes that rewrite a tree allocate new nodes through
// Factory and share unchanged subtrees.
package ast

import (
	"github.com/rubiojr/sandscript/types"
	"modernc.org/token"
)

// Node is the interface for all AST nodes.
type Node interface {
	Pos() token.Position
	node()
}

// Base carries the source position every node is created with.
type Base struct {
	At token.Position
}

func (b Base) Pos() token.Position { return b.At }

// Program is the root node. Its body runs in the global scope.
type Program struct {
	Base
	Body       []Node
	SourceFile string
}

// Block is a braced statement list that opens a new scope.
type Block struct {
	Base
	Body []Node
}

// Literal is a constant whose type is already resolved.
type Literal struct {
	Base
	Value any
	Type  types.Provider
}

// Variable references a variable by name.
type Variable struct {
	Base
	Name string
}

// VariableType is a type identifier resolved to its provider.
type VariableType struct {
	Base
	Name     string
	Provider types.Provider
}

// VariableDeclaration declares one or more names of the same type with an
// optional default value expression (nil when absent).
type VariableDeclaration struct {
	Base
	Type    *VariableType
	Names   []*Variable
	Default Node
}

// Assignment writes Value to Target. Op is types.OpNone for plain '=' and
// the arithmetic operator for compound forms such as '+='.
type Assignment struct {
	Base
	Target *Variable
	Op     types.Operator
	Value  Node
}

// BinaryOperator applies Op to two operands.
type BinaryOperator struct {
	Base
	Op    types.Operator
	Left  Node
	Right Node
}

// UnaryOperator applies Op to one operand.
type UnaryOperator struct {
	Base
	Op      types.Operator
	Operand Node
}

// If runs Then when Cond holds and Else otherwise. Else is another If for
// "else if", a Block, or NoOperation.
type If struct {
	Base
	Cond Node
	Then Node
	Else Node
}

// While checks Cond before each run of Body.
type While struct {
	Base
	Cond Node
	Body Node
}

// DoWhile runs Body once before the first check of Cond.
type DoWhile struct {
	Base
	Body Node
	Cond Node
}

// For is the counted loop: Init runs once in the loop scope, Cond is
// checked before each run of Body and Step runs after it.
type For struct {
	Base
	Init *VariableDeclaration
	Cond Node
	Step *Assignment
	Body Node
}

// Return leaves the enclosing method. Value is NoOperation for a bare
// return.
type Return struct {
	Base
	Value Node
}

// MethodDeclaration defines a script method.
type MethodDeclaration struct {
	Base
	Return *VariableType
	Name   string
	Params []*Parameter
	Body   Node
}

// Parameter is one declared method parameter.
type Parameter struct {
	Base
	Type *VariableType
	Name string
}

// MethodCall invokes a method by name. ArgTypes is empty until the analyzer
// annotates the call with the static types of its arguments.
type MethodCall struct {
	Base
	Name     string
	Args     []Node
	ArgTypes []types.Provider
}

// NoOperation is the empty statement. Passes also use it to mark a subtree
// that was removed.
type NoOperation struct {
	Base
}

// Comment is source commentary, kept only when trivia is requested.
type Comment struct {
	Base
	Text string
}

// Whitespace is a run of blank source, kept only when trivia is requested.
type Whitespace struct {
	Base
	Text string
}

func (*Program) node()             {}
func (*Block) node()               {}
func (*Literal) node()             {}
func (*Variable) node()            {}
func (*VariableType) node()        {}
func (*VariableDeclaration) node() {}
func (*Assignment) node()          {}
func (*BinaryOperator) node()      {}
func (*UnaryOperator) node()       {}
func (*If) node()                  {}
func (*While) node()               {}
func (*DoWhile) node()             {}
func (*For) node()                 {}
func (*Return) node()              {}
func (*MethodDeclaration) node()   {}
func (*Parameter) node()           {}
func (*MethodCall) node()          {}
func (*NoOperation) node()         {}
func (*Comment) node()             {}
func (*Whitespace) node()          {}

// IsNoOp reports whether n is nil or a NoOperation.
func IsNoOp(n Node) bool {
	if n == nil {
		return true
	}
	_, ok := n.(*NoOperation)
	return ok
}

// IsTrivia reports whether n is a comment or whitespace node.
func IsTrivia(n Node) bool {
	switch n.(type) {
	case *Comment, *Whitespace:
		return true
	}
	return false
}

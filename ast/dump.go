package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes an indented rendering of the tree rooted at n, one node per
// line with its line:column position.
func Dump(w io.Writer, n Node) {
	dump(w, n, 0)
}

// DumpString is Dump into a string.
func DumpString(n Node) string {
	var sb strings.Builder
	Dump(&sb, n)
	return sb.String()
}

func dump(w io.Writer, n Node, depth int) {
	if n == nil || isNilPtr(n) {
		return
	}
	pos := n.Pos()
	fmt.Fprintf(w, "%s%s", strings.Repeat("  ", depth), Label(n))
	if pos.IsValid() {
		fmt.Fprintf(w, " @%d:%d", pos.Line, pos.Column)
	}
	fmt.Fprintln(w)
	switch n.(type) {
	case *VariableType, *Variable, *Parameter:
		return
	}
	for _, c := range Children(n) {
		dump(w, c, depth+1)
	}
}

// Label is the one-line description Dump prints for n, without position.
func Label(n Node) string {
	switch n := n.(type) {
	case *Program:
		return "Program"
	case *Block:
		return "Block"
	case *Literal:
		typ := "?"
		if n.Type != nil {
			typ = n.Type.Name()
		}
		return fmt.Sprintf("Literal %s %s", typ, quote(n.Value))
	case *Variable:
		return "Variable " + n.Name
	case *VariableType:
		return "Type " + n.Name
	case *VariableDeclaration:
		names := make([]string, len(n.Names))
		for i, v := range n.Names {
			names[i] = v.Name
		}
		return fmt.Sprintf("Declare %s %s", n.Type.Name, strings.Join(names, ", "))
	case *Assignment:
		if n.Op == 0 {
			return "Assign " + n.Target.Name + " ="
		}
		return fmt.Sprintf("Assign %s %s=", n.Target.Name, n.Op)
	case *BinaryOperator:
		return "Binary " + n.Op.String()
	case *UnaryOperator:
		return "Unary " + n.Op.String()
	case *If:
		return "If"
	case *While:
		return "While"
	case *DoWhile:
		return "DoWhile"
	case *For:
		return "For"
	case *Return:
		return "Return"
	case *MethodDeclaration:
		return fmt.Sprintf("Method %s %s", n.Return.Name, n.Name)
	case *Parameter:
		return fmt.Sprintf("Param %s %s", n.Type.Name, n.Name)
	case *MethodCall:
		return "Call " + n.Name
	case *NoOperation:
		return "NoOp"
	case *Comment:
		return "Comment " + strconv.Quote(n.Text)
	case *Whitespace:
		return "Whitespace"
	default:
		return fmt.Sprintf("%T", n)
	}
}

func quote(v any) string {
	switch v := v.(type) {
	case string:
		return strconv.Quote(v)
	case rune:
		return strconv.QuoteRune(v)
	default:
		return fmt.Sprint(v)
	}
}

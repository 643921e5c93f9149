package parser

import (
	"github.com/rubiojr/sandscript/ast"
	"github.com/rubiojr/sandscript/scanner"
	"github.com/rubiojr/sandscript/types"
)

func (p *Parser) parseExpr() (ast.Node, error) {
	return p.parseOrExpr()
}

// binaryLevel parses one left-associative precedence level.
func (p *Parser) binaryLevel(ops []string, operand func() (ast.Node, error)) (ast.Node, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.Kind != scanner.Punct || !contains(ops, t.Text) {
			return left, nil
		}
		p.pos++
		right, err := operand()
		if err != nil {
			return nil, err
		}
		op, _ := types.BinaryFromSymbol(t.Text)
		left = &ast.BinaryOperator{Base: ast.Base{At: t.Pos}, Op: op, Left: left, Right: right}
	}
}

func contains(ops []string, s string) bool {
	for _, o := range ops {
		if o == s {
			return true
		}
	}
	return false
}

func (p *Parser) parseOrExpr() (ast.Node, error) {
	return p.binaryLevel([]string{"||"}, p.parseAndExpr)
}

func (p *Parser) parseAndExpr() (ast.Node, error) {
	return p.binaryLevel([]string{"&&"}, p.parseEqualityExpr)
}

func (p *Parser) parseEqualityExpr() (ast.Node, error) {
	return p.binaryLevel([]string{"==", "!="}, p.parseCompExpr)
}

func (p *Parser) parseCompExpr() (ast.Node, error) {
	return p.binaryLevel([]string{"<", ">", "<=", ">="}, p.parseAddExpr)
}

func (p *Parser) parseAddExpr() (ast.Node, error) {
	return p.binaryLevel([]string{"+", "-"}, p.parseMulExpr)
}

func (p *Parser) parseMulExpr() (ast.Node, error) {
	return p.binaryLevel([]string{"*", "/", "%"}, p.parseUnaryExpr)
}

func (p *Parser) parseUnaryExpr() (ast.Node, error) {
	t := p.peek()
	if t.Kind == scanner.Punct {
		if op, ok := types.UnaryFromSymbol(t.Text); ok {
			p.pos++
			operand, err := p.parseUnaryExpr()
			if err != nil {
				return nil, err
			}
			return &ast.UnaryOperator{Base: ast.Base{At: t.Pos}, Op: op, Operand: operand}, nil
		}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Node, error) {
	t := p.peek()
	switch t.Kind {
	case scanner.Number, scanner.String, scanner.Char, scanner.Bool:
		p.pos++
		return p.f.Literal(t.Pos, t.Value), nil
	case scanner.Ident:
		if p.peekAt(1).Is("(") {
			return p.parseCall()
		}
		p.pos++
		return &ast.Variable{Base: ast.Base{At: t.Pos}, Name: t.Text}, nil
	case scanner.Punct:
		if t.Is("(") {
			p.pos++
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			_, err = p.expect(")")
			return e, err
		}
	}
	return nil, p.unexpected(t, "expression")
}

func (p *Parser) parseCall() (*ast.MethodCall, error) {
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	call := &ast.MethodCall{Base: ast.Base{At: name.Pos}, Name: name.Text}
	if p.accept(")") {
		return call, nil
	}
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
		if p.accept(")") {
			return call, nil
		}
		if _, err := p.expect(","); err != nil {
			return nil, err
		}
	}
}

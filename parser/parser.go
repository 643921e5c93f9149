// Package parser builds SandScript syntax trees from tokens.
//
// It is a hand-written recursive descent parser. Expression precedence,
// from loosest to tightest:
//
//	||
//	&&
//	== !=
//	< > <= >=
//	+ -
//	* / %
//	! - + (unary)
//	literals, names, calls, parentheses
//
// Type identifiers are resolved to registered providers while parsing, so
// an unknown type name is a parse error. Errors are recorded in the
// diag.Report and the parser resynchronizes at the next statement.
package parser

import (
	"fmt"

	"github.com/rubiojr/sandscript/ast"
	"github.com/rubiojr/sandscript/diag"
	"github.com/rubiojr/sandscript/scanner"
	"github.com/rubiojr/sandscript/types"
	"modernc.org/token"
)

// Error is a syntax error.
type Error struct {
	Code diag.Code
	Pos  token.Position
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Msg) }

var assignOps = map[string]types.Operator{
	"=":  types.OpNone,
	"+=": types.OpAdd,
	"-=": types.OpSub,
	"*=": types.OpMul,
	"/=": types.OpDiv,
	"%=": types.OpMod,
}

// Parser converts a token stream into an ast.Program.
type Parser struct {
	toks   []scanner.Token
	pos    int
	file   string
	report *diag.Report
	f      *ast.Factory
}

// Parse scans and parses src. Lexical and syntax diagnostics both go to
// report. The returned program holds every statement that parsed.
func Parse(filename, src string, keepTrivia bool, report *diag.Report) *ast.Program {
	toks := scanner.Scan(filename, src, keepTrivia, report)
	return ParseTokens(filename, toks, report)
}

// ParseTokens parses an already scanned token stream. The stream must end
// with an EOF token.
func ParseTokens(filename string, toks []scanner.Token, report *diag.Report) *ast.Program {
	// Illegal tokens were already reported by the scanner.
	clean := make([]scanner.Token, 0, len(toks))
	for _, t := range toks {
		if t.Kind != scanner.Illegal {
			clean = append(clean, t)
		}
	}
	p := &Parser{toks: clean, file: filename, report: report, f: ast.NewFactory()}
	return p.parseProgram()
}

// --- token helpers ---

func (p *Parser) raw() scanner.Token {
	if p.pos >= len(p.toks) {
		return scanner.Token{Kind: scanner.EOF}
	}
	return p.toks[p.pos]
}

// trivia consumes comment and whitespace tokens and returns them as nodes.
func (p *Parser) trivia() []ast.Node {
	var out []ast.Node
	for {
		t := p.raw()
		switch t.Kind {
		case scanner.Comment:
			text, _ := t.Value.(string)
			out = append(out, &ast.Comment{Base: ast.Base{At: t.Pos}, Text: text})
		case scanner.Whitespace:
			out = append(out, &ast.Whitespace{Base: ast.Base{At: t.Pos}, Text: t.Text})
		default:
			return out
		}
		p.pos++
	}
}

func (p *Parser) peek() scanner.Token {
	p.trivia()
	return p.raw()
}

// peekAt looks n significant tokens ahead without consuming anything.
func (p *Parser) peekAt(n int) scanner.Token {
	save := p.pos
	defer func() { p.pos = save }()
	for i := 0; i < n; i++ {
		if p.peek().Kind == scanner.EOF {
			return p.raw()
		}
		p.pos++
	}
	return p.peek()
}

func (p *Parser) next() scanner.Token {
	t := p.peek()
	if t.Kind != scanner.EOF {
		p.pos++
	}
	return t
}

func (p *Parser) accept(text string) bool {
	if p.peek().Is(text) {
		p.pos++
		return true
	}
	return false
}

func (p *Parser) expect(text string) (scanner.Token, error) {
	t := p.peek()
	if !t.Is(text) {
		return t, p.unexpected(t, fmt.Sprintf("%q", text))
	}
	p.pos++
	return t, nil
}

func (p *Parser) expectIdent() (scanner.Token, error) {
	t := p.peek()
	if t.Kind != scanner.Ident {
		return t, p.unexpected(t, "identifier")
	}
	p.pos++
	return t, nil
}

func (p *Parser) unexpected(t scanner.Token, want string) *Error {
	return &Error{Code: diag.CodeUnexpectedToken, Pos: t.Pos, Msg: fmt.Sprintf("unexpected %s, expected %s", t, want)}
}

// sync skips to just past the next ';' or to the closing brace of the
// current block.
func (p *Parser) sync() {
	for {
		t := p.peek()
		if t.Kind == scanner.EOF || t.Is("}") {
			return
		}
		p.pos++
		if t.Is(";") {
			return
		}
	}
}

func (p *Parser) fail(err error) {
	var pe *Error
	if e, ok := err.(*Error); ok {
		pe = e
	} else {
		pe = &Error{Code: diag.CodeUnexpectedToken, Pos: p.peek().Pos, Msg: err.Error()}
	}
	p.report.Errorf(pe.Code, pe.Pos, "%s", pe.Msg)
}

// --- statements ---

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{SourceFile: p.file}
	prog.At = token.Position{Filename: p.file, Line: 1, Column: 1}
	prog.Body = p.parseStatements(false)
	return prog
}

// parseStatements parses until EOF, or until a closing brace when inBlock
// is set. The brace is left for the caller.
func (p *Parser) parseStatements(inBlock bool) []ast.Node {
	var body []ast.Node
	for {
		body = append(body, p.trivia()...)
		t := p.raw()
		if t.Kind == scanner.EOF || (inBlock && t.Is("}")) {
			return body
		}
		start := p.pos
		stmt, err := p.parseStatement()
		if err != nil {
			p.fail(err)
			p.sync()
			if p.pos == start {
				p.pos++
			}
			continue
		}
		body = append(body, stmt)
	}
}

func (p *Parser) parseStatement() (ast.Node, error) {
	t := p.peek()
	switch {
	case t.Is(";"):
		p.pos++
		return p.f.NoOp(t.Pos), nil
	case t.Is("{"):
		return p.parseBlock()
	case t.Is("if"):
		return p.parseIf()
	case t.Is("while"):
		return p.parseWhile()
	case t.Is("do"):
		return p.parseDoWhile()
	case t.Is("for"):
		return p.parseFor()
	case t.Is("return"):
		return p.parseReturn()
	case t.Kind == scanner.Ident:
		return p.parseIdentStatement()
	}
	return nil, p.unexpected(t, "statement")
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	open, err := p.expect("{")
	if err != nil {
		return nil, err
	}
	body := p.parseStatements(true)
	if _, err := p.expect("}"); err != nil {
		return nil, err
	}
	return &ast.Block{Base: ast.Base{At: open.Pos}, Body: body}, nil
}

// parseIdentStatement handles the statements that start with a name:
// declarations, method declarations, assignments and calls.
func (p *Parser) parseIdentStatement() (ast.Node, error) {
	name := p.peek()
	after := p.peekAt(1)
	switch {
	case after.Kind == scanner.Ident:
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if p.peekAt(1).Is("(") {
			return p.parseMethodDeclaration(typ)
		}
		decl, err := p.parseDeclarationRest(typ)
		if err != nil {
			return nil, err
		}
		_, err = p.expect(";")
		return decl, err
	case after.Is("("):
		call, err := p.parseCall()
		if err != nil {
			return nil, err
		}
		_, err = p.expect(";")
		return call, err
	}
	if _, ok := assignOps[after.Text]; ok && after.Kind == scanner.Punct {
		a, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		_, err = p.expect(";")
		return a, err
	}
	p.pos++
	return nil, p.unexpected(p.peek(), fmt.Sprintf("assignment or call after %s", name))
}

func (p *Parser) parseType() (*ast.VariableType, error) {
	t, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	prov, ok := types.ByIdentifier(t.Text)
	if !ok {
		return nil, &Error{Code: diag.CodeUnknownType, Pos: t.Pos, Msg: fmt.Sprintf("unknown type %q", t.Text)}
	}
	return &ast.VariableType{Base: ast.Base{At: t.Pos}, Name: t.Text, Provider: prov}, nil
}

func (p *Parser) parseDeclarationRest(typ *ast.VariableType) (*ast.VariableDeclaration, error) {
	decl := &ast.VariableDeclaration{Base: typ.Base, Type: typ}
	for {
		t, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		decl.Names = append(decl.Names, &ast.Variable{Base: ast.Base{At: t.Pos}, Name: t.Text})
		if !p.accept(",") {
			break
		}
	}
	if p.accept("=") {
		def, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		decl.Default = def
	}
	return decl, nil
}

func (p *Parser) parseMethodDeclaration(ret *ast.VariableType) (*ast.MethodDeclaration, error) {
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	m := &ast.MethodDeclaration{Base: ret.Base, Return: ret, Name: name.Text}
	if !p.accept(")") {
		for {
			typ, err := p.parseType()
			if err != nil {
				return nil, err
			}
			pname, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			m.Params = append(m.Params, &ast.Parameter{Base: typ.Base, Type: typ, Name: pname.Text})
			if p.accept(")") {
				break
			}
			if _, err := p.expect(","); err != nil {
				return nil, err
			}
		}
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	m.Body = body
	return m, nil
}

func (p *Parser) parseAssignment() (*ast.Assignment, error) {
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	opTok := p.next()
	op, ok := assignOps[opTok.Text]
	if !ok || opTok.Kind != scanner.Punct {
		return nil, p.unexpected(opTok, "assignment operator")
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{
		Base:   ast.Base{At: name.Pos},
		Target: &ast.Variable{Base: ast.Base{At: name.Pos}, Name: name.Text},
		Op:     op,
		Value:  value,
	}, nil
}

func (p *Parser) parseCondition() (ast.Node, error) {
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	_, err = p.expect(")")
	return cond, err
}

func (p *Parser) parseIf() (ast.Node, error) {
	kw := p.next()
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	n := &ast.If{Base: ast.Base{At: kw.Pos}, Cond: cond, Then: then, Else: p.f.NoOp(kw.Pos)}
	if p.accept("else") {
		if p.peek().Is("if") {
			n.Else, err = p.parseIf()
		} else {
			n.Else, err = p.parseBlock()
		}
		if err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (p *Parser) parseWhile() (ast.Node, error) {
	kw := p.next()
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{Base: ast.Base{At: kw.Pos}, Cond: cond, Body: body}, nil
}

func (p *Parser) parseDoWhile() (ast.Node, error) {
	kw := p.next()
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("while"); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return &ast.DoWhile{Base: ast.Base{At: kw.Pos}, Body: body, Cond: cond}, nil
}

func (p *Parser) parseFor() (ast.Node, error) {
	kw := p.next()
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	init, err := p.parseDeclarationRest(typ)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	step, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.For{Base: ast.Base{At: kw.Pos}, Init: init, Cond: cond, Step: step, Body: body}, nil
}

func (p *Parser) parseReturn() (ast.Node, error) {
	kw := p.next()
	if p.accept(";") {
		return &ast.Return{Base: ast.Base{At: kw.Pos}, Value: p.f.NoOp(kw.Pos)}, nil
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return &ast.Return{Base: ast.Base{At: kw.Pos}, Value: value}, nil
}

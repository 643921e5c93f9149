// Package scanner turns SandScript source text into tokens.
//
// The Scanner walks the source one rune at a time, tracking the byte offset
// of the current rune. Positions are resolved through a modernc.org/token
// File so every token carries a line and column. Lexical problems are
// recorded in a diag.Report; scanning always continues to the end of input.
package scanner

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rubiojr/sandscript/diag"
	"modernc.org/token"
)

// Kind classifies a token.
type Kind int

const (
	EOF Kind = iota
	Illegal
	Ident
	Keyword
	Number
	String
	Char
	Bool
	Punct
	Comment
	Whitespace
)

var kindNames = [...]string{
	EOF:        "end of input",
	Illegal:    "illegal",
	Ident:      "identifier",
	Keyword:    "keyword",
	Number:     "number",
	String:     "string",
	Char:       "character",
	Bool:       "boolean",
	Punct:      "punctuation",
	Comment:    "comment",
	Whitespace: "whitespace",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "?"
}

// Token is one lexical unit. Value holds the decoded literal for Number
// (float64), String (string), Char (rune) and Bool (bool) tokens.
type Token struct {
	Kind  Kind
	Text  string
	Value any
	Pos   token.Position
}

func (t Token) String() string {
	if t.Kind == EOF {
		return t.Kind.String()
	}
	return strconv.Quote(t.Text)
}

// Is reports whether t is the punctuation or keyword text.
func (t Token) Is(text string) bool {
	return (t.Kind == Punct || t.Kind == Keyword) && t.Text == text
}

var keywords = map[string]bool{
	"if":     true,
	"else":   true,
	"while":  true,
	"do":     true,
	"for":    true,
	"return": true,
}

// IsKeyword reports whether s is reserved.
func IsKeyword(s string) bool { return keywords[s] || s == "true" || s == "false" }

// Two-character operators are tried before single characters.
var (
	punct2 = []string{"==", "!=", "<=", ">=", "&&", "||", "+=", "-=", "*=", "/=", "%="}
	punct1 = "+-*/%<>=!(){},;"
)

// Scanner produces tokens from source text.
type Scanner struct {
	src    string
	file   *token.File
	pos    int
	keep   bool
	report *diag.Report
}

// New creates a Scanner. When keepTrivia is set, comments and whitespace
// are returned as tokens instead of being skipped.
func New(filename, src string, keepTrivia bool, report *diag.Report) *Scanner {
	f := token.NewFile(filename, len(src))
	f.SetLinesForContent([]byte(src))
	return &Scanner{src: src, file: f, keep: keepTrivia, report: report}
}

// Scan tokenizes src completely. The result always ends with an EOF token.
// Source made only of whitespace reports a "no code" error.
func Scan(filename, src string, keepTrivia bool, report *diag.Report) []Token {
	s := New(filename, src, keepTrivia, report)
	if strings.TrimSpace(src) == "" {
		report.Errorf(diag.CodeNoCode, token.Position{Filename: filename}, "no code to run")
		return []Token{{Kind: EOF, Pos: s.position(len(src))}}
	}
	var toks []Token
	for {
		t := s.Next()
		toks = append(toks, t)
		if t.Kind == EOF {
			return toks
		}
	}
}

// File returns the position table of the scanned source.
func (s *Scanner) File() *token.File { return s.file }

func (s *Scanner) position(offset int) token.Position {
	if len(s.src) == 0 {
		return token.Position{Filename: s.file.Name(), Line: 1, Column: 1}
	}
	return s.file.Position(s.file.Pos(offset))
}

func (s *Scanner) peek(n int) rune {
	p := s.pos
	for i := 0; i < n; i++ {
		if p >= len(s.src) {
			return 0
		}
		_, w := utf8.DecodeRuneInString(s.src[p:])
		p += w
	}
	if p >= len(s.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.src[p:])
	return r
}

func (s *Scanner) cur() rune { return s.peek(0) }

func (s *Scanner) advance() {
	if s.pos < len(s.src) {
		_, w := utf8.DecodeRuneInString(s.src[s.pos:])
		s.pos += w
	}
}

func (s *Scanner) eof() bool { return s.pos >= len(s.src) }

// lookingAt checks if the remaining source starts with prefix.
func (s *Scanner) lookingAt(prefix string) bool {
	return strings.HasPrefix(s.src[s.pos:], prefix)
}

// Next returns the next token.
func (s *Scanner) Next() Token {
	for !s.eof() {
		start := s.pos
		switch {
		case unicode.IsSpace(s.cur()):
			t := s.whitespace()
			if s.keep {
				return t
			}
			continue
		case s.lookingAt("//"):
			t := s.lineComment()
			if s.keep {
				return t
			}
			continue
		case s.lookingAt("/*"):
			t := s.blockComment()
			if s.keep {
				return t
			}
			continue
		}

		r := s.cur()
		switch {
		case r == '"':
			return s.str()
		case r == '\'':
			return s.char()
		case isDigit(r):
			return s.number()
		case r == '_' || unicode.IsLetter(r):
			return s.ident()
		}

		for _, p := range punct2 {
			if s.lookingAt(p) {
				s.pos += len(p)
				return s.tok(Punct, start, nil)
			}
		}
		if r < utf8.RuneSelf && strings.ContainsRune(punct1, r) {
			s.advance()
			return s.tok(Punct, start, nil)
		}

		s.advance()
		t := s.tok(Illegal, start, nil)
		s.report.Errorf(diag.CodeUnknownToken, t.Pos, "unknown token %q", t.Text)
		return t
	}
	return Token{Kind: EOF, Pos: s.position(len(s.src))}
}

func (s *Scanner) tok(k Kind, start int, v any) Token {
	return Token{Kind: k, Text: s.src[start:s.pos], Value: v, Pos: s.position(start)}
}

func (s *Scanner) whitespace() Token {
	start := s.pos
	for !s.eof() && unicode.IsSpace(s.cur()) {
		s.advance()
	}
	return s.tok(Whitespace, start, nil)
}

func (s *Scanner) lineComment() Token {
	start := s.pos
	for !s.eof() && s.cur() != '\n' {
		s.advance()
	}
	t := s.tok(Comment, start, nil)
	t.Value = strings.TrimSpace(t.Text[2:])
	return t
}

func (s *Scanner) blockComment() Token {
	start := s.pos
	s.pos += 2
	end := strings.Index(s.src[s.pos:], "*/")
	if end < 0 {
		s.pos = len(s.src)
		t := s.tok(Comment, start, strings.TrimSpace(s.src[start+2:]))
		s.report.Errorf(diag.CodeUnclosedComment, t.Pos, "unclosed comment")
		return t
	}
	body := s.src[s.pos : s.pos+end]
	s.pos += end + 2
	return s.tok(Comment, start, strings.TrimSpace(body))
}

func (s *Scanner) ident() Token {
	start := s.pos
	for !s.eof() {
		r := s.cur()
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		s.advance()
	}
	text := s.src[start:s.pos]
	switch {
	case text == "true" || text == "false":
		return s.tok(Bool, start, text == "true")
	case keywords[text]:
		return s.tok(Keyword, start, nil)
	}
	return s.tok(Ident, start, nil)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func (s *Scanner) number() Token {
	start := s.pos
	for isDigit(s.cur()) {
		s.advance()
	}
	if s.cur() == '.' && isDigit(s.peek(1)) {
		s.advance()
		for isDigit(s.cur()) {
			s.advance()
		}
	}
	v, _ := strconv.ParseFloat(s.src[start:s.pos], 64)
	return s.tok(Number, start, v)
}

// escape decodes the rune after a backslash. ok is false for an unknown
// escape, which is kept literally.
func escape(r rune) (rune, bool) {
	switch r {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '0':
		return 0, true
	case '\\', '"', '\'':
		return r, true
	}
	return r, false
}

func (s *Scanner) str() Token {
	start := s.pos
	s.advance()
	var sb strings.Builder
	for {
		if s.eof() || s.cur() == '\n' {
			t := s.tok(String, start, sb.String())
			s.report.Errorf(diag.CodeUnclosedString, t.Pos, "unclosed string")
			return t
		}
		r := s.cur()
		s.advance()
		switch r {
		case '"':
			return s.tok(String, start, sb.String())
		case '\\':
			if s.eof() {
				continue
			}
			e, ok := escape(s.cur())
			if !ok {
				sb.WriteRune('\\')
			}
			sb.WriteRune(e)
			s.advance()
		default:
			sb.WriteRune(r)
		}
	}
}

func (s *Scanner) char() Token {
	start := s.pos
	s.advance()
	r := s.cur()
	if r == '\\' {
		s.advance()
		r, _ = escape(s.cur())
	}
	if s.eof() || s.cur() == '\n' || (r == '\'' && s.pos == start+1) {
		if r == '\'' {
			s.advance()
			return s.badChar(start, false)
		}
		return s.badChar(start, true)
	}
	s.advance()
	if s.cur() != '\'' {
		return s.badChar(start, true)
	}
	s.advance()
	return s.tok(Char, start, r)
}

// badChar reports an unterminated character literal and resynchronizes at
// the next quote on the same line.
func (s *Scanner) badChar(start int, resync bool) Token {
	for resync && !s.eof() && s.cur() != '\n' {
		r := s.cur()
		s.advance()
		if r == '\'' {
			break
		}
	}
	t := s.tok(Char, start, rune(0))
	s.report.Errorf(diag.CodeUnclosedCharacter, t.Pos, "unclosed character")
	return t
}

package scanner

import (
	"testing"

	"github.com/rubiojr/sandscript/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func texts(toks []Token) []string {
	var out []string
	for _, t := range toks {
		if t.Kind != EOF {
			out = append(out, t.Text)
		}
	}
	return out
}

func TestScanStatement(t *testing.T) {
	r := diag.NewReport("lexer")
	toks := Scan("t.ss", "number x = 2 + 3.5;", false, r)
	require.False(t, r.HasErrors())
	assert.Equal(t, []Kind{Ident, Ident, Punct, Number, Punct, Number, Punct, EOF}, kinds(toks))
	assert.Equal(t, 3.5, toks[5].Value)
	assert.Equal(t, 1, toks[1].Pos.Line)
	assert.Equal(t, 8, toks[1].Pos.Column)
}

func TestScanOperators(t *testing.T) {
	r := diag.NewReport("lexer")
	toks := Scan("t.ss", "a+=1; b<=c && !d || e != f%g", false, r)
	require.False(t, r.HasErrors())
	assert.Equal(t, []string{"a", "+=", "1", ";", "b", "<=", "c", "&&", "!", "d", "||", "e", "!=", "f", "%", "g"}, texts(toks))
}

func TestScanLiterals(t *testing.T) {
	tests := []struct {
		src  string
		kind Kind
		want any
	}{
		{`"hi\n\"there\""`, String, "hi\n\"there\""},
		{`'a'`, Char, 'a'},
		{`'\n'`, Char, '\n'},
		{`'\''`, Char, '\''},
		{`true`, Bool, true},
		{`false`, Bool, false},
		{`42`, Number, 42.0},
		{`0.25`, Number, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			r := diag.NewReport("lexer")
			toks := Scan("t.ss", tt.src, false, r)
			require.False(t, r.HasErrors(), "%v", r.Entries)
			require.Len(t, toks, 2)
			assert.Equal(t, tt.kind, toks[0].Kind)
			assert.Equal(t, tt.want, toks[0].Value)
		})
	}
}

func TestScanKeywordsAndIdents(t *testing.T) {
	r := diag.NewReport("lexer")
	toks := Scan("t.ss", "if else while do for return iffy _x1", false, r)
	assert.Equal(t, []Kind{Keyword, Keyword, Keyword, Keyword, Keyword, Keyword, Ident, Ident, EOF}, kinds(toks))
	assert.True(t, toks[0].Is("if"))
	assert.False(t, toks[6].Is("if"))
}

func TestScanTrivia(t *testing.T) {
	src := "// first\nx; /* block\ncomment */ y;"

	r := diag.NewReport("lexer")
	toks := Scan("t.ss", src, false, r)
	assert.Equal(t, []string{"x", ";", "y", ";"}, texts(toks))
	assert.Equal(t, 3, toks[2].Pos.Line)

	toks = Scan("t.ss", src, true, r)
	assert.Equal(t, []Kind{Comment, Whitespace, Ident, Punct, Whitespace, Comment, Whitespace, Ident, Punct, EOF}, kinds(toks))
	assert.Equal(t, "first", toks[0].Value)
	assert.Equal(t, "block\ncomment", toks[5].Value)
	require.False(t, r.HasErrors())
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"no code", "  \n\t", diag.CodeNoCode},
		{"unknown token", "x @ y", diag.CodeUnknownToken},
		{"unclosed string", "\"abc\nx", diag.CodeUnclosedString},
		{"unclosed string at eof", "\"abc", diag.CodeUnclosedString},
		{"unclosed char", "'ab'", diag.CodeUnclosedCharacter},
		{"empty char", "''", diag.CodeUnclosedCharacter},
		{"unclosed comment", "x /* never", diag.CodeUnclosedComment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := diag.NewReport("lexer")
			toks := Scan("t.ss", tt.src, false, r)
			errs := r.Errors()
			require.Len(t, errs, 1)
			assert.Equal(t, tt.code, errs[0].Code)
			assert.Equal(t, EOF, toks[len(toks)-1].Kind)
		})
	}
}

func TestPositionsAcrossLines(t *testing.T) {
	r := diag.NewReport("lexer")
	toks := Scan("t.ss", "a;\n  bb;\n\tc;", false, r)
	require.Len(t, toks, 7)
	assert.Equal(t, [2]int{2, 3}, [2]int{toks[2].Pos.Line, toks[2].Pos.Column})
	assert.Equal(t, [2]int{3, 2}, [2]int{toks[4].Pos.Line, toks[4].Pos.Column})
	assert.Equal(t, "t.ss", toks[4].Pos.Filename)
}

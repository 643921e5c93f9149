package optimizer

import (
	"testing"

	"github.com/rubiojr/sandscript/analyzer"
	"github.com/rubiojr/sandscript/ast"
	"github.com/rubiojr/sandscript/diag"
	"github.com/rubiojr/sandscript/parser"
	"github.com/rubiojr/sandscript/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	r := diag.NewReport("parser")
	prog := parser.Parse("test.ss", src, false, r)
	require.False(t, r.HasErrors(), "%v", r.Entries)
	return prog
}

// analyzed parses and analyzes src so method calls carry argument types.
func analyzed(t *testing.T, src string) *ast.Program {
	t.Helper()
	a := analyzer.New(nil)
	prog, ok := a.Analyze(parse(t, src))
	require.True(t, ok, "%v", a.Report().Entries)
	return prog
}

// fixpoint optimizes until a pass makes no change.
func fixpoint(t *testing.T, prog *ast.Program) *ast.Program {
	t.Helper()
	o := New(nil)
	for i := 0; i < 32; i++ {
		out, changes := o.Optimize(prog)
		require.False(t, o.Report().HasErrors(), "%v", o.Report().Entries)
		if changes == 0 {
			return out
		}
		prog = out
	}
	t.Fatal("optimizer did not reach a fixpoint")
	return nil
}

func TestFoldsDeclarationButNotVariables(t *testing.T) {
	o := New(nil)
	out, changes := o.Optimize(parse(t, "number x = 2 + 3; return x * 2;"))
	assert.Equal(t, 1, changes)

	decl := out.Body[0].(*ast.VariableDeclaration)
	lit, ok := decl.Default.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, 5.0, lit.Value)
	assert.Equal(t, types.Number, lit.Type)

	ret := out.Body[1].(*ast.Return)
	_, ok = ret.Value.(*ast.BinaryOperator)
	assert.True(t, ok, "x * 2 stays")

	_, changes = o.Optimize(out)
	assert.Zero(t, changes)
}

func TestConstantFolding(t *testing.T) {
	tests := []struct {
		expr string
		want any
	}{
		{"1 + 2", 3.0},
		{"(1 + 2) * 3", 9.0},
		{"7 % 4", 3.0},
		{"10 / 4", 2.5},
		{`"a" + "b"`, "ab"},
		{"2 < 3", true},
		{"2 >= 3", false},
		{"true && false", false},
		{"true || false", true},
		{"!true", false},
		{"-(4 - 1)", -3.0},
		{"'a' == 'a'", true},
		{`"x" != "x"`, false},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			out := fixpoint(t, parse(t, "return "+tt.expr+";"))
			lit, ok := out.Body[0].(*ast.Return).Value.(*ast.Literal)
			require.True(t, ok)
			assert.Equal(t, tt.want, lit.Value)
			assert.Equal(t, 1, lit.Pos().Line)
		})
	}
}

func TestDeadCode(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"empty blocks", "{ ; { } ; }", nil},
		{"false condition keeps else", "if (false) { x = 1; } else { x = 2; }", []string{"Block", "Assign x =", "Variable x", "Literal Number 2"}},
		{"folded false condition", "if (1 > 2) { x = 1; }", nil},
		{"true condition keeps then", "if (true) { x = 1; } else { x = 2; }", []string{"Block", "Assign x =", "Variable x", "Literal Number 1"}},
		{"empty branches", "if (x) { } else { }", nil},
		{"empty while", "while (x < 3) { }", nil},
		{"false while", "while (false) { x = 1; }", nil},
		{"do while false runs once", "do { x = 1; } while (false);", []string{"Block", "Assign x =", "Variable x", "Literal Number 1"}},
		{"empty do while", "do { } while (x);", nil},
		{"for never runs", "for (number i = 0; i < 0; i += 1) { x = 1; }", nil},
		{"for counter on the right", "for (number i = 5; 3 > i; i += 1) { x = 1; }", nil},
		{"empty for", "for (number i = 0; i < 3; i += 1) { }", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := fixpoint(t, parse(t, tt.src))
			var got []string
			for _, n := range out.Body {
				ast.Walk(n, func(n ast.Node) bool {
					got = append(got, ast.Label(n))
					return true
				})
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTriviaVanishes(t *testing.T) {
	r := diag.NewReport("parser")
	prog := parser.Parse("test.ss", "// comment\nx = 1; /* block */", true, r)
	require.Len(t, prog.Body, 5)
	out := fixpoint(t, prog)
	require.Len(t, out.Body, 1)
	assert.Equal(t, "Assign x =", ast.Label(out.Body[0]))
}

func TestLoopThatRunsIsKept(t *testing.T) {
	out := fixpoint(t, parse(t, "for (number i = 0; i < 3; i += 1) { x = 1; }"))
	require.Len(t, out.Body, 1)
	_, ok := out.Body[0].(*ast.For)
	assert.True(t, ok)
}

func TestRemovesEmptyNestedMethodAndCalls(t *testing.T) {
	prog := analyzed(t, `
number x = 0;
{
	void noop(number a) { }
	noop(1);
	noop(x + 1);
	x = 1;
}`)
	out := fixpoint(t, prog)
	require.Len(t, out.Body, 2)
	block := out.Body[1].(*ast.Block)
	require.Len(t, block.Body, 1)
	assert.Equal(t, "Assign x =", ast.Label(block.Body[0]))
}

func TestKeepsEmptyGlobalMethod(t *testing.T) {
	out := fixpoint(t, analyzed(t, "void noop() { } noop();"))
	require.Len(t, out.Body, 2)
	m := out.Body[0].(*ast.MethodDeclaration)
	assert.True(t, ast.IsNoOp(m.Body))
	_, ok := out.Body[1].(*ast.MethodCall)
	assert.True(t, ok)
}

func TestFixpointIsIdempotent(t *testing.T) {
	prog := analyzed(t, `
number add(number a, number b) { return a + b; }
number total = add(1 + 1, 2 * 3);
for (number i = 0; i < 10 - 5; i += 1) {
	if (i == 2 + 1) { total += i; } else { }
	while (false) { total = 0; }
}
`)
	out := fixpoint(t, prog)
	again, changes := New(nil).Optimize(out)
	assert.Zero(t, changes)
	assert.Same(t, out, again)
	assert.Equal(t, ast.DumpString(out), ast.DumpString(again))
}

func TestDoesNotMutateInput(t *testing.T) {
	prog := parse(t, "number x = 1 + 2; if (false) { x = 3; } { }")
	before := ast.DumpString(prog)
	fixpoint(t, prog)
	assert.Equal(t, before, ast.DumpString(prog))
}

func TestFoldFailureIsReported(t *testing.T) {
	f := ast.NewFactory()
	bad := &ast.Literal{Value: "x", Type: types.Number}
	prog := &ast.Program{Body: []ast.Node{
		&ast.Return{Value: &ast.BinaryOperator{Op: types.OpAdd, Left: bad, Right: f.Literal(bad.Pos(), 1.0)}},
	}}
	o := New(nil)
	out, changes := o.Optimize(prog)
	assert.Zero(t, changes)
	assert.Same(t, prog, out)
	errs := o.Report().Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, diag.CodeOptimizer, errs[0].Code)
}

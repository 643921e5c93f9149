package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rubiojr/sandscript/ast"
	"github.com/rubiojr/sandscript/diag"
	"github.com/rubiojr/sandscript/interop"
	"github.com/rubiojr/sandscript/parser"
	"github.com/rubiojr/sandscript/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var notes []any

func TestMain(m *testing.M) {
	interop.MustBind("note", "remembers a value", func(h interop.Host, v interop.Value) {
		notes = append(notes, v.Any())
	})
	interop.MustBind("apply", "calls a script method by name", func(h interop.Host, name string, x float64) (interop.Value, error) {
		v, err := h.Call(name, x)
		return interop.ValueOf(v), err
	})
	os.Exit(m.Run())
}

func newScript(t *testing.T, kinds ...Kind) *Script {
	t.Helper()
	notes = nil
	return New(DefaultConfig(), nil, kinds...)
}

func TestFoldedArithmetic(t *testing.T) {
	s := newScript(t)
	res, err := s.Run("number x = 2 + 3; return x * 2;")
	require.NoError(t, err)
	assert.Equal(t, 10.0, res.Value)
	assert.Empty(t, res.Diagnostics.All())

	decl := res.Program.Body[0].(*ast.VariableDeclaration)
	lit, ok := decl.Default.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, 5.0, lit.Value)
	_, ok = res.Program.Body[1].(*ast.Return).Value.(*ast.BinaryOperator)
	assert.True(t, ok)
}

func TestMethodCall(t *testing.T) {
	s := newScript(t)
	res, err := s.Run("number add(number a, number b) { return a + b; } return add(1, 2);")
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.Value)

	v, err := s.Call("add", 4.0, 5.0)
	require.NoError(t, err)
	assert.Equal(t, 9.0, v)
}

func TestEmptyNestedMethodIsRemoved(t *testing.T) {
	s := newScript(t)
	res, err := s.Run("{ void unused(number a) { } unused(1); note(1); }")
	require.NoError(t, err)
	assert.Equal(t, []any{1.0}, notes)

	block := res.Program.Body[0].(*ast.Block)
	require.Len(t, block.Body, 1)
	assert.Equal(t, "Call note", ast.Label(block.Body[0]))
}

func TestLoopThatNeverRunsCollapses(t *testing.T) {
	s := newScript(t)
	res, err := s.Run("for (number i = 0; i < 0; i += 1) { note(i); }")
	require.NoError(t, err)
	assert.Empty(t, notes)
	assert.Empty(t, res.Program.Body)
}

func TestUndefinedAssignmentStopsBeforeInterpreter(t *testing.T) {
	s := newScript(t)
	res, err := s.Run("note(1); y = 5;")
	assert.Nil(t, res)

	var rerr *RunError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, KindAnalyzer, rerr.Stage)
	errs := rerr.Diagnostics.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, diag.CodeUndefined, errs[0].Code)
	assert.Contains(t, err.Error(), "undefined variable y")

	_, ran := s.StageResult(KindInterpreter)
	assert.False(t, ran)
	assert.Empty(t, notes)
}

func TestParseErrorFailsRun(t *testing.T) {
	s := newScript(t)
	_, err := s.Run("number x = ;")
	var rerr *RunError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, KindParser, rerr.Stage)
}

func TestStagePrerequisites(t *testing.T) {
	tests := []struct {
		name  string
		kinds []Kind
		want  []Kind
	}{
		{"default", nil, []Kind{KindParser, KindAnalyzer, KindOptimizer, KindInterpreter}},
		{"interpreter pulls analyzer and parser", []Kind{KindInterpreter}, []Kind{KindParser, KindAnalyzer, KindInterpreter}},
		{"optimizer sorts before interpreter", []Kind{KindInterpreter, KindOptimizer}, []Kind{KindParser, KindAnalyzer, KindOptimizer, KindInterpreter}},
		{"check only", []Kind{KindAnalyzer}, []Kind{KindParser, KindAnalyzer}},
		{"duplicates ignored", []Kind{KindParser, KindParser, KindAnalyzer}, []Kind{KindParser, KindAnalyzer}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newScript(t, tt.kinds...)
			assert.Equal(t, tt.want, s.Stages())
		})
	}
}

func TestOptimizeDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Optimize = false
	s := New(cfg, nil)
	assert.False(t, s.HasStage(KindOptimizer))

	res, err := s.Run("return 1 + 2;")
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.Value)
	_, ok := res.Program.Body[0].(*ast.Return).Value.(*ast.BinaryOperator)
	assert.True(t, ok)
}

func TestStageResults(t *testing.T) {
	s := newScript(t)
	_, err := s.Run("return 2 * 4;")
	require.NoError(t, err)

	for _, k := range []Kind{KindParser, KindAnalyzer, KindOptimizer} {
		res, ok := s.StageResult(k)
		require.True(t, ok, k.String())
		assert.Equal(t, StatusSuccess, res.Status)
		assert.IsType(t, &ast.Program{}, res.Data)
	}
	res, ok := s.StageResult(KindInterpreter)
	require.True(t, ok)
	assert.Equal(t, 8.0, res.Data)

	var stages []string
	for _, r := range s.Diagnostics().Stages {
		stages = append(stages, r.Stage)
	}
	assert.Equal(t, []string{"parser", "analyzer", "optimizer", "optimizer", "interpreter"}, stages)
}

func TestPassLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxOptimizerPasses = 1
	s := New(cfg, nil)
	res, err := s.Run("return 1 + 2;")
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.Value)

	var warned []diag.Entry
	for _, e := range res.Diagnostics.All() {
		if e.Code == diag.CodePassLimit {
			warned = append(warned, e)
		}
	}
	require.Len(t, warned, 1)
	assert.Equal(t, diag.Warning, warned[0].Level)
	assert.False(t, res.Diagnostics.HasErrors())
}

func TestRunProgram(t *testing.T) {
	r := diag.NewReport("parser")
	prog := parser.Parse("host.ss", "number n = 3; return n * n;", false, r)
	require.False(t, r.HasErrors())

	s := newScript(t)
	res, err := s.RunProgram(prog)
	require.NoError(t, err)
	assert.Equal(t, 9.0, res.Value)
	_, parsed := s.StageResult(KindParser)
	assert.False(t, parsed)
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answer.ss")
	require.NoError(t, os.WriteFile(path, []byte("return 6 * 7;"), 0o644))

	s := newScript(t)
	res, err := s.RunFile(path)
	require.NoError(t, err)
	assert.Equal(t, 42.0, res.Value)

	_, err = s.RunFile(filepath.Join(t.TempDir(), "missing.ss"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStatePersistsAcrossRuns(t *testing.T) {
	s := newScript(t)
	_, err := s.Run("number total = 1; void bump(number by) { total += by; }")
	require.NoError(t, err)
	res, err := s.Run("bump(2); bump(3); return total;")
	require.NoError(t, err)
	assert.Equal(t, 6.0, res.Value)
	assert.Equal(t, 6.0, s.Globals()["total"].Any())
}

func TestFailedAnalysisDeclaresNothing(t *testing.T) {
	s := newScript(t)
	_, err := s.Run("number x = 1; y = 2;")
	require.Error(t, err)

	_, err = s.Run("return x + 1;")
	var rerr *RunError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, KindAnalyzer, rerr.Stage)
	errs := rerr.Diagnostics.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, diag.CodeUndefined, errs[0].Code)

	res, err := s.Run("number x = 5; return x;")
	require.NoError(t, err, "x can be declared again")
	assert.Equal(t, 5.0, res.Value)
}

func TestRuntimeFaultRollsBackGlobals(t *testing.T) {
	s := newScript(t)
	_, err := s.Run("number total = 1;")
	require.NoError(t, err)

	_, err = s.Run("number later = 2; total = 10; void helper() { } return apply(\"missing\", 1);")
	var rerr *RunError
	require.True(t, errors.As(err, &rerr))
	require.Equal(t, KindInterpreter, rerr.Stage)

	_, err = s.Run("return later;")
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, KindAnalyzer, rerr.Stage, "declaration from the faulted run is gone")

	_, err = s.Run("helper();")
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, KindAnalyzer, rerr.Stage)

	res, err := s.Run("return total;")
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Value)
	assert.NotContains(t, s.Globals(), "later")
}

func TestAddGlobal(t *testing.T) {
	s := newScript(t)
	require.NoError(t, s.AddGlobal("limit", 3.0))
	require.NoError(t, s.AddGlobal("greeting", "hi"))

	twice, err := interop.Bind("twice", func(h interop.Host, x float64) float64 { return x * 2 })
	require.NoError(t, err)
	require.NoError(t, s.AddGlobal("twice", twice))

	res, err := s.Run(`string g = greeting + "!"; return twice(limit);`)
	require.NoError(t, err)
	assert.Equal(t, 6.0, res.Value)
	assert.Equal(t, "hi!", s.Globals()["g"].Any())
	assert.Equal(t, types.Number, s.Globals()["limit"].Type())

	assert.ErrorIs(t, s.AddGlobal("limit", 1.0), ErrGlobalRedefined)
	assert.ErrorIs(t, s.AddGlobal("g", 1.0), ErrGlobalRedefined)
	assert.ErrorIs(t, s.AddGlobal("bad", []int{1}), ErrTypeUnsupported)
	assert.ErrorIs(t, s.AddGlobal("none", nil), ErrTypeUnsupported)
}

func TestNativeCallsBackIntoScript(t *testing.T) {
	s := newScript(t)
	res, err := s.Run(`number square(number n) { return n * n; } return apply("square", 5);`)
	require.NoError(t, err)
	assert.Equal(t, 25.0, res.Value)
}

func TestCallValue(t *testing.T) {
	s := newScript(t)
	_, err := s.Run("number inc(number n) { return n + 1; }")
	require.NoError(t, err)

	note := interop.MethodsNamed("note")
	require.Len(t, note, 1)
	_, err = s.CallValue(note[0], "x")
	require.NoError(t, err)
	assert.Equal(t, []any{"x"}, notes)

	_, err = s.CallValue(3.0)
	assert.ErrorIs(t, err, ErrNotCallable)

	_, err = s.Call("inc", "wrong")
	assert.ErrorContains(t, err, "undefined method inc(String)")
}

func TestCallWithoutInterpreter(t *testing.T) {
	s := newScript(t, KindAnalyzer)
	res, err := s.Run("number x = 1;")
	require.NoError(t, err)
	assert.Nil(t, res.Value)
	require.NotNil(t, res.Program)

	_, err = s.Call("x")
	assert.ErrorIs(t, err, ErrStageMissing)
}

func TestRunWithoutParser(t *testing.T) {
	s := &Script{cfg: DefaultConfig().withDefaults(), results: map[Kind]StageResult{}}
	_, err := s.Run("return 1;")
	assert.ErrorIs(t, err, ErrStageMissing)
	_, err = s.RunProgram(&ast.Program{})
	assert.ErrorIs(t, err, ErrStageMissing)
}

func TestRuntimeFault(t *testing.T) {
	s := newScript(t)
	_, err := s.Run("number zero() { return 0; }\nreturn apply(\"missing\", 1);")
	var rerr *RunError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, KindInterpreter, rerr.Stage)
	errs := rerr.Diagnostics.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, diag.CodeRuntime, errs[0].Code)
	assert.Equal(t, 2, errs[0].Pos.Line)
}

func TestLoadConfig(t *testing.T) {
	write := func(t *testing.T, body string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "sandscript.yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}

	t.Run("defaults for missing keys", func(t *testing.T) {
		cfg, err := LoadConfig(write(t, "keep_trivia: true\n"))
		require.NoError(t, err)
		assert.True(t, cfg.KeepTrivia)
		assert.True(t, cfg.Optimize)
		assert.Equal(t, DefaultMaxOptimizerPasses, cfg.MaxOptimizerPasses)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := LoadConfig(write(t, "optimize: false\nmax_optimizer_passes: 5\nrequires: \">= 0.1, < 1\"\n"))
		require.NoError(t, err)
		assert.False(t, cfg.Optimize)
		assert.Equal(t, 5, cfg.MaxOptimizerPasses)
	})

	t.Run("incompatible version", func(t *testing.T) {
		_, err := LoadConfig(write(t, "requires: \">= 9\"\n"))
		assert.ErrorIs(t, err, ErrIncompatible)
	})

	t.Run("bad constraint", func(t *testing.T) {
		_, err := LoadConfig(write(t, "requires: \"not a version\"\n"))
		assert.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := LoadConfig(write(t, "optimize: [\n"))
		assert.ErrorContains(t, err, "parsing")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

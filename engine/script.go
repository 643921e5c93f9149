// Package engine runs SandScript source through the stage pipeline:
// parser, analyzer, an optional optimizer looped to a fixpoint, and the
// interpreter. A Script keeps its stages, and the scopes they own, across
// runs so later programs see the globals and methods of earlier ones.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/rubiojr/sandscript/analyzer"
	"github.com/rubiojr/sandscript/ast"
	"github.com/rubiojr/sandscript/diag"
	"github.com/rubiojr/sandscript/interop"
	"github.com/rubiojr/sandscript/interpreter"
	"github.com/rubiojr/sandscript/optimizer"
	"github.com/rubiojr/sandscript/types"
	"modernc.org/token"
)

var (
	// ErrGlobalRedefined is returned by AddGlobal for a name that is
	// already declared.
	ErrGlobalRedefined = errors.New("global already defined")
	// ErrStageMissing is returned when a run or call needs a stage the
	// script does not have.
	ErrStageMissing = errors.New("stage missing")
	// ErrTypeUnsupported is returned for host values no type provider backs.
	ErrTypeUnsupported = errors.New("unsupported value type")
	// ErrNotCallable is returned by CallValue for values that are not
	// methods.
	ErrNotCallable = errors.New("value is not a method")
)

var noPos token.Position

// Result is the outcome of a successful run.
type Result struct {
	// Value is the value of a top-level return, or nil.
	Value       any
	Diagnostics *diag.Diagnostics
	// Program is the tree the interpreter executed, or the last tree
	// produced when the pipeline has no interpreter.
	Program *ast.Program
}

// RunError reports a run stopped by a failing stage.
type RunError struct {
	Stage       Kind
	Diagnostics *diag.Diagnostics
	// Program is the partial tree of the failing stage, if any.
	Program *ast.Program
}

func (e *RunError) Error() string {
	errs := e.Diagnostics.Errors()
	if len(errs) == 0 {
		return fmt.Sprintf("%s failed", e.Stage)
	}
	msg := fmt.Sprintf("%s: %s", e.Stage, errs[0])
	if len(errs) > 1 {
		msg += fmt.Sprintf(" (and %d more)", len(errs)-1)
	}
	return msg
}

// Script is a pipeline of stages plus the persistent state they share.
type Script struct {
	cfg  Config
	log  *slog.Logger
	name string

	analyzer  *analyzer.Analyzer
	optimizer *optimizer.Optimizer
	interp    *interpreter.Interpreter

	stages  []stage
	results map[Kind]StageResult
	last    *diag.Diagnostics
}

// New creates a script with the given stages. Without kinds the default
// pipeline is used: parser, analyzer, optimizer when cfg.Optimize is set,
// and interpreter. A nil logger discards output.
func New(cfg Config, log *slog.Logger, kinds ...Kind) *Script {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cfg = cfg.withDefaults()
	s := &Script{
		cfg:       cfg,
		log:       log,
		name:      "script",
		analyzer:  analyzer.New(log),
		optimizer: optimizer.New(log),
		results:   make(map[Kind]StageResult),
		last:      &diag.Diagnostics{},
	}
	s.interp = interpreter.New(s, log)
	if len(kinds) == 0 {
		kinds = []Kind{KindParser, KindAnalyzer, KindInterpreter}
		if cfg.Optimize {
			kinds = append(kinds, KindOptimizer)
		}
	}
	for _, k := range kinds {
		s.AddStage(k)
	}
	return s
}

// Config returns the configuration the script was created with.
func (s *Script) Config() Config { return s.cfg }

// SetName sets the file name recorded in source positions.
func (s *Script) SetName(name string) { s.name = name }

// AddStage adds a stage of kind k, and its prerequisites, unless present.
func (s *Script) AddStage(k Kind) {
	if s.HasStage(k) {
		return
	}
	if pre, ok := k.prerequisite(); ok {
		s.AddStage(pre)
	}
	st := s.newStage(k)
	if before, ok := k.sortBefore(); ok {
		if i := s.index(before); i >= 0 {
			s.stages = slices.Insert(s.stages, i, st)
			return
		}
	}
	s.stages = append(s.stages, st)
}

// HasStage reports whether the pipeline contains a stage of kind k.
func (s *Script) HasStage(k Kind) bool { return s.index(k) >= 0 }

// Stages lists the pipeline in run order.
func (s *Script) Stages() []Kind {
	out := make([]Kind, len(s.stages))
	for i, st := range s.stages {
		out[i] = st.kind()
	}
	return out
}

func (s *Script) index(k Kind) int {
	return slices.IndexFunc(s.stages, func(st stage) bool { return st.kind() == k })
}

func (s *Script) newStage(k Kind) stage {
	switch k {
	case KindParser:
		return &parserStage{s: s, r: diag.NewReport("parser")}
	case KindAnalyzer:
		return &analyzerStage{a: s.analyzer}
	case KindOptimizer:
		return &optimizerStage{o: s.optimizer}
	case KindInterpreter:
		return &interpreterStage{in: s.interp}
	}
	panic(fmt.Sprintf("engine: unknown stage %d", int(k)))
}

// Run parses src and runs it through every stage.
func (s *Script) Run(src string) (*Result, error) {
	if !s.HasStage(KindParser) {
		return nil, fmt.Errorf("running source: %w: %s", ErrStageMissing, KindParser)
	}
	return s.run(src, 0)
}

// RunFile runs the script stored at path.
func (s *Script) RunFile(path string) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	s.name = path
	return s.Run(string(src))
}

// RunProgram runs an already parsed program, skipping the parser stage.
func (s *Script) RunProgram(prog *ast.Program) (*Result, error) {
	start := slices.IndexFunc(s.stages, func(st stage) bool { return st.kind() != KindParser })
	if start < 0 {
		return nil, fmt.Errorf("running program: %w: %s", ErrStageMissing, KindAnalyzer)
	}
	return s.run(prog, start)
}

// run feeds in through the stages from index start on. A stage asking to
// repeat runs again on its own output until it settles or the pass limit
// is reached. A failed run leaves the globals as they were before it.
func (s *Script) run(in any, start int) (*Result, error) {
	diags := &diag.Diagnostics{}
	s.last = diags
	clear(s.results)
	checked, ran := s.analyzer.Checkpoint(), s.interp.Checkpoint()

	data := in
	var prog *ast.Program
	for _, st := range s.stages[start:] {
		passes := 0
		for {
			began := time.Now()
			res := st.run(data)
			r := st.report()
			r.Elapsed = time.Since(began)
			diags.AddStage(r)
			passes++
			s.log.Debug("stage", "kind", st.kind(), "status", res.Status, "pass", passes,
				"elapsed", r.Elapsed, "diagnostics", len(r.Entries))

			s.results[st.kind()] = res
			if p, ok := res.Data.(*ast.Program); ok {
				prog = p
			}
			if res.Status == StatusFailed {
				s.analyzer.Rollback(checked)
				s.interp.Rollback(ran)
				return nil, &RunError{Stage: st.kind(), Diagnostics: diags, Program: prog}
			}
			if st.kind() != KindInterpreter {
				data = res.Data
			}
			if res.Status != StatusRepeat {
				break
			}
			if passes >= s.cfg.MaxOptimizerPasses {
				limit := diag.NewReport("engine")
				limit.Warnf(diag.CodePassLimit, noPos, "%s did not settle after %d passes", st.kind(), passes)
				diags.AddStage(limit)
				s.log.Debug("pass limit", "kind", st.kind(), "passes", passes)
				break
			}
		}
	}

	out := &Result{Diagnostics: diags, Program: prog}
	if res, ok := s.results[KindInterpreter]; ok {
		out.Value = res.Data
	}
	return out, nil
}

// StageResult returns what the stage of kind k produced in the last run.
func (s *Script) StageResult(k Kind) (StageResult, bool) {
	res, ok := s.results[k]
	return res, ok
}

// Diagnostics returns the diagnostics of the last run.
func (s *Script) Diagnostics() *diag.Diagnostics { return s.last }

// AddGlobal declares a global visible to every later run. Method values
// also become callable by their signature.
func (s *Script) AddGlobal(name string, v any) error {
	if _, ok := s.analyzer.Lookup(name); ok || s.interp.Has(name) {
		return fmt.Errorf("%s: %w", name, ErrGlobalRedefined)
	}
	t, ok := types.Of(v)
	if !ok || t == types.Nothing {
		return fmt.Errorf("%s: %w: %T", name, ErrTypeUnsupported, v)
	}
	s.analyzer.Declare(name, t)
	s.interp.Define(name, v)
	if m, ok := v.(*interop.Method); ok {
		s.analyzer.DeclareMethod(m)
	}
	return nil
}

// Globals snapshots the global variables of the interpreter.
func (s *Script) Globals() map[string]interop.Value { return s.interp.Globals() }

// Call invokes a script or native method by name with host values. Script
// is the Host native methods receive.
func (s *Script) Call(method string, args ...any) (any, error) {
	if !s.HasStage(KindInterpreter) {
		return nil, fmt.Errorf("calling %s: %w: %s", method, ErrStageMissing, KindInterpreter)
	}
	return s.interp.Call(method, args...)
}

// CallValue invokes a method value, such as one returned by a script.
func (s *Script) CallValue(v any, args ...any) (any, error) {
	m, ok := v.(*interop.Method)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotCallable, interop.Format(v))
	}
	if !m.IsNative() && !s.HasStage(KindInterpreter) {
		return nil, fmt.Errorf("calling %s: %w: %s", m.Name, ErrStageMissing, KindInterpreter)
	}
	return s.interp.Invoke(m, args)
}

var _ interop.Host = (*Script)(nil)

package engine

import (
	"fmt"

	"github.com/rubiojr/sandscript/analyzer"
	"github.com/rubiojr/sandscript/ast"
	"github.com/rubiojr/sandscript/diag"
	"github.com/rubiojr/sandscript/interpreter"
	"github.com/rubiojr/sandscript/optimizer"
	"github.com/rubiojr/sandscript/parser"
)

// Kind identifies a pipeline stage.
type Kind int

const (
	KindParser Kind = iota
	KindAnalyzer
	KindOptimizer
	KindInterpreter
)

func (k Kind) String() string {
	switch k {
	case KindParser:
		return "parser"
	case KindAnalyzer:
		return "analyzer"
	case KindOptimizer:
		return "optimizer"
	case KindInterpreter:
		return "interpreter"
	}
	return fmt.Sprintf("stage(%d)", int(k))
}

// prerequisite returns the stage that must run before k.
func (k Kind) prerequisite() (Kind, bool) {
	switch k {
	case KindAnalyzer:
		return KindParser, true
	case KindOptimizer, KindInterpreter:
		return KindAnalyzer, true
	}
	return 0, false
}

// sortBefore returns the stage k is inserted in front of when both are
// present.
func (k Kind) sortBefore() (Kind, bool) {
	if k == KindOptimizer {
		return KindInterpreter, true
	}
	return 0, false
}

// Status is the outcome of one stage run.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailed
	// StatusRepeat asks the pipeline to run the stage again on its own
	// output.
	StatusRepeat
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	case StatusRepeat:
		return "repeat"
	}
	return "unknown"
}

// StageResult is what a stage hands to the next one. Data is the program
// tree for every stage but the interpreter, whose Data is the value of the
// script.
type StageResult struct {
	Status Status
	Data   any
}

// stage adapts one component to the pipeline.
type stage interface {
	kind() Kind
	run(in any) StageResult
	report() *diag.Report
}

func program(in any) (*ast.Program, error) {
	prog, ok := in.(*ast.Program)
	if !ok {
		return nil, fmt.Errorf("stage input is %T, not a program", in)
	}
	return prog, nil
}

type parserStage struct {
	s *Script
	r *diag.Report
}

func (p *parserStage) kind() Kind           { return KindParser }
func (p *parserStage) report() *diag.Report { return p.r }

func (p *parserStage) run(in any) StageResult {
	p.r.Reset()
	src, ok := in.(string)
	if !ok {
		p.r.Errorf(diag.CodeNone, noPos, "parser input is %T, not source text", in)
		return StageResult{Status: StatusFailed}
	}
	prog := parser.Parse(p.s.name, src, p.s.cfg.KeepTrivia, p.r)
	if p.r.HasErrors() {
		return StageResult{Status: StatusFailed, Data: prog}
	}
	return StageResult{Status: StatusSuccess, Data: prog}
}

type analyzerStage struct{ a *analyzer.Analyzer }

func (a *analyzerStage) kind() Kind           { return KindAnalyzer }
func (a *analyzerStage) report() *diag.Report { return a.a.Report() }

func (a *analyzerStage) run(in any) StageResult {
	prog, err := program(in)
	if err != nil {
		a.a.Report().Reset()
		a.a.Report().Errorf(diag.CodeNone, noPos, "%v", err)
		return StageResult{Status: StatusFailed}
	}
	out, ok := a.a.Analyze(prog)
	if !ok {
		return StageResult{Status: StatusFailed, Data: out}
	}
	return StageResult{Status: StatusSuccess, Data: out}
}

type optimizerStage struct{ o *optimizer.Optimizer }

func (o *optimizerStage) kind() Kind           { return KindOptimizer }
func (o *optimizerStage) report() *diag.Report { return o.o.Report() }

func (o *optimizerStage) run(in any) StageResult {
	prog, err := program(in)
	if err != nil {
		o.o.Report().Reset()
		o.o.Report().Errorf(diag.CodeOptimizer, noPos, "%v", err)
		return StageResult{Status: StatusFailed}
	}
	out, changes := o.o.Optimize(prog)
	switch {
	case o.o.Report().HasErrors():
		return StageResult{Status: StatusFailed, Data: out}
	case changes > 0:
		return StageResult{Status: StatusRepeat, Data: out}
	}
	return StageResult{Status: StatusSuccess, Data: out}
}

type interpreterStage struct{ in *interpreter.Interpreter }

func (i *interpreterStage) kind() Kind           { return KindInterpreter }
func (i *interpreterStage) report() *diag.Report { return i.in.Report() }

func (i *interpreterStage) run(in any) StageResult {
	prog, err := program(in)
	if err != nil {
		i.in.Report().Reset()
		i.in.Report().Errorf(diag.CodeRuntime, noPos, "%v", err)
		return StageResult{Status: StatusFailed}
	}
	v, ok := i.in.Run(prog)
	if !ok {
		return StageResult{Status: StatusFailed}
	}
	return StageResult{Status: StatusSuccess, Data: v}
}

// Package diag collects the diagnostics produced by each pipeline stage.
package diag

import (
	"fmt"
	"io"
	"strings"
	"time"

	"modernc.org/token"
)

// Level is the severity of a diagnostic.
type Level int

const (
	Info Level = iota
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "?"
	}
}

// Code classifies a diagnostic so callers can match on it without parsing
// messages.
type Code int

const (
	CodeNone Code = iota
	CodeNoCode
	CodeUnknownToken
	CodeUnclosedString
	CodeUnclosedCharacter
	CodeUnclosedComment
	CodeUnexpectedToken
	CodeUnknownType
	CodeUndefined
	CodeRedefined
	CodeTypeMismatch
	CodeUnsupportedOperator
	CodeArgumentCount
	CodeUnreadable
	CodeUnwritable
	CodeMissingType
	CodeOptimizer
	CodeRuntime
	CodePassLimit
	CodeTiming
	CodeMissingReturn
)

// Entry is a single diagnostic.
type Entry struct {
	Level   Level
	Code    Code
	Message string
	Pos     token.Position
}

func (e Entry) String() string {
	if !e.Pos.IsValid() {
		return e.Message
	}
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Pos.Line, e.Pos.Column)
}

// Report holds the diagnostics of one stage run.
type Report struct {
	Stage   string
	Entries []Entry
	Elapsed time.Duration
}

// NewReport creates an empty report for the named stage.
func NewReport(stage string) *Report {
	return &Report{Stage: stage}
}

// Add appends a diagnostic.
func (r *Report) Add(level Level, code Code, pos token.Position, format string, args ...any) {
	r.Entries = append(r.Entries, Entry{
		Level:   level,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	})
}

// Errorf appends an error diagnostic.
func (r *Report) Errorf(code Code, pos token.Position, format string, args ...any) {
	r.Add(Error, code, pos, format, args...)
}

// Warnf appends a warning diagnostic.
func (r *Report) Warnf(code Code, pos token.Position, format string, args ...any) {
	r.Add(Warning, code, pos, format, args...)
}

// Infof appends an informational diagnostic.
func (r *Report) Infof(code Code, pos token.Position, format string, args ...any) {
	r.Add(Info, code, pos, format, args...)
}

// Errors returns only the error-level entries.
func (r *Report) Errors() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Level == Error {
			out = append(out, e)
		}
	}
	return out
}

// HasErrors reports whether any error-level entry was recorded.
func (r *Report) HasErrors() bool {
	for _, e := range r.Entries {
		if e.Level == Error {
			return true
		}
	}
	return false
}

// Reset clears the entries and timing so the report can be reused.
func (r *Report) Reset() {
	r.Entries = nil
	r.Elapsed = 0
}

// Diagnostics aggregates the reports of every stage run in order.
type Diagnostics struct {
	Stages []*Report
}

// AddStage appends a copy of r so the stage may reuse its report.
func (d *Diagnostics) AddStage(r *Report) {
	cp := &Report{Stage: r.Stage, Elapsed: r.Elapsed}
	cp.Entries = append(cp.Entries, r.Entries...)
	d.Stages = append(d.Stages, cp)
}

// All returns every entry across stages.
func (d *Diagnostics) All() []Entry {
	var out []Entry
	for _, r := range d.Stages {
		out = append(out, r.Entries...)
	}
	return out
}

// Errors returns every error-level entry across stages.
func (d *Diagnostics) Errors() []Entry {
	var out []Entry
	for _, r := range d.Stages {
		out = append(out, r.Errors()...)
	}
	return out
}

// HasErrors reports whether any stage recorded an error.
func (d *Diagnostics) HasErrors() bool {
	for _, r := range d.Stages {
		if r.HasErrors() {
			return true
		}
	}
	return false
}

// Elapsed sums the time spent in every stage run.
func (d *Diagnostics) Elapsed() time.Duration {
	var total time.Duration
	for _, r := range d.Stages {
		total += r.Elapsed
	}
	return total
}

// Write prints the diagnostics grouped by stage. When color is set, levels
// are highlighted with ANSI escapes.
func (d *Diagnostics) Write(w io.Writer, color bool) {
	for _, r := range d.Stages {
		for _, e := range r.Entries {
			level := e.Level.String()
			if color {
				level = colorize(e.Level, level)
			}
			fmt.Fprintf(w, "%s: %s: %s\n", r.Stage, level, e)
		}
	}
}

// Summary renders one line per stage with its timing and entry count.
func (d *Diagnostics) Summary() string {
	var sb strings.Builder
	for _, r := range d.Stages {
		fmt.Fprintf(&sb, "%-12s %8s  %d diagnostic(s)\n", r.Stage, r.Elapsed.Round(time.Microsecond), len(r.Entries))
	}
	return sb.String()
}

func colorize(l Level, s string) string {
	switch l {
	case Error:
		return "\033[31m" + s + "\033[0m"
	case Warning:
		return "\033[33m" + s + "\033[0m"
	default:
		return "\033[36m" + s + "\033[0m"
	}
}

package diag

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"modernc.org/token"
)

func at(line, col int) token.Position {
	return token.Position{Filename: "t.ss", Line: line, Column: col}
}

func TestReportLevels(t *testing.T) {
	r := NewReport("analyzer")
	r.Infof(CodeNone, token.Position{}, "just so you know")
	r.Warnf(CodeUnreadable, at(1, 2), "hmm")
	assert.False(t, r.HasErrors())
	assert.Empty(t, r.Errors())

	r.Errorf(CodeUndefined, at(3, 4), "undefined variable %s", "x")
	require.True(t, r.HasErrors())
	errs := r.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, CodeUndefined, errs[0].Code)
	assert.Equal(t, "undefined variable x at 3:4", errs[0].String())
	assert.Equal(t, "just so you know", r.Entries[0].String())

	r.Elapsed = time.Second
	r.Reset()
	assert.Empty(t, r.Entries)
	assert.Zero(t, r.Elapsed)
}

func TestAddStageCopies(t *testing.T) {
	r := NewReport("optimizer")
	r.Infof(CodeOptimizer, token.Position{}, "pass one")

	var d Diagnostics
	d.AddStage(r)
	r.Reset()
	r.Errorf(CodeOptimizer, token.Position{}, "pass two")
	d.AddStage(r)

	require.Len(t, d.Stages, 2)
	assert.Equal(t, "pass one", d.Stages[0].Entries[0].Message)
	assert.Equal(t, "pass two", d.Stages[1].Entries[0].Message)
	assert.Len(t, d.All(), 2)
	assert.Len(t, d.Errors(), 1)
	assert.True(t, d.HasErrors())
}

func TestElapsed(t *testing.T) {
	var d Diagnostics
	for _, ms := range []int{1, 2, 3} {
		r := NewReport("s")
		r.Elapsed = time.Duration(ms) * time.Millisecond
		d.AddStage(r)
	}
	assert.Equal(t, 6*time.Millisecond, d.Elapsed())
}

func TestWrite(t *testing.T) {
	r := NewReport("parser")
	r.Errorf(CodeUnexpectedToken, at(1, 5), "unexpected ;")
	var d Diagnostics
	d.AddStage(r)

	var plain, colored bytes.Buffer
	d.Write(&plain, false)
	d.Write(&colored, true)
	assert.Equal(t, "parser: error: unexpected ; at 1:5\n", plain.String())
	assert.Equal(t, "parser: \033[31merror\033[0m: unexpected ; at 1:5\n", colored.String())
}

func TestSummary(t *testing.T) {
	var d Diagnostics
	r := NewReport("parser")
	r.Elapsed = 1500 * time.Microsecond
	r.Warnf(CodeNone, token.Position{}, "w")
	d.AddStage(r)
	d.AddStage(NewReport("interpreter"))

	lines := strings.Split(strings.TrimSuffix(d.Summary(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "parser "))
	assert.Contains(t, lines[0], "1.5ms")
	assert.True(t, strings.HasSuffix(lines[0], "1 diagnostic(s)"))
	assert.True(t, strings.HasSuffix(lines[1], "0 diagnostic(s)"))
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "info", Info.String())
	assert.Equal(t, "warning", Warning.String())
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "?", Level(9).String())
}

package timemod

import (
	"testing"

	"github.com/rubiojr/sandscript/modules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, name string, args ...any) any {
	t.Helper()
	m, ok := modules.LookupFunc("time", name)
	require.True(t, ok, name)
	v, err := m.CallNative(nil, args)
	require.NoError(t, err)
	return v
}

func TestFormatAndParse(t *testing.T) {
	const layout = "2006-01-02 15:04:05"
	ts := call(t, "parse", "2024-03-01 12:30:00", layout)
	assert.Equal(t, 1709296200.0, ts)
	assert.Equal(t, "2024-03-01 12:30:00", call(t, "format", ts, layout))

	m, _ := modules.LookupFunc("time", "parse")
	_, err := m.CallNative(nil, []any{"yesterday", layout})
	assert.Error(t, err)
}

func TestClock(t *testing.T) {
	now := call(t, "now").(float64)
	assert.Greater(t, now, 1.7e9)
	assert.GreaterOrEqual(t, call(t, "since", now).(float64), 0.0)
	assert.Greater(t, call(t, "millis").(float64), 1.7e12)
}

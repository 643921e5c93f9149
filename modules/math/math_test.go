package mathmod

import (
	"testing"

	"github.com/rubiojr/sandscript/modules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, name string, args ...any) (any, error) {
	t.Helper()
	m, ok := modules.LookupFunc("math", name)
	require.True(t, ok, name)
	return m.CallNative(nil, args)
}

func TestMath(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want float64
	}{
		{"abs", []any{-3.5}, 3.5},
		{"sqrt", []any{16.0}, 4},
		{"pow", []any{2.0, 10.0}, 1024},
		{"floor", []any{2.7}, 2},
		{"floor", []any{-2.2}, -3},
		{"ceil", []any{2.1}, 3},
		{"round", []any{2.5}, 3},
		{"min", []any{4.0, -1.0}, -1},
		{"max", []any{4.0, -1.0}, 4},
		{"clamp", []any{12.0, 0.0, 10.0}, 10},
		{"clamp", []any{-2.0, 0.0, 10.0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := call(t, tt.name, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSqrtOfNegative(t *testing.T) {
	_, err := call(t, "sqrt", -1.0)
	assert.ErrorContains(t, err, "negative")
}

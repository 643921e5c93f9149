package strmod

import (
	"testing"

	"github.com/rubiojr/sandscript/modules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStr(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want any
	}{
		{"len", []any{"héllo"}, 5.0},
		{"upper", []any{"abc"}, "ABC"},
		{"lower", []any{"AbC"}, "abc"},
		{"char_at", []any{"héllo", 1.0}, 'é'},
		{"concat_char", []any{"ab", 'c'}, "abc"},
		{"contains", []any{"sandscript", "script"}, true},
		{"index", []any{"héllo", "l"}, 2.0},
		{"index", []any{"abc", "z"}, -1.0},
		{"trim", []any{"  x \n"}, "x"},
		{"replace", []any{"a-b-c", "-", "+"}, "a+b+c"},
		{"starts_with", []any{"sandscript", "sand"}, true},
		{"ends_with", []any{"sandscript", "sand"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := modules.LookupFunc("str", tt.name)
			require.True(t, ok)
			got, err := m.CallNative(nil, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCharAtOutOfRange(t *testing.T) {
	m, ok := modules.LookupFunc("str", "char_at")
	require.True(t, ok)
	for _, i := range []float64{-1, 3, 0.5} {
		_, err := m.CallNative(nil, []any{"abc", i})
		assert.ErrorContains(t, err, "out of range")
	}
}

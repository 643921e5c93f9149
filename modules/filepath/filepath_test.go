package filepathmod

import (
	"testing"

	"github.com/rubiojr/sandscript/modules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilepath(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want any
	}{
		{"join", []any{"a/b", "../c"}, "a/c"},
		{"base", []any{"/x/y.ss"}, "y.ss"},
		{"dir", []any{"/x/y.ss"}, "/x"},
		{"ext", []any{"/x/y.ss"}, ".ss"},
		{"clean", []any{"a//b/./c"}, "a/b/c"},
		{"is_abs", []any{"/x"}, true},
		{"is_abs", []any{"x"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := modules.LookupFunc("filepath", tt.name)
			require.True(t, ok)
			got, err := m.CallNative(nil, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

package convmod

import (
	"testing"

	"github.com/rubiojr/sandscript/modules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, name string, arg any) (any, error) {
	t.Helper()
	m, ok := modules.LookupFunc("conv", name)
	require.True(t, ok, name)
	return m.CallNative(nil, []any{arg})
}

func TestToString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{2.0, "2"},
		{0.5, "0.5"},
		{true, "true"},
		{'x', "x"},
		{"s", "s"},
		{nil, "nothing"},
	}
	for _, tt := range tests {
		got, err := call(t, "to_string", tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestToNumber(t *testing.T) {
	tests := []struct {
		in      any
		want    float64
		wantErr bool
	}{
		{" 42 ", 42, false},
		{"1.5", 1.5, false},
		{'A', 65, false},
		{true, 1, false},
		{false, 0, false},
		{7.0, 7, false},
		{"nope", 0, true},
		{nil, 0, true},
	}
	for _, tt := range tests {
		got, err := call(t, "to_number", tt.in)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestTypeOf(t *testing.T) {
	for in, want := range map[any]string{1.0: "Number", "s": "String", 'c': "Character", false: "Boolean"} {
		got, err := call(t, "type_of", in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	got, err := call(t, "type_of", nil)
	require.NoError(t, err)
	assert.Equal(t, "Nothing", got)
}

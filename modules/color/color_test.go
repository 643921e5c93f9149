package colormod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/sandscript/modules"
)

func paint(t *testing.T, name, s string) string {
	t.Helper()
	m, ok := modules.LookupFunc("color", name)
	require.True(t, ok, name)
	v, err := m.CallNative(nil, []any{s})
	require.NoError(t, err)
	return v.(string)
}

func TestModuleRegistration(t *testing.T) {
	m, ok := modules.Get("color")
	require.True(t, ok)
	assert.Len(t, m.Funcs, 19)
	assert.Len(t, m.Methods(), 19)

	red, _ := modules.LookupFunc("color", "red")
	assert.Equal(t, "color_red", red.Name)
	assert.Equal(t, "Wrap text in red foreground color.", red.Doc)
	bg, _ := modules.LookupFunc("color", "bg_blue")
	assert.Equal(t, "Wrap text in blue background color.", bg.Doc)
	bold, _ := modules.LookupFunc("color", "bold")
	assert.Equal(t, "Wrap text in bold style.", bold.Doc)
}

func TestCodes(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	tests := map[string]string{
		"red":       "\033[31mhello\033[0m",
		"gray":      "\033[90mhello\033[0m",
		"bg_green":  "\033[42mhello\033[0m",
		"bg_gray":   "\033[100mhello\033[0m",
		"bold":      "\033[1mhello\033[0m",
		"underline": "\033[4mhello\033[0m",
	}
	for name, want := range tests {
		assert.Equal(t, want, paint(t, name, "hello"), name)
	}
}

func TestNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, "hello", paint(t, "red", "hello"))
	assert.Equal(t, "hello", paint(t, "bg_blue", "hello"))
	assert.Equal(t, "hello", paint(t, "bold", "hello"))
}

func TestComposable(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	assert.Equal(t, "\033[1m\033[31merr\033[0m\033[0m", paint(t, "bold", paint(t, "red", "err")))
	assert.Equal(t, "\033[31m\033[0m", paint(t, "red", ""))
}

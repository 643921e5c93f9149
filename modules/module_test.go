package modules

import (
	"testing"

	"github.com/rubiojr/sandscript/interop"
	"github.com/rubiojr/sandscript/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withCleanRegistry(t *testing.T) {
	t.Helper()
	old := registry
	registry = make(map[string]*Module)
	t.Cleanup(func() { registry = old })
}

func TestRegisterAndGet(t *testing.T) {
	withCleanRegistry(t)

	Register(&Module{
		Name: "modtest",
		Funcs: []FuncDef{
			{Name: "shout", Fn: func(h interop.Host, s string) string { return s + "!" }, ArgNames: []string{"text"}, Doc: "Adds emphasis."},
		},
	})

	got, ok := Get("modtest")
	require.True(t, ok)
	require.Len(t, got.Methods(), 1)

	m := got.Methods()[0]
	assert.Equal(t, "modtest_shout", m.Name)
	assert.Equal(t, "Adds emphasis.", m.Doc)
	assert.Equal(t, "text", m.Params[0].Name)
	assert.Equal(t, types.String, m.Return)
	assert.Len(t, interop.MethodsNamed("modtest_shout"), 1)

	_, ok = Get("nonexistent")
	assert.False(t, ok)
}

func TestGlobalNames(t *testing.T) {
	withCleanRegistry(t)
	Register(&Module{
		Name:   "modglobal",
		Global: true,
		Funcs:  []FuncDef{{Name: "modglobal_twice", Fn: func(h interop.Host, n float64) float64 { return n * 2 }}},
	})

	m, ok := LookupFunc("modglobal", "modglobal_twice")
	require.True(t, ok)
	assert.Equal(t, "modglobal_twice", m.Name)

	v, err := m.CallNative(nil, []any{2.0})
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)
}

func TestRegisterErrors(t *testing.T) {
	withCleanRegistry(t)
	Register(&Module{Name: "moddup"})
	assert.ErrorIs(t, register(&Module{Name: "moddup"}), interop.ErrDuplicate)

	err := register(&Module{Name: "modbad", Funcs: []FuncDef{{Name: "f", Fn: func(s string) {}}}})
	assert.ErrorIs(t, err, interop.ErrHostParam)
	assert.False(t, IsModule("modbad"))

	assert.Panics(t, func() { Register(&Module{Name: "moddup"}) })
}

func TestIsModule(t *testing.T) {
	withCleanRegistry(t)
	Register(&Module{Name: "test"})

	assert.True(t, IsModule("test"))
	assert.False(t, IsModule("nope"))
}

func TestNames(t *testing.T) {
	withCleanRegistry(t)
	Register(&Module{Name: "beta"})
	Register(&Module{Name: "alpha"})

	assert.Equal(t, []string{"alpha", "beta"}, Names())
}

func TestLookupFunc(t *testing.T) {
	withCleanRegistry(t)
	Register(&Module{
		Name: "mymod",
		Funcs: []FuncDef{
			{Name: "hello", Fn: func(h interop.Host, s string) string { return "hello " + s }},
			{Name: "count", Fn: func(h interop.Host, s string) float64 { return float64(len(s)) }},
		},
	})

	m, ok := LookupFunc("mymod", "count")
	require.True(t, ok)
	assert.Equal(t, "mymod_count", m.Name)

	_, ok = LookupFunc("mymod", "missing")
	assert.False(t, ok)

	_, ok = LookupFunc("unknown", "hello")
	assert.False(t, ok)
}

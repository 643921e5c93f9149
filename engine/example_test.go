package engine_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/rubiojr/sandscript/engine"
	_ "github.com/rubiojr/sandscript/modules/conv"
	iomod "github.com/rubiojr/sandscript/modules/io"
	_ "github.com/rubiojr/sandscript/modules/str"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExampleScripts(t *testing.T) {
	tests := []struct {
		file   string
		output string
		value  any
	}{
		{"fib.ss", "0 1 1 2 3 5 8 13 21 34 \n", 6765.0},
		{"strings.ss", "HELLO, SANDSCRIPT\n17 characters\n", "desserts"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			var out bytes.Buffer
			iomod.Stdout = &out
			for _, optimize := range []bool{true, false} {
				out.Reset()
				cfg := engine.DefaultConfig()
				cfg.Optimize = optimize
				res, err := engine.New(cfg, nil).RunFile(filepath.Join("..", "examples", "scripts", tt.file))
				require.NoError(t, err)
				assert.Equal(t, tt.value, res.Value)
				assert.Equal(t, tt.output, out.String())
			}
		})
	}
}

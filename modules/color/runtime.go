package colormod

import (
	"os"

	"github.com/rubiojr/sandscript/interop"
)

// --- color module ---

func colorize(code, s string) string {
	if os.Getenv("NO_COLOR") != "" {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

func wrap(code string) func(interop.Host, string) string {
	return func(h interop.Host, s string) string { return colorize(code, s) }
}

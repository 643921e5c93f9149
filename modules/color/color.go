package colormod

import (
	"strings"

	"github.com/rubiojr/sandscript/modules"
)

var styles = []struct{ name, code string }{
	{"red", "31"}, {"green", "32"}, {"yellow", "33"}, {"blue", "34"},
	{"magenta", "35"}, {"cyan", "36"}, {"white", "37"}, {"gray", "90"},
	{"bg_red", "41"}, {"bg_green", "42"}, {"bg_yellow", "43"}, {"bg_blue", "44"},
	{"bg_magenta", "45"}, {"bg_cyan", "46"}, {"bg_white", "47"}, {"bg_gray", "100"},
	{"bold", "1"}, {"dim", "2"}, {"underline", "4"},
}

func init() {
	funcs := make([]modules.FuncDef, 0, len(styles))
	for _, s := range styles {
		kind := "foreground color"
		switch {
		case strings.HasPrefix(s.name, "bg_"):
			kind = "background color"
		case len(s.code) == 1:
			kind = "style"
		}
		funcs = append(funcs, modules.FuncDef{
			Name:     s.name,
			Fn:       wrap(s.code),
			ArgNames: []string{"text"},
			Doc:      "Wrap text in " + strings.TrimPrefix(s.name, "bg_") + " " + kind + ".",
		})
	}
	modules.Register(&modules.Module{
		Name:  "color",
		Doc:   "ANSI color and style formatting for terminal output.",
		Funcs: funcs,
	})
}

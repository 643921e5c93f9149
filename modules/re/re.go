package remod

import "github.com/rubiojr/sandscript/modules"

var _re = &Re{}

func init() {
	modules.Register(&modules.Module{
		Name: "re",
		Doc:  "Regular expressions (Go RE2 syntax).",
		Funcs: []modules.FuncDef{
			{Name: "test", Fn: _re.Test, ArgNames: []string{"pattern", "s"}, Doc: "Return true if the pattern matches s."},
			{Name: "find", Fn: _re.Find, ArgNames: []string{"pattern", "s"}, Doc: "Return the first match, or an empty string."},
			{Name: "count", Fn: _re.Count, ArgNames: []string{"pattern", "s"}, Doc: "Return the number of non-overlapping matches."},
			{Name: "replace", Fn: _re.Replace, ArgNames: []string{"pattern", "s", "repl"}, Doc: "Replace the first match with repl."},
			{Name: "replace_all", Fn: _re.ReplaceAll, ArgNames: []string{"pattern", "s", "repl"}, Doc: "Replace every match with repl."},
		},
	})
}

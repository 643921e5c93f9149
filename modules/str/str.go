package strmod

import "github.com/rubiojr/sandscript/modules"

var _str = &Str{}

func init() {
	modules.Register(&modules.Module{
		Name:   "str",
		Doc:    "String and character helpers.",
		Global: true,
		Funcs: []modules.FuncDef{
			{Name: "len", Fn: _str.Len, ArgNames: []string{"s"}, Doc: "Return the number of characters in s."},
			{Name: "upper", Fn: _str.Upper, ArgNames: []string{"s"}, Doc: "Return s in upper case."},
			{Name: "lower", Fn: _str.Lower, ArgNames: []string{"s"}, Doc: "Return s in lower case."},
			{Name: "char_at", Fn: _str.CharAt, ArgNames: []string{"s", "index"}, Doc: "Return the character of s at a zero-based index."},
			{Name: "concat_char", Fn: _str.ConcatChar, ArgNames: []string{"s", "c"}, Doc: "Append a character to s."},
			{Name: "contains", Fn: _str.Contains, ArgNames: []string{"s", "substr"}, Doc: "Return true if s contains substr."},
			{Name: "index", Fn: _str.Index, ArgNames: []string{"s", "substr"}, Doc: "Return the character index of substr in s, or -1."},
			{Name: "trim", Fn: _str.Trim, ArgNames: []string{"s"}, Doc: "Remove leading and trailing whitespace."},
			{Name: "replace", Fn: _str.Replace, ArgNames: []string{"s", "old", "new"}, Doc: "Replace every occurrence of old with new."},
			{Name: "starts_with", Fn: _str.StartsWith, ArgNames: []string{"s", "prefix"}, Doc: "Return true if s begins with prefix."},
			{Name: "ends_with", Fn: _str.EndsWith, ArgNames: []string{"s", "suffix"}, Doc: "Return true if s ends with suffix."},
		},
	})
}

package convmod

import "github.com/rubiojr/sandscript/modules"

var _conv = &Conv{}

func init() {
	modules.Register(&modules.Module{
		Name:   "conv",
		Doc:    "Conversions between script types.",
		Global: true,
		Funcs: []modules.FuncDef{
			{Name: "to_string", Fn: _conv.ToString, ArgNames: []string{"value"}, Doc: "Render any value as a string."},
			{Name: "to_number", Fn: _conv.ToNumber, ArgNames: []string{"value"}, Doc: "Convert a string, character, bool or number to a number."},
			{Name: "type_of", Fn: _conv.TypeOf, ArgNames: []string{"value"}, Doc: "Return the type name of a value."},
		},
	})
}

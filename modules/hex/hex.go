package hexmod

import "github.com/rubiojr/sandscript/modules"

var _hex = &Hex{}

func init() {
	modules.Register(&modules.Module{
		Name: "hex",
		Doc:  "Hexadecimal encoding.",
		Funcs: []modules.FuncDef{
			{Name: "encode", Fn: _hex.Encode, ArgNames: []string{"s"}, Doc: "Encode a string to hexadecimal."},
			{Name: "decode", Fn: _hex.Decode, ArgNames: []string{"s"}, Doc: "Decode a hexadecimal string."},
		},
	})
}

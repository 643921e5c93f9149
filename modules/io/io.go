package iomod

import "github.com/rubiojr/sandscript/modules"

var _io = &IO{}

func init() {
	modules.Register(&modules.Module{
		Name:   "io",
		Doc:    "Console output.",
		Global: true,
		Funcs: []modules.FuncDef{
			{Name: "print", Fn: _io.Print, ArgNames: []string{"value"}, Doc: "Write a value without a trailing newline."},
			{Name: "println", Fn: _io.Println, ArgNames: []string{"value"}, Doc: "Write a value followed by a newline."},
			{Name: "println", Fn: _io.Newline, Doc: "Write a newline."},
		},
	})
}

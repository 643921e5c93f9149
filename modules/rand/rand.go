package randmod

import "github.com/rubiojr/sandscript/modules"

var _rand = &Rand{}

func init() {
	modules.Register(&modules.Module{
		Name: "rand",
		Doc:  "Pseudo-random numbers and strings.",
		Funcs: []modules.FuncDef{
			{Name: "int", Fn: _rand.Int, ArgNames: []string{"min", "max"}, Doc: "Return a random integer in [min, max)."},
			{Name: "float", Fn: _rand.Float, Doc: "Return a random number in [0, 1)."},
			{Name: "string", Fn: _rand.String, ArgNames: []string{"length"}, Doc: "Return a random alphanumeric string of the given length."},
		},
	})
}

package mathmod

import "github.com/rubiojr/sandscript/modules"

var _math = &Math{}

func init() {
	modules.Register(&modules.Module{
		Name:   "math",
		Doc:    "Numeric functions.",
		Global: true,
		Funcs: []modules.FuncDef{
			{Name: "abs", Fn: _math.Abs, ArgNames: []string{"n"}, Doc: "Return the absolute value of n."},
			{Name: "sqrt", Fn: _math.Sqrt, ArgNames: []string{"n"}, Doc: "Return the square root of n."},
			{Name: "pow", Fn: _math.Pow, ArgNames: []string{"base", "exp"}, Doc: "Return base raised to the power of exp."},
			{Name: "floor", Fn: _math.Floor, ArgNames: []string{"n"}, Doc: "Round n down to the nearest integer."},
			{Name: "ceil", Fn: _math.Ceil, ArgNames: []string{"n"}, Doc: "Round n up to the nearest integer."},
			{Name: "round", Fn: _math.Round, ArgNames: []string{"n"}, Doc: "Round n to the nearest integer."},
			{Name: "min", Fn: _math.Min, ArgNames: []string{"a", "b"}, Doc: "Return the smaller of a and b."},
			{Name: "max", Fn: _math.Max, ArgNames: []string{"a", "b"}, Doc: "Return the larger of a and b."},
			{Name: "clamp", Fn: _math.Clamp, ArgNames: []string{"n", "lo", "hi"}, Doc: "Clamp n between lo and hi."},
		},
	})
}

package timemod

import "github.com/rubiojr/sandscript/modules"

var _time = &Time{}

func init() {
	modules.Register(&modules.Module{
		Name: "time",
		Doc:  "Unix timestamps as numbers of seconds.",
		Funcs: []modules.FuncDef{
			{Name: "now", Fn: _time.Now, Doc: "Return the current Unix timestamp with nanosecond precision."},
			{Name: "millis", Fn: _time.Millis, Doc: "Return the current time in milliseconds."},
			{Name: "since", Fn: _time.Since, ArgNames: []string{"timestamp"}, Doc: "Return seconds elapsed since the given Unix timestamp."},
			{Name: "format", Fn: _time.Format, ArgNames: []string{"timestamp", "layout"}, Doc: "Format a Unix timestamp in UTC using a Go time layout string."},
			{Name: "parse", Fn: _time.Parse, ArgNames: []string{"s", "layout"}, Doc: "Parse a time string using a Go time layout, returning a Unix timestamp."},
		},
	})
}

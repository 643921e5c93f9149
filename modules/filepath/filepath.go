package filepathmod

import "github.com/rubiojr/sandscript/modules"

var _filepath = &Filepath{}

func init() {
	modules.Register(&modules.Module{
		Name: "filepath",
		Doc:  "File path manipulation.",
		Funcs: []modules.FuncDef{
			{Name: "join", Fn: _filepath.Join, ArgNames: []string{"a", "b"}, Doc: "Join two path segments."},
			{Name: "base", Fn: _filepath.Base, ArgNames: []string{"path"}, Doc: "Return the last element of a path."},
			{Name: "dir", Fn: _filepath.Dir, ArgNames: []string{"path"}, Doc: "Return all but the last element of a path."},
			{Name: "ext", Fn: _filepath.Ext, ArgNames: []string{"path"}, Doc: "Return the file extension."},
			{Name: "clean", Fn: _filepath.Clean, ArgNames: []string{"path"}, Doc: "Return the shortest equivalent path."},
			{Name: "abs", Fn: _filepath.Abs, ArgNames: []string{"path"}, Doc: "Return the absolute path."},
			{Name: "is_abs", Fn: _filepath.IsAbs, ArgNames: []string{"path"}, Doc: "Return true if the path is absolute."},
		},
	})
}

package osmod

import "github.com/rubiojr/sandscript/modules"

var _os = &OS{}

func init() {
	modules.Register(&modules.Module{
		Name: "os",
		Doc:  "Files and environment of the host process.",
		Funcs: []modules.FuncDef{
			{Name: "getenv", Fn: _os.Getenv, ArgNames: []string{"name"}, Doc: "Get the value of an environment variable."},
			{Name: "setenv", Fn: _os.Setenv, ArgNames: []string{"name", "value"}, Doc: "Set an environment variable."},
			{Name: "file_exists", Fn: _os.FileExists, ArgNames: []string{"path"}, Doc: "Return true if the file or directory exists."},
			{Name: "is_dir", Fn: _os.IsDir, ArgNames: []string{"path"}, Doc: "Return true if the path exists and is a directory."},
			{Name: "read_file", Fn: _os.ReadFile, ArgNames: []string{"path"}, Doc: "Read the entire contents of a file as a string."},
			{Name: "write_file", Fn: _os.WriteFile, ArgNames: []string{"path", "content"}, Doc: "Write a string to a file, creating or overwriting it."},
			{Name: "cwd", Fn: _os.Cwd, Doc: "Return the current working directory."},
		},
	})
}

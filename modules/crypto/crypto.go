package cryptomod

import "github.com/rubiojr/sandscript/modules"

var _crypto = &Crypto{}

func init() {
	modules.Register(&modules.Module{
		Name: "crypto",
		Doc:  "Hex digests of strings.",
		Funcs: []modules.FuncDef{
			{Name: "md5", Fn: _crypto.MD5, ArgNames: []string{"s"}, Doc: "Return the MD5 hex digest of a string."},
			{Name: "sha1", Fn: _crypto.SHA1, ArgNames: []string{"s"}, Doc: "Return the SHA-1 hex digest of a string."},
			{Name: "sha256", Fn: _crypto.SHA256, ArgNames: []string{"s"}, Doc: "Return the SHA-256 hex digest of a string."},
		},
	})
}

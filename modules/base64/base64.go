package base64mod

import "github.com/rubiojr/sandscript/modules"

var _base64 = &Base64{}

func init() {
	modules.Register(&modules.Module{
		Name: "base64",
		Doc:  "Base64 encoding and decoding.",
		Funcs: []modules.FuncDef{
			{Name: "encode", Fn: _base64.Encode, ArgNames: []string{"s"}, Doc: "Encode a string to standard base64."},
			{Name: "decode", Fn: _base64.Decode, ArgNames: []string{"s"}, Doc: "Decode a standard base64 string."},
			{Name: "url_encode", Fn: _base64.URLEncode, ArgNames: []string{"s"}, Doc: "Encode a string to URL-safe base64."},
			{Name: "url_decode", Fn: _base64.URLDecode, ArgNames: []string{"s"}, Doc: "Decode a URL-safe base64 string."},
		},
	})
}

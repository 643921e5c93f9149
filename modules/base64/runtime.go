package base64mod

import (
	"encoding/base64"

	"github.com/rubiojr/sandscript/interop"
)

// --- base64 module ---

type Base64 struct{}

func (*Base64) Encode(h interop.Host, s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func (*Base64) Decode(h interop.Host, s string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (*Base64) URLEncode(h interop.Host, s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func (*Base64) URLDecode(h interop.Host, s string) (string, error) {
	data, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

package hexmod

import (
	"encoding/hex"

	"github.com/rubiojr/sandscript/interop"
)

// --- hex module ---

type Hex struct{}

func (*Hex) Encode(h interop.Host, s string) string {
	return hex.EncodeToString([]byte(s))
}

func (*Hex) Decode(h interop.Host, s string) (string, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

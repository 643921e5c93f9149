package cryptomod

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"

	"github.com/rubiojr/sandscript/interop"
)

// --- crypto module ---

type Crypto struct{}

func (*Crypto) MD5(h interop.Host, s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func (*Crypto) SHA1(h interop.Host, s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func (*Crypto) SHA256(h interop.Host, s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

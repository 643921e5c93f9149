package strmod

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rubiojr/sandscript/interop"
)

// --- str module ---

type Str struct{}

func (*Str) Len(h interop.Host, s string) float64 {
	return float64(utf8.RuneCountInString(s))
}

func (*Str) Upper(h interop.Host, s string) string {
	return strings.ToUpper(s)
}

func (*Str) Lower(h interop.Host, s string) string {
	return strings.ToLower(s)
}

// CharAt indexes by character, not byte.
func (*Str) CharAt(h interop.Host, s string, index float64) (rune, error) {
	runes := []rune(s)
	i := int(index)
	if float64(i) != index || i < 0 || i >= len(runes) {
		return 0, fmt.Errorf("index %v out of range [0, %d)", index, len(runes))
	}
	return runes[i], nil
}

func (*Str) ConcatChar(h interop.Host, s string, c rune) string {
	return s + string(c)
}

func (*Str) Contains(h interop.Host, s, substr string) bool {
	return strings.Contains(s, substr)
}

func (*Str) Index(h interop.Host, s, substr string) float64 {
	i := strings.Index(s, substr)
	if i < 0 {
		return -1
	}
	return float64(utf8.RuneCountInString(s[:i]))
}

func (*Str) Trim(h interop.Host, s string) string {
	return strings.TrimSpace(s)
}

func (*Str) Replace(h interop.Host, s, old, new string) string {
	return strings.ReplaceAll(s, old, new)
}

func (*Str) StartsWith(h interop.Host, s, prefix string) bool {
	return strings.HasPrefix(s, prefix)
}

func (*Str) EndsWith(h interop.Host, s, suffix string) bool {
	return strings.HasSuffix(s, suffix)
}

package remod

import (
	"fmt"
	"regexp"

	"github.com/rubiojr/sandscript/interop"
)

// --- re module ---

type Re struct{}

func compile(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return re, nil
}

func (*Re) Test(h interop.Host, pattern, s string) (bool, error) {
	re, err := compile(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(s), nil
}

func (*Re) Find(h interop.Host, pattern, s string) (string, error) {
	re, err := compile(pattern)
	if err != nil {
		return "", err
	}
	return re.FindString(s), nil
}

func (*Re) Count(h interop.Host, pattern, s string) (float64, error) {
	re, err := compile(pattern)
	if err != nil {
		return 0, err
	}
	return float64(len(re.FindAllStringIndex(s, -1))), nil
}

// Replace expands $1 style references in repl.
func (*Re) Replace(h interop.Host, pattern, s, repl string) (string, error) {
	re, err := compile(pattern)
	if err != nil {
		return "", err
	}
	loc := re.FindStringSubmatchIndex(s)
	if loc == nil {
		return s, nil
	}
	dst := re.ExpandString(nil, repl, s, loc)
	return s[:loc[0]] + string(dst) + s[loc[1]:], nil
}

func (*Re) ReplaceAll(h interop.Host, pattern, s, repl string) (string, error) {
	re, err := compile(pattern)
	if err != nil {
		return "", err
	}
	return re.ReplaceAllString(s, repl), nil
}

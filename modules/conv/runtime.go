package convmod

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rubiojr/sandscript/interop"
)

// --- conv module ---

type Conv struct{}

func (*Conv) ToString(h interop.Host, v interop.Value) string {
	return v.String()
}

// ToNumber converts characters to their code point.
func (*Conv) ToNumber(h interop.Host, v interop.Value) (float64, error) {
	switch x := v.Any().(type) {
	case float64:
		return x, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to a number", x)
		}
		return f, nil
	case rune:
		return float64(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("cannot convert %s to a number", v.Type().Name())
	}
}

func (*Conv) TypeOf(h interop.Host, v interop.Value) string {
	return v.Type().Name()
}

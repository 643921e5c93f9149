package interop

import (
	"fmt"
	"strconv"

	"github.com/rubiojr/sandscript/types"
)

// Value wraps a runtime value of any script type. Native methods use it
// for wildcard parameters and hosts receive it from Script.Globals.
type Value struct {
	v any
}

// ValueOf wraps v. Wrapping a Value returns it unchanged.
func ValueOf(v any) Value {
	if w, ok := v.(Value); ok {
		return w
	}
	return Value{v: v}
}

// Any returns the wrapped runtime value.
func (v Value) Any() any { return v.v }

// Type returns the provider of the wrapped value, or Nothing when the value
// is not of a registered type.
func (v Value) Type() types.Provider {
	p, ok := types.Of(v.v)
	if !ok {
		return types.Nothing
	}
	return p
}

// IsNothing reports whether the value is absent.
func (v Value) IsNothing() bool { return v.v == nil }

// Equal compares two values with their provider's equality.
func (v Value) Equal(o Value) bool {
	t := v.Type()
	if t != o.Type() {
		return false
	}
	return t.Equal(v.v, o.v)
}

func (v Value) String() string {
	return Format(v.v)
}

// Format renders a runtime value the way scripts print it.
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return "nothing"
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case rune:
		return string(x)
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case *Method:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

package mathmod

import (
	"errors"
	"math"

	"github.com/rubiojr/sandscript/interop"
)

// --- math module ---

type Math struct{}

func (*Math) Abs(h interop.Host, n float64) float64 {
	return math.Abs(n)
}

func (*Math) Sqrt(h interop.Host, n float64) (float64, error) {
	if n < 0 {
		return 0, errors.New("sqrt of a negative number")
	}
	return math.Sqrt(n), nil
}

func (*Math) Pow(h interop.Host, base, exp float64) float64 {
	return math.Pow(base, exp)
}

func (*Math) Floor(h interop.Host, n float64) float64 {
	return math.Floor(n)
}

func (*Math) Ceil(h interop.Host, n float64) float64 {
	return math.Ceil(n)
}

func (*Math) Round(h interop.Host, n float64) float64 {
	return math.Round(n)
}

func (*Math) Min(h interop.Host, a, b float64) float64 {
	return math.Min(a, b)
}

func (*Math) Max(h interop.Host, a, b float64) float64 {
	return math.Max(a, b)
}

func (*Math) Clamp(h interop.Host, n, lo, hi float64) float64 {
	return math.Max(lo, math.Min(n, hi))
}

package randmod

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/rubiojr/sandscript/interop"
)

// --- rand module ---

type Rand struct{}

func (*Rand) Int(h interop.Host, min, max float64) (float64, error) {
	lo, hi := math.Ceil(min), math.Floor(max)
	if lo >= hi {
		return 0, fmt.Errorf("min (%v) must be less than max (%v)", min, max)
	}
	return lo + float64(rand.Int64N(int64(hi-lo))), nil
}

func (*Rand) Float(h interop.Host) float64 {
	return rand.Float64()
}

func (*Rand) String(h interop.Host, length float64) (string, error) {
	if length < 0 {
		return "", fmt.Errorf("negative length %v", length)
	}
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, int(length))
	for i := range b {
		b[i] = chars[rand.IntN(len(chars))]
	}
	return string(b), nil
}

package timemod

import (
	"time"

	"github.com/rubiojr/sandscript/interop"
)

// --- time module ---

type Time struct{}

func (*Time) Now(h interop.Host) float64 {
	return float64(time.Now().UnixNano()) / 1e9
}

func (*Time) Millis(h interop.Host) float64 {
	return float64(time.Now().UnixMilli())
}

func (*Time) Since(h interop.Host, timestamp float64) float64 {
	return float64(time.Now().UnixNano())/1e9 - timestamp
}

func (*Time) Format(h interop.Host, timestamp float64, layout string) string {
	sec := int64(timestamp)
	nsec := int64((timestamp - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).UTC().Format(layout)
}

func (*Time) Parse(h interop.Host, s, layout string) (float64, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, err
	}
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9, nil
}
